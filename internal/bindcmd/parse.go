package bindcmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/newsbinder/internal/lookup"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
)

var (
	rejectColor  = color.New(color.FgRed)
	unknownColor = color.New(color.FgYellow)
)

// NewParseCmd creates the parse command
func NewParseCmd() *cobra.Command {
	var lookupPath string
	var prefix string

	cmd := &cobra.Command{
		Use:   "parse <filename>...",
		Short: "Show how scan filenames are read and renamed",
		Long: `Parse prints the catalog code, capture date and sequence read from each
filename, and the name the page would get in the working directory. Nothing is
read from or written to disk except the optional lookup table.`,
		Example: `  # Check a single name
  newsbinder parse bib13991099_20240115_001_002_003.jpg

  # Check a directory listing against a lookup table
  newsbinder parse --lookup titles.csv ./scans/*.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider lookup.Provider
			if lookupPath != "" {
				table, err := lookup.NewLoader(lookupPath).Load()
				if err != nil {
					return fmt.Errorf("failed to load lookup table: %w", err)
				}
				provider = table
			}
			return executeParse(cmd.OutOrStdout(), args, provider, prefix)
		},
	}

	cmd.Flags().StringVar(&lookupPath, "lookup", "", "Lookup table used to name publications")
	cmd.Flags().StringVar(&prefix, "prefix", naming.DefaultPrefix, "Literal preceding the catalog number")

	return cmd
}

func executeParse(w io.Writer, names []string, provider lookup.Provider, prefix string) error {
	parser := naming.NewParser(prefix)
	rejected := 0

	for i, name := range names {
		if i > 0 {
			fmt.Fprintln(w)
		}
		base := filepath.Base(name)
		ext := filepath.Ext(base)
		fmt.Fprintln(w, base)

		rec, err := parser.Parse(strings.TrimSuffix(base, ext))
		if err != nil {
			rejectColor.Fprintf(w, "  rejected:       %v\n", err)
			rejected++
			continue
		}

		code := rec.CatalogCode
		if rec.PrefixMissing {
			code += " (no " + prefix + " prefix)"
		}
		fmt.Fprintf(w, "  catalog code:   %s\n", code)
		fmt.Fprintf(w, "  lookup key:     %s\n", rec.LookupKey)
		if rec.DateInvalid {
			unknownColor.Fprintf(w, "  capture date:   %s (unreadable date)\n", rec.CaptureDate)
		} else {
			fmt.Fprintf(w, "  capture date:   %s\n", rec.CaptureDate)
		}
		fmt.Fprintf(w, "  sequence:       %s%s\n", rec.SequenceGroup, rec.DuplicateSuffix)

		publication := naming.Unknown
		if provider != nil {
			if title, ok := provider.Resolve(rec.LookupKey); ok {
				publication = title
			}
		}
		if publication == naming.Unknown {
			unknownColor.Fprintf(w, "  publication:    %s\n", publication)
		} else {
			fmt.Fprintf(w, "  publication:    %s\n", strings.ToUpper(publication))
		}
		fmt.Fprintf(w, "  workspace name: %s\n", naming.WorkspaceName(rec, publication, ext))
	}

	if rejected > 0 {
		fmt.Fprintf(w, "\n%d of %d names rejected\n", rejected, len(names))
	}
	return nil
}
