package bindcmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/newsbinder/internal/lookup"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
)

// NewLookupCmd creates the lookup command
func NewLookupCmd() *cobra.Command {
	var dir bool
	var pattern string
	var list bool
	var prefix string

	cmd := &cobra.Command{
		Use:   "lookup <table> [code...]",
		Short: "Check a lookup table and resolve catalog codes",
		Long: `Lookup loads a table mapping catalog numbers to newspaper titles and reports
how many entries it holds. Any codes given after the table are resolved against
it. Tables may be CSV (title, code), Parquet or YAML.

With --dir the first argument is a directory and the newest table matching
--pattern in it is used.`,
		Example: `  # Validate a table
  newsbinder lookup titles_bibids_20240101.csv

  # Resolve codes with the newest export in a directory
  newsbinder lookup --dir ./exports 13991099 bib13991099`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if dir {
				found, err := lookup.FindLatest(path, pattern)
				if err != nil {
					return err
				}
				path = found
			}
			return executeLookup(cmd.OutOrStdout(), path, args[1:], list, prefix)
		},
	}

	cmd.Flags().BoolVar(&dir, "dir", false, "Treat the first argument as a directory of exports")
	cmd.Flags().StringVar(&pattern, "pattern", lookup.DefaultPattern, "Glob used with --dir")
	cmd.Flags().BoolVar(&list, "list", false, "Print every entry")
	cmd.Flags().StringVar(&prefix, "prefix", naming.DefaultPrefix, "Literal stripped from codes before lookup")

	return cmd
}

func executeLookup(w io.Writer, path string, codes []string, list bool, prefix string) error {
	table, err := lookup.NewLoader(path).Load()
	if err != nil {
		return fmt.Errorf("failed to load lookup table: %w", err)
	}

	fmt.Fprintf(w, "%s: %d entries\n", table.Source(), table.Len())

	if list {
		for _, code := range table.Codes() {
			name, _ := table.Resolve(code)
			fmt.Fprintf(w, "  %s\t%s\n", code, name)
		}
	}

	parser := naming.NewParser(prefix)
	missing := 0
	for _, code := range codes {
		key := parser.Key(code)
		if name, ok := table.Resolve(key); ok {
			fmt.Fprintf(w, "%s -> %s\n", code, name)
			continue
		}
		unknownColor.Fprintf(w, "%s -> not found\n", code)
		missing++
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d codes not found", missing, len(codes))
	}
	return nil
}
