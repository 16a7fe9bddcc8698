// Package report presents run results, as a terminal summary and as a YAML
// file.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/newsbinder/internal/pipeline"
)

const rule = "========================================"

// PrintSummary writes a human readable summary of res to w.
func PrintSummary(w io.Writer, res *pipeline.Result) {
	if res.Cancelled {
		fmt.Fprintln(w, "\nRun cancelled. No summary available.")
		return
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "Run Summary")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Scans found:        %d\n", res.TotalFiles)
	fmt.Fprintf(w, "Renamed:            %d\n", res.Placed)
	fmt.Fprintf(w, "Rejected names:     %d\n", res.Rejected)
	fmt.Fprintf(w, "Invalid images:     %d\n", res.Invalid)
	if res.NotPlaced > 0 {
		fmt.Fprintf(w, "Failed to rename:   %d\n", res.NotPlaced)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Documents created:  %d\n", res.Created)
	fmt.Fprintf(w, "Overwritten:        %d\n", res.Overwritten)
	fmt.Fprintf(w, "Skipped:            %d\n", res.Skipped)
	if res.Failed > 0 || res.Empty > 0 {
		fmt.Fprintf(w, "Failed:             %d\n", res.Failed)
		fmt.Fprintf(w, "Without pages:      %d\n", res.Empty)
	}
	if res.Restored > 0 {
		fmt.Fprintf(w, "Sources restored:   %d\n", res.Restored)
	}

	if len(res.PerPublication) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Documents per publication:")
		var pubs []string
		for pub := range res.PerPublication {
			pubs = append(pubs, pub)
		}
		sort.Strings(pubs)
		for _, pub := range pubs {
			fmt.Fprintf(w, "  %s: %d\n", pub, res.PerPublication[pub])
		}
	}

	if res.UnknownCount > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Unknown catalog codes (%d): %s\n", res.UnknownCount, strings.Join(res.UnknownCodes, ", "))
		fmt.Fprintln(w, "Add them to the lookup table and re-run to name these documents.")
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Output:    %s\n", res.OutputDir)
	if res.WorkspaceDir != "" {
		fmt.Fprintf(w, "Workspace: %s\n", res.WorkspaceDir)
	}
	fmt.Fprintln(w, rule)
}
