// Package ui provides the terminal pieces of the CLI: a progress bar and the
// prompt shown when a document already exists.
package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

const descriptionWidth = 48

// ProgressBar renders run progress as a percentage bar.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a 0-100 bar writing to w.
func NewProgressBar(w io.Writer, description string) *ProgressBar {
	bar := progressbar.NewOptions(
		100,
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(truncate(description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressBar{bar: bar}
}

// Report matches progress.ReportFunc.
func (p *ProgressBar) Report(message string, percent int) {
	p.bar.Describe(truncate(message))
	_ = p.bar.Set(percent)
}

// Clear wipes the bar so other output can use the line.
func (p *ProgressBar) Clear() {
	_ = p.bar.Clear()
}

// Finish completes the bar.
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= descriptionWidth {
		return fmt.Sprintf("%-*s", descriptionWidth, s)
	}
	return string(r[:descriptionWidth-1]) + "…"
}
