package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/newsbinder/internal/conflict"
)

func TestConflictPrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected conflict.Decision
	}{
		{name: "overwrite", input: "o\n", expected: conflict.Overwrite},
		{name: "overwrite all", input: "A\n", expected: conflict.OverwriteAll},
		{name: "skip", input: " s \n", expected: conflict.Skip},
		{name: "skip all", input: "l\n", expected: conflict.SkipAll},
		{name: "cancel", input: "cancel\n", expected: conflict.Cancel},
		{name: "retries after invalid answer", input: "maybe\nl\n", expected: conflict.SkipAll},
		{name: "answer without newline", input: "s", expected: conflict.Skip},
		{name: "closed input cancels", input: "", expected: conflict.Cancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewConflictPrompt(context.Background(), strings.NewReader(tt.input), &out)

			cleared := false
			p.BeforePrompt(func() { cleared = true })

			got := p.Decide("2024-01-15 DAGENS NYHETER (2 sid).pdf")
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if !cleared {
				t.Error("Expected BeforePrompt hook to run")
			}
			if !strings.Contains(out.String(), "2024-01-15 DAGENS NYHETER (2 sid).pdf already exists") {
				t.Errorf("Expected the document name in the prompt, got %q", out.String())
			}
		})
	}
}

func TestConflictPromptSharesReaderAcrossQuestions(t *testing.T) {
	p := NewConflictPrompt(context.Background(), strings.NewReader("o\nmaybe\ns\n"), io.Discard)

	expected := []conflict.Decision{conflict.Overwrite, conflict.Skip, conflict.Cancel, conflict.Cancel}
	for i, want := range expected {
		if got := p.Decide("doc.pdf"); got != want {
			t.Errorf("question %d: expected %v, got %v", i+1, want, got)
		}
	}
}

func TestConflictPromptCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewConflictPrompt(ctx, pr, io.Discard)
	if got := p.Decide("doc.pdf"); got != conflict.Cancel {
		t.Errorf("Expected cancel, got %v", got)
	}
}

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewProgressBar(&out, "Starting")

	bar.Report("Renamed bib123_20240115_001_002_003.jpg", 20)
	bar.Report("Wrote 2024-01-15 DAGENS NYHETER (2 sid).pdf", 100)
	bar.Finish()

	if !strings.Contains(out.String(), "Wrote 2024-01-15") {
		t.Errorf("Expected the latest message in the output, got %q", out.String())
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("ö", 100)
	if got := []rune(truncate(long)); len(got) != descriptionWidth {
		t.Errorf("Expected %d runes, got %d", descriptionWidth, len(got))
	}
	if got := []rune(truncate("short")); len(got) != descriptionWidth {
		t.Errorf("Expected padding to %d runes, got %d", descriptionWidth, len(got))
	}
}
