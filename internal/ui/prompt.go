package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/lehigh-university-libraries/newsbinder/internal/conflict"
)

var (
	warnColor   = color.New(color.FgYellow, color.Bold)
	choiceColor = color.New(color.FgCyan)
)

// ConflictPrompt asks on a terminal what to do with an existing document.
type ConflictPrompt struct {
	ctx    context.Context
	in     *bufio.Reader
	out    io.Writer
	before func()

	start sync.Once
	lines chan answer
}

type answer struct {
	line string
	err  error
}

// NewConflictPrompt reads answers from in and writes questions to out. A
// cancelled ctx answers Cancel.
func NewConflictPrompt(ctx context.Context, in io.Reader, out io.Writer) *ConflictPrompt {
	return &ConflictPrompt{ctx: ctx, in: bufio.NewReader(in), out: out}
}

// BeforePrompt registers fn to run before each question, e.g. to clear a
// progress bar.
func (p *ConflictPrompt) BeforePrompt(fn func()) {
	p.before = fn
}

// Decide matches conflict.DecideFunc.
func (p *ConflictPrompt) Decide(existingName string) conflict.Decision {
	if p.before != nil {
		p.before()
	}

	warnColor.Fprintf(p.out, "\n⚠ %s already exists.\n", existingName)
	for {
		choiceColor.Fprint(p.out, "[o]verwrite, overwrite [a]ll, [s]kip, skip a[l]l, [c]ancel: ")

		line, err := p.readLine()
		if err != nil {
			fmt.Fprintln(p.out)
			return conflict.Cancel
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "o", "overwrite":
			return conflict.Overwrite
		case "a", "all", "overwrite all":
			return conflict.OverwriteAll
		case "s", "skip":
			return conflict.Skip
		case "l", "skip all":
			return conflict.SkipAll
		case "c", "cancel":
			return conflict.Cancel
		}
		fmt.Fprintln(p.out, "Please answer o, a, s, l or c.")
	}
}

// readLine waits for a line of input or for the context to end. One reader
// goroutine serves every prompt, so an abandoned read is picked up by the
// next question instead of racing a second reader.
func (p *ConflictPrompt) readLine() (string, error) {
	p.start.Do(func() {
		p.lines = make(chan answer)
		go p.readLoop()
	})

	select {
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	case a, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return a.line, a.err
	}
}

func (p *ConflictPrompt) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if line != "" {
			p.lines <- answer{line: line}
		}
		if err != nil {
			p.lines <- answer{err: err}
			return
		}
	}
}
