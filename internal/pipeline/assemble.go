package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lehigh-university-libraries/newsbinder/internal/conflict"
	"github.com/lehigh-university-libraries/newsbinder/internal/images"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
	"github.com/lehigh-university-libraries/newsbinder/internal/progress"
)

// assembleAll groups the workspace files and writes one document per group.
// It only returns ErrCancelled; everything else is recorded per document.
func (r *run) assembleAll(ctx context.Context, files []string, outputDir string) error {
	if err := r.check(ctx); err != nil {
		return err
	}

	groups := GroupFiles(files, r.log.With("stage", "group"))
	r.result.Groups = len(groups)
	r.tracker.Report(fmt.Sprintf("Grouped %d files into %d documents", len(files), len(groups)), progress.AssembleStart)

	span := progress.Span{From: progress.AssembleStart, To: progress.AssembleEnd}
	for i, g := range groups {
		if err := r.assemble(ctx, g, outputDir, span.Sub(i, len(groups))); err != nil {
			return err
		}
	}
	return nil
}

// assemble writes the document for one group. Decoded pages are released
// before it returns, whatever the outcome.
func (r *run) assemble(ctx context.Context, g *Group, outputDir string, span progress.Span) error {
	log := r.log.With("stage", "assemble", "group", g.Key.String())

	files := append([]string(nil), g.Files...)
	sort.Strings(files)

	var valid []string
	for _, f := range files {
		if err := r.check(ctx); err != nil {
			return err
		}
		if _, err := images.Validate(f, r.opts.Limits); err != nil {
			log.Warn("Excluding invalid page", "file", filepath.Base(f), "error", err)
			continue
		}
		if err := r.check(ctx); err != nil {
			return err
		}
		valid = append(valid, f)
	}

	if len(valid) == 0 {
		log.Warn("No valid pages in group")
		r.result.record(Document{Name: g.Key.String(), Status: StatusEmpty})
		r.tracker.Report(fmt.Sprintf("Skipped %s", g.Key), span.To)
		return nil
	}

	name := naming.DocumentName(g.Key, len(valid))
	dst := filepath.Join(outputDir, name)
	doc := Document{Name: name, Pages: len(valid), Status: StatusCreated}

	if err := r.check(ctx); err != nil {
		return err
	}
	if _, err := os.Stat(dst); err == nil {
		switch r.resolver.Resolve(name) {
		case conflict.ActionCancel:
			log.Info("Cancelled at existing document", "document", name)
			return progress.ErrCancelled
		case conflict.ActionSkip:
			log.Info("Keeping existing document", "document", name)
			doc.Status = StatusSkipped
			r.result.record(doc)
			r.tracker.Report(fmt.Sprintf("Skipped %s", name), span.To)
			return nil
		}
		doc.Status = StatusOverwritten
	}
	if err := r.check(ctx); err != nil {
		return err
	}

	pages, err := r.loadPages(ctx, valid, span, name)
	defer release(pages)
	if err != nil {
		if errors.Is(err, progress.ErrCancelled) {
			return err
		}
		return r.fail(doc, err, span)
	}

	if err := r.check(ctx); err != nil {
		return err
	}
	if err := r.writer.Write(dst, pages); err != nil {
		return r.fail(doc, err, span)
	}
	for _, f := range valid {
		r.consumed[f] = true
	}

	r.result.record(doc)
	r.result.PerPublication[g.Key.Publication]++
	log.Info("Wrote document", "document", name, "pages", len(pages), "status", doc.Status)
	r.tracker.Report(fmt.Sprintf("Wrote %s", name), span.To)

	return r.check(ctx)
}

// loadPages reads every page, polling for cancellation around each load.
// Groups above the large group threshold report progress per page.
func (r *run) loadPages(ctx context.Context, files []string, span progress.Span, name string) ([]*images.Page, error) {
	large := len(files) > r.opts.LargeGroup
	loading := progress.Span{From: span.From, To: span.From + (span.To-span.From)*8/10}

	pages := make([]*images.Page, 0, len(files))
	for i, f := range files {
		if err := r.check(ctx); err != nil {
			return pages, err
		}
		page, err := images.Load(f)
		if err != nil {
			return pages, fmt.Errorf("failed to load page %s: %w", filepath.Base(f), err)
		}
		pages = append(pages, page)
		if err := r.check(ctx); err != nil {
			return pages, err
		}

		if large {
			r.tracker.Report(fmt.Sprintf("Loading %s: page %d/%d", name, i+1, len(files)), loading.At(i+1, len(files)))
		}
	}
	return pages, nil
}

func (r *run) fail(doc Document, err error, span progress.Span) error {
	r.log.Error("Failed to write document", "document", doc.Name, "error", err)
	doc.Status = StatusFailed
	doc.Error = err.Error()
	r.result.record(doc)
	r.tracker.Report(fmt.Sprintf("Failed %s", doc.Name), span.To)
	return nil
}

func release(pages []*images.Page) {
	for _, p := range pages {
		p.Release()
	}
}
