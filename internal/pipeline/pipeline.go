package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/newsbinder/internal/conflict"
	"github.com/lehigh-university-libraries/newsbinder/internal/lookup"
	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
	"github.com/lehigh-university-libraries/newsbinder/internal/pathsafe"
	"github.com/lehigh-university-libraries/newsbinder/internal/pdf"
	"github.com/lehigh-university-libraries/newsbinder/internal/progress"
	"github.com/lehigh-university-libraries/newsbinder/internal/workspace"
)

// Pipeline runs batches with fixed options and collaborators. A Pipeline may
// run several batches, one at a time.
type Pipeline struct {
	opts   Options
	lookup lookup.Provider
	decide conflict.DecideFunc
	report progress.ReportFunc
	signal *progress.Signal
	writer *pdf.Writer
	log    *slog.Logger
}

// New creates a pipeline. provider may be nil, in which case every catalog
// code is unknown.
func New(opts Options, provider lookup.Provider, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		opts:   opts.withDefaults(),
		lookup: provider,
		decide: conflict.Always(conflict.Skip),
		signal: progress.NewSignal(),
		writer: pdf.NewWriter(),
		log:    logger,
	}
}

// OnConflict sets the callback asked about existing documents. Without one,
// existing documents are skipped.
func (p *Pipeline) OnConflict(fn conflict.DecideFunc) {
	if fn != nil {
		p.decide = fn
	}
}

// OnProgress sets the progress callback.
func (p *Pipeline) OnProgress(fn progress.ReportFunc) {
	p.report = fn
}

// Signal is the cancellation signal polled by runs of this pipeline.
func (p *Pipeline) Signal() *progress.Signal {
	return p.signal
}

// run holds the state of one batch.
type run struct {
	opts     Options
	lookup   lookup.Provider
	parser   *naming.Parser
	resolver *conflict.Resolver
	tracker  *progress.Tracker
	signal   *progress.Signal
	writer   *pdf.Writer
	log      *slog.Logger

	unknown map[string]struct{}
	result  *Result

	// origins maps workspace files back to the sources they were moved
	// from; consumed marks those that made it into a document.
	origins  map[string]string
	consumed map[string]bool
}

func (p *Pipeline) newRun() *run {
	id := uuid.NewString()
	return &run{
		opts:     p.opts,
		lookup:   p.lookup,
		parser:   naming.NewParser(p.opts.CatalogPrefix),
		resolver: conflict.NewResolver(p.decide),
		tracker:  progress.NewTracker(p.report),
		signal:   p.signal,
		writer:   p.writer,
		log:      p.log.With("run_id", id),
		unknown:  make(map[string]struct{}),
		result:   &Result{RunID: id, PerPublication: make(map[string]int)},
		origins:  make(map[string]string),
		consumed: make(map[string]bool),
	}
}

func (r *run) check(ctx context.Context) error {
	return r.signal.Check(ctx)
}

// Run renames, groups and assembles every scan in the input directory.
// Directory problems are returned as errors before any file is touched.
// Cancellation is not an error: it returns a Cancelled result. The signal is
// cleared first, so a cancelled earlier batch does not stop this one.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.signal.Clear()
	return p.runBatch(ctx)
}

func (p *Pipeline) runBatch(ctx context.Context) (*Result, error) {
	r := p.newRun()

	inputDir, outputDir, err := p.directories()
	if err != nil {
		return nil, err
	}
	r.result.OutputDir = outputDir

	sources, err := Discover(inputDir, p.opts.Extensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	r.result.TotalFiles = len(sources)
	r.log.Info("Starting run", "input", inputDir, "output", outputDir, "files", len(sources))

	if len(sources) == 0 {
		r.log.Warn("No scans found", "input", inputDir, "extensions", p.opts.Extensions)
		r.finish()
		return r.result, nil
	}

	mode := workspace.Ephemeral
	if p.opts.KeepRenamed {
		mode = workspace.Persistent
	}
	ws, err := workspace.Open(outputDir, p.opts.WorkspaceName, mode, r.log)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	defer ws.Close()
	if ws.Persistent() {
		r.result.WorkspaceDir = ws.Dir
	}
	trackOrigins := !ws.Persistent() && !p.opts.KeepOriginals
	if trackOrigins {
		defer r.restore(ws)
	}

	placed, err := r.rename(ctx, sources, ws, trackOrigins)
	if errors.Is(err, progress.ErrCancelled) {
		r.log.Info("Run cancelled during rename", "placed", len(placed))
		return Cancelled(), nil
	}

	if err := r.assembleAll(ctx, placed, outputDir); err != nil {
		if errors.Is(err, progress.ErrCancelled) {
			r.log.Info("Run cancelled during assembly")
			return Cancelled(), nil
		}
		return nil, err
	}

	r.finish()
	return r.result, nil
}

// RunWorkspace groups and assembles the files already in a workspace written
// by an earlier run with a persistent workspace. Like Run, it clears the
// signal first.
func (p *Pipeline) RunWorkspace(ctx context.Context, workspaceDir string) (*Result, error) {
	p.signal.Clear()
	return p.runWorkspace(ctx, workspaceDir)
}

func (p *Pipeline) runWorkspace(ctx context.Context, workspaceDir string) (*Result, error) {
	r := p.newRun()

	dir, err := pathsafe.ValidateDirectory(workspaceDir, pathsafe.DirOptions{MustExist: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	outputDir, err := pathsafe.ValidateDirectory(p.opts.OutputDir, pathsafe.DirOptions{CreateIfMissing: true, RequireWritable: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	r.result.OutputDir = outputDir
	r.result.WorkspaceDir = dir

	files, err := Discover(dir, p.opts.Extensions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	r.result.TotalFiles = len(files)
	r.result.Placed = len(files)
	r.log.Info("Assembling existing workspace", "workspace", dir, "output", outputDir, "files", len(files))

	if err := r.assembleAll(ctx, files, outputDir); err != nil {
		if errors.Is(err, progress.ErrCancelled) {
			r.log.Info("Run cancelled during assembly")
			return Cancelled(), nil
		}
		return nil, err
	}

	r.finish()
	return r.result, nil
}

func (p *Pipeline) directories() (string, string, error) {
	inputDir, err := pathsafe.ValidateDirectory(p.opts.InputDir, pathsafe.DirOptions{MustExist: true})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	outputDir, err := pathsafe.ValidateDirectory(p.opts.OutputDir, pathsafe.DirOptions{CreateIfMissing: true, RequireWritable: true})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	if inputDir == outputDir {
		return "", "", ErrSameDirectory
	}
	return inputDir, outputDir, nil
}

// restore moves workspace files that did not end up in a document back to
// their source paths, so an ephemeral workspace never takes the only copy of
// a scan with it.
func (r *run) restore(ws *workspace.Workspace) {
	for dst, src := range r.origins {
		if r.consumed[dst] {
			continue
		}
		if err := ws.Restore(dst, src); err != nil {
			r.log.Error("Failed to restore source file", "file", filepath.Base(src), "error", err)
			continue
		}
		r.result.Restored++
		r.log.Info("Restored source file", "file", filepath.Base(src))
	}
}

func (r *run) finish() {
	r.result.setUnknown(r.unknown)
	r.tracker.Report("Done", progress.Done)
	r.log.Info("Run finished",
		"files", r.result.TotalFiles,
		"created", r.result.Created,
		"overwritten", r.result.Overwritten,
		"skipped", r.result.Skipped,
		"failed", r.result.Failed,
		"unknown_codes", r.result.UnknownCount)
}
