package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is a run executing on its own goroutine.
type Job struct {
	p      *Pipeline
	g      errgroup.Group
	result *Result
}

// Start launches a run in the background. Cancelling ctx or calling Cancel
// stops it at the next checkpoint.
func (p *Pipeline) Start(ctx context.Context) *Job {
	return p.start(ctx, p.runBatch)
}

// StartWorkspace is Start for RunWorkspace.
func (p *Pipeline) StartWorkspace(ctx context.Context, workspaceDir string) *Job {
	return p.start(ctx, func(ctx context.Context) (*Result, error) {
		return p.runWorkspace(ctx, workspaceDir)
	})
}

func (p *Pipeline) start(ctx context.Context, fn func(context.Context) (*Result, error)) *Job {
	p.signal.Clear()
	stop := p.signal.Watch(ctx)

	j := &Job{p: p}
	j.g.Go(func() error {
		defer stop()
		res, err := fn(ctx)
		j.result = res
		return err
	})
	return j
}

// Cancel asks the run to stop. It returns immediately.
func (j *Job) Cancel() {
	j.p.signal.Set()
}

// Wait blocks until the run ends.
func (j *Job) Wait() (*Result, error) {
	err := j.g.Wait()
	return j.result, err
}
