// Package progress carries cooperative cancellation and progress reporting
// between a run and whoever is watching it.
package progress

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrCancelled is returned from checkpoints once cancellation was requested.
var ErrCancelled = errors.New("run cancelled")

// Signal is a cancellation flag that any goroutine may set, clear or read.
type Signal struct {
	flag atomic.Bool
}

func NewSignal() *Signal {
	return &Signal{}
}

func (s *Signal) Set() {
	s.flag.Store(true)
}

func (s *Signal) Clear() {
	s.flag.Store(false)
}

func (s *Signal) IsSet() bool {
	return s.flag.Load()
}

// Watch sets the signal once ctx is done. Call the returned func to detach.
func (s *Signal) Watch(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, s.Set)
}

// Check is the checkpoint polled by the pipeline.
func (s *Signal) Check(ctx context.Context) error {
	if s.IsSet() || ctx.Err() != nil {
		return ErrCancelled
	}
	return nil
}
