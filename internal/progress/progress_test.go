package progress

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSignal(t *testing.T) {
	s := NewSignal()
	ctx := context.Background()

	if err := s.Check(ctx); err != nil {
		t.Fatalf("Expected no cancellation, got %v", err)
	}

	s.Set()
	if !errors.Is(s.Check(ctx), ErrCancelled) {
		t.Error("Expected ErrCancelled after Set")
	}

	s.Clear()
	if s.IsSet() {
		t.Error("Expected Clear to reset the signal")
	}
}

func TestSignalWatchesContext(t *testing.T) {
	s := NewSignal()
	ctx, cancel := context.WithCancel(context.Background())
	defer s.Watch(ctx)()

	cancel()

	deadline := time.Now().Add(time.Second)
	for !s.IsSet() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !s.IsSet() {
		t.Error("Expected context cancellation to set the signal")
	}
}

func TestTrackerIsMonotonic(t *testing.T) {
	var got []int
	tr := NewTracker(func(_ string, percent int) {
		got = append(got, percent)
	})

	for _, p := range []int{5, 20, 10, 35, 150, 90} {
		tr.Report("step", p)
	}

	expected := []int{5, 20, 20, 35, 100, 100}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Report %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestSpan(t *testing.T) {
	s := Span{From: AssembleStart, To: AssembleEnd}

	tests := []struct {
		i, n     int
		expected int
	}{
		{0, 4, 35},
		{1, 4, 50},
		{4, 4, 95},
		{9, 4, 95},
		{0, 0, 95},
	}

	for _, tt := range tests {
		if got := s.At(tt.i, tt.n); got != tt.expected {
			t.Errorf("At(%d, %d): expected %d, got %d", tt.i, tt.n, tt.expected, got)
		}
	}

	sub := s.Sub(1, 4)
	if sub.From != 50 || sub.To != 65 {
		t.Errorf("Expected sub span 50-65, got %d-%d", sub.From, sub.To)
	}
}
