package progress

import "sync"

// Phase boundaries, in percent.
const (
	LookupLoaded  = 2
	RenameStart   = 5
	RenameEnd     = 35
	AssembleStart = 35
	AssembleEnd   = 95
	Done          = 100
)

// ReportFunc receives progress notifications. It must not block for long;
// the worker waits for it to return.
type ReportFunc func(message string, percent int)

// Tracker forwards reports and keeps the percentage from ever moving
// backwards.
type Tracker struct {
	report ReportFunc

	mu   sync.Mutex
	last int
}

// NewTracker wraps report, which may be nil.
func NewTracker(report ReportFunc) *Tracker {
	return &Tracker{report: report}
}

// Report sends message at percent, clamped to [last, 100].
func (t *Tracker) Report(message string, percent int) {
	t.mu.Lock()
	if percent < t.last {
		percent = t.last
	}
	if percent > Done {
		percent = Done
	}
	t.last = percent
	t.mu.Unlock()

	if t.report != nil {
		t.report(message, percent)
	}
}

// Span maps step i of n onto the range [from, to].
type Span struct {
	From, To int
}

// At returns the percentage after i of n steps.
func (s Span) At(i, n int) int {
	if n <= 0 {
		return s.To
	}
	if i > n {
		i = n
	}
	return s.From + (s.To-s.From)*i/n
}

// Sub returns the slice of s that step i of n occupies.
func (s Span) Sub(i, n int) Span {
	return Span{From: s.At(i, n), To: s.At(i+1, n)}
}
