// Package conflict decides what happens when an output document already
// exists.
package conflict

import (
	"fmt"
	"strings"
	"sync"
)

// Decision is an answer from the decision callback.
type Decision int

const (
	Overwrite Decision = iota
	OverwriteAll
	Skip
	SkipAll
	Cancel
)

func (d Decision) String() string {
	switch d {
	case Overwrite:
		return "overwrite"
	case OverwriteAll:
		return "overwrite-all"
	case Skip:
		return "skip"
	case SkipAll:
		return "skip-all"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Action is what the assembler does with one colliding document.
type Action int

const (
	ActionOverwrite Action = iota
	ActionSkip
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionOverwrite:
		return "overwrite"
	case ActionSkip:
		return "skip"
	default:
		return "cancel"
	}
}

// DecideFunc is asked about a collision when no sticky answer applies.
type DecideFunc func(existingName string) Decision

// Resolver tracks the "apply to all" answers for one run. Use a fresh
// Resolver per run.
type Resolver struct {
	decide DecideFunc

	mu           sync.Mutex
	overwriteAll bool
	skipAll      bool
	prompts      int
}

// NewResolver creates a resolver that consults decide.
func NewResolver(decide DecideFunc) *Resolver {
	return &Resolver{decide: decide}
}

// Resolve returns the action for a collision on existingName.
func (r *Resolver) Resolve(existingName string) Action {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skipAll {
		return ActionSkip
	}
	if r.overwriteAll {
		return ActionOverwrite
	}

	r.prompts++
	switch r.decide(existingName) {
	case Overwrite:
		return ActionOverwrite
	case OverwriteAll:
		r.overwriteAll = true
		return ActionOverwrite
	case Skip:
		return ActionSkip
	case SkipAll:
		r.skipAll = true
		return ActionSkip
	default:
		return ActionCancel
	}
}

// Prompts reports how many times the callback was consulted.
func (r *Resolver) Prompts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompts
}

// Always answers every collision with d. It backs the non-interactive
// policies.
func Always(d Decision) DecideFunc {
	return func(string) Decision { return d }
}

// Policy names accepted by ParsePolicy.
const (
	PolicyAsk       = "ask"
	PolicyOverwrite = "overwrite"
	PolicySkip      = "skip"
	PolicyCancel    = "cancel"
)

// ParsePolicy maps a non-interactive policy name to a DecideFunc. "ask"
// returns nil, meaning the caller must supply a prompt.
func ParsePolicy(name string) (DecideFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyAsk, "":
		return nil, nil
	case PolicyOverwrite:
		return Always(OverwriteAll), nil
	case PolicySkip:
		return Always(SkipAll), nil
	case PolicyCancel:
		return Always(Cancel), nil
	default:
		return nil, fmt.Errorf("unknown conflict policy %q (use ask, overwrite, skip or cancel)", name)
	}
}
