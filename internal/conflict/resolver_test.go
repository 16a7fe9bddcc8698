package conflict

import "testing"

type scripted struct {
	answers []Decision
	asked   []string
}

func (s *scripted) decide(name string) Decision {
	s.asked = append(s.asked, name)
	d := s.answers[0]
	s.answers = s.answers[1:]
	return d
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		answers  []Decision
		expected []Action
		prompts  int
	}{
		{
			name:     "single answers are not sticky",
			answers:  []Decision{Overwrite, Skip, Overwrite},
			expected: []Action{ActionOverwrite, ActionSkip, ActionOverwrite},
			prompts:  3,
		},
		{
			name:     "skip all sticks",
			answers:  []Decision{Overwrite, SkipAll},
			expected: []Action{ActionOverwrite, ActionSkip, ActionSkip, ActionSkip},
			prompts:  2,
		},
		{
			name:     "overwrite all sticks",
			answers:  []Decision{OverwriteAll},
			expected: []Action{ActionOverwrite, ActionOverwrite, ActionOverwrite},
			prompts:  1,
		},
		{
			name:     "cancel",
			answers:  []Decision{Skip, Cancel},
			expected: []Action{ActionSkip, ActionCancel},
			prompts:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &scripted{answers: tt.answers}
			r := NewResolver(s.decide)

			for i, want := range tt.expected {
				got := r.Resolve("doc.pdf")
				if got != want {
					t.Errorf("Collision %d: expected %v, got %v", i, want, got)
				}
			}
			if r.Prompts() != tt.prompts || len(s.asked) != tt.prompts {
				t.Errorf("Expected %d prompts, got %d (callback saw %d)", tt.prompts, r.Prompts(), len(s.asked))
			}
		})
	}
}

func TestFreshResolverForgetsStickyAnswers(t *testing.T) {
	first := NewResolver(Always(SkipAll))
	first.Resolve("a.pdf")

	calls := 0
	second := NewResolver(func(string) Decision {
		calls++
		return Overwrite
	})
	if got := second.Resolve("a.pdf"); got != ActionOverwrite {
		t.Errorf("Expected overwrite, got %v", got)
	}
	if calls != 1 {
		t.Errorf("Expected the new run to prompt, got %d calls", calls)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		policy   string
		expected Action
		nilFunc  bool
		wantErr  bool
	}{
		{policy: "ask", nilFunc: true},
		{policy: "", nilFunc: true},
		{policy: "overwrite", expected: ActionOverwrite},
		{policy: "SKIP", expected: ActionSkip},
		{policy: "cancel", expected: ActionCancel},
		{policy: "rename", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			decide, err := ParsePolicy(tt.policy)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if tt.nilFunc {
				if decide != nil {
					t.Error("Expected nil DecideFunc for interactive policy")
				}
				return
			}
			if got := NewResolver(decide).Resolve("x.pdf"); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
