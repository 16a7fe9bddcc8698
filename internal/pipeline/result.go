package pipeline

import "sort"

// Document statuses recorded in Result.Documents.
const (
	StatusCreated     = "created"
	StatusOverwritten = "overwritten"
	StatusSkipped     = "skipped"
	StatusFailed      = "failed"
	StatusEmpty       = "empty"
)

// Document is the outcome for one group.
type Document struct {
	Name   string `yaml:"name"`
	Pages  int    `yaml:"pages"`
	Status string `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
}

// Result summarizes a run. A cancelled run sets only Cancelled.
type Result struct {
	Cancelled bool   `yaml:"cancelled"`
	RunID     string `yaml:"run_id,omitempty"`

	TotalFiles int `yaml:"total_files"`
	Rejected   int `yaml:"rejected"`
	Invalid    int `yaml:"invalid"`
	NotPlaced  int `yaml:"not_placed"`
	Placed     int `yaml:"placed"`

	Groups      int `yaml:"groups"`
	Created     int `yaml:"created"`
	Overwritten int `yaml:"overwritten"`
	Skipped     int `yaml:"skipped"`
	Failed      int `yaml:"failed"`
	Empty       int `yaml:"empty"`
	Restored    int `yaml:"restored"`

	UnknownCodes []string `yaml:"unknown_codes"`
	UnknownCount int      `yaml:"unknown_count"`

	OutputDir    string `yaml:"output_dir,omitempty"`
	WorkspaceDir string `yaml:"workspace_dir,omitempty"`

	PerPublication map[string]int `yaml:"per_publication,omitempty"`
	Documents      []Document     `yaml:"documents,omitempty"`
}

// Cancelled is the result of a run stopped by the user.
func Cancelled() *Result {
	return &Result{Cancelled: true}
}

func (r *Result) setUnknown(codes map[string]struct{}) {
	r.UnknownCodes = make([]string, 0, len(codes))
	for code := range codes {
		r.UnknownCodes = append(r.UnknownCodes, code)
	}
	sort.Strings(r.UnknownCodes)
	r.UnknownCount = len(r.UnknownCodes)
}

func (r *Result) record(doc Document) {
	r.Documents = append(r.Documents, doc)
	switch doc.Status {
	case StatusCreated:
		r.Created++
	case StatusOverwritten:
		r.Overwritten++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	case StatusEmpty:
		r.Empty++
	}
}
