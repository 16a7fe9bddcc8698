package lookup

import (
	"sort"
	"strings"
	"sync"
)

// Provider maps a catalog lookup key to a publication name.
type Provider interface {
	Resolve(code string) (string, bool)
}

// Table is an in-memory Provider safe for concurrent use.
type Table struct {
	entries map[string]string
	source  string
	mu      sync.RWMutex
}

// NewTable creates a table from code -> name pairs.
func NewTable(entries map[string]string) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for code, name := range entries {
		t.Set(code, name)
	}
	return t
}

func (t *Table) Resolve(code string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.entries[strings.TrimSpace(code)]
	return name, ok
}

// Set adds or replaces an entry. Blank codes or names are ignored.
func (t *Table) Set(code, name string) {
	code, name = strings.TrimSpace(code), strings.TrimSpace(name)
	if code == "" || name == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[code] = name
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Codes returns all codes in sorted order.
func (t *Table) Codes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	codes := make([]string, 0, len(t.entries))
	for code := range t.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Source is the file the table was loaded from, if any.
func (t *Table) Source() string {
	return t.source
}
