package lookup

import (
	"fmt"
	"path/filepath"
	"sort"
)

// DefaultPattern matches the title exports published alongside the scans.
const DefaultPattern = "titles_bibids_*.csv"

// FindLatest returns the newest file in dir matching pattern. Exports carry a
// sortable date in their name, so newest means last in lexical order.
func FindLatest(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("invalid lookup pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s in %s", ErrNoTableFound, pattern, dir)
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
