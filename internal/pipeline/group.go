package pipeline

import (
	"log/slog"
	"path/filepath"

	"github.com/lehigh-university-libraries/newsbinder/internal/naming"
)

// Group is the set of workspace files that become one document.
type Group struct {
	Key   naming.GroupKey
	Files []string
}

// GroupFiles partitions workspace files by the key encoded in their names,
// keeping groups and files in order of first appearance.
func GroupFiles(paths []string, log *slog.Logger) []*Group {
	if log == nil {
		log = slog.Default()
	}

	var groups []*Group
	index := make(map[naming.GroupKey]*Group)

	for _, path := range paths {
		entry, err := naming.ParseWorkspaceName(filepath.Base(path))
		if err != nil {
			log.Warn("Skipping malformed workspace file", "file", filepath.Base(path), "error", err)
			continue
		}

		key := entry.Key()
		g, ok := index[key]
		if !ok {
			g = &Group{Key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.Files = append(g.Files, path)
	}
	return groups
}
