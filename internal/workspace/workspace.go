// Package workspace owns the directory that holds renamed scans between the
// rename and assembly stages.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/lehigh-university-libraries/newsbinder/internal/pathsafe"
)

// Mode selects whether the workspace survives the run.
type Mode int

const (
	// Ephemeral workspaces are temporary directories removed on every exit path.
	Ephemeral Mode = iota
	// Persistent workspaces are a named subdirectory of the output directory
	// and are never removed.
	Persistent
)

const tempPattern = "newsbinder-renamed-*"

// Workspace is one run's rename target.
type Workspace struct {
	Dir  string
	mode Mode
	log  *slog.Logger

	mu      sync.Mutex
	claimed map[string]bool

	closeOnce sync.Once
}

// Open creates the workspace. For Persistent mode it is outputDir/name.
func Open(outputDir, name string, mode Mode, logger *slog.Logger) (*Workspace, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var dir string
	switch mode {
	case Persistent:
		dir = filepath.Join(outputDir, pathsafe.Sanitize(name, false))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create workspace %s: %w", dir, err)
		}
	default:
		var err error
		dir, err = os.MkdirTemp("", tempPattern)
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary workspace: %w", err)
		}
	}

	logger.Debug("Workspace ready", "dir", dir, "persistent", mode == Persistent)
	return &Workspace{
		Dir:     dir,
		mode:    mode,
		log:     logger,
		claimed: make(map[string]bool),
	}, nil
}

func (w *Workspace) Persistent() bool {
	return w.mode == Persistent
}

// Close removes an ephemeral workspace. Removal errors are logged, not
// returned. Close is safe to call more than once.
func (w *Workspace) Close() {
	w.closeOnce.Do(func() {
		if w.mode == Persistent {
			return
		}
		if err := os.RemoveAll(w.Dir); err != nil {
			w.log.Warn("Failed to remove temporary workspace", "dir", w.Dir, "error", err)
			return
		}
		w.log.Debug("Removed temporary workspace", "dir", w.Dir)
	})
}

// Place moves (or copies, when keepOriginal is set) src into the workspace
// as name and returns the destination path. A name already placed during
// this run gets a "(n)" counter so no page is replaced.
func (w *Workspace) Place(src, name string, keepOriginal bool) (string, error) {
	dst := filepath.Join(w.Dir, w.claim(name))

	if keepOriginal {
		if err := copyFile(src, dst); err != nil {
			w.release(filepath.Base(dst))
			return "", err
		}
		return dst, nil
	}

	if err := moveFile(src, dst); err != nil {
		w.release(filepath.Base(dst))
		return "", err
	}
	return dst, nil
}

func (w *Workspace) claim(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; w.claimed[candidate]; n++ {
		candidate = fmt.Sprintf("%s(%d)%s", stem, n, ext)
	}
	w.claimed[candidate] = true
	return candidate
}

func (w *Workspace) release(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.claimed, name)
}

// moveFile renames src to dst, falling back to copy and remove across
// filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("failed to move %s: %w", filepath.Base(src), err)
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("copied %s but failed to remove original: %w", filepath.Base(src), err)
	}
	return nil
}

// copyFile writes src to a temporary sibling of dst and renames it into
// place, so dst is never observed half written.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(src), err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".part-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to copy %s: %w", filepath.Base(src), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to flush %s: %w", filepath.Base(dst), err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to place %s: %w", filepath.Base(dst), err)
	}
	return nil
}

// Restore moves a placed file back out of the workspace to original. It
// refuses to replace an existing file.
func (w *Workspace) Restore(path, original string) error {
	if _, err := os.Lstat(original); err == nil {
		return fmt.Errorf("%s already exists", original)
	}
	if err := moveFile(path, original); err != nil {
		return err
	}
	w.release(filepath.Base(path))
	return nil
}
