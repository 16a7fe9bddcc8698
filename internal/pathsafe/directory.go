package pathsafe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxPathLength mirrors the classic Windows MAX_PATH so output trees stay
// portable to the machines the scans are archived on.
const MaxPathLength = 260

// DirOptions controls ValidateDirectory.
type DirOptions struct {
	MustExist       bool
	CreateIfMissing bool
	RequireWritable bool
}

// ValidateDirectory checks a user supplied directory path and returns its
// absolute, cleaned form.
func ValidateDirectory(path string, opts DirOptions) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return "", ErrNullByte
	}
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return "", fmt.Errorf("%w: %s", ErrTraversal, path)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if len(abs) > MaxPathLength {
		return "", fmt.Errorf("%w: %d > %d", ErrPathTooLong, len(abs), MaxPathLength)
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		if opts.CreateIfMissing {
			if err := os.MkdirAll(abs, 0755); err != nil {
				return "", fmt.Errorf("failed to create directory %s: %w", abs, err)
			}
			break
		}
		if opts.MustExist {
			return "", fmt.Errorf("%w: %s", ErrNotExist, abs)
		}
		return abs, nil
	case err != nil:
		return "", fmt.Errorf("failed to stat %s: %w", abs, err)
	case !info.IsDir():
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	if opts.RequireWritable {
		if err := probeWritable(abs); err != nil {
			return "", err
		}
	}
	return abs, nil
}

func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".newsbinder-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNotWritable, dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
