package images

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Info describes a scan that passed validation.
type Info struct {
	Path   string
	Size   int64
	Format string
	Width  int
	Height int
}

// Validate checks that path is a fully decodable image within limits.
func Validate(path string, limits Limits) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("failed to stat image: %w", err)
	}
	info := Info{Path: path, Size: stat.Size()}

	if info.Size == 0 {
		return info, ErrEmpty
	}
	if limits.MaxFileSize > 0 && info.Size > limits.MaxFileSize {
		return info, fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size)
	}

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return info, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	info.Format, info.Width, info.Height = format, cfg.Width, cfg.Height

	if !limits.allows(format) {
		return info, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); limits.MaxPixels > 0 && pixels > limits.MaxPixels {
		return info, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("failed to rewind image: %w", err)
	}
	if _, _, err := image.Decode(file); err != nil {
		return info, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return info, nil
}
