package images

import "strings"

// Limits bounds what counts as a usable page scan.
type Limits struct {
	MaxFileSize int64    `yaml:"max_file_size"`
	MaxPixels   int64    `yaml:"max_pixels"`
	Formats     []string `yaml:"formats"`
}

// DefaultLimits accepts up to 100 MiB and 50 megapixels in the formats page
// scanners produce.
func DefaultLimits() Limits {
	return Limits{
		MaxFileSize: 100 * 1024 * 1024,
		MaxPixels:   50 * 1024 * 1024,
		Formats:     []string{"jpeg", "png", "bmp", "tiff"},
	}
}

func (l Limits) allows(format string) bool {
	if len(l.Formats) == 0 {
		return true
	}
	for _, f := range l.Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}
