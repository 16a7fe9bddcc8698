package images

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
)

// Page is an encoded image ready to be placed on a PDF page. JPEG and PNG
// scans are passed through untouched; other formats are re-encoded as PNG.
type Page struct {
	Path   string
	Format string
	Data   []byte
}

// Load reads the page at path.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	switch format {
	case "jpeg", "png":
		return &Page{Path: path, Format: format, Data: data}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to re-encode %s as png: %w", format, err)
	}

	return &Page{Path: path, Format: "png", Data: buf.Bytes()}, nil
}

// Release drops the page's image data.
func (p *Page) Release() {
	p.Data = nil
}
