// Package pdf writes page scans into paginated PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/lehigh-university-libraries/newsbinder/internal/images"
)

var configOnce sync.Once

// Writer encodes one image per page, each page sized to its image.
type Writer struct {
	imp *pdfcpu.Import
}

func NewWriter() *Writer {
	// pdfcpu otherwise creates a config directory under the user's home.
	configOnce.Do(api.DisableConfigDir)
	return &Writer{imp: pdfcpu.DefaultImportConfig()}
}

// Write encodes pages into a new PDF at path. The document is written to a
// temporary file in the same directory, its page count verified, and only
// then renamed over path, so an existing document survives a failed write.
func (w *Writer) Write(path string, pages []*images.Page) error {
	if len(pages) == 0 {
		return ErrNoPages
	}

	readers := make([]io.Reader, len(pages))
	for i, p := range pages {
		readers[i] = bytes.NewReader(p.Data)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".newsbinder-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temporary document: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := api.ImportImages(nil, tmp, readers, w.imp, nil); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush document: %w", err)
	}

	count, err := PageCount(tmpName)
	if err != nil {
		return err
	}
	if count != len(pages) {
		return fmt.Errorf("%w: wrote %d, expected %d", ErrPageCountMismatch, count, len(pages))
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to place document: %w", err)
	}
	return nil
}

// PageCount reads the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}
