package acquire

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// fitzReader is the fast extraction path. It reads the embedded text layer
// directly and doubles as the rasterizer when a page has to go through OCR.
type fitzReader struct {
	doc *fitz.Document
}

func openFitz(path string) (*fitzReader, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &fitzReader{doc: doc}, nil
}

func (r *fitzReader) pageCount() int {
	return r.doc.NumPage()
}

// pageText returns the raw text layer of a zero-based page.
func (r *fitzReader) pageText(i int) (string, error) {
	text, err := r.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", i+1, err)
	}
	return text, nil
}

// renderPNG rasterizes a zero-based page for OCR at the given DPI.
func (r *fitzReader) renderPNG(i int, dpi float64) ([]byte, error) {
	img, err := r.doc.ImageDPI(i, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", i+1, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", i+1, err)
	}
	return buf.Bytes(), nil
}

func (r *fitzReader) close() error {
	return r.doc.Close()
}
