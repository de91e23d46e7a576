package model

import "strings"

// ExtractionRoute identifies which rung of the acquisition chain produced a page
type ExtractionRoute string

const (
	RouteDirect   ExtractionRoute = "direct"    // Fast-path extraction from the PDF text layer
	RouteFallback ExtractionRoute = "fallback"  // Higher-fidelity non-OCR re-extraction
	RouteOCR      ExtractionRoute = "ocr"       // Rasterize + OCR engine
	RoutePreText  ExtractionRoute = "pre_text"  // Pre-extracted page-delimited text cache
)

// Page is one extracted, normalized page of a document
type Page struct {
	Number int             `json:"number"` // 1-based page number in the source PDF
	Text   string          `json:"text"`   // Normalized text, never empty (empty pages are omitted)
	Route  ExtractionRoute `json:"route"`  // How this page's text was obtained
}

// Document is the immutable result of text acquisition for one PDF.
// Re-extraction creates a new Document; nothing downstream mutates it.
type Document struct {
	ID        string          `json:"id"`                   // Stable document id (pdf basename, lowercased)
	Path      string          `json:"path,omitempty"`       // Source file path
	Pages     []Page          `json:"pages"`                // Ordered, only pages that yielded text
	Route     ExtractionRoute `json:"route"`                // Dominant route chosen for the document
	Corrupt   bool            `json:"corrupt"`              // Corruption heuristic verdict on the sample
	Ratio     float64         `json:"corrupt_ratio"`        // Corrupt-glyph ratio measured on the sample
	OCRPages  int             `json:"ocr_pages,omitempty"`  // Pages that went through OCR
	PageCount int             `json:"page_count"`           // Pages in the source PDF (including empty ones)
}

// FullText returns the pages joined into one string for whole-document
// analyzers. The concatenation is derived, not stored.
func (d *Document) FullText() string {
	var b strings.Builder
	for i, p := range d.Pages {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
