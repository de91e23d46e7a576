package acquire

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// fallbackPages extracts the text layer with an independent parser. PDFs with
// broken font cmaps often decode cleanly here when the fast path emits
// garbage, and it is still far cheaper than rasterizing for OCR.
func fallbackPages(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]string, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not sink the route.
			continue
		}
		pages[i-1] = text
	}
	return pages, nil
}
