package acquire

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

var pageHeader = regexp.MustCompile(`--- Página (\d+) ---`)

// PreTextPath returns the conventional pre-extracted text path for a
// document id, or "" when the directory is not configured.
func PreTextPath(dir, documentID string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, documentID+"_ocr_text.txt")
}

// LoadPreText reads a pre-extracted text file in page-marker format and
// returns its normalized pages. Operators hand-curate these files for PDFs
// the automated chain cannot read, so they win over every other route.
func LoadPreText(path string, cat *catalog.Catalog) ([]model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePreText(string(data), cat), nil
}

// ParsePreText splits marker-delimited content into pages. Text before the
// first marker is ignored, empty pages are dropped, and declared page numbers
// are kept as-is.
func ParsePreText(content string, cat *catalog.Catalog) []model.Page {
	headers := pageHeader.FindAllStringSubmatchIndex(content, -1)
	if len(headers) == 0 {
		return nil
	}

	var pages []model.Page
	for i, h := range headers {
		numStr := content[h[2]:h[3]]
		num, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}

		start := h[1]
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		text := NormalizeKeepParagraphs(strings.TrimSpace(content[start:end]), cat)
		if text == "" {
			continue
		}
		pages = append(pages, model.Page{Number: num, Text: text, Route: model.RoutePreText})
	}
	return pages
}
