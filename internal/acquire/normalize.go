package acquire

import (
	"regexp"
	"strings"

	"github.com/ojocivico/planscore/internal/catalog"
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)
var multiSpace = regexp.MustCompile(`\s+`)

// Normalize cleans raw extracted text: control characters are stripped, the
// catalog's documented OCR corrections are applied, and whitespace collapses
// to single spaces. Classification and dimension patterns assume this shape.
func Normalize(text string, cat *catalog.Catalog) string {
	if text == "" {
		return ""
	}
	text = controlChars.ReplaceAllString(text, "")
	for i := range cat.Corrections {
		text = cat.Corrections[i].Apply(text)
	}
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeKeepParagraphs is like Normalize but preserves blank-line
// paragraph boundaries, which the claim extractor splits on.
func NormalizeKeepParagraphs(text string, cat *catalog.Catalog) string {
	if text == "" {
		return ""
	}
	text = controlChars.ReplaceAllString(text, "")
	for i := range cat.Corrections {
		text = cat.Corrections[i].Apply(text)
	}

	paras := strings.Split(text, "\n\n")
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		p = multiSpace.ReplaceAllString(p, " ")
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
