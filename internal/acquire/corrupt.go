package acquire

import "github.com/ojocivico/planscore/internal/catalog"

// CorruptRatio returns the fraction of runes in text that belong to the
// catalog's corrupt glyph set. Embedded-subset fonts with broken cmaps leak
// private-use and garbled code points at rates clean text never reaches.
func CorruptRatio(text string, cat *catalog.Catalog) float64 {
	if text == "" {
		return 0
	}
	total, corrupt := 0, 0
	for _, r := range text {
		total++
		if cat.IsCorruptGlyph(r) {
			corrupt++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(corrupt) / float64(total)
}

// IsCorrupt applies the per-page detection threshold.
func IsCorrupt(text string, cat *catalog.Catalog) (bool, float64) {
	ratio := CorruptRatio(text, cat)
	return ratio > cat.Thresholds.CorruptRatio, ratio
}
