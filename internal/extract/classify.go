package extract

import (
	"strings"

	"github.com/ojocivico/planscore/internal/catalog"
)

// Classify assigns a paragraph to its primary pillar by counting distinct
// keyword hits per pillar, case-insensitively. A pillar qualifies only when
// it reaches the catalog's minimum hit count; among qualifying pillars the
// highest count wins and ties resolve to catalog order. Returns "" when no
// pillar qualifies.
func Classify(paragraph string, cat *catalog.Catalog) string {
	lower := strings.ToLower(paragraph)

	best := ""
	bestCount := 0
	for _, pillar := range cat.Pillars {
		count := 0
		for _, kw := range cat.Keywords[pillar.ID] {
			if strings.Contains(lower, strings.ToLower(kw)) {
				count++
			}
		}
		if count < cat.Thresholds.MinKeywordHits {
			continue
		}
		if count > bestCount {
			best = pillar.ID
			bestCount = count
		}
	}
	return best
}
