package compliance

import (
	"sort"
	"strings"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// AnalyzeUrgencies checks whether the document addresses each catalog
// urgency at all, by case-insensitive term match over the full text. Every
// uncovered urgency penalizes its designated pillar. Coverage is reported
// for covered topics too, with the terms that matched.
func AnalyzeUrgencies(fullText string, cat *catalog.Catalog) (map[string]model.UrgencyCoverage, []model.Adjustment) {
	lower := strings.ToLower(fullText)

	keys := make([]string, 0, len(cat.Urgencies))
	for k := range cat.Urgencies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	coverage := make(map[string]model.UrgencyCoverage, len(keys))
	var penalties []model.Adjustment
	for _, key := range keys {
		rule := cat.Urgencies[key]

		var found []string
		for _, term := range rule.Terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				found = append(found, term)
			}
		}

		coverage[key] = model.UrgencyCoverage{
			Covered:     len(found) > 0,
			TermsFound:  found,
			Description: rule.Description,
		}
		if len(found) > 0 {
			continue
		}

		penalties = append(penalties, model.Adjustment{
			Kind:     model.AdjustmentPenalty,
			Type:     "ignores_" + key,
			Value:    rule.Penalty,
			Reason:   "No aborda: " + rule.Description,
			Evidence: "Término no encontrado en el documento",
			PillarID: rule.PillarID,
		})
	}
	return coverage, penalties
}
