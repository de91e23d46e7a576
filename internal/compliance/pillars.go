package compliance

import (
	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// MissingPriorityPillars finds priority pillars for which the candidate has
// no concrete retained claim. A placeholder does not count as a claim.
func MissingPriorityPillars(claims []model.Claim, cat *catalog.Catalog) ([]string, []model.Adjustment) {
	concrete := make(map[string]bool)
	for _, c := range claims {
		if !c.Placeholder && c.Dimensions.Existence == 1 {
			concrete[c.PillarID] = true
		}
	}

	var missing []string
	var penalties []model.Adjustment
	for _, pillarID := range cat.PriorityPillars() {
		if concrete[pillarID] {
			continue
		}
		missing = append(missing, pillarID)
		penalties = append(penalties, model.Adjustment{
			Kind:     model.AdjustmentPenalty,
			Type:     "missing_priority_pillar",
			Value:    cat.Thresholds.MissingPriority,
			Reason:   "Sin propuesta concreta en pilar prioritario " + pillarID,
			PillarID: pillarID,
		})
	}
	return missing, penalties
}
