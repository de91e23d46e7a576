package compliance

import (
	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// ViabilityResult is the constitutional check over one claim text.
type ViabilityResult struct {
	Penalties []model.Adjustment
	Triggered map[string]bool // Rule type -> matched
}

// CheckViability runs the constitutional viability rule families over a
// claim's text. At most one penalty applies per family: proposing the same
// violation twice is not worse than once. Only clear violations are rules
// here; proposing a constitutional reform through lawful channels is a
// legitimate position and carries no rule.
func CheckViability(text, pillarID string, cat *catalog.Catalog) ViabilityResult {
	res := ViabilityResult{Triggered: make(map[string]bool, len(cat.Viability))}
	for i := range cat.Viability {
		rule := &cat.Viability[i]
		loc := rule.FirstMatch(text)
		if loc == nil {
			continue
		}
		res.Triggered[rule.Type] = true
		res.Penalties = append(res.Penalties, model.Adjustment{
			Kind:     model.AdjustmentPenalty,
			Type:     rule.Type,
			Value:    rule.Value,
			Reason:   rule.Reason,
			Evidence: contextWindow(text, loc),
			PillarID: pillarID,
		})
	}
	return res
}
