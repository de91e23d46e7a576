package compliance

import (
	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// Analyze runs every scored document-level check for one candidate and
// returns the combined result plus the per-pillar viability detail the flag
// builder reuses. Viability runs over each pillar's best claim only; claims
// arrive best-first per pillar from the extractor.
func Analyze(fullText string, claims []model.Claim, cat *catalog.Catalog) (model.ComplianceResult, map[string]ViabilityResult) {
	fiscal, penalties := AnalyzeFiscal(fullText, cat)

	coverage, urgencyPenalties := AnalyzeUrgencies(fullText, cat)
	penalties = append(penalties, urgencyPenalties...)

	missing, pillarPenalties := MissingPriorityPillars(claims, cat)
	penalties = append(penalties, pillarPenalties...)

	viability := make(map[string]ViabilityResult)
	seen := make(map[string]bool)
	for _, claim := range claims {
		if claim.Placeholder || seen[claim.PillarID] {
			continue
		}
		seen[claim.PillarID] = true
		res := CheckViability(claim.Text, claim.PillarID, cat)
		if len(res.Penalties) == 0 {
			continue
		}
		viability[claim.PillarID] = res
		penalties = append(penalties, res.Penalties...)
	}

	total := 0.0
	for _, p := range penalties {
		total += p.Value
	}

	return model.ComplianceResult{
		Fiscal:          fiscal,
		UrgencyCoverage: coverage,
		MissingPillars:  missing,
		Penalties:       penalties,
		TotalPenalty:    total,
	}, viability
}
