// Package score computes pillar and candidate scores. It is a pure function
// of previously produced inputs: retained claims and the compliance result.
// It performs no pattern matching or text inspection of its own, so a given
// input always reproduces the same numbers.
package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

const maxEffective = 4.0

// Candidate scores one candidate from their retained claims and compliance
// result. The returned pillar scores are in catalog order, one per pillar.
func Candidate(candidateID, documentID string, claims []model.Claim, comp model.ComplianceResult, cat *catalog.Catalog) model.CandidateScore {
	byPillar := make(map[string][]model.Claim)
	for _, c := range claims {
		byPillar[c.PillarID] = append(byPillar[c.PillarID], c)
	}

	var pillarScores []model.PillarScore
	for _, pillar := range cat.Pillars {
		pillarScores = append(pillarScores, scorePillar(pillar, byPillar[pillar.ID], comp, cat))
	}

	return model.CandidateScore{
		CandidateID:  candidateID,
		DocumentID:   documentID,
		PillarScores: pillarScores,
		Compliance:   comp,
		Overall:      aggregate(pillarScores, comp, cat),
	}
}

func scorePillar(pillar catalog.Pillar, claims []model.Claim, comp model.ComplianceResult, cat *catalog.Catalog) model.PillarScore {
	var valid []model.Claim
	for _, c := range claims {
		if c.Valid(cat.Thresholds.MinRawScore) {
			valid = append(valid, c)
		}
	}

	base := 0
	for _, c := range valid {
		if c.RawScore > base {
			base = c.RawScore
		}
	}

	var adjustments []model.Adjustment

	bonusMultiple := 0.0
	if len(valid) >= cat.Thresholds.BonusMultipleAt {
		bonusMultiple = cat.Thresholds.BonusMultiple
		adjustments = append(adjustments, model.Adjustment{
			Kind:     model.AdjustmentBonus,
			Type:     "multiple_claims",
			Value:    bonusMultiple,
			Reason:   fmt.Sprintf("%d propuestas válidas en el pilar", len(valid)),
			PillarID: pillar.ID,
		})
	}

	complete, funded := 0, 0
	for _, c := range valid {
		if c.RawScore == 4 {
			complete++
		}
		if c.Dimensions.Funding == 1 && c.RawScore >= 3 {
			funded++
		}
	}
	bonusQuality := float64(complete)*cat.Thresholds.BonusComplete + float64(funded)*cat.Thresholds.BonusFunded
	if complete > 0 {
		adjustments = append(adjustments, model.Adjustment{
			Kind:     model.AdjustmentBonus,
			Type:     "complete_claims",
			Value:    float64(complete) * cat.Thresholds.BonusComplete,
			Reason:   fmt.Sprintf("%d propuestas completas (4/4)", complete),
			PillarID: pillar.ID,
		})
	}
	if funded > 0 {
		adjustments = append(adjustments, model.Adjustment{
			Kind:     model.AdjustmentBonus,
			Type:     "funded_claims",
			Value:    float64(funded) * cat.Thresholds.BonusFunded,
			Reason:   fmt.Sprintf("%d propuestas con financiamiento identificado", funded),
			PillarID: pillar.ID,
		})
	}

	penalties := comp.PenaltiesFor(pillar.ID)
	penalty := 0.0
	for _, p := range penalties {
		penalty += p.Value
	}
	adjustments = append(adjustments, penalties...)

	effective := clamp(float64(base) + bonusMultiple + bonusQuality + penalty)
	normalized := effective / maxEffective

	return model.PillarScore{
		PillarID:      pillar.ID,
		RawScore:      base,
		BonusMultiple: bonusMultiple,
		BonusQuality:  bonusQuality,
		Penalty:       penalty,
		Effective:     effective,
		Normalized:    normalized,
		Weighted:      normalized * pillar.Weight,
		ValidClaims:   len(valid),
		Adjustments:   adjustments,
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxEffective {
		return maxEffective
	}
	return v
}

func aggregate(scores []model.PillarScore, comp model.ComplianceResult, cat *catalog.Catalog) model.Aggregates {
	priority := make(map[string]bool)
	for _, id := range cat.PriorityPillars() {
		priority[id] = true
	}
	critical := make(map[string]bool)
	for _, id := range cat.CriticalPillars() {
		critical[id] = true
	}

	agg := model.Aggregates{TotalPenalties: comp.TotalPenalty}
	for _, ps := range scores {
		agg.RawSum += ps.RawScore
		agg.EffectiveSum += ps.Effective
		agg.WeightedSum += ps.Weighted
		if priority[ps.PillarID] {
			agg.PriorityWeighted += ps.Weighted
		}
		if critical[ps.PillarID] {
			agg.CriticalWeighted += ps.Weighted
		}
	}
	agg.Notes = notes(comp)
	return agg
}

// notes is a mechanical summary of the salient compliance outcomes. Wording
// is fixed; nothing here is generated.
func notes(comp model.ComplianceResult) string {
	var parts []string
	if comp.Fiscal.AttacksFiscalRule {
		parts = append(parts, "ataca regla fiscal")
	}
	if comp.Fiscal.ProposesDebtIncrease {
		parts = append(parts, "propone más deuda")
	}
	if comp.Fiscal.ShowsResponsibility {
		parts = append(parts, "muestra responsabilidad fiscal")
	}

	var omitted []string
	for key, cov := range comp.UrgencyCoverage {
		if !cov.Covered {
			omitted = append(omitted, key)
		}
	}
	sort.Strings(omitted)
	if len(omitted) > 0 {
		parts = append(parts, "omite: "+strings.Join(omitted, ", "))
	}
	if len(comp.MissingPillars) > 0 {
		parts = append(parts, "sin propuesta en: "+strings.Join(comp.MissingPillars, ", "))
	}
	return strings.Join(parts, "; ")
}
