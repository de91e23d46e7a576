// Package report renders run results: the JSON artifacts consumed by the
// frontend and a terminal summary. The detailed analysis here is mechanical
// wording over already-computed signals.
package report

import (
	"sort"

	"github.com/ojocivico/planscore/internal/model"
)

// Risk scoring weights. The level is coarse on purpose: it summarizes how
// many independent warning signals fired, not their magnitude.
const (
	riskUncoveredUrgency = 1
	riskFiscalAttack     = 3
	riskDebtIncrease     = 2
	riskMissingPillar    = 1
	riskResponsibility   = -1

	riskHighAt   = 5
	riskMediumAt = 2
)

// Detailed derives the per-candidate analysis from the document and its
// compliance result.
func Detailed(candidateID string, doc *model.Document, comp model.ComplianceResult) model.DetailedAnalysis {
	analysis := model.DetailedAnalysis{
		CandidateID: candidateID,
		DocumentID:  doc.ID,
		TotalPages:  len(doc.Pages),
	}

	risk := 0

	keys := make([]string, 0, len(comp.UrgencyCoverage))
	for key := range comp.UrgencyCoverage {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cov := comp.UrgencyCoverage[key]
		if cov.Covered {
			analysis.Strengths = append(analysis.Strengths, "Aborda: "+cov.Description)
		} else {
			analysis.Weaknesses = append(analysis.Weaknesses, "No aborda: "+cov.Description)
			risk += riskUncoveredUrgency
		}
	}

	if comp.Fiscal.AttacksFiscalRule {
		analysis.Weaknesses = append(analysis.Weaknesses, "Ataca la regla fiscal")
		risk += riskFiscalAttack
	}
	if comp.Fiscal.ProposesDebtIncrease {
		analysis.Weaknesses = append(analysis.Weaknesses, "Propone aumentar deuda pública")
		risk += riskDebtIncrease
	}
	if comp.Fiscal.ShowsResponsibility {
		analysis.Strengths = append(analysis.Strengths, "Demuestra responsabilidad fiscal")
		risk += riskResponsibility
	}

	for _, pillarID := range comp.MissingPillars {
		analysis.Weaknesses = append(analysis.Weaknesses, "Sin propuesta en pilar prioritario "+pillarID)
		risk += riskMissingPillar
	}

	switch {
	case risk >= riskHighAt:
		analysis.RiskLevel = model.RiskHigh
	case risk >= riskMediumAt:
		analysis.RiskLevel = model.RiskMedium
	default:
		analysis.RiskLevel = model.RiskLow
	}
	return analysis
}
