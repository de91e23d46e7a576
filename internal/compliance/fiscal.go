// Package compliance runs the document-level analyzers: fiscal posture,
// national-urgency omissions, missing priority pillars, constitutional
// viability of claims, and the informative flag sets. Scored penalties and
// informative flags are produced by separate paths and never mix.
package compliance

import (
	"strings"
	"unicode/utf8"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

const evidenceLead = 50
const evidenceTail = 100
const evidenceCap = 200

// AnalyzeFiscal inspects full document text for fiscal-rule attacks and debt
// increase proposals. Only the first match per rule penalizes; repeating the
// same stance does not compound. The responsibility flag is informative only.
func AnalyzeFiscal(fullText string, cat *catalog.Catalog) (model.FiscalFlags, []model.Adjustment) {
	flags := model.FiscalFlags{
		ShowsResponsibility: cat.FiscalResponsibilityMatch(fullText),
	}

	var penalties []model.Adjustment
	if loc := cat.FiscalAttack.FirstMatch(fullText); loc != nil {
		flags.AttacksFiscalRule = true
		penalties = append(penalties, model.Adjustment{
			Kind:     model.AdjustmentPenalty,
			Type:     cat.FiscalAttack.Type,
			Value:    cat.FiscalAttack.Value,
			Reason:   cat.FiscalAttack.Reason,
			Evidence: contextWindow(fullText, loc),
			PillarID: cat.FiscalPillar(),
		})
	}
	if loc := cat.DebtIncrease.FirstMatch(fullText); loc != nil {
		flags.ProposesDebtIncrease = true
		penalties = append(penalties, model.Adjustment{
			Kind:     model.AdjustmentPenalty,
			Type:     cat.DebtIncrease.Type,
			Value:    cat.DebtIncrease.Value,
			Reason:   cat.DebtIncrease.Reason,
			Evidence: contextWindow(fullText, loc),
			PillarID: cat.FiscalPillar(),
		})
	}
	return flags, penalties
}

// contextWindow quotes the text around a match location for the audit trail.
func contextWindow(text string, loc []int) string {
	start := loc[0] - evidenceLead
	if start < 0 {
		start = 0
	}
	end := loc[1] + evidenceTail
	if end > len(text) {
		end = len(text)
	}
	for start < end && !utf8.RuneStart(text[start]) {
		start++
	}
	for end > start && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}
	snippet := strings.TrimSpace(text[start:end])
	runes := []rune(snippet)
	if len(runes) > evidenceCap {
		snippet = string(runes[:evidenceCap])
	}
	return snippet
}
