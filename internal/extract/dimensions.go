package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

const evidenceLead = 10
const evidenceCap = 100
const noEvidence = "no_especificado"

// EvaluateDimensions runs the four binary detectors over a paragraph and
// returns the flags plus the audit snippets. Existence is evaluated first
// because the caller discards paragraphs without it.
func EvaluateDimensions(paragraph string, cat *catalog.Catalog) (model.Dimensions, model.DimensionEvidence) {
	dims := model.Dimensions{}
	ev := model.DimensionEvidence{
		TimingText:    noEvidence,
		MechanismText: noEvidence,
		FundingText:   noEvidence,
	}

	if _, ok := cat.MatchExistence(paragraph); ok {
		dims.Existence = 1
	}
	if m, ok := cat.MatchTiming(paragraph); ok {
		dims.Timing = 1
		ev.TimingText = strings.TrimSpace(paragraph[m.Start:m.End])
	}
	if m, ok := cat.MatchMechanism(paragraph); ok {
		dims.Mechanism = 1
		ev.MechanismText = window(paragraph, m, cat.Thresholds.EvidenceWindow)
	}
	if m, ok := cat.MatchFunding(paragraph); ok {
		dims.Funding = 1
		ev.FundingText = window(paragraph, m, cat.Thresholds.EvidenceWindow)
	}
	return dims, ev
}

// window keeps a little context before the match and the configured tail
// after it, capped so evidence stays quotable.
func window(text string, m catalog.DimensionMatch, tail int) string {
	start := m.Start - evidenceLead
	if start < 0 {
		start = 0
	}
	end := m.End + tail
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
	return truncateRunes(snippet, evidenceCap)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
