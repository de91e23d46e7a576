// Package extract turns normalized document pages into classified claims
// with completeness dimensions. Everything here is deterministic pattern
// work over the rule catalog; no text generation is involved.
package extract

import (
	"sort"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

const titleLimit = 60
const snippetLimit = 240

// Extractor extracts claims from documents using one catalog version.
type Extractor struct {
	cat *catalog.Catalog
}

// New creates an Extractor.
func New(cat *catalog.Catalog) *Extractor {
	return &Extractor{cat: cat}
}

// Claims extracts the retained claims of a document: per pillar, the top
// valid claims sorted by raw score then funding, capped at the catalog
// limit. Pillars with no valid claim get a placeholder so downstream stages
// see every pillar exactly once.
func (e *Extractor) Claims(doc *model.Document, candidateID string) []model.Claim {
	byPillar := e.collect(doc, candidateID)

	var out []model.Claim
	for _, pillar := range e.cat.Pillars {
		claims := byPillar[pillar.ID]
		if len(claims) == 0 {
			out = append(out, e.placeholder(doc, candidateID, pillar.ID))
			continue
		}

		// Stable sort keeps document order among fully tied claims.
		sort.SliceStable(claims, func(i, j int) bool {
			if claims[i].RawScore != claims[j].RawScore {
				return claims[i].RawScore > claims[j].RawScore
			}
			return claims[i].Dimensions.Funding > claims[j].Dimensions.Funding
		})
		if len(claims) > e.cat.Thresholds.MaxClaimsPerPillar {
			claims = claims[:e.cat.Thresholds.MaxClaimsPerPillar]
		}
		out = append(out, claims...)
	}
	return out
}

// collect walks every paragraph of every page and keeps the valid claims
// grouped by pillar.
func (e *Extractor) collect(doc *model.Document, candidateID string) map[string][]model.Claim {
	byPillar := make(map[string][]model.Claim)

	for _, page := range doc.Pages {
		for _, paragraph := range Segment(page.Text) {
			if len([]rune(paragraph)) < e.cat.Thresholds.MinParagraphLen {
				continue
			}

			pillarID := Classify(paragraph, e.cat)
			if pillarID == "" {
				continue
			}

			dims, evidence := EvaluateDimensions(paragraph, e.cat)
			if dims.Existence == 0 {
				continue
			}

			text := truncateRunes(paragraph, e.cat.Thresholds.MaxClaimLen)
			claim := model.Claim{
				ID:          model.ClaimID(doc.ID, text),
				CandidateID: candidateID,
				DocumentID:  doc.ID,
				PillarID:    pillarID,
				Page:        page.Number,
				Title:       ellipsize(paragraph, titleLimit),
				Text:        text,
				Snippet:     ellipsize(paragraph, snippetLimit),
				Dimensions:  dims,
				Evidence:    evidence,
				RawScore:    dims.RawScore(),
			}
			if !claim.Valid(e.cat.Thresholds.MinRawScore) {
				continue
			}
			byPillar[pillarID] = append(byPillar[pillarID], claim)
		}
	}
	return byPillar
}

func (e *Extractor) placeholder(doc *model.Document, candidateID, pillarID string) model.Claim {
	return model.Claim{
		ID:          model.ClaimID(doc.ID, "placeholder:"+pillarID),
		CandidateID: candidateID,
		DocumentID:  doc.ID,
		PillarID:    pillarID,
		Title:       "Sin propuesta concreta",
		Text:        "Sin propuesta concreta identificada para este pilar",
		Evidence: model.DimensionEvidence{
			TimingText:    noEvidence,
			MechanismText: noEvidence,
			FundingText:   noEvidence,
		},
		Placeholder: true,
	}
}

// ellipsize bounds s at limit runes, marking the cut.
func ellipsize(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "…"
}
