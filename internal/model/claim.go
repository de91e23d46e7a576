package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Dimension names the four binary completeness signals of a claim
type Dimension string

const (
	DimExistence Dimension = "existence" // Concrete action, not aspiration
	DimTiming    Dimension = "timing"    // Verifiable time horizon
	DimMechanism Dimension = "mechanism" // Named implementation vehicle
	DimFunding   Dimension = "funding"   // Financing source language
)

// Dimensions holds the 0/1 flag per dimension
type Dimensions struct {
	Existence int `json:"existence"`
	Timing    int `json:"timing"`
	Mechanism int `json:"mechanism"`
	Funding   int `json:"funding"`
}

// RawScore is the sum of the four flags, always in [0,4]
func (d Dimensions) RawScore() int {
	return d.Existence + d.Timing + d.Mechanism + d.Funding
}

// DimensionEvidence is the audit snippet per dimension; used for display only,
// never for scoring
type DimensionEvidence struct {
	TimingText    string `json:"timing_text"`
	MechanismText string `json:"mechanism_text"`
	FundingText   string `json:"funding_text"`
}

// Claim is one extracted candidate proposal tied to a pillar
type Claim struct {
	ID          string            `json:"claim_id"`     // Deterministic: derived from (document id, text)
	CandidateID string            `json:"candidate_id"`
	DocumentID  string            `json:"document_id"`
	PillarID    string            `json:"pillar_id"`
	Page        int               `json:"page"`
	Title       string            `json:"title"`        // First chars of the paragraph, bounded
	Text        string            `json:"text"`         // Bounded paragraph text
	Snippet     string            `json:"snippet"`      // Short quote for evidence display
	Dimensions  Dimensions        `json:"dimensions"`
	Evidence    DimensionEvidence `json:"evidence"`
	RawScore    int               `json:"raw_score"`
	Placeholder bool              `json:"placeholder"` // True when no claim was found for the pillar
}

// Valid reports whether the claim counts for scoring: existence is mandatory
// and the raw score must reach the catalog's validity threshold.
func (c Claim) Valid(minRawScore int) bool {
	return !c.Placeholder && c.Dimensions.Existence == 1 && c.RawScore >= minRawScore
}

// ClaimID derives the deterministic claim identifier from the document id and
// the claim text, so re-runs over unchanged input produce identical ids.
func ClaimID(documentID, text string) string {
	prefix := text
	if len(prefix) > 100 {
		prefix = prefix[:100]
	}
	sum := sha256.Sum256([]byte(documentID + ":" + prefix))
	return fmt.Sprintf("%s-%s", strings.ToLower(documentID), hex.EncodeToString(sum[:])[:8])
}
