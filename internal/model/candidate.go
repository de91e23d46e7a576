package model

// Candidate is externally curated identity metadata. The pipeline reads it to
// resolve a stable candidate id and never regenerates or overwrites it.
type Candidate struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
	DocumentID    string `json:"pdf_id"`
	Title         string `json:"pdf_title,omitempty"`
	URL           string `json:"pdf_url,omitempty"`
}

// RiskLevel is the coarse classification derived mechanically from penalties
// and omissions
type RiskLevel string

const (
	RiskLow    RiskLevel = "BAJO"
	RiskMedium RiskLevel = "MEDIO"
	RiskHigh   RiskLevel = "ALTO"
)

// DetailedAnalysis is the per-candidate narrative derived mechanically from
// the same signals that produced the score
type DetailedAnalysis struct {
	CandidateID string    `json:"candidate_id"`
	DocumentID  string    `json:"document_id"`
	TotalPages  int       `json:"total_pages"`
	Strengths   []string  `json:"strengths"`
	Weaknesses  []string  `json:"weaknesses"`
	RiskLevel   RiskLevel `json:"risk_level"`
	LLM         *Summary  `json:"llm,omitempty"` // Optional prose summary, never affects scores
}

// Summary is an optional LLM-written prose rendering of the mechanical
// analysis. It is clearly separated and can never alter any number.
type Summary struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
