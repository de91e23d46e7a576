package model

// FlagSeverity indicates how serious an informative flag is
type FlagSeverity string

const (
	FlagSeverityMedium FlagSeverity = "medium"
	FlagSeverityHigh   FlagSeverity = "high"
)

// FlagEvidence is one supporting match behind an informative flag
type FlagEvidence struct {
	PillarID string `json:"pillar_id,omitempty"`
	Text     string `json:"text"`              // Bounded quote from the claim or record
	Pattern  string `json:"pattern,omitempty"` // Rule that matched
	Source   string `json:"source,omitempty"`  // External verification source, when any
}

// Flag is a single informative signal. Flags never carry a score value:
// anything requiring external verification or a value judgment is surfaced
// here instead of being folded into the numbers.
type Flag struct {
	Active      bool           `json:"active"`
	Severity    FlagSeverity   `json:"severity"`
	Description string         `json:"description"`
	Evidence    []FlagEvidence `json:"evidence,omitempty"`
}

// InformativeFlags groups every non-scoring signal reported alongside a
// candidate's score
type InformativeFlags struct {
	// Constitutional concerns detected in current claims (mirrors the scored
	// viability penalties, reported here for visibility)
	CurrentClaims map[string]Flag `json:"current_claims"`

	// Similarity to historically verifiable authoritarian governance patterns
	AuthoritarianPatterns map[string]Flag `json:"authoritarian_patterns"`

	// Claims that need negotiation between branches to be implemented
	PowerNegotiation map[string]Flag `json:"power_negotiation"`

	// Externally supplied, source-cited historical record evidence
	Historical map[string]Flag `json:"historical"`

	// Consistent historical + current problematic patterns
	Contradictions map[string]Flag `json:"contradictions"`
}

// HistoricalRecord is one verified external evidence entry about a candidate,
// loaded from static reference data. Never scored.
type HistoricalRecord struct {
	CandidateID string `json:"candidate_id" yaml:"candidate_id"`
	Category    string `json:"category" yaml:"category"` // anti_democratic_behavior, human_rights_violations, corruption_convictions
	Type        string `json:"type" yaml:"type"`
	Date        string `json:"date" yaml:"date"`
	Severity    string `json:"severity" yaml:"severity"`
	Description string `json:"description" yaml:"description"`
	Source      string `json:"source" yaml:"source"`
	VerifyURL   string `json:"verification_url" yaml:"verification_url"`
}
