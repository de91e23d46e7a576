package model

// UrgencyCoverage records whether a national-urgency topic is addressed
// anywhere in the document
type UrgencyCoverage struct {
	Covered     bool     `json:"covered"`
	TermsFound  []string `json:"terms_found,omitempty"`
	Description string   `json:"description"`
}

// FiscalFlags are the document-level fiscal signals. Responsibility is
// informative; the other two carry penalties.
type FiscalFlags struct {
	AttacksFiscalRule    bool `json:"attacks_fiscal_rule"`
	ProposesDebtIncrease bool `json:"proposes_debt_increase"`
	ShowsResponsibility  bool `json:"shows_fiscal_responsibility"`
}

// ComplianceResult carries every scored penalty produced by the document-level
// analyzers, grouped for the audit trail. Informative flags live elsewhere so
// a consumer cannot mistake them for scored signals.
type ComplianceResult struct {
	Fiscal          FiscalFlags                `json:"fiscal_flags"`
	UrgencyCoverage map[string]UrgencyCoverage `json:"urgency_coverage"`
	MissingPillars  []string                   `json:"missing_priority_pillars"`
	Penalties       []Adjustment               `json:"penalties"` // All scored penalties, additive
	TotalPenalty    float64                    `json:"total_penalty"`
}

// PenaltiesFor returns the compliance penalties scoped to one pillar.
// Rules carry their designated pillar; a rule never applies elsewhere.
func (c ComplianceResult) PenaltiesFor(pillarID string) []Adjustment {
	var out []Adjustment
	for _, p := range c.Penalties {
		if p.PillarID == pillarID {
			out = append(out, p)
		}
	}
	return out
}
