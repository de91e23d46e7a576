package model

// AdjustmentKind separates audit-trail line items
type AdjustmentKind string

const (
	AdjustmentBonus   AdjustmentKind = "bonus"
	AdjustmentPenalty AdjustmentKind = "penalty"
)

// Adjustment is one penalty or bonus line item. The full list is the audit
// trail and is retained even when it nets to zero.
type Adjustment struct {
	Kind     AdjustmentKind `json:"kind"`
	Type     string         `json:"type"`               // Rule identifier, e.g. "attacks_fiscal_rule"
	Value    float64        `json:"value"`              // Signed: bonuses positive, penalties negative
	Reason   string         `json:"reason"`             // Human-readable justification
	Evidence string         `json:"evidence,omitempty"` // Context window of the triggering match
	PillarID string         `json:"pillar_id,omitempty"`
}

// PillarScore is the scored outcome for one (candidate, pillar) pair
type PillarScore struct {
	PillarID      string       `json:"pillar_id"`
	RawScore      int          `json:"raw_score"`       // Best retained claim, 0 when none
	BonusMultiple float64      `json:"bonus_multiple"`  // Step bonus for 3+ valid claims
	BonusQuality  float64      `json:"bonus_quality"`   // Complete/funded claim bonuses
	Penalty       float64      `json:"penalty"`         // Sum of applicable penalty values (<= 0)
	Effective     float64      `json:"effective_score"` // Clamped to [0,4]
	Normalized    float64      `json:"normalized"`      // effective / 4
	Weighted      float64      `json:"weighted"`        // normalized * pillar weight
	ValidClaims   int          `json:"valid_claims"`
	Adjustments   []Adjustment `json:"adjustments"` // Complete bonus/penalty audit trail
}

// Aggregates are the candidate-level sums across pillars
type Aggregates struct {
	RawSum            int     `json:"raw_sum"`
	EffectiveSum      float64 `json:"effective_sum"`
	WeightedSum       float64 `json:"weighted_sum"`
	PriorityWeighted  float64 `json:"priority_weighted_sum"`
	CriticalWeighted  float64 `json:"critical_weighted_sum"`
	TotalPenalties    float64 `json:"total_penalties_applied"`
	Notes             string  `json:"notes"` // Mechanical summary of salient penalties/omissions
}

// CandidateScore is the complete scored record for one candidate
type CandidateScore struct {
	CandidateID  string           `json:"candidate_id"`
	DocumentID   string           `json:"document_id"`
	PillarScores []PillarScore    `json:"pillar_scores"` // Exactly one per catalog pillar, catalog order
	Compliance   ComplianceResult `json:"compliance"`
	Flags        InformativeFlags `json:"informative_flags"` // Never affects any number above
	Overall      Aggregates       `json:"overall"`
}

// RankingMetric selects which aggregate a ranking is computed over
type RankingMetric string

const (
	MetricOverall  RankingMetric = "overall_weighted"
	MetricPriority RankingMetric = "priority_weighted"
	MetricCritical RankingMetric = "critical_weighted"
)

// RankingEntry is one row of an ordered ranking
type RankingEntry struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	Value       float64 `json:"value"`
}

// Ranking is the full ranking output across all supported metrics
type Ranking struct {
	MethodVersion string                          `json:"method_version"`
	Weights       map[string]float64              `json:"weights"`
	Priority      []string                        `json:"priority_pillars"`
	Critical      []string                        `json:"critical_pillars"`
	Entries       map[RankingMetric][]RankingEntry `json:"rankings"`
}
