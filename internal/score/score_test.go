package score

import (
	"strings"
	"testing"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func claim(pillarID string, existence, timing, mechanism, funding int) model.Claim {
	dims := model.Dimensions{Existence: existence, Timing: timing, Mechanism: mechanism, Funding: funding}
	return model.Claim{
		ID:         model.ClaimID("doc", pillarID+"x"),
		PillarID:   pillarID,
		Dimensions: dims,
		RawScore:   dims.RawScore(),
	}
}

func TestCandidate_OnePerPillarInCatalogOrder(t *testing.T) {
	cat := loadCatalog(t)

	score := Candidate("cand-1", "doc-1", nil, model.ComplianceResult{}, cat)
	if len(score.PillarScores) != len(cat.Pillars) {
		t.Fatalf("expected %d pillar scores, got %d", len(cat.Pillars), len(score.PillarScores))
	}
	for i, ps := range score.PillarScores {
		if ps.PillarID != cat.Pillars[i].ID {
			t.Errorf("pillar %d: expected %s, got %s", i, cat.Pillars[i].ID, ps.PillarID)
		}
		if ps.Effective != 0 {
			t.Errorf("pillar %s: expected zero effective score with no claims, got %v", ps.PillarID, ps.Effective)
		}
	}
}

func TestScorePillar_BaseIsBestClaim(t *testing.T) {
	cat := loadCatalog(t)

	claims := []model.Claim{
		claim("P3", 1, 1, 0, 0), // 2/4
		claim("P3", 1, 1, 1, 1), // 4/4
	}
	score := Candidate("cand-1", "doc-1", claims, model.ComplianceResult{}, cat)

	p3 := pillarScore(t, score, "P3")
	if p3.RawScore != 4 {
		t.Errorf("expected base 4 from the best claim, got %d", p3.RawScore)
	}
	if p3.ValidClaims != 2 {
		t.Errorf("expected 2 valid claims, got %d", p3.ValidClaims)
	}
}

func TestScorePillar_StepBonusAtThreeValidClaims(t *testing.T) {
	cat := loadCatalog(t)

	two := []model.Claim{claim("P3", 1, 1, 0, 0), claim("P3", 1, 0, 1, 0)}
	three := append(two, claim("P3", 1, 0, 0, 1))

	if got := pillarScore(t, Candidate("c", "d", two, model.ComplianceResult{}, cat), "P3").BonusMultiple; got != 0 {
		t.Errorf("expected no step bonus at 2 valid claims, got %v", got)
	}
	if got := pillarScore(t, Candidate("c", "d", three, model.ComplianceResult{}, cat), "P3").BonusMultiple; got != cat.Thresholds.BonusMultiple {
		t.Errorf("expected step bonus %v at 3 valid claims, got %v", cat.Thresholds.BonusMultiple, got)
	}
}

func TestScorePillar_QualityBonuses(t *testing.T) {
	cat := loadCatalog(t)

	// One complete 4/4 claim (also funded with raw >= 3): both quality
	// bonuses apply once.
	claims := []model.Claim{claim("P3", 1, 1, 1, 1)}
	p3 := pillarScore(t, Candidate("c", "d", claims, model.ComplianceResult{}, cat), "P3")

	want := cat.Thresholds.BonusComplete + cat.Thresholds.BonusFunded
	if p3.BonusQuality != want {
		t.Errorf("expected quality bonus %v, got %v", want, p3.BonusQuality)
	}

	// Funded but only 2/4: no quality bonus at all.
	claims = []model.Claim{claim("P3", 1, 0, 0, 1)}
	p3 = pillarScore(t, Candidate("c", "d", claims, model.ComplianceResult{}, cat), "P3")
	if p3.BonusQuality != 0 {
		t.Errorf("expected no quality bonus for a 2/4 claim, got %v", p3.BonusQuality)
	}
}

func TestScorePillar_EffectiveClampedToFour(t *testing.T) {
	cat := loadCatalog(t)

	// Three complete claims: base 4 plus step and quality bonuses would
	// exceed the cap.
	claims := []model.Claim{
		claim("P3", 1, 1, 1, 1),
		claim("P3", 1, 1, 1, 1),
		claim("P3", 1, 1, 1, 1),
	}
	p3 := pillarScore(t, Candidate("c", "d", claims, model.ComplianceResult{}, cat), "P3")
	if p3.Effective != 4.0 {
		t.Errorf("expected effective score clamped to 4.0, got %v", p3.Effective)
	}
	if p3.Normalized != 1.0 {
		t.Errorf("expected normalized 1.0, got %v", p3.Normalized)
	}
}

func TestScorePillar_EffectiveClampedToZero(t *testing.T) {
	cat := loadCatalog(t)

	comp := model.ComplianceResult{
		Penalties: []model.Adjustment{{
			Kind:     model.AdjustmentPenalty,
			Type:     "fiscal_rule_attack",
			Value:    -2.0,
			PillarID: "P1",
		}},
	}
	comp.TotalPenalty = -2.0

	// No valid P1 claim: base 0, penalty -2 clamps at 0.
	p1 := pillarScore(t, Candidate("c", "d", nil, comp, cat), "P1")
	if p1.Effective != 0 {
		t.Errorf("expected effective score clamped to 0, got %v", p1.Effective)
	}
	if p1.Penalty != -2.0 {
		t.Errorf("expected recorded penalty -2.0, got %v", p1.Penalty)
	}
}

func TestScorePillar_PenaltyStaysOnItsPillar(t *testing.T) {
	cat := loadCatalog(t)

	comp := model.ComplianceResult{
		Penalties: []model.Adjustment{{
			Kind:     model.AdjustmentPenalty,
			Type:     "ignores_security_operations",
			Value:    -1.0,
			PillarID: "P3",
		}},
	}
	claims := []model.Claim{claim("P3", 1, 1, 1, 0), claim("P4", 1, 1, 1, 0)}
	score := Candidate("c", "d", claims, comp, cat)

	if got := pillarScore(t, score, "P3").Penalty; got != -1.0 {
		t.Errorf("expected -1.0 on P3, got %v", got)
	}
	if got := pillarScore(t, score, "P4").Penalty; got != 0 {
		t.Errorf("expected no penalty on P4, got %v", got)
	}
}

func TestCandidate_WeightedAggregates(t *testing.T) {
	cat := loadCatalog(t)

	claims := []model.Claim{claim("P3", 1, 1, 1, 1)}
	score := Candidate("c", "d", claims, model.ComplianceResult{}, cat)

	// Only P3 scored: weighted sum is its normalized score times its weight.
	p3 := pillarScore(t, score, "P3")
	if score.Overall.WeightedSum != p3.Weighted {
		t.Errorf("expected weighted sum %v, got %v", p3.Weighted, score.Overall.WeightedSum)
	}

	// P3 is both priority and critical, so all three aggregates agree here.
	if score.Overall.PriorityWeighted != p3.Weighted {
		t.Errorf("expected priority aggregate %v, got %v", p3.Weighted, score.Overall.PriorityWeighted)
	}
	if score.Overall.CriticalWeighted != p3.Weighted {
		t.Errorf("expected critical aggregate %v, got %v", p3.Weighted, score.Overall.CriticalWeighted)
	}
}

func TestCandidate_NotesMentionOmissions(t *testing.T) {
	cat := loadCatalog(t)

	comp := model.ComplianceResult{
		Fiscal:         model.FiscalFlags{AttacksFiscalRule: true},
		MissingPillars: []string{"P4"},
		UrgencyCoverage: map[string]model.UrgencyCoverage{
			"ccss_crisis": {Covered: false, Description: "Crisis de la CCSS"},
		},
	}
	score := Candidate("c", "d", nil, comp, cat)

	notes := score.Overall.Notes
	if !strings.Contains(notes, "regla fiscal") {
		t.Errorf("notes should mention the fiscal rule attack: %q", notes)
	}
	if !strings.Contains(notes, "P4") {
		t.Errorf("notes should name the missing pillar: %q", notes)
	}
}

func pillarScore(t *testing.T, score model.CandidateScore, pillarID string) model.PillarScore {
	t.Helper()
	for _, ps := range score.PillarScores {
		if ps.PillarID == pillarID {
			return ps
		}
	}
	t.Fatalf("no score for pillar %s", pillarID)
	return model.PillarScore{}
}
