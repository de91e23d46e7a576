package compliance

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

// coveredText mentions every default urgency topic so tests can isolate
// single omissions.
const coveredText = "Fortaleceremos la policía, combatiremos el crimen organizado, " +
	"rescataremos la CCSS y promoveremos el empleo formal."

func TestAnalyzeFiscal_AttackAndDebt(t *testing.T) {
	cat := loadCatalog(t)

	text := "Proponemos flexibilizar la regla fiscal y aumentar la deuda para invertir en obra pública."
	flags, penalties := AnalyzeFiscal(text, cat)

	if !flags.AttacksFiscalRule {
		t.Error("expected fiscal rule attack flag")
	}
	if !flags.ProposesDebtIncrease {
		t.Error("expected debt increase flag")
	}
	if len(penalties) != 2 {
		t.Fatalf("expected 2 penalties, got %d", len(penalties))
	}
	for _, p := range penalties {
		if p.PillarID != cat.FiscalPillar() {
			t.Errorf("fiscal penalty routed to %s, expected %s", p.PillarID, cat.FiscalPillar())
		}
		if p.Evidence == "" {
			t.Error("expected quoted evidence on fiscal penalties")
		}
		if p.Value >= 0 {
			t.Errorf("penalty value must be negative, got %v", p.Value)
		}
	}
}

func TestAnalyzeFiscal_ResponsibilityIsInformative(t *testing.T) {
	cat := loadCatalog(t)

	flags, penalties := AnalyzeFiscal("Mantendremos la sostenibilidad fiscal y reduciremos el déficit.", cat)
	if !flags.ShowsResponsibility {
		t.Error("expected responsibility flag")
	}
	if len(penalties) != 0 {
		t.Errorf("responsibility must not produce penalties, got %d", len(penalties))
	}
}

func TestAnalyzeFiscal_RepeatedAttackPenalizesOnce(t *testing.T) {
	cat := loadCatalog(t)

	text := "Hay que flexibilizar la regla fiscal. Insistimos: flexibilizar la regla fiscal."
	_, penalties := AnalyzeFiscal(text, cat)
	if len(penalties) != 1 {
		t.Errorf("expected 1 penalty for a repeated stance, got %d", len(penalties))
	}
}

func TestAnalyzeUrgencies_OmissionRoutesToDesignatedPillar(t *testing.T) {
	cat := loadCatalog(t)

	// Everything except the CCSS topic.
	text := "Fortaleceremos la policía, combatiremos el crimen organizado y promoveremos el empleo formal."
	coverage, penalties := AnalyzeUrgencies(text, cat)

	if coverage["ccss_crisis"].Covered {
		t.Error("expected ccss_crisis uncovered")
	}
	if !coverage["security_operations"].Covered {
		t.Error("expected security_operations covered")
	}

	if len(penalties) != 1 {
		t.Fatalf("expected exactly 1 penalty, got %d: %+v", len(penalties), penalties)
	}
	p := penalties[0]
	if p.Type != "ignores_ccss_crisis" {
		t.Errorf("unexpected penalty type %s", p.Type)
	}
	if p.PillarID != cat.Urgencies["ccss_crisis"].PillarID {
		t.Errorf("penalty routed to %s, expected %s", p.PillarID, cat.Urgencies["ccss_crisis"].PillarID)
	}
}

func TestAnalyzeUrgencies_FullCoverage(t *testing.T) {
	cat := loadCatalog(t)

	coverage, penalties := AnalyzeUrgencies(coveredText, cat)
	if len(penalties) != 0 {
		t.Errorf("expected no penalties, got %+v", penalties)
	}
	for key, cov := range coverage {
		if !cov.Covered {
			t.Errorf("urgency %s should be covered", key)
		}
		if len(cov.TermsFound) == 0 {
			t.Errorf("urgency %s should report matched terms", key)
		}
	}
}

func TestMissingPriorityPillars(t *testing.T) {
	cat := loadCatalog(t)

	claims := []model.Claim{
		{PillarID: "P1", Dimensions: model.Dimensions{Existence: 1}},
		{PillarID: "P3", Dimensions: model.Dimensions{Existence: 1}},
		{PillarID: "P4", Placeholder: true}, // Placeholder never counts
	}
	missing, penalties := MissingPriorityPillars(claims, cat)

	want := map[string]bool{"P4": true, "P7": true}
	if len(missing) != len(want) {
		t.Fatalf("expected missing %v, got %v", want, missing)
	}
	for _, id := range missing {
		if !want[id] {
			t.Errorf("unexpected missing pillar %s", id)
		}
	}
	for _, p := range penalties {
		if p.Value != cat.Thresholds.MissingPriority {
			t.Errorf("expected penalty %v, got %v", cat.Thresholds.MissingPriority, p.Value)
		}
		if p.Type != "missing_priority_pillar" {
			t.Errorf("unexpected type %s", p.Type)
		}
	}
}

func TestCheckViability_OnePenaltyPerFamily(t *testing.T) {
	cat := loadCatalog(t)

	// Two distinct separation-of-powers violations in one claim: the
	// family still fires once.
	text := "Proponemos disolver la asamblea legislativa y gobernar por decreto sin asamblea."
	res := CheckViability(text, "P7", cat)

	if !res.Triggered["violates_separation_powers"] {
		t.Error("expected separation-of-powers rule to trigger")
	}
	if len(res.Penalties) != 1 {
		t.Fatalf("expected 1 penalty, got %d: %+v", len(res.Penalties), res.Penalties)
	}
	if res.Penalties[0].Value != -1.0 {
		t.Errorf("expected -1.0, got %v", res.Penalties[0].Value)
	}
	if res.Penalties[0].PillarID != "P7" {
		t.Errorf("expected penalty on the claim's pillar, got %s", res.Penalties[0].PillarID)
	}
}

func TestCheckViability_LawfulReformIsClean(t *testing.T) {
	cat := loadCatalog(t)

	text := "Impulsaremos una reforma constitucional mediante los procedimientos de la asamblea legislativa."
	res := CheckViability(text, "P7", cat)
	if len(res.Penalties) != 0 {
		t.Errorf("lawful reform must not penalize: %+v", res.Penalties)
	}
}

func TestCheckViability_MultipleFamilies(t *testing.T) {
	cat := loadCatalog(t)

	text := "Vamos a disolver la asamblea legislativa y suspender el hábeas corpus de inmediato."
	res := CheckViability(text, "P7", cat)
	if len(res.Penalties) != 2 {
		t.Fatalf("expected 2 penalties across families, got %d", len(res.Penalties))
	}
}

func TestAnalyze_ViabilityRunsOnBestClaimOnly(t *testing.T) {
	cat := loadCatalog(t)

	// Claims arrive best-first per pillar. The second P7 claim carries a
	// violation but is not the best claim, so it must not penalize.
	claims := []model.Claim{
		{PillarID: "P7", Text: "Modernizaremos el estado con transparencia.", Dimensions: model.Dimensions{Existence: 1}},
		{PillarID: "P7", Text: "Vamos a disolver la asamblea legislativa.", Dimensions: model.Dimensions{Existence: 1}},
	}
	comp, viability := Analyze(coveredText, claims, cat)

	if len(viability) != 0 {
		t.Errorf("expected no viability findings, got %+v", viability)
	}
	for _, p := range comp.Penalties {
		if p.Type == "violates_separation_powers" {
			t.Error("viability must only inspect the best claim per pillar")
		}
	}
}

func TestAnalyze_TotalPenaltySumsEverything(t *testing.T) {
	cat := loadCatalog(t)

	comp, _ := Analyze(coveredText, nil, cat)

	sum := 0.0
	for _, p := range comp.Penalties {
		sum += p.Value
	}
	if comp.TotalPenalty != sum {
		t.Errorf("total %v does not match penalty sum %v", comp.TotalPenalty, sum)
	}
	// No claims at all: every priority pillar is missing.
	if len(comp.MissingPillars) != len(cat.PriorityPillars()) {
		t.Errorf("expected %d missing pillars, got %d", len(cat.PriorityPillars()), len(comp.MissingPillars))
	}
}

func TestAnalyze_CleanDocument(t *testing.T) {
	cat := loadCatalog(t)

	claims := []model.Claim{
		{PillarID: "P1", Text: "Reduciremos el déficit.", Dimensions: model.Dimensions{Existence: 1}},
		{PillarID: "P3", Text: "Más policía en la calle.", Dimensions: model.Dimensions{Existence: 1}},
		{PillarID: "P4", Text: "Rescate de la CCSS.", Dimensions: model.Dimensions{Existence: 1}},
		{PillarID: "P7", Text: "Gobierno digital.", Dimensions: model.Dimensions{Existence: 1}},
	}
	comp, _ := Analyze(coveredText, claims, cat)

	if comp.TotalPenalty != 0 {
		t.Errorf("expected no penalties for a clean covered document, got %v: %+v",
			comp.TotalPenalty, comp.Penalties)
	}
	if strings.Contains(strings.Join(comp.MissingPillars, ","), "P") {
		t.Errorf("expected no missing pillars, got %v", comp.MissingPillars)
	}
}
