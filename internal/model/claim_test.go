package model

import (
	"strings"
	"testing"
)

func TestClaimID_Deterministic(t *testing.T) {
	a := ClaimID("plan_pln", "Crearemos un programa nacional de empleo")
	b := ClaimID("plan_pln", "Crearemos un programa nacional de empleo")
	if a != b {
		t.Errorf("same inputs must produce the same id: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "plan_pln-") {
		t.Errorf("id must carry the document id prefix: %s", a)
	}
	if len(a) != len("plan_pln-")+8 {
		t.Errorf("expected 8 hash chars, got %s", a)
	}
}

func TestClaimID_DistinctInputs(t *testing.T) {
	a := ClaimID("plan_pln", "texto uno")
	if a == ClaimID("plan_pln", "texto dos") {
		t.Error("different text must produce different ids")
	}
	if a == ClaimID("plan_otro", "texto uno") {
		t.Error("different documents must produce different ids")
	}
}

func TestClaimID_LongTextUsesPrefix(t *testing.T) {
	prefix := strings.Repeat("a", 100)
	a := ClaimID("doc", prefix+" cola uno")
	b := ClaimID("doc", prefix+" cola dos")
	if a != b {
		t.Error("only the leading text participates in the id")
	}
}

func TestDimensions_RawScore(t *testing.T) {
	d := Dimensions{Existence: 1, Timing: 0, Mechanism: 1, Funding: 1}
	if d.RawScore() != 3 {
		t.Errorf("expected 3, got %d", d.RawScore())
	}
	if (Dimensions{}).RawScore() != 0 {
		t.Error("empty dimensions must score 0")
	}
}

func TestClaim_Valid(t *testing.T) {
	tests := []struct {
		name  string
		claim Claim
		want  bool
	}{
		{"complete", Claim{Dimensions: Dimensions{Existence: 1, Timing: 1}, RawScore: 2}, true},
		{"no existence", Claim{Dimensions: Dimensions{Timing: 1, Mechanism: 1}, RawScore: 2}, false},
		{"below threshold", Claim{Dimensions: Dimensions{Existence: 1}, RawScore: 1}, false},
		{"placeholder", Claim{Placeholder: true, Dimensions: Dimensions{Existence: 1, Timing: 1}, RawScore: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claim.Valid(2); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_FullText(t *testing.T) {
	doc := Document{Pages: []Page{
		{Number: 1, Text: "primera página"},
		{Number: 2, Text: "segunda página"},
	}}
	if got := doc.FullText(); got != "primera página segunda página" {
		t.Errorf("unexpected full text %q", got)
	}
}
