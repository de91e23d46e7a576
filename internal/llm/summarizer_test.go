package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ojocivico/planscore/internal/model"
)

// fakeProvider implements Provider for tests
type fakeProvider struct {
	name      string
	available bool
	summary   string
	err       error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return f.available }

func (f *fakeProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &SummarizeResponse{Summary: f.summary, Model: "fake-model"}, nil
}

func TestSummarizer_NilProvider(t *testing.T) {
	s := NewSummarizer(nil)
	summary := s.Summarize(context.Background(), model.DetailedAnalysis{}, model.CandidateScore{})

	if summary.Enabled {
		t.Error("expected disabled summary without a provider")
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("nil provider is not a warning condition: %v", summary.Warnings)
	}
}

func TestSummarizer_ProviderUnavailable(t *testing.T) {
	s := NewSummarizer(&fakeProvider{name: "fake", available: false})
	summary := s.Summarize(context.Background(), model.DetailedAnalysis{}, model.CandidateScore{})

	if summary.Enabled {
		t.Error("expected disabled summary")
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", summary.Warnings)
	}
}

func TestSummarizer_ProviderError(t *testing.T) {
	s := NewSummarizer(&fakeProvider{name: "fake", available: true, err: errors.New("boom")})
	summary := s.Summarize(context.Background(), model.DetailedAnalysis{}, model.CandidateScore{})

	if summary.Enabled {
		t.Error("a provider error must degrade, not fail")
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", summary.Warnings)
	}
}

func TestSummarizer_Success(t *testing.T) {
	s := NewSummarizer(&fakeProvider{name: "fake", available: true, summary: "Resumen del análisis."})
	summary := s.Summarize(context.Background(), model.DetailedAnalysis{}, model.CandidateScore{})

	if !summary.Enabled {
		t.Fatal("expected enabled summary")
	}
	if summary.Text != "Resumen del análisis." {
		t.Errorf("unexpected text %q", summary.Text)
	}
	if summary.Model != "fake-model" {
		t.Errorf("unexpected model %q", summary.Model)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", summary.Warnings)
	}
}

func TestSummarizer_FlagsInventedURLs(t *testing.T) {
	s := NewSummarizer(&fakeProvider{
		name:      "fake",
		available: true,
		summary:   "Según https://ejemplo.com/estudio el plan es sólido.",
	})
	summary := s.Summarize(context.Background(), model.DetailedAnalysis{}, model.CandidateScore{})

	if !summary.Enabled {
		t.Fatal("summary text is kept even when flagged")
	}
	if len(summary.Warnings) != 1 {
		t.Errorf("expected URL warning, got %v", summary.Warnings)
	}
}

func TestNewProvider_DisabledAndUnknown(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("empty provider must disable summaries, got %v, %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestBuildPrompt_QuotesFindingsOnly(t *testing.T) {
	analysis := model.DetailedAnalysis{
		CandidateID: "cand-1",
		Strengths:   []string{"Aborda: Seguridad operativa"},
		Weaknesses:  []string{"Ataca la regla fiscal"},
		RiskLevel:   model.RiskHigh,
	}
	prompt := BuildPrompt(analysis, model.CandidateScore{})

	for _, want := range []string{"cand-1", "Seguridad operativa", "regla fiscal", "ALTO"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should quote %q", want)
		}
	}
}
