// Package llm renders an optional prose summary of a candidate's mechanical
// analysis. The summary is presentation only: providers receive
// already-computed findings and are forbidden from adding facts, numbers, or
// sources. Nothing in this package can alter a score.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ojocivico/planscore/internal/model"
)

// Provider generates prose from a mechanical analysis.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize renders the analysis as prose under the strict no-new-facts
	// instructions built into the prompt
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks whether the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for one candidate summary.
type SummarizeRequest struct {
	// Analysis is the mechanical result being rendered. It is the ONLY
	// source of facts the provider may use.
	Analysis model.DetailedAnalysis

	// Score supplies the aggregates quoted verbatim in the prompt
	Score model.CandidateScore

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model selects a provider-specific model
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse is the provider output.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", or "" for disabled
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (OpenAI-compatible gateways, Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns defaults with summaries disabled.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default summarization prompt. The rules pin the
// provider to restating the mechanical findings.
func BuildPrompt(analysis model.DetailedAnalysis, score model.CandidateScore) string {
	var b strings.Builder
	b.WriteString(`Eres un redactor que resume un análisis mecánico de un plan de gobierno.

REGLAS ESTRICTAS:
1. Usa ÚNICAMENTE los hallazgos listados abajo. No agregues hechos, cifras ni fuentes.
2. No inventes ni cites enlaces, estudios u opiniones externas.
3. No emitas juicios sobre ideología; describe solo lo que el análisis encontró.
4. Si una sección está vacía, dilo explícitamente.

Hallazgos del análisis:
`)
	fmt.Fprintf(&b, "- Candidato: %s\n", analysis.CandidateID)
	fmt.Fprintf(&b, "- Páginas analizadas: %d\n", analysis.TotalPages)
	fmt.Fprintf(&b, "- Puntaje ponderado total: %.4f\n", score.Overall.WeightedSum)
	fmt.Fprintf(&b, "- Penalizaciones totales: %.2f\n", score.Overall.TotalPenalties)
	fmt.Fprintf(&b, "- Nivel de riesgo: %s\n", analysis.RiskLevel)

	b.WriteString("\nFortalezas:\n")
	if len(analysis.Strengths) == 0 {
		b.WriteString("- (ninguna identificada)\n")
	}
	for _, s := range analysis.Strengths {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	b.WriteString("\nDebilidades:\n")
	if len(analysis.Weaknesses) == 0 {
		b.WriteString("- (ninguna identificada)\n")
	}
	for _, w := range analysis.Weaknesses {
		fmt.Fprintf(&b, "- %s\n", w)
	}

	b.WriteString("\nEscribe un resumen de 3 a 4 oraciones en español, fiel a estos hallazgos.")
	return b.String()
}
