package llm

import (
	"context"
	"regexp"

	"github.com/ojocivico/planscore/internal/model"
)

var urlPattern = regexp.MustCompile(`https?://[^\s)]+`)

// Summarizer attaches optional prose summaries to detailed analyses. With a
// nil provider it marks summaries disabled and does nothing else.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a Summarizer. provider may be nil.
func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// Summarize produces the summary for one analysis. Failures degrade to a
// disabled summary with a warning instead of failing the run: prose is
// optional, scores are not.
func (s *Summarizer) Summarize(ctx context.Context, analysis model.DetailedAnalysis, score model.CandidateScore) model.Summary {
	if s.provider == nil {
		return model.Summary{Enabled: false}
	}
	if !s.provider.IsAvailable(ctx) {
		return model.Summary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{"provider unavailable, summary skipped"},
		}
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Analysis: analysis,
		Score:    score,
	})
	if err != nil {
		return model.Summary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{"summary failed: " + err.Error()},
		}
	}

	summary := model.Summary{
		Enabled:  true,
		Provider: s.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Summary,
	}
	// The prompt forbids citing sources; a URL in the output means the model
	// invented one. Keep the text but flag it.
	if urls := urlPattern.FindAllString(resp.Summary, -1); len(urls) > 0 {
		summary.Warnings = append(summary.Warnings, "summary cites URLs not present in the analysis")
	}
	return summary
}
