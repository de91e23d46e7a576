// Package pipeline orchestrates one plan's full journey: acquisition,
// claim extraction, compliance analysis, scoring, and the mechanical
// detailed analysis. Each stage consumes only the previous stage's output.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ojocivico/planscore/internal/acquire"
	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/compliance"
	"github.com/ojocivico/planscore/internal/extract"
	"github.com/ojocivico/planscore/internal/llm"
	"github.com/ojocivico/planscore/internal/model"
	"github.com/ojocivico/planscore/internal/report"
	"github.com/ojocivico/planscore/internal/score"
)

// Pipeline processes one plan at a time and is safe for concurrent use by
// the worker pool: every stage is either stateless or internally
// synchronized.
type Pipeline struct {
	cat        *catalog.Catalog
	acquirer   *acquire.Acquirer
	extractor  *extract.Extractor
	summarizer *llm.Summarizer
	candidates map[string]model.Candidate
	historical map[string][]model.HistoricalRecord
	log        *zap.Logger
}

// Options bundles the pipeline collaborators the command layer constructs.
type Options struct {
	Catalog    *catalog.Catalog
	Acquirer   *acquire.Acquirer
	Summarizer *llm.Summarizer
	Candidates map[string]model.Candidate
	Historical map[string][]model.HistoricalRecord
	Logger     *zap.Logger
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Summarizer == nil {
		opts.Summarizer = llm.NewSummarizer(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{
		cat:        opts.Catalog,
		acquirer:   opts.Acquirer,
		extractor:  extract.New(opts.Catalog),
		summarizer: opts.Summarizer,
		candidates: opts.Candidates,
		historical: opts.Historical,
		log:        opts.Logger,
	}
}

// PlanResult is the complete outcome for one plan.
type PlanResult struct {
	Path        string
	CandidateID string
	Candidate   model.Candidate
	Document    *model.Document
	Claims      []model.Claim
	Score       model.CandidateScore
	Analysis    model.DetailedAnalysis
}

// ProcessPlan runs the full pipeline over one PDF.
func (p *Pipeline) ProcessPlan(ctx context.Context, path string) (*PlanResult, error) {
	doc, err := p.acquirer.Acquire(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("document %s: no extractable text", doc.ID)
	}

	candidate := p.resolveCandidate(doc)
	candidateID := candidate.CandidateID

	claims := p.extractor.Claims(doc, candidateID)
	fullText := doc.FullText()

	comp, viability := compliance.Analyze(fullText, claims, p.cat)

	candidateScore := score.Candidate(candidateID, doc.ID, claims, comp, p.cat)
	candidateScore.Flags = compliance.BuildFlags(claims, viability, p.historical[candidateID], p.cat)

	analysis := report.Detailed(candidateID, doc, comp)

	// Prose comes last and reads only finished results, so it can never
	// influence a number.
	summary := p.summarizer.Summarize(ctx, analysis, candidateScore)
	if summary.Enabled || len(summary.Warnings) > 0 {
		analysis.LLM = &summary
	}

	p.log.Info("plan processed",
		zap.String("candidate", candidateID),
		zap.String("document", doc.ID),
		zap.String("route", string(doc.Route)),
		zap.Int("claims", countConcrete(claims)),
		zap.Float64("weighted_sum", candidateScore.Overall.WeightedSum))

	return &PlanResult{
		Path:        path,
		CandidateID: candidateID,
		Candidate:   candidate,
		Document:    doc,
		Claims:      claims,
		Score:       candidateScore,
		Analysis:    analysis,
	}, nil
}

// resolveCandidate prefers curated metadata and falls back to the document
// id plus a best-effort probe of the leading pages.
func (p *Pipeline) resolveCandidate(doc *model.Document) model.Candidate {
	if c, ok := p.candidates[doc.ID]; ok && c.CandidateID != "" {
		return c
	}

	name, party := ProbeCandidateInfo(doc)
	return model.Candidate{
		CandidateID:   doc.ID,
		CandidateName: name,
		PartyName:     party,
		DocumentID:    doc.ID,
	}
}

func countConcrete(claims []model.Claim) int {
	n := 0
	for _, c := range claims {
		if !c.Placeholder {
			n++
		}
	}
	return n
}
