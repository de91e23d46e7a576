package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// Artifact file names. The frontend consumes these by name.
const (
	PillarsFile  = "pillars.json"
	ClaimsFile   = "claims.json"
	ScoresFile   = "candidate_scores.json"
	RankingFile  = "ranking.json"
	AnalysisFile = "detailed_analysis.json"
)

// Writer persists run artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll persists the five run artifacts. The curated candidates file is
// input, not output, and is never written here.
func (w *Writer) WriteAll(
	cat *catalog.Catalog,
	claims []model.Claim,
	scores []model.CandidateScore,
	ranking model.Ranking,
	analyses []model.DetailedAnalysis,
) error {
	if err := w.writeJSON(PillarsFile, cat.Pillars); err != nil {
		return err
	}
	if err := w.writeJSON(ClaimsFile, claims); err != nil {
		return err
	}
	if err := w.writeJSON(ScoresFile, scores); err != nil {
		return err
	}
	if err := w.writeJSON(RankingFile, ranking); err != nil {
		return err
	}
	return w.writeJSON(AnalysisFile, analyses)
}

// WriteRanking rewrites only the ranking artifact. Used when re-ranking a
// previous run without re-processing the documents.
func (w *Writer) WriteRanking(ranking model.Ranking) error {
	return w.writeJSON(RankingFile, ranking)
}

// writeJSON writes indented UTF-8 JSON without HTML escaping, so Spanish
// text stays readable in the artifacts.
func (w *Writer) writeJSON(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
