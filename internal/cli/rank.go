package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
	"github.com/ojocivico/planscore/internal/rank"
	"github.com/ojocivico/planscore/internal/report"
)

var (
	rankDataDir string
	rankMetric  string
	rankCatalog string
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rebuild the ranking from an existing run",
	Long: `Recompute the ranking from the candidate scores of a previous run,
without re-extracting or re-scoring the documents. Useful after editing
curated candidate metadata or when a different metric is wanted.

Example:
  planscore rank --data ./data
  planscore rank --data ./data --metric priority_weighted`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankDataDir, "data", "./data", "directory holding a previous run's artifacts")
	rankCmd.Flags().StringVar(&rankMetric, "metric", string(model.MetricOverall), "ranking metric (overall_weighted, priority_weighted, critical_weighted)")
	rankCmd.Flags().StringVar(&rankCatalog, "catalog", "", "methodology catalog file (default: embedded catalog)")
}

func runRank(cmd *cobra.Command, args []string) error {
	metric := model.RankingMetric(rankMetric)
	switch metric {
	case model.MetricOverall, model.MetricPriority, model.MetricCritical:
	default:
		return fmt.Errorf("unknown metric: %s", rankMetric)
	}

	cat, err := catalog.Load(rankCatalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var scores []model.CandidateScore
	if err := readJSON(filepath.Join(rankDataDir, report.ScoresFile), &scores); err != nil {
		return fmt.Errorf("load scores: %w", err)
	}
	if len(scores) == 0 {
		return fmt.Errorf("no scores in %s", rankDataDir)
	}

	// The analysis file is optional here: the table degrades to a
	// low-risk column without it.
	var analyses []model.DetailedAnalysis
	if err := readJSON(filepath.Join(rankDataDir, report.AnalysisFile), &analyses); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load analyses: %w", err)
	}

	ranking := rank.Build(scores, cat)

	writer, err := report.NewWriter(rankDataDir)
	if err != nil {
		return err
	}
	if err := writer.WriteRanking(ranking); err != nil {
		return fmt.Errorf("write ranking: %w", err)
	}

	report.PrintRanking(os.Stdout, ranking, metric, analyses)
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
