package report

import (
	"fmt"
	"io"

	"github.com/ojocivico/planscore/internal/model"
)

// PrintRanking writes the terminal summary table for one metric.
func PrintRanking(w io.Writer, ranking model.Ranking, metric model.RankingMetric, analyses []model.DetailedAnalysis) {
	riskByCandidate := make(map[string]model.RiskLevel, len(analyses))
	for _, a := range analyses {
		riskByCandidate[a.CandidateID] = a.RiskLevel
	}

	fmt.Fprintf(w, "\nRanking (%s, método %s)\n", metric, ranking.MethodVersion)
	fmt.Fprintf(w, "%-5s %-30s %-10s %s\n", "#", "Candidato", "Puntaje", "Riesgo")
	fmt.Fprintln(w, "--------------------------------------------------------")
	for _, entry := range ranking.Entries[metric] {
		risk := riskByCandidate[entry.CandidateID]
		if risk == "" {
			risk = model.RiskLow
		}
		fmt.Fprintf(w, "%-5d %-30s %-10.4f %s\n", entry.Rank, entry.CandidateID, entry.Value, risk)
	}
}
