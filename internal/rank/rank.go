// Package rank orders scored candidates. Three rankings are produced from
// the same scores: overall weighted, priority weighted, and critical
// weighted. Ranking never re-reads documents.
package rank

import (
	"sort"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

// Build produces the full ranking set for the scored candidates.
func Build(scores []model.CandidateScore, cat *catalog.Catalog) model.Ranking {
	return model.Ranking{
		MethodVersion: cat.Version,
		Weights:       cat.Weights(),
		Priority:      cat.PriorityPillars(),
		Critical:      cat.CriticalPillars(),
		Entries: map[model.RankingMetric][]model.RankingEntry{
			model.MetricOverall:  byMetric(scores, func(s model.CandidateScore) float64 { return s.Overall.WeightedSum }),
			model.MetricPriority: byMetric(scores, func(s model.CandidateScore) float64 { return s.Overall.PriorityWeighted }),
			model.MetricCritical: byMetric(scores, func(s model.CandidateScore) float64 { return s.Overall.CriticalWeighted }),
		},
	}
}

// byMetric sorts descending by value, breaking ties by candidate id so equal
// scores still rank deterministically.
func byMetric(scores []model.CandidateScore, value func(model.CandidateScore) float64) []model.RankingEntry {
	entries := make([]model.RankingEntry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, model.RankingEntry{
			CandidateID: s.CandidateID,
			Value:       value(s),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].CandidateID < entries[j].CandidateID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
