package compliance

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ojocivico/planscore/internal/model"
)

// Historical record categories. Entries outside these are ignored.
const (
	CategoryAntiDemocratic = "anti_democratic_behavior"
	CategoryHumanRights    = "human_rights_violations"
	CategoryCorruption     = "corruption_convictions"
)

var historicalDescriptions = map[string]string{
	CategoryAntiDemocratic: "Evidencia histórica de comportamiento anti-democrático verificable",
	CategoryHumanRights:    "Evidencia histórica de violaciones de derechos humanos",
	CategoryCorruption:     "Evidencia histórica de corrupción verificada",
}

// LoadHistoricalRecords reads the externally curated evidence file, keyed by
// candidate id. A missing file is not an error: most runs carry no
// historical data at all.
func LoadHistoricalRecords(path string) (map[string][]model.HistoricalRecord, error) {
	if path == "" {
		return map[string][]model.HistoricalRecord{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string][]model.HistoricalRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read historical records: %w", err)
	}

	var records []model.HistoricalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse historical records: %w", err)
	}

	byCandidate := make(map[string][]model.HistoricalRecord)
	for _, r := range records {
		if r.CandidateID == "" {
			continue
		}
		byCandidate[r.CandidateID] = append(byCandidate[r.CandidateID], r)
	}
	return byCandidate, nil
}

// historicalFlags folds a candidate's records into per-category flags. Every
// entry keeps its source citation; uncited claims about a person have no
// place in the output.
func historicalFlags(records []model.HistoricalRecord) map[string]model.Flag {
	out := make(map[string]model.Flag, len(historicalDescriptions))
	for category, description := range historicalDescriptions {
		out[category] = model.Flag{
			Severity:    model.FlagSeverityHigh,
			Description: description,
		}
	}

	for _, r := range records {
		flag, ok := out[r.Category]
		if !ok {
			continue
		}
		flag.Active = true
		flag.Evidence = append(flag.Evidence, model.FlagEvidence{
			Text:   r.Description,
			Source: r.Source,
		})
		out[r.Category] = flag
	}
	return out
}

// contradictionFlags detects consistent historical plus current problematic
// patterns. Purely derived from already-built flags.
func contradictionFlags(flags model.InformativeFlags) map[string]model.Flag {
	currentViolations := flags.CurrentClaims["violates_separation_powers"].Active ||
		flags.CurrentClaims["violates_fundamental_rights"].Active ||
		flags.CurrentClaims["violates_constitutional_guarantees"].Active

	historicalAntiDemocratic := flags.Historical[CategoryAntiDemocratic].Active
	historicalCorruption := flags.Historical[CategoryCorruption].Active
	historicalIssues := historicalAntiDemocratic || historicalCorruption ||
		flags.Historical[CategoryHumanRights].Active

	authoritarianSimilarity := false
	for _, f := range flags.AuthoritarianPatterns {
		if f.Active {
			authoritarianSimilarity = true
			break
		}
	}

	consistent := model.Flag{
		Severity:    model.FlagSeverityHigh,
		Description: "Patrón consistente: evidencia histórica problemática + propuestas actuales problemáticas",
	}
	if historicalAntiDemocratic && currentViolations {
		consistent.Active = true
		consistent.Evidence = []model.FlagEvidence{
			{Text: "Comportamiento anti-democrático histórico verificable"},
			{Text: "Propuestas actuales que violan principios constitucionales"},
		}
	} else if historicalIssues && authoritarianSimilarity {
		consistent.Active = true
		consistent.Evidence = []model.FlagEvidence{
			{Text: "Evidencia histórica problemática verificable"},
			{Text: "Similitudes con modelos autoritarios en propuestas actuales"},
		}
	}

	transparency := model.Flag{
		Severity:    model.FlagSeverityMedium,
		Description: "Evidencia histórica de corrupción + propuestas actuales problemáticas",
	}
	if historicalCorruption && currentViolations {
		transparency.Active = true
		transparency.Evidence = []model.FlagEvidence{
			{Text: "Corrupción verificada históricamente"},
			{Text: "Propuestas actuales problemáticas"},
		}
	}

	return map[string]model.Flag{
		"historical_current_contradiction": consistent,
		"corruption_transparency_concern":  transparency,
	}
}
