package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ojocivico/planscore/internal/model"
)

const probePages = 5
const unknownField = "no_especificado"

// LoadCandidates reads the curated candidate metadata, keyed by document id.
// The file is input only; the pipeline never writes it back. A missing file
// just means every candidate id falls back to its document id.
func LoadCandidates(path string) (map[string]model.Candidate, error) {
	if path == "" {
		return map[string]model.Candidate{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]model.Candidate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	var candidates []model.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}

	byDocument := make(map[string]model.Candidate, len(candidates))
	for _, c := range candidates {
		if c.DocumentID != "" {
			byDocument[strings.ToLower(c.DocumentID)] = c
		}
	}
	return byDocument, nil
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)candidat[oa].*?presidencia[:\s]+([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,4})`),
	regexp.MustCompile(`([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,3})\s+(?:para\s+)?[Pp]residente`),
}

var partyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[Pp]artido\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-Za-záéíóúñ]+){0,4}`),
	regexp.MustCompile(`[Cc]oalición\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-Za-záéíóúñ]+){0,4}`),
	regexp.MustCompile(`[Ff]rente\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-Za-záéíóúñ]+){0,4}`),
}

// ProbeCandidateInfo guesses candidate and party names from the leading
// pages of a document. Best effort: curated metadata always overrides this,
// and a failed probe reports the fields as unspecified.
func ProbeCandidateInfo(doc *model.Document) (name, party string) {
	name, party = unknownField, unknownField

	var sample strings.Builder
	for i, page := range doc.Pages {
		if i >= probePages {
			break
		}
		if i > 0 {
			sample.WriteByte(' ')
		}
		sample.WriteString(page.Text)
	}
	text := sample.String()

	for _, re := range namePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if len(candidate) > 5 && len(strings.Fields(candidate)) >= 2 {
			name = candidate
			break
		}
	}

	for _, re := range partyPatterns {
		if m := re.FindString(text); m != "" {
			party = truncateRunes(strings.TrimSpace(m), 60)
			break
		}
	}
	return name, party
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
