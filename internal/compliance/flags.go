package compliance

import (
	"sort"

	"github.com/ojocivico/planscore/internal/catalog"
	"github.com/ojocivico/planscore/internal/model"
)

const flagQuote = 200

// BuildFlags assembles the full informative flag set for one candidate.
// Nothing produced here ever feeds a score.
func BuildFlags(
	claims []model.Claim,
	viability map[string]ViabilityResult,
	records []model.HistoricalRecord,
	cat *catalog.Catalog,
) model.InformativeFlags {
	flags := model.InformativeFlags{
		CurrentClaims:         currentClaimFlags(viability, cat),
		AuthoritarianPatterns: patternFlags(claims, cat.Authoritarian),
		PowerNegotiation:      patternFlags(claims, cat.PowerNegotiation),
		Historical:            historicalFlags(records),
	}
	flags.Contradictions = contradictionFlags(flags)
	return flags
}

// currentClaimFlags mirrors the scored viability penalties as visibility
// flags, keyed by rule type.
func currentClaimFlags(viability map[string]ViabilityResult, cat *catalog.Catalog) map[string]model.Flag {
	out := make(map[string]model.Flag, len(cat.Viability))
	for i := range cat.Viability {
		rule := &cat.Viability[i]
		severity := model.FlagSeverityHigh
		if rule.Value > -1.0 {
			severity = model.FlagSeverityMedium
		}
		out[rule.Type] = model.Flag{
			Severity:    severity,
			Description: rule.Reason,
		}
	}

	pillars := make([]string, 0, len(viability))
	for pillarID := range viability {
		pillars = append(pillars, pillarID)
	}
	sort.Strings(pillars)

	for _, pillarID := range pillars {
		res := viability[pillarID]
		for _, p := range res.Penalties {
			f := out[p.Type]
			f.Active = true
			f.Evidence = append(f.Evidence, model.FlagEvidence{
				PillarID: pillarID,
				Text:     p.Evidence,
				Pattern:  p.Type,
			})
			out[p.Type] = f
		}
	}
	return out
}

// patternFlags matches a named informative pattern set against every
// retained concrete claim.
func patternFlags(claims []model.Claim, sets map[string]catalog.InformativeSet) map[string]model.Flag {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]model.Flag, len(sets))
	for _, name := range names {
		set := sets[name]
		flag := model.Flag{
			Severity:    model.FlagSeverity(set.Severity),
			Description: set.Description,
		}

		for _, claim := range claims {
			if claim.Placeholder {
				continue
			}
			matched := set.Matches(claim.Text)
			if len(matched) == 0 {
				continue
			}
			flag.Active = true
			for _, pattern := range matched {
				flag.Evidence = append(flag.Evidence, model.FlagEvidence{
					PillarID: claim.PillarID,
					Text:     truncateRunes(claim.Text, flagQuote),
					Pattern:  pattern,
				})
			}
		}
		for _, src := range set.Sources {
			if flag.Active {
				flag.Evidence = append(flag.Evidence, model.FlagEvidence{Source: src})
			}
		}
		out[name] = flag
	}
	return out
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
