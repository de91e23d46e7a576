package catalog

import "regexp"

// DimensionMatch is one pattern hit inside a paragraph.
type DimensionMatch struct {
	Pattern string
	Start   int
	End     int
}

func firstMatch(res []*regexp.Regexp, text string) (DimensionMatch, bool) {
	best := DimensionMatch{Start: -1}
	for _, re := range res {
		if loc := re.FindStringIndex(text); loc != nil {
			if best.Start < 0 || loc[0] < best.Start {
				best = DimensionMatch{Pattern: re.String(), Start: loc[0], End: loc[1]}
			}
		}
	}
	return best, best.Start >= 0
}

// MatchExistence detects a concrete commitment. Any aspirational construction
// in the paragraph disqualifies it, no matter where it sits relative to the
// concrete verb: wishing is not committing.
func (c *Catalog) MatchExistence(text string) (DimensionMatch, bool) {
	m, ok := firstMatch(c.Dimensions.existence, text)
	if !ok {
		return DimensionMatch{}, false
	}
	if _, aok := firstMatch(c.Dimensions.aspirational, text); aok {
		return DimensionMatch{}, false
	}
	return m, true
}

// MatchTiming detects a verifiable temporal horizon.
func (c *Catalog) MatchTiming(text string) (DimensionMatch, bool) {
	return firstMatch(c.Dimensions.timing, text)
}

// MatchMechanism detects a named institutional instrument.
func (c *Catalog) MatchMechanism(text string) (DimensionMatch, bool) {
	return firstMatch(c.Dimensions.mechanism, text)
}

// MatchFunding detects an identified funding source.
func (c *Catalog) MatchFunding(text string) (DimensionMatch, bool) {
	return firstMatch(c.Dimensions.funding, text)
}
