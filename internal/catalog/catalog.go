// Package catalog loads and validates the versioned rule catalog that drives
// the whole pipeline: pillar definitions, keyword tables, dimension pattern
// rules, penalty rules, and informative pattern sets. The pipeline code is
// version-agnostic; every table lives here as external configuration.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

// Pillar is one fixed catalog entry. Order in the catalog is canonical and
// doubles as the classifier tie-break.
type Pillar struct {
	ID       string  `yaml:"id" json:"pillar_id"`
	Name     string  `yaml:"name" json:"pillar_name"`
	Weight   float64 `yaml:"weight" json:"weight"`
	Priority bool    `yaml:"priority,omitempty" json:"priority,omitempty"`
	Critical bool    `yaml:"critical,omitempty" json:"critical,omitempty"`
}

// PatternRule is one declarative regex rule with its penalty metadata. Rules
// are data, not code: adding one is additive, never a structural change.
type PatternRule struct {
	Type     string   `yaml:"type"`
	Value    float64  `yaml:"value"`
	Reason   string   `yaml:"reason"`
	Patterns []string `yaml:"patterns"`

	compiled []*regexp.Regexp
}

// FirstMatch returns the location of the first pattern that matches text, or
// nil when none does.
func (r *PatternRule) FirstMatch(text string) []int {
	for _, re := range r.compiled {
		if loc := re.FindStringIndex(text); loc != nil {
			return loc
		}
	}
	return nil
}

// MatchedPatterns returns the source of every pattern that matches text.
func (r *PatternRule) MatchedPatterns(text string) []string {
	var out []string
	for _, re := range r.compiled {
		if re.MatchString(text) {
			out = append(out, re.String())
		}
	}
	return out
}

// DimensionRules holds the pattern tables behind the four detectors
type DimensionRules struct {
	Existence    []string `yaml:"existence"`
	Aspirational []string `yaml:"aspirational"` // Disqualifies an existence match
	Timing       []string `yaml:"timing"`       // Only verifiable horizons; vague language never qualifies
	Mechanism    []string `yaml:"mechanism"`
	Funding      []string `yaml:"funding"`

	existence, aspirational, timing, mechanism, funding []*regexp.Regexp
}

// UrgencyRule is one required national-priority topic. Absence of every term
// across the entire document triggers the penalty on the designated pillar.
type UrgencyRule struct {
	Terms       []string `yaml:"terms"`
	Description string   `yaml:"description"`
	Penalty     float64  `yaml:"penalty"`
	PillarID    string   `yaml:"pillar_id"`
}

// InformativeSet is one named non-scoring pattern set
type InformativeSet struct {
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"`
	Patterns    []string `yaml:"patterns"`
	Sources     []string `yaml:"sources,omitempty"`

	compiled []*regexp.Regexp
}

// Matches returns the patterns from the set that match text.
func (s *InformativeSet) Matches(text string) []string {
	var out []string
	for _, re := range s.compiled {
		if re.MatchString(text) {
			out = append(out, re.String())
		}
	}
	return out
}

// Correction is one documented text fix applied during normalization
type Correction struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
	Note    string `yaml:"note,omitempty"`

	compiled *regexp.Regexp
}

// Apply rewrites text with the correction.
func (c *Correction) Apply(text string) string {
	return c.compiled.ReplaceAllString(text, c.Replace)
}

// Thresholds are the tunable scalar parameters of the active catalog version
type Thresholds struct {
	CorruptGlyphs      string  `yaml:"corrupt_glyphs"`       // Characters counted by the corruption heuristic
	CorruptRatio       float64 `yaml:"corrupt_ratio"`        // Per-page heuristic threshold
	OCRRouteRatio      float64 `yaml:"ocr_route_ratio"`      // Document-level threshold that triggers the fallback chain
	SamplePages        int     `yaml:"sample_pages"`         // Pages sampled by the document-level check
	MinParagraphLen    int     `yaml:"min_paragraph_len"`    // Noise filter for claim extraction
	MaxClaimLen        int     `yaml:"max_claim_len"`        // Claim text bound
	EvidenceWindow     int     `yaml:"evidence_window"`      // Context chars kept around a dimension match
	MinRawScore        int     `yaml:"min_raw_score"`        // Validity threshold for retained claims
	MaxClaimsPerPillar int     `yaml:"max_claims_per_pillar"`
	MinKeywordHits     int     `yaml:"min_keyword_hits"`     // Distinct keywords required to classify
	BonusMultipleAt    int     `yaml:"bonus_multiple_at"`    // Valid-claim count where the step bonus applies
	BonusMultiple      float64 `yaml:"bonus_multiple"`
	BonusComplete      float64 `yaml:"bonus_complete"`       // Per claim with raw score 4
	BonusFunded        float64 `yaml:"bonus_funded"`         // Per funded claim with raw score >= 3
	MissingPriority    float64 `yaml:"missing_priority_penalty"`
}

// Catalog is one loaded, validated, compiled rule catalog version
type Catalog struct {
	Version    string              `yaml:"version"`
	Pillars    []Pillar            `yaml:"pillars"`
	Keywords   map[string][]string `yaml:"keywords"`
	Dimensions DimensionRules      `yaml:"dimensions"`

	FiscalAttack         PatternRule            `yaml:"fiscal_attack"`
	DebtIncrease         PatternRule            `yaml:"debt_increase"`
	FiscalResponsibility []string               `yaml:"fiscal_responsibility"` // Informative mitigation indicators
	Urgencies            map[string]UrgencyRule `yaml:"urgencies"`
	Viability            []PatternRule          `yaml:"viability"`

	Authoritarian    map[string]InformativeSet `yaml:"authoritarian"`
	PowerNegotiation map[string]InformativeSet `yaml:"power_negotiation"`

	Corrections []Correction `yaml:"corrections"`
	Thresholds  Thresholds   `yaml:"thresholds"`

	fiscalResp   []*regexp.Regexp
	corruptSet   map[rune]struct{}
	pillarIndex  map[string]int
	fiscalPillar string
}

// Load reads, validates, and compiles a catalog file. An empty path loads the
// embedded default. Any malformed entry is a fatal configuration error: it
// would silently corrupt every score, so it must surface before any document
// is opened.
func Load(path string) (*Catalog, error) {
	data := defaultCatalogYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", c.Version, err)
	}
	if err := c.compile(); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", c.Version, err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if c.Version == "" {
		return fmt.Errorf("missing version")
	}
	if len(c.Pillars) == 0 {
		return fmt.Errorf("no pillars defined")
	}

	c.pillarIndex = make(map[string]int, len(c.Pillars))
	var weightSum float64
	for i, p := range c.Pillars {
		if p.ID == "" {
			return fmt.Errorf("pillar %d: empty id", i)
		}
		if _, dup := c.pillarIndex[p.ID]; dup {
			return fmt.Errorf("duplicate pillar id %q", p.ID)
		}
		c.pillarIndex[p.ID] = i
		if p.Weight <= 0 {
			return fmt.Errorf("pillar %s: non-positive weight %v", p.ID, p.Weight)
		}
		weightSum += p.Weight
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		return fmt.Errorf("pillar weights sum to %.6f, want 1.0", weightSum)
	}

	for _, p := range c.Pillars {
		kws, ok := c.Keywords[p.ID]
		if !ok || len(kws) == 0 {
			return fmt.Errorf("pillar %s: no keywords", p.ID)
		}
	}
	for id := range c.Keywords {
		if _, ok := c.pillarIndex[id]; !ok {
			return fmt.Errorf("keywords reference unknown pillar %q", id)
		}
	}

	for key, u := range c.Urgencies {
		if len(u.Terms) == 0 {
			return fmt.Errorf("urgency %s: no terms", key)
		}
		if u.Penalty >= 0 {
			return fmt.Errorf("urgency %s: penalty must be negative, got %v", key, u.Penalty)
		}
		if _, ok := c.pillarIndex[u.PillarID]; !ok {
			return fmt.Errorf("urgency %s: unknown pillar %q", key, u.PillarID)
		}
	}

	for _, v := range c.Viability {
		if v.Type == "" || len(v.Patterns) == 0 {
			return fmt.Errorf("viability rule %q: incomplete", v.Type)
		}
		if v.Value >= 0 {
			return fmt.Errorf("viability rule %s: penalty must be negative, got %v", v.Type, v.Value)
		}
	}

	c.fiscalPillar = ""
	for _, p := range c.Pillars {
		if strings.EqualFold(p.ID, "P1") {
			c.fiscalPillar = p.ID
		}
	}
	if c.fiscalPillar == "" {
		// Fiscal rules attach to the first pillar when no P1 exists.
		c.fiscalPillar = c.Pillars[0].ID
	}

	if c.Thresholds.MinKeywordHits <= 0 || c.Thresholds.MaxClaimsPerPillar <= 0 {
		return fmt.Errorf("thresholds: min_keyword_hits and max_claims_per_pillar must be positive")
	}
	if c.Thresholds.CorruptRatio <= 0 || c.Thresholds.OCRRouteRatio <= 0 {
		return fmt.Errorf("thresholds: corruption ratios must be positive")
	}
	if c.Thresholds.MissingPriority >= 0 {
		return fmt.Errorf("thresholds: missing_priority_penalty must be negative, got %v", c.Thresholds.MissingPriority)
	}
	return nil
}

func compileAll(patterns []string, where string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("%s: bad pattern %q: %w", where, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func (c *Catalog) compile() error {
	var err error
	d := &c.Dimensions
	if d.existence, err = compileAll(d.Existence, "dimensions.existence"); err != nil {
		return err
	}
	if d.aspirational, err = compileAll(d.Aspirational, "dimensions.aspirational"); err != nil {
		return err
	}
	if d.timing, err = compileAll(d.Timing, "dimensions.timing"); err != nil {
		return err
	}
	if d.mechanism, err = compileAll(d.Mechanism, "dimensions.mechanism"); err != nil {
		return err
	}
	if d.funding, err = compileAll(d.Funding, "dimensions.funding"); err != nil {
		return err
	}

	if c.FiscalAttack.compiled, err = compileAll(c.FiscalAttack.Patterns, "fiscal_attack"); err != nil {
		return err
	}
	if c.DebtIncrease.compiled, err = compileAll(c.DebtIncrease.Patterns, "debt_increase"); err != nil {
		return err
	}
	if c.fiscalResp, err = compileAll(c.FiscalResponsibility, "fiscal_responsibility"); err != nil {
		return err
	}
	for i := range c.Viability {
		v := &c.Viability[i]
		if v.compiled, err = compileAll(v.Patterns, "viability."+v.Type); err != nil {
			return err
		}
	}
	for name, set := range c.Authoritarian {
		compiled, cerr := compileAll(set.Patterns, "authoritarian."+name)
		if cerr != nil {
			return cerr
		}
		set.compiled = compiled
		c.Authoritarian[name] = set
	}
	for name, set := range c.PowerNegotiation {
		compiled, cerr := compileAll(set.Patterns, "power_negotiation."+name)
		if cerr != nil {
			return cerr
		}
		set.compiled = compiled
		c.PowerNegotiation[name] = set
	}
	for i := range c.Corrections {
		cr := &c.Corrections[i]
		cr.compiled, err = regexp.Compile(cr.Pattern)
		if err != nil {
			return fmt.Errorf("corrections: bad pattern %q: %w", cr.Pattern, err)
		}
	}

	c.corruptSet = make(map[rune]struct{}, len(c.Thresholds.CorruptGlyphs))
	for _, r := range c.Thresholds.CorruptGlyphs {
		c.corruptSet[r] = struct{}{}
	}
	return nil
}

// HasPillar reports whether id names a catalog pillar.
func (c *Catalog) HasPillar(id string) bool {
	_, ok := c.pillarIndex[id]
	return ok
}

// PillarOrder returns the canonical position of a pillar, used as the
// classifier tie-break. Unknown ids sort last.
func (c *Catalog) PillarOrder(id string) int {
	if i, ok := c.pillarIndex[id]; ok {
		return i
	}
	return len(c.Pillars)
}

// FiscalPillar returns the pillar fiscal penalty rules attach to.
func (c *Catalog) FiscalPillar() string {
	return c.fiscalPillar
}

// PriorityPillars returns the ids of the priority subset in catalog order.
func (c *Catalog) PriorityPillars() []string {
	var out []string
	for _, p := range c.Pillars {
		if p.Priority {
			out = append(out, p.ID)
		}
	}
	return out
}

// CriticalPillars returns the ids of the critical subset in catalog order.
func (c *Catalog) CriticalPillars() []string {
	var out []string
	for _, p := range c.Pillars {
		if p.Critical {
			out = append(out, p.ID)
		}
	}
	return out
}

// Weights returns pillar id -> weight.
func (c *Catalog) Weights() map[string]float64 {
	out := make(map[string]float64, len(c.Pillars))
	for _, p := range c.Pillars {
		out[p.ID] = p.Weight
	}
	return out
}

// IsCorruptGlyph reports whether r belongs to the corrupt glyph set.
func (c *Catalog) IsCorruptGlyph(r rune) bool {
	_, ok := c.corruptSet[r]
	return ok
}

// FiscalResponsibilityMatch reports whether text shows any fiscal
// responsibility indicator (informative only).
func (c *Catalog) FiscalResponsibilityMatch(text string) bool {
	for _, re := range c.fiscalResp {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
