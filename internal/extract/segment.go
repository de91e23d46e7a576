package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var blankLine = regexp.MustCompile(`\n\s*\n`)
var sentenceEnd = regexp.MustCompile(`\.\s+`)

// Segment splits page text into candidate paragraphs. Boundaries are blank
// lines, plus sentence ends followed by an uppercase letter so that dense
// pages without blank lines still break apart.
func Segment(text string) []string {
	var out []string
	for _, block := range blankLine.Split(text, -1) {
		out = append(out, splitSentences(block)...)
	}
	return out
}

func splitSentences(block string) []string {
	var parts []string
	rest := block
	for {
		loc := nextBoundary(rest)
		if loc == nil {
			break
		}
		parts = append(parts, strings.TrimSpace(rest[:loc[0]+1]))
		rest = rest[loc[1]:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		parts = append(parts, s)
	}
	return parts
}

// nextBoundary finds the first ". " that is followed by an uppercase letter,
// including accented Spanish capitals.
func nextBoundary(s string) []int {
	offset := 0
	for {
		loc := sentenceEnd.FindStringIndex(s[offset:])
		if loc == nil {
			return nil
		}
		start, end := offset+loc[0], offset+loc[1]
		runes := []rune(s[end:])
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			return []int{start, end}
		}
		offset = end
	}
}
