package importer

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes diacritics: decompose, drop combining marks, recompose.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases a string, strips diacritics, and collapses internal
// whitespace to single spaces.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	return strings.Join(strings.Fields(out), " ")
}

// Match resolves a free-text candidate against a field's allowed values and
// returns the matching reference id, or "" when no tier matches.
//
// Tiers, first hit wins:
//  1. exact: case-insensitive label equality, or the candidate is the
//     reference id verbatim
//  2. normalized: equality after lower-casing, diacritic stripping and
//     whitespace collapsing
//  3. substring: longest label first, normalized label contained in the
//     normalized candidate or vice versa
//
// Exact before substring keeps "QA" from landing on "QA Lead"; longest-first
// substring matching biases toward the most specific label.
func Match(candidate string, allowed []Option) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || len(allowed) == 0 {
		return ""
	}

	for _, o := range allowed {
		if strings.EqualFold(candidate, o.Label) || candidate == o.ID {
			return o.ID
		}
	}

	nc := Normalize(candidate)
	if nc == "" {
		return ""
	}
	for _, o := range allowed {
		if Normalize(o.Label) == nc {
			return o.ID
		}
	}

	byLength := make([]Option, len(allowed))
	copy(byLength, allowed)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i].Label) > len(byLength[j].Label)
	})

	for _, o := range byLength {
		nl := Normalize(o.Label)
		if nl == "" {
			continue
		}
		if strings.Contains(nc, nl) || strings.Contains(nl, nc) {
			return o.ID
		}
	}

	return ""
}
