// Package search resolves user-typed Pokémon, move and item names against
// catalog entries, tolerating casing, spacing and small typos.
package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Match is a candidate name with its match score.
type Match struct {
	Name  string
	Score float64
}

// Resolve maps a user-typed name onto a catalog name. Matching is tried in
// order of strictness: exact, then punctuation/case-insensitive, then a
// unique fuzzy match. The second return is false when nothing (or more
// than one thing) matched.
func Resolve(input string, candidates []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	for _, c := range candidates {
		if c == input {
			return c, true
		}
	}

	k := key(input)
	for _, c := range candidates {
		if key(c) == k {
			return c, true
		}
	}

	// Fuzzy: accept only when exactly one candidate matches, otherwise the
	// caller should ask the user (via Suggest) rather than guess.
	var fuzzy []string
	for _, c := range candidates {
		if fuzzyContains(key(c), k) {
			fuzzy = append(fuzzy, c)
		}
	}
	if len(fuzzy) == 1 {
		return fuzzy[0], true
	}

	return "", false
}

// Suggest returns up to n candidates ranked by edit distance to the input,
// for "did you mean" output. Candidates further than ~40% of their length
// are not worth suggesting.
func Suggest(input string, candidates []string, n int) []string {
	k := key(input)
	if k == "" {
		return nil
	}

	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		ck := key(c)
		dist := levenshtein.ComputeDistance(k, ck)
		maxlen := len(k)
		if len(ck) > maxlen {
			maxlen = len(ck)
		}
		ratio := float64(dist) / float64(maxlen)
		if ratio >= 0.4 {
			continue
		}
		matches = append(matches, Match{Name: c, Score: 1.0 - ratio})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return names
}

// Normalize title-cases a free-text name for display when it matched
// nothing in the catalog.
func Normalize(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// key reduces a name to lowercase alphanumerics so "Flutter Mane",
// "fluttermane" and "flutter-mane" all collide.
func key(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fuzzyContains checks if text contains characters of pattern in order
// with limited gaps (allows for typos and abbreviations)
func fuzzyContains(text, pattern string) bool {
	if len(pattern) == 0 {
		return true
	}
	if len(text) == 0 {
		return false
	}

	patternIdx := 0
	gaps := 0
	maxGaps := len(pattern) // Allow gaps proportional to pattern length

	for i := 0; i < len(text) && patternIdx < len(pattern); i++ {
		if text[i] == pattern[patternIdx] {
			patternIdx++
			gaps = 0 // Reset gap counter on match
		} else if patternIdx > 0 {
			gaps++
			if gaps > maxGaps {
				return false
			}
		}
	}

	return patternIdx == len(pattern)
}
