package game

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// MatchType classifies how a typed answer matched the expected one.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchFuzzy   MatchType = "fuzzy"
	MatchNone    MatchType = "none"
)

// Evaluation is the outcome of grading one free-text answer.
// Confidence is clamped to [0,1].
type Evaluation struct {
	IsCorrect  bool
	Type       MatchType
	Confidence float64
}

// fuzzyThreshold is the minimum similarity at which a misspelled
// answer is still accepted.
const fuzzyThreshold = 0.8

// Evaluate grades a typed answer against the expected text. Matching
// gets progressively looser: exact normalized equality, then
// article-stripped equality, then edit-distance similarity.
func Evaluate(userAnswer, expected string) Evaluation {
	user := normalizeAnswer(userAnswer)
	want := normalizeAnswer(expected)
	if want == "" {
		return Evaluation{IsCorrect: false, Type: MatchNone, Confidence: 0}
	}
	if user == "" {
		return Evaluation{IsCorrect: false, Type: MatchNone, Confidence: 0}
	}

	if user == want {
		return Evaluation{IsCorrect: true, Type: MatchExact, Confidence: 1.0}
	}

	if stripArticles(user) == stripArticles(want) {
		return Evaluation{IsCorrect: true, Type: MatchPartial, Confidence: 0.9}
	}

	sim := similarity(user, want)
	if sim >= fuzzyThreshold {
		return Evaluation{IsCorrect: true, Type: MatchFuzzy, Confidence: sim}
	}
	return Evaluation{IsCorrect: false, Type: MatchNone, Confidence: sim}
}

// normalizeAnswer lowercases, trims, drops punctuation, and collapses
// internal whitespace so "It's  cold!" and "its cold" compare equal.
func normalizeAnswer(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripArticles removes leading-position English articles and pronouns
// that learners commonly omit, so "the check" matches "check".
func stripArticles(s string) string {
	skip := map[string]bool{
		"the": true, "a": true, "an": true,
		"i": true, "it": true, "to": true,
	}
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if skip[f] {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, " ")
}

// similarity maps edit distance to [0,1], 1 being identical.
func similarity(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	sim := 1.0 - float64(d)/float64(longest)
	if sim < 0 {
		return 0
	}
	return sim
}
