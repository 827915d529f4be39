// Package annotate marks up card text with interactive word and phrase
// explanations. It produces typed spans instead of serialized markup so the
// view layer can attach behavior without parsing strings back apart.
package annotate

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Span is one contiguous run of card text. Interactive spans carry the matched
// literal in Text and its explanation; plain spans carry text only.
type Span struct {
	Text        string
	Explanation string
	Interactive bool
}

// Annotated is the ordered span sequence for one piece of card text.
// Concatenating Span.Text over the sequence reproduces the input exactly.
type Annotated []Span

// Plain returns the original text with all annotation structure dropped.
func (a Annotated) Plain() string {
	var b strings.Builder
	for _, s := range a {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Words returns only the interactive spans, in text order.
func (a Annotated) Words() []Span {
	out := make([]Span, 0, len(a))
	for _, s := range a {
		if s.Interactive {
			out = append(out, s)
		}
	}
	return out
}

// Trailing sentence punctuation stripped before the single-word lookup.
const trailingPunct = ".,!?;:¿¡"

// Placeholders use NUL delimiters so they can never collide with card text.
const placeholderMark = "\x00"

// Annotate splits text into spans, wrapping every breakdown key occurrence in
// an interactive span. Multi-word phrases are matched first, longest key
// first, so a phrase's component word is never independently annotated. Keys
// match case-insensitively; trailing sentence punctuation on a word stays
// outside its span unless the breakdown key itself carries it.
func Annotate(text string, breakdown map[string]string) Annotated {
	if len(breakdown) == 0 {
		return Annotated{{Text: text}}
	}

	pending := map[string]Span{}
	next := 0
	processed := text

	// Phrase pass: replace each whole phrase with an opaque placeholder so a
	// later, shorter key cannot re-match inside it.
	for _, phrase := range phraseKeys(breakdown) {
		re, err := phrasePattern(phrase)
		if err != nil {
			continue
		}
		explanation := breakdown[phrase]
		processed = re.ReplaceAllStringFunc(processed, func(match string) string {
			ph := placeholderMark + strconv.Itoa(next) + placeholderMark
			next++
			pending[ph] = Span{Text: match, Explanation: explanation, Interactive: true}
			return ph
		})
	}

	// Word pass: whitespace runs are kept verbatim; every other token is
	// looked up raw first, then with trailing punctuation stripped.
	index := lowerIndex(breakdown)
	var tokens []string
	for _, token := range splitKeepSpace(processed) {
		if isSpace(token) || strings.Contains(token, placeholderMark) {
			tokens = append(tokens, token)
			continue
		}
		clean := strings.TrimRight(token, trailingPunct)
		punct := token[len(clean):]

		match, explanation := token, ""
		if e, ok := index[strings.ToLower(token)]; ok {
			explanation = e
			punct = ""
		} else if e, ok := index[strings.ToLower(clean)]; ok && clean != "" {
			match = clean
			explanation = e
		} else {
			tokens = append(tokens, token)
			continue
		}

		ph := placeholderMark + strconv.Itoa(next) + placeholderMark
		next++
		pending[ph] = Span{Text: match, Explanation: explanation, Interactive: true}
		tokens = append(tokens, ph+punct)
	}
	processed = strings.Join(tokens, "")

	return resolve(processed, pending)
}

// phraseKeys returns the multi-word keys ordered longest first. Equal-length
// keys fall back to lexicographic order so the pass is deterministic; true
// overlapping-phrase precedence is otherwise unspecified.
func phraseKeys(breakdown map[string]string) []string {
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		if strings.Contains(k, " ") {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// phrasePattern builds the case-insensitive matcher for one phrase. A word
// boundary is only asserted on an edge that starts or ends with a word
// character, so phrases bracketed by ¿ or ¡ still match.
func phrasePattern(phrase string) (*regexp.Regexp, error) {
	prefix := ""
	if regexp.MustCompile(`^\w`).MatchString(phrase) {
		prefix = `\b`
	}
	suffix := ""
	if regexp.MustCompile(`\w$`).MatchString(phrase) {
		suffix = `\b`
	}
	return regexp.Compile(`(?i)` + prefix + regexp.QuoteMeta(phrase) + suffix)
}

func lowerIndex(breakdown map[string]string) map[string]string {
	out := make(map[string]string, len(breakdown))
	for k, v := range breakdown {
		out[strings.ToLower(k)] = v
	}
	return out
}

// splitKeepSpace splits on whitespace runs, keeping the runs as tokens so the
// join reproduces the input.
func splitKeepSpace(s string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range s {
		space := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			out = append(out, s[start:i])
			start = i
			inSpace = space
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func isSpace(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}

// resolve substitutes placeholders back by exact string position, emitting
// interactive spans for placeholders and plain spans for everything between.
func resolve(processed string, pending map[string]Span) Annotated {
	var out Annotated
	for len(processed) > 0 {
		start := strings.Index(processed, placeholderMark)
		if start < 0 {
			out = append(out, Span{Text: processed})
			break
		}
		end := strings.Index(processed[start+1:], placeholderMark)
		if end < 0 {
			out = append(out, Span{Text: processed})
			break
		}
		end += start + 2
		if start > 0 {
			out = append(out, Span{Text: processed[:start]})
		}
		if span, ok := pending[processed[start:end]]; ok {
			out = append(out, span)
		}
		processed = processed[end:]
	}
	if len(out) == 0 {
		out = Annotated{{Text: ""}}
	}
	return out
}
