package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, turning
// "Mátame" into "Matame".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// apostropheReplacer removes straight and typographic apostrophes so that
// "Schitt's Creek" and "Schitts Creek" normalize identically.
var apostropheReplacer = strings.NewReplacer(
	"'", "",
	"‘", "",
	"’", "",
	"ʼ", "",
	"`", "",
	"\"", "",
	"“", "",
	"”", "",
)

// stopPhrases are noise suffixes third-party pages append to titles.
// Multi-word phrases come first so they match before their single-word
// tails. Removal is whole-word only.
var stopPhrases = [][]string{
	{"animated", "series"},
	{"tv", "series"},
	{"mini", "series"},
	{"miniseries"},
	{"season"},
	{"documentary"},
	{"serie"},
}

// Normalize canonicalizes a title for comparison: strips diacritics,
// lowercases, replaces "&" with "and", removes apostrophes, maps remaining
// punctuation to spaces, collapses whitespace, and removes noise phrases
// as whole words. Normalize(Normalize(x)) == Normalize(x) for any x.
func Normalize(text string) string {
	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "&", " and ")
	text = apostropheReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	tokens := removeStopPhrases(strings.Fields(b.String()))
	return strings.Join(tokens, " ")
}

func removeStopPhrases(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if n := stopPhraseAt(tokens, i); n > 0 {
			i += n
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func stopPhraseAt(tokens []string, idx int) int {
	for _, phrase := range stopPhrases {
		if idx+len(phrase) > len(tokens) {
			continue
		}
		matched := true
		for j, word := range phrase {
			if tokens[idx+j] != word {
				matched = false
				break
			}
		}
		if matched {
			return len(phrase)
		}
	}
	return 0
}
