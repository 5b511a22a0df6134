package reference

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// vowelFold maps the Hungarian accented vowels onto their plain forms. Only
// these are folded; any other character passes through unchanged.
var vowelFold = map[rune]rune{
	'á': 'a',
	'é': 'e',
	'í': 'i',
	'ó': 'o', 'ö': 'o', 'ő': 'o',
	'ú': 'u', 'ü': 'u', 'ű': 'u',
}

func foldVowel(r rune) rune {
	if folded, ok := vowelFold[r]; ok {
		return folded
	}
	return r
}

func isSeparator(r rune) bool {
	return r == '.' || unicode.IsSpace(r)
}

// Normalize canonicalizes a book token for slug comparison: it lower-cases
// the token, drops whitespace and periods, and folds accented vowels.
func Normalize(token string) string {
	// Transformers carry state, so each call gets its own chain.
	t := transform.Chain(
		cases.Lower(language.Hungarian),
		runes.Remove(runes.Predicate(isSeparator)),
		runes.Map(foldVowel),
	)
	out, _, err := transform.String(t, token)
	if err != nil {
		// Unreachable for valid UTF-8.
		return strings.Map(func(r rune) rune {
			if isSeparator(r) {
				return -1
			}
			return foldVowel(r)
		}, strings.ToLower(token))
	}
	return out
}
