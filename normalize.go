package poet

import (
	"strings"
	"unicode"
)

var punctuationReplacer = strings.NewReplacer(
	"!", "",
	",", "",
	"?", "",
	":", "",
	";", "",
	"\"", "",
	"“", "",
	"”", "",
	"’", "'",
)

// Normalize turns a word as it appears in a poem into a dictionary key. It lower-cases the word
// and drops the punctuation around it. Periods are kept in abbreviations like "a.m." and
// apostrophes are kept in words like "'tis" or "let's".
func Normalize(word string) string {
	res := punctuationReplacer.Replace(strings.ToLower(word))
	if hasInnerPeriod(res) {
		return strings.TrimRight(res, "-")
	}

	return strings.TrimRight(res, ".-")
}

func hasInnerPeriod(s string) bool {
	afterPeriod := false
	for _, ch := range s {
		if afterPeriod && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			return true
		}

		afterPeriod = ch == '.'
	}

	return false
}
