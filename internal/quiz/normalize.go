package quiz

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FreeCharacters are always displayed once a title is hinted and never cost a hint.
var FreeCharacters = []rune{' ', '-', '–', '\'', '‘', '’'}

var titleReplacer = strings.NewReplacer(
	"–", "-",
	"ω", "w",
	"‘", "'",
	"’", "'",
	"`", "'",
)

// IsFreeCharacter reports whether r is one of FreeCharacters.
func IsFreeCharacter(r rune) bool {
	return slices.Contains(FreeCharacters, r)
}

// Normalize folds case and unifies dash, omega and apostrophe variants so
// that textual variants of a title compare equal.
func Normalize(text string) string {
	// A Caser keeps state, so each call gets its own.
	lower := cases.Lower(language.Und).String(text)
	return titleReplacer.Replace(lower)
}

// TitlesMatch reports whether a and b are the same title after normalization.
func TitlesMatch(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// FindMatch returns the index of the first record in list whose canonical text
// matches input, or -1. Blank input never matches.
func FindMatch(list []TitleRecord, input string) int {
	if strings.TrimSpace(input) == "" {
		return -1
	}
	return slices.IndexFunc(list, func(t TitleRecord) bool {
		return TitlesMatch(t.Text, input)
	})
}
