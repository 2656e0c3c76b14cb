package quiz

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// TitleRecord is one entry in the adjective or subject list.
type TitleRecord struct {
	Text              string `json:"title"`
	Found             bool   `json:"found"`
	Hinted            bool   `json:"hinted"`
	LastRevealedIndex int    `json:"lastHintedIndex"`
	Revealed          bool   `json:"revealed"`
	GaveUp            bool   `json:"gaveUp"`
}

// NewTitle returns a record in its initial state.
func NewTitle(text string) TitleRecord {
	return TitleRecord{Text: text, LastRevealedIndex: -1}
}

// NewTitles sorts a copy of words case-insensitively and returns a fresh record for each.
func NewTitles(words []string) []TitleRecord {
	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, CompareNoCase)
	return lo.Map(sorted, func(w string, _ int) TitleRecord {
		return NewTitle(w)
	})
}

// CompareNoCase orders two strings by their lower-cased form.
func CompareNoCase(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// IsFound is the predicate used for neighbour lookups and random selection.
func IsFound(t TitleRecord) bool {
	return t.Found
}

// IsUnfound reports whether t can still receive a hint or reveal.
func IsUnfound(t TitleRecord) bool {
	return !t.Found
}

// Progress returns how many records in list are found and the list length.
func Progress(list []TitleRecord) (found, total int) {
	return lo.CountBy(list, IsFound), len(list)
}

// Started reports whether any record in list has been found or hinted.
func Started(list []TitleRecord) bool {
	return lo.SomeBy(list, func(t TitleRecord) bool {
		return t.Found || t.Hinted
	})
}

// AllFound reports whether every record in list is found.
func AllFound(list []TitleRecord) bool {
	return lo.EveryBy(list, IsFound)
}
