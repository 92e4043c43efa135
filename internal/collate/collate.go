// Package collate orders produced card lists with locale-aware string
// comparison, so players named with Turkish letters sort the way a
// checklist author expects rather than by byte value.
package collate

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mythoscards/internal/checklist"
)

// Sorter holds a collator for one locale. A Sorter is not safe for
// concurrent use; x/text collators buffer state between comparisons.
type Sorter struct {
	collator *collate.Collator
}

// New builds a sorter for the given BCP 47 locale tag. An unparseable tag
// falls back to Turkish, the locale the card pool is produced in.
func New(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Turkish
	}
	return &Sorter{collator: collate.New(tag, collate.IgnoreCase)}
}

// SortCards orders cards for export: by player, then label, then variant
// with Base runs after every numbered and named variant, then card number.
// The sort is stable so equal cards keep their expansion order.
func (s *Sorter) SortCards(cards []checklist.Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if c := s.collator.CompareString(a.Player, b.Player); c != 0 {
			return c < 0
		}
		if c := s.collator.CompareString(a.Label, b.Label); c != 0 {
			return c < 0
		}
		if aBase, bBase := a.VariantType == checklist.ColumnBase, b.VariantType == checklist.ColumnBase; aBase != bBase {
			return bBase
		}
		if c := s.collator.CompareString(a.VariantType, b.VariantType); c != 0 {
			return c < 0
		}
		return a.Number < b.Number
	})
}

// SortStrings orders a plain string slice in the sorter's locale.
func (s *Sorter) SortStrings(values []string) {
	s.collator.SortStrings(values)
}
