package checklist

// VariantTally splits a variant's card count by polarity.
type VariantTally struct {
	Unsigned int
	Signed   int
}

// Summary aggregates a produced card list. It is a pure projection over the
// cards with no side effects.
type Summary struct {
	TotalCards   int
	TotalPlayers int
	Variants     map[string]VariantTally
	BaseByPlayer map[string]int
	BySeries     map[string]int
}

// Summarize computes the expansion summary for a card list.
func Summarize(cards []Card) Summary {
	summary := Summary{
		TotalCards:   len(cards),
		Variants:     make(map[string]VariantTally),
		BaseByPlayer: make(map[string]int),
		BySeries:     make(map[string]int),
	}

	players := make(map[string]struct{})
	for _, card := range cards {
		players[card.Player] = struct{}{}

		if card.VariantType == ColumnBase {
			summary.BaseByPlayer[card.Player]++
		} else {
			tally := summary.Variants[card.VariantType]
			if card.Signed {
				tally.Signed++
			} else {
				tally.Unsigned++
			}
			summary.Variants[card.VariantType] = tally
		}

		series := card.Series
		if series == "" {
			series = "Unknown"
		}
		summary.BySeries[series]++
	}
	summary.TotalPlayers = len(players)

	return summary
}
