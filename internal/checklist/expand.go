package checklist

import (
	"fmt"
	"log/slog"
	"strings"

	"mythoscards/internal/logging"
	"mythoscards/internal/textnorm"
)

// ExpansionResult is the outcome of expanding a checklist table.
type ExpansionResult struct {
	Cards    []Card
	Summary  Summary
	Errors   []Issue
	Warnings []Issue
}

// Expand merges duplicate rows and expands every row of the table into card
// records according to the classified headers. A failing merge falls back to
// the raw row set with a warning; a failing row is skipped with an error
// citing its spreadsheet position. One bad row never aborts the batch.
func Expand(table Table, hs *HeaderSet, logger *slog.Logger) ExpansionResult {
	logger = logging.WithComponent(logger, "expander")

	var result ExpansionResult

	rows, err := MergeRows(table.Rows, hs)
	if err != nil {
		result.Warnings = append(result.Warnings, Issue{
			Type:    "Merge Fallback",
			Message: fmt.Sprintf("duplicate-row merge failed, using rows as-is: %v", err),
		})
		rows = table.Rows
	} else if len(rows) < len(table.Rows) {
		logger.Info("merged duplicate rows",
			logging.Int("before", len(table.Rows)),
			logging.Int("after", len(rows)))
	}

	for i, row := range rows {
		rowNum := i + 2 // 1-based spreadsheet position, after the header row
		cards, rowErr := expandRow(row, hs)
		if rowErr != nil {
			result.Errors = append(result.Errors, Issue{
				Row:     rowNum,
				Column:  "All",
				Type:    "Expansion Error",
				Message: rowErr.Error(),
			})
			continue
		}
		result.Cards = append(result.Cards, cards...)
	}

	result.Summary = Summarize(result.Cards)
	logger.Info("expansion finished",
		logging.Int("rows", len(rows)),
		logging.Int("cards", len(result.Cards)),
		logging.Int("errors", len(result.Errors)))

	return result
}

// expandRow emits the card records for a single merged row.
func expandRow(row []string, hs *HeaderSet) (cards []Card, err error) {
	// Row expansion is pure arithmetic over cells; a panic here would be a
	// programming error, converted to a row-scoped error so the batch
	// continues.
	defer func() {
		if r := recover(); r != nil {
			cards = nil
			err = fmt.Errorf("row expansion: %v", r)
		}
	}()

	player := cell(row, hs.PlayerIndex())
	if textnorm.Normalize(player) == "" {
		return nil, nil // blank trailing row
	}

	series := cell(row, hs.SeriesIndex())
	group := ""
	if idx := hs.GroupIndex(); idx >= 0 {
		group = cell(row, idx)
	}
	label := series
	if group != "" {
		label = series + " " + group
	}

	for _, descriptor := range hs.VariantColumns() {
		idx := hs.ColumnIndex(descriptor.ColumnName)
		if idx < 0 {
			continue
		}
		count := cellInt(cell(row, idx))
		if count <= 0 {
			continue
		}
		cards = append(cards, expandVariant(player, label, series, group, descriptor, count)...)
	}

	if idx := hs.BaseIndex(); idx >= 0 {
		if count := cellInt(cell(row, idx)); count > 0 {
			cards = append(cards, expandBase(player, label, series, group, count)...)
		}
	}

	for _, custom := range hs.CustomLabels {
		idx := hs.ColumnIndex(custom)
		if idx < 0 {
			continue
		}
		if count := cellInt(cell(row, idx)); count > 0 {
			cards = append(cards, expandCustomLabel(player, label, series, group, custom, count)...)
		}
	}

	return cards, nil
}

// expandVariant emits the run for one variant column. For a numeric
// denominator the run size is always the denominator itself: the cell value
// only gates production and is otherwise ignored. Named denominators have no
// fixed run size, so the cell value is the count.
func expandVariant(player, label, series, group string, descriptor VariantDescriptor, cellCount int) []Card {
	count := cellCount
	if descriptor.Denominator.Numeric() {
		count = descriptor.Denominator.Number
	}

	cards := make([]Card, 0, count)
	for number := 1; number <= count; number++ {
		cards = append(cards, Card{
			Text:        variantLine(player, label, descriptor, number, count),
			Player:      player,
			Label:       label,
			VariantType: descriptor.DisplayName,
			Denominator: count,
			Number:      number,
			Signed:      descriptor.Signed,
			Series:      series,
			Group:       group,
		})
	}
	return cards
}

func expandBase(player, label, series, group string, count int) []Card {
	cards := make([]Card, 0, count)
	for number := 1; number <= count; number++ {
		cards = append(cards, Card{
			Text:        fmt.Sprintf("%s %s %s", player, label, ColumnBase),
			Player:      player,
			Label:       label,
			VariantType: ColumnBase,
			Denominator: count,
			Number:      number,
			Series:      series,
			Group:       group,
		})
	}
	return cards
}

func expandCustomLabel(player, label, series, group, custom string, count int) []Card {
	signed := strings.Contains(strings.ToLower(custom), strings.ToLower(SignedMarker))
	cards := make([]Card, 0, count)
	for number := 1; number <= count; number++ {
		cards = append(cards, Card{
			Text:        fmt.Sprintf("%s %s %s", player, label, custom),
			Player:      player,
			Label:       label,
			VariantType: custom,
			Denominator: count,
			Number:      number,
			Signed:      signed,
			Series:      series,
			Group:       group,
		})
	}
	return cards
}

func variantLine(player, label string, descriptor VariantDescriptor, number, count int) string {
	line := fmt.Sprintf("%s %s (%d/%d)", player, label, number, count)
	if !descriptor.Denominator.Numeric() {
		line = fmt.Sprintf("%s %s %s (%d/%d)", player, label, descriptor.Denominator.Label, number, count)
	}
	if descriptor.Signed {
		line += " " + SignedMarker
	}
	return line
}
