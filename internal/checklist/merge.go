package checklist

import (
	"errors"

	"mythoscards/internal/textnorm"
)

// MergeRows folds rows sharing the same (normalized player, label) key into
// one row, summing every variant, Base, and custom-label numeric cell and
// taking the first row's value everywhere else. Label is the group cell when
// present, otherwise the series cell. This models checklists that spread one
// player's counts over several physical rows.
//
// The fold is pure: the input rows are never mutated and the merged rows are
// fresh slices. Row order follows the first occurrence of each key.
func MergeRows(rows [][]string, hs *HeaderSet) ([][]string, error) {
	if hs == nil {
		return nil, errors.New("merge rows: nil header set")
	}
	playerIdx := hs.PlayerIndex()
	if playerIdx < 0 {
		return nil, errors.New("merge rows: no player column")
	}

	summed := hs.summedColumns()

	width := len(hs.Normalized)
	type group struct {
		row []string
	}
	index := make(map[string]*group)
	var order []string

	for _, row := range rows {
		key := mergeKey(row, hs, playerIdx)

		existing, ok := index[key]
		if !ok {
			merged := make([]string, width)
			for i := range merged {
				merged[i] = cell(row, i)
			}
			index[key] = &group{row: merged}
			order = append(order, key)
			continue
		}

		for i := range summed {
			if !summed[i] {
				continue
			}
			left := cell(existing.row, i)
			right := cell(row, i)
			if left == "" && right == "" {
				continue
			}
			existing.row[i] = formatCount(cellInt(left) + cellInt(right))
		}
	}

	merged := make([][]string, 0, len(order))
	for _, key := range order {
		merged = append(merged, index[key].row)
	}
	return merged, nil
}

// summedColumns marks the column positions whose cells are summed during a
// merge: every variant column, the Base column, and every custom label.
func (hs *HeaderSet) summedColumns() []bool {
	summed := make([]bool, len(hs.Normalized))
	for _, descriptor := range hs.VariantColumns() {
		if idx := hs.ColumnIndex(descriptor.ColumnName); idx >= 0 {
			summed[idx] = true
		}
	}
	if idx := hs.BaseIndex(); idx >= 0 {
		summed[idx] = true
	}
	for _, label := range hs.CustomLabels {
		if idx := hs.ColumnIndex(label); idx >= 0 {
			summed[idx] = true
		}
	}
	return summed
}

func mergeKey(row []string, hs *HeaderSet, playerIdx int) string {
	player := textnorm.Normalize(cell(row, playerIdx))
	label := ""
	if groupIdx := hs.GroupIndex(); groupIdx >= 0 {
		label = textnorm.Normalize(cell(row, groupIdx))
	}
	if label == "" {
		if seriesIdx := hs.SeriesIndex(); seriesIdx >= 0 {
			label = textnorm.Normalize(cell(row, seriesIdx))
		}
	}
	return player + "|" + label
}
