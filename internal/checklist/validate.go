package checklist

import (
	"fmt"
	"sort"
	"strings"

	"mythoscards/internal/textnorm"
)

// largeBaseThreshold flags suspicious Base counts that usually mean a typo.
const largeBaseThreshold = 999

// Report is the outcome of validating a checklist table against its
// classified headers. Blocking errors should stop an export unless the
// caller explicitly overrides; warnings are informational only.
type Report struct {
	Errors   []Issue
	Warnings []Issue
	Summary  ReportSummary
}

// ReportSummary aggregates a validation pass.
type ReportSummary struct {
	TotalRows      int
	TotalErrors    int
	BlockingErrors int
	TotalWarnings  int
	ErrorTypes     map[string]int
	WarningTypes   map[string]int
}

// IsProcessable reports whether the table can be exported without override.
func (r Report) IsProcessable() bool { return r.Summary.BlockingErrors == 0 }

// ValidateTable runs every data-level rule over the raw (unmerged) rows.
// Header classification issues are folded into the report so callers see a
// single error surface.
func ValidateTable(table Table, hs *HeaderSet) Report {
	v := validator{table: table, hs: hs}
	v.errors = append(v.errors, hs.Errors...)
	v.warnings = append(v.warnings, hs.Warnings...)

	v.checkRequiredFields()
	v.checkVariantCells()
	v.checkBaseCells()
	v.checkDuplicateRows()

	return v.report()
}

type validator struct {
	table    Table
	hs       *HeaderSet
	errors   []Issue
	warnings []Issue
}

func (v *validator) checkRequiredFields() {
	seriesIdx := v.hs.SeriesIndex()
	playerIdx := v.hs.PlayerIndex()
	groupIdx := v.hs.GroupIndex()

	for i, row := range v.table.Rows {
		rowNum := i + 2

		if playerIdx >= 0 && textnorm.Normalize(cell(row, playerIdx)) == "" {
			// Blank players skip expansion silently, but only report rows
			// that carry other data; fully blank trailing rows are normal.
			if !rowIsBlank(row) {
				v.addWarning(rowNum, ColumnPlayer, "Required Field", "player name is empty, row will be skipped")
			}
			continue
		}

		if seriesIdx >= 0 && textnorm.Normalize(cell(row, seriesIdx)) == "" {
			if groupIdx < 0 || textnorm.Normalize(cell(row, groupIdx)) == "" {
				v.addError(rowNum, ColumnSeries, "Required Field", "series name is empty (group is empty too)")
			}
		}
	}
}

// checkVariantCells verifies every variant cell is a usable count and warns
// when the count disagrees with the column's fixed run size. Expansion will
// emit the denominator regardless, so the mismatch is informational.
func (v *validator) checkVariantCells() {
	for _, descriptor := range v.hs.VariantColumns() {
		idx := v.hs.ColumnIndex(descriptor.ColumnName)
		if idx < 0 {
			continue
		}
		for i, row := range v.table.Rows {
			rowNum := i + 2
			raw := cell(row, idx)
			if raw == "" {
				continue
			}
			if !isNumericCell(raw) {
				v.addError(rowNum, descriptor.ColumnName, "Invalid Value", fmt.Sprintf("non-numeric value: %s", raw))
				continue
			}
			value := cellInt(raw)
			if value < 0 {
				v.addError(rowNum, descriptor.ColumnName, "Negative Value", fmt.Sprintf("negative value: %d", value))
				continue
			}
			if !descriptor.Denominator.Numeric() || value == 0 {
				continue
			}
			denominator := descriptor.Denominator.Number
			switch {
			case value > denominator:
				v.addWarning(rowNum, descriptor.ColumnName, "Value Exceeds Denominator",
					fmt.Sprintf("value %d exceeds denominator %d (still producing %d cards)", value, denominator, denominator))
			case value < denominator:
				v.addWarning(rowNum, descriptor.ColumnName, "Value Below Denominator",
					fmt.Sprintf("value %d is below denominator %d (still producing %d cards)", value, denominator, denominator))
			}
		}
	}
}

func (v *validator) checkBaseCells() {
	idx := v.hs.BaseIndex()
	if idx < 0 {
		return
	}
	for i, row := range v.table.Rows {
		rowNum := i + 2
		raw := cell(row, idx)
		if raw == "" {
			continue
		}
		if !isNumericCell(raw) {
			v.addError(rowNum, ColumnBase, "Invalid Value", fmt.Sprintf("non-numeric Base value: %s", raw))
			continue
		}
		value := cellInt(raw)
		if value < 0 {
			v.addError(rowNum, ColumnBase, "Negative Value", fmt.Sprintf("negative Base value: %d", value))
			continue
		}
		if value > largeBaseThreshold {
			v.addWarning(rowNum, ColumnBase, "Large Base Value", fmt.Sprintf("unusually large Base value: %d", value))
		}
	}
}

// checkDuplicateRows reports players whose counts are spread over several
// rows. The expander merges them, so this is a warning with the row list and
// the summed count, not an error.
func (v *validator) checkDuplicateRows() {
	playerIdx := v.hs.PlayerIndex()
	if playerIdx < 0 {
		return
	}

	summed := v.hs.summedColumns()
	for idx, isSummed := range summed {
		if !isSummed {
			continue
		}
		column := v.hs.Normalized[idx]

		type occurrence struct {
			rows  []int
			total int
		}
		byKey := make(map[string]*occurrence)
		var order []string

		for i, row := range v.table.Rows {
			player := textnorm.Normalize(cell(row, playerIdx))
			if player == "" {
				continue
			}
			value := cellInt(cell(row, idx))
			if value <= 0 {
				continue
			}
			key := mergeKey(row, v.hs, playerIdx)
			occ, ok := byKey[key]
			if !ok {
				occ = &occurrence{}
				byKey[key] = occ
				order = append(order, key)
			}
			occ.rows = append(occ.rows, i+2)
			occ.total += value
		}

		for _, key := range order {
			occ := byKey[key]
			if len(occ.rows) < 2 {
				continue
			}
			v.addWarning(occ.rows[0], column, "Duplicate Rows",
				fmt.Sprintf("player %s appears on rows %s, merged total %d",
					strings.SplitN(key, "|", 2)[0], formatRows(occ.rows), occ.total))
		}
	}
}

func (v *validator) addError(row int, column, issueType, message string) {
	v.errors = append(v.errors, Issue{Row: row, Column: column, Type: issueType, Message: message, Blocking: true})
}

func (v *validator) addWarning(row int, column, issueType, message string) {
	v.warnings = append(v.warnings, Issue{Row: row, Column: column, Type: issueType, Message: message})
}

func (v *validator) report() Report {
	summary := ReportSummary{
		TotalRows:     len(v.table.Rows),
		TotalErrors:   len(v.errors),
		TotalWarnings: len(v.warnings),
		ErrorTypes:    make(map[string]int),
		WarningTypes:  make(map[string]int),
	}
	for _, issue := range v.errors {
		summary.ErrorTypes[issue.Type]++
		if issue.Blocking {
			summary.BlockingErrors++
		}
	}
	for _, issue := range v.warnings {
		summary.WarningTypes[issue.Type]++
	}
	return Report{Errors: v.errors, Warnings: v.warnings, Summary: summary}
}

func rowIsBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func formatRows(rows []int) string {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, row := range sorted {
		parts[i] = fmt.Sprintf("%d", row)
	}
	return strings.Join(parts, ", ")
}
