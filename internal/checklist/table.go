package checklist

import (
	"strconv"
	"strings"
)

// Table is the materialized tabular input: an ordered header list and rows
// of cell values aligned to it, as delivered by the spreadsheet boundary.
type Table struct {
	Headers []string
	Rows    [][]string
}

// cell returns the trimmed value at column idx, tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isNumericCell reports whether a cell holds a parseable number.
func isNumericCell(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// formatCount renders a merged numeric cell back to its string form.
func formatCount(n int) string {
	return strconv.Itoa(n)
}

// cellInt converts a cell to an integer, truncating fractional values.
// Unparseable cells yield 0.
func cellInt(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
