// Package sheet is the spreadsheet boundary: it reads checklist workbooks
// into plain tables and writes the produced card list, summary, and issue
// sheets back out. All parsing and matching logic lives elsewhere; this
// package only moves cells.
package sheet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"mythoscards/internal/checklist"
	"mythoscards/internal/errs"
)

// Sheet and column names of the output workbook.
const (
	ChecklistSheet = "Checklist"
	OutputSheet    = "Output"
	SummarySheet   = "Summary"
	IssuesSheet    = "Issues"

	cardHeader  = "Card List"
	imageHeader = "Image File"
)

// ReadChecklist loads the checklist table from a workbook. The sheet named
// "Checklist" is preferred; otherwise the first sheet is used. The first
// row becomes the header list and every following row a data row.
func ReadChecklist(path string) (checklist.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return checklist.Table{}, errs.Wrap(errs.ErrIO, "sheet", "read", "open workbook", err)
	}
	defer func() { _ = f.Close() }()

	name := pickSheet(f)
	if name == "" {
		return checklist.Table{}, errs.Wrap(errs.ErrValidation, "sheet", "read", "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return checklist.Table{}, errs.Wrap(errs.ErrIO, "sheet", "read", fmt.Sprintf("read sheet %s", name), err)
	}
	if len(rows) == 0 {
		return checklist.Table{}, errs.Wrap(errs.ErrValidation, "sheet", "read", "sheet is empty", nil)
	}

	table := checklist.Table{Headers: rows[0]}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func pickSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	for _, name := range sheets {
		if strings.EqualFold(name, ChecklistSheet) {
			return name
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}

// WriteWorkbook writes the full output workbook: the card list with an
// empty image column, the expansion summary, and every validation issue.
func WriteWorkbook(path string, cards []checklist.Card, summary checklist.Summary, report checklist.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeOutputSheet(f, cards); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}
	if err := writeIssuesSheet(f, report); err != nil {
		return err
	}

	// The implicit first sheet is replaced by the ones above.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "write", "drop default sheet", err)
	}
	if err := f.SaveAs(path); err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "write", "save workbook", err)
	}
	return nil
}

func writeOutputSheet(f *excelize.File, cards []checklist.Card) error {
	if _, err := f.NewSheet(OutputSheet); err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "write", "create output sheet", err)
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	_ = f.SetCellValue(OutputSheet, "A1", cardHeader)
	_ = f.SetCellValue(OutputSheet, "B1", imageHeader)
	_ = f.SetCellStyle(OutputSheet, "A1", "B1", style)
	_ = f.SetColWidth(OutputSheet, "A", "B", 60)

	for i, card := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errs.Wrap(errs.ErrIO, "sheet", "write", "cell coordinates", err)
		}
		if err := f.SetCellValue(OutputSheet, cell, card.Text); err != nil {
			return errs.Wrap(errs.ErrIO, "sheet", "write", "write card cell", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary checklist.Summary) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "write", "create summary sheet", err)
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	row := 1
	set := func(col int, value any) {
		cell, cellErr := excelize.CoordinatesToCellName(col, row)
		if cellErr == nil {
			_ = f.SetCellValue(SummarySheet, cell, value)
		}
	}
	section := func(title string) {
		set(1, title)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellStyle(SummarySheet, cell, cell, style)
		row++
	}

	section("Overview")
	set(1, "Total cards")
	set(2, summary.TotalCards)
	row++
	set(1, "Total players")
	set(2, summary.TotalPlayers)
	row += 2

	if len(summary.Variants) > 0 {
		section("Variants")
		set(1, "Variant")
		set(2, "Unsigned")
		set(3, "Signed")
		row++
		for _, name := range sortedKeys(summary.Variants) {
			tally := summary.Variants[name]
			set(1, name)
			set(2, tally.Unsigned)
			set(3, tally.Signed)
			row++
		}
		row++
	}

	if len(summary.BySeries) > 0 {
		section("Series")
		set(1, "Series")
		set(2, "Cards")
		row++
		for _, series := range sortedKeys(summary.BySeries) {
			set(1, series)
			set(2, summary.BySeries[series])
			row++
		}
		row++
	}

	if len(summary.BaseByPlayer) > 0 {
		section("Base cards")
		set(1, "Player")
		set(2, "Count")
		row++
		for _, player := range sortedKeys(summary.BaseByPlayer) {
			set(1, player)
			set(2, summary.BaseByPlayer[player])
			row++
		}
	}

	_ = f.SetColWidth(SummarySheet, "A", "A", 40)
	return nil
}

func writeIssuesSheet(f *excelize.File, report checklist.Report) error {
	if _, err := f.NewSheet(IssuesSheet); err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "write", "create issues sheet", err)
	}

	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	headers := []string{"Severity", "Row", "Column", "Type", "Message"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(IssuesSheet, cell, header)
	}
	_ = f.SetCellStyle(IssuesSheet, "A1", "E1", style)
	_ = f.SetColWidth(IssuesSheet, "E", "E", 70)

	row := 2
	writeIssue := func(severity string, issue checklist.Issue) {
		values := []any{severity, issue.Row, issue.Column, issue.Type, issue.Message}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(IssuesSheet, cell, value)
		}
		row++
	}
	for _, issue := range report.Errors {
		writeIssue("Error", issue)
	}
	for _, issue := range report.Warnings {
		writeIssue("Warning", issue)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return 0, errs.Wrap(errs.ErrIO, "sheet", "write", "create header style", err)
	}
	return style, nil
}

// ReadCardColumn returns the card text of every output row, keyed by its
// 1-based spreadsheet row number.
func ReadCardColumn(path string) (map[int]string, error) {
	return readColumn(path, 0)
}

// ReadImageColumn returns the image filename of every output row that has
// one, keyed by its 1-based spreadsheet row number.
func ReadImageColumn(path string) (map[int]string, error) {
	return readColumn(path, 1)
}

func readColumn(path string, col int) (map[int]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "sheet", "read", "open workbook", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(outputSheetName(f))
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "sheet", "read", "read output sheet", err)
	}

	values := make(map[int]string)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if col < len(row) {
			if value := strings.TrimSpace(row[col]); value != "" {
				values[i+1] = value
			}
		}
	}
	return values, nil
}

// UpdateImageColumn writes image filenames into the output sheet, keyed by
// 1-based row number. Rows not present in the map are left untouched.
func UpdateImageColumn(path string, values map[int]string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "update", "open workbook", err)
	}
	defer func() { _ = f.Close() }()

	name := outputSheetName(f)
	for row, value := range values {
		cell, cellErr := excelize.CoordinatesToCellName(2, row)
		if cellErr != nil {
			return errs.Wrap(errs.ErrIO, "sheet", "update", "cell coordinates", cellErr)
		}
		if err := f.SetCellValue(name, cell, value); err != nil {
			return errs.Wrap(errs.ErrIO, "sheet", "update", "write image cell", err)
		}
	}

	if err := f.Save(); err != nil {
		return errs.Wrap(errs.ErrIO, "sheet", "update", "save workbook", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func outputSheetName(f *excelize.File) string {
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, OutputSheet) {
			return name
		}
	}
	sheets := f.GetSheetList()
	if len(sheets) > 0 {
		return sheets[0]
	}
	return OutputSheet
}
