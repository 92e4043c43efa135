package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"mythoscards/internal/checklist"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

var statusColors = map[statusKind]*color.Color{
	statusInfo:  color.New(color.FgBlue),
	statusOK:    color.New(color.FgGreen),
	statusWarn:  color.New(color.FgYellow),
	statusError: color.New(color.FgRed),
}

var statusLabels = map[statusKind]string{
	statusInfo:  "INFO",
	statusOK:    "OK",
	statusWarn:  "WARN",
	statusError: "ERROR",
}

func printStatus(w io.Writer, kind statusKind, message string) {
	label := fmt.Sprintf("[%s]", statusLabels[kind])
	if shouldColorize(w) {
		label = statusColors[kind].Sprint(label)
	}
	fmt.Fprintf(w, "%s %s\n", label, message)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printValidation lists every issue the checklist produced, errors first.
func printValidation(w io.Writer, report checklist.Report) {
	for _, issue := range report.Errors {
		printStatus(w, statusError, formatIssue(issue))
	}
	for _, issue := range report.Warnings {
		printStatus(w, statusWarn, formatIssue(issue))
	}
}

func formatIssue(issue checklist.Issue) string {
	location := ""
	if issue.Row > 0 {
		location = fmt.Sprintf("row %d, ", issue.Row)
	}
	if issue.Column != "" {
		location += fmt.Sprintf("column %s: ", issue.Column)
	}
	return fmt.Sprintf("%s%s (%s)", location, issue.Message, issue.Type)
}

func printSummary(w io.Writer, summary checklist.Summary) {
	fmt.Fprintf(w, "\nTotal cards: %d across %d players\n", summary.TotalCards, summary.TotalPlayers)
	if len(summary.Variants) == 0 {
		return
	}

	headers := []string{"Variant", "Unsigned", "Signed"}
	var rows [][]string
	names := make([]string, 0, len(summary.Variants))
	for name := range summary.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tally := summary.Variants[name]
		rows = append(rows, []string{name, fmt.Sprint(tally.Unsigned), fmt.Sprint(tally.Signed)})
	}
	fmt.Fprintln(w, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
}
