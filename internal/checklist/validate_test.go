package checklist

import "testing"

func validate(t *testing.T, headers []string, rows [][]string) Report {
	t.Helper()
	hs := ClassifyHeaders(headers)
	return ValidateTable(Table{Headers: headers, Rows: rows}, hs)
}

func issueTypes(issues []Issue) map[string]int {
	types := make(map[string]int)
	for _, issue := range issues {
		types[issue.Type]++
	}
	return types
}

func TestValidateCleanTable(t *testing.T) {
	report := validate(t, standardHeaders, [][]string{
		{"2024 Prime", "Arda Güler", "", "10", "5", "", "1"},
	})
	if !report.IsProcessable() {
		t.Fatalf("clean table not processable: %+v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", report.Warnings)
	}
}

func TestValidateCellValues(t *testing.T) {
	tests := []struct {
		name        string
		cell        string
		wantError   string
		wantWarning string
	}{
		{"non-numeric", "abc", "Invalid Value", ""},
		{"negative", "-2", "Negative Value", ""},
		{"exceeds denominator", "7", "", "Value Exceeds Denominator"},
		{"below denominator", "3", "", "Value Below Denominator"},
		{"matches denominator", "5", "", ""},
		{"zero is a plain gate", "0", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validate(t, standardHeaders, [][]string{
				{"2024 Prime", "Arda Güler", "", "", tt.cell, "", ""},
			})
			errTypes := issueTypes(report.Errors)
			warnTypes := issueTypes(report.Warnings)
			if tt.wantError != "" && errTypes[tt.wantError] == 0 {
				t.Errorf("missing error %q, got %+v", tt.wantError, report.Errors)
			}
			if tt.wantError == "" && len(report.Errors) != 0 {
				t.Errorf("unexpected errors: %+v", report.Errors)
			}
			if tt.wantWarning != "" && warnTypes[tt.wantWarning] == 0 {
				t.Errorf("missing warning %q, got %+v", tt.wantWarning, report.Warnings)
			}
			if tt.wantWarning == "" && len(report.Warnings) != 0 {
				t.Errorf("unexpected warnings: %+v", report.Warnings)
			}
		})
	}
}

func TestValidateBaseColumn(t *testing.T) {
	t.Run("large value warns", func(t *testing.T) {
		report := validate(t, standardHeaders, [][]string{
			{"2024 Prime", "Arda Güler", "", "1500", "", "", ""},
		})
		if !report.IsProcessable() {
			t.Fatalf("warning blocked processing: %+v", report.Errors)
		}
		if issueTypes(report.Warnings)["Large Base Value"] == 0 {
			t.Errorf("missing large base warning: %+v", report.Warnings)
		}
	})

	t.Run("non-numeric errors", func(t *testing.T) {
		report := validate(t, standardHeaders, [][]string{
			{"2024 Prime", "Arda Güler", "", "many", "", "", ""},
		})
		if report.IsProcessable() {
			t.Fatal("non-numeric base did not block")
		}
	})
}

func TestValidateRequiredFields(t *testing.T) {
	t.Run("empty series with group is fine", func(t *testing.T) {
		report := validate(t, standardHeaders, [][]string{
			{"", "Arda Güler", "Madrid", "1", "", "", ""},
		})
		if issueTypes(report.Errors)["Required Field"] != 0 {
			t.Errorf("series backed by group flagged: %+v", report.Errors)
		}
	})

	t.Run("empty series and group errors", func(t *testing.T) {
		report := validate(t, standardHeaders, [][]string{
			{"", "Arda Güler", "", "1", "", "", ""},
		})
		if issueTypes(report.Errors)["Required Field"] != 1 {
			t.Errorf("missing required-field error: %+v", report.Errors)
		}
	})

	t.Run("empty player with data warns", func(t *testing.T) {
		report := validate(t, standardHeaders, [][]string{
			{"2024 Prime", "", "", "4", "", "", ""},
		})
		if issueTypes(report.Warnings)["Required Field"] != 1 {
			t.Errorf("missing skipped-row warning: %+v", report.Warnings)
		}
		if !report.IsProcessable() {
			t.Errorf("skipped row blocked processing: %+v", report.Errors)
		}
	})

	t.Run("fully blank row is silent", func(t *testing.T) {
		report := validate(t, standardHeaders, [][]string{
			{"", "", "", "", "", "", ""},
		})
		if len(report.Errors) != 0 || len(report.Warnings) != 0 {
			t.Errorf("blank row reported: errors=%+v warnings=%+v", report.Errors, report.Warnings)
		}
	})
}

func TestValidateDuplicateRows(t *testing.T) {
	report := validate(t, standardHeaders, [][]string{
		{"2024 Prime", "Arda Güler", "", "2", "", "", ""},
		{"2024 Prime", "Kenan Yıldız", "", "1", "", "", ""},
		{"2024 Prime", "arda güler", "", "3", "", "", ""},
	})
	warnings := issueTypes(report.Warnings)
	if warnings["Duplicate Rows"] != 1 {
		t.Fatalf("duplicate rows not reported once: %+v", report.Warnings)
	}
	for _, issue := range report.Warnings {
		if issue.Type == "Duplicate Rows" && issue.Row != 2 {
			t.Errorf("duplicate warning anchored to row %d, want 2", issue.Row)
		}
	}
	if !report.IsProcessable() {
		t.Errorf("duplicates blocked processing: %+v", report.Errors)
	}
}

func TestValidateFoldsHeaderIssues(t *testing.T) {
	hs := ClassifyHeaders([]string{"Player Name", "/5"})
	report := ValidateTable(Table{Rows: [][]string{{"Arda Güler", "5"}}}, hs)
	if report.IsProcessable() {
		t.Fatal("missing columns did not block")
	}
	if issueTypes(report.Errors)["Missing Column"] != 2 {
		t.Errorf("header errors not folded into report: %+v", report.Errors)
	}
}
