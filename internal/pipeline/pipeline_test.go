package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"mythoscards/internal/config"
	"mythoscards/internal/logging"
	"mythoscards/internal/runlog"
	"mythoscards/internal/sheet"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.BackupDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	return &cfg
}

func writeChecklist(t *testing.T, headers []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checklist.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue("Sheet1", cell, header); err != nil {
			t.Fatal(err)
		}
	}
	for r, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestPipeline(t *testing.T) (*Pipeline, *config.Config, *runlog.Store) {
	t.Helper()
	cfg := testConfig(t)
	runs, err := runlog.OpenPath(filepath.Join(cfg.Paths.LogDir, "runs.db"))
	if err != nil {
		t.Fatalf("open run store: %v", err)
	}
	t.Cleanup(func() { _ = runs.Close() })
	return New(cfg, logging.NewNop(), runs), cfg, runs
}

func TestExpandChecklist(t *testing.T) {
	p, cfg, runs := newTestPipeline(t)
	checklistPath := writeChecklist(t,
		[]string{"Series Name", "Player Name", "Base", "/5"},
		[][]string{
			{"Mythos Legends", "Arda Güler", "2", "1"},
			{"Mythos Legends", "Kenan Yıldız", "1", ""},
		})
	outputPath := filepath.Join(cfg.Paths.OutputDir, "out.xlsx")

	report, err := p.ExpandChecklist(context.Background(), checklistPath, outputPath, false)
	if err != nil {
		t.Fatalf("ExpandChecklist: %v", err)
	}
	if len(report.Cards) != 8 {
		t.Fatalf("cards = %d, want 8 (2 base + 5 run + 1 base)", len(report.Cards))
	}

	texts, err := sheet.ReadCardColumn(outputPath)
	if err != nil {
		t.Fatalf("ReadCardColumn: %v", err)
	}
	if len(texts) != 8 {
		t.Errorf("workbook rows = %d, want 8", len(texts))
	}

	history, err := runs.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(history) != 1 || history[0].Status != runlog.StatusCompleted || history[0].TotalCards != 8 {
		t.Errorf("run history = %+v", history)
	}
}

func TestExpandChecklistBlockedByValidation(t *testing.T) {
	p, cfg, runs := newTestPipeline(t)
	checklistPath := writeChecklist(t,
		[]string{"Player Name", "/5"},
		[][]string{{"Arda Güler", "5"}})
	outputPath := filepath.Join(cfg.Paths.OutputDir, "out.xlsx")

	if _, err := p.ExpandChecklist(context.Background(), checklistPath, outputPath, false); err == nil {
		t.Fatal("blocking errors did not stop the export")
	}
	if _, err := os.Stat(outputPath); err == nil {
		t.Error("output workbook written despite blocking errors")
	}

	history, err := runs.Recent(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Status != runlog.StatusFailed {
		t.Errorf("run history = %+v", history)
	}
}

func TestMatchImagesEndToEnd(t *testing.T) {
	p, cfg, runs := newTestPipeline(t)
	checklistPath := writeChecklist(t,
		[]string{"Series Name", "Player Name", "Base", "/10"},
		[][]string{{"Mythos Legends", "Arda Güler", "", "10"}})
	outputPath := filepath.Join(cfg.Paths.OutputDir, "out.xlsx")

	imageDir := t.TempDir()
	for _, name := range []string{
		"mythos_legends_arda_guler_10.jpg",
		"mythos_legends_arda_guler_s_10.jpg",
	} {
		if err := os.WriteFile(filepath.Join(imageDir, name), []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	report, err := p.MatchImages(context.Background(), checklistPath, outputPath, imageDir)
	if err != nil {
		t.Fatalf("MatchImages: %v", err)
	}
	if len(report.Rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(report.Rows))
	}
	if report.Found != 10 || report.Missing != 0 || report.Conflicts != 0 {
		t.Errorf("counts = %+v", report)
	}
	if report.Renamed != 1 {
		t.Errorf("renamed = %d, want 1 (one physical file)", report.Renamed)
	}

	datePrefix := time.Now().Format("20060102")
	stamped := datePrefix + "_mythos_legends_arda_guler_10.jpg"
	if _, err := os.Stat(filepath.Join(imageDir, stamped)); err != nil {
		t.Errorf("stamped file missing: %v", err)
	}
	// The signed twin is untouched.
	if _, err := os.Stat(filepath.Join(imageDir, "mythos_legends_arda_guler_s_10.jpg")); err != nil {
		t.Errorf("unmatched file moved: %v", err)
	}

	images, err := sheet.ReadImageColumn(outputPath)
	if err != nil {
		t.Fatalf("ReadImageColumn: %v", err)
	}
	for row := 2; row <= 11; row++ {
		if images[row] != stamped {
			t.Errorf("row %d image = %q, want %q", row, images[row], stamped)
		}
	}

	history, err := runs.Recent(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d entries, want one images run", len(history))
	}
	if history[0].Kind != runlog.KindImages || history[0].Found != 10 {
		t.Errorf("match run = %+v", history[0])
	}
	if history[0].Status != runlog.StatusCompleted {
		t.Errorf("match run status = %q, want completed", history[0].Status)
	}
}

func TestMatchImagesConflictCell(t *testing.T) {
	p, cfg, _ := newTestPipeline(t)
	checklistPath := writeChecklist(t,
		[]string{"Series Name", "Player Name", "Base", "/10"},
		[][]string{{"Mythos Legends", "Arda Güler", "", "10"}})
	outputPath := filepath.Join(cfg.Paths.OutputDir, "out.xlsx")

	imageDir := t.TempDir()
	for _, name := range []string{
		"20200101_mythos_legends_arda_guler_10.jpg",
		"20200102_mythos_legends_arda_guler_10.jpg",
	} {
		if err := os.WriteFile(filepath.Join(imageDir, name), []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	report, err := p.MatchImages(context.Background(), checklistPath, outputPath, imageDir)
	if err != nil {
		t.Fatalf("MatchImages: %v", err)
	}
	if report.Conflicts != 10 {
		t.Fatalf("conflicts = %d, want 10", report.Conflicts)
	}

	images, err := sheet.ReadImageColumn(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(images[2], conflictPrefix) {
		t.Errorf("conflict cell = %q", images[2])
	}
}

func TestShortenNames(t *testing.T) {
	p, cfg, _ := newTestPipeline(t)

	longName := strings.Repeat("word_", 25) + "arda_guler_10.jpg"
	checklistPath := writeChecklist(t,
		[]string{"Series Name", "Player Name", "Base", "/10"},
		[][]string{{"Mythos Legends", "Arda Güler", "", "10"}})
	outputPath := filepath.Join(cfg.Paths.OutputDir, "out.xlsx")
	if _, err := p.ExpandChecklist(context.Background(), checklistPath, outputPath, false); err != nil {
		t.Fatal(err)
	}
	cells := make(map[int]string)
	for row := 2; row <= 11; row++ {
		cells[row] = longName
	}
	if err := sheet.UpdateImageColumn(outputPath, cells); err != nil {
		t.Fatal(err)
	}

	imageDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(imageDir, longName), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := p.ShortenNames(context.Background(), outputPath, imageDir)
	if err != nil {
		t.Fatalf("ShortenNames: %v", err)
	}
	if report.Shortened != 1 {
		t.Errorf("shortened = %d, want 1", report.Shortened)
	}

	images, err := sheet.ReadImageColumn(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(images[2]) > cfg.Shorten.MaxLength {
		t.Errorf("cell still %d chars: %q", len(images[2]), images[2])
	}
	if _, err := os.Stat(filepath.Join(imageDir, images[2])); err != nil {
		t.Errorf("shortened file missing on disk: %v", err)
	}
}

