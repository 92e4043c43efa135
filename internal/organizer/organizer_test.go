package organizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeImage(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("image-bytes"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestOrganizer(t *testing.T) (*Organizer, string, string) {
	t.Helper()
	imageDir := t.TempDir()
	backupDir := t.TempDir()
	o := New(imageDir, backupDir, nil)
	o.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return o, imageDir, backupDir
}

func TestScanImages(t *testing.T) {
	o, imageDir, _ := newTestOrganizer(t)
	writeImage(t, imageDir, "b.jpg")
	writeImage(t, imageDir, "a.PNG")
	writeImage(t, imageDir, "c.jpeg")
	writeImage(t, imageDir, "notes.txt")
	if err := os.Mkdir(filepath.Join(imageDir, "sub.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := o.ScanImages()
	if err != nil {
		t.Fatalf("ScanImages: %v", err)
	}
	want := []string{"a.PNG", "b.jpg", "c.jpeg"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestBackupSkipsStampedFiles(t *testing.T) {
	o, imageDir, _ := newTestOrganizer(t)
	writeImage(t, imageDir, "arda_guler_10.jpg")
	writeImage(t, imageDir, "20240315_kenan_yildiz_5.jpg")

	dir, copied, err := o.Backup("", []string{"arda_guler_10.jpg", "20240315_kenan_yildiz_5.jpg"}, true)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if copied != 1 {
		t.Errorf("copied = %d, want 1", copied)
	}
	if _, err := os.Stat(filepath.Join(dir, "arda_guler_10.jpg")); err != nil {
		t.Errorf("backup copy missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "20240315_kenan_yildiz_5.jpg")); err == nil {
		t.Error("already-stamped file was backed up")
	}
}

func TestBackupLabelInFolderName(t *testing.T) {
	o, imageDir, backupDir := newTestOrganizer(t)
	writeImage(t, imageDir, "a.jpg")

	dir, _, err := o.Backup("shorten", []string{"a.jpg"}, false)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	want := filepath.Join(backupDir, "20240315_shorten_"+filepath.Base(imageDir))
	if dir != want {
		t.Errorf("backup dir = %q, want %q", dir, want)
	}
}

func TestDatePrefixRenames(t *testing.T) {
	o, _, _ := newTestOrganizer(t)
	renames := o.DatePrefixRenames([]string{"arda_guler_10.jpg", "20240315_done_5.jpg", ""})
	if len(renames) != 1 {
		t.Fatalf("plan = %v, want one entry", renames)
	}
	if renames["arda_guler_10.jpg"] != "20240315_arda_guler_10.jpg" {
		t.Errorf("plan = %v", renames)
	}
}

func TestRename(t *testing.T) {
	o, imageDir, _ := newTestOrganizer(t)
	writeImage(t, imageDir, "old.jpg")
	writeImage(t, imageDir, "clash_source.jpg")
	writeImage(t, imageDir, "clash_target.jpg")

	applied, err := o.Rename(map[string]string{
		"old.jpg":          "new.jpg",
		"missing.jpg":      "whatever.jpg",
		"clash_source.jpg": "clash_target.jpg",
	})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if len(applied) != 1 || applied["old.jpg"] != "new.jpg" {
		t.Errorf("applied = %v", applied)
	}
	if _, err := os.Stat(filepath.Join(imageDir, "new.jpg")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(imageDir, "clash_source.jpg")); err != nil {
		t.Errorf("clashing source was moved: %v", err)
	}
}

func TestLockExcludesSecondRun(t *testing.T) {
	o, imageDir, _ := newTestOrganizer(t)
	if err := o.Lock(); err != nil {
		t.Fatalf("first lock: %v", err)
	}
	defer o.Unlock()

	second := New(imageDir, t.TempDir(), nil)
	if err := second.Lock(); err == nil {
		second.Unlock()
		t.Fatal("second lock acquired on the same directory")
	}
}
