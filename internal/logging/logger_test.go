package logging

import (
	"path/filepath"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFormats(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		t.Run("format "+format, func(t *testing.T) {
			logger, err := New(Options{Format: format, Level: "debug"})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if logger == nil {
				t.Fatal("nil logger")
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Options{OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello", String("key", "value"))
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Info("ignored")
	logger.Error("also ignored", Error(nil))
}

func TestWithComponentNilBase(t *testing.T) {
	logger := WithComponent(nil, "matcher")
	if logger == nil {
		t.Fatal("nil logger")
	}
	logger.Info("ok")
}
