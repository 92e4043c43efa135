package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := Wrap(ErrValidation, "checklist", "classify", "bad header", inner)

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected wrapped error to match ErrValidation: %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped error to keep inner error: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := Wrap(nil, "sheet", "open", "", nil)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected default marker ErrIO: %v", err)
	}
}

func TestWrapDetailParts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"all parts",
			Wrap(ErrNotFound, "organizer", "scan", "no images", nil),
			"not found: organizer: scan: no images",
		},
		{
			"empty parts",
			Wrap(ErrIO, "", "", "", nil),
			"io error: failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
