package imagematch

import (
	"reflect"
	"testing"

	"mythoscards/internal/checklist"
)

func newTestMatcher(filenames ...string) *Matcher {
	return NewMatcher(filenames, DefaultThresholds(), nil)
}

func card(player, series, group string, denominator int, signed bool) checklist.Card {
	return checklist.Card{
		Text:        player,
		Player:      player,
		Series:      series,
		Group:       group,
		VariantType: "/10",
		Denominator: denominator,
		Signed:      signed,
	}
}

func TestMatchSignedExclusion(t *testing.T) {
	// The signed twin must never win on similarity alone.
	m := newTestMatcher(
		"mythos_legends_arda_guler_10.jpg",
		"mythos_legends_arda_guler_s_10.jpg",
	)

	result := m.Match(card("Arda Güler", "Mythos Legends", "", 10, false))
	if result.Status != StatusFound {
		t.Fatalf("status = %s, want found (%s)", result.Status, result.Diagnostic)
	}
	if result.MatchedFile != "mythos_legends_arda_guler_10.jpg" {
		t.Errorf("matched %q, want the unsigned file", result.MatchedFile)
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}

	signed := m.Match(card("Arda Güler", "Mythos Legends", "", 10, true))
	if signed.Status != StatusFound || signed.MatchedFile != "mythos_legends_arda_guler_s_10.jpg" {
		t.Errorf("signed card got %+v", signed)
	}
}

func TestMatchDenominatorExact(t *testing.T) {
	m := newTestMatcher("arda_guler_25.jpg")

	if got := m.Match(card("Arda Güler", "", "", 10, false)); got.Status != StatusMissing {
		t.Errorf("denominator mismatch accepted: %+v", got)
	}
	if got := m.Match(card("Arda Güler", "", "", 25, false)); got.Status != StatusFound {
		t.Errorf("exact denominator rejected: %+v", got)
	}
}

func TestMatchBaseCards(t *testing.T) {
	m := newTestMatcher("arda_guler_base.jpg", "arda_guler_10.jpg")

	base := checklist.Card{Player: "Arda Güler", VariantType: checklist.ColumnBase, Denominator: 78}
	result := m.Match(base)
	if result.Status != StatusFound || result.MatchedFile != "arda_guler_base.jpg" {
		t.Errorf("base card got %+v", result)
	}

	// A non-base card must not pick up the base file.
	if got := m.Match(card("Arda Güler", "", "", 10, false)); got.MatchedFile != "arda_guler_10.jpg" {
		t.Errorf("variant card got %+v", got)
	}
}

func TestMatchRejectsMissingTokens(t *testing.T) {
	// No candidate covers the series tokens, so the result is missing even
	// though one file is the only candidate.
	m := newTestMatcher("arda_guler_10.jpg")

	result := m.Match(card("Arda Güler", "Mythos Legends", "", 10, false))
	if result.Status != StatusMissing {
		t.Fatalf("status = %s, want missing", result.Status)
	}
	if result.Diagnostic == "" {
		t.Error("missing result carries no diagnostic")
	}
}

func TestMatchFuzzyTokens(t *testing.T) {
	// "gular" vs "guler": similarity 0.8, inside the length window.
	m := newTestMatcher("arda_gular_10.jpg")

	result := m.Match(card("Arda Güler", "", "", 10, false))
	if result.Status != StatusFound {
		t.Fatalf("fuzzy match failed: %+v", result)
	}

	// "gu" vs "guler" differs by 3 chars, outside the window.
	m = newTestMatcher("arda_gu_10.jpg")
	if got := m.Match(card("Arda Güler", "", "", 10, false)); got.Status != StatusMissing {
		t.Errorf("out-of-window token accepted: %+v", got)
	}
}

func TestMatchExtraTokenPenalty(t *testing.T) {
	m := newTestMatcher(
		"arda_guler_10.jpg",
		"arda_guler_madrid_edition_10.jpg",
	)

	result := m.Match(card("Arda Güler", "", "", 10, false))
	if result.Status != StatusFound {
		t.Fatalf("status = %s, want found", result.Status)
	}
	if result.MatchedFile != "arda_guler_10.jpg" {
		t.Errorf("matched %q, want the file without extra tokens", result.MatchedFile)
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100", result.Score)
	}
}

func TestMatchConflict(t *testing.T) {
	m := newTestMatcher(
		"20240101_arda_guler_10.jpg",
		"20240102_arda_guler_10.jpg",
	)

	result := m.Match(card("Arda Güler", "", "", 10, false))
	if result.Status != StatusConflict {
		t.Fatalf("status = %s, want conflict", result.Status)
	}
	want := []string{"20240101_arda_guler_10.jpg", "20240102_arda_guler_10.jpg"}
	if !reflect.DeepEqual(result.ConflictFiles, want) {
		t.Errorf("conflict files = %v, want %v", result.ConflictFiles, want)
	}
	if result.MatchedFile != "" {
		t.Errorf("conflict picked a file: %q", result.MatchedFile)
	}
}

func TestMatchEmptyCard(t *testing.T) {
	m := newTestMatcher("arda_guler_10.jpg")
	if got := m.Match(checklist.Card{}); got.Status != StatusEmpty {
		t.Errorf("empty card got %+v", got)
	}
}

func TestMatchDeterministicOrder(t *testing.T) {
	forward := NewMatcher([]string{"a_name_10.jpg", "b_name_10.jpg"}, DefaultThresholds(), nil)
	reversed := NewMatcher([]string{"b_name_10.jpg", "a_name_10.jpg"}, DefaultThresholds(), nil)

	c := card("Name", "", "", 10, false)
	if !reflect.DeepEqual(forward.Match(c), reversed.Match(c)) {
		t.Error("results depend on input filename order")
	}
}
