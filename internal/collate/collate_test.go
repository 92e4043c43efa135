package collate

import (
	"testing"

	"mythoscards/internal/checklist"
)

func TestSortCardsTurkishOrder(t *testing.T) {
	s := New("tr")
	cards := []checklist.Card{
		{Player: "Çağlar Söyüncü", VariantType: "/5", Number: 1},
		{Player: "Cenk Tosun", VariantType: "/5", Number: 1},
		{Player: "Arda Güler", VariantType: "/5", Number: 1},
	}
	s.SortCards(cards)

	// Turkish collation puts Ç directly after C, never after Z.
	want := []string{"Arda Güler", "Cenk Tosun", "Çağlar Söyüncü"}
	for i, player := range want {
		if cards[i].Player != player {
			t.Errorf("position %d = %q, want %q", i, cards[i].Player, player)
		}
	}
}

func TestSortCardsBaseLast(t *testing.T) {
	s := New("tr")
	cards := []checklist.Card{
		{Player: "Arda Güler", VariantType: checklist.ColumnBase, Number: 1},
		{Player: "Arda Güler", VariantType: "/5", Number: 2},
		{Player: "Arda Güler", VariantType: "/5", Number: 1},
	}
	s.SortCards(cards)

	if cards[len(cards)-1].VariantType != checklist.ColumnBase {
		t.Errorf("base card not last: %+v", cards)
	}
	if cards[0].Number != 1 || cards[1].Number != 2 {
		t.Errorf("numbers not ascending within variant: %+v", cards[:2])
	}
}

func TestNewFallsBackOnBadLocale(t *testing.T) {
	s := New("not a locale")
	values := []string{"çilek", "ceviz"}
	s.SortStrings(values)
	if values[0] != "ceviz" {
		t.Errorf("fallback collator order = %v", values)
	}
}
