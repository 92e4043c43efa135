package checklist

import (
	"fmt"
	"strconv"

	"mythoscards/internal/textnorm"
)

// Denominator is the print-run size of a variant. It is either numeric
// (Number > 0) or a named specialty label such as "Short Print".
type Denominator struct {
	Number int
	Label  string
}

// Numeric reports whether the denominator is a fixed numeric run size.
func (d Denominator) Numeric() bool { return d.Label == "" }

// Key returns the canonical grouping key used to pair signed/unsigned
// descriptors of the same denominator.
func (d Denominator) Key() string {
	if d.Numeric() {
		return strconv.Itoa(d.Number)
	}
	return textnorm.Normalize(d.Label)
}

func (d Denominator) String() string {
	if d.Numeric() {
		return fmt.Sprintf("/%d", d.Number)
	}
	return d.Label
}

// VariantDescriptor describes one checklist column that produces cards.
// Descriptors are created once per checklist load and never mutated.
type VariantDescriptor struct {
	ColumnName  string
	Denominator Denominator
	Signed      bool
	DisplayName string
}

// Issue is a structured error or warning tied to a checklist location.
// Row is the 1-based spreadsheet row (0 when not row-scoped).
type Issue struct {
	Row      int
	Column   string
	Type     string
	Message  string
	Blocking bool
}

// Card is one physical card to be produced.
//
// Number is the card's 1-based position within its run and is always within
// [1, Denominator]. For produced numeric variants Denominator is the
// column's own run size; the cell value only gates production.
type Card struct {
	Text        string
	Player      string
	Label       string
	VariantType string
	Denominator int
	Number      int
	Signed      bool
	Series      string
	Group       string
}
