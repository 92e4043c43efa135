package checklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mythoscards/internal/textnorm"
)

// SignedMarker is the header and display word marking an autographed variant.
const SignedMarker = "Signed"

// Canonical structural column names. Matching is performed on the
// normalized token form, so casing and accents in the source sheet
// do not matter.
const (
	ColumnSeries        = "Series Name"
	ColumnPlayer        = "Player Name"
	ColumnGroup         = "Group"
	ColumnGroupOptional = "Group (optional)"
	ColumnBase          = "Base"
)

// reservedColumns are the normalized names that can never be variants or
// custom labels.
var reservedColumns = map[string]struct{}{
	"series_name":    {},
	"player_name":    {},
	"group":          {},
	"group_optional": {},
	"base":           {},
}

// requiredColumns must all be present for a checklist to be processable.
var requiredColumns = []string{ColumnSeries, ColumnPlayer, ColumnBase}

var (
	oneOfOnePattern       = regexp.MustCompile(`^1/1$`)
	oneOfOneSignedPattern = regexp.MustCompile(`(?i)^1/1\s+` + SignedMarker + `$`)
	numberedPattern       = regexp.MustCompile(`^/(\d+)$`)
	numberedSignedPattern = regexp.MustCompile(`(?i)^/(\d+)\s+` + SignedMarker + `$`)
	namedSignedPattern    = regexp.MustCompile(`(?i)^(\p{L}[\p{L}\p{N} ]*?)\s+` + SignedMarker + `$`)
	namedPattern          = regexp.MustCompile(`^\p{L}[\p{L}\p{N} ]*$`)

	// missingSpacePattern repairs headers like "/5Signed" where the space
	// before the marker was dropped in the sheet.
	missingSpacePattern = regexp.MustCompile(`(?i)^(1/1|/\d+)\s*` + SignedMarker + `$`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// HeaderSet is the result of classifying a checklist's column headers.
type HeaderSet struct {
	Original     []string
	Normalized   []string
	Variants     map[string]VariantDescriptor
	CustomLabels []string
	Errors       []Issue
	Warnings     []Issue

	variantOrder []string
}

// ClassifyHeaders infers variant descriptors and custom labels from the raw
// header strings. Classification never aborts: unrecognizable headers fall
// back to their raw text and are reported as issues, so row expansion can
// still run on the remaining columns.
func ClassifyHeaders(headers []string) *HeaderSet {
	hs := &HeaderSet{
		Original:   append([]string(nil), headers...),
		Normalized: make([]string, 0, len(headers)),
		Variants:   make(map[string]VariantDescriptor, len(headers)),
	}

	for _, header := range headers {
		normalized := normalizeHeader(header)
		hs.Normalized = append(hs.Normalized, normalized)

		if descriptor, ok := detectVariant(normalized); ok {
			if _, dup := hs.Variants[normalized]; dup {
				// A second raw header collapsing to the same variant would
				// shadow the first column's cells during expansion.
				hs.Errors = append(hs.Errors, Issue{
					Column:   normalized,
					Type:     "Duplicate Column",
					Message:  fmt.Sprintf("column %s appears more than once", normalized),
					Blocking: true,
				})
				continue
			}
			hs.Variants[normalized] = descriptor
			hs.variantOrder = append(hs.variantOrder, normalized)
		}
	}

	hs.detectCustomLabels()
	hs.validateRequiredColumns()
	hs.validateVariantPairs()

	return hs
}

// normalizeHeader trims and collapses whitespace and repairs a missing space
// before the signed marker in numbered variant headers.
func normalizeHeader(header string) string {
	normalized := whitespaceRun.ReplaceAllString(strings.TrimSpace(header), " ")
	if m := missingSpacePattern.FindStringSubmatch(normalized); m != nil {
		normalized = m[1] + " " + SignedMarker
	}
	return normalized
}

// detectVariant applies the recognizer rules in priority order.
func detectVariant(header string) (VariantDescriptor, bool) {
	if oneOfOnePattern.MatchString(header) {
		return VariantDescriptor{
			ColumnName:  header,
			Denominator: Denominator{Number: 1},
			DisplayName: "1/1",
		}, true
	}
	if oneOfOneSignedPattern.MatchString(header) {
		return VariantDescriptor{
			ColumnName:  header,
			Denominator: Denominator{Number: 1},
			Signed:      true,
			DisplayName: "1/1 " + SignedMarker,
		}, true
	}
	if m := numberedPattern.FindStringSubmatch(header); m != nil {
		n, _ := strconv.Atoi(m[1])
		return VariantDescriptor{
			ColumnName:  header,
			Denominator: Denominator{Number: n},
			DisplayName: fmt.Sprintf("/%d", n),
		}, true
	}
	if m := numberedSignedPattern.FindStringSubmatch(header); m != nil {
		n, _ := strconv.Atoi(m[1])
		return VariantDescriptor{
			ColumnName:  header,
			Denominator: Denominator{Number: n},
			Signed:      true,
			DisplayName: fmt.Sprintf("/%d %s", n, SignedMarker),
		}, true
	}
	if m := namedSignedPattern.FindStringSubmatch(header); m != nil {
		label := strings.TrimSpace(m[1])
		if !isReserved(label) {
			return VariantDescriptor{
				ColumnName:  header,
				Denominator: Denominator{Label: label},
				Signed:      true,
				DisplayName: label + " " + SignedMarker,
			}, true
		}
	}
	if namedPattern.MatchString(header) && !isReserved(header) {
		return VariantDescriptor{
			ColumnName:  header,
			Denominator: Denominator{Label: header},
			DisplayName: header,
		}, true
	}
	return VariantDescriptor{}, false
}

func isReserved(name string) bool {
	_, ok := reservedColumns[textnorm.Normalize(name)]
	return ok
}

func (hs *HeaderSet) detectCustomLabels() {
	for _, header := range hs.Normalized {
		if header == "" || isReserved(header) {
			continue
		}
		if _, ok := hs.Variants[header]; ok {
			continue
		}
		hs.CustomLabels = append(hs.CustomLabels, header)
	}
}

func (hs *HeaderSet) validateRequiredColumns() {
	present := make(map[string]struct{}, len(hs.Normalized))
	for _, header := range hs.Normalized {
		present[textnorm.Normalize(header)] = struct{}{}
	}
	for _, required := range requiredColumns {
		if _, ok := present[textnorm.Normalize(required)]; !ok {
			hs.Errors = append(hs.Errors, Issue{
				Column:   required,
				Type:     "Missing Column",
				Message:  fmt.Sprintf("required column not found: %s", required),
				Blocking: true,
			})
		}
	}
}

// validateVariantPairs enforces the at-most-two rule per denominator: two
// descriptors must split into one signed and one unsigned, and a third is a
// classification error.
func (hs *HeaderSet) validateVariantPairs() {
	groups := make(map[string][]VariantDescriptor)
	var keys []string
	for _, column := range hs.variantOrder {
		descriptor := hs.Variants[column]
		key := descriptor.Denominator.Key()
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], descriptor)
	}

	for _, key := range keys {
		descriptors := groups[key]
		label := descriptors[0].Denominator.String()
		switch {
		case len(descriptors) > 2:
			hs.Errors = append(hs.Errors, Issue{
				Column:   label,
				Type:     "Duplicate Variant",
				Message:  fmt.Sprintf("more than two columns share denominator %s", label),
				Blocking: true,
			})
		case len(descriptors) == 2:
			signedCount := 0
			for _, d := range descriptors {
				if d.Signed {
					signedCount++
				}
			}
			if signedCount != 1 {
				hs.Warnings = append(hs.Warnings, Issue{
					Column:  label,
					Type:    "Variant Pair",
					Message: fmt.Sprintf("%s needs one signed and one unsigned column", label),
				})
			}
		}
	}
}

// VariantColumns returns the variant descriptors in header order.
func (hs *HeaderSet) VariantColumns() []VariantDescriptor {
	out := make([]VariantDescriptor, 0, len(hs.variantOrder))
	for _, column := range hs.variantOrder {
		out = append(out, hs.Variants[column])
	}
	return out
}

// ColumnIndex returns the position of a normalized column name, or -1.
func (hs *HeaderSet) ColumnIndex(name string) int {
	for i, header := range hs.Normalized {
		if header == name {
			return i
		}
	}
	return -1
}

// columnIndexByToken locates a column by its normalized token form.
func (hs *HeaderSet) columnIndexByToken(token string) int {
	for i, header := range hs.Normalized {
		if textnorm.Normalize(header) == token {
			return i
		}
	}
	return -1
}

// SeriesIndex returns the series-name column position, or -1.
func (hs *HeaderSet) SeriesIndex() int { return hs.columnIndexByToken("series_name") }

// PlayerIndex returns the player-name column position, or -1.
func (hs *HeaderSet) PlayerIndex() int { return hs.columnIndexByToken("player_name") }

// BaseIndex returns the Base column position, or -1.
func (hs *HeaderSet) BaseIndex() int { return hs.columnIndexByToken("base") }

// GroupIndex returns the optional group column position, or -1.
func (hs *HeaderSet) GroupIndex() int {
	if idx := hs.columnIndexByToken("group"); idx >= 0 {
		return idx
	}
	return hs.columnIndexByToken("group_optional")
}

// HasBlockingErrors reports whether any classification error blocks export.
func (hs *HeaderSet) HasBlockingErrors() bool {
	for _, issue := range hs.Errors {
		if issue.Blocking {
			return true
		}
	}
	return false
}
