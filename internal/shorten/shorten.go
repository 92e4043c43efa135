// Package shorten trims over-long image filenames down to a length limit
// while preserving every structural part the matcher depends on: the date
// prefix, the signed marker, the denominator or base suffix, and the
// extension. Only the content words in between are cut, from the end and
// on word boundaries.
package shorten

import (
	"regexp"
	"strings"
)

// DefaultMaxLength is the filename length limit applied when none is
// configured.
const DefaultMaxLength = 97

// minContentLength is the smallest content budget worth shortening into;
// below it the name is returned unchanged.
const minContentLength = 3

var (
	extensionPattern  = regexp.MustCompile(`(?i)(\.(?:jpg|jpeg|png))$`)
	datePrefixPattern = regexp.MustCompile(`^\d{8}_`)
	suffixPattern     = regexp.MustCompile(`(_s)?_(\d+|base)$`)
)

// Item is one filename's shortening outcome.
type Item struct {
	Row      int
	Original string
	New      string
	Needed   bool
}

// Name shortens a filename to at most maxLength characters. Names already
// within the limit, names without a recognizable denominator or base
// suffix, and names whose fixed parts leave no room for content are
// returned unchanged; the boolean reports whether the name was altered.
func Name(filename string, maxLength int) (string, bool) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if len(filename) <= maxLength {
		return filename, false
	}

	name := filename
	extension := ""
	if m := extensionPattern.FindString(name); m != "" {
		extension = strings.ToLower(m)
		name = name[:len(name)-len(m)]
	}

	datePrefix := ""
	if m := datePrefixPattern.FindString(name); m != "" {
		datePrefix = m
		name = name[len(m):]
	}

	// Without a trailing suffix there is no safe cut point, so leave the
	// name alone rather than risk mangling a denominator.
	suffix := suffixPattern.FindString(name)
	if suffix == "" {
		return filename, false
	}
	content := name[:len(name)-len(suffix)]

	available := maxLength - len(datePrefix) - len(suffix) - len(extension)
	if available < minContentLength {
		return filename, false
	}
	if len(content) <= available {
		return filename, false
	}

	words := strings.Split(content, "_")
	shortened := content
	for len(shortened) > available && len(words) > 1 {
		words = words[:len(words)-1]
		shortened = strings.Join(words, "_")
	}
	if len(shortened) > available {
		shortened = strings.TrimRight(shortened[:available], "_")
	}

	result := datePrefix + shortened + suffix + extension
	return result, result != filename
}

// Plan computes the shortening outcome for a set of spreadsheet rows. Rows
// are (row number, filename) pairs; blank names and conflict placeholders
// are skipped by the caller before this point.
func Plan(names map[int]string, maxLength int) []Item {
	items := make([]Item, 0, len(names))
	for row, original := range names {
		shortened, needed := Name(original, maxLength)
		items = append(items, Item{Row: row, Original: original, New: shortened, Needed: needed})
	}
	return items
}
