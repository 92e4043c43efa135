package textnorm

import "strings"

// asciiFold maps locale-specific letters to their closest ASCII equivalent.
// The table is Turkish-focused because that is where checklist names come
// from, with common western European accents included so imported player
// names normalize the same way.
var asciiFold = map[rune]rune{
	'ç': 'c', 'Ç': 'c',
	'ğ': 'g', 'Ğ': 'g',
	'ı': 'i', 'I': 'i',
	'i': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ş': 's', 'Ş': 's',
	'ü': 'u', 'Ü': 'u',
	'â': 'a', 'Â': 'a',
	'î': 'i', 'Î': 'i',
	'û': 'u', 'Û': 'u',
	'á': 'a', 'Á': 'a',
	'à': 'a', 'À': 'a',
	'ä': 'a', 'Ä': 'a',
	'é': 'e', 'É': 'e',
	'è': 'e', 'È': 'e',
	'ê': 'e', 'Ê': 'e',
	'ë': 'e', 'Ë': 'e',
	'í': 'i', 'Í': 'i',
	'ï': 'i', 'Ï': 'i',
	'ó': 'o', 'Ó': 'o',
	'ô': 'o', 'Ô': 'o',
	'ñ': 'n', 'Ñ': 'n',
	'ú': 'u', 'Ú': 'u',
	'ù': 'u', 'Ù': 'u',
}

// MinTokenLength is the shortest token that participates in content matching.
const MinTokenLength = 2

// Normalize converts arbitrary text to its canonical underscore-token form:
// accented letters are folded to ASCII, the result is lowercased, spaces and
// hyphens become underscores, every other non [a-z0-9_] character is dropped,
// underscore runs collapse to one, and leading/trailing underscores are
// trimmed. The function is pure and total; any input (including "") yields a
// defined, possibly empty, output. Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastUnderscore := false
	for _, r := range text {
		if folded, ok := asciiFold[r]; ok {
			r = folded
		}
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case r == ' ' || r == '-':
			r = '_'
		}
		if r == '_' {
			if lastUnderscore || b.Len() == 0 {
				continue
			}
			lastUnderscore = true
			b.WriteRune(r)
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			lastUnderscore = false
			b.WriteRune(r)
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}

// Tokens normalizes text and splits it into underscore-delimited tokens,
// discarding tokens shorter than MinTokenLength.
func Tokens(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(normalized, "_") {
		if len(part) < MinTokenLength {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}
