package imagematch

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"mythoscards/internal/textnorm"
)

// signedToken is the underscore-delimited marker for autographed images.
const signedToken = "_s_"

var (
	datePrefixPattern   = regexp.MustCompile(`^(\d{8})_`)
	baseSuffixPattern   = regexp.MustCompile(`_base(?:_(\d+))?$`)
	numberSuffixPattern = regexp.MustCompile(`_(\d+)$`)
)

// ParsedFilename is the structural decomposition of one image filename.
// It is computed once per file and never mutated afterwards.
type ParsedFilename struct {
	Name          string
	DatePrefix    string
	Denominator   int
	Signed        bool
	Base          bool
	ContentTokens []string
}

// ParseFilename decomposes a filename into its structural attributes. The
// grammar is applied to the lowercased name with the extension stripped:
// an optional 8-digit date prefix, the signed marker anywhere, then a
// trailing base marker or numeric denominator, in that priority order.
// Whatever remains is tokenized for content matching.
func ParseFilename(filename string) ParsedFilename {
	name := strings.ToLower(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	parsed := ParsedFilename{Name: filename}

	if m := datePrefixPattern.FindStringSubmatch(name); m != nil {
		parsed.DatePrefix = m[1]
		name = name[len(m[0]):]
	}

	// Wrapping in underscores lets a marker at the very start or end of the
	// name match the same delimited form as one in the middle.
	wrapped := "_" + name + "_"
	if strings.Contains(wrapped, signedToken) {
		parsed.Signed = true
		for strings.Contains(wrapped, signedToken) {
			wrapped = strings.ReplaceAll(wrapped, signedToken, "_")
		}
		name = strings.Trim(wrapped, "_")
	}

	if m := baseSuffixPattern.FindStringSubmatch(name); m != nil {
		parsed.Base = true
		if m[1] != "" {
			parsed.Denominator, _ = strconv.Atoi(m[1])
		}
		name = name[:len(name)-len(m[0])]
	} else if m := numberSuffixPattern.FindStringSubmatch(name); m != nil {
		parsed.Denominator, _ = strconv.Atoi(m[1])
		name = name[:len(name)-len(m[0])]
	}

	parsed.ContentTokens = textnorm.Tokens(name)
	return parsed
}

// ParseAll parses every filename into a map keyed by the original name.
func ParseAll(filenames []string) map[string]ParsedFilename {
	parsed := make(map[string]ParsedFilename, len(filenames))
	for _, name := range filenames {
		parsed[name] = ParseFilename(name)
	}
	return parsed
}
