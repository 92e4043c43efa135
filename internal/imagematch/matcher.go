package imagematch

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"mythoscards/internal/checklist"
	"mythoscards/internal/logging"
	"mythoscards/internal/textnorm"
)

// Thresholds are the tunable knobs of the scoring stage.
type Thresholds struct {
	// Similarity is the minimum edit-similarity for a fuzzy token match.
	Similarity float64
	// LengthWindow bounds the token length difference considered for fuzzy
	// comparison.
	LengthWindow int
	// BaseScore is the score of a candidate with no extra tokens.
	BaseScore int
	// ExtraPenalty is subtracted per extra file token.
	ExtraPenalty int
}

// DefaultThresholds returns the tuning the matcher ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{Similarity: 0.70, LengthWindow: 2, BaseScore: 100, ExtraPenalty: 15}
}

// Matcher resolves card records against a fixed pool of parsed filenames.
// The pool is parsed once at construction; Match is then a pure lookup and
// is safe for concurrent use.
type Matcher struct {
	files      []ParsedFilename
	thresholds Thresholds
	logger     *slog.Logger
}

// NewMatcher parses the candidate filenames and prepares a matcher over
// them. Filenames are held in sorted order so results are deterministic
// regardless of directory listing order.
func NewMatcher(filenames []string, thresholds Thresholds, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	sorted := append([]string(nil), filenames...)
	sort.Strings(sorted)

	files := make([]ParsedFilename, 0, len(sorted))
	for _, name := range sorted {
		files = append(files, ParseFilename(name))
	}
	return &Matcher{
		files:      files,
		thresholds: thresholds,
		logger:     logging.WithComponent(logger, "matcher"),
	}
}

// Match finds the image for one card record. Hard rules prune the pool,
// survivors are scored on content tokens, and the maximum-score set decides
// the status: a strict maximum is found, a tie is conflict, an empty set is
// missing. A card with no text at all is empty.
func (m *Matcher) Match(card checklist.Card) Result {
	cardTokens := cardTokens(card)
	if len(cardTokens) == 0 {
		return Result{Status: StatusEmpty, Diagnostic: "card record has no matchable text"}
	}

	wantBase := card.VariantType == checklist.ColumnBase

	type candidate struct {
		name  string
		score int
	}
	var survivors []candidate

	for _, file := range m.files {
		if file.Signed != card.Signed {
			continue
		}
		if file.Base != wantBase {
			continue
		}
		if !wantBase && card.Denominator > 0 && file.Denominator != card.Denominator {
			continue
		}

		score, ok := m.scoreTokens(cardTokens, file.ContentTokens)
		if !ok {
			continue
		}
		survivors = append(survivors, candidate{name: file.Name, score: score})
	}

	if len(survivors) == 0 {
		return Result{
			Status:     StatusMissing,
			Diagnostic: m.missingDiagnostic(card, wantBase, cardTokens),
		}
	}

	best := survivors[0].score
	for _, c := range survivors[1:] {
		if c.score > best {
			best = c.score
		}
	}
	var top []string
	for _, c := range survivors {
		if c.score == best {
			top = append(top, c.name)
		}
	}

	if len(top) > 1 {
		m.logger.Debug("score tie",
			logging.String("card", card.Text),
			logging.Int("score", best),
			logging.Int("files", len(top)))
		return Result{
			Status:        StatusConflict,
			ConflictFiles: top,
			Score:         best,
			Diagnostic:    fmt.Sprintf("%d files tied at score %d", len(top), best),
		}
	}
	return Result{Status: StatusFound, MatchedFile: top[0], Score: best}
}

// scoreTokens reports the candidate's score and whether every card token was
// accounted for. A single unmatched card token disqualifies the file.
func (m *Matcher) scoreTokens(cardTokens, fileTokens []string) (int, bool) {
	for _, token := range cardTokens {
		if !m.tokenMatched(token, fileTokens) {
			return 0, false
		}
	}
	extra := len(fileTokens) - len(cardTokens)
	if extra < 0 {
		extra = 0
	}
	return m.thresholds.BaseScore - extra*m.thresholds.ExtraPenalty, true
}

func (m *Matcher) tokenMatched(token string, fileTokens []string) bool {
	for _, ft := range fileTokens {
		if ft == token {
			return true
		}
	}
	best := 0.0
	for _, ft := range fileTokens {
		diff := len(ft) - len(token)
		if diff < 0 {
			diff = -diff
		}
		if diff > m.thresholds.LengthWindow {
			continue
		}
		if s := textnorm.Similarity(token, ft); s > best {
			best = s
		}
	}
	return best >= m.thresholds.Similarity
}

func (m *Matcher) missingDiagnostic(card checklist.Card, wantBase bool, tokens []string) string {
	var criteria []string
	if wantBase {
		criteria = append(criteria, "base image")
	} else if card.Denominator > 0 {
		criteria = append(criteria, fmt.Sprintf("denominator %d", card.Denominator))
	}
	if card.Signed {
		criteria = append(criteria, "signed")
	} else {
		criteria = append(criteria, "unsigned")
	}
	criteria = append(criteria, "tokens: "+strings.Join(tokens, ", "))
	return "no file matched " + strings.Join(criteria, "; ")
}

// cardTokens collects the normalized comparison tokens of a card record
// from its player, series, and group text.
func cardTokens(card checklist.Card) []string {
	var tokens []string
	tokens = append(tokens, textnorm.Tokens(card.Player)...)
	tokens = append(tokens, textnorm.Tokens(card.Series)...)
	tokens = append(tokens, textnorm.Tokens(card.Group)...)
	return tokens
}
