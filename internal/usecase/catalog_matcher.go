package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/recipelift/backend/internal/domain"
	"github.com/recipelift/backend/internal/reference"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Matching limits
const (
	minFuzzyWordLength    = 3 // shorter words never match on their own
	minLevenshteinLength  = 5 // typo tolerance only applies to longer words
	minPartialEntryLength = 4 // partial containment ignores short entries like "ice"
)

// MatchConfig holds configuration for the catalog matcher
type MatchConfig struct {
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
	EnableDebugLogging  bool
}

// matchInput is one ingredient line prepared for the strategy cascade.
type matchInput struct {
	cleaned    string
	normalized string
	words      []string
}

// matchStrategy tries to resolve one line to a catalog entry.
type matchStrategy struct {
	name string
	fn   func(m *CatalogMatcher, in matchInput) (reference.CatalogEntry, bool)
}

// strategies run in order; the first success wins.
var strategies = []matchStrategy{
	{"multi-word", (*CatalogMatcher).matchMultiWord},
	{"exact", (*CatalogMatcher).matchExact},
	{"fuzzy", (*CatalogMatcher).matchFuzzyWord},
	{"partial", (*CatalogMatcher).matchPartial},
}

// CatalogMatcher maps ingredient lines onto the food catalog
type CatalogMatcher struct {
	normalizer          *IngredientNormalizer
	tables              *reference.Tables
	entries             []reference.CatalogEntry // longest first
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	enableDebugLogging  bool
	logger              *zap.Logger
}

// NewCatalogMatcher creates a new catalog matcher with the given configuration
func NewCatalogMatcher(tables *reference.Tables, normalizer *IngredientNormalizer, logger *zap.Logger, config MatchConfig) *CatalogMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1 // Default edit distance of 1
	}

	return &CatalogMatcher{
		normalizer:          normalizer,
		tables:              tables,
		entries:             tables.CatalogEntries(),
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
		enableDebugLogging:  config.EnableDebugLogging,
		logger:              logger,
	}
}

// Match resolves every line against the catalog, preserving input order.
// A catalog name is returned at most once per call: a later line resolving
// to the same entry is kept unmatched under a name no earlier line took.
// Lines that match nothing keep their normalized form so no ingredient is
// dropped.
func (m *CatalogMatcher) Match(lines []string) []domain.MatchedIngredient {
	used := make(map[string]bool)
	out := make([]domain.MatchedIngredient, 0, len(lines))

	for _, raw := range lines {
		cleaned := m.normalizer.Clean(raw)
		in := matchInput{
			cleaned:    cleaned,
			normalized: m.normalizer.Normalize(raw),
			words:      m.tokenize(cleaned),
		}

		result := domain.MatchedIngredient{Raw: raw, Name: in.normalized}
		if result.Name == "" {
			result.Name = strings.TrimSpace(raw)
		}

		for _, strategy := range strategies {
			entry, ok := strategy.fn(m, in)
			if !ok {
				continue
			}
			if used[entry.Lower] {
				// already matched by an earlier line
				m.debug("duplicate catalog match", raw, strategy.name, entry.Name)
				break
			}
			used[entry.Lower] = true
			result.Canonical = entry.Name
			result.Name = entry.Name
			m.debug("catalog match", raw, strategy.name, entry.Name)
			break
		}

		if !result.Matched() {
			if used[strings.ToLower(result.Name)] {
				result.Name = unusedName(cleaned, raw, used)
			}
			m.debug("no catalog match", raw, "", result.Name)
		}
		out = append(out, result)
	}

	return out
}

// unusedName picks a display name for an unmatched line whose normalized form
// collides with a catalog name already returned.
func unusedName(cleaned, raw string, used map[string]bool) string {
	if cleaned != "" && !used[cleaned] {
		return titleCase(cleaned)
	}
	return strings.TrimSpace(raw)
}

func (m *CatalogMatcher) debug(msg, line, strategy, name string) {
	if m.enableDebugLogging {
		m.logger.Debug(msg,
			zap.String("line", line),
			zap.String("strategy", strategy),
			zap.String("name", name))
	}
}

// matchMultiWord checks every adjacent content-word pair, equality before containment.
func (m *CatalogMatcher) matchMultiWord(in matchInput) (reference.CatalogEntry, bool) {
	if len(in.words) < 2 {
		return reference.CatalogEntry{}, false
	}
	pairs := make([]string, 0, len(in.words)-1)
	for i := 0; i+1 < len(in.words); i++ {
		pairs = append(pairs, in.words[i]+" "+in.words[i+1])
	}

	for _, pair := range pairs {
		for _, e := range m.entries {
			if e.Lower == pair {
				return e, true
			}
		}
	}
	for _, pair := range pairs {
		for _, e := range m.entries {
			if e.Words < 2 {
				continue
			}
			if containsPhrase(e.Lower, pair) || containsPhrase(pair, e.Lower) {
				return e, true
			}
		}
	}
	return reference.CatalogEntry{}, false
}

// matchExact accepts an entry equal to the cleaned or normalized line, or
// appearing in the cleaned line on word boundaries.
func (m *CatalogMatcher) matchExact(in matchInput) (reference.CatalogEntry, bool) {
	normalizedLower := strings.ToLower(in.normalized)
	for _, e := range m.entries {
		if e.Lower == in.cleaned || e.Lower == normalizedLower {
			return e, true
		}
	}
	for _, e := range m.entries {
		if containsPhrase(in.cleaned, e.Lower) {
			return e, true
		}
	}
	return reference.CatalogEntry{}, false
}

// matchFuzzyWord compares single content words: equal, then contained in an
// entry, then containing an entry, then (if enabled) within edit distance.
func (m *CatalogMatcher) matchFuzzyWord(in matchInput) (reference.CatalogEntry, bool) {
	var words []string
	for _, w := range in.words {
		if len(w) >= minFuzzyWordLength {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return reference.CatalogEntry{}, false
	}

	for _, w := range words {
		for _, e := range m.entries {
			if e.Lower == w {
				return e, true
			}
		}
	}
	// shortest entry holding the word is the closest one
	for _, w := range words {
		for i := len(m.entries) - 1; i >= 0; i-- {
			e := m.entries[i]
			if containsPhrase(e.Lower, w) {
				return e, true
			}
		}
	}
	for _, w := range words {
		for _, e := range m.entries {
			if len(e.Lower) >= minFuzzyWordLength && strings.Contains(w, e.Lower) {
				return e, true
			}
		}
	}

	if !m.enableFuzzyMatching {
		return reference.CatalogEntry{}, false
	}
	for _, w := range words {
		if len(w) < minLevenshteinLength {
			continue
		}
		for _, e := range m.entries {
			if e.Words == 1 && fuzzyTokenMatch(w, e.Lower, m.fuzzyEditDistance) {
				return e, true
			}
		}
	}
	return reference.CatalogEntry{}, false
}

// matchPartial accepts any entry longer than three characters found anywhere in the line.
func (m *CatalogMatcher) matchPartial(in matchInput) (reference.CatalogEntry, bool) {
	for _, e := range m.entries {
		if len(e.Lower) >= minPartialEntryLength && strings.Contains(in.cleaned, e.Lower) {
			return e, true
		}
	}
	return reference.CatalogEntry{}, false
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, and pure numeric tokens.
func (m *CatalogMatcher) tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		// Skip short tokens (1 char or less)
		if len(word) <= 1 {
			continue
		}
		if m.tables.IsStopWord(word) {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to tokens > 4 chars to avoid false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	// Quick length check - if lengths differ by more than threshold, can't match
	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
