package usecase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/recipelift/backend/internal/reference"
)

// Compiled regex patterns for ingredient normalization
var (
	// Parenthetical asides like "(about 2 cups)" or "(optional)"
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

	// Leading quantity run: "2", "1 1/2", "1.5", "2-3", "1/2"
	leadingQuantityPattern = regexp.MustCompile(`^(?:[\d½¼¾⅓⅔⅛]+(?:[./-]\d+)?\s*)+`)

	// Quantities glued to a unit, e.g. "200g", "12oz", "500ml"
	gluedUnitPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:g|kg|ml|l|oz|lbs?)\b`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)

	// Punctuation left dangling at either end once words are stripped
	edgePunctuationPattern = regexp.MustCompile(`^[\s,.;:\-]+|[\s,.;:\-]+$`)
)

// IngredientNormalizer canonicalizes raw ingredient phrases.
type IngredientNormalizer struct {
	tables             *reference.Tables
	measurementPattern *regexp.Regexp
	aliasKeys          []string
	logger             *zap.Logger
	enableDebugLogging bool
}

// NewIngredientNormalizer creates a normalizer over the shared reference tables
func NewIngredientNormalizer(tables *reference.Tables, logger *zap.Logger, enableDebugLogging bool) *IngredientNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	terms := tables.MeasurementTerms()
	// longest first so "cups" is tried before "cup"
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}

	return &IngredientNormalizer{
		tables:             tables,
		measurementPattern: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
		aliasKeys:          tables.AliasKeys(),
		logger:             logger,
		enableDebugLogging: enableDebugLogging,
	}
}

// Clean lowercases the line and strips quantities, units, asides and noise.
// The result is what alias lookup and catalog matching work on.
func (n *IngredientNormalizer) Clean(line string) string {
	cleaned := strings.ToLower(strings.TrimSpace(line))

	// Step 1: Remove parenthetical asides
	cleaned = parentheticalPattern.ReplaceAllString(cleaned, " ")

	// Step 2: Remove quantities glued to units ("200g")
	cleaned = gluedUnitPattern.ReplaceAllString(cleaned, " ")

	// Step 3: Remove measurement and quantity vocabulary
	cleaned = n.measurementPattern.ReplaceAllString(cleaned, " ")

	// Step 4: Remove the leading digit/fraction run
	cleaned = strings.TrimSpace(cleaned)
	cleaned = leadingQuantityPattern.ReplaceAllString(cleaned, "")

	// Step 5: Normalize whitespace and dangling punctuation
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = edgePunctuationPattern.ReplaceAllString(cleaned, "")

	return strings.TrimSpace(cleaned)
}

// Normalize returns the canonical display name for a raw ingredient line.
// Exact alias first, then the longest alias contained in the line, then the
// cleaned text title-cased.
func (n *IngredientNormalizer) Normalize(line string) string {
	cleaned := n.Clean(line)
	if cleaned == "" {
		return ""
	}

	if canonical, ok := n.tables.Alias(cleaned); ok {
		n.debug("exact alias", line, canonical)
		return canonical
	}

	for _, key := range n.aliasKeys {
		if containsPhrase(cleaned, key) {
			canonical, _ := n.tables.Alias(key)
			n.debug("contained alias", line, canonical)
			return canonical
		}
	}

	result := titleCase(cleaned)
	n.debug("no alias", line, result)
	return result
}

// NormalizeAll applies Normalize element-wise, keeping order and duplicates.
func (n *IngredientNormalizer) NormalizeAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = n.Normalize(line)
	}
	return out
}

func (n *IngredientNormalizer) debug(rule, input, output string) {
	if n.enableDebugLogging {
		n.logger.Debug("normalized ingredient",
			zap.String("rule", rule),
			zap.String("input", input),
			zap.String("output", output))
	}
}

// titleCase capitalizes every word. A Caser is stateful, so one is made per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// containsPhrase reports whether phrase occurs in s on word boundaries.
func containsPhrase(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; start < len(s); {
		idx := strings.Index(s[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if isBoundary(s, idx-1) && isBoundary(s, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r)) && s[i] < 0x80
}
