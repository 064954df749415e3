package usecase

import (
	"strings"

	"github.com/recipelift/backend/internal/domain"
	"github.com/recipelift/backend/internal/reference"
)

// Classification thresholds
const (
	minSignalScore     = 4 // ingredient evidence needed to pick a category
	bakingComboBonus   = 2 // flour, sugar and butter together
	expertScore        = 5
	intermediateScore  = 2
	manyTechniquesHits = 3
)

var bakingCombo = []string{"flour", "sugar", "butter"}

// Classifier assigns a category and a difficulty from reference keyword tables.
type Classifier struct {
	tables *reference.Tables
}

// NewClassifier creates a classifier over the shared reference tables
func NewClassifier(tables *reference.Tables) *Classifier {
	return &Classifier{tables: tables}
}

// ClassifyCategory picks one of the fixed categories. Schema categories are
// tried first, then name keywords, ingredient evidence and cuisine family.
// Main is the fallback.
func (c *Classifier) ClassifyCategory(schemaCategories []string, name string, ingredients []string, cuisine string) domain.Category {
	// Step 1: explicit category from structured data
	for _, sc := range schemaCategories {
		if cat, ok := c.tables.CategoryAlias(sc); ok {
			return cat
		}
	}

	// Step 2: name keywords in priority order
	lowerName := strings.ToLower(name)
	for _, set := range c.tables.NameKeywords() {
		for _, kw := range set.Keywords {
			if containsWordPrefix(lowerName, kw) {
				return set.Category
			}
		}
	}

	// Step 3: ingredient evidence
	if cat, ok := c.scoreIngredients(ingredients); ok {
		return cat
	}

	// Step 4: cuisine family
	if cat, ok := c.tables.CuisineCategory(cuisine); ok {
		return cat
	}

	return domain.CategoryMain
}

// scoreIngredients sums keyword weights per category. The best score wins if
// it reaches the threshold; ties go to the earlier category.
func (c *Classifier) scoreIngredients(ingredients []string) (domain.Category, bool) {
	if len(ingredients) == 0 {
		return "", false
	}

	lines := make([]string, len(ingredients))
	for i, line := range ingredients {
		lines[i] = strings.ToLower(line)
	}

	var best domain.Category
	bestScore := 0
	for _, signal := range c.tables.IngredientSignals() {
		score := 0
		for kw, weight := range signal.Weights {
			for _, line := range lines {
				if containsWord(line, kw) {
					score += weight
				}
			}
		}
		if signal.Category == domain.CategoryDessert && containsAll(lines, bakingCombo) {
			score += bakingComboBonus
		}
		if score > bestScore {
			best, bestScore = signal.Category, score
		}
	}

	if bestScore < minSignalScore {
		return "", false
	}
	return best, true
}

// EstimateDifficulty scores recipe size and technique. Five or more points
// is Expert, two or more Intermediate.
func (c *Classifier) EstimateDifficulty(ingredientCount, instructionCount int, instructionsText string) domain.Difficulty {
	score := 0

	switch {
	case ingredientCount > 15:
		score += 2
	case ingredientCount > 10:
		score++
	}

	switch {
	case instructionCount > 10:
		score += 2
	case instructionCount > 6:
		score++
	}

	text := strings.ToLower(instructionsText)
	hits := 0
	for _, technique := range c.tables.AdvancedTechniques() {
		if containsWordPrefix(text, technique) {
			hits++
		}
	}
	switch {
	case hits >= manyTechniquesHits:
		score += 3
	case hits >= 1:
		score++
	}

	switch {
	case strings.Contains(text, "overnight") || strings.Contains(text, "24 hour"):
		score += 2
	case containsWordPrefix(text, "rest") || containsWordPrefix(text, "chill"):
		score++
	}

	switch {
	case score >= expertScore:
		return domain.DifficultyExpert
	case score >= intermediateScore:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyBasic
	}
}

// ParseDifficulty maps an explicit difficulty word to a level.
func ParseDifficulty(word string) (domain.Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "easy", "beginner", "basic", "simple":
		return domain.DifficultyBasic, true
	case "medium", "moderate", "intermediate":
		return domain.DifficultyIntermediate, true
	case "hard", "difficult", "advanced", "expert":
		return domain.DifficultyExpert, true
	}
	return "", false
}

// containsWordPrefix reports whether kw occurs in s starting at a word
// boundary, so "cookie" matches "cookies" but "tea" does not match "steak".
func containsWordPrefix(s, kw string) bool {
	if kw == "" {
		return false
	}
	for start := 0; start < len(s); {
		idx := strings.Index(s[start:], kw)
		if idx < 0 {
			return false
		}
		idx += start
		if isBoundary(s, idx-1) {
			return true
		}
		start = idx + 1
	}
	return false
}

// containsWord reports whether kw occurs in s as a whole word, allowing a
// plural "s" or "es". "egg" matches "eggs" but not "eggplant".
func containsWord(s, kw string) bool {
	if kw == "" {
		return false
	}
	for start := 0; start < len(s); {
		idx := strings.Index(s[start:], kw)
		if idx < 0 {
			return false
		}
		idx += start
		if isBoundary(s, idx-1) {
			end := idx + len(kw)
			for _, suffix := range []string{"", "s", "es"} {
				if strings.HasPrefix(s[end:], suffix) && isBoundary(s, end+len(suffix)) {
					return true
				}
			}
		}
		start = idx + 1
	}
	return false
}

func containsAll(lines []string, words []string) bool {
	for _, w := range words {
		found := false
		for _, line := range lines {
			if containsWord(line, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
