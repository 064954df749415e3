package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/recipelift/backend/internal/reference"
)

// Line length bounds for classification
const (
	minIngredientLen   = 3
	maxIngredientLen   = 200
	minInstructionLen  = 10
	maxInstructionLen  = 500
	maxHeaderLen       = 50
	maxNameLen         = 100
	minDescriptionLen  = 30
	maxDescriptionLen  = 300
	maxDescriptionRows = 3
	sectionCloseRun    = 3
	maxPlainNameWords  = 4
)

// Compiled patterns for heuristic extraction
var (
	titleSuffixRegex = regexp.MustCompile(`\s+[|\-–—]\s+|\|`)

	// Bullets, "1." / "2)" numbering and "Step 3:" prefixes
	listPrefixRegex = regexp.MustCompile(`(?i)^(?:[-•*·▪◦–—]+\s*|step\s*\d+\s*[:.)\-]?\s*|\d+\s*[.)]\s+)`)

	// "2 cups", "1/2 tsp", "½ onion"
	leadingNumberRegex = regexp.MustCompile(`^[\d½¼¾⅓⅔⅛]`)

	digitRegex = regexp.MustCompile(`\d`)
	wordRegex  = regexp.MustCompile(`[a-zà-ÿ]+`)

	plainNameRegex = regexp.MustCompile(`^\pL[\pL'&\- ]*$`)

	prepTimeRegex  = regexp.MustCompile(`(?i)\bprep(?:aration)?(?:\s+time\s*:?|\s*:)\s*` + durationPattern)
	cookTimeRegex  = regexp.MustCompile(`(?i)\b(?:cook(?:ing)?|bak(?:e|ing))(?:\s+time\s*:?|\s*:)\s*` + durationPattern)
	totalTimeRegex = regexp.MustCompile(`(?i)\btotal(?:\s+time\s*:?|\s*:)\s*` + durationPattern)

	servingsRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bserves\s*:?\s*(?:about\s+)?(\d+)`),
		regexp.MustCompile(`(?i)\bservings\s*:?\s*(\d+)`),
		regexp.MustCompile(`(?i)\byields?\s*:?\s*(\d+)\s*servings`),
		regexp.MustCompile(`(?i)\bmakes\s*:?\s*(?:about\s+)?(\d+)\s*servings`),
	}

	difficultyRegex = regexp.MustCompile(`(?i)\b(?:difficulty|level)\s*:\s*(easy|medium|moderate|hard|difficult|beginner|intermediate|advanced)\b`)
)

// durationPattern captures "1 hour 30 minutes", "45 mins", "2 hrs".
const durationPattern = `(\d+)\s*(hours?|hrs?|h|minutes?|mins?|m)\b(?:\s*(?:and\s+)?(\d+)\s*(?:minutes?|mins?|m)\b)?`

var instructionCloseMarkers = []string{"notes", "nutrition", "calories:", "did you make"}

// HeuristicRecipe holds whatever the line-based pass could recover.
// Every field is optional at this layer.
type HeuristicRecipe struct {
	Name         string
	Description  string
	Ingredients  []string
	Instructions []string
	PrepTime     *int
	CookTime     *int
	TotalTime    *int
	Servings     *int
	Difficulty   string
}

// HeuristicExtractor recovers recipe fields from cleaned page text when no
// structured data is available.
type HeuristicExtractor struct {
	tables     *reference.Tables
	normalizer *IngredientNormalizer
	logger     *zap.Logger
}

// NewHeuristicExtractor creates a heuristic extractor
func NewHeuristicExtractor(tables *reference.Tables, normalizer *IngredientNormalizer, logger *zap.Logger) *HeuristicExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeuristicExtractor{tables: tables, normalizer: normalizer, logger: logger}
}

// Extract runs every field extraction independently. page is the raw HTML,
// used only for <title> and <h1>; text is the normalized page text.
func (e *HeuristicExtractor) Extract(page, text string) HeuristicRecipe {
	rows := strings.Split(text, "\n")
	lines := SplitLines(text)

	var result HeuristicRecipe

	// Step 1: Name
	result.Name = e.extractName(page, lines)

	// Step 2: Sections
	result.Ingredients, result.Instructions = e.extractSections(rows)

	// Step 3: Description sits between the name and the first ingredient
	result.Description = e.extractDescription(lines, result.Name)

	// Step 4: Scalar fields from the whole text
	result.PrepTime = matchDuration(prepTimeRegex, text)
	result.CookTime = matchDuration(cookTimeRegex, text)
	result.TotalTime = matchDuration(totalTimeRegex, text)
	result.Servings = matchServings(text)
	result.Difficulty = matchDifficulty(text)

	e.logger.Debug("heuristic extraction",
		zap.String("name", result.Name),
		zap.Int("ingredients", len(result.Ingredients)),
		zap.Int("instructions", len(result.Instructions)))

	return result
}

func (e *HeuristicExtractor) extractName(page string, lines []string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(page)); err == nil {
		title := strings.TrimSpace(doc.Find("title").First().Text())
		if title != "" {
			if name := strings.TrimSpace(titleSuffixRegex.Split(title, 2)[0]); name != "" {
				return cleanJSONText(name)
			}
		}
		if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
			return cleanJSONText(h1)
		}
	}

	for _, line := range lines {
		if len(line) < maxNameLen && !isIngredientHeader(line) && !isInstructionHeader(line) {
			return line
		}
	}
	return ""
}

func (e *HeuristicExtractor) extractDescription(lines []string, name string) string {
	start := 0
	if name != "" {
		lowerName := strings.ToLower(name)
		for i, line := range lines {
			if strings.Contains(strings.ToLower(line), lowerName) {
				start = i + 1
				break
			}
		}
	}

	var parts []string
	for _, line := range lines[start:] {
		if isIngredientHeader(line) || e.IsIngredientLine(line) {
			break
		}
		if strings.EqualFold(line, name) || listPrefixRegex.MatchString(line) {
			continue
		}
		if len(line) >= minDescriptionLen && len(line) <= maxDescriptionLen {
			parts = append(parts, line)
			if len(parts) == maxDescriptionRows {
				break
			}
		}
	}
	return strings.Join(parts, " ")
}

type section int

const (
	sectionNone section = iota
	sectionIngredients
	sectionInstructions
)

// extractSections walks the text with header-scoped sections. Without any
// header it falls back to classifying every line globally.
func (e *HeuristicExtractor) extractSections(rows []string) (ingredients, instructions []string) {
	hasHeaders := false
	for _, row := range rows {
		if isIngredientHeader(row) || isInstructionHeader(row) {
			hasHeaders = true
			break
		}
	}

	if hasHeaders {
		ingredients, instructions = e.scanSections(rows)
	}
	if len(ingredients) == 0 || len(instructions) == 0 {
		globalIngredients, globalInstructions := e.scanGlobal(rows)
		if len(ingredients) == 0 {
			ingredients = globalIngredients
		}
		if len(instructions) == 0 {
			instructions = globalInstructions
		}
	}
	return dedupeLines(ingredients), dedupeLines(instructions)
}

func (e *HeuristicExtractor) scanSections(rows []string) (ingredients, instructions []string) {
	current := sectionNone
	blankRun := 0
	found := 0

	open := func(s section) {
		current, blankRun, found = s, 0, 0
	}

	for _, row := range rows {
		line := strings.TrimSpace(row)

		if isIngredientHeader(line) {
			open(sectionIngredients)
			continue
		}
		if isInstructionHeader(line) {
			open(sectionInstructions)
			continue
		}

		switch current {
		case sectionIngredients:
			if found > 0 && containsInstructionKeyword(line) {
				open(sectionNone)
				continue
			}
			cleaned := cleanListPrefix(line)
			if cleaned != "" && (e.IsIngredientLine(cleaned) || isPlainItemName(cleaned)) {
				ingredients = append(ingredients, cleaned)
				found++
				blankRun = 0
				continue
			}
		case sectionInstructions:
			if containsAny(strings.ToLower(line), instructionCloseMarkers) {
				open(sectionNone)
				continue
			}
			cleaned := cleanListPrefix(line)
			stepPrefixed := cleaned != line && len(cleaned) >= minInstructionLen && len(cleaned) < maxInstructionLen
			if cleaned != "" && (e.IsInstructionLine(cleaned) || stepPrefixed) {
				instructions = append(instructions, cleaned)
				found++
				blankRun = 0
				continue
			}
		default:
			continue
		}

		// empty or unclassified row
		blankRun++
		if found > 0 && blankRun >= sectionCloseRun {
			open(sectionNone)
		}
	}
	return ingredients, instructions
}

// scanGlobal classifies lines with no section context. Ingredient lines must
// open with a quantity or carry a unit word here, since prose often has digits.
func (e *HeuristicExtractor) scanGlobal(rows []string) (ingredients, instructions []string) {
	for _, row := range rows {
		line := cleanListPrefix(strings.TrimSpace(row))
		if line == "" {
			continue
		}
		strictIngredient := e.IsIngredientLine(line) &&
			(leadingNumberRegex.MatchString(line) || e.hasUnitIndicator(line))

		switch {
		case strictIngredient && leadingNumberRegex.MatchString(line):
			ingredients = append(ingredients, line)
		case e.IsInstructionLine(line):
			instructions = append(instructions, line)
		case strictIngredient:
			ingredients = append(ingredients, line)
		}
	}
	return ingredients, instructions
}

// IsIngredientLine reports whether a line looks like an ingredient.
func (e *HeuristicExtractor) IsIngredientLine(line string) bool {
	if len(line) < minIngredientLen || len(line) >= maxIngredientLen {
		return false
	}
	if e.hasUnitIndicator(line) {
		return true
	}
	// normalization changed more than case and edge punctuation
	plain := strings.ToLower(multiSpacePattern.ReplaceAllString(strings.TrimSpace(line), " "))
	plain = strings.TrimSpace(edgePunctuationPattern.ReplaceAllString(plain, ""))
	if e.normalizer.Normalize(line) != titleCase(plain) {
		return true
	}
	return digitRegex.MatchString(line)
}

// IsInstructionLine reports whether a line looks like a cooking step.
func (e *HeuristicExtractor) IsInstructionLine(line string) bool {
	if len(line) < minInstructionLen || len(line) >= maxInstructionLen {
		return false
	}
	for _, word := range wordRegex.FindAllString(strings.ToLower(line), -1) {
		if e.tables.IsActionVerb(word) {
			return true
		}
	}
	return false
}

func (e *HeuristicExtractor) hasUnitIndicator(line string) bool {
	for _, word := range wordRegex.FindAllString(strings.ToLower(line), -1) {
		if e.tables.IsUnitIndicator(word) {
			return true
		}
	}
	return false
}

func isIngredientHeader(line string) bool {
	return len(line) < maxHeaderLen && strings.Contains(strings.ToLower(line), "ingredient")
}

func isInstructionHeader(line string) bool {
	return len(line) < maxHeaderLen && containsInstructionKeyword(line)
}

// isPlainItemName accepts short bare names such as "Olive oil" that a list
// under an ingredient header carries without a quantity.
func isPlainItemName(line string) bool {
	if len(line) < minIngredientLen || !plainNameRegex.MatchString(line) {
		return false
	}
	if len(strings.Fields(line)) > maxPlainNameWords {
		return false
	}
	return !containsAny(strings.ToLower(line), instructionCloseMarkers)
}

func containsInstructionKeyword(line string) bool {
	return containsAny(strings.ToLower(line), []string{"instruction", "method", "direction"})
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// cleanListPrefix strips a bullet, numbering or "Step N:" prefix.
func cleanListPrefix(line string) string {
	for {
		stripped := strings.TrimSpace(listPrefixRegex.ReplaceAllString(line, ""))
		if stripped == line {
			return line
		}
		line = stripped
	}
}

// dedupeLines trims lines and drops empty and case-insensitive repeats,
// keeping the first occurrence.
func dedupeLines(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return out
}

func matchDuration(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	minutes := n
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		minutes = n * 60
		if m[3] != "" {
			extra, _ := strconv.Atoi(m[3])
			minutes += extra
		}
	}
	if minutes <= 0 {
		return nil
	}
	return &minutes
}

func matchServings(text string) *int {
	for _, re := range servingsRegexes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return &n
		}
	}
	return nil
}

func matchDifficulty(text string) string {
	m := difficultyRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return titleCase(strings.ToLower(m[1]))
}
