package domain

import "time"

// Category is one of the fixed recipe categories.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryStarter   Category = "Starter"
	CategoryMain      Category = "Main"
	CategorySide      Category = "Side"
	CategorySoup      Category = "Soup"
	CategoryDessert   Category = "Dessert"
	CategoryDrink     Category = "Drink"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryBreakfast, CategoryStarter, CategoryMain, CategorySide,
	CategorySoup, CategoryDessert, CategoryDrink,
}

// Difficulty is one of the fixed difficulty levels.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "Basic"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyExpert       Difficulty = "Expert"
)

// Extraction methods recorded on a draft
const (
	MethodStructured = "structured"
	MethodHeuristic  = "heuristic"
)

// RawPage is the fetched page handed over by the fetch collaborator.
type RawPage struct {
	URL        string
	StatusCode int
	Body       []byte
}

// ParsedRecipe is a reviewable recipe draft. It is never persisted as-is:
// the caller turns an approved draft into a stored recipe with its own ID.
type ParsedRecipe struct {
	Name               string              `json:"name"`
	Description        string              `json:"description,omitempty"`
	Ingredients        []string            `json:"ingredients"`
	MatchedIngredients []MatchedIngredient `json:"matchedIngredients"`
	Instructions       []string            `json:"instructions"`
	PrepTime           *int                `json:"prepTime,omitempty"`  // minutes
	CookTime           *int                `json:"cookTime,omitempty"`  // minutes
	TotalTime          *int                `json:"totalTime,omitempty"` // minutes
	Servings           *int                `json:"servings,omitempty"`
	Difficulty         Difficulty          `json:"difficulty,omitempty"`
	Cuisine            string              `json:"cuisine,omitempty"`
	Category           Category            `json:"category,omitempty"`
	ImageURL           string              `json:"imageUrl,omitempty"`
	SourceURL          string              `json:"sourceUrl"`
	ExtractionMethod   string              `json:"extractionMethod"`
	Confidence         float64             `json:"confidence"` // 0-1
	Source             string              `json:"source"`     // "page" or "cache"
	ImportedAt         time.Time           `json:"importedAt"`
}

// MatchedIngredient pairs a raw ingredient line with at most one catalog name.
// Canonical is empty when no catalog entry matched; Name is what gets displayed.
type MatchedIngredient struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical,omitempty"`
	Name      string `json:"name"`
}

// Matched reports whether the line resolved to a catalog entry.
func (m MatchedIngredient) Matched() bool {
	return m.Canonical != ""
}
