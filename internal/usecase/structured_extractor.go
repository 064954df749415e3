package usecase

import (
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// defaultYield is used when recipeYield is absent, has no digits or is out
// of range. maxYield bounds what a page may claim.
const (
	defaultYield = 4
	maxYield     = 1000
)

// StructuredRecipe is a schema.org Recipe decoded from JSON-LD. Every
// polymorphic field has already been resolved to a concrete type.
type StructuredRecipe struct {
	Name         string
	Description  string
	Ingredients  []string
	Instructions []string
	PrepTime     *int // minutes
	CookTime     *int
	TotalTime    *int
	Categories   []string
	Cuisine      string
	Servings     int
	Difficulty   string
	ImageURL     string
}

// Usable reports whether the candidate carries enough to skip the heuristic pass.
func (r *StructuredRecipe) Usable() bool {
	return r != nil && r.Name != "" && (len(r.Ingredients) > 0 || len(r.Instructions) > 0)
}

// jsonLDRecipe mirrors the schema.org Recipe fields the importer reads.
type jsonLDRecipe struct {
	Type               stringOrList     `json:"@type"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	RecipeIngredient   stringOrList     `json:"recipeIngredient"`
	Ingredients        stringOrList     `json:"ingredients"`
	RecipeInstructions instructionSteps `json:"recipeInstructions"`
	PrepTime           string           `json:"prepTime"`
	CookTime           string           `json:"cookTime"`
	TotalTime          string           `json:"totalTime"`
	RecipeCategory     stringOrList     `json:"recipeCategory"`
	RecipeCuisine      stringOrList     `json:"recipeCuisine"`
	RecipeYield        yieldValue       `json:"recipeYield"`
	Difficulty         string           `json:"difficulty"`
	Image              imageValue       `json:"image"`
}

func (r *jsonLDRecipe) isRecipe() bool {
	for _, t := range r.Type {
		if strings.EqualFold(t, "Recipe") {
			return true
		}
	}
	return false
}

// stringOrList decodes a JSON string or an array of strings.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = stringOrList{single}
		return nil
	}
	if data[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(stringOrList, 0, len(items))
	for _, item := range items {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			out = append(out, str)
		}
	}
	*s = out
	return nil
}

// yieldValue decodes recipeYield given as a number, a string or a list of either.
type yieldValue struct {
	servings int
	set      bool
}

var leadingDigitsRegex = regexp.MustCompile(`\d+`)

func (y *yieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if m := leadingDigitsRegex.FindString(s); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n > 0 && n <= maxYield {
				y.servings, y.set = n, true
			}
		}
	case '[':
		var items []yieldValue
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			if item.set {
				*y = item
				break
			}
		}
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil
		}
		if f >= 1 && f <= maxYield {
			y.servings, y.set = int(f), true
		}
	}
	return nil
}

func (y yieldValue) orDefault() int {
	if y.set {
		return y.servings
	}
	return defaultYield
}

// instructionSteps decodes recipeInstructions as a newline-joined string,
// a list of strings, HowToStep objects or HowToSection groups.
type instructionSteps []string

func (s *instructionSteps) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var steps []string
	collectSteps(raw, &steps)
	*s = steps
	return nil
}

func collectSteps(v any, steps *[]string) {
	switch node := v.(type) {
	case string:
		for _, line := range strings.Split(node, "\n") {
			if line = cleanJSONText(line); line != "" {
				*steps = append(*steps, line)
			}
		}
	case []any:
		for _, item := range node {
			collectSteps(item, steps)
		}
	case map[string]any:
		if items, ok := node["itemListElement"]; ok {
			collectSteps(items, steps)
			return
		}
		if text, ok := node["text"].(string); ok {
			collectSteps(text, steps)
			return
		}
		if name, ok := node["name"].(string); ok {
			collectSteps(name, steps)
		}
	}
}

// imageValue decodes image given as a URL, a list, or an ImageObject.
type imageValue string

func (i *imageValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = imageValue(firstImageURL(raw))
	return nil
}

func firstImageURL(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		if len(img) > 0 {
			return firstImageURL(img[0])
		}
	case map[string]any:
		if u, ok := img["url"].(string); ok {
			return u
		}
	}
	return ""
}

// jsonLDGraph is the WordPress-style wrapper holding many nodes.
type jsonLDGraph struct {
	Graph []json.RawMessage `json:"@graph"`
}

// ExtractStructured locates every JSON-LD block in the page and returns the
// first Recipe that decodes, or nil. Decode failures only skip to the next
// strategy or block.
func ExtractStructured(page string) *StructuredRecipe {
	for _, block := range jsonLDBlocks(page) {
		if recipe := decodeJSONLDBlock([]byte(block)); recipe != nil {
			return recipe
		}
	}
	return nil
}

func jsonLDBlocks(page string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil
	}
	var blocks []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		typ := strings.TrimSpace(s.AttrOr("type", ""))
		if !strings.EqualFold(typ, "application/ld+json") {
			return
		}
		if body := strings.TrimSpace(s.Text()); body != "" {
			blocks = append(blocks, body)
		}
	})
	return blocks
}

func decodeJSONLDBlock(block []byte) *StructuredRecipe {
	// Single Recipe object
	var single jsonLDRecipe
	if err := json.Unmarshal(block, &single); err == nil && single.isRecipe() {
		if r := single.resolve(); r.Name != "" {
			return r
		}
	}

	// Array of objects: first with a non-empty name wins
	var list []json.RawMessage
	if err := json.Unmarshal(block, &list); err == nil {
		for _, item := range list {
			var candidate jsonLDRecipe
			if err := json.Unmarshal(item, &candidate); err != nil {
				continue
			}
			if candidate.isRecipe() && strings.TrimSpace(candidate.Name) != "" {
				return candidate.resolve()
			}
		}
	}

	// Object with a @graph list
	var graph jsonLDGraph
	if err := json.Unmarshal(block, &graph); err == nil {
		for _, node := range graph.Graph {
			var candidate jsonLDRecipe
			if err := json.Unmarshal(node, &candidate); err != nil {
				continue
			}
			if candidate.isRecipe() {
				if r := candidate.resolve(); r.Name != "" {
					return r
				}
			}
		}
	}

	return nil
}

func (r *jsonLDRecipe) resolve() *StructuredRecipe {
	ingredients := r.RecipeIngredient
	if len(ingredients) == 0 {
		ingredients = r.Ingredients
	}

	out := &StructuredRecipe{
		Name:         cleanJSONText(r.Name),
		Description:  cleanJSONText(r.Description),
		Ingredients:  dedupeLines(mapClean(ingredients)),
		Instructions: dedupeLines(r.RecipeInstructions),
		PrepTime:     ParseISODuration(r.PrepTime),
		CookTime:     ParseISODuration(r.CookTime),
		TotalTime:    ParseISODuration(r.TotalTime),
		Categories:   mapClean(r.RecipeCategory),
		Servings:     r.RecipeYield.orDefault(),
		Difficulty:   strings.TrimSpace(r.Difficulty),
		ImageURL:     strings.TrimSpace(string(r.Image)),
	}
	if cuisines := mapClean(r.RecipeCuisine); len(cuisines) > 0 {
		out.Cuisine = cuisines[0]
	}
	return out
}

func mapClean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = cleanJSONText(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanJSONText unescapes entities and strips markup embedded in JSON-LD strings.
func cleanJSONText(s string) string {
	s = html.UnescapeString(s)
	s = tagRegex.ReplaceAllString(s, " ")
	s = horizontalWSRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var isoDurationRegex = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration converts an ISO-8601 duration such as "PT1H30M" to minutes.
// Returns nil for empty, malformed or zero durations.
func ParseISODuration(s string) *int {
	s = strings.TrimSpace(s)
	m := isoDurationRegex.FindStringSubmatch(s)
	if m == nil || s == "P" || strings.EqualFold(s, "PT") {
		return nil
	}
	atoi := func(v string) int {
		n, _ := strconv.Atoi(v)
		return n
	}
	minutes := atoi(m[1])*24*60 + atoi(m[2])*60 + atoi(m[3])
	if m[4] != "" {
		if secs, err := strconv.ParseFloat(m[4], 64); err == nil {
			minutes += int(secs) / 60
		}
	}
	if minutes <= 0 {
		return nil
	}
	return &minutes
}
