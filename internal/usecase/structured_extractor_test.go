package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLDPage(blocks ...string) string {
	page := "<html><head><title>Recipe</title>"
	for _, b := range blocks {
		page += `<script type="application/ld+json">` + b + "</script>"
	}
	return page + "</head><body></body></html>"
}

func TestExtractStructured(t *testing.T) {
	t.Run("decodes a single recipe object", func(t *testing.T) {
		page := jsonLDPage(`{"@type":"Recipe","name":"Test Soup","recipeIngredient":["2 cups broth","1 carrot"],"recipeInstructions":"Boil broth.\nAdd carrot."}`)

		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, "Test Soup", r.Name)
		assert.Equal(t, []string{"2 cups broth", "1 carrot"}, r.Ingredients)
		assert.Equal(t, []string{"Boil broth.", "Add carrot."}, r.Instructions)
		assert.Equal(t, defaultYield, r.Servings)
		assert.True(t, r.Usable())
	})

	t.Run("finds the recipe inside a graph", func(t *testing.T) {
		page := jsonLDPage(`{
			"@context": "https://schema.org",
			"@graph": [
				{"@type": "WebSite", "name": "Cooking Site"},
				{
					"@type": ["Recipe"],
					"name": "Lemon Tart",
					"description": "Sharp &amp; sweet.",
					"recipeIngredient": ["1 cup flour", "2 lemons", "1 cup flour"],
					"recipeInstructions": [
						{"@type": "HowToStep", "text": "Make the crust."},
						{"@type": "HowToStep", "text": "Fill and bake."}
					],
					"prepTime": "PT15M",
					"cookTime": "PT1H",
					"recipeCategory": ["Dessert", "Baking"],
					"recipeCuisine": "French",
					"recipeYield": "6 servings",
					"image": {"@type": "ImageObject", "url": "https://example.com/tart.jpg"}
				}
			]
		}`)

		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, "Lemon Tart", r.Name)
		assert.Equal(t, "Sharp & sweet.", r.Description)
		assert.Equal(t, []string{"1 cup flour", "2 lemons"}, r.Ingredients)
		assert.Equal(t, []string{"Make the crust.", "Fill and bake."}, r.Instructions)
		require.NotNil(t, r.PrepTime)
		assert.Equal(t, 15, *r.PrepTime)
		require.NotNil(t, r.CookTime)
		assert.Equal(t, 60, *r.CookTime)
		assert.Equal(t, []string{"Dessert", "Baking"}, r.Categories)
		assert.Equal(t, "French", r.Cuisine)
		assert.Equal(t, 6, r.Servings)
		assert.Equal(t, "https://example.com/tart.jpg", r.ImageURL)
	})

	t.Run("takes the first named recipe from an array", func(t *testing.T) {
		page := jsonLDPage(`[
			{"@type": "Recipe", "name": ""},
			{"@type": "Recipe", "name": "Pancakes", "recipeIngredient": "2 eggs", "recipeYield": 8}
		]`)

		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, "Pancakes", r.Name)
		assert.Equal(t, []string{"2 eggs"}, r.Ingredients)
		assert.Equal(t, 8, r.Servings)
	})

	t.Run("flattens how-to sections", func(t *testing.T) {
		page := jsonLDPage(`{"@type":"Recipe","name":"Layered","recipeInstructions":[
			{"@type":"HowToSection","name":"Base","itemListElement":[{"@type":"HowToStep","text":"Mix base."}]},
			{"@type":"HowToSection","name":"Top","itemListElement":[{"@type":"HowToStep","text":"Spread top."}]}
		]}`)

		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, []string{"Mix base.", "Spread top."}, r.Instructions)
	})

	t.Run("skips a malformed block and uses the next one", func(t *testing.T) {
		page := jsonLDPage(
			`{"@type":"Recipe","name":`,
			`{"@type":"Recipe","name":"Second Block","recipeIngredient":["salt"]}`,
		)

		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, "Second Block", r.Name)
	})

	t.Run("ignores non-recipe types", func(t *testing.T) {
		page := jsonLDPage(`{"@type":"Article","name":"Not food"}`)
		assert.Nil(t, ExtractStructured(page))
	})

	t.Run("matches the script type case-insensitively", func(t *testing.T) {
		page := `<script type="Application/LD+JSON">{"@type":"Recipe","name":"Upper"}</script>`
		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, "Upper", r.Name)
		assert.False(t, r.Usable())
	})

	t.Run("returns nil without json-ld", func(t *testing.T) {
		assert.Nil(t, ExtractStructured("<html><body><h1>Plain</h1></body></html>"))
	})

	t.Run("falls back to default yield", func(t *testing.T) {
		page := jsonLDPage(`{"@type":"Recipe","name":"No Yield","recipeYield":"a few"}`)
		r := ExtractStructured(page)
		require.NotNil(t, r)
		assert.Equal(t, defaultYield, r.Servings)
	})

	t.Run("out of range yield uses the default", func(t *testing.T) {
		for _, yield := range []string{`1e300`, `0.5`, `"5000 servings"`, `[1e300, "6 servings"]`} {
			page := jsonLDPage(`{"@type":"Recipe","name":"Huge","recipeYield":` + yield + `}`)
			r := ExtractStructured(page)
			require.NotNil(t, r, yield)
			want := defaultYield
			if yield == `[1e300, "6 servings"]` {
				want = 6
			}
			assert.Equal(t, want, r.Servings, yield)
		}
	})
}

func TestParseISODuration(t *testing.T) {
	testCases := []struct {
		input string
		want  int // 0 means nil
	}{
		{"PT45M", 45},
		{"PT1H30M", 90},
		{"pt2h", 120},
		{"P1DT2H", 1560},
		{"PT90S", 1},
		{"PT0M", 0},
		{"", 0},
		{"P", 0},
		{"45 minutes", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := ParseISODuration(tc.input)
			if tc.want == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}
