// Package reference holds the compiled-in lookup tables used by the import
// pipeline: the food catalog, ingredient aliases and classification keywords.
//
// Tables is built once and is read-only afterwards. Every accessor returns
// either a scalar lookup or a fresh copy, so callers can never mutate it.
package reference

import (
	"sort"
	"strings"
	"sync"

	"github.com/recipelift/backend/internal/domain"
)

// CatalogEntry is one food catalog name with its precomputed lowercase form.
type CatalogEntry struct {
	Name  string
	Lower string
	Words int
}

// CategoryKeywords is an ordered keyword set for one category.
type CategoryKeywords struct {
	Category domain.Category
	Keywords []string
}

// CategorySignal weights ingredient keywords towards one category.
type CategorySignal struct {
	Category domain.Category
	Weights  map[string]int
}

// Tables is the immutable set of reference data.
type Tables struct {
	catalog      []CatalogEntry // longest first
	catalogIndex map[string]string

	aliases   map[string]string
	aliasKeys []string // longest first, ties alphabetical

	measurementTerms []string
	unitIndicators   map[string]bool
	actionVerbs      map[string]bool
	stopWords        map[string]bool

	categoryAliases   map[string]domain.Category
	nameKeywords      []CategoryKeywords
	ingredientSignals []CategorySignal
	cuisineFamilies   map[string]domain.Category
	techniques        []string
}

var (
	loadOnce sync.Once
	loaded   *Tables
)

// Load returns the process-wide tables, building them on first use.
func Load() *Tables {
	loadOnce.Do(func() {
		loaded = build()
	})
	return loaded
}

func build() *Tables {
	t := &Tables{
		catalogIndex:     make(map[string]string, len(foodCatalog)),
		aliases:          make(map[string]string, len(ingredientAliases)),
		measurementTerms: append([]string(nil), measurementTerms...),
		unitIndicators:   toSet(unitIndicators),
		actionVerbs:      toSet(actionVerbs),
		stopWords:        toSet(stopWords),
		categoryAliases:  make(map[string]domain.Category, len(categoryAliases)),
		cuisineFamilies:  make(map[string]domain.Category, len(cuisineFamilies)),
		techniques:       append([]string(nil), advancedTechniques...),
	}

	for _, name := range foodCatalog {
		lower := strings.ToLower(name)
		// catalog is case-insensitively unique; first spelling wins
		if _, dup := t.catalogIndex[lower]; dup {
			continue
		}
		t.catalogIndex[lower] = name
		t.catalog = append(t.catalog, CatalogEntry{
			Name:  name,
			Lower: lower,
			Words: len(strings.Fields(lower)),
		})
	}
	sort.SliceStable(t.catalog, func(i, j int) bool {
		return len(t.catalog[i].Lower) > len(t.catalog[j].Lower)
	})

	for phrase, canonical := range ingredientAliases {
		key := strings.ToLower(phrase)
		t.aliases[key] = canonical
		t.aliasKeys = append(t.aliasKeys, key)
	}
	sort.Slice(t.aliasKeys, func(i, j int) bool {
		a, b := t.aliasKeys[i], t.aliasKeys[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	for alias, cat := range categoryAliases {
		t.categoryAliases[alias] = cat
	}
	for cuisine, cat := range cuisineFamilies {
		t.cuisineFamilies[cuisine] = cat
	}
	for _, nk := range nameKeywords {
		t.nameKeywords = append(t.nameKeywords, CategoryKeywords{
			Category: nk.Category,
			Keywords: append([]string(nil), nk.Keywords...),
		})
	}
	for _, sig := range ingredientSignals {
		weights := make(map[string]int, len(sig.Weights))
		for k, v := range sig.Weights {
			weights[k] = v
		}
		t.ingredientSignals = append(t.ingredientSignals, CategorySignal{Category: sig.Category, Weights: weights})
	}

	return t
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// Catalog returns the catalog names, longest first.
func (t *Tables) Catalog() []string {
	names := make([]string, len(t.catalog))
	for i, e := range t.catalog {
		names[i] = e.Name
	}
	return names
}

// CatalogEntries returns a copy of the catalog entries, longest first.
func (t *Tables) CatalogEntries() []CatalogEntry {
	return append([]CatalogEntry(nil), t.catalog...)
}

// InCatalog reports whether name is a catalog entry, ignoring case.
func (t *Tables) InCatalog(name string) bool {
	_, ok := t.catalogIndex[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Alias looks up the canonical display name for an exact lowercase phrase.
func (t *Tables) Alias(phrase string) (string, bool) {
	canonical, ok := t.aliases[phrase]
	return canonical, ok
}

// AliasKeys returns every alias phrase, longest first with ties sorted alphabetically.
func (t *Tables) AliasKeys() []string {
	return append([]string(nil), t.aliasKeys...)
}

// MeasurementTerms returns the quantity vocabulary stripped from ingredient lines.
func (t *Tables) MeasurementTerms() []string {
	return append([]string(nil), t.measurementTerms...)
}

// IsUnitIndicator reports whether word marks a line as an ingredient.
func (t *Tables) IsUnitIndicator(word string) bool {
	return t.unitIndicators[word]
}

// IsActionVerb reports whether word is a cooking action verb.
func (t *Tables) IsActionVerb(word string) bool {
	return t.actionVerbs[word]
}

// IsStopWord reports whether word carries no food meaning.
func (t *Tables) IsStopWord(word string) bool {
	return t.stopWords[word]
}

// CategoryAlias resolves a free-form schema category to a fixed category.
func (t *Tables) CategoryAlias(s string) (domain.Category, bool) {
	cat, ok := t.categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return cat, ok
}

// NameKeywords returns the name keyword sets in priority order.
func (t *Tables) NameKeywords() []CategoryKeywords {
	out := make([]CategoryKeywords, len(t.nameKeywords))
	for i, nk := range t.nameKeywords {
		out[i] = CategoryKeywords{Category: nk.Category, Keywords: append([]string(nil), nk.Keywords...)}
	}
	return out
}

// IngredientSignals returns the per-category ingredient keyword weights.
func (t *Tables) IngredientSignals() []CategorySignal {
	out := make([]CategorySignal, len(t.ingredientSignals))
	for i, sig := range t.ingredientSignals {
		weights := make(map[string]int, len(sig.Weights))
		for k, v := range sig.Weights {
			weights[k] = v
		}
		out[i] = CategorySignal{Category: sig.Category, Weights: weights}
	}
	return out
}

// CuisineCategory maps a cuisine to its family default category.
func (t *Tables) CuisineCategory(cuisine string) (domain.Category, bool) {
	cat, ok := t.cuisineFamilies[strings.ToLower(strings.TrimSpace(cuisine))]
	return cat, ok
}

// AdvancedTechniques returns the technique keywords that raise difficulty.
func (t *Tables) AdvancedTechniques() []string {
	return append([]string(nil), t.techniques...)
}
