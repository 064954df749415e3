package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/recipelift/backend/internal/domain"
	"github.com/recipelift/backend/internal/reference"
)

// Draft sources
const (
	SourcePage  = "page"
	SourceCache = "cache"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportServiceConfig holds configuration for the import service
type ImportServiceConfig struct {
	CacheTTL time.Duration
	Match    MatchConfig
}

// ImportService turns recipe pages into reviewable drafts
type ImportService struct {
	cache      domain.CacheRepository
	fetcher    domain.PageFetcher
	normalizer *IngredientNormalizer
	heuristic  *HeuristicExtractor
	matcher    *CatalogMatcher
	classifier *Classifier
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewImportService creates a new import service with dependencies.
// cache may be nil, in which case every import goes to the page.
func NewImportService(
	cache domain.CacheRepository,
	fetcher domain.PageFetcher,
	tables *reference.Tables,
	logger *zap.Logger,
	config ImportServiceConfig,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour // Default 1 day
	}

	normalizer := NewIngredientNormalizer(tables, logger, config.Match.EnableDebugLogging)

	return &ImportService{
		cache:      cache,
		fetcher:    fetcher,
		normalizer: normalizer,
		heuristic:  NewHeuristicExtractor(tables, normalizer, logger),
		matcher:    NewCatalogMatcher(tables, normalizer, logger, config.Match),
		classifier: NewClassifier(tables),
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// ImportFrom fetches a recipe page and extracts a draft from it.
// Flow: check cache -> fetch -> validate -> extract -> match -> classify -> cache -> return
func (s *ImportService) ImportFrom(ctx context.Context, rawURL string) (*domain.ParsedRecipe, error) {
	pageURL, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	cacheKey := "recipe:" + pageURL

	// Try cache first
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = SourceCache
		return cached, nil
	}

	// Cache miss - fetch the page
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		s.logger.Warn("page fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil, domain.NewInvalidResponse(err)
	}
	if page.StatusCode < 200 || page.StatusCode > 299 {
		s.logger.Warn("page returned non-2xx", zap.String("url", pageURL), zap.Int("status", page.StatusCode))
		return nil, domain.NewInvalidResponse(fmt.Errorf("status %d", page.StatusCode))
	}

	recipe, err := s.ImportHTML(pageURL, page.Body)
	if err != nil {
		return nil, err
	}

	// Cache the result; failure only costs a refetch next time
	if err := s.setInCache(ctx, cacheKey, recipe); err != nil {
		s.logger.Warn("failed to cache recipe", zap.String("key", cacheKey), zap.Error(err))
	}

	return recipe, nil
}

// ImportHTML extracts a draft from an already fetched page body.
func (s *ImportService) ImportHTML(sourceURL string, body []byte) (recipe *domain.ParsedRecipe, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recipe extraction panicked", zap.String("url", sourceURL), zap.Any("panic", r))
			recipe, err = nil, domain.NewParseFailure(fmt.Errorf("%v", r))
		}
	}()

	body = bytes.TrimPrefix(body, utf8BOM)
	if !utf8.Valid(body) {
		return nil, domain.NewInvalidEncoding(errors.New("body is not valid UTF-8"))
	}
	page := string(body)

	// Step 1: Normalize the page to text
	text := NormalizeHTML(page)

	// Step 2: Structured data first, heuristic pass as fallback
	draft := s.extract(page, text)

	// Step 3: Enforce minimum viability
	switch {
	case draft.recipe.Name == "":
		return nil, domain.NewMissingRequiredData(domain.FieldName)
	case len(draft.recipe.Ingredients) == 0:
		return nil, domain.NewMissingRequiredData(domain.FieldIngredients)
	case len(draft.recipe.Instructions) == 0:
		return nil, domain.NewMissingRequiredData(domain.FieldInstructions)
	}

	out := draft.recipe

	// Step 4: Canonicalize ingredients
	out.MatchedIngredients = s.matcher.Match(out.Ingredients)

	// Step 5: Classify what the page did not state
	out.Category = s.classifier.ClassifyCategory(draft.categories, out.Name, out.Ingredients, out.Cuisine)
	if out.Difficulty == "" {
		out.Difficulty = s.classifier.EstimateDifficulty(
			len(out.Ingredients), len(out.Instructions), strings.Join(out.Instructions, "\n"))
	}

	// Step 6: Assemble
	out.SourceURL = sourceURL
	out.Confidence = Confidence(draft.fields)
	out.Source = SourcePage
	out.ImportedAt = s.now().UTC()

	s.logger.Info("recipe imported",
		zap.String("url", sourceURL),
		zap.String("name", out.Name),
		zap.String("method", out.ExtractionMethod),
		zap.Float64("confidence", out.Confidence))

	return &out, nil
}

// extraction is an unvalidated draft plus the evidence behind it.
type extraction struct {
	recipe     domain.ParsedRecipe
	categories []string
	fields     ExtractedFields
}

func (s *ImportService) extract(page, text string) extraction {
	structured := ExtractStructured(page)
	if !structured.Usable() {
		return s.fromHeuristic(s.heuristic.Extract(page, text))
	}

	draft := s.fromStructured(structured)

	// Fill mandatory gaps from the page text
	r := &draft.recipe
	if r.Name == "" || len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		h := s.heuristic.Extract(page, text)
		if r.Name == "" && h.Name != "" {
			r.Name = h.Name
			draft.fields.Name = true
		}
		if len(r.Ingredients) == 0 && len(h.Ingredients) > 0 {
			r.Ingredients = h.Ingredients
			draft.fields.Ingredients = true
		}
		if len(r.Instructions) == 0 && len(h.Instructions) > 0 {
			r.Instructions = h.Instructions
			draft.fields.Instructions = true
		}
	}
	return draft
}

func (s *ImportService) fromStructured(sr *StructuredRecipe) extraction {
	servings := sr.Servings
	r := domain.ParsedRecipe{
		Name:             sr.Name,
		Description:      sr.Description,
		Ingredients:      sr.Ingredients,
		Instructions:     sr.Instructions,
		PrepTime:         sr.PrepTime,
		CookTime:         sr.CookTime,
		TotalTime:        sr.TotalTime,
		Servings:         &servings,
		Cuisine:          sr.Cuisine,
		ImageURL:         sr.ImageURL,
		ExtractionMethod: domain.MethodStructured,
	}
	if level, ok := ParseDifficulty(sr.Difficulty); ok {
		r.Difficulty = level
	}

	return extraction{
		recipe:     r,
		categories: sr.Categories,
		fields:     fieldsOf(&r),
	}
}

func (s *ImportService) fromHeuristic(h HeuristicRecipe) extraction {
	r := domain.ParsedRecipe{
		Name:             h.Name,
		Description:      h.Description,
		Ingredients:      h.Ingredients,
		Instructions:     h.Instructions,
		PrepTime:         h.PrepTime,
		CookTime:         h.CookTime,
		TotalTime:        h.TotalTime,
		Servings:         h.Servings,
		ExtractionMethod: domain.MethodHeuristic,
	}
	if level, ok := ParseDifficulty(h.Difficulty); ok {
		r.Difficulty = level
	}

	return extraction{recipe: r, fields: fieldsOf(&r)}
}

func fieldsOf(r *domain.ParsedRecipe) ExtractedFields {
	return ExtractedFields{
		Name:         r.Name != "",
		Description:  r.Description != "",
		PrepTime:     r.PrepTime != nil,
		CookTime:     r.CookTime != nil,
		Servings:     r.Servings != nil,
		Ingredients:  len(r.Ingredients) > 0,
		Instructions: len(r.Instructions) > 0,
		Difficulty:   r.Difficulty != "",
	}
}

// NormalizeIngredients canonicalizes ingredient phrases, keeping order and duplicates.
func (s *ImportService) NormalizeIngredients(lines []string) []string {
	return s.normalizer.NormalizeAll(lines)
}

// MatchIngredients maps ingredient lines onto the food catalog.
func (s *ImportService) MatchIngredients(lines []string) []domain.MatchedIngredient {
	return s.matcher.Match(lines)
}

// ClassifyInput is a recipe as far as classification needs it.
type ClassifyInput struct {
	Name         string
	Ingredients  []string
	Instructions []string
	Category     string
	Cuisine      string
}

// Classification is the result of Classify.
type Classification struct {
	Category   domain.Category   `json:"category"`
	Difficulty domain.Difficulty `json:"difficulty"`
}

// Classify assigns a category and an estimated difficulty.
func (s *ImportService) Classify(in ClassifyInput) Classification {
	var schema []string
	if in.Category != "" {
		schema = []string{in.Category}
	}
	return Classification{
		Category: s.classifier.ClassifyCategory(schema, in.Name, in.Ingredients, in.Cuisine),
		Difficulty: s.classifier.EstimateDifficulty(
			len(in.Ingredients), len(in.Instructions), strings.Join(in.Instructions, "\n")),
	}
}

// normalizeURL validates an import URL and returns its cache-stable form:
// lowercase scheme and host, no fragment, no trailing slash.
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: url is required", domain.ErrInvalidRequest)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: url must be http or https", domain.ErrInvalidRequest)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: url has no host", domain.ErrInvalidRequest)
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if len(u.Path) > 1 {
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawPath = ""
	}
	return u.String(), nil
}

// getFromCache retrieves a draft from cache
func (s *ImportService) getFromCache(ctx context.Context, key string) (*domain.ParsedRecipe, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, err
	}

	var recipe domain.ParsedRecipe
	if err := json.Unmarshal(value, &recipe); err != nil {
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, domain.ErrCacheMiss
	}
	return &recipe, nil
}

// setInCache stores a draft in cache
func (s *ImportService) setInCache(ctx context.Context, key string, recipe *domain.ParsedRecipe) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
