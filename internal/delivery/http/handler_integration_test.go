package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipelift/backend/config"
	"github.com/recipelift/backend/internal/domain"
	"github.com/recipelift/backend/internal/infrastructure/cache"
	"github.com/recipelift/backend/internal/infrastructure/fetch"
	"github.com/recipelift/backend/internal/reference"
	"github.com/recipelift/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

const soupPage = `<html><head>
<title>Test Soup | Example Kitchen</title>
<script type="application/ld+json">{"@type":"Recipe","name":"Test Soup","recipeIngredient":["2 cups broth","1 carrot"],"recipeInstructions":"Boil broth.\nAdd carrot."}</script>
</head><body></body></html>`

// stubPageFetcher is a domain.PageFetcher serving canned pages
type stubPageFetcher struct {
	pages map[string]*domain.RawPage
	err   error
}

func (s *stubPageFetcher) Fetch(ctx context.Context, url string) (*domain.RawPage, error) {
	if s.err != nil {
		return nil, s.err
	}
	if page, ok := s.pages[url]; ok {
		return page, nil
	}
	return &domain.RawPage{URL: url, StatusCode: http.StatusNotFound}, nil
}

func newStubFetcher() *stubPageFetcher {
	return &stubPageFetcher{pages: make(map[string]*domain.RawPage)}
}

func (s *stubPageFetcher) serve(url string, status int, body string) {
	s.pages[url] = &domain.RawPage{URL: url, StatusCode: status, Body: []byte(body)}
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
		},
		Cache:     config.CacheConfig{Type: "memory"},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
	}
}

// setupTestRouter creates a test router without an import service
func setupTestRouter() *gin.Engine {
	return SetupRouter(testConfig(), NewHandler(nil, nil), zap.NewNop())
}

// setupTestRouterWithService creates a test router over a real ImportService
func setupTestRouterWithService(cacheRepo domain.CacheRepository, fetcher domain.PageFetcher) *gin.Engine {
	importer := usecase.NewImportService(cacheRepo, fetcher, reference.Load(), zap.NewNop(), usecase.ImportServiceConfig{
		CacheTTL: time.Hour,
		Match:    usecase.MatchConfig{EnableFuzzyMatching: true, FuzzyEditDistance: 1},
	})
	return SetupRouter(testConfig(), NewHandler(importer, zap.NewNop()), zap.NewNop())
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		response := decodeBody(t, w)
		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "recipelift-backend" {
			t.Errorf("service = %v, want recipelift-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestEndpointsWithoutService(t *testing.T) {
	router := setupTestRouter()

	paths := []string{
		"/api/v1/recipes/import",
		"/api/v1/recipes/classify",
		"/api/v1/ingredients/normalize",
		"/api/v1/ingredients/match",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := postJSON(router, path, `{}`)

			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Contains(t, decodeBody(t, w)["error"], "not configured")
		})
	}
}

func TestImportEndpoint(t *testing.T) {
	const recipeURL = "https://example.com/test-soup"

	t.Run("returns the draft for a structured page", func(t *testing.T) {
		fetcher := newStubFetcher()
		fetcher.serve(recipeURL, http.StatusOK, soupPage)
		router := setupTestRouterWithService(cache.NewMemoryCache(), fetcher)

		w := postJSON(router, "/api/v1/recipes/import", `{"url":"`+recipeURL+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var recipe domain.ParsedRecipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))

		assert.Equal(t, "Test Soup", recipe.Name)
		assert.Equal(t, []string{"2 cups broth", "1 carrot"}, recipe.Ingredients)
		assert.Equal(t, []string{"Boil broth.", "Add carrot."}, recipe.Instructions)
		assert.Equal(t, domain.CategorySoup, recipe.Category)
		assert.Equal(t, domain.MethodStructured, recipe.ExtractionMethod)
		assert.Equal(t, recipeURL, recipe.SourceURL)
		assert.Equal(t, usecase.SourcePage, recipe.Source)
		require.Len(t, recipe.MatchedIngredients, 2)
		assert.Equal(t, "Broth", recipe.MatchedIngredients[0].Canonical)
		assert.Equal(t, "Carrot", recipe.MatchedIngredients[1].Canonical)
	})

	t.Run("second import is served from cache", func(t *testing.T) {
		fetcher := newStubFetcher()
		fetcher.serve(recipeURL, http.StatusOK, soupPage)
		router := setupTestRouterWithService(cache.NewMemoryCache(), fetcher)

		first := postJSON(router, "/api/v1/recipes/import", `{"url":"`+recipeURL+`"}`)
		require.Equal(t, http.StatusOK, first.Code)

		fetcher.err = errors.New("should not be called")
		second := postJSON(router, "/api/v1/recipes/import", `{"url":"`+recipeURL+`#comments"}`)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())
		assert.Equal(t, usecase.SourceCache, decodeBody(t, second)["source"])
	})

	tests := []struct {
		name       string
		payload    string
		status     int
		body       string
		fetchErr   error
		wantStatus int
		wantKind   string
		wantField  string
	}{
		{
			name:       "missing url",
			payload:    `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			payload:    `{"url":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported scheme",
			payload:    `{"url":"ftp://example.com/test-soup"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "page not found",
			payload:    `{"url":"` + recipeURL + `"}`,
			status:     http.StatusNotFound,
			wantStatus: http.StatusBadGateway,
			wantKind:   "invalidResponse",
		},
		{
			name:       "transport failure",
			payload:    `{"url":"` + recipeURL + `"}`,
			fetchErr:   errors.New("connection refused"),
			wantStatus: http.StatusBadGateway,
			wantKind:   "invalidResponse",
		},
		{
			name:       "body is not utf-8",
			payload:    `{"url":"` + recipeURL + `"}`,
			status:     http.StatusOK,
			body:       "<html>\xff\xfe</html>",
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "invalidEncoding",
		},
		{
			name:       "page without ingredients",
			payload:    `{"url":"` + recipeURL + `"}`,
			status:     http.StatusOK,
			body:       `<html><head><script type="application/ld+json">{"@type":"Recipe","name":"Test Soup","recipeInstructions":"Boil broth."}</script></head></html>`,
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "missingRequiredData",
			wantField:  "ingredients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newStubFetcher()
			fetcher.err = tt.fetchErr
			if tt.status != 0 {
				fetcher.serve(recipeURL, tt.status, tt.body)
			}
			router := setupTestRouterWithService(cache.NewMemoryCache(), fetcher)

			w := postJSON(router, "/api/v1/recipes/import", tt.payload)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			response := decodeBody(t, w)
			assert.NotEmpty(t, response["error"])
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, response["kind"])
			}
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, response["field"])
			}
		})
	}
}

// TestImportEndToEnd drives the router, the HTTP fetcher and a recipe site together
func TestImportEndToEnd(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/soup" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(soupPage))
	}))
	defer site.Close()

	fetcher := fetch.NewClient(fetch.Config{RequestsPerSecond: 100, Burst: 10}, zap.NewNop())
	router := setupTestRouterWithService(cache.NewMemoryCache(), fetcher)

	w := postJSON(router, "/api/v1/recipes/import", `{"url":"`+site.URL+`/soup"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Test Soup", decodeBody(t, w)["name"])

	missing := postJSON(router, "/api/v1/recipes/import", `{"url":"`+site.URL+`/missing"}`)
	assert.Equal(t, http.StatusBadGateway, missing.Code)
}

func TestClassifyEndpoint(t *testing.T) {
	router := setupTestRouterWithService(nil, newStubFetcher())

	t.Run("classifies by name keyword", func(t *testing.T) {
		w := postJSON(router, "/api/v1/recipes/classify", `{
			"name": "Chocolate Chip Cookie Recipe",
			"ingredients": ["2 cups flour", "1 cup sugar", "1 cup butter"],
			"instructions": ["Mix.", "Bake for 12 minutes."]
		}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		response := decodeBody(t, w)
		assert.Equal(t, "Dessert", response["category"])
		assert.Equal(t, "Basic", response["difficulty"])
	})

	t.Run("schema category wins", func(t *testing.T) {
		w := postJSON(router, "/api/v1/recipes/classify", `{"name":"Tomato Soup Shooters","category":"Appetizer"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Starter", decodeBody(t, w)["category"])
	})

	t.Run("rejects an empty recipe", func(t *testing.T) {
		w := postJSON(router, "/api/v1/recipes/classify", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIngredientEndpoints(t *testing.T) {
	router := setupTestRouterWithService(nil, newStubFetcher())

	t.Run("normalize", func(t *testing.T) {
		w := postJSON(router, "/api/v1/ingredients/normalize", `{"ingredients":["2 tbsp minced garlic","1 dragonfruit"]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"ingredients":["Garlic","Dragonfruit"]}`, w.Body.String())
	})

	t.Run("match", func(t *testing.T) {
		w := postJSON(router, "/api/v1/ingredients/match", `{"ingredients":["2 cups broth","1 dragonfruit"]}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var response struct {
			Ingredients []domain.MatchedIngredient `json:"ingredients"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Ingredients, 2)
		assert.Equal(t, "Broth", response.Ingredients[0].Canonical)
		assert.False(t, response.Ingredients[1].Matched())
		assert.Equal(t, "Dragonfruit", response.Ingredients[1].Name)
	})

	t.Run("requires ingredients", func(t *testing.T) {
		w := postJSON(router, "/api/v1/ingredients/match", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for extension origins", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "chrome-extension://abcdefghijklmnop", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("responses carry a request ID", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})
}

// TestRecoveryIntegration tests panic recovery
func TestRecoveryIntegration(t *testing.T) {
	router := setupTestRouter()
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// TestAPIVersioning tests that API v1 routes are correctly versioned
func TestAPIVersioning(t *testing.T) {
	router := setupTestRouter()

	for _, path := range []string{"/api/recipes/import", "/recipes/import", "/api/v2/recipes/import"} {
		w := postJSON(router, path, `{}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Path %s: Status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid response", domain.NewInvalidResponse(errors.New("status 500")), http.StatusBadGateway},
		{"invalid encoding", domain.NewInvalidEncoding(nil), http.StatusUnprocessableEntity},
		{"missing data", domain.NewMissingRequiredData(domain.FieldName), http.StatusUnprocessableEntity},
		{"parse failure", domain.NewParseFailure(errors.New("boom")), http.StatusInternalServerError},
		{"invalid request", invalidRequest(errors.New("bad")), http.StatusBadRequest},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown", errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
