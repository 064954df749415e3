package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipelift/backend/internal/domain"
	"github.com/recipelift/backend/internal/usecase"
)

const (
	serviceName    = "recipelift-backend"
	serviceVersion = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	importer *usecase.ImportService
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler. importer may be nil, in which case
// recipe endpoints answer 503.
func NewHandler(importer *usecase.ImportService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		importer: importer,
		logger:   logger,
	}
}

// ImportRequest is the body of POST /api/v1/recipes/import
type ImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// ClassifyRequest is the body of POST /api/v1/recipes/classify
type ClassifyRequest struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Category     string   `json:"category"`
	Cuisine      string   `json:"cuisine"`
}

// IngredientsRequest is the body of the ingredient endpoints
type IngredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// ImportRecipe fetches a recipe page and returns the draft
func (h *Handler) ImportRecipe(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidRequest(err))
		return
	}

	recipe, err := h.importer.ImportFrom(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Info("import failed",
			zap.String("url", req.URL),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// ClassifyRecipe assigns a category and difficulty to a recipe
func (h *Handler) ClassifyRecipe(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidRequest(err))
		return
	}
	if req.Name == "" && len(req.Ingredients) == 0 {
		respondError(c, invalidRequest(errors.New("name or ingredients required")))
		return
	}

	c.JSON(http.StatusOK, h.importer.Classify(usecase.ClassifyInput{
		Name:         req.Name,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Category:     req.Category,
		Cuisine:      req.Cuisine,
	}))
}

// NormalizeIngredients returns the canonical display form of each line
func (h *Handler) NormalizeIngredients(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidRequest(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": h.importer.NormalizeIngredients(req.Ingredients),
	})
}

// MatchIngredients maps each line to at most one food catalog name
func (h *Handler) MatchIngredients(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidRequest(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": h.importer.MatchIngredients(req.Ingredients),
	})
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.importer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "import service not configured",
		})
		return false
	}
	return true
}

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
}

// respondError maps domain errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	status := http.StatusInternalServerError

	var importErr *domain.ImportError
	switch {
	case errors.As(err, &importErr):
		body["kind"] = importErr.Kind.String()
		switch importErr.Kind {
		case domain.KindInvalidResponse:
			status = http.StatusBadGateway
		case domain.KindInvalidEncoding:
			status = http.StatusUnprocessableEntity
		case domain.KindMissingRequiredData:
			status = http.StatusUnprocessableEntity
			body["field"] = importErr.Field
		}
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	c.AbortWithStatusJSON(status, body)
}
