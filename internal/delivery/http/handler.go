package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tailord/backend/internal/domain"
	"github.com/tailord/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService) *Handler {
	return &Handler{searchService: searchService}
}

// searchRequest is the POST /search body.
type searchRequest struct {
	Query               string  `json:"query" binding:"required"`
	Limit               int     `json:"limit,omitempty"`
	Role                string  `json:"role,omitempty"`
	Budget              float64 `json:"budget,omitempty"`
	UseExpensiveSummary bool    `json:"useExpensiveSummary,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tailord-backend",
		"version": "1.0.0",
	})
}

// Search handles POST /api/v1/search
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), req.Query, domain.SearchOptions{
		Limit:               req.Limit,
		Role:                req.Role,
		Budget:              req.Budget,
		UseExpensiveSummary: req.UseExpensiveSummary,
	})
	if err != nil {
		h.writeSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchGET handles GET /api/v1/search?q=...&limit=...&llm=true for simple
// clients and quick manual testing.
func (h *Handler) SearchGET(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `query parameter "q" is required`})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	useExpensive := c.Query("llm") == "true"

	response, err := h.searchService.Search(c.Request.Context(), query, domain.SearchOptions{
		Limit:               limit,
		UseExpensiveSummary: useExpensive,
	})
	if err != nil {
		h.writeSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ComposeOutfit handles POST /api/v1/outfit
func (h *Handler) ComposeOutfit(c *gin.Context) {
	var req domain.OutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	response, err := h.searchService.ComposeOutfit(c.Request.Context(), req)
	if err != nil {
		h.writeSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// writeSearchError maps pipeline errors to HTTP status codes. Validation
// errors are the caller's fault; anything else is a server-side failure,
// which the pipeline only surfaces when it could not even degrade.
func (h *Handler) writeSearchError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
}
