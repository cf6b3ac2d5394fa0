package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bookmark-analytics/domain"
	"bookmark-analytics/logger"
	"bookmark-analytics/service"

	"github.com/labstack/echo/v4"
)

// Handler contains the HTTP handlers for the analytics service
type Handler struct {
	analytics *service.AnalyticsService
}

// NewHandler creates a new Handler
func NewHandler(analytics *service.AnalyticsService) *Handler {
	return &Handler{
		analytics: analytics,
	}
}

// Register mounts the handlers on the router.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/v1/analyze", h.AnalyzeBookmarks)
	e.GET("/v1/stats/latest", h.LatestStats)
	e.GET("/v1/stats/top-words", h.TopWords)
	e.GET("/v1/health", h.Health)
}

type bookmarkPayload struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

type analyzeRequest struct {
	Bookmarks []bookmarkPayload `json:"bookmarks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// AnalyzeBookmarks runs the pipeline over a posted batch and returns the
// full analysis result, including skip counts and the degraded-mode flag.
func (h *Handler) AnalyzeBookmarks(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	records := make([]*domain.BookmarkRecord, 0, len(req.Bookmarks))
	for i, b := range req.Bookmarks {
		record, err := domain.NewBookmarkRecord(b.ID, b.Text, b.CreatedAt, b.Author, b.Tags)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "bookmark " + strconv.Itoa(i) + ": " + err.Error(),
			})
		}
		records = append(records, record)
	}

	ctx := context.WithValue(c.Request().Context(), logger.OperationKey, "analyze_bookmarks")
	result, err := h.analytics.AnalyzeBatch(ctx, records)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, result)
}

// LatestStats serves the full result of the most recent run.
func (h *Handler) LatestStats(c echo.Context) error {
	result := h.analytics.LastResult()
	if result == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "no analysis has completed yet"})
	}
	return c.JSON(http.StatusOK, result)
}

type topWordsResponse struct {
	Words    []domain.TokenCount `json:"words"`
	TechOnly bool                `json:"tech_only"`
}

// TopWords serves the ranked token frequencies of the most recent run.
func (h *Handler) TopWords(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		}
		limit = parsed
	}

	techOnly := c.QueryParam("tech_only") == "true"

	words, err := h.analytics.TopWords(limit, techOnly)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, topWordsResponse{Words: words, TechOnly: techOnly})
}

// Health reports service liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
