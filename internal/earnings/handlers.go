package earnings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for earnings aggregation.
type Handler struct {
	service *Service
}

// NewHandler creates a new earnings handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up earnings routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reps/:repId/earnings", h.Breakdown)
	r.GET("/reps/:repId/earnings/next-tier", h.NextTier)
	r.GET("/reps/:repId/earnings/tier", h.Tier)
}

// Breakdown handles GET /v1/reps/:repId/earnings
func (h *Handler) Breakdown(c *gin.Context) {
	repID := c.Param("repId")
	at, ok := parseAt(c)
	if !ok {
		return
	}

	summary, err := h.service.Breakdown(c.Request.Context(), repID, at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"earnings": summary})
}

// NextTier handles GET /v1/reps/:repId/earnings/next-tier
func (h *Handler) NextTier(c *gin.Context) {
	repID := c.Param("repId")
	at, ok := parseAt(c)
	if !ok {
		return
	}

	projection, err := h.service.NextTier(c.Request.Context(), repID, at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	// projection is null at the terminal tier; the dashboard renders that as
	// "max tier reached".
	c.JSON(http.StatusOK, gin.H{"projection": projection})
}

// Tier handles GET /v1/reps/:repId/earnings/tier
func (h *Handler) Tier(c *gin.Context) {
	repID := c.Param("repId")
	at, ok := parseAt(c)
	if !ok {
		return
	}

	info, err := h.service.Tier(c.Request.Context(), repID, at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tier": info})
}

// parseAt reads the optional ?at= query (RFC3339) used to inspect past
// fiscal months; defaults to now.
func parseAt(c *gin.Context) (time.Time, bool) {
	v := c.Query("at")
	if v == "" {
		return time.Now(), true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "at must be RFC3339"})
		return time.Time{}, false
	}
	return t, true
}
