package taxes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for tax-rate lookups.
type Handler struct{}

// NewHandler creates a new taxes handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes sets up tax routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/taxes/:state", h.Lookup)
}

// Lookup handles GET /v1/taxes/:state
// An optional ?gross= query returns the estimated withholding too.
func (h *Handler) Lookup(c *gin.Context) {
	rate, known := Rate(c.Param("state"))

	resp := gin.H{"rate": rate, "stateKnown": known}

	if raw := c.Query("gross"); raw != "" {
		gross, err := strconv.ParseFloat(raw, 64)
		if err != nil || gross < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "gross must be a non-negative number"})
			return
		}
		resp["gross"] = gross
		resp["withholding"] = Withholding(gross, rate.State)
		resp["net"] = gross - Withholding(gross, rate.State)
	}

	c.JSON(http.StatusOK, resp)
}
