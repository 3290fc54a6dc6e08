package reminders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for reminders.
type Handler struct {
	service *Service
}

// NewHandler creates a new reminders handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up reminder routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reps/:repId/reminders", h.Create)
	r.GET("/reps/:repId/reminders", h.List)
	r.GET("/reminders/:id", h.Get)
	r.POST("/reminders/:id/complete", h.Complete)
	r.DELETE("/reminders/:id", h.Delete)
}

// Create handles POST /v1/reps/:repId/reminders
func (h *Handler) Create(c *gin.Context) {
	repID := c.Param("repId")

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	reminder, err := h.service.Create(c.Request.Context(), repID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

// List handles GET /v1/reps/:repId/reminders
func (h *Handler) List(c *gin.Context) {
	repID := c.Param("repId")
	limit := parseLimit(c, 50, 200)

	reminders, err := h.service.ListByRep(c.Request.Context(), repID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "count": len(reminders)})
}

// Get handles GET /v1/reminders/:id
func (h *Handler) Get(c *gin.Context) {
	reminder, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

// Complete handles POST /v1/reminders/:id/complete
func (h *Handler) Complete(c *gin.Context) {
	reminder, err := h.service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "complete_failed"
		switch {
		case errors.Is(err, ErrReminderNotFound):
			status = http.StatusNotFound
			code = "not_found"
		case errors.Is(err, ErrAlreadyDone):
			status = http.StatusConflict
			code = "already_done"
		}
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

// Delete handles DELETE /v1/reminders/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func parseLimit(c *gin.Context, def, max int) int {
	limit := def
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= max {
			limit = n
		}
	}
	return limit
}
