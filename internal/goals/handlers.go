package goals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for goal management.
type Handler struct {
	service *Service
}

// NewHandler creates a new goals handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up goal routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reps/:repId/goals", h.Create)
	r.GET("/reps/:repId/goals", h.List)
	r.GET("/reps/:repId/goals/:period/progress", h.Progress)
	r.PUT("/goals/:id", h.Update)
	r.DELETE("/goals/:id", h.Delete)
}

// Create handles POST /v1/reps/:repId/goals
func (h *Handler) Create(c *gin.Context) {
	repID := c.Param("repId")

	var req UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	goal, err := h.service.Create(c.Request.Context(), repID, req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "create_failed"
		switch {
		case errors.Is(err, ErrGoalExists):
			status = http.StatusConflict
			code = "goal_exists"
		case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidPeriod):
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// List handles GET /v1/reps/:repId/goals
func (h *Handler) List(c *gin.Context) {
	repID := c.Param("repId")

	goals, err := h.service.ListByRep(c.Request.Context(), repID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals, "count": len(goals)})
}

// Progress handles GET /v1/reps/:repId/goals/:period/progress
func (h *Handler) Progress(c *gin.Context) {
	repID := c.Param("repId")
	period := c.Param("period")

	progress, err := h.service.Progress(c.Request.Context(), repID, period)
	if err != nil {
		status := http.StatusInternalServerError
		code := "progress_failed"
		switch {
		case errors.Is(err, ErrGoalNotFound):
			status = http.StatusNotFound
			code = "not_found"
		case errors.Is(err, ErrInvalidPeriod):
			status = http.StatusBadRequest
			code = "invalid_period"
		}
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// Update handles PUT /v1/goals/:id
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpsertGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	goal, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "update_failed"
		switch {
		case errors.Is(err, ErrGoalNotFound):
			status = http.StatusNotFound
			code = "not_found"
		case errors.Is(err, ErrGoalExists):
			status = http.StatusConflict
			code = "goal_exists"
		case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidPeriod):
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Delete handles DELETE /v1/goals/:id
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
