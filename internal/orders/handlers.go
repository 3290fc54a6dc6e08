package orders

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/pagination"
)

// Handler provides HTTP endpoints for order management.
type Handler struct {
	service *Service
}

// NewHandler creates a new orders handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up order routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/orders", h.Create)
	r.POST("/orders/estimate", h.Estimate)
	r.GET("/orders/:id", h.Get)
	r.POST("/orders/:id/schedule", h.Schedule)
	r.POST("/orders/:id/install", h.Install)
	r.POST("/orders/:id/cancel", h.Cancel)
	r.GET("/orders/installs", h.ListInstalls)
	r.GET("/reps/:repId/orders", h.ListByRep)
}

// Create handles POST /v1/orders
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body",
		})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "create_failed"
		if errors.Is(err, ErrInvalidRequest) {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// Get handles GET /v1/orders/:id
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")

	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListByRep handles GET /v1/reps/:repId/orders?limit=&cursor=
func (h *Handler) ListByRep(c *gin.Context) {
	repID := c.Param("repId")
	limit := parseLimit(c, 50, 200)

	after, err := pagination.Decode(c.Query("cursor"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid cursor"})
		return
	}

	orders, next, hasMore, err := h.service.ListByRep(c.Request.Context(), repID, after, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	resp := gin.H{"orders": orders, "count": len(orders), "hasMore": hasMore}
	if hasMore {
		resp["nextCursor"] = next
	}
	c.JSON(http.StatusOK, resp)
}

// ListInstalls handles GET /v1/orders/installs?from=...&to=...
func (h *Handler) ListInstalls(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from", time.Now())
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to", from.AddDate(0, 0, 7))
	if !ok {
		return
	}

	orders, err := h.service.ListInstalls(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// Schedule handles POST /v1/orders/:id/schedule
func (h *Handler) Schedule(c *gin.Context) {
	id := c.Param("id")

	var req ScheduleInstallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	order, err := h.service.ScheduleInstall(c.Request.Context(), id, req.InstallAt)
	if err != nil {
		h.transitionError(c, err, "schedule_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Install handles POST /v1/orders/:id/install
func (h *Handler) Install(c *gin.Context) {
	id := c.Param("id")

	order, err := h.service.MarkInstalled(c.Request.Context(), id)
	if err != nil {
		h.transitionError(c, err, "install_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Cancel handles POST /v1/orders/:id/cancel
func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")

	order, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.transitionError(c, err, "cancel_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Estimate handles POST /v1/orders/estimate
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body"})
		return
	}

	estimate, tier := h.service.Estimate(req)
	c.JSON(http.StatusOK, gin.H{"estimate": estimate, "tier": tier})
}

func (h *Handler) transitionError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	code := fallback
	switch {
	case errors.Is(err, ErrOrderNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, ErrOrderTerminal):
		status = http.StatusConflict
		code = "order_terminal"
	case errors.Is(err, ErrInvalidTransition):
		status = http.StatusConflict
		code = "invalid_transition"
	}
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}

func parseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
			if limit > maxLimit {
				limit = maxLimit
			}
		}
	}
	return limit
}

func parseTimeQuery(c *gin.Context, key string, fallback time.Time) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return fallback, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": key + " must be RFC3339",
		})
		return time.Time{}, false
	}
	return t, true
}
