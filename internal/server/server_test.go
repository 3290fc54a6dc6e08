package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testConfig returns a minimal config for testing
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Port = "0"
	cfg.LogLevel = "error"
	return cfg
}

// newTestServer creates a server with in-memory stores
func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testConfig())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Health endpoint tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", resp["status"])
	}
}

func TestLivenessEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health/live", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestReadinessEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health/ready", nil)
	s.router.ServeHTTP(w, req)

	// Server hasn't called Run() so ready is false
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 (not ready), got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Route registration tests
// ---------------------------------------------------------------------------

func TestCoreRoutesRegistered(t *testing.T) {
	s := newTestServer(t)

	routes := s.router.Routes()
	expected := []string{
		"GET:/health",
		"GET:/health/live",
		"GET:/health/ready",
		"GET:/metrics",
		"GET:/ws",
		"POST:/v1/orders",
		"POST:/v1/orders/estimate",
		"GET:/v1/orders/:id",
		"POST:/v1/orders/:id/schedule",
		"POST:/v1/orders/:id/install",
		"POST:/v1/orders/:id/cancel",
		"GET:/v1/orders/installs",
		"GET:/v1/reps/:repId/orders",
		"GET:/v1/reps/:repId/earnings",
		"GET:/v1/reps/:repId/earnings/next-tier",
		"GET:/v1/reps/:repId/earnings/tier",
		"POST:/v1/reps/:repId/goals",
		"GET:/v1/reps/:repId/goals",
		"GET:/v1/reps/:repId/goals/:period/progress",
		"PUT:/v1/goals/:id",
		"DELETE:/v1/goals/:id",
		"POST:/v1/reps/:repId/reminders",
		"GET:/v1/reps/:repId/reminders",
		"GET:/v1/reminders/:id",
		"POST:/v1/reminders/:id/complete",
		"DELETE:/v1/reminders/:id",
		"GET:/v1/taxes/:state",
	}

	routeSet := make(map[string]bool)
	for _, route := range routes {
		routeSet[route.Method+":"+route.Path] = true
	}

	for _, e := range expected {
		if !routeSet[e] {
			t.Errorf("Route %s not registered", e)
		}
	}
}

// ---------------------------------------------------------------------------
// End-to-end order flow through the wired server
// ---------------------------------------------------------------------------

func TestOrderFlowThroughServer(t *testing.T) {
	s := newTestServer(t)

	body := `{"repId":"rep-1","customerName":"Hilltop Bakery","hasInternet":true,"monthlyTotal":99.99}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Order.ID == "" {
		t.Fatal("Expected order ID in response")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/v1/reps/rep-1/earnings", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for earnings, got %d: %s", w.Code, w.Body.String())
	}
}

// ---------------------------------------------------------------------------
// Middleware tests
// ---------------------------------------------------------------------------

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}

	// Existing request IDs are propagated
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "lb-12345")
	s.router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "lb-12345" {
		t.Errorf("Expected propagated request ID, got %q", got)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 32

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	body := `{"repId":"rep-1","customerName":"` + strings.Repeat("x", 128) + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized body, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// 404 test
// ---------------------------------------------------------------------------

func TestNotFoundRoute(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/nonexistent", nil)
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
