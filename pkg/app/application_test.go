package app

import (
	"encoding/json"
	"househunt/internal/health"
	"househunt/pkg/config"
	apperrors "househunt/pkg/errors"
	"househunt/pkg/logger"
	"househunt/pkg/middleware"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users/login", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	router.POST("/echo", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
	})
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	cfg := &config.Config{
		Port:               "0",
		Log:                logger.Discard(),
		CORSAllowedOrigins: []string{"*"},
		RateLimitRequests:  2,
		RateLimitWindow:    time.Minute,
		RequestTimeout:     time.Second,
		IdempotencyTTL:     time.Minute,
		MaxRequestSize:     1024,
		ShutdownTimeout:    time.Second,
	}
	a := NewApplication(cfg)
	a.SetApp(health.NewStatusHandler(cfg.Log), echoHandler{})
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func TestApplication_Root(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "server is running" {
		t.Fatalf("unexpected root response %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("expected a request id header")
	}
}

func TestApplication_HealthBypassesAppStack(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a database, got %d", rec.Code)
	}
}

func TestApplication_NotFoundIsJSON(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Code != apperrors.CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", body.Code)
	}
}

func TestApplication_RateLimitsLogin(t *testing.T) {
	a := newTestApp(t)

	var last int
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.9:5555"
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected third login attempt to be limited, got %d", last)
	}

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.9:5555"
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("non-credential routes must not be limited, got %d", rec.Code)
	}
}

func TestApplication_RejectsNonJSONPost(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}

func TestApplication_CORS(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", got)
	}
}
