package health

import (
	"context"
	httputil "househunt/pkg/http"
	"househunt/pkg/logger"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	readyTimeout = 2 * time.Second
	statusText   = "server is running"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type HealthHandler struct {
	db  Pinger
	log *logger.Logger
}

// NewHealthHandler builds the liveness and readiness probes. A nil db makes
// /ready report unavailable.
func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.ping(r.Context()); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unavailable",
			Database: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) ping(ctx context.Context) error {
	if h.db == nil {
		return errNoDatabase
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return h.db.Ping(ctx, readpref.Primary())
}

// StatusHandler serves the plain-text banner at the API root.
type StatusHandler struct {
	log *logger.Logger
}

func NewStatusHandler(log *logger.Logger) *StatusHandler {
	return &StatusHandler{log: log}
}

func (h *StatusHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Status)
}

func (h *StatusHandler) Status(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	if err := httputil.WriteText(w, http.StatusOK, statusText); err != nil {
		h.log.Error("failed to write text response", "handler", "Status", "operation", "WriteText", "error", err)
	}
}
