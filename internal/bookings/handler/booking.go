package handler

import (
	"househunt/internal/bookings/service"
	"househunt/pkg/auth"
	apperrors "househunt/pkg/errors"
	httputil "househunt/pkg/http"
	"househunt/pkg/logger"
	"househunt/pkg/middleware"
	"househunt/pkg/model"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const (
	renterSegment      = "renter"
	renterCountSegment = "renter-number"
)

type BookingHandler struct {
	service  service.BookingService
	verifier auth.Verifier
	log      *logger.Logger
}

func NewBookingHandler(service service.BookingService, verifier auth.Verifier, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

// RegisterRoutes mounts the booking routes. /bookings/:email and the renter
// lookups share the :key wildcard and are told apart by depth.
func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	requireAuth := middleware.RequireAuth(h.verifier, h.log)
	requireOwner := middleware.RequireOwner("key")

	router.POST("/bookings", h.Create)
	router.GET("/bookings/:key", requireAuth(requireOwner(h.GetByOwner)))
	router.GET("/bookings/:key/:email", h.getRenterResource)
	router.DELETE("/bookings/:id", h.Cancel)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateBookingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, httputil.InsertResult{Acknowledged: true, InsertedID: booking.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.Cancel(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.GetByOwner(r.Context(), ps.ByName("key"))
	if err != nil {
		h.writeError(w, "GetByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) getRenterResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("key") {
	case renterSegment:
		h.GetByRenter(w, r, ps)
	case renterCountSegment:
		h.CountByRenter(w, r, ps)
	default:
		h.writeError(w, "GetRenterResource", apperrors.NotFound("Route"))
	}
}

func (h *BookingHandler) GetByRenter(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.GetByRenter(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "GetByRenter", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByRenter", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) CountByRenter(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	count, err := h.service.CountByRenter(r.Context(), ps.ByName("email"))
	if err != nil {
		h.writeError(w, "CountByRenter", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.BookingCountResponse{BookingCount: count}); err != nil {
		h.log.Error("failed to write success response", "handler", "CountByRenter", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
