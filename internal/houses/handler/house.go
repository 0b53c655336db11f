package handler

import (
	"househunt/internal/houses/query"
	"househunt/internal/houses/service"
	"househunt/pkg/auth"
	"househunt/pkg/config"
	apperrors "househunt/pkg/errors"
	httputil "househunt/pkg/http"
	"househunt/pkg/logger"
	"househunt/pkg/middleware"
	"househunt/pkg/model"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const editSegment = "edit"

type HouseHandler struct {
	service  service.HouseService
	verifier auth.Verifier
	cfg      *config.Config
	log      *logger.Logger
}

func NewHouseHandler(service service.HouseService, verifier auth.Verifier, cfg *config.Config) *HouseHandler {
	return &HouseHandler{
		service:  service,
		verifier: verifier,
		cfg:      cfg,
		log:      cfg.Log,
	}
}

// RegisterRoutes mounts the listing routes. httprouter cannot hold a static
// and a wildcard segment side by side, so /houses/:email and /houses/edit/:id
// share the :key wildcard and are told apart by depth.
func (h *HouseHandler) RegisterRoutes(router *httprouter.Router) {
	requireAuth := middleware.RequireAuth(h.verifier, h.log)
	requireOwner := middleware.RequireOwner("key")

	router.POST("/houses", h.Create)
	router.GET("/allHouses", h.GetAll)
	router.GET("/houses", h.Search)
	router.GET("/houses/:key", requireAuth(requireOwner(h.GetByOwner)))
	router.GET("/houses/:key/:id", h.getSubresource)
	router.PUT("/houses/:id", h.Update)
	router.DELETE("/houses/:id", requireAuth(h.Delete))
}

func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreateHouseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	house, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, httputil.InsertResult{Acknowledged: true, InsertedID: house.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *HouseHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	houses, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, houses); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

// Search serves GET /houses. limit defaults to DEFAULT_PAGE_SIZE and is capped
// at MAX_PAGE_SIZE; X-Total-Count carries the size of the whole filtered set.
func (h *HouseHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params := query.Parse(r.URL.Query(), h.cfg)

	houses, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WritePage(w, houses, total); err != nil {
		h.log.Error("failed to write page response", "handler", "Search", "operation", "WritePage", "error", err)
	}
}

func (h *HouseHandler) GetByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	houses, err := h.service.GetByOwner(r.Context(), ps.ByName("key"))
	if err != nil {
		h.writeError(w, "GetByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, houses); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HouseHandler) getSubresource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("key") != editSegment {
		h.writeError(w, "GetByID", apperrors.NotFound("Route"))
		return
	}
	h.GetByID(w, r, ps)
}

func (h *HouseHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	house, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, house); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HouseHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.HouseUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	result, err := h.service.Update(r.Context(), ps.ByName("id"), &update)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

// Delete serves DELETE /houses/:id. Besides a valid token the caller must own
// the listing; anyone else gets 403.
func (h *HouseHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.service.Delete(r.Context(), ps.ByName("id"), identity.Email)
	if err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HouseHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
