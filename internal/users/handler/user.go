package handler

import (
	"errors"
	userserrors "househunt/internal/users/errors"
	"househunt/internal/users/service"
	httputil "househunt/pkg/http"
	"househunt/pkg/logger"
	"househunt/pkg/model"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/jwt", h.IssueToken)
	router.POST("/users", h.Register)
	router.POST("/users/login", h.Login)
	router.GET("/users", h.GetByEmail)
	router.GET("/users/logout/:email", h.Logout)
}

func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.TokenRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "IssueToken", err)
		return
	}

	token, err := h.service.IssueToken(r.Context(), &req)
	if err != nil {
		h.writeError(w, "IssueToken", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.TokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "IssueToken", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			if writeErr := httputil.WriteJSON(w, http.StatusConflict, model.RegisterConflictResponse{IsExist: true}); writeErr != nil {
				h.log.Error("failed to write conflict response", "handler", "Register", "operation", "WriteJSON", "error", writeErr)
			}
			return
		}
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, httputil.InsertResult{Acknowledged: true, InsertedID: user.ID}); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeLoginFailure(w)
		return
	}

	token, user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, userserrors.ErrInvalidCredentials) {
			h.writeLoginFailure(w)
			return
		}
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.LoginResponse{IsLogin: true, Token: token, User: user}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := h.service.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, "GetByEmail", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Logout(r.Context(), ps.ByName("email")); err != nil {
		h.writeError(w, "Logout", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.LogoutResponse{IsLogout: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeLoginFailure(w http.ResponseWriter) {
	if err := httputil.WriteJSON(w, http.StatusUnauthorized, model.LoginResponse{IsLogin: false}); err != nil {
		h.log.Error("failed to write login failure", "handler", "Login", "operation", "WriteJSON", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
