package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staylist/staylist-backend/internal/api/httpx"
	"github.com/staylist/staylist-backend/internal/models"
	repo "github.com/staylist/staylist-backend/internal/repository"
	"github.com/staylist/staylist-backend/internal/services"
)

type AuthHandler struct {
	svc *services.UserService
}

func NewAuthHandler(svc *services.UserService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerReq struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// authUser mirrors the user record plus the freshly issued pair.
type authUser struct {
	models.User
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Bad Request - Invalid JSON")
		return
	}

	res, err := h.svc.Register(r.Context(), req.Name, req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			httpx.WriteError(w, http.StatusBadRequest, "Username or Email already in use.")
		case errors.Is(err, services.ErrValidation):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, r, "register", err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"user":   authUser{User: res.User, AccessToken: res.AccessToken, RefreshToken: res.RefreshToken},
		"status": http.StatusCreated,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Bad Request - Invalid JSON")
		return
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, services.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials.")
		default:
			h.serverError(w, r, "login", err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user":   authUser{User: res.User, AccessToken: res.AccessToken, RefreshToken: res.RefreshToken},
		"status": http.StatusOK,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := decode(r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusForbidden, "Refresh token required.")
		return
	}

	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefresh) {
			httpx.WriteError(w, http.StatusForbidden, "Invalid refresh token.")
			return
		}
		h.serverError(w, r, "refresh", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.serverError(w, r, "list users", err)
		return
	}
	if len(users) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "No users found.")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users, "status": http.StatusOK})
}

func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(w, r, "get user", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": u, "status": http.StatusOK})
}

func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch services.UserPatch
	if err := decode(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Bad Request - Invalid JSON")
		return
	}

	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, repo.ErrDuplicate):
			httpx.WriteError(w, http.StatusBadRequest, "Username or Email already in use.")
		case errors.Is(err, services.ErrValidation):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, r, "update user", err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    u,
		"status":  http.StatusOK,
	})
}

func (h *AuthHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httpx.WriteError(w, http.StatusBadRequest, "Query parameter is required")
			return
		}
		h.serverError(w, r, "search users", err)
		return
	}
	if len(users) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "No users found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": users, "status": http.StatusOK})
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op, "err", err, "path", r.URL.Path)
	httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}
