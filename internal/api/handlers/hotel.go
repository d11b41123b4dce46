package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staylist/staylist-backend/internal/api/httpx"
	"github.com/staylist/staylist-backend/internal/models"
	repo "github.com/staylist/staylist-backend/internal/repository"
	"github.com/staylist/staylist-backend/internal/services"
)

type HotelHandler struct {
	svc *services.HotelService
}

func NewHotelHandler(svc *services.HotelService) *HotelHandler {
	return &HotelHandler{svc: svc}
}

type createHotelReq struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	CostPerNight   float64 `json:"costPerNight"`
	AvailableRooms int     `json:"availableRooms"`
	Image          string  `json:"image"`
	AverageRating  float64 `json:"averageRating"`
	UserID         string  `json:"userId"`
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createHotelReq
	if err := decode(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Bad Request - Invalid JSON")
		return
	}
	if req.Name == "" || req.Address == "" || req.CostPerNight == 0 ||
		req.AvailableRooms == 0 || req.Image == "" || req.UserID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	hotel, err := h.svc.Create(r.Context(), models.Hotel{
		Name:           req.Name,
		Address:        req.Address,
		CostPerNight:   req.CostPerNight,
		AvailableRooms: req.AvailableRooms,
		Image:          req.Image,
		AverageRating:  req.AverageRating,
		UserID:         req.UserID,
	})
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, r, "create hotel", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"hotel":   hotel,
		"status":  http.StatusCreated,
		"message": "Hotel created successfully",
	})
}

func (h *HotelHandler) Get(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Hotel not found")
			return
		}
		h.serverError(w, r, "get hotel", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"hotel": hotel, "status": http.StatusOK})
}

func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	res, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		h.serverError(w, r, "list hotels", err)
		return
	}
	if res.Hotels == nil {
		res.Hotels = []models.Hotel{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"hotels":      res.Hotels,
		"totalPages":  res.TotalPages,
		"currentPage": res.CurrentPage,
		"limit":       res.Limit,
		"status":      http.StatusOK,
	})
}

func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.HotelPatch
	if err := decode(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Bad Request - Invalid JSON")
		return
	}

	hotel, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Hotel not found")
		case errors.Is(err, services.ErrValidation):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			h.serverError(w, r, "update hotel", err)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"hotel": hotel, "status": http.StatusOK})
}

func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Hotel not found")
			return
		}
		h.serverError(w, r, "delete hotel", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Hotel deleted successfully",
		"status":  http.StatusOK,
	})
}

func (h *HotelHandler) Search(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.svc.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			httpx.WriteError(w, http.StatusBadRequest, "Query parameter is required")
			return
		}
		h.serverError(w, r, "search hotels", err)
		return
	}
	if len(hotels) == 0 {
		httpx.WriteError(w, http.StatusNotFound, "No hotels found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"hotels": hotels, "status": http.StatusOK})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func (h *HotelHandler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op, "err", err, "path", r.URL.Path)
	httpx.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}
