// internal/dateideas/handlers.go

package dateideas

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/localfy/localfy-backend/internal/common/utils"
	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/users"
)

// Handler handles date idea HTTP requests
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateDateIdea adds a new date idea owned by the caller
func (h *Handler) CreateDateIdea(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto CreateDateIdeaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if (dto.Lat == nil) != (dto.Lng == nil) {
		utils.RespondWithError(w, http.StatusBadRequest, "Both lat and lng are required for a location")
		return
	}

	idea, err := h.service.Create(r.Context(), userID, &dto)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create date idea")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, idea)
}

// GetDateIdea returns a single date idea
func (h *Handler) GetDateIdea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	idea, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrIdeaNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Date idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get date idea")
		return
	}

	utils.RespondWithData(w, http.StatusOK, idea)
}

// ListDateIdeas returns recent date ideas
func (h *Handler) ListDateIdeas(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	ideas, err := h.service.List(r.Context(), limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list date ideas")
		return
	}

	utils.RespondWithData(w, http.StatusOK, ideas)
}

// RateDateIdea records a like or dislike from the caller
func (h *Handler) RateDateIdea(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)
	ideaID := mux.Vars(r)["id"]

	var dto RateDateIdeaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Rate(r.Context(), userID, ideaID, dto.Rating); err != nil {
		if errors.Is(err, ErrIdeaNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Date idea not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record rating")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Rating recorded")
}

// GetRecommendations returns personalized date idea recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)
	limit := queryInt(r, "limit", 0)

	recommendations, err := h.service.Recommend(r.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get recommendations")
		return
	}

	utils.RespondWithData(w, http.StatusOK, recommendations)
}

// GetNearbyIdeas returns ideas within a distance of the caller's location.
// Optional lat/lng query parameters override the stored location.
func (h *Handler) GetNearbyIdeas(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)
	maxKm := queryFloat(r, "max_km", 0)

	var origin *geo.Coordinates
	if r.URL.Query().Has("lat") && r.URL.Query().Has("lng") {
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid coordinates")
			return
		}
		origin = geo.NewCoordinates(lat, lng)
	}

	ideas, err := h.service.Nearby(r.Context(), userID, origin, maxKm)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get nearby ideas")
		return
	}

	utils.RespondWithData(w, http.StatusOK, ideas)
}

// GetMatchReason explains why an idea suits the caller
func (h *Handler) GetMatchReason(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)
	ideaID := mux.Vars(r)["id"]

	reason, err := h.service.MatchReason(r.Context(), userID, ideaID)
	if err != nil {
		if errors.Is(err, ErrIdeaNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Date idea not found")
			return
		}
		if errors.Is(err, users.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get match reason")
		return
	}

	utils.RespondWithData(w, http.StatusOK, map[string]string{"reason": reason})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}
