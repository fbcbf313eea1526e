// internal/matches/handlers.go

package matches

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/localfy/localfy-backend/internal/common/utils"
	"github.com/localfy/localfy-backend/internal/users"
)

// Handler handles matching HTTP requests
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// DiscoverMatches returns scored potential matches for the caller
func (h *Handler) DiscoverMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	candidates, err := h.service.Discover(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to discover matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, candidates)
}

// GetCompatibility returns the detailed pairwise report with another user
func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	compatibility, err := h.service.GetCompatibility(r.Context(), userID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotMatchSelf):
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot check compatibility with yourself")
		case errors.Is(err, users.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get compatibility")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, compatibility)
}

// CreateMatch confirms a match with another user
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	otherID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	match, err := h.service.CreateMatch(r.Context(), userID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotMatchSelf):
			utils.RespondWithError(w, http.StatusBadRequest, "Cannot match with yourself")
		case errors.Is(err, ErrAlreadyMatched):
			utils.RespondWithError(w, http.StatusConflict, "Match already exists")
		case errors.Is(err, ErrScoreTooLow):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Compatibility score too low to match")
		case errors.Is(err, users.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create match")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, match)
}

// GetMatches lists the caller's active matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matches, err := h.service.ListMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list matches")
		return
	}

	utils.RespondWithData(w, http.StatusOK, matches)
}

// Unmatch dissolves one of the caller's matches
func (h *Handler) Unmatch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)
	matchID := mux.Vars(r)["id"]

	if err := h.service.Unmatch(r.Context(), userID, matchID); err != nil {
		switch {
		case errors.Is(err, ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, "Match does not belong to you")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unmatch")
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Unmatched")
}
