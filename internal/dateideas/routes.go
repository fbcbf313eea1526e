package dateideas

import (
	"github.com/gorilla/mux"

	"github.com/localfy/localfy-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/date-ideas").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Date ideas
	api.HandleFunc("", handler.CreateDateIdea).Methods("POST")
	api.HandleFunc("", handler.ListDateIdeas).Methods("GET")

	// Discovery
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")
	api.HandleFunc("/nearby", handler.GetNearbyIdeas).Methods("GET")

	api.HandleFunc("/{id}", handler.GetDateIdea).Methods("GET")
	api.HandleFunc("/{id}/rate", handler.RateDateIdea).Methods("POST")
	api.HandleFunc("/{id}/reason", handler.GetMatchReason).Methods("GET")
}
