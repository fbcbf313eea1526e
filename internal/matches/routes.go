package matches

import (
	"github.com/gorilla/mux"

	"github.com/localfy/localfy-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Discovery
	api.HandleFunc("/discover", handler.DiscoverMatches).Methods("GET")
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// Matches
	api.HandleFunc("", handler.GetMatches).Methods("GET")
	api.HandleFunc("/{userId}", handler.CreateMatch).Methods("POST")
	api.HandleFunc("/{id}/unmatch", handler.Unmatch).Methods("POST")
}
