// internal/users/routes.go

package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/localfy/localfy-backend/internal/auth"
)

// RegisterRoutes registers all user profile routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/api/v1/profile", handler.GetMyProfile)
		r.Get("/api/v1/users/{id}/profile", handler.GetUserProfile)

		r.Put("/api/v1/profile/preferences", handler.UpdatePreferences)
		r.Put("/api/v1/profile/location", handler.UpdateLocation)
	})
}
