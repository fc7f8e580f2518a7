// internal/ads/routes.go
package ads

import (
	"github.com/gorilla/mux"

	"github.com/bigteamhq/bigteam-backend/internal/auth"
)

// RegisterRoutes mounts advertisement routes on the router. Ad management
// is an admin-only surface.
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)

	api.HandleFunc("/ads", handler.CreateAd).Methods("POST")
	api.HandleFunc("/ads", handler.ListAds).Methods("GET")
	api.HandleFunc("/ads/{id}", handler.DeleteAd).Methods("DELETE")
	api.HandleFunc("/ads/{id}/toggle", handler.ToggleAd).Methods("PATCH")
}
