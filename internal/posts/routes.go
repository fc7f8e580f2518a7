// internal/posts/routes.go
package posts

import (
	"github.com/gorilla/mux"

	"github.com/bigteamhq/bigteam-backend/internal/auth"
)

// RegisterRoutes mounts post routes on the router
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/posts/upload", handler.UploadPost).Methods("POST")
	api.HandleFunc("/posts", handler.ListPosts).Methods("GET")
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods("GET")
	api.HandleFunc("/posts/{id}/publish", handler.TogglePublished).Methods("PATCH")
	api.HandleFunc("/posts/{id}", handler.DeletePost).Methods("DELETE")
}
