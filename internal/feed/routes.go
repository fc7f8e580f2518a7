// internal/feed/routes.go
package feed

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the feed routes on the router. The feed is a
// public surface: no authentication required to read or interact.
func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/feed", handler.GetFeed).Methods("GET")
	api.HandleFunc("/feed/{content_id}/interact", handler.Interact).Methods("POST")
}
