// internal/feed/handlers.go
package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bigteamhq/bigteam-backend/internal/common/utils"
)

// Handler exposes the mixed feed endpoints
type Handler struct {
	service      *Service
	defaultLimit int
	maxLimit     int
}

// NewHandler creates a new feed handler
func NewHandler(service *Service, defaultLimit, maxLimit int) *Handler {
	return &Handler{service: service, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// GetFeed handles GET /api/feed?page=&limit=
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}

	limit := parseIntParam(r, "limit", h.defaultLimit)
	if limit < 1 {
		limit = h.defaultLimit
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	feedPage, err := h.service.ComposeFeed(r.Context(), page, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load feed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, feedPage)
}

// Interact handles POST /api/feed/{content_id}/interact
func (h *Handler) Interact(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["content_id"]

	var req InteractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	newCount, err := h.service.RecordInteraction(r.Context(), contentID, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInteraction):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid interaction type")
		case errors.Is(err, ErrContentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record interaction")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"new_count": newCount,
	})
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
