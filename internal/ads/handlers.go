// internal/ads/handlers.go
package ads

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bigteamhq/bigteam-backend/internal/common/utils"
	"github.com/bigteamhq/bigteam-backend/internal/storage"
)

// Handler exposes advertisement endpoints
type Handler struct {
	service       *Service
	maxUploadSize int64
}

// NewHandler creates a new ad handler
func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{service: service, maxUploadSize: maxUploadSize}
}

// CreateAd handles POST /api/ads (multipart form)
func (h *Handler) CreateAd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "No file selected")
		return
	}

	req := &CreateAdRequest{
		Title:     r.FormValue("title"),
		AdType:    r.FormValue("ad_type"),
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
	}
	if req.AdType == "" {
		req.AdType = "banner"
	}

	ad, err := h.service.CreateAd(r.Context(), file, header, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAd):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrTypeNotAllowed):
			utils.RespondWithError(w, http.StatusBadRequest, "File type not allowed")
		case errors.Is(err, storage.ErrFileTooLarge):
			utils.RespondWithError(w, http.StatusBadRequest, "File too large")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create advertisement")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Advertisement created successfully",
		"ad":      toJSON(ad),
	})
}

// ListAds handles GET /api/ads with optional active/type filters
func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	var filter ListFilter

	if active := r.URL.Query().Get("active"); active != "" {
		val := active == "true"
		filter.Active = &val
	}
	filter.AdType = r.URL.Query().Get("type")

	adsList, err := h.service.ListAds(r.Context(), filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list advertisements")
		return
	}

	out := make([]adJSON, 0, len(adsList))
	for i := range adsList {
		out = append(out, toJSON(&adsList[i]))
	}

	utils.RespondWithJSON(w, http.StatusOK, out)
}

// ToggleAd handles PATCH /api/ads/{id}/toggle
func (h *Handler) ToggleAd(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	active, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAdNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Advertisement not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update advertisement")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Status updated successfully",
		"is_active": active,
	})
}

// DeleteAd handles DELETE /api/ads/{id}
func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteAd(r.Context(), id); err != nil {
		if errors.Is(err, ErrAdNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Advertisement not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete advertisement")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Advertisement deleted successfully")
}

func toJSON(ad *Advertisement) adJSON {
	out := adJSON{
		ID:        ad.ID,
		Title:     ad.Title,
		MediaType: ad.MediaType,
		MediaURL:  ad.MediaURL,
		AdType:    ad.AdType,
		IsActive:  !ad.IsActive.Valid || ad.IsActive.Bool,
		CreatedAt: ad.CreatedAt.Format(time.RFC3339),
	}
	if ad.StartDate.Valid {
		s := ad.StartDate.Time.Format(time.RFC3339)
		out.StartDate = &s
	}
	if ad.EndDate.Valid {
		s := ad.EndDate.Time.Format(time.RFC3339)
		out.EndDate = &s
	}
	return out
}
