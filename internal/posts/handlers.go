// internal/posts/handlers.go
package posts

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bigteamhq/bigteam-backend/internal/auth"
	"github.com/bigteamhq/bigteam-backend/internal/common/utils"
	"github.com/bigteamhq/bigteam-backend/internal/storage"
)

// Handler exposes post endpoints
type Handler struct {
	service       *Service
	maxUploadSize int64
}

// NewHandler creates a new post handler
func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{service: service, maxUploadSize: maxUploadSize}
}

// UploadPost handles POST /api/posts/upload (multipart form)
func (h *Handler) UploadPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "No selected file")
		return
	}

	req := &CreatePostRequest{
		Title:        r.FormValue("title"),
		Content:      r.FormValue("content"),
		MediaType:    r.FormValue("media_type"),
		ThumbnailURL: r.FormValue("thumbnail_url"),
	}

	// The uploader is the authenticated user
	if userID, ok := auth.GetUserIDFromContext(r.Context()); ok {
		req.CreatedBy = userID
	}

	post, err := h.service.UploadPost(r.Context(), file, header, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUpload):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrTypeNotAllowed):
			utils.RespondWithError(w, http.StatusBadRequest, "File type not allowed")
		case errors.Is(err, storage.ErrFileTooLarge):
			utils.RespondWithError(w, http.StatusBadRequest, "File too large")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload post")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post uploaded successfully",
		"post":    toJSON(post),
	})
}

// ListPosts handles GET /api/posts
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list posts")
		return
	}

	out := make([]postJSON, 0, len(posts))
	for i := range posts {
		out = append(out, toJSON(&posts[i]))
	}

	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GetPost handles GET /api/posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get post")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toJSON(post))
}

// TogglePublished handles PATCH /api/posts/{id}/publish
func (h *Handler) TogglePublished(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	published, err := h.service.TogglePublished(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Status updated successfully",
		"is_published": published,
	})
}

// DeletePost handles DELETE /api/posts/{id}
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Post deleted successfully")
}

func toJSON(post *Post) postJSON {
	return postJSON{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		MediaType:    post.MediaType,
		MediaURL:     post.MediaURL,
		ThumbnailURL: post.ThumbnailURL.String,
		CreatedBy:    post.CreatedBy.String,
		IsPublished:  post.IsPublished.Valid && post.IsPublished.Bool,
		LikesCount:   post.LikesCount,
		SharesCount:  post.SharesCount,
		ViewsCount:   post.ViewsCount,
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    post.UpdatedAt.Format(time.RFC3339),
	}
}
