// internal/posts/service.go
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/bigteamhq/bigteam-backend/internal/common/utils"
)

// ErrInvalidUpload is returned for bad upload requests
var ErrInvalidUpload = errors.New("invalid upload request")

// MediaStorage is the slice of the storage service posts need
type MediaStorage interface {
	UploadFile(file multipart.File, header *multipart.FileHeader, prefix string) (string, error)
	DeleteFile(fileURL string) error
}

// Service holds post business logic
type Service struct {
	repo    Repository
	storage MediaStorage
}

// NewService creates a new post service
func NewService(repo Repository, storage MediaStorage) *Service {
	return &Service{repo: repo, storage: storage}
}

// UploadPost stores the media file and inserts the post row. Posts start
// unpublished; the feed only picks them up once published.
func (s *Service) UploadPost(ctx context.Context, file multipart.File, header *multipart.FileHeader, req *CreatePostRequest) (*Post, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUpload, err.Error())
	}

	mediaURL, err := s.storage.UploadFile(file, header, req.MediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	post := &Post{
		Title:     req.Title,
		Content:   req.Content,
		MediaType: req.MediaType,
		MediaURL:  mediaURL,
		CreatedBy: sql.NullString{String: req.CreatedBy, Valid: req.CreatedBy != ""},
	}
	if req.ThumbnailURL != "" {
		post.ThumbnailURL = sql.NullString{String: req.ThumbnailURL, Valid: true}
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		// Orphaned object, reclaim it; a failure here is only logged.
		if delErr := s.storage.DeleteFile(mediaURL); delErr != nil {
			log.Printf("failed to clean up uploaded media %s: %v", mediaURL, delErr)
		}
		return nil, err
	}

	return post, nil
}

// GetPost fetches a single post
func (s *Service) GetPost(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetPostByID(ctx, id)
}

// ListPosts lists all posts, newest first (dashboard view)
func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	return s.repo.ListPosts(ctx)
}

// TogglePublished flips a post's published flag and returns the new value
func (s *Service) TogglePublished(ctx context.Context, id string) (bool, error) {
	return s.repo.TogglePublished(ctx, id)
}

// DeletePost removes the row, then best-effort deletes the stored media
func (s *Service) DeletePost(ctx context.Context, id string) error {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(post.MediaURL); err != nil {
		log.Printf("failed to delete media for post %s: %v", id, err)
	}
	return nil
}
