// internal/ads/service.go
package ads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/bigteamhq/bigteam-backend/internal/common/utils"
	"github.com/bigteamhq/bigteam-backend/internal/storage"
)

// ErrInvalidAd is returned for bad ad creation requests
var ErrInvalidAd = errors.New("invalid advertisement request")

// MediaStorage is the slice of the storage service ads need
type MediaStorage interface {
	UploadFile(file multipart.File, header *multipart.FileHeader, prefix string) (string, error)
	DeleteFile(fileURL string) error
}

// Service holds advertisement business logic
type Service struct {
	repo    Repository
	storage MediaStorage
}

// NewService creates a new ad service
func NewService(repo Repository, storage MediaStorage) *Service {
	return &Service{repo: repo, storage: storage}
}

// CreateAd stores the media file and inserts the ad row. Ads are active on
// creation; the schedule dates are recorded but do not gate delivery.
func (s *Service) CreateAd(ctx context.Context, file multipart.File, header *multipart.FileHeader, req *CreateAdRequest) (*Advertisement, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAd, err.Error())
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date", ErrInvalidAd)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date", ErrInvalidAd)
	}

	mediaURL, err := s.storage.UploadFile(file, header, "ad")
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	ad := &Advertisement{
		Title:     req.Title,
		MediaType: storage.MediaTypeFor(header.Filename),
		MediaURL:  mediaURL,
		AdType:    req.AdType,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if err := s.repo.CreateAd(ctx, ad); err != nil {
		if delErr := s.storage.DeleteFile(mediaURL); delErr != nil {
			log.Printf("failed to clean up uploaded media %s: %v", mediaURL, delErr)
		}
		return nil, err
	}

	return ad, nil
}

// ListAds returns ads matching the filter, newest first
func (s *Service) ListAds(ctx context.Context, filter ListFilter) ([]Advertisement, error) {
	return s.repo.ListAds(ctx, filter)
}

// ToggleActive flips an ad's active flag and returns the new value
func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	return s.repo.ToggleActive(ctx, id)
}

// DeleteAd removes the row, then best-effort deletes the stored media
func (s *Service) DeleteAd(ctx context.Context, id string) error {
	ad, err := s.repo.GetAdByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAd(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(ad.MediaURL); err != nil {
		log.Printf("failed to delete media for ad %s: %v", id, err)
	}
	return nil
}

// parseDate accepts empty, date-only or RFC3339 values
func parseDate(value string) (sql.NullTime, error) {
	if value == "" {
		return sql.NullTime{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return sql.NullTime{Time: t, Valid: true}, nil
		}
	}
	return sql.NullTime{}, fmt.Errorf("unparseable date %q", value)
}
