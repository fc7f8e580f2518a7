// internal/ads/models.go
package ads

import (
	"database/sql"
	"time"
)

// Advertisement is a sponsored content row. start_date/end_date are stored
// but deliberately not consulted by the feed query; only is_active gates
// delivery.
type Advertisement struct {
	ID        string       `json:"id" db:"id"`
	Title     string       `json:"title" db:"title"`
	MediaType string       `json:"media_type" db:"media_type"`
	MediaURL  string       `json:"media_url" db:"media_url"`
	AdType    string       `json:"ad_type" db:"ad_type"`
	IsActive  sql.NullBool `json:"-" db:"is_active"`
	StartDate sql.NullTime `json:"-" db:"start_date"`
	EndDate   sql.NullTime `json:"-" db:"end_date"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// adJSON is the wire shape; nullable columns become plain JSON nulls
type adJSON struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	MediaType string  `json:"media_type"`
	MediaURL  string  `json:"media_url"`
	AdType    string  `json:"ad_type"`
	IsActive  bool    `json:"is_active"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	CreatedAt string  `json:"created_at"`
}

// CreateAdRequest carries the multipart form fields of an ad upload
type CreateAdRequest struct {
	Title     string `validate:"required,max=255"`
	AdType    string `validate:"required,oneof=banner in_stream"`
	StartDate string
	EndDate   string
}

// ListFilter narrows GET /api/ads results
type ListFilter struct {
	Active *bool
	AdType string
}
