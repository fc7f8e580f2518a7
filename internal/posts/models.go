// internal/posts/models.go
package posts

import (
	"database/sql"
	"time"
)

// Post is a content row. Counter columns are only ever mutated through
// atomic increments (see internal/feed).
type Post struct {
	ID           string         `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Content      string         `json:"content" db:"content"`
	MediaType    string         `json:"media_type" db:"media_type"`
	MediaURL     string         `json:"media_url" db:"media_url"`
	ThumbnailURL sql.NullString `json:"-" db:"thumbnail_url"`
	CreatedBy    sql.NullString `json:"-" db:"created_by"`
	IsPublished  sql.NullBool   `json:"-" db:"is_published"`
	LikesCount   int            `json:"likes_count" db:"likes_count"`
	SharesCount  int            `json:"shares_count" db:"shares_count"`
	ViewsCount   int            `json:"views_count" db:"views_count"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// postJSON is the wire shape of a post; nullable columns flatten to
// plain values.
type postJSON struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedBy    string `json:"created_by,omitempty"`
	IsPublished  bool   `json:"is_published"`
	LikesCount   int    `json:"likes_count"`
	SharesCount  int    `json:"shares_count"`
	ViewsCount   int    `json:"views_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CreatePostRequest carries the multipart form fields of an upload
type CreatePostRequest struct {
	Title        string `validate:"required,max=255"`
	Content      string
	MediaType    string `validate:"required,oneof=video image ad"`
	CreatedBy    string `validate:"required"`
	ThumbnailURL string
}
