// internal/feed/repository.go
// Content-store reads and counter increments backing the composer.

package feed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store is the content-store surface the composer and recorder depend on.
// Implemented by the Postgres repository below; tests supply fakes.
type Store interface {
	EligiblePosts(ctx context.Context) ([]ContentItem, error)
	EligibleAds(ctx context.Context) ([]ContentItem, error)
	IncrementViews(ctx context.Context, postID string) error
	IncrementCounter(ctx context.Context, postID, kind string) (int, error)
}

// Interaction kinds map onto counter columns; anything else is rejected
// before touching storage.
var counterColumns = map[string]string{
	InteractionLike:  "likes_count",
	InteractionShare: "shares_count",
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a feed store backed by Postgres
func NewPostgresRepository(db *sqlx.DB) Store {
	return &postgresRepository{db: db}
}

// contentRow matches the normalized SELECT below; nullable columns are
// defaulted here rather than leaking NULLs into the feed.
type contentRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Content      string         `db:"content"`
	MediaType    string         `db:"media_type"`
	MediaURL     string         `db:"media_url"`
	ThumbnailURL string         `db:"thumbnail_url"`
	CreatedBy    sql.NullString `db:"created_by"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	LikesCount   int            `db:"likes_count"`
	SharesCount  int            `db:"shares_count"`
	ViewsCount   int            `db:"views_count"`
	AdType       sql.NullString `db:"ad_type"`
}

// EligiblePosts returns published-or-unflagged posts, newest first. The id
// tiebreak keeps pagination reproducible when timestamps collide.
func (r *postgresRepository) EligiblePosts(ctx context.Context) ([]ContentItem, error) {
	query := `
		SELECT
			id::text AS id,
			COALESCE(title, '') AS title,
			COALESCE(content, '') AS content,
			media_type,
			media_url,
			COALESCE(thumbnail_url, media_url) AS thumbnail_url,
			created_by::text AS created_by,
			created_at,
			COALESCE(likes_count, 0) AS likes_count,
			COALESCE(shares_count, 0) AS shares_count,
			COALESCE(views_count, 0) AS views_count,
			NULL AS ad_type
		FROM posts
		WHERE is_published = true OR is_published IS NULL
		ORDER BY created_at DESC, id`

	rows := []contentRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	items := make([]ContentItem, 0, len(rows))
	for _, row := range rows {
		item := row.toItem(ContentTypePost)
		if item.CreatedBy == "" {
			item.CreatedBy = "BigTeam"
		}
		items = append(items, item)
	}
	return items, nil
}

// EligibleAds returns active-or-unflagged ads, newest first. The schedule
// columns are deliberately not part of the filter: an active ad serves
// regardless of its start/end dates.
func (r *postgresRepository) EligibleAds(ctx context.Context) ([]ContentItem, error) {
	query := `
		SELECT
			id::text AS id,
			COALESCE(title, '') AS title,
			'' AS content,
			media_type,
			media_url,
			media_url AS thumbnail_url,
			NULL AS created_by,
			created_at,
			0 AS likes_count,
			0 AS shares_count,
			0 AS views_count,
			COALESCE(ad_type, 'banner') AS ad_type
		FROM advertisements
		WHERE is_active = true OR is_active IS NULL
		ORDER BY created_at DESC, id`

	rows := []contentRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch advertisements: %w", err)
	}

	items := make([]ContentItem, 0, len(rows))
	for _, row := range rows {
		item := row.toItem(ContentTypeAd)
		item.CreatedBy = "Sponsored"
		items = append(items, item)
	}
	return items, nil
}

// IncrementViews bumps a single post's view counter. One statement per
// row; rows are never coordinated with each other.
func (r *postgresRepository) IncrementViews(ctx context.Context, postID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET views_count = views_count + 1 WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to increment views for %s: %w", postID, err)
	}
	return nil
}

// IncrementCounter atomically bumps a like/share counter and returns the
// new value. The lookup is scoped to posts, so ad ids come back as
// ErrContentNotFound.
func (r *postgresRepository) IncrementCounter(ctx context.Context, postID, kind string) (int, error) {
	column, ok := counterColumns[kind]
	if !ok {
		return 0, ErrInvalidInteraction
	}

	query := fmt.Sprintf(
		`UPDATE posts SET %s = %s + 1 WHERE id = $1 RETURNING %s`, column, column, column)

	var newCount int
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&newCount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrContentNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s for %s: %w", column, postID, err)
	}
	return newCount, nil
}

func (row contentRow) toItem(contentType string) ContentItem {
	createdAt := row.CreatedAt.Time
	if !row.CreatedAt.Valid {
		createdAt = time.Now()
	}

	return ContentItem{
		ID:           row.ID,
		Title:        row.Title,
		Content:      row.Content,
		MediaType:    row.MediaType,
		MediaURL:     row.MediaURL,
		ThumbnailURL: row.ThumbnailURL,
		CreatedBy:    row.CreatedBy.String,
		CreatedAt:    createdAt,
		LikesCount:   row.LikesCount,
		SharesCount:  row.SharesCount,
		ViewsCount:   row.ViewsCount,
		ContentType:  contentType,
		AdType:       row.AdType.String,
	}
}
