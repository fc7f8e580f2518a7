// internal/posts/repository.go
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrPostNotFound is returned when a post id does not exist
var ErrPostNotFound = errors.New("post not found")

// Repository persists posts
type Repository interface {
	CreatePost(ctx context.Context, post *Post) error
	GetPostByID(ctx context.Context, id string) (*Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	TogglePublished(ctx context.Context, id string) (bool, error)
	DeletePost(ctx context.Context, id string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a post repository backed by Postgres
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreatePost(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (title, content, media_type, media_url, thumbnail_url, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_published, likes_count, shares_count, views_count, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.MediaType, post.MediaURL, post.ThumbnailURL, post.CreatedBy).
		Scan(&post.ID, &post.IsPublished, &post.LikesCount, &post.SharesCount,
			&post.ViewsCount, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetPostByID(ctx context.Context, id string) (*Post, error) {
	var post Post
	query := `
		SELECT id, title, content, media_type, media_url, thumbnail_url, created_by,
		       is_published, likes_count, shares_count, views_count, created_at, updated_at
		FROM posts WHERE id = $1`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return &post, nil
}

func (r *postgresRepository) ListPosts(ctx context.Context) ([]Post, error) {
	posts := []Post{}
	query := `
		SELECT id, title, content, media_type, media_url, thumbnail_url, created_by,
		       is_published, likes_count, shares_count, views_count, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC, id`

	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) TogglePublished(ctx context.Context, id string) (bool, error) {
	var published bool
	query := `
		UPDATE posts
		SET is_published = NOT COALESCE(is_published, false), updated_at = NOW()
		WHERE id = $1
		RETURNING is_published`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&published)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrPostNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle post: %w", err)
	}
	return published, nil
}

func (r *postgresRepository) DeletePost(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrPostNotFound
	}
	return nil
}
