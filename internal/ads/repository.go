// internal/ads/repository.go
package ads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrAdNotFound is returned when an ad id does not exist
var ErrAdNotFound = errors.New("advertisement not found")

// Repository persists advertisements
type Repository interface {
	CreateAd(ctx context.Context, ad *Advertisement) error
	GetAdByID(ctx context.Context, id string) (*Advertisement, error)
	ListAds(ctx context.Context, filter ListFilter) ([]Advertisement, error)
	ToggleActive(ctx context.Context, id string) (bool, error)
	DeleteAd(ctx context.Context, id string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates an ad repository backed by Postgres
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateAd(ctx context.Context, ad *Advertisement) error {
	query := `
		INSERT INTO advertisements (title, media_type, media_url, ad_type, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at`

	err := r.db.QueryRowContext(ctx, query,
		ad.Title, ad.MediaType, ad.MediaURL, ad.AdType, ad.StartDate, ad.EndDate).
		Scan(&ad.ID, &ad.IsActive, &ad.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert advertisement: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetAdByID(ctx context.Context, id string) (*Advertisement, error) {
	var ad Advertisement
	query := `
		SELECT id, title, media_type, media_url, ad_type, is_active, start_date, end_date, created_at
		FROM advertisements WHERE id = $1`

	err := r.db.GetContext(ctx, &ad, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query advertisement: %w", err)
	}
	return &ad, nil
}

func (r *postgresRepository) ListAds(ctx context.Context, filter ListFilter) ([]Advertisement, error) {
	query := `
		SELECT id, title, media_type, media_url, ad_type, is_active, start_date, end_date, created_at
		FROM advertisements
		WHERE 1=1`

	var clauses []string
	var args []interface{}

	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf(" AND is_active = $%d", len(args)))
	}
	if filter.AdType != "" {
		args = append(args, filter.AdType)
		clauses = append(clauses, fmt.Sprintf(" AND ad_type = $%d", len(args)))
	}

	query += strings.Join(clauses, "") + " ORDER BY created_at DESC, id"

	ads := []Advertisement{}
	if err := r.db.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	return ads, nil
}

func (r *postgresRepository) ToggleActive(ctx context.Context, id string) (bool, error) {
	var active bool
	query := `
		UPDATE advertisements
		SET is_active = NOT COALESCE(is_active, true)
		WHERE id = $1
		RETURNING is_active`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrAdNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle advertisement: %w", err)
	}
	return active, nil
}

func (r *postgresRepository) DeleteAd(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM advertisements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete advertisement: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAdNotFound
	}
	return nil
}
