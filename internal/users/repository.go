// internal/users/repository.go

package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (*UserRow, error)
	ListOthers(ctx context.Context, excludeID int64, limit int) ([]*UserRow, error)
	ListIDs(ctx context.Context) ([]int64, error)
	UpdatePreferences(ctx context.Context, id int64, preferences []byte) error
	UpdateLocation(ctx context.Context, id int64, lat, lng float64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `
	id, username, display_name, bio, interests, preferences,
	preferred_categories, preferred_settings, budget_min, budget_max,
	preferred_locations, liked_date_ideas, disliked_date_ideas,
	location_lat, location_lng, created_at, updated_at
`

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*UserRow, error) {
	var row UserRow
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	return &row, nil
}

func (r *postgresRepository) ListOthers(ctx context.Context, excludeID int64, limit int) ([]*UserRow, error) {
	var rows []*UserRow
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id != $1
		ORDER BY id
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &rows, query, excludeID, limit); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return rows, nil
}

func (r *postgresRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) UpdatePreferences(ctx context.Context, id int64, preferences []byte) error {
	if !json.Valid(preferences) {
		return errors.New("preferences payload is not valid JSON")
	}

	query := `
		UPDATE users
		SET preferences = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, preferences)
	if err != nil {
		return fmt.Errorf("update preferences for user %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64) error {
	query := `
		UPDATE users
		SET location_lat = $2, location_lng = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, lat, lng)
	if err != nil {
		return fmt.Errorf("update location for user %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
