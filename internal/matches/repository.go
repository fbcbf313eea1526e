// internal/matches/repository.go

package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrMatchNotFound = errors.New("match not found")

type Repository interface {
	Create(ctx context.Context, row *MatchRow) error
	GetByID(ctx context.Context, id string) (*MatchRow, error)
	GetByPair(ctx context.Context, userA, userB int64) (*MatchRow, error)
	ListActiveForUser(ctx context.Context, userID int64) ([]*MatchRow, error)
	SetStatus(ctx context.Context, id, status string) error
	DeleteUnmatchedOlderThan(ctx context.Context, days int) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, row *MatchRow) error {
	query := `
		INSERT INTO matches (id, user_a, user_b, match_score, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING matched_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		row.ID, row.UserA, row.UserB, row.MatchScore, row.Status,
	).Scan(&row.MatchedAt, &row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*MatchRow, error) {
	var row MatchRow
	query := `SELECT * FROM matches WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", id, err)
	}

	return &row, nil
}

func (r *postgresRepository) GetByPair(ctx context.Context, userA, userB int64) (*MatchRow, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	var row MatchRow
	query := `SELECT * FROM matches WHERE user_a = $1 AND user_b = $2`

	err := r.db.GetContext(ctx, &row, query, userA, userB)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get match for pair (%d, %d): %w", userA, userB, err)
	}

	return &row, nil
}

func (r *postgresRepository) ListActiveForUser(ctx context.Context, userID int64) ([]*MatchRow, error) {
	var rows []*MatchRow
	query := `
		SELECT * FROM matches
		WHERE (user_a = $1 OR user_b = $1) AND status = $2
		ORDER BY matched_at DESC
	`

	if err := r.db.SelectContext(ctx, &rows, query, userID, StatusActive); err != nil {
		return nil, fmt.Errorf("list matches for user %d: %w", userID, err)
	}

	return rows, nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE matches
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update match %s status: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}

	return nil
}

func (r *postgresRepository) DeleteUnmatchedOlderThan(ctx context.Context, days int) (int64, error) {
	query := `
		DELETE FROM matches
		WHERE status = $1 AND updated_at < CURRENT_TIMESTAMP - make_interval(days => $2)
	`

	result, err := r.db.ExecContext(ctx, query, StatusUnmatched, days)
	if err != nil {
		return 0, fmt.Errorf("cleanup unmatched: %w", err)
	}

	return result.RowsAffected()
}
