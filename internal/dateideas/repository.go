// internal/dateideas/repository.go

package dateideas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrIdeaNotFound = errors.New("date idea not found")

type Repository interface {
	Create(ctx context.Context, row *DateIdeaRow) error
	GetByID(ctx context.Context, id string) (*DateIdeaRow, error)
	List(ctx context.Context, limit int) ([]*DateIdeaRow, error)
	RecordRating(ctx context.Context, userID int64, ideaID, rating string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const ideaColumns = `
	id, title, description, categories, setting, price_level,
	location, duration, image_url, interested_count,
	lat, lng, created_by, created_at, updated_at
`

func (r *postgresRepository) Create(ctx context.Context, row *DateIdeaRow) error {
	query := `
		INSERT INTO date_ideas (
			id, title, description, categories, setting, price_level,
			location, duration, image_url, lat, lng, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		row.ID, row.Title, row.Description, row.Categories, row.Setting,
		row.PriceLevel, row.Location, row.Duration, row.ImageURL,
		row.Lat, row.Lng, row.CreatedBy,
	).Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create date idea: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*DateIdeaRow, error) {
	var row DateIdeaRow
	query := `SELECT ` + ideaColumns + ` FROM date_ideas WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIdeaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get date idea %s: %w", id, err)
	}

	return &row, nil
}

func (r *postgresRepository) List(ctx context.Context, limit int) ([]*DateIdeaRow, error) {
	var rows []*DateIdeaRow
	query := `
		SELECT ` + ideaColumns + `
		FROM date_ideas
		ORDER BY created_at DESC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list date ideas: %w", err)
	}

	return rows, nil
}

// RecordRating moves the idea into the user's liked or disliked list and
// keeps interested_count in step. Re-rating flips the idea between lists
// without double counting.
func (r *postgresRepository) RecordRating(ctx context.Context, userID int64, ideaID, rating string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rating tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM date_ideas WHERE id = $1)`, ideaID); err != nil {
		return fmt.Errorf("check date idea %s: %w", ideaID, err)
	}
	if !exists {
		return ErrIdeaNotFound
	}

	var wasLiked bool
	err = tx.GetContext(ctx, &wasLiked,
		`SELECT $2 = ANY(liked_date_ideas) FROM users WHERE id = $1`, userID, ideaID)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("user not found")
	}
	if err != nil {
		return fmt.Errorf("check existing rating: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET liked_date_ideas = array_remove(liked_date_ideas, $2),
		    disliked_date_ideas = array_remove(disliked_date_ideas, $2),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, userID, ideaID)
	if err != nil {
		return fmt.Errorf("clear previous rating: %w", err)
	}

	column := "disliked_date_ideas"
	if rating == "like" {
		column = "liked_date_ideas"
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		UPDATE users
		SET %s = array_append(%s, $2)
		WHERE id = $1
	`, column, column), userID, ideaID)
	if err != nil {
		return fmt.Errorf("record rating: %w", err)
	}

	delta := 0
	switch {
	case rating == "like" && !wasLiked:
		delta = 1
	case rating == "dislike" && wasLiked:
		delta = -1
	}

	if delta != 0 {
		_, err = tx.ExecContext(ctx, `
			UPDATE date_ideas
			SET interested_count = GREATEST(interested_count + $2, 0),
			    updated_at = CURRENT_TIMESTAMP
			WHERE id = $1
		`, ideaID, delta)
		if err != nil {
			return fmt.Errorf("update interested count: %w", err)
		}
	}

	return tx.Commit()
}
