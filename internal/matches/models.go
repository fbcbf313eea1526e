// internal/matches/models.go

package matches

import (
	"time"

	"github.com/localfy/localfy-backend/internal/matchmaking"
)

// MatchRow is the matches table row. user_a is always the smaller ID so a
// pair can only exist once.
type MatchRow struct {
	ID         string    `db:"id"`
	UserA      int64     `db:"user_a"`
	UserB      int64     `db:"user_b"`
	MatchScore int       `db:"match_score"`
	Status     string    `db:"status"`
	MatchedAt  time.Time `db:"matched_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Match statuses.
const (
	StatusActive    = "active"
	StatusUnmatched = "unmatched"
)

// Match is the API representation of a confirmed match, seen from one
// side of the pair.
type Match struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	MatchScore  int       `json:"match_score"`
	Status      string    `json:"status"`
	MatchedAt   time.Time `json:"matched_at"`
}

// Candidate is a scored potential match surfaced by discovery.
type Candidate struct {
	UserID          int64                             `json:"user_id"`
	DisplayName     string                            `json:"display_name"`
	MatchScore      int                               `json:"match_score"`
	SharedInterests []string                          `json:"shared_interests,omitempty"`
	Factors         *matchmaking.CompatibilityFactors `json:"factors,omitempty"`
	DistanceKm      *float64                          `json:"distance_km,omitempty"`
	Distance        string                            `json:"distance,omitempty"`
}

// Compatibility is the detailed pairwise report between two users.
type Compatibility struct {
	UserID  int64                             `json:"user_id"`
	OtherID int64                             `json:"other_id"`
	Score   int                               `json:"score"`
	Factors *matchmaking.CompatibilityFactors `json:"factors"`
}
