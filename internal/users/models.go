// internal/users/models.go

package users

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

// UserRow is the users table row. Preference data is stored twice for
// backward compatibility: the nested shape as JSONB and the legacy flat
// fields as their own columns. Reads surface both; the matchmaking
// engine normalizes them per facet.
type UserRow struct {
	ID          int64          `db:"id"`
	Username    string         `db:"username"`
	DisplayName string         `db:"display_name"`
	Bio         sql.NullString `db:"bio"`

	Interests   pq.StringArray `db:"interests"`
	Preferences []byte         `db:"preferences"` // nested shape, JSONB

	// Legacy flat-field preference columns.
	PreferredCategories pq.StringArray `db:"preferred_categories"`
	PreferredSettings   pq.StringArray `db:"preferred_settings"`
	BudgetMin           sql.NullInt64  `db:"budget_min"`
	BudgetMax           sql.NullInt64  `db:"budget_max"`
	PreferredLocations  pq.StringArray `db:"preferred_locations"`

	LikedDateIdeas    pq.StringArray `db:"liked_date_ideas"`
	DislikedDateIdeas pq.StringArray `db:"disliked_date_ideas"`

	LocationLat sql.NullFloat64 `db:"location_lat"`
	LocationLng sql.NullFloat64 `db:"location_lng"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// MatchProfile converts a row into the engine's read-only profile view.
func (r *UserRow) MatchProfile() (*matchmaking.UserProfile, error) {
	profile := &matchmaking.UserProfile{
		ID:                  r.ID,
		DisplayName:         r.DisplayName,
		PreferredCategories: r.PreferredCategories,
		PreferredSettings:   r.PreferredSettings,
		PreferredLocations:  r.PreferredLocations,
		Interests:           r.Interests,
		LikedDateIdeas:      r.LikedDateIdeas,
		DislikedDateIdeas:   r.DislikedDateIdeas,
		Location:            r.Coordinates(),
	}

	if len(r.Preferences) > 0 {
		var prefs matchmaking.Preferences
		if err := json.Unmarshal(r.Preferences, &prefs); err != nil {
			return nil, fmt.Errorf("user %d: invalid preferences payload: %w", r.ID, err)
		}
		profile.Preferences = &prefs
	}

	if r.BudgetMin.Valid && r.BudgetMax.Valid {
		profile.BudgetRange = []int{int(r.BudgetMin.Int64), int(r.BudgetMax.Int64)}
	}

	return profile, nil
}

// Coordinates returns the user's last known location, if set.
func (r *UserRow) Coordinates() *geo.Coordinates {
	if !r.LocationLat.Valid || !r.LocationLng.Valid {
		return nil
	}
	return geo.NewCoordinates(r.LocationLat.Float64, r.LocationLng.Float64)
}

// Profile is the API representation of a user.
type Profile struct {
	ID          int64                    `json:"id"`
	Username    string                   `json:"username"`
	DisplayName string                   `json:"display_name"`
	Bio         *string                  `json:"bio,omitempty"`
	Interests   []string                 `json:"interests,omitempty"`
	Preferences *matchmaking.Preferences `json:"preferences,omitempty"`

	PreferredCategories []string `json:"preferred_categories,omitempty"`
	PreferredSettings   []string `json:"preferred_settings,omitempty"`
	BudgetRange         []int    `json:"budget_range,omitempty"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`

	LikedDateIdeas    []string `json:"liked_date_ideas,omitempty"`
	DislikedDateIdeas []string `json:"disliked_date_ideas,omitempty"`

	Location *geo.Coordinates `json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProfile builds the API representation of a row.
func (r *UserRow) ToProfile() (*Profile, error) {
	match, err := r.MatchProfile()
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:                  r.ID,
		Username:            r.Username,
		DisplayName:         r.DisplayName,
		Interests:           match.Interests,
		Preferences:         match.Preferences,
		PreferredCategories: match.PreferredCategories,
		PreferredSettings:   match.PreferredSettings,
		BudgetRange:         match.BudgetRange,
		PreferredLocations:  match.PreferredLocations,
		LikedDateIdeas:      match.LikedDateIdeas,
		DislikedDateIdeas:   match.DislikedDateIdeas,
		Location:            r.Coordinates(),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}

	if r.Bio.Valid {
		profile.Bio = &r.Bio.String
	}

	return profile, nil
}
