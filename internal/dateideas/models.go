// internal/dateideas/models.go

package dateideas

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

// DateIdeaRow is the date_ideas table row.
type DateIdeaRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Categories  pq.StringArray `db:"categories"`
	Setting     sql.NullString `db:"setting"`
	PriceLevel  int            `db:"price_level"`
	Location    sql.NullString `db:"location"`
	Duration    sql.NullString `db:"duration"`
	ImageURL    sql.NullString `db:"image_url"`

	InterestedCount int `db:"interested_count"`

	Lat sql.NullFloat64 `db:"lat"`
	Lng sql.NullFloat64 `db:"lng"`

	CreatedBy sql.NullInt64 `db:"created_by"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// ToDateIdea converts a row into the engine's scoring view, which is also
// the API representation.
func (r *DateIdeaRow) ToDateIdea() *matchmaking.DateIdea {
	idea := &matchmaking.DateIdea{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description.String,
		Categories:      r.Categories,
		Setting:         r.Setting.String,
		PriceLevel:      r.PriceLevel,
		Location:        r.Location.String,
		Duration:        r.Duration.String,
		ImageURL:        r.ImageURL.String,
		InterestedCount: r.InterestedCount,
		CreatedBy:       r.CreatedBy.Int64,
	}

	if r.Lat.Valid && r.Lng.Valid {
		idea.Coordinates = geo.NewCoordinates(r.Lat.Float64, r.Lng.Float64)
	}

	return idea
}

// NearbyIdea is a date idea annotated with distance from the caller.
type NearbyIdea struct {
	*matchmaking.DateIdea

	DistanceKm  *float64         `json:"distance_km"`
	Distance    string           `json:"distance"`
	TravelTimes *geo.TravelTimes `json:"travel_times,omitempty"`
}
