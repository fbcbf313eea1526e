// internal/matchmaking/models.go

package matchmaking

import (
	"github.com/localfy/localfy-backend/internal/geo"
)

// Preferences is the current nested preference shape: lowercase category
// and setting names, an inclusive [min,max] price range, and a single
// preferred location substring.
type Preferences struct {
	Categories []string `json:"categories,omitempty"`
	Settings   []string `json:"settings,omitempty"`
	PriceLevel []int    `json:"price_level,omitempty"`
	Location   string   `json:"location,omitempty"`
}

// UserProfile is the read-only view of a user that the engine scores
// against. It carries both the nested Preferences shape and the legacy
// flat fields still produced by older clients; normalization picks the
// authoritative one per facet.
type UserProfile struct {
	ID          int64        `json:"id"`
	DisplayName string       `json:"display_name,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`

	// Legacy flat-field preference shape.
	PreferredCategories []string `json:"preferred_categories,omitempty"`
	PreferredSettings   []string `json:"preferred_settings,omitempty"`
	BudgetRange         []int    `json:"budget_range,omitempty"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`

	// Free-text interests, used as a fuzzy bonus signal.
	Interests []string `json:"interests,omitempty"`

	// IDs of date ideas the user has already rated.
	LikedDateIdeas    []string `json:"liked_date_ideas,omitempty"`
	DislikedDateIdeas []string `json:"disliked_date_ideas,omitempty"`

	// Last known location. Not a scoring input; discovery uses it to
	// annotate candidates with distance.
	Location *geo.Coordinates `json:"location,omitempty"`
}

// DateIdea is a proposed activity with the metadata the engine scores on.
// The engine performs no range validation on PriceLevel; out-of-range
// values are scored as given.
type DateIdea struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	Categories      []string         `json:"categories"`
	Setting         string           `json:"setting,omitempty"`
	PriceLevel      int              `json:"price_level,omitempty"`
	Location        string           `json:"location,omitempty"`
	Duration        string           `json:"duration,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	InterestedCount int              `json:"interested_count,omitempty"`
	Coordinates     *geo.Coordinates `json:"coordinates,omitempty"`
	CreatedBy       int64            `json:"created_by,omitempty"`
}

// FactorScore is one explanatory sub-factor: an informational score plus
// human-readable detail strings. These are never re-summed into a match
// score.
type FactorScore struct {
	Score   float64  `json:"score"`
	Details []string `json:"details"`
}

// CompatibilityFactors explains why two users were matched.
type CompatibilityFactors struct {
	SharedInterests     FactorScore `json:"shared_interests"`
	PreferenceAlignment FactorScore `json:"preference_alignment"`
	ActivityTypes       FactorScore `json:"activity_types"`
}

// MatchResult is one scored candidate from FindPotentialMatches.
type MatchResult struct {
	User                 *UserProfile          `json:"user"`
	MatchScore           int                   `json:"match_score"`
	SharedDateIdeas      []*DateIdea           `json:"shared_date_ideas"`
	CompatibilityFactors *CompatibilityFactors `json:"compatibility_factors"`
}

// RecommendedIdea is a date idea annotated with its match score and a
// natural-language reason.
type RecommendedIdea struct {
	*DateIdea
	MatchScore int    `json:"match_score"`
	Reason     string `json:"reason"`
}
