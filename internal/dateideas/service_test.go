package dateideas

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localfy/localfy-backend/internal/config"
	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

type fakeRepository struct {
	rows    map[string]*DateIdeaRow
	ratings []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[string]*DateIdeaRow)}
}

func (f *fakeRepository) Create(_ context.Context, row *DateIdeaRow) error {
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	f.rows[row.ID] = row
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*DateIdeaRow, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, ErrIdeaNotFound
	}
	return row, nil
}

func (f *fakeRepository) List(_ context.Context, limit int) ([]*DateIdeaRow, error) {
	rows := make([]*DateIdeaRow, 0, len(f.rows))
	for _, row := range f.rows {
		rows = append(rows, row)
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeRepository) RecordRating(_ context.Context, _ int64, ideaID, rating string) error {
	if _, ok := f.rows[ideaID]; !ok {
		return ErrIdeaNotFound
	}
	f.ratings = append(f.ratings, ideaID+":"+rating)
	return nil
}

type fakeUserService struct {
	profile *matchmaking.UserProfile
	coords  *geo.Coordinates
}

func (f *fakeUserService) MatchProfile(_ context.Context, _ int64) (*matchmaking.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeUserService) Coordinates(_ context.Context, _ int64) (*geo.Coordinates, error) {
	return f.coords, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RecommendationLimit:    10,
		RecommendationCacheTTL: 10 * time.Minute,
		DefaultMaxDistanceKm:   25,
	}
}

func newTestService(repo Repository, users *fakeUserService) Service {
	return NewService(repo, users, matchmaking.NewEngine(), nil, testConfig())
}

func seedIdea(repo *fakeRepository, id, title string, categories []string, lat, lng float64) {
	repo.rows[id] = &DateIdeaRow{
		ID:         id,
		Title:      title,
		Categories: pq.StringArray(categories),
		PriceLevel: 2,
		Setting:    sql.NullString{String: "outdoor", Valid: true},
		Lat:        sql.NullFloat64{Float64: lat, Valid: true},
		Lng:        sql.NullFloat64{Float64: lng, Valid: true},
	}
}

func TestCreateNormalizesCategoriesAndSetting(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeUserService{})

	lat, lng := 40.7128, -74.0060
	idea, err := svc.Create(context.Background(), 1, &CreateDateIdeaDTO{
		Title:      "Sunset Picnic in the Park",
		Categories: []string{"Romantic", " Outdoor "},
		Setting:    "Outdoor",
		PriceLevel: 2,
		Lat:        &lat,
		Lng:        &lng,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, []string{"romantic", "outdoor"}, []string(idea.Categories))
	assert.Equal(t, "outdoor", idea.Setting)
	require.NotNil(t, idea.Coordinates)
	assert.Equal(t, lat, *idea.Coordinates.Lat)
}

func TestRateUnknownIdea(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeUserService{})

	err := svc.Rate(context.Background(), 1, "missing", "like")
	assert.ErrorIs(t, err, ErrIdeaNotFound)
}

func TestRecommendUsesProfileAndExcludesRated(t *testing.T) {
	repo := newFakeRepository()
	seedIdea(repo, "picnic", "Sunset Picnic in the Park", []string{"romantic"}, 40.71, -74.0)
	seedIdea(repo, "kayak", "Kayaking Adventure", []string{"adventure"}, 40.72, -74.01)

	users := &fakeUserService{
		profile: &matchmaking.UserProfile{
			ID: 1,
			Preferences: &matchmaking.Preferences{
				Categories: []string{"romantic"},
				Settings:   []string{"outdoor"},
				PriceLevel: []int{1, 3},
			},
			LikedDateIdeas: []string{"kayak"},
		},
	}
	svc := newTestService(repo, users)

	recommendations, err := svc.Recommend(context.Background(), 1, 0)
	require.NoError(t, err)

	require.Len(t, recommendations, 1)
	assert.Equal(t, "picnic", recommendations[0].ID)
	assert.Greater(t, recommendations[0].MatchScore, 0)
	assert.NotEmpty(t, recommendations[0].Reason)
}

func TestNearbyAnnotatesDistance(t *testing.T) {
	repo := newFakeRepository()
	seedIdea(repo, "close", "Sunset Picnic in the Park", []string{"romantic"}, 40.7128, -74.0060)
	seedIdea(repo, "far", "Kayaking Adventure", []string{"adventure"}, 51.5074, -0.1278)

	users := &fakeUserService{coords: geo.NewCoordinates(40.7128, -74.0060)}
	svc := newTestService(repo, users)

	nearby, err := svc.Nearby(context.Background(), 1, nil, 25)
	require.NoError(t, err)

	require.Len(t, nearby, 1)
	assert.Equal(t, "close", nearby[0].ID)
	require.NotNil(t, nearby[0].DistanceKm)
	assert.Equal(t, "0 m", nearby[0].Distance)
	require.NotNil(t, nearby[0].TravelTimes)
	assert.Equal(t, "< 1 min", nearby[0].TravelTimes.Walking)
}

func TestNearbyKeepsIdeasWithoutCoordinates(t *testing.T) {
	repo := newFakeRepository()
	repo.rows["nowhere"] = &DateIdeaRow{
		ID:         "nowhere",
		Title:      "Mystery Dinner",
		Categories: pq.StringArray{"food"},
		PriceLevel: 3,
	}

	users := &fakeUserService{coords: geo.NewCoordinates(40.7128, -74.0060)}
	svc := newTestService(repo, users)

	nearby, err := svc.Nearby(context.Background(), 1, nil, 25)
	require.NoError(t, err)

	require.Len(t, nearby, 1)
	assert.Nil(t, nearby[0].DistanceKm)
	assert.Equal(t, "Unknown", nearby[0].Distance)
	assert.Nil(t, nearby[0].TravelTimes)
}

func TestNearbyExplicitOriginOverridesStored(t *testing.T) {
	repo := newFakeRepository()
	seedIdea(repo, "london", "Thames Walk", []string{"outdoor"}, 51.5074, -0.1278)

	// Stored location is New York, but the caller explores London.
	users := &fakeUserService{coords: geo.NewCoordinates(40.7128, -74.0060)}
	svc := newTestService(repo, users)

	nearby, err := svc.Nearby(context.Background(), 1, geo.NewCoordinates(51.5074, -0.1278), 25)
	require.NoError(t, err)

	require.Len(t, nearby, 1)
	assert.Equal(t, "london", nearby[0].ID)
}

func TestMatchReason(t *testing.T) {
	repo := newFakeRepository()
	seedIdea(repo, "picnic", "Sunset Picnic in the Park", []string{"romantic"}, 40.71, -74.0)

	users := &fakeUserService{
		profile: &matchmaking.UserProfile{
			ID: 1,
			Preferences: &matchmaking.Preferences{
				Categories: []string{"romantic"},
			},
		},
	}
	svc := newTestService(repo, users)

	reason, err := svc.MatchReason(context.Background(), 1, "picnic")
	require.NoError(t, err)
	assert.Contains(t, reason, "romantic")
}
