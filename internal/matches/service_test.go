package matches

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localfy/localfy-backend/internal/config"
	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

type fakeRepository struct {
	rows map[string]*MatchRow
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[string]*MatchRow)}
}

func (f *fakeRepository) Create(_ context.Context, row *MatchRow) error {
	row.MatchedAt = time.Now()
	row.UpdatedAt = row.MatchedAt
	f.rows[row.ID] = row
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*MatchRow, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return row, nil
}

func (f *fakeRepository) GetByPair(_ context.Context, userA, userB int64) (*MatchRow, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	for _, row := range f.rows {
		if row.UserA == userA && row.UserB == userB {
			return row, nil
		}
	}
	return nil, ErrMatchNotFound
}

func (f *fakeRepository) ListActiveForUser(_ context.Context, userID int64) ([]*MatchRow, error) {
	var rows []*MatchRow
	for _, row := range f.rows {
		if row.Status == StatusActive && (row.UserA == userID || row.UserB == userID) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRepository) SetStatus(_ context.Context, id, status string) error {
	row, ok := f.rows[id]
	if !ok {
		return ErrMatchNotFound
	}
	row.Status = status
	return nil
}

func (f *fakeRepository) DeleteUnmatchedOlderThan(_ context.Context, _ int) (int64, error) {
	var removed int64
	for id, row := range f.rows {
		if row.Status == StatusUnmatched {
			delete(f.rows, id)
			removed++
		}
	}
	return removed, nil
}

type fakeUserDirectory struct {
	profiles map[int64]*matchmaking.UserProfile
}

func (f *fakeUserDirectory) MatchProfile(_ context.Context, userID int64) (*matchmaking.UserProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return profile, nil
}

func (f *fakeUserDirectory) MatchProfiles(_ context.Context, excludeID int64, _ int) ([]*matchmaking.UserProfile, error) {
	var profiles []*matchmaking.UserProfile
	for id, profile := range f.profiles {
		if id != excludeID {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func (f *fakeUserDirectory) IDs(_ context.Context) ([]int64, error) {
	var ids []int64
	for id := range f.profiles {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeIdeaCatalog struct {
	ideas []*matchmaking.DateIdea
}

func (f *fakeIdeaCatalog) List(_ context.Context, _ int) ([]*matchmaking.DateIdea, error) {
	return f.ideas, nil
}

func testConfig() *config.Config {
	return &config.Config{
		MatchScoreThreshold:    30,
		DiscoverCandidateLimit: 100,
		DiscoverCacheTTL:       10 * time.Minute,
	}
}

func compatibleProfiles() map[int64]*matchmaking.UserProfile {
	return map[int64]*matchmaking.UserProfile{
		1: {
			ID:                  1,
			DisplayName:         "Alice",
			PreferredCategories: []string{"romantic", "outdoor"},
			PreferredSettings:   []string{"outdoor"},
			BudgetRange:         []int{1, 3},
			Interests:           []string{"hiking"},
			LikedDateIdeas:      []string{"picnic", "kayak"},
			Location:            geo.NewCoordinates(40.7128, -74.0060),
		},
		2: {
			ID:                  2,
			DisplayName:         "Bao",
			PreferredCategories: []string{"romantic", "outdoor"},
			PreferredSettings:   []string{"outdoor"},
			BudgetRange:         []int{1, 3},
			Interests:           []string{"hiking"},
			LikedDateIdeas:      []string{"picnic", "kayak"},
			Location:            geo.NewCoordinates(40.7306, -73.9866),
		},
		3: {
			ID:          3,
			DisplayName: "Chidi",
		},
	}
}

func testIdeas() []*matchmaking.DateIdea {
	return []*matchmaking.DateIdea{
		{ID: "picnic", Title: "Sunset Picnic in the Park", Categories: []string{"romantic"}},
		{ID: "kayak", Title: "Kayaking Adventure", Categories: []string{"adventure"}},
	}
}

func newTestService(repo Repository, users *fakeUserDirectory) Service {
	return NewService(repo, users, &fakeIdeaCatalog{ideas: testIdeas()}, matchmaking.NewEngine(), nil, testConfig())
}

func TestDiscoverScoresAndAnnotates(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	svc := newTestService(newFakeRepository(), users)

	candidates, err := svc.Discover(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// Strongest candidate first.
	assert.Equal(t, int64(2), candidates[0].UserID)
	assert.Equal(t, "Bao", candidates[0].DisplayName)
	assert.Greater(t, candidates[0].MatchScore, candidates[1].MatchScore)

	assert.Contains(t, candidates[0].SharedInterests, "Sunset Picnic in the Park")
	require.NotNil(t, candidates[0].DistanceKm)
	assert.InDelta(t, 2.6, *candidates[0].DistanceKm, 0.5)

	// No location on the weak candidate, so no distance annotation.
	assert.Nil(t, candidates[1].DistanceKm)
	assert.Equal(t, "", candidates[1].Distance)
}

func TestGetCompatibilitySelf(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	svc := newTestService(newFakeRepository(), users)

	_, err := svc.GetCompatibility(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrCannotMatchSelf)
}

func TestCreateMatchLifecycle(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	repo := newFakeRepository()
	svc := newTestService(repo, users)

	match, err := svc.CreateMatch(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), match.UserID)
	assert.Equal(t, "Bao", match.DisplayName)
	assert.Equal(t, StatusActive, match.Status)
	assert.GreaterOrEqual(t, match.MatchScore, 30)

	// Duplicate pair, from either side.
	_, err = svc.CreateMatch(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrAlreadyMatched)

	// Both sides see the match.
	mine, err := svc.ListMatches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(2), mine[0].UserID)

	theirs, err := svc.ListMatches(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, int64(1), theirs[0].UserID)

	// Unmatch dissolves it for both.
	require.NoError(t, svc.Unmatch(context.Background(), 1, match.ID))

	mine, err = svc.ListMatches(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// A dissolved pair can match again.
	match, err = svc.CreateMatch(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, match.Status)
}

func TestCreateMatchBelowThreshold(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	svc := newTestService(newFakeRepository(), users)

	// User 3 has no preferences or shared ideas with user 1.
	_, err := svc.CreateMatch(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrScoreTooLow)
}

func TestCreateMatchSelf(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	svc := newTestService(newFakeRepository(), users)

	_, err := svc.CreateMatch(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrCannotMatchSelf)
}

func TestUnmatchWrongUser(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	repo := newFakeRepository()
	svc := newTestService(repo, users)

	match, err := svc.CreateMatch(context.Background(), 1, 2)
	require.NoError(t, err)

	err = svc.Unmatch(context.Background(), 3, match.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCleanupInactiveMatches(t *testing.T) {
	users := &fakeUserDirectory{profiles: compatibleProfiles()}
	repo := newFakeRepository()
	svc := newTestService(repo, users)

	match, err := svc.CreateMatch(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Unmatch(context.Background(), 1, match.ID))

	require.NoError(t, svc.CleanupInactiveMatches(context.Background()))
	assert.Empty(t, repo.rows)
}
