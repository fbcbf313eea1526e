// internal/matches/service.go

package matches

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/localfy/localfy-backend/internal/config"
	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

var (
	ErrCannotMatchSelf = errors.New("cannot match with yourself")
	ErrAlreadyMatched  = errors.New("match already exists")
	ErrScoreTooLow     = errors.New("compatibility score below threshold")
	ErrUnauthorized    = errors.New("match does not belong to user")
)

// unmatchedRetentionDays is how long dissolved matches are kept before
// cleanup removes them.
const unmatchedRetentionDays = 30

// UserDirectory is the slice of the users module this service depends on.
type UserDirectory interface {
	MatchProfile(ctx context.Context, userID int64) (*matchmaking.UserProfile, error)
	MatchProfiles(ctx context.Context, excludeID int64, limit int) ([]*matchmaking.UserProfile, error)
	IDs(ctx context.Context) ([]int64, error)
}

// IdeaCatalog supplies the date ideas used for shared-taste scoring.
type IdeaCatalog interface {
	List(ctx context.Context, limit int) ([]*matchmaking.DateIdea, error)
}

type Service interface {
	Discover(ctx context.Context, userID int64) ([]Candidate, error)
	GetCompatibility(ctx context.Context, userID, otherID int64) (*Compatibility, error)
	CreateMatch(ctx context.Context, userID, otherID int64) (*Match, error)
	ListMatches(ctx context.Context, userID int64) ([]Match, error)
	Unmatch(ctx context.Context, userID int64, matchID string) error

	// Scheduled tasks.
	WarmDiscoverCache(ctx context.Context) error
	CleanupInactiveMatches(ctx context.Context) error
}

type service struct {
	repo   Repository
	users  UserDirectory
	ideas  IdeaCatalog
	engine *matchmaking.Engine
	redis  *redis.Client
	config *config.Config
}

func NewService(repo Repository, users UserDirectory, ideas IdeaCatalog, engine *matchmaking.Engine, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		users:  users,
		ideas:  ideas,
		engine: engine,
		redis:  redisClient,
		config: cfg,
	}
}

func (s *service) Discover(ctx context.Context, userID int64) ([]Candidate, error) {
	if cached := s.cachedDiscovery(ctx, userID); cached != nil {
		discoverRequestsTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}

	candidates, err := s.computeDiscovery(ctx, userID)
	if err != nil {
		return nil, err
	}

	discoverRequestsTotal.WithLabelValues("computed").Inc()
	s.cacheDiscovery(ctx, userID, candidates)

	return candidates, nil
}

func (s *service) computeDiscovery(ctx context.Context, userID int64) ([]Candidate, error) {
	profile, err := s.users.MatchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	others, err := s.users.MatchProfiles(ctx, userID, s.config.DiscoverCandidateLimit)
	if err != nil {
		return nil, err
	}

	ideas, err := s.allIdeas(ctx)
	if err != nil {
		return nil, err
	}

	results := s.engine.FindPotentialMatches(profile, others, ideas)

	candidates := make([]Candidate, 0, len(results))
	for _, result := range results {
		compatibilityScores.Observe(float64(result.MatchScore))

		candidate := Candidate{
			UserID:      result.User.ID,
			DisplayName: result.User.DisplayName,
			MatchScore:  result.MatchScore,
			Factors:     result.CompatibilityFactors,
		}

		for _, idea := range result.SharedDateIdeas {
			candidate.SharedInterests = append(candidate.SharedInterests, idea.Title)
		}

		if d := geo.Distance(profile.Location, result.User.Location); d != nil {
			candidate.DistanceKm = d
			candidate.Distance = geo.FormatDistance(d)
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (s *service) GetCompatibility(ctx context.Context, userID, otherID int64) (*Compatibility, error) {
	if userID == otherID {
		return nil, ErrCannotMatchSelf
	}

	profile, err := s.users.MatchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	other, err := s.users.MatchProfile(ctx, otherID)
	if err != nil {
		return nil, err
	}

	ideas, err := s.allIdeas(ctx)
	if err != nil {
		return nil, err
	}

	results := s.engine.FindPotentialMatches(profile, []*matchmaking.UserProfile{other}, ideas)
	if len(results) == 0 {
		return nil, fmt.Errorf("no compatibility result for pair (%d, %d)", userID, otherID)
	}

	return &Compatibility{
		UserID:  userID,
		OtherID: otherID,
		Score:   results[0].MatchScore,
		Factors: results[0].CompatibilityFactors,
	}, nil
}

func (s *service) CreateMatch(ctx context.Context, userID, otherID int64) (*Match, error) {
	if userID == otherID {
		return nil, ErrCannotMatchSelf
	}

	compatibility, err := s.GetCompatibility(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	if compatibility.Score < s.config.MatchScoreThreshold {
		return nil, ErrScoreTooLow
	}

	existing, err := s.repo.GetByPair(ctx, userID, otherID)
	if err != nil && !errors.Is(err, ErrMatchNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Status == StatusActive {
			return nil, ErrAlreadyMatched
		}
		// A dissolved pair can match again.
		if err := s.repo.SetStatus(ctx, existing.ID, StatusActive); err != nil {
			return nil, err
		}
		existing.Status = StatusActive
		s.invalidateDiscovery(ctx, userID, otherID)
		return s.matchForUser(ctx, existing, userID)
	}

	row := &MatchRow{
		ID:         uuid.NewString(),
		UserA:      userID,
		UserB:      otherID,
		MatchScore: compatibility.Score,
		Status:     StatusActive,
	}
	if row.UserA > row.UserB {
		row.UserA, row.UserB = row.UserB, row.UserA
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	matchesCreatedTotal.Inc()
	s.invalidateDiscovery(ctx, userID, otherID)

	return s.matchForUser(ctx, row, userID)
}

func (s *service) ListMatches(ctx context.Context, userID int64) ([]Match, error) {
	rows, err := s.repo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(rows))
	for _, row := range rows {
		match, err := s.matchForUser(ctx, row, userID)
		if err != nil {
			log.Printf("Skipping match %s: %v", row.ID, err)
			continue
		}
		matches = append(matches, *match)
	}

	return matches, nil
}

func (s *service) Unmatch(ctx context.Context, userID int64, matchID string) error {
	row, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	if row.UserA != userID && row.UserB != userID {
		return ErrUnauthorized
	}

	if err := s.repo.SetStatus(ctx, matchID, StatusUnmatched); err != nil {
		return err
	}

	unmatchesTotal.Inc()
	s.invalidateDiscovery(ctx, row.UserA, row.UserB)

	return nil
}

// WarmDiscoverCache precomputes discovery results for every user so the
// morning traffic spike hits warm caches.
func (s *service) WarmDiscoverCache(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}

	ids, err := s.users.IDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		candidates, err := s.computeDiscovery(ctx, id)
		if err != nil {
			log.Printf("Cache warm-up failed for user %d: %v", id, err)
			continue
		}
		s.cacheDiscovery(ctx, id, candidates)
	}

	cacheWarmRunsTotal.Inc()
	return nil
}

func (s *service) CleanupInactiveMatches(ctx context.Context) error {
	removed, err := s.repo.DeleteUnmatchedOlderThan(ctx, unmatchedRetentionDays)
	if err != nil {
		return err
	}

	if removed > 0 {
		log.Printf("Removed %d dissolved matches older than %d days", removed, unmatchedRetentionDays)
	}

	return nil
}

// matchForUser shapes a row as seen from one side of the pair.
func (s *service) matchForUser(ctx context.Context, row *MatchRow, userID int64) (*Match, error) {
	otherID := row.UserA
	if otherID == userID {
		otherID = row.UserB
	}

	other, err := s.users.MatchProfile(ctx, otherID)
	if err != nil {
		return nil, err
	}

	return &Match{
		ID:          row.ID,
		UserID:      otherID,
		DisplayName: other.DisplayName,
		MatchScore:  row.MatchScore,
		Status:      row.Status,
		MatchedAt:   row.MatchedAt,
	}, nil
}

func (s *service) allIdeas(ctx context.Context) ([]*matchmaking.DateIdea, error) {
	return s.ideas.List(ctx, 0)
}

func (s *service) discoveryCacheKey(userID int64) string {
	return fmt.Sprintf("discover:%d", userID)
}

func (s *service) cachedDiscovery(ctx context.Context, userID int64) []Candidate {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, s.discoveryCacheKey(userID)).Result()
	if err != nil {
		return nil
	}

	var candidates []Candidate
	if err := json.Unmarshal([]byte(data), &candidates); err != nil {
		return nil
	}

	return candidates
}

func (s *service) cacheDiscovery(ctx context.Context, userID int64, candidates []Candidate) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, s.discoveryCacheKey(userID), data, s.config.DiscoverCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache discovery for user %d: %v", userID, err)
	}
}

func (s *service) invalidateDiscovery(ctx context.Context, userIDs ...int64) {
	if s.redis == nil {
		return
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = s.discoveryCacheKey(id)
	}
	s.redis.Del(ctx, keys...)
}
