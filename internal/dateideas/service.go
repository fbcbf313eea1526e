// internal/dateideas/service.go

package dateideas

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/localfy/localfy-backend/internal/config"
	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

// UserDirectory is the slice of the users module this service depends on.
type UserDirectory interface {
	MatchProfile(ctx context.Context, userID int64) (*matchmaking.UserProfile, error)
	Coordinates(ctx context.Context, userID int64) (*geo.Coordinates, error)
}

// ideaScanLimit bounds how many ideas a single recommendation or nearby
// query considers.
const ideaScanLimit = 500

type Service interface {
	Create(ctx context.Context, userID int64, dto *CreateDateIdeaDTO) (*matchmaking.DateIdea, error)
	Get(ctx context.Context, id string) (*matchmaking.DateIdea, error)
	List(ctx context.Context, limit int) ([]*matchmaking.DateIdea, error)
	Rate(ctx context.Context, userID int64, ideaID, rating string) error
	Recommend(ctx context.Context, userID int64, limit int) ([]*matchmaking.RecommendedIdea, error)
	Nearby(ctx context.Context, userID int64, origin *geo.Coordinates, maxKm float64) ([]NearbyIdea, error)
	MatchReason(ctx context.Context, userID int64, ideaID string) (string, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	engine *matchmaking.Engine
	redis  *redis.Client
	config *config.Config
}

func NewService(repo Repository, userService UserDirectory, engine *matchmaking.Engine, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		users:  userService,
		engine: engine,
		redis:  redisClient,
		config: cfg,
	}
}

func (s *service) Create(ctx context.Context, userID int64, dto *CreateDateIdeaDTO) (*matchmaking.DateIdea, error) {
	row := &DateIdeaRow{
		ID:          uuid.NewString(),
		Title:       dto.Title,
		Description: sql.NullString{String: dto.Description, Valid: dto.Description != ""},
		Categories:  lowerAll(dto.Categories),
		Setting:     sql.NullString{String: strings.ToLower(dto.Setting), Valid: dto.Setting != ""},
		PriceLevel:  dto.PriceLevel,
		Location:    sql.NullString{String: dto.Location, Valid: dto.Location != ""},
		Duration:    sql.NullString{String: dto.Duration, Valid: dto.Duration != ""},
		ImageURL:    sql.NullString{String: dto.ImageURL, Valid: dto.ImageURL != ""},
		CreatedBy:   sql.NullInt64{Int64: userID, Valid: true},
	}

	if dto.Lat != nil && dto.Lng != nil {
		row.Lat = sql.NullFloat64{Float64: *dto.Lat, Valid: true}
		row.Lng = sql.NullFloat64{Float64: *dto.Lng, Valid: true}
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	ideasCreatedTotal.Inc()

	return row.ToDateIdea(), nil
}

func (s *service) Get(ctx context.Context, id string) (*matchmaking.DateIdea, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return row.ToDateIdea(), nil
}

func (s *service) List(ctx context.Context, limit int) ([]*matchmaking.DateIdea, error) {
	if limit <= 0 || limit > ideaScanLimit {
		limit = ideaScanLimit
	}

	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	ideas := make([]*matchmaking.DateIdea, 0, len(rows))
	for _, row := range rows {
		ideas = append(ideas, row.ToDateIdea())
	}

	return ideas, nil
}

func (s *service) Rate(ctx context.Context, userID int64, ideaID, rating string) error {
	if err := s.repo.RecordRating(ctx, userID, ideaID, rating); err != nil {
		return err
	}

	ratingsTotal.WithLabelValues(rating).Inc()

	// Ratings change the exclusion set, so cached recommendations are stale.
	s.invalidateRecommendations(ctx, userID)

	return nil
}

func (s *service) Recommend(ctx context.Context, userID int64, limit int) ([]*matchmaking.RecommendedIdea, error) {
	if limit <= 0 {
		limit = s.config.RecommendationLimit
	}

	if cached := s.cachedRecommendations(ctx, userID, limit); cached != nil {
		recommendationsServed.WithLabelValues("cache").Inc()
		return cached, nil
	}

	profile, err := s.users.MatchProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	ideas, err := s.List(ctx, ideaScanLimit)
	if err != nil {
		return nil, err
	}

	recommendations := s.engine.RecommendDateIdeas(profile, ideas, limit)

	for _, rec := range recommendations {
		recommendationScores.Observe(float64(rec.MatchScore))
	}
	recommendationsServed.WithLabelValues("computed").Inc()

	s.cacheRecommendations(ctx, userID, limit, recommendations)

	return recommendations, nil
}

// Nearby lists ideas around an origin. A nil origin falls back to the
// user's stored location; clients exploring the map pass their live
// coordinates instead.
func (s *service) Nearby(ctx context.Context, userID int64, origin *geo.Coordinates, maxKm float64) ([]NearbyIdea, error) {
	if origin == nil {
		stored, err := s.users.Coordinates(ctx, userID)
		if err != nil {
			return nil, err
		}
		origin = stored
	}

	if maxKm <= 0 {
		maxKm = s.config.DefaultMaxDistanceKm
	}

	ideas, err := s.List(ctx, ideaScanLimit)
	if err != nil {
		return nil, err
	}

	annotated := geo.FilterByDistance(ideas, origin, func(i *matchmaking.DateIdea) *geo.Coordinates {
		return i.Coordinates
	}, maxKm)

	nearbyQueriesTotal.Inc()

	result := make([]NearbyIdea, 0, len(annotated))
	for _, a := range annotated {
		item := NearbyIdea{
			DateIdea:   a.Item,
			DistanceKm: a.Distance,
			Distance:   geo.FormatDistance(a.Distance),
		}
		if a.Distance != nil {
			times := geo.EstimateTravelTime(a.Distance)
			item.TravelTimes = &times
		}
		result = append(result, item)
	}

	return result, nil
}

func (s *service) MatchReason(ctx context.Context, userID int64, ideaID string) (string, error) {
	profile, err := s.users.MatchProfile(ctx, userID)
	if err != nil {
		return "", err
	}

	idea, err := s.Get(ctx, ideaID)
	if err != nil {
		return "", err
	}

	return s.engine.GenerateMatchReason(profile, idea), nil
}

func (s *service) recommendationCacheKey(userID int64, limit int) string {
	return fmt.Sprintf("recommendations:%d:%d", userID, limit)
}

func (s *service) cachedRecommendations(ctx context.Context, userID int64, limit int) []*matchmaking.RecommendedIdea {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(ctx, s.recommendationCacheKey(userID, limit)).Result()
	if err != nil {
		return nil
	}

	var recommendations []*matchmaking.RecommendedIdea
	if err := json.Unmarshal([]byte(data), &recommendations); err != nil {
		return nil
	}

	return recommendations
}

func (s *service) cacheRecommendations(ctx context.Context, userID int64, limit int, recommendations []*matchmaking.RecommendedIdea) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(recommendations)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, s.recommendationCacheKey(userID, limit), data, s.config.RecommendationCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache recommendations for user %d: %v", userID, err)
	}
}

func (s *service) invalidateRecommendations(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}

	pattern := fmt.Sprintf("recommendations:%d:*", userID)
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.redis.Del(ctx, keys...)
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
