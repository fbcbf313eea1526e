// internal/users/service.go

package users

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/localfy/localfy-backend/internal/geo"
	"github.com/localfy/localfy-backend/internal/matchmaking"
)

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdatePreferences(ctx context.Context, userID int64, dto *UpdatePreferencesDTO) (*Profile, error)
	UpdateLocation(ctx context.Context, userID int64, dto *UpdateLocationDTO) error

	// MatchProfile exposes the engine-facing view for other modules.
	MatchProfile(ctx context.Context, userID int64) (*matchmaking.UserProfile, error)

	// Coordinates returns the user's last known location, nil when unset.
	Coordinates(ctx context.Context, userID int64) (*geo.Coordinates, error)

	// MatchProfiles returns engine-facing views of every other user, used
	// as the discovery candidate pool.
	MatchProfiles(ctx context.Context, excludeID int64, limit int) ([]*matchmaking.UserProfile, error)

	// IDs lists all user IDs.
	IDs(ctx context.Context) ([]int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	row, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return row.ToProfile()
}

func (s *service) MatchProfile(ctx context.Context, userID int64) (*matchmaking.UserProfile, error) {
	row, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return row.MatchProfile()
}

func (s *service) Coordinates(ctx context.Context, userID int64) (*geo.Coordinates, error) {
	row, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return row.Coordinates(), nil
}

func (s *service) MatchProfiles(ctx context.Context, excludeID int64, limit int) ([]*matchmaking.UserProfile, error) {
	rows, err := s.repo.ListOthers(ctx, excludeID, limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]*matchmaking.UserProfile, 0, len(rows))
	for _, row := range rows {
		profile, err := row.MatchProfile()
		if err != nil {
			// A single corrupt row should not break discovery for everyone.
			log.Printf("Skipping user %d: %v", row.ID, err)
			continue
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

func (s *service) IDs(ctx context.Context) ([]int64, error) {
	return s.repo.ListIDs(ctx)
}

func (s *service) UpdatePreferences(ctx context.Context, userID int64, dto *UpdatePreferencesDTO) (*Profile, error) {
	prefs := &matchmaking.Preferences{
		Categories: lowerAll(dto.Categories),
		Settings:   lowerAll(dto.Settings),
		PriceLevel: dto.PriceLevel,
		Location:   dto.Location,
	}

	payload, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}

	if err := s.repo.UpdatePreferences(ctx, userID, payload); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *service) UpdateLocation(ctx context.Context, userID int64, dto *UpdateLocationDTO) error {
	return s.repo.UpdateLocation(ctx, userID, dto.Lat, dto.Lng)
}

func lowerAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
