package roommate

import (
	"context"
	"errors"
	"fmt"

	roommateRepo "roomhive/database/repository/roommate"
	"roomhive/models"

	"go.uber.org/zap"
)

// UpsertProfile validates and stores the user's roommate profile.
func (s *DefaultRoommateService) UpsertProfile(ctx context.Context, profile *models.RoommateProfile) (*models.RoommateProfile, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save roommate profile: %w", err)
	}

	// The owner's cached ranking no longer reflects their profile.
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, s.matchCacheKey(profile.UserID)).Err(); err != nil {
			s.Logger.Debug("match cache invalidation failed", zap.String("userID", profile.UserID), zap.Error(err))
		}
	}

	s.Logger.Info("roommate profile saved", zap.String("userID", profile.UserID))
	return profile, nil
}

// GetProfile returns the user's roommate profile.
func (s *DefaultRoommateService) GetProfile(ctx context.Context, userID string) (*models.RoommateProfile, error) {
	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, roommateRepo.ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to load roommate profile: %w", err)
	}
	return profile, nil
}

func validateProfile(p *models.RoommateProfile) error {
	switch {
	case p.UserID == "":
		return fmt.Errorf("%w: missing user", ErrInvalidProfile)
	case p.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidProfile)
	case p.Budget <= 0:
		return fmt.Errorf("%w: budget must be positive", ErrInvalidProfile)
	case p.Habits.Cleanliness < 1 || p.Habits.Cleanliness > 5:
		return fmt.Errorf("%w: cleanliness must be between 1 and 5", ErrInvalidProfile)
	case p.VibeScore < 1 || p.VibeScore > 10:
		return fmt.Errorf("%w: vibe score must be between 1 and 10", ErrInvalidProfile)
	}
	return nil
}
