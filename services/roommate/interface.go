package roommate

import (
	"context"
	"errors"

	"roomhive/models"
)

var (
	// ErrProfileRequired means the requester has no roommate profile yet.
	ErrProfileRequired = errors.New("a roommate profile is required before matching")

	// ErrInvalidProfile means the submitted profile violates its bounds.
	ErrInvalidProfile = errors.New("invalid roommate profile")
)

// RoommateService manages roommate profiles and computes ranked matches.
type RoommateService interface {
	UpsertProfile(ctx context.Context, profile *models.RoommateProfile) (*models.RoommateProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.RoommateProfile, error)
	RankMatches(ctx context.Context, requesterID string) ([]models.RoommateMatch, error)
}
