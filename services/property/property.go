package property

import (
	"context"
	"errors"
	"fmt"

	propertyRepo "roomhive/database/repository/property"
	"roomhive/models"
	"roomhive/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrPropertyNotFound is surfaced on lookups for missing properties.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrNotOwner means a mutation was attempted by someone else.
	ErrNotOwner = errors.New("only the property owner may do this")

	// ErrInvalidProperty means the listing violates its constraints.
	ErrInvalidProperty = errors.New("invalid property listing")
)

// CreatePropertyInput carries a new listing.
type CreatePropertyInput struct {
	OwnerID     string  `json:"-"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	City        string  `json:"city"`
	Address     string  `json:"address,omitempty"`
	Rent        float64 `json:"rent"`
}

// PropertyService manages room/PG listings.
type PropertyService interface {
	Create(ctx context.Context, in CreatePropertyInput) (*models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListAvailable(ctx context.Context, city string) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	SetAvailability(ctx context.Context, id, actorID, availability string) error
	AttachPhoto(ctx context.Context, id, actorID, localFilePath string) (string, error)
}

// DefaultPropertyService implements PropertyService.
type DefaultPropertyService struct {
	Repo    propertyRepo.PropertyRepository
	Storage storage.StorageService
	Logger  *zap.Logger
}

// Create records a new listing, available by default.
func (s *DefaultPropertyService) Create(ctx context.Context, in CreatePropertyInput) (*models.Property, error) {
	if in.Title == "" || in.City == "" || in.Rent <= 0 {
		return nil, fmt.Errorf("%w: title, city and a positive rent are required", ErrInvalidProperty)
	}

	p := &models.Property{
		ID:           uuid.New().String(),
		OwnerID:      in.OwnerID,
		Title:        in.Title,
		Description:  in.Description,
		City:         in.City,
		Address:      in.Address,
		Rent:         in.Rent,
		Availability: models.PropertyAvailable,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.Logger.Info("property listed", zap.String("propertyID", p.ID), zap.String("ownerID", p.OwnerID))
	return p, nil
}

// GetByID returns a listing by its ID.
func (s *DefaultPropertyService) GetByID(ctx context.Context, id string) (*models.Property, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return p, nil
}

// ListAvailable returns available listings, optionally filtered by city.
func (s *DefaultPropertyService) ListAvailable(ctx context.Context, city string) ([]models.Property, error) {
	return s.Repo.ListAvailable(ctx, city)
}

// ListByOwner returns all of an owner's listings.
func (s *DefaultPropertyService) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// SetAvailability lets the owner flip a listing between available and occupied.
func (s *DefaultPropertyService) SetAvailability(ctx context.Context, id, actorID, availability string) error {
	if availability != models.PropertyAvailable && availability != models.PropertyOccupied {
		return fmt.Errorf("%w: availability must be available or occupied", ErrInvalidProperty)
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID {
		return ErrNotOwner
	}
	return s.Repo.SetAvailability(ctx, id, availability)
}

// AttachPhoto uploads a photo and appends its storage reference to the listing.
func (s *DefaultPropertyService) AttachPhoto(ctx context.Context, id, actorID, localFilePath string) (string, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if p.OwnerID != actorID {
		return "", ErrNotOwner
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, "properties/"+id)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	if err := s.Repo.AddPhoto(ctx, id, publicID); err != nil {
		return "", err
	}
	return publicID, nil
}
