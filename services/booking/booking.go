package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "roomhive/database/repository/booking"
	propertyRepo "roomhive/database/repository/property"
	userRepo "roomhive/database/repository/user"
	"roomhive/models"
	"roomhive/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	PropertyRepo  propertyRepo.PropertyRepository
	UserRepo      userRepo.UserRepository
	Gateway       PaymentGateway
	Publisher     notification.EventPublisher
	Push          notification.PushService
	Scheduler     ExpiryScheduler
	Currency      string
	SuccessURL    string
	CancelURL     string
	PendingTTL    time.Duration
	Logger        *zap.Logger
}

// CreateBooking validates the request, prices it, and records a pending
// booking. Property availability is not touched here: it only changes once
// payment is confirmed by the webhook reconciler.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if !in.RoomType.Valid() {
		return nil, fmt.Errorf("%w: room type must be single or double", ErrInvalidInput)
	}
	if !validMonths[in.Months] {
		return nil, fmt.Errorf("%w: duration must be 3 or 6 months", ErrInvalidInput)
	}

	property, err := s.PropertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrNotFound) {
			return nil, ErrPropertyUnavailable
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if !property.IsAvailable() {
		return nil, ErrPropertyUnavailable
	}
	if property.OwnerID == in.RenterID {
		return nil, ErrSelfBooking
	}

	// Resolve the partner before any write so a bad email creates nothing.
	var partnerID string
	if in.RoomType == models.RoomDouble && in.PartnerEmail != "" {
		partner, err := s.UserRepo.GetByEmail(ctx, in.PartnerEmail)
		if err != nil {
			if errors.Is(err, userRepo.ErrNotFound) {
				return nil, ErrPartnerNotFound
			}
			return nil, fmt.Errorf("failed to resolve partner email: %w", err)
		}
		partnerID = partner.ID
	}

	b := &models.Booking{
		ID:             uuid.New().String(),
		PropertyID:     property.ID,
		OwnerID:        property.OwnerID,
		RenterID:       in.RenterID,
		PartnerID:      partnerID,
		RoomType:       in.RoomType,
		Months:         in.Months,
		TotalAmount:    ComputeTotalAmount(property.Rent, in.RoomType, in.Months),
		Status:         models.BookingPending,
		ApprovalStatus: models.ApprovalPending,
		ReferralCode:   in.ReferralCode,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if s.Scheduler != nil && s.PendingTTL > 0 {
		if err := s.Scheduler.ScheduleExpiry(ctx, b.ID, b.CreatedAt.Add(s.PendingTTL)); err != nil {
			s.Logger.Warn("failed to schedule booking expiry", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	if err := s.Publisher.Publish(ctx, notification.TopicBookingCreated, b); err != nil {
		s.Logger.Warn("failed to publish booking.created", zap.String("bookingID", b.ID), zap.Error(err))
	}
	if err := s.Push.SendPush(ctx, b.OwnerID, "New booking request",
		fmt.Sprintf("A renter requested a %s room for %d months.", b.RoomType, b.Months),
		map[string]string{"type": "booking_request", "bookingId": b.ID}); err != nil {
		s.Logger.Debug("owner push failed", zap.Error(err))
	}

	s.Logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("propertyID", b.PropertyID),
		zap.Float64("totalAmount", b.TotalAmount),
	)
	return b, nil
}

// GetBooking returns a booking visible to the renter, partner or owner.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.RenterID && actorID != b.OwnerID && actorID != b.PartnerID {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

// ListForRenter returns the renter's bookings, newest first.
func (s *DefaultBookingService) ListForRenter(ctx context.Context, renterID string) ([]models.Booking, error) {
	return s.Repo.ListByRenter(ctx, renterID)
}

// ListForOwner returns bookings against the owner's properties, newest first.
func (s *DefaultBookingService) ListForOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// CancelBooking marks a pending booking cancelled. Renter and owner may both
// cancel. Cancellation is terminal; paid bookings cannot be cancelled here.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.RenterID && actorID != b.OwnerID {
		return nil, ErrNotAuthorized
	}
	if !b.Status.CanTransition(models.BookingCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", ErrIllegalTransition, b.Status)
	}

	cancelled, err := s.Repo.CancelIfPending(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !cancelled {
		// Lost the race against a payment confirmation; report the conflict.
		return nil, fmt.Errorf("%w: booking is no longer pending", ErrIllegalTransition)
	}

	b.Status = models.BookingCancelled
	s.Logger.Info("booking cancelled", zap.String("bookingID", bookingID), zap.String("actorID", actorID))
	return b, nil
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return b, nil
}
