package bookingRepo

import (
	"context"
	"errors"

	"roomhive/models"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")

	// ErrCouponConflict is returned when a generated coupon collides with
	// the unique index; the caller should regenerate and retry.
	ErrCouponConflict = errors.New("coupon code already in use")
)

// BookingRepository defines the interface for booking data access.
// Status transitions go through the conditional methods exclusively: they
// filter on the current status so concurrent writers cannot interleave.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]models.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error)
	LatestPaidByRenter(ctx context.Context, renterID string) (*models.Booking, error)

	SetCheckoutSession(ctx context.Context, id, sessionID string) error
	SetApproval(ctx context.Context, id string, status models.ApprovalStatus) error

	// MarkPaidIfPending flips status pending -> paid. Returns false when the
	// booking was not pending (already paid or cancelled), without error.
	MarkPaidIfPending(ctx context.Context, id string) (bool, error)

	// CancelIfPending flips status pending -> cancelled. Returns false when
	// the booking was not pending, without error.
	CancelIfPending(ctx context.Context, id string) (bool, error)

	// SetCouponIfUnset assigns a coupon only when none is present. Returns
	// false when the booking already carries a coupon.
	SetCouponIfUnset(ctx context.Context, id, coupon string) (bool, error)
}
