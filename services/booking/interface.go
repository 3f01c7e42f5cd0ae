package booking

import (
	"context"
	"time"

	"roomhive/models"
)

// CreateBookingInput carries a renter's booking request.
type CreateBookingInput struct {
	PropertyID   string          `json:"propertyId"`
	RenterID     string          `json:"-"`
	RoomType     models.RoomType `json:"roomType"`
	Months       int             `json:"months"`
	PartnerEmail string          `json:"partnerEmail,omitempty"`
	ReferralCode string          `json:"referralCode,omitempty"`
}

// BookingService owns the booking lifecycle: creation and pricing, the
// owner approval gate, checkout initiation, cancellation and coupons.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	ListForRenter(ctx context.Context, renterID string) ([]models.Booking, error)
	ListForOwner(ctx context.Context, ownerID string) ([]models.Booking, error)
	SetApprovalStatus(ctx context.Context, bookingID, actorID string, decision models.ApprovalStatus) (*models.Booking, error)
	StartCheckout(ctx context.Context, bookingID, renterID string) (*models.CheckoutSession, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	IssueCoupon(ctx context.Context, b *models.Booking) (string, error)
	CouponForUser(ctx context.Context, userID string) (string, error)
}

// PaymentGateway is the slice of the payment adapter the ledger needs.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params models.CheckoutParams) (*models.CheckoutSession, error)
}

// ExpiryScheduler schedules the deferred cancellation of an unpaid booking.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error
}
