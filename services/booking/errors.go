package booking

import "errors"

// Validation and authorization errors surfaced to callers. None of these
// are retried internally; the caller gets enough detail to correct input.
var (
	ErrPropertyUnavailable = errors.New("property is not available for booking")
	ErrSelfBooking         = errors.New("owners cannot book their own property")
	ErrPartnerNotFound     = errors.New("partner email does not match any user")
	ErrNotAuthorized       = errors.New("only the property owner may decide this booking")
	ErrApprovalRequired    = errors.New("booking must be approved before payment")
	ErrAlreadyPaid         = errors.New("booking is already paid")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrCouponNotFound      = errors.New("no coupon found for user")
	ErrIllegalTransition   = errors.New("illegal booking state transition")
	ErrInvalidInput        = errors.New("invalid booking input")
)
