package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	bookingRepo "roomhive/database/repository/booking"
	"roomhive/models"

	"go.uber.org/zap"
)

const couponRetryAttempts = 5

// generateCouponCode returns a token of the form COUPON-<8 hex chars>.
func generateCouponCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate coupon randomness: %w", err)
	}
	return "COUPON-" + hex.EncodeToString(buf), nil
}

// IssueCoupon assigns a coupon to a booking that has just become paid.
// Idempotent: a booking that already carries a coupon keeps it. Collisions
// against the unique coupon index are retried with a fresh code, the same
// strategy the referral-code generator uses.
func (s *DefaultBookingService) IssueCoupon(ctx context.Context, b *models.Booking) (string, error) {
	if b.Coupon != "" {
		return b.Coupon, nil
	}

	for attempt := 0; attempt < couponRetryAttempts; attempt++ {
		code, err := generateCouponCode()
		if err != nil {
			return "", err
		}

		applied, err := s.Repo.SetCouponIfUnset(ctx, b.ID, code)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrCouponConflict) {
				continue
			}
			return "", fmt.Errorf("failed to assign coupon: %w", err)
		}
		if !applied {
			// A concurrent handler won; return what it assigned.
			current, err := s.getBooking(ctx, b.ID)
			if err != nil {
				return "", err
			}
			b.Coupon = current.Coupon
			return current.Coupon, nil
		}

		b.Coupon = code
		s.Logger.Info("coupon issued", zap.String("bookingID", b.ID), zap.String("coupon", code))
		return code, nil
	}

	return "", fmt.Errorf("failed to issue coupon for booking %s: exhausted %d attempts", b.ID, couponRetryAttempts)
}

// CouponForUser returns the coupon of the user's most recent paid booking.
func (s *DefaultBookingService) CouponForUser(ctx context.Context, userID string) (string, error) {
	b, err := s.Repo.LatestPaidByRenter(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return "", ErrCouponNotFound
		}
		return "", fmt.Errorf("failed to look up coupon: %w", err)
	}
	if b.Coupon == "" {
		return "", ErrCouponNotFound
	}
	return b.Coupon, nil
}
