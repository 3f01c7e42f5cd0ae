package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	bookingRepo "roomhive/database/repository/booking"
	propertyRepo "roomhive/database/repository/property"
	"roomhive/models"
	"roomhive/services/notification"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// CouponIssuer is the slice of the booking ledger the reconciler needs.
type CouponIssuer interface {
	IssueCoupon(ctx context.Context, b *models.Booking) (string, error)
}

// Reconciler applies asynchronous payment confirmations to bookings.
// Stripe delivers events at least once, so every effect behind it must be
// guarded: the pending->paid flip is an atomic conditional update and the
// coupon assignment only applies when none is present.
type Reconciler struct {
	Verifier   WebhookVerifier
	Bookings   bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
	Coupons    CouponIssuer
	Publisher  notification.EventPublisher
	Push       notification.PushService
	Logger     *zap.Logger
}

// HandleEvent verifies and applies one webhook delivery. A nil return means
// the delivery should be acknowledged; an error means the processor should
// retry later. Signature failures surface as ErrSignatureInvalid so the
// handler can reject the delivery without retry.
func (r *Reconciler) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := r.Verifier.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return err
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return r.handleSessionCompleted(ctx, sess.ID)

	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to decode checkout session: %w", err)
		}
		return r.handleSessionExpired(ctx, sess.ID)

	default:
		r.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (r *Reconciler) handleSessionCompleted(ctx context.Context, sessionID string) error {
	b, err := r.Bookings.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			// The event may belong to an unrelated or deleted resource.
			// Acknowledge so the processor does not hammer it forever.
			r.Logger.Info("payment event for unknown session", zap.String("sessionID", sessionID))
			return nil
		}
		return fmt.Errorf("failed to look up booking for session %s: %w", sessionID, err)
	}

	applied, err := r.Bookings.MarkPaidIfPending(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}
	if !applied {
		if b.Status == models.BookingCancelled {
			r.Logger.Warn("payment confirmed for cancelled booking",
				zap.String("bookingID", b.ID), zap.String("sessionID", sessionID))
			return nil
		}
		// Duplicate delivery: already paid, acknowledge without reapplying.
		r.Logger.Debug("duplicate payment event", zap.String("bookingID", b.ID))
		return nil
	}

	b.Status = models.BookingPaid
	if _, err := r.Coupons.IssueCoupon(ctx, b); err != nil {
		return fmt.Errorf("failed to issue coupon for booking %s: %w", b.ID, err)
	}
	if err := r.Properties.SetAvailability(ctx, b.PropertyID, models.PropertyOccupied); err != nil {
		return fmt.Errorf("failed to occupy property %s: %w", b.PropertyID, err)
	}

	if err := r.Publisher.Publish(ctx, notification.TopicBookingPaid, b); err != nil {
		r.Logger.Warn("failed to publish booking.paid", zap.String("bookingID", b.ID), zap.Error(err))
	}
	if err := r.Push.SendPush(ctx, b.RenterID, "Payment confirmed",
		"Your booking is confirmed. Your coupon is ready in the app.",
		map[string]string{"type": "payment_confirmation", "bookingId": b.ID, "coupon": b.Coupon}); err != nil {
		r.Logger.Debug("renter push failed", zap.Error(err))
	}

	r.Logger.Info("booking reconciled as paid",
		zap.String("bookingID", b.ID),
		zap.String("sessionID", sessionID),
		zap.String("coupon", b.Coupon),
	)
	return nil
}

func (r *Reconciler) handleSessionExpired(ctx context.Context, sessionID string) error {
	b, err := r.Bookings.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up booking for session %s: %w", sessionID, err)
	}

	cancelled, err := r.Bookings.CancelIfPending(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", b.ID, err)
	}
	if cancelled {
		b.Status = models.BookingCancelled
		if err := r.Publisher.Publish(ctx, notification.TopicBookingExpired, b); err != nil {
			r.Logger.Warn("failed to publish booking.expired", zap.String("bookingID", b.ID), zap.Error(err))
		}
		r.Logger.Info("booking cancelled on session expiry", zap.String("bookingID", b.ID))
	}
	return nil
}
