package booking

import (
	"context"
	"fmt"

	"roomhive/models"
	"roomhive/services/notification"

	"go.uber.org/zap"
)

// SetApprovalStatus records the owner's decision on a pending booking.
// Re-applying the decision already on record is a no-op that returns the
// current state. Any other actor is rejected without touching the booking.
func (s *DefaultBookingService) SetApprovalStatus(ctx context.Context, bookingID, actorID string, decision models.ApprovalStatus) (*models.Booking, error) {
	if !decision.IsDecision() {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", ErrInvalidInput)
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorID != b.OwnerID {
		return nil, ErrNotAuthorized
	}

	if b.ApprovalStatus == decision {
		return b, nil
	}
	if !b.ApprovalStatus.CanTransition(decision) {
		return nil, fmt.Errorf("%w: approval is already %s", ErrIllegalTransition, b.ApprovalStatus)
	}

	if err := s.Repo.SetApproval(ctx, bookingID, decision); err != nil {
		return nil, fmt.Errorf("failed to record approval decision: %w", err)
	}
	b.ApprovalStatus = decision

	topic := notification.TopicBookingApproved
	title := "Booking approved"
	body := "Your booking request was approved. You can now proceed to payment."
	if decision == models.ApprovalRejected {
		topic = notification.TopicBookingRejected
		title = "Booking rejected"
		body = "The owner declined your booking request."
	}
	if err := s.Publisher.Publish(ctx, topic, b); err != nil {
		s.Logger.Warn("failed to publish approval event", zap.String("bookingID", bookingID), zap.Error(err))
	}
	if err := s.Push.SendPush(ctx, b.RenterID, title, body,
		map[string]string{"type": "booking_decision", "bookingId": b.ID}); err != nil {
		s.Logger.Debug("renter push failed", zap.Error(err))
	}

	s.Logger.Info("approval recorded",
		zap.String("bookingID", bookingID),
		zap.String("decision", string(decision)),
	)
	return b, nil
}

// StartCheckout creates a payment session for an approved, unpaid booking
// and stores the session reference. The gateway call carries its own
// timeout; on failure the booking stays exactly where it was.
func (s *DefaultBookingService) StartCheckout(ctx context.Context, bookingID, renterID string) (*models.CheckoutSession, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if renterID != b.RenterID && renterID != b.PartnerID {
		return nil, ErrNotAuthorized
	}
	if b.Status == models.BookingPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status == models.BookingCancelled {
		return nil, fmt.Errorf("%w: booking is cancelled", ErrIllegalTransition)
	}
	if b.ApprovalStatus != models.ApprovalApproved {
		return nil, ErrApprovalRequired
	}

	session, err := s.Gateway.CreateCheckoutSession(ctx, models.CheckoutParams{
		BookingID:   b.ID,
		AmountMinor: int64(b.TotalAmount * 100),
		Currency:    s.Currency,
		SuccessURL:  s.SuccessURL,
		CancelURL:   s.CancelURL,
		Metadata: map[string]string{
			"bookingId":  b.ID,
			"propertyId": b.PropertyID,
			"renterId":   b.RenterID,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SetCheckoutSession(ctx, b.ID, session.SessionID); err != nil {
		return nil, fmt.Errorf("failed to store checkout session: %w", err)
	}

	s.Logger.Info("checkout session created",
		zap.String("bookingID", b.ID),
		zap.String("sessionID", session.SessionID),
	)
	return session, nil
}
