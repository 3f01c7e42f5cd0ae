package notification

import "context"

// Topics published on the outbound event bus.
const (
	TopicBookingCreated  = "booking.created"
	TopicBookingApproved = "booking.approved"
	TopicBookingRejected = "booking.rejected"
	TopicBookingPaid     = "booking.paid"
	TopicBookingExpired  = "booking.expired"
)

// EventPublisher is the outbound event port. Components publish domain
// events through it instead of reaching a process-wide socket registry.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// PushService sends a push notification to a single user.
type PushService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}

// NopPublisher discards every event. Used in tests and when Redis is absent.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	return nil
}

// NopPush discards every push.
type NopPush struct{}

func (NopPush) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	return nil
}
