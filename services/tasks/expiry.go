package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TypeBookingExpire is the task type for cancelling stale unpaid bookings.
const TypeBookingExpire = "booking:expire"

// BookingExpirePayload identifies the booking to expire.
type BookingExpirePayload struct {
	BookingID string `json:"bookingId"`
}

// NewBookingExpireTask builds a deferred expiry task for a booking.
func NewBookingExpireTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(BookingExpirePayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
