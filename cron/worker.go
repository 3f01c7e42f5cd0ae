package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"roomhive/config"
	bookingRepo "roomhive/database/repository/booking"
	"roomhive/services/notification"
	"roomhive/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ExpiryScheduler enqueues deferred booking-expiry tasks.
type ExpiryScheduler struct {
	client *asynq.Client
}

// NewExpiryScheduler creates the asynq-backed scheduler.
func NewExpiryScheduler() *ExpiryScheduler {
	return &ExpiryScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleExpiry enqueues a task that fires when the payment window closes.
func (s *ExpiryScheduler) ScheduleExpiry(ctx context.Context, bookingID string, at time.Time) error {
	task, opts, err := tasks.NewBookingExpireTask(bookingID, at)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}

// InitExpiryWorker runs the async worker in background. The handler uses the
// same conditional transition as the webhook reconciler, so a booking paid
// in the meantime is left alone.
func InitExpiryWorker(repo bookingRepo.BookingRepository, publisher notification.EventPublisher, logger *zap.Logger) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingExpire, handleExpireTask(repo, publisher, logger))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ExpiryWorker] failed to start worker: %v", err)
		}
	}()
}

func handleExpireTask(repo bookingRepo.BookingRepository, publisher notification.EventPublisher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.BookingExpirePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("malformed expiry payload", zap.Error(err))
			return nil // retrying cannot fix a bad payload
		}

		cancelled, err := repo.CancelIfPending(ctx, payload.BookingID)
		if err != nil {
			return err // redeliver; the conditional update keeps this safe
		}
		if !cancelled {
			return nil
		}

		if err := publisher.Publish(ctx, notification.TopicBookingExpired,
			map[string]string{"bookingId": payload.BookingID}); err != nil {
			logger.Warn("failed to publish booking.expired", zap.Error(err))
		}
		logger.Info("stale pending booking cancelled", zap.String("bookingID", payload.BookingID))
		return nil
	}
}
