package notification

import (
	"context"
	"fmt"

	userRepo "roomhive/database/repository/user"
	"roomhive/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMPushService sends push notifications through Firebase Cloud Messaging.
type FCMPushService struct {
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

// NewFCMPushService creates the production push service.
func NewFCMPushService(users userRepo.UserRepository, logger *zap.Logger) *FCMPushService {
	return &FCMPushService{Users: users, Logger: logger}
}

// SendPush looks up the user's FCM token and sends a push. Users without a
// registered token are skipped silently; there is no device to reach.
func (s *FCMPushService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return nil
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		s.Logger.Warn("push send failed", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
