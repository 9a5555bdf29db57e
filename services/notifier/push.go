package notifier

import (
	"context"
	"fmt"

	"seatwise/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
)

// TokenStore maps an identity to its registered FCM device token. Account
// storage lives in the external identity service, so tokens are registered
// directly with this subsystem and kept in Redis.
type TokenStore interface {
	SetToken(ctx context.Context, recipientID, token string) error
	GetToken(ctx context.Context, recipientID string) (string, error)
}

// RedisTokenStore implements TokenStore on the generic cache client.
type RedisTokenStore struct {
	Client *redis.Client
}

func (s *RedisTokenStore) SetToken(ctx context.Context, recipientID, token string) error {
	if err := s.Client.Set(ctx, utils.FCMTokenPrefix+recipientID, token, 0).Err(); err != nil {
		return fmt.Errorf("failed to store FCM token for %s: %w", recipientID, err)
	}
	return nil
}

func (s *RedisTokenStore) GetToken(ctx context.Context, recipientID string) (string, error) {
	token, err := s.Client.Get(ctx, utils.FCMTokenPrefix+recipientID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read FCM token for %s: %w", recipientID, err)
	}
	return token, nil
}

// FCMPushSender sends reservation lifecycle pushes through Firebase Cloud
// Messaging. Recipients without a registered token are skipped silently;
// push is a courtesy, the pub/sub fan-out is the consistency mechanism.
type FCMPushSender struct {
	Client *messaging.Client
	Tokens TokenStore
}

// NewFCMPushSender constructs an FCMPushSender.
func NewFCMPushSender(client *messaging.Client, tokens TokenStore) *FCMPushSender {
	return &FCMPushSender{Client: client, Tokens: tokens}
}

// SendPush looks up the recipient's token and sends a push.
func (s *FCMPushSender) SendPush(ctx context.Context, recipientID, title, body string, data map[string]string) error {
	if s.Client == nil {
		return nil // push delivery disabled
	}
	token, err := s.Tokens.GetToken(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("SendPush: %w", err)
	}
	if token == "" {
		return nil // no push target
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
		},
	}

	if _, err := s.Client.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
