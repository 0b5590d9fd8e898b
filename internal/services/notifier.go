package services

import (
	"context"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/petcircle/backend/internal/repositories"
)

// Notifier delivers a short message to a user, best effort. Implementations
// must swallow delivery failures; a failed notification never fails the
// domain write that triggered it.
type Notifier interface {
	Notify(ctx context.Context, userID uint, message string)
}

// PushNotifier delivers notifications through Firebase Cloud Messaging
type PushNotifier struct {
	client *messaging.Client
	users  repositories.UserRepository
}

// NewPushNotifier creates a new PushNotifier
func NewPushNotifier(client *messaging.Client, users repositories.UserRepository) *PushNotifier {
	return &PushNotifier{client: client, users: users}
}

// Notify sends a push notification to the user's registered device.
// All failures are logged and discarded.
func (n *PushNotifier) Notify(ctx context.Context, userID uint, message string) {
	user, err := n.users.GetUserByID(userID)
	if err != nil {
		log.Printf("push notification skipped, user %d not found: %v", userID, err)
		return
	}
	if user.DeviceToken == "" {
		return
	}

	_, err = n.client.Send(ctx, &messaging.Message{
		Token: user.DeviceToken,
		Notification: &messaging.Notification{
			Title: "PetCircle",
			Body:  message,
		},
	})
	if err != nil {
		log.Printf("push notification to user %d failed: %v", userID, err)
	}
}

// NoopNotifier discards all notifications. Used when FCM is not configured.
type NoopNotifier struct{}

// Notify does nothing
func (NoopNotifier) Notify(ctx context.Context, userID uint, message string) {}
