// Package firebase delivers push notifications through Firebase Cloud
// Messaging. Each user is subscribed to a per-user topic by the mobile
// app, so the backend never stores device tokens.
package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Notifier is the push interface consumed by the sync jobs. A nil
// Notifier disables notifications.
type Notifier interface {
	SendToUser(ctx context.Context, userID, title, body string, data map[string]string) error
}

type Client struct {
	msgClient *messaging.Client
}

var _ Notifier = (*Client)(nil)

func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient}, nil
}

// SendToUser publishes a notification to the user's topic.
func (c *Client) SendToUser(ctx context.Context, userID, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: userTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := c.msgClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	return nil
}

// userTopic returns the FCM topic the mobile app subscribes each user to.
func userTopic(userID string) string {
	return "user-" + userID
}
