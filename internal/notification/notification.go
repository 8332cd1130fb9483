package notification

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// messagingClient is the subset of *messaging.Client used to deliver pushes.
type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushService delivers notification requests through Firebase Cloud Messaging.
type PushService struct {
	client messagingClient
}

func NewPushService(ctx context.Context, firebaseApp *firebase.App) (*PushService, error) {
	// Initialize FCM client
	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return &PushService{
		client: messagingClient,
	}, nil
}
