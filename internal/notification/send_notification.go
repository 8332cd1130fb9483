package notification

import (
	"context"

	"firebase.google.com/go/v4/messaging"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/rs/zerolog/log"
)

// SendPush sends a single notification to the device token in the request.
func (s *PushService) SendPush(ctx context.Context, request *dispatcher.NotificationRequest) (string, error) {
	messageID, err := s.client.Send(ctx, toFCMMessage(request))
	if err != nil {
		if messaging.IsUnregistered(err) {
			log.Warn().Err(err).Msg("push token is no longer registered")
		}
		return "", err
	}

	return messageID, nil
}

func toFCMMessage(request *dispatcher.NotificationRequest) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: request.Title,
			Body:  request.Body,
		},
		Data:  request.Data,
		Token: request.Token,
	}
}
