//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=../mocks/mock_dispatcher.go -package=mocks
package dispatcher

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultSenderName = "Someone"
	DefaultContent    = "New message"

	titlePrefix = "New Message from "
)

// UserLookup resolves a recipient id to its profile.
// A missing profile is reported as (nil, nil), not as an error.
type UserLookup interface {
	LookupUser(ctx context.Context, id string) (*UserProfile, error)
}

// PushSender submits one notification and returns the provider's message id.
type PushSender interface {
	SendPush(ctx context.Context, request *NotificationRequest) (string, error)
}

// Dispatcher turns a MessageEvent into at most one push notification.
// It holds no per-event state, so concurrent Handle calls are independent.
type Dispatcher struct {
	users  UserLookup
	sender PushSender
	logger zerolog.Logger
}

type Option func(*Dispatcher)

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func New(users UserLookup, sender PushSender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		users:  users,
		sender: sender,
		logger: log.Logger,
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle looks up the recipient and sends the notification. It never returns
// an error: every failure is logged and reported through the Outcome.
func (d *Dispatcher) Handle(ctx context.Context, event *MessageEvent) Outcome {
	if event == nil {
		d.logger.Error().Msg("no data in message event")
		return skipped(ErrMissingData)
	}

	logger := d.logger.With().Str("message_id", event.MessageID).Logger()

	if event.RecipientID == "" {
		logger.Error().Msg("missing recipientId")
		return skipped(ErrMissingData)
	}
	logger = logger.With().Str("recipient_id", event.RecipientID).Logger()

	profile, err := d.users.LookupUser(ctx, event.RecipientID)
	if err != nil {
		err = &DeliveryError{Err: fmt.Errorf("failed to look up recipient: %w", err)}
		logger.Error().Err(err).Msg("error sending notification")
		return failed(err)
	}
	if profile == nil {
		logger.Info().Msg("no user document found for recipient")
		return skipped(ErrRecipientNotFound)
	}
	if profile.FCMToken == "" {
		logger.Info().Msg("no FCM token for user")
		return skipped(ErrNoDeliveryAddress)
	}

	request := BuildRequest(event, profile.FCMToken)

	providerMessageID, err := d.sender.SendPush(ctx, request)
	if err != nil {
		err = &DeliveryError{Err: err}
		logger.Error().Err(err).Msg("error sending notification")
		return failed(err)
	}

	logger.Info().Str("provider_message_id", providerMessageID).Msg("notification sent successfully")
	return delivered(providerMessageID)
}

// BuildRequest applies the title/body/data defaults for a message.
func BuildRequest(event *MessageEvent, token string) *NotificationRequest {
	senderName := event.SenderName
	if senderName == "" {
		senderName = DefaultSenderName
	}

	content := event.Content
	if content == "" {
		content = DefaultContent
	}

	return &NotificationRequest{
		Title: titlePrefix + senderName,
		Body:  content,
		Data: map[string]string{
			"chatId": event.ChatID,
		},
		Token: token,
	}
}
