package alert

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/katatrina/message-notifier/internal/util"
)

// Discord rejects messages longer than 2000 characters.
const maxAlertLength = 1900

// channelSender is the part of *discordgo.Session used for alerts.
type channelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAlerter posts failed deliveries to an operator channel.
type DiscordAlerter struct {
	discord   channelSender
	channelID string
}

func NewDiscordAlerter(botToken, channelID string) (*DiscordAlerter, error) {
	discord, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordAlerter{
		discord:   discord,
		channelID: channelID,
	}, nil
}

func (a *DiscordAlerter) Alert(ctx context.Context, event *dispatcher.MessageEvent, outcome dispatcher.Outcome) error {
	_, err := a.discord.ChannelMessageSend(a.channelID, formatAlert(event, outcome), discordgo.WithContext(ctx))
	return err
}

func formatAlert(event *dispatcher.MessageEvent, outcome dispatcher.Outcome) string {
	messageID, recipientID := "-", "-"
	if event != nil {
		if event.MessageID != "" {
			messageID = event.MessageID
		}
		if event.RecipientID != "" {
			recipientID = event.RecipientID
		}
	}

	reason := "unknown error"
	if outcome.Reason != nil {
		reason = outcome.Reason.Error()
	}

	content := fmt.Sprintf("Push notification %s | message: %s | recipient: %s | %s",
		outcome.Kind, messageID, recipientID, reason)
	return util.TruncateContent(content, maxAlertLength)
}
