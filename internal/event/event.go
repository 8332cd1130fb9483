package event

import (
	"github.com/katatrina/message-notifier/internal/dispatcher"
)

// Field names of a message document.
const (
	FieldRecipientID = "recipientId"
	FieldSenderName  = "senderName"
	FieldContent     = "content"
	FieldChatID      = "chatId"
	FieldMessageID   = "messageId"
)

const (
	SourceFirestore = "firestore"
	SourcePubSub    = "pubsub"
	SourceWebhook   = "webhook"
)

// MessageFromDocument converts a message document into a MessageEvent.
// Nil data yields a nil event; fields that are not strings are treated as absent.
func MessageFromDocument(messageID string, data map[string]interface{}) *dispatcher.MessageEvent {
	if data == nil {
		return nil
	}

	if messageID == "" {
		messageID = stringField(data, FieldMessageID)
	}

	return &dispatcher.MessageEvent{
		MessageID:   messageID,
		RecipientID: stringField(data, FieldRecipientID),
		SenderName:  stringField(data, FieldSenderName),
		Content:     stringField(data, FieldContent),
		ChatID:      stringField(data, FieldChatID),
	}
}

func stringField(data map[string]interface{}, key string) string {
	value, _ := data[key].(string)
	return value
}
