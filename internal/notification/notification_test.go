package notification

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/stretchr/testify/require"
)

type fakeMessagingClient struct {
	sent []*messaging.Message
	id   string
	err  error
}

func (f *fakeMessagingClient) Send(_ context.Context, message *messaging.Message) (string, error) {
	f.sent = append(f.sent, message)
	return f.id, f.err
}

func TestPushService_SendPush(t *testing.T) {
	request := &dispatcher.NotificationRequest{
		Title: "New Message from Ann",
		Body:  "Hi!",
		Data:  map[string]string{"chatId": "c1"},
		Token: "TOKEN123",
	}

	t.Run("should send the request as a single FCM message", func(t *testing.T) {
		req := require.New(t)
		client := &fakeMessagingClient{id: "projects/p/messages/42"}
		service := &PushService{client: client}

		id, err := service.SendPush(context.Background(), request)

		req.NoError(err)
		req.Equal("projects/p/messages/42", id)
		req.Len(client.sent, 1)
		req.Equal(&messaging.Message{
			Notification: &messaging.Notification{Title: "New Message from Ann", Body: "Hi!"},
			Data:         map[string]string{"chatId": "c1"},
			Token:        "TOKEN123",
		}, client.sent[0])
	})

	t.Run("should return the provider error", func(t *testing.T) {
		req := require.New(t)
		sendErr := errors.New("quota exceeded")
		service := &PushService{client: &fakeMessagingClient{err: sendErr}}

		id, err := service.SendPush(context.Background(), request)

		req.ErrorIs(err, sendErr)
		req.Empty(id)
	})
}

func TestDisplayNotification(t *testing.T) {
	t.Run("should keep the title and data and default the body", func(t *testing.T) {
		payload := BackgroundPayload{
			Notification: &PayloadNotification{Title: "Hi"},
			Data:         map[string]string{"chatId": "c9"},
		}

		displayed := DisplayNotification(payload, "")

		require.Equal(t, DisplayedNotification{
			Title: "Hi",
			Body:  "",
			Icon:  DefaultIcon,
			Data:  map[string]string{"chatId": "c9"},
		}, displayed)
	})

	t.Run("should default everything for an empty payload", func(t *testing.T) {
		displayed := DisplayNotification(BackgroundPayload{}, "/static/bell.png")

		require.Equal(t, DisplayedNotification{
			Title: "New message",
			Body:  "",
			Icon:  "/static/bell.png",
			Data:  map[string]string{},
		}, displayed)
	})

	t.Run("should not share the data map with the payload", func(t *testing.T) {
		payload := BackgroundPayload{Data: map[string]string{"chatId": "c1"}}

		displayed := DisplayNotification(payload, "")
		displayed.Data["chatId"] = "changed"

		require.Equal(t, "c1", payload.Data["chatId"])
	})
}

func TestRenderServiceWorker(t *testing.T) {
	t.Run("should embed the web config and display defaults", func(t *testing.T) {
		req := require.New(t)

		script, err := RenderServiceWorker(WebConfig{
			SDKVersion:        "9.22.1",
			APIKey:            "api-key",
			AuthDomain:        "baby-shop-hub.firebaseapp.com",
			ProjectID:         "baby-shop-hub",
			StorageBucket:     "baby-shop-hub.appspot.com",
			MessagingSenderID: "93624205799",
			AppID:             "1:936:web:392",
		})

		req.NoError(err)
		out := string(script)
		req.Contains(out, "https://www.gstatic.com/firebasejs/9.22.1/firebase-app-compat.js")
		req.Contains(out, "https://www.gstatic.com/firebasejs/9.22.1/firebase-messaging-compat.js")
		req.Contains(out, `apiKey: "api-key"`)
		req.Contains(out, `projectId: "baby-shop-hub"`)
		req.Contains(out, `messagingSenderId: "93624205799"`)
		req.Contains(out, `icon: "/icons/Icon-192.png"`)
		req.Contains(out, `|| "New message"`)
		req.Contains(out, "data: payload.data || {}")
	})

	t.Run("should escape values that would break the script", func(t *testing.T) {
		script, err := RenderServiceWorker(WebConfig{SDKVersion: "9.22.1", APIKey: `a"b`})

		require.NoError(t, err)
		require.NotContains(t, string(script), `apiKey: "a"b"`)
	})

	t.Run("should require an sdk version", func(t *testing.T) {
		_, err := RenderServiceWorker(WebConfig{})
		require.Error(t, err)
	})
}

func TestRenderServiceWorker_MatchesDisplayNotification(t *testing.T) {
	testCases := []struct {
		name string
		icon string
	}{
		{name: "default icon", icon: ""},
		{name: "configured icon", icon: "/static/chat.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			script, err := RenderServiceWorker(WebConfig{SDKVersion: "9.22.1", Icon: tc.icon})
			req.NoError(err)

			// An empty payload shows every default.
			displayed := DisplayNotification(BackgroundPayload{}, tc.icon)

			out := string(script)
			req.Contains(out, `(payload.notification && payload.notification.title) || "`+displayed.Title+`"`)
			req.Contains(out, `(payload.notification && payload.notification.body) || '`+displayed.Body+`'`)
			req.Contains(out, `icon: "`+displayed.Icon+`"`)
			req.Empty(displayed.Data)
			req.Contains(out, "data: payload.data || {}")
		})
	}
}
