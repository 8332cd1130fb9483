package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/stretchr/testify/require"
)

func TestTaskIDForMessage(t *testing.T) {
	require.Equal(t, "message:notify:m1", TaskIDForMessage("m1"))
	require.Empty(t, TaskIDForMessage(""))
}

func TestProcessTaskDispatchMessage(t *testing.T) {
	t.Run("should hand the decoded event to the handler", func(t *testing.T) {
		req := require.New(t)

		var got []*dispatcher.MessageEvent
		processor := &RedisTaskProcessor{handler: func(_ context.Context, event *dispatcher.MessageEvent) {
			got = append(got, event)
		}}

		payload, err := json.Marshal(PayloadDispatchMessage{
			MessageEvent: dispatcher.MessageEvent{
				MessageID:   "m1",
				RecipientID: "u1",
				SenderName:  "Ann",
				Content:     "Hi!",
				ChatID:      "c1",
			},
			Source: "firestore",
		})
		req.NoError(err)

		err = processor.ProcessTaskDispatchMessage(context.Background(), asynq.NewTask(TaskDispatchMessage, payload))

		req.NoError(err)
		req.Len(got, 1)
		req.Equal(&dispatcher.MessageEvent{
			MessageID:   "m1",
			RecipientID: "u1",
			SenderName:  "Ann",
			Content:     "Hi!",
			ChatID:      "c1",
		}, got[0])
	})

	t.Run("should flatten the event fields into the payload", func(t *testing.T) {
		payload, err := json.Marshal(PayloadDispatchMessage{
			MessageEvent: dispatcher.MessageEvent{MessageID: "m1", RecipientID: "u1"},
		})

		require.NoError(t, err)
		require.JSONEq(t, `{"messageId":"m1","recipientId":"u1"}`, string(payload))
	})

	t.Run("should not retry a payload that cannot be decoded", func(t *testing.T) {
		req := require.New(t)
		called := false
		processor := &RedisTaskProcessor{handler: func(context.Context, *dispatcher.MessageEvent) {
			called = true
		}}

		err := processor.ProcessTaskDispatchMessage(context.Background(), asynq.NewTask(TaskDispatchMessage, []byte("{not json")))

		req.Error(err)
		req.True(errors.Is(err, asynq.SkipRetry))
		req.False(called)
	})
}
