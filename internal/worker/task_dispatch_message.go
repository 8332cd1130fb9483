package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/rs/zerolog/log"
)

// PayloadDispatchMessage contain all data of the task that we want to store in Redis.
type PayloadDispatchMessage struct {
	dispatcher.MessageEvent
	Source string `json:"source,omitempty"`
}

// TaskIDForMessage returns the task id reserved for a message, or "" when the message has no id.
func TaskIDForMessage(messageID string) string {
	if messageID == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", TaskDispatchMessage, messageID)
}

// DistributeTaskDispatchMessage enqueues a notification task. A message id is
// turned into the task id, so a second enqueue for the same message fails with ErrDuplicateTask.
func (distributor *RedisTaskDistributor) DistributeTaskDispatchMessage(
	ctx context.Context,
	payload *PayloadDispatchMessage,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskOpts := []asynq.Option{asynq.MaxRetry(0), asynq.Queue(QueueCritical)}
	if taskID := TaskIDForMessage(payload.MessageID); taskID != "" {
		taskOpts = append(taskOpts, asynq.TaskID(taskID))
		if distributor.retention > 0 {
			taskOpts = append(taskOpts, asynq.Retention(distributor.retention))
		}
	}

	task := asynq.NewTask(TaskDispatchMessage, jsonPayload, append(taskOpts, opts...)...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			return ErrDuplicateTask
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("type", task.Type()).
		Str("task_id", info.ID).
		Str("message_id", payload.MessageID).
		Str("queue", info.Queue).
		Int("max_retry", info.MaxRetry).
		Msg("task enqueued")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskDispatchMessage(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadDispatchMessage
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	processor.handler(ctx, &payload.MessageEvent)

	log.Info().Str("type", task.Type()).
		Str("message_id", payload.MessageID).
		Str("source", payload.Source).
		Msg("task processed")

	return nil
}
