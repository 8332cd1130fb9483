package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// MessageHandlerFunc processes one message event pulled from the queue.
// It must not fail: the outcome of a dispatch is never a reason to retry the task.
type MessageHandlerFunc func(ctx context.Context, event *dispatcher.MessageEvent)

type RedisTaskProcessor struct {
	server  *asynq.Server
	handler MessageHandlerFunc
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, handler MessageHandlerFunc) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)

	return &RedisTaskProcessor{
		server:  server,
		handler: handler,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskDispatchMessage, processor.ProcessTaskDispatchMessage)

	return processor.server.Start(mux)
}

// Shutdown waits for in-flight tasks and stops the server.
func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
