//go:generate go run go.uber.org/mock/mockgen -source=distributor.go -destination=../mocks/mock_distributor.go -package=mocks
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskDispatchMessage = "message:notify"
)

// ErrDuplicateTask is returned when a task for the same message is already queued or retained.
var ErrDuplicateTask = errors.New("task for this message already exists")

/*
This file will contain the codes to create tasks and distributes them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskDispatchMessage(ctx context.Context, payload *PayloadDispatchMessage, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client    *asynq.Client // client sends tasks to redis queue.
	retention time.Duration // how long finished tasks keep their id reserved.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt, retention time.Duration) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		client:    client,
		retention: retention,
	}
}
