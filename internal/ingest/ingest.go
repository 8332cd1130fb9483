//go:generate go run go.uber.org/mock/mockgen -source=ingest.go -destination=../mocks/mock_ingest.go -package=mocks
package ingest

import (
	"context"
	"errors"

	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/katatrina/message-notifier/internal/worker"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	StatusQueued    = "queued"
	StatusDuplicate = "duplicate"
	StatusProcessed = "processed"
)

// Handler is implemented by *dispatcher.Dispatcher.
type Handler interface {
	Handle(ctx context.Context, event *dispatcher.MessageEvent) dispatcher.Outcome
}

// Claimer reserves a message id so that redelivered events are dispatched once.
type Claimer interface {
	Claim(ctx context.Context, messageID string) (bool, error)
}

// Alerter tells operators about failed deliveries.
type Alerter interface {
	Alert(ctx context.Context, event *dispatcher.MessageEvent, outcome dispatcher.Outcome) error
}

// Receipt describes what happened to an ingested event.
type Receipt struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Pipeline is the single entry point for every event source.
type Pipeline struct {
	handler     Handler
	stats       *Stats
	claimer     Claimer
	distributor worker.TaskDistributor
	alerter     Alerter
	logger      zerolog.Logger
}

type Option func(*Pipeline)

// WithClaimer enables duplicate suppression.
func WithClaimer(claimer Claimer) Option {
	return func(p *Pipeline) {
		p.claimer = claimer
	}
}

// WithDistributor switches the pipeline to queue mode.
func WithDistributor(distributor worker.TaskDistributor) Option {
	return func(p *Pipeline) {
		p.distributor = distributor
	}
}

func WithAlerter(alerter Alerter) Option {
	return func(p *Pipeline) {
		p.alerter = alerter
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func NewPipeline(handler Handler, stats *Stats, opts ...Option) *Pipeline {
	p := &Pipeline{
		handler: handler,
		stats:   stats,
		logger:  log.Logger,
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ingest accepts an event from a source. In queue mode the event is enqueued;
// if that fails for any reason other than a duplicate, it is processed inline instead.
func (p *Pipeline) Ingest(ctx context.Context, event *dispatcher.MessageEvent, source string) Receipt {
	if p.distributor == nil || event == nil {
		return p.Process(ctx, event)
	}

	err := p.distributor.DistributeTaskDispatchMessage(ctx, &worker.PayloadDispatchMessage{
		MessageEvent: *event,
		Source:       source,
	})
	if err == nil {
		p.stats.recordQueued()
		return Receipt{Status: StatusQueued}
	}

	if errors.Is(err, worker.ErrDuplicateTask) {
		p.stats.recordDuplicate()
		p.logger.Info().Str("message_id", event.MessageID).Str("source", source).Msg("message already queued, skipping")
		return Receipt{Status: StatusDuplicate}
	}

	p.logger.Error().Err(err).Str("message_id", event.MessageID).Msg("failed to enqueue message, dispatching inline")
	return p.Process(ctx, event)
}

// Process runs the dispatcher for one event. It never fails; problems are
// logged and reflected in the receipt.
func (p *Pipeline) Process(ctx context.Context, event *dispatcher.MessageEvent) Receipt {
	if event != nil && event.MessageID != "" && p.claimer != nil {
		claimed, err := p.claimer.Claim(ctx, event.MessageID)
		if err != nil {
			// Fail open: a possible duplicate is better than a lost notification.
			p.logger.Error().Err(err).Str("message_id", event.MessageID).Msg("dedup check failed, dispatching anyway")
		} else if !claimed {
			p.stats.recordDuplicate()
			p.logger.Info().Str("message_id", event.MessageID).Msg("message already dispatched, skipping")
			return Receipt{Status: StatusDuplicate}
		}
	}

	outcome := p.handler.Handle(ctx, event)
	p.stats.record(outcome)

	if outcome.Kind == dispatcher.OutcomeFailed && p.alerter != nil {
		if err := p.alerter.Alert(ctx, event, outcome); err != nil {
			p.logger.Error().Err(err).Msg("failed to send delivery alert")
		}
	}

	receipt := Receipt{Status: StatusProcessed, Outcome: outcome.Kind.String()}
	if outcome.Reason != nil {
		receipt.Reason = outcome.Reason.Error()
	}
	return receipt
}

// IngestMessage is Ingest without the receipt, for sources that have nobody to answer.
func (p *Pipeline) IngestMessage(ctx context.Context, event *dispatcher.MessageEvent, source string) {
	p.Ingest(ctx, event, source)
}
