package ingest

import (
	"sync/atomic"

	"github.com/katatrina/message-notifier/internal/dispatcher"
)

// Stats counts pipeline results since process start.
type Stats struct {
	delivered  atomic.Int64
	skipped    atomic.Int64
	failed     atomic.Int64
	duplicates atomic.Int64
	queued     atomic.Int64
}

type StatsSnapshot struct {
	Delivered  int64 `json:"delivered"`
	Skipped    int64 `json:"skipped"`
	Failed     int64 `json:"failed"`
	Duplicates int64 `json:"duplicates"`
	Queued     int64 `json:"queued"`
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) record(outcome dispatcher.Outcome) {
	switch outcome.Kind {
	case dispatcher.OutcomeDelivered:
		s.delivered.Add(1)
	case dispatcher.OutcomeSkipped:
		s.skipped.Add(1)
	case dispatcher.OutcomeFailed:
		s.failed.Add(1)
	}
}

func (s *Stats) recordDuplicate() {
	s.duplicates.Add(1)
}

func (s *Stats) recordQueued() {
	s.queued.Add(1)
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Delivered:  s.delivered.Load(),
		Skipped:    s.skipped.Load(),
		Failed:     s.failed.Load(),
		Duplicates: s.duplicates.Load(),
		Queued:     s.queued.Load(),
	}
}
