package ingest

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/katatrina/message-notifier/internal/dispatcher"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestStats_ConcurrentRecord(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.record(dispatcher.Outcome{Kind: dispatcher.OutcomeDelivered})
			stats.record(dispatcher.Outcome{Kind: dispatcher.OutcomeSkipped})
			stats.recordDuplicate()
		}()
	}
	wg.Wait()

	require.Equal(t, StatsSnapshot{Delivered: 100, Skipped: 100, Duplicates: 100}, stats.Snapshot())
}

func TestReporter_Report(t *testing.T) {
	req := require.New(t)
	stats := NewStats()
	for i := 0; i < 1500; i++ {
		stats.record(dispatcher.Outcome{Kind: dispatcher.OutcomeDelivered})
	}
	stats.record(dispatcher.Outcome{Kind: dispatcher.OutcomeFailed})

	reporter, err := NewReporter(stats, time.Minute)
	req.NoError(err)
	t.Cleanup(func() { _ = reporter.Stop() })

	var buf bytes.Buffer
	reporter.logger = zerolog.New(&buf)
	reporter.report()

	out := buf.String()
	req.Contains(out, `"delivered":"1,500"`)
	req.Contains(out, `"failed":"1"`)
	req.Contains(out, `"job":"dispatch_stats"`)
}
