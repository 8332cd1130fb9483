package ingest

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reporter periodically logs a summary of the pipeline stats.
type Reporter struct {
	stats     *Stats
	interval  time.Duration
	startedAt time.Time
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

func NewReporter(stats *Stats, interval time.Duration) (*Reporter, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Reporter{
		stats:     stats,
		interval:  interval,
		startedAt: time.Now(),
		scheduler: scheduler,
		logger:    log.Logger,
	}, nil
}

// Start schedules the summary job.
func (r *Reporter) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(
			func() {
				r.report()
			},
		),
	)
	if err != nil {
		return err
	}

	r.scheduler.Start()
	return nil
}

func (r *Reporter) Stop() error {
	return r.scheduler.Shutdown()
}

func (r *Reporter) report() {
	snapshot := r.stats.Snapshot()

	r.logger.Info().
		Str("job", "dispatch_stats").
		Str("delivered", humanize.Comma(snapshot.Delivered)).
		Str("skipped", humanize.Comma(snapshot.Skipped)).
		Str("failed", humanize.Comma(snapshot.Failed)).
		Str("duplicates", humanize.Comma(snapshot.Duplicates)).
		Str("queued", humanize.Comma(snapshot.Queued)).
		Str("since", humanize.Time(r.startedAt)).
		Msg("notification dispatch summary")
}
