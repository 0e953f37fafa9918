package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

type staleItemsDecliner interface {
	Handle(ctx context.Context, cmd commands.DeclineStaleItemsCommand) (commands.DeclineStaleItemsResult, error)
}

// AutoDeclineJob cancels items sellers left untouched past the window. The next pass
// starts interval after the previous one ended, or retryInterval after a failed one.
type AutoDeclineJob struct {
	handler       staleItemsDecliner
	interval      time.Duration
	retryInterval time.Duration
	cron          *cron.Cron
	logger        *slog.Logger
	metrics       *metrics.Metrics

	mu      sync.Mutex
	delay   time.Duration
	entryID cron.EntryID
}

// NewAutoDeclineJob creates the job. m may be nil.
func NewAutoDeclineJob(
	handler staleItemsDecliner,
	interval, retryInterval time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
) *AutoDeclineJob {
	logger = logger.With("component", "auto_decline_job")
	return &AutoDeclineJob{
		handler:       handler,
		interval:      interval,
		retryInterval: retryInterval,
		cron:          newCron(logger),
		logger:        logger,
		metrics:       m,
		delay:         interval,
	}
}

func (j *AutoDeclineJob) Name() string { return "auto decline" }

func (j *AutoDeclineJob) Start() error {
	j.reschedule()
	j.cron.Start()
	j.logger.Info("Auto decline job started", "interval", j.interval, "retry_interval", j.retryInterval)
	return nil
}

// reschedule replaces the cron entry so the next pass fires the current delay from now.
// cron computes an entry's next fire time when the previous one starts, which is
// before the pass knows whether it failed.
func (j *AutoDeclineJob) reschedule() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.entryID != 0 {
		j.cron.Remove(j.entryID)
	}
	j.entryID = j.cron.Schedule(delaySchedule{delay: j.delay}, cron.FuncJob(j.tick))
}

// tick runs one scheduled pass. A pass that panics keeps the retry delay.
func (j *AutoDeclineJob) tick() {
	defer j.reschedule()
	j.setNextDelay(j.retryInterval)
	_ = j.Run(context.Background())
}

func (j *AutoDeclineJob) nextDelay() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.delay
}

func (j *AutoDeclineJob) setNextDelay(d time.Duration) {
	j.mu.Lock()
	j.delay = d
	j.mu.Unlock()
}

// Stop waits for a running pass to finish.
func (j *AutoDeclineJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Auto decline job stopped")
}

// Run executes one pass and picks the delay before the next one.
func (j *AutoDeclineJob) Run(ctx context.Context) error {
	result, err := j.handler.Handle(ctx, commands.NewDeclineStaleItemsCommand())
	if err != nil {
		j.setNextDelay(j.retryInterval)
		j.observe("error", commands.DeclineStaleItemsResult{})
		j.logger.ErrorContext(ctx, "Auto decline pass failed",
			"error", err,
			"next_run_in", j.retryInterval,
		)
		return err
	}

	j.setNextDelay(j.interval)
	j.observe("ok", result)
	if result.Declined > 0 || result.Skipped > 0 {
		j.logger.InfoContext(ctx, "Auto decline pass finished",
			"orders", result.Orders,
			"declined", result.Declined,
			"skipped", result.Skipped,
		)
	}
	return nil
}

func (j *AutoDeclineJob) observe(outcome string, result commands.DeclineStaleItemsResult) {
	if j.metrics == nil {
		return
	}
	j.metrics.SweepRuns.WithLabelValues(outcome).Inc()
	j.metrics.SweepDeclined.Add(float64(result.Declined))
	j.metrics.SweepSkipped.Add(float64(result.Skipped))
}
