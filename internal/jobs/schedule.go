package jobs

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// delaySchedule fires once delay has passed since the entry was (re)added. Jobs
// that change their pace replace their entry after every run.
type delaySchedule struct {
	delay time.Duration
}

// Next implements cron.Schedule.
func (s delaySchedule) Next(t time.Time) time.Time {
	return t.Add(s.delay)
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

func newCron(logger *slog.Logger) *cron.Cron {
	cl := cronLogger{logger: logger}
	return cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}
