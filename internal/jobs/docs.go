// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3. Each job owns its cron instance, wrapped
// with cron.Recover and cron.SkipIfStillRunning, and logs through slog.
//
// # Available Jobs
//
// AutoDeclineJob cancels, as System, every item still Pending and untouched for longer
// than the cancellation window. It runs every SWEEP_INTERVAL. A failed pass moves the
// next one to SWEEP_RETRY_INTERVAL; the next successful pass restores the normal pace.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewAutoDeclineJob(&declineHandler, time.Hour, 5*time.Minute, logger, m),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
