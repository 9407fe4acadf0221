// Package jobs provides scheduled background sweeps for the handoff service.
//
// Jobs are built on github.com/robfig/cron/v3. Each job owns its scheduler,
// so a slow sweep never delays another one.
//
// # Available Jobs
//
// 1. RescheduleJob - reopens BOTH_UNAVAILABLE handoffs whose next attempt is due (default every 5 minutes)
// 2. AutoReturnJob - returns shipments that used up their reschedule attempts (default every 10 minutes)
// 3. LinkExpiryJob - moves past-expiry share links to EXPIRED (default every 15 minutes)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(rescheduleHandler, autoReturnHandler, expireLinksHandler,
//		jobs.DefaultSchedules(), logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweeps lock records one at a time and skip the busy ones. A failing record
// is counted and logged, the rest of the pass continues. A failing pass is
// logged and retried on the next tick.
package jobs
