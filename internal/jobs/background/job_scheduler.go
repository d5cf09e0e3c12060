package background

import (
	"context"
	"log"
	"sync"
	"time"

	"navhub/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages recurring maintenance work: audit retention cleanup
// and projection-cache statistics reporting.
type JobScheduler struct {
	scheduler     gocron.Scheduler
	auditSvc      services.AuditLogsService
	navigationSvc services.NavigationService
	retentionDays int
	jobJobs       map[string]gocron.Job
	mu            sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(auditSvc services.AuditLogsService, navigationSvc services.NavigationService, retentionDays int) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		auditSvc:      auditSvc,
		navigationSvc: navigationSvc,
		retentionDays: retentionDays,
		jobJobs:       make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Audit retention cleanup - daily
	retentionJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.purgeExpiredAuditLogs, context.Background()),
		gocron.WithName("audit-retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create audit retention job: %v", err)
	} else {
		js.jobJobs["audit-retention"] = retentionJob
	}

	// Projection cache statistics - every 5 minutes
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.reportProjectionCacheStats),
		gocron.WithName("projection-cache-stats"),
	)
	if err != nil {
		log.Printf("Failed to create cache stats job: %v", err)
	} else {
		js.jobJobs["projection-cache-stats"] = statsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

// purgeExpiredAuditLogs deletes audit entries past the retention window
func (js *JobScheduler) purgeExpiredAuditLogs(ctx context.Context) error {
	log.Printf("Starting audit retention cleanup (retention: %d days)", js.retentionDays)

	deleted, err := js.auditSvc.PurgeOlderThan(ctx, js.retentionDays)
	if err != nil {
		log.Printf("Failed to purge expired audit logs: %v", err)
		return err
	}

	log.Printf("Audit retention cleanup completed, removed %d entries", deleted)
	return nil
}

// reportProjectionCacheStats logs hit-rate counters for operators
func (js *JobScheduler) reportProjectionCacheStats() error {
	stats := js.navigationSvc.CacheStats()
	log.Printf("Projection cache stats: hits=%d misses=%d evictions=%d entries=%d hit_rate=%.2f",
		stats.Hits, stats.Misses, stats.Evictions, stats.Entries, stats.HitRate())
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)

	if err != nil {
		return err
	}

	js.jobJobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobJobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobJobs, name)
		return err
	}

	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobJobs)
	jobs := make([]string, 0, len(js.jobJobs))

	for name := range js.jobJobs {
		jobs = append(jobs, name)
	}

	status["jobs"] = jobs

	return status
}
