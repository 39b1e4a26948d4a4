package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Playwithbroken/stock-analysis-tool/pkg/logger"
)

// Job is a unit of scheduled background work
type Job interface {
	// Name returns the job name
	Name() string

	// Run executes the job
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression,
	// e.g. "0 */10 * * * *" or "@hourly"
	Schedule() string
}

// Scheduler runs background jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
	jobs   map[string]Job
	mu     sync.RWMutex

	maxRetries int
	retryDelay time.Duration
}

// New creates a new scheduler
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		logger:     log.WithField("module", "scheduler"),
		jobs:       make(map[string]Job),
		maxRetries: 3,
		retryDelay: time.Minute,
	}
}

// AddJob registers a job with the scheduler
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobName := job.Name()
	if _, exists := s.jobs[jobName]; exists {
		return fmt.Errorf("job %s already exists", jobName)
	}

	if _, err := s.cron.AddFunc(job.Schedule(), func() {
		s.runJob(job)
	}); err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", jobName, err)
	}

	s.jobs[jobName] = job
	s.logger.WithFields(map[string]interface{}{
		"job":      jobName,
		"schedule": job.Schedule(),
	}).Info("Job added to scheduler")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// RunJob runs a registered job immediately, outside its schedule
func (s *Scheduler) RunJob(jobName string) error {
	s.mu.RLock()
	job, exists := s.jobs[jobName]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", jobName)
	}

	go s.runJob(job)
	return nil
}

// runJob executes a job with retries
func (s *Scheduler) runJob(job Job) {
	jobName := job.Name()
	start := time.Now()

	s.logger.WithField("job", jobName).Info("Job started")

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		lastErr = job.Run(context.Background())
		if lastErr == nil {
			s.logger.WithFields(map[string]interface{}{
				"job":      jobName,
				"duration": time.Since(start),
			}).Info("Job completed successfully")
			return
		}

		s.logger.WithFields(map[string]interface{}{
			"job":     jobName,
			"attempt": attempt + 1,
			"error":   lastErr.Error(),
		}).Warn("Job execution failed, retrying")

		if attempt < s.maxRetries {
			time.Sleep(s.retryDelay)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"job":      jobName,
		"duration": time.Since(start),
		"error":    lastErr.Error(),
	}).Error("Job failed after all retries")
}
