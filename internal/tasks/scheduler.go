package tasks

import (
	"fmt"
	"os"

	"folio/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

const defaultCleanupSpec = "0 * * * *"

// Scheduler handles periodic task scheduling
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *logger.Logger
}

// NewScheduler creates a new task scheduler
func NewScheduler(redisAddr, username, password string, db int, logger *logger.Logger) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{},
	)

	return &Scheduler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if err := s.registerTasks(); err != nil {
		return fmt.Errorf("failed to register tasks: %w", err)
	}

	s.logger.Info("starting task scheduler")
	return s.scheduler.Run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
	s.logger.Info("task scheduler stopped")
}

// registerTasks registers all periodic tasks
func (s *Scheduler) registerTasks() error {
	spec := os.Getenv("SESSION_CLEANUP_CRON")
	if spec == "" {
		spec = defaultCleanupSpec
	}
	// Validate operator-supplied expressions up front; a bad one falls
	// back to the hourly default instead of failing scheduler start.
	if _, err := cron.ParseStandard(spec); err != nil {
		s.logger.Warn("invalid SESSION_CLEANUP_CRON %q, using %q: %v", spec, defaultCleanupSpec, err)
		spec = defaultCleanupSpec
	}

	entryID, err := s.scheduler.Register(
		spec,
		asynq.NewTask(TaskTypeSessionCleanup, nil),
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
	if err != nil {
		return fmt.Errorf("failed to register session cleanup: %w", err)
	}
	s.logger.Info("registered session cleanup task %s", entryID)

	return nil
}

// RegisterCustomTask registers a custom periodic task
func (s *Scheduler) RegisterCustomTask(spec string, taskType string, payload []byte, opts ...asynq.Option) error {
	entryID, err := s.scheduler.Register(spec, asynq.NewTask(taskType, payload, opts...))
	if err != nil {
		return fmt.Errorf("failed to register custom task: %w", err)
	}

	s.logger.Info("registered custom task %s %s %s", taskType, spec, entryID)
	return nil
}
