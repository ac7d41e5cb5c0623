package tasks

import "time"

// Task Types
const (
	// TaskTypeSessionCleanup prunes expired auth transactions and their
	// cached session snapshots.
	TaskTypeSessionCleanup = "sessions:cleanup"
)

// Task Queues
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low" // background tasks like cleanup
)

// Task Priorities (1-10, higher is more important)
const (
	PriorityCritical = 10
	PriorityNormal   = 5
	PriorityBG       = 1
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
)

// Task Retry Settings
const (
	RetryDefault = 3
	RetryMin     = 1
)
