package tasks

import (
	"context"
	"fmt"

	"folio/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient handles task enqueuing with context support
type TaskClient struct {
	client      *asynq.Client
	logger      *logger.Logger
	redisClient *redis.Client
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

// GetRedis exposes the shared redis connection for components that
// need raw access, like the sliding window limiter.
func (c *TaskClient) GetRedis() *redis.Client {
	return c.redisClient
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(
		&redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)

	return &TaskClient{
		client:      asynq.NewClient(redisOpt),
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

// EnqueueSessionCleanup queues one cleanup pass. Used at boot for a
// catch-up run; the scheduler owns the recurring cadence.
func (c *TaskClient) EnqueueSessionCleanup(ctx context.Context, opts ...asynq.Option) error {
	base := []asynq.Option{
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	}
	task := asynq.NewTask(TaskTypeSessionCleanup, nil, append(base, opts...)...)

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue session cleanup: %w", err)
	}
	c.logger.Info("enqueued session cleanup task %s on queue %s", info.ID, info.Queue)
	return nil
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	if err := c.redisClient.Close(); err != nil {
		c.logger.Warn("failed to close redis client: %v", err)
	}
	return c.client.Close()
}
