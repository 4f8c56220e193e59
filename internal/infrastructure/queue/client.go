package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer là contract cho services muốn đẩy background task.
// Interface nhỏ để service test được với mock.
type Enqueuer interface {
	EnqueueMediaPurge(ctx context.Context, keys []string) error
}

// Client wraps asynq.Client
type Client struct {
	client *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

// NewClient tạo asynq client trên Redis
func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

// EnqueueMediaPurge đẩy task xóa storage objects.
// Chạy queue low vì không ảnh hưởng user-facing flow.
func (c *Client) EnqueueMediaPurge(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	payload, err := json.Marshal(MediaPurgePayload{Keys: keys})
	if err != nil {
		return fmt.Errorf("marshal media purge payload: %w", err)
	}

	task := asynq.NewTask(TypeMediaPurge, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue media purge: %w", err)
	}
	return nil
}

// Close đóng connection tới Redis
func (c *Client) Close() error {
	return c.client.Close()
}
