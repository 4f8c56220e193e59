package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	comment "newsroom-backend/internal/domains/comment"
	"newsroom-backend/internal/infrastructure/queue"
	"newsroom-backend/internal/infrastructure/storage"
)

// taskHandlers gom dependencies cho các task handlers
type taskHandlers struct {
	storage  storage.ObjectStorage
	comments comment.Repository
}

func newTaskHandlers(objectStorage storage.ObjectStorage, comments comment.Repository) *taskHandlers {
	return &taskHandlers{
		storage:  objectStorage,
		comments: comments,
	}
}

// HandleMediaPurge xóa storage objects theo keys trong payload.
// Key không tồn tại coi như đã xóa - không fail task (retry sẽ gặp
// lại cùng key). Lỗi khác trả về để asynq retry.
func (h *taskHandlers) HandleMediaPurge(ctx context.Context, t *asynq.Task) error {
	var payload queue.MediaPurgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal media purge payload: %v: %w", err, asynq.SkipRetry)
	}

	deleted := 0
	for _, key := range payload.Keys {
		if err := h.storage.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to purge object")
			return fmt.Errorf("delete object %s: %w", key, err)
		}
		deleted++
	}

	log.Info().Int("deleted", deleted).Msg("media purge completed")
	return nil
}

// HandleSpamCleanup xóa SPAM comments cũ hơn retention, bỏ qua
// comment còn replies (precondition giữ nguyên cả với cleanup tự động)
func (h *taskHandlers) HandleSpamCleanup(ctx context.Context, t *asynq.Task) error {
	var payload queue.SpamCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal spam cleanup payload: %v: %w", err, asynq.SkipRetry)
	}

	cutoff := time.Now().AddDate(0, 0, -payload.RetentionDays)

	removed, err := h.comments.DeleteSpamOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("delete old spam: %w", err)
	}

	log.Info().
		Int64("removed", removed).
		Time("cutoff", cutoff).
		Msg("spam cleanup completed")
	return nil
}
