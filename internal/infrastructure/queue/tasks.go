package queue

// Task types cho asynq worker
const (
	TypeMediaPurge  = "media:purge_objects"
	TypeSpamCleanup = "comment:cleanup_spam"
)

// Queue names theo priority
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// MediaPurgePayload chứa danh sách storage keys cần xóa khỏi object storage.
// Enqueue sau khi DB rows đã cascade-delete (vd: hard delete user).
type MediaPurgePayload struct {
	Keys []string `json:"keys"`
}

// SpamCleanupPayload cho job dọn SPAM comments định kỳ
type SpamCleanupPayload struct {
	RetentionDays int `json:"retention_days"`
}
