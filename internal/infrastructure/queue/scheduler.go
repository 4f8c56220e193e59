package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"newsroom-backend/internal/config"
)

// Scheduler đăng ký các cron jobs định kỳ
type Scheduler struct {
	scheduler *asynq.Scheduler
	workerCfg config.WorkerConfig
}

func NewScheduler(redisAddr, password string, db int, workerCfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, workerCfg: workerCfg}
}

// RegisterJobs đăng ký tất cả scheduled jobs
func (s *Scheduler) RegisterJobs() error {
	if err := s.registerSpamCleanupJob(); err != nil {
		return err
	}
	return nil
}

// registerSpamCleanupJob: dọn SPAM comments cũ theo cron spec từ config
func (s *Scheduler) registerSpamCleanupJob() error {
	payload, err := json.Marshal(SpamCleanupPayload{
		RetentionDays: s.workerCfg.SpamRetentionDays,
	})
	if err != nil {
		return fmt.Errorf("marshal spam cleanup payload: %w", err)
	}

	task := asynq.NewTask(TypeSpamCleanup, payload)
	_, err = s.scheduler.Register(
		s.workerCfg.SpamCleanupCron,
		task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register spam cleanup job: %w", err)
	}
	return nil
}

// Start chạy scheduler (blocking)
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

// Shutdown dừng scheduler
func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
