package cron

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// AuditCleaner deletes audit entries older than the given number of days.
type AuditCleaner interface {
	CleanupOldLogs(ctx context.Context, days int) (int64, error)
}

// Manager owns the background scheduler of the engagement API.
type Manager struct {
	scheduler gocron.Scheduler
	log       *zap.Logger
}

func NewManager(log *zap.Logger) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Manager{scheduler: s, log: log}, nil
}

// RegisterAuditRetention removes audit entries older than retentionDays,
// once at start and then every interval. A non-positive retention disables it.
func (m *Manager) RegisterAuditRetention(cleaner AuditCleaner, retentionDays int, interval time.Duration) error {
	if retentionDays <= 0 {
		m.log.Info("audit retention disabled")
		return nil
	}
	job := &auditRetentionJob{cleaner: cleaner, days: retentionDays, log: m.log}
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(job.Execute),
		gocron.WithName("audit_retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	return err
}

func (m *Manager) Start() {
	m.scheduler.Start()
	m.log.Info("scheduler started", zap.Int("jobs", len(m.scheduler.Jobs())))
}

func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		m.log.Warn("scheduler shutdown", zap.Error(err))
	}
}

type auditRetentionJob struct {
	cleaner AuditCleaner
	days    int
	log     *zap.Logger
}

func (j *auditRetentionJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := j.cleaner.CleanupOldLogs(ctx, j.days)
	if err != nil {
		j.log.Error("audit cleanup failed", zap.Int("retention_days", j.days), zap.Error(err))
		return
	}
	j.log.Info("audit cleanup completed", zap.Int64("deleted", n), zap.Int("retention_days", j.days))
}
