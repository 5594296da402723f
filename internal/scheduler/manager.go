package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Manager owns the background scheduler and the jobs registered on it.
type Manager struct {
	scheduler gocron.Scheduler
	job       *ExpiryJob
	interval  time.Duration
}

func NewManager(job *ExpiryJob, interval time.Duration) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Manager{scheduler: s, job: job, interval: interval}, nil
}

// Start registers the expiry sweep and kicks off the scheduler.
func (m *Manager) Start() error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(m.job.Execute),
		gocron.WithName("project_expiry_sweeper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	m.scheduler.Start()
	zap.L().Info("scheduler started", zap.Duration("interval", m.interval))
	return nil
}

func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		zap.L().Error("can't shutdown scheduler", zap.Error(err))
	}
}
