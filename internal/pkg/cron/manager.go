package cron

import (
	"Tideline/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine      *cron.Cron
	trendingJob *job.TrendingJob
}

func NewCronManager(trendingJob *job.TrendingJob) *Manager {
	return &Manager{
		engine:      cron.New(cron.WithSeconds()),
		trendingJob: trendingJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 */4 * * * *", s.trendingJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
