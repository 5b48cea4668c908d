// Package jobs runs the background maintenance schedules: expiring idle
// sessions and rescanning the upload directory so files added or removed on
// disk between requests are noticed.
package jobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"ggAnalyze/internal/config"
	"ggAnalyze/internal/logger"
	"ggAnalyze/internal/serviceiface"
	"ggAnalyze/internal/session"
)

type CronService struct {
	config   map[string]interface{}
	sessions *session.Manager
	cron     *cron.Cron
}

func NewCronService(cfg map[string]interface{}, sessions *session.Manager) serviceiface.Service {
	return &CronService{
		config:   cfg,
		sessions: sessions,
	}
}

func (s *CronService) Name() string {
	return "jobs"
}

func (s *CronService) schedule(key, fallback string) string {
	if s.config != nil {
		if v, ok := s.config[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

func (s *CronService) Start() error {
	s.cron = cron.New()

	cleanup := s.schedule("cleanup_schedule", config.DefaultCleanupSchedule)
	if _, err := s.cron.AddFunc(cleanup, s.runCleanup); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}

	rescan := s.schedule("rescan_schedule", config.DefaultRescanSchedule)
	if _, err := s.cron.AddFunc(rescan, s.runRescan); err != nil {
		return fmt.Errorf("schedule upload rescan: %w", err)
	}

	s.cron.Start()
	log.Printf("Jobs service started: cleanup %q, rescan %q", cleanup, rescan)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Jobs service started")
	}
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func (s *CronService) runCleanup() {
	if n := s.sessions.CleanupExpired(); n > 0 {
		log.Printf("[INFO] expired %d idle session(s)", n)
	}
}

func (s *CronService) runRescan() {
	for _, sess := range s.sessions.Active() {
		sess.Registry.Rescan()
	}
}
