// ABOUTME: This file schedules periodic pipeline refreshes in serve mode
// ABOUTME: A garbage cron spec falls back to the default instead of failing startup
package server

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

const defaultRefreshSpec = "*/30 * * * *"

type Scheduler struct {
	cron    *cron.Cron
	refresh func()
	logger  *slog.Logger
}

func NewScheduler(spec string, refresh func(), logger *slog.Logger) *Scheduler {
	c := cron.New()

	if _, err := c.AddFunc(spec, refresh); err != nil {
		logger.Warn("invalid refresh cron spec, using default",
			"spec", spec,
			"default", defaultRefreshSpec,
			"error", err)

		// The default spec is a constant; it always parses.
		_, _ = c.AddFunc(defaultRefreshSpec, refresh)
	}

	return &Scheduler{
		cron:    c,
		refresh: refresh,
		logger:  logger,
	}
}

// Start kicks off one immediate refresh and then the periodic schedule.
func (s *Scheduler) Start() {
	go s.refresh()
	s.cron.Start()
}

// Stop halts the schedule; an in-flight refresh finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
