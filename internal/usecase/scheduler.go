package usecase

import (
	"context"
	"log/slog"
	"time"

	"ComplianceScanner/internal/ports"
)

// Scheduler wires the periodic driver with the pipeline use case.
type Scheduler struct {
	driver      ports.Scheduler
	pipeline    *Pipeline
	maxArticles int
	logger      *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring scans.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, maxArticles int, logger *slog.Logger) *Scheduler {
	if maxArticles <= 0 {
		maxArticles = 10
	}
	return &Scheduler{driver: driver, pipeline: pipeline, maxArticles: maxArticles, logger: logger}
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if _, err := s.pipeline.Run(ctx, "", s.maxArticles); err != nil && s.logger != nil {
			s.logger.Warn("scheduled scan finished without a report", "trigger", trigger, "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
