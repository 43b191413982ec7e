// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/saunastroy/site/internal/store"
)

// DefaultEventRetention is how long event log entries are kept.
const DefaultEventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron runner and the maintenance jobs.
type Scheduler struct {
	queries        *store.Queries
	cron           *cron.Cron
	logger         *slog.Logger
	eventRetention time.Duration
}

// New creates a scheduler with the default retention period.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries:        store.New(db),
		cron:           cron.New(),
		logger:         logger,
		eventRetention: DefaultEventRetention,
	}
}

// Start registers the maintenance jobs and begins the cron runner.
// Event pruning runs nightly at 03:30.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.logger.Error("pruning events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish and stops the runner.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneEvents deletes event log entries older than the retention period.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	cutoff := time.Now().Add(-s.eventRetention)
	n, err := s.queries.PruneEvents(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("pruned old events", "count", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
