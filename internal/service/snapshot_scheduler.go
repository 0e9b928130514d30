package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SnapshotScheduler runs the nightly analytics snapshot job on a cron
// schedule (standard five-field expression, e.g. "30 5 * * *").
type SnapshotScheduler struct {
	analyticsService *AnalyticsService
	schedule         string
	cron             *cron.Cron
}

// NewSnapshotScheduler creates a scheduler for the given cron expression.
func NewSnapshotScheduler(analyticsService *AnalyticsService, schedule string) *SnapshotScheduler {
	return &SnapshotScheduler{
		analyticsService: analyticsService,
		schedule:         schedule,
		cron:             cron.New(),
	}
}

// Start registers the snapshot job and starts the cron loop in its own
// goroutine.
func (s *SnapshotScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Snapshot job scheduled: %s", s.schedule)
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *SnapshotScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SnapshotScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rows, err := s.analyticsService.RebuildSnapshot(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Snapshot job failed: %v", err)
		return
	}
	log.Printf("Snapshot job wrote %d instrument rows", rows)
}
