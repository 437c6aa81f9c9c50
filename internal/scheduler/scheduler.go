// Package scheduler records net worth history on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"finsight/internal/logger"
	"finsight/internal/services"
)

// Scheduler runs the net worth history job.
type Scheduler struct {
	cron    *cron.Cron
	history services.NetWorthHistoryServicer
	now     func() time.Time
}

// New creates a Scheduler that records history on spec, which accepts the
// standard five-field cron syntax and descriptors such as "@daily".
func New(spec string, history services.NetWorthHistoryServicer) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		history: history,
		now:     time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule. The returned context is done once a running job
// has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunNow records history immediately. The timestamp is truncated to the
// minute so a rerun within the same minute overwrites instead of adding rows.
func (s *Scheduler) RunNow() (int, error) {
	recordedAt := s.now().UTC().Truncate(time.Minute)
	return s.history.RecordSnapshots(recordedAt)
}

func (s *Scheduler) run() {
	log := logger.Get()
	start := time.Now()
	count, err := s.RunNow()
	if err != nil {
		log.Errorw("net worth snapshot job failed", "error", err, "recorded", count)
		return
	}
	log.Infow("net worth snapshot job finished", "recorded", count, "duration_ms", time.Since(start).Milliseconds())
}
