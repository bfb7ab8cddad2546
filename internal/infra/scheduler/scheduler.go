package scheduler

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/app" // For StatusService interface
	"homework_status_bot/internal/domain/homework"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ParseSchedule accepts standard cron expressions and descriptors such as "@every 600s".
func ParseSchedule(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// PollScheduler drives the status service. The next cycle is scheduled
// only after the previous one has fully finished, so cycles never overlap.
type PollScheduler struct {
	schedule      cron.Schedule
	statusService app.StatusService
	logger        *logrus.Entry
	now           func() time.Time
}

func NewPollScheduler(statusService app.StatusService, schedule cron.Schedule, logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		schedule:      schedule,
		statusService: statusService,
		logger:        logger,
		now:           time.Now,
	}
}

// Run polls until ctx is cancelled. Poll failures never stop it.
func (s *PollScheduler) Run(ctx context.Context) error {
	s.logger.Info("Starting poll scheduler...")
	for {
		if err := s.statusService.PollOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.WithField("kind", homework.Kind(err)).Info("Poll cycle failed, will retry on schedule")
		}

		now := s.now()
		next := s.schedule.Next(now)
		wait := next.Sub(now)
		s.logger.WithFields(logrus.Fields{
			"cursor":   s.statusService.Cursor(),
			"next_run": next.Format(time.RFC3339),
		}).Debug("Poll cycle finished")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Poll scheduler stopped.")
			return ctx.Err()
		case <-timer.C:
		}
	}
}
