// internal/app/status_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/journal"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

const (
	StartupMessage       = "Бот включился."
	NoNewStatusesMessage = "В ответе нет новых статусов."
	failureMessageFormat = "Сбой в работе программы: %v"
)

// StatusFetcher is the homework statuses API as seen by the poll loop.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, since int64) (any, error)
}

// StatusService runs the poll/diff/notify cycle.
type StatusService interface {
	// PollOnce runs a single cycle. Failures are logged and reported to the
	// chat before being returned; the caller only needs to keep going.
	PollOnce(ctx context.Context) error
	// Cursor is the from_date the next poll will use.
	Cursor() int64
}

// StatusServiceImpl implements the StatusService interface.
// It is not safe for concurrent use; cycles must not overlap.
type StatusServiceImpl struct {
	fetcher     StatusFetcher
	dispatcher  Dispatcher
	logger      *logrus.Entry
	notifyEmpty bool

	cursor     int64
	lastStatus string
	lastError  string
}

func NewStatusServiceImpl(
	f StatusFetcher,
	d Dispatcher,
	log *logrus.Entry,
	startCursor int64, // usually time.Now().Unix()
	notifyEmpty bool, // send NoNewStatusesMessage on every empty response
) *StatusServiceImpl {
	metrics.SetCursor(startCursor)
	return &StatusServiceImpl{
		fetcher:     f,
		dispatcher:  d,
		logger:      log,
		notifyEmpty: notifyEmpty,
		cursor:      startCursor,
	}
}

func (s *StatusServiceImpl) Cursor() int64 { return s.cursor }

func (s *StatusServiceImpl) PollOnce(ctx context.Context) error {
	start := time.Now()
	err := s.poll(ctx)
	metrics.ObservePoll(homework.Kind(err), time.Since(start))
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		// Shutting down; nothing to report.
		return ctx.Err()
	}

	message := fmt.Sprintf(failureMessageFormat, err)
	logger.Critical(s.logger.WithError(err).WithFields(logrus.Fields{
		"kind":   homework.Kind(err),
		"cursor": s.cursor,
	}), message)

	if message == s.lastError {
		s.logger.Debug("Same failure already reported, not notifying again")
		return err
	}
	if s.dispatcher.Notify(ctx, journal.KindError, message) {
		s.lastError = message
	}
	return err
}

func (s *StatusServiceImpl) poll(ctx context.Context) error {
	logCtx := s.logger.WithField("cursor", s.cursor)
	logCtx.Debug("Requesting homework statuses")

	payload, err := s.fetcher.FetchStatus(ctx, s.cursor)
	if err != nil {
		return err
	}

	homeworks, err := homework.Validate(payload)
	if err != nil {
		return err
	}

	latest, found, err := homework.Latest(homeworks)
	if err != nil {
		return err
	}

	if !found {
		logCtx.Debug("No new statuses in response")
		if s.notifyEmpty {
			s.dispatcher.Notify(ctx, journal.KindService, NoNewStatusesMessage)
		}
		s.advance(payload)
		return nil
	}

	message, err := homework.StatusMessage(latest)
	if err != nil {
		return err
	}

	if message == s.lastStatus {
		logCtx.Debug("Homework status unchanged, not notifying")
		s.advance(payload)
		return nil
	}

	if !s.dispatcher.Notify(ctx, journal.KindStatus, message) {
		// Keep the window open so the next poll sees the change again.
		logCtx.Warn("Status change not delivered, cursor kept for the next poll")
		return nil
	}
	s.lastStatus = message
	s.advance(payload)
	return nil
}

// advance moves the cursor to the server's current_date. It never moves back.
func (s *StatusServiceImpl) advance(payload any) {
	date, ok := homework.CurrentDate(payload)
	if !ok {
		s.logger.WithField("cursor", s.cursor).Warn("Response has no usable current_date, cursor kept")
		return
	}
	if date < s.cursor {
		s.logger.WithFields(logrus.Fields{"cursor": s.cursor, "current_date": date}).Warn("Server date is behind the cursor, cursor kept")
		return
	}
	s.cursor = date
	metrics.SetCursor(date)
}
