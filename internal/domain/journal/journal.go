// internal/domain/journal/journal.go
package journal

import (
	"context"
	"time"
)

// Kind tells which dedup class a delivered message belongs to.
type Kind string

const (
	KindStatus  Kind = "STATUS"
	KindError   Kind = "ERROR"
	KindService Kind = "SERVICE" // start-up and "no new statuses" messages
)

// Entry is one delivered notification.
// Corresponds to the 'notification_journal' table.
type Entry struct {
	ID     int64
	Kind   Kind
	ChatID string
	Text   string
	SentAt time.Time
}

// Repository is an append-only audit trail of delivered notifications.
// It is never read back by the poll loop.
type Repository interface {
	Record(ctx context.Context, entry *Entry) error
}

// Discard is used when no journal storage is configured.
var Discard Repository = discard{}

type discard struct{}

func (discard) Record(context.Context, *Entry) error { return nil }
