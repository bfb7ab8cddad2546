// internal/infra/database/postgres_journal_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/journal"

	"github.com/lib/pq"
)

const journalSchema = `CREATE TABLE IF NOT EXISTS notification_journal (
	id      BIGSERIAL PRIMARY KEY,
	kind    TEXT NOT NULL,
	chat_id TEXT NOT NULL,
	text    TEXT NOT NULL,
	sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// pgUndefinedTable is the SQLSTATE for a missing relation.
const pgUndefinedTable = "42P01"

var ErrJournalTableMissing = fmt.Errorf("notification_journal table does not exist")

type PostgresJournalRepository struct {
	db *sql.DB
}

func NewPostgresJournalRepository(db *sql.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

// EnsureSchema creates the journal table if it is not there yet.
func (r *PostgresJournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, journalSchema); err != nil {
		return fmt.Errorf("error creating notification_journal table: %w", err)
	}
	return nil
}

func (r *PostgresJournalRepository) Record(ctx context.Context, entry *journal.Entry) error {
	if entry.SentAt.IsZero() {
		entry.SentAt = time.Now()
	}
	query := `INSERT INTO notification_journal (kind, chat_id, text, sent_at)
               VALUES ($1, $2, $3, $4)
               RETURNING id`
	err := r.db.QueryRowContext(ctx, query, entry.Kind, entry.ChatID, entry.Text, entry.SentAt).Scan(&entry.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUndefinedTable {
			return ErrJournalTableMissing
		}
		return fmt.Errorf("error recording notification: %w", err)
	}
	return nil
}
