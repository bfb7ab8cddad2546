package database

import (
	"context"
	"os"
	"testing"
	"time"

	"homework_status_bot/internal/domain/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when TEST_DATABASE_URL points at a disposable Postgres database.
func TestPostgresJournalRepository_Record(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewPostgresConnection(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `DROP TABLE IF EXISTS notification_journal`)
	require.NoError(t, err)

	repo := NewPostgresJournalRepository(db)
	err = repo.Record(ctx, &journal.Entry{Kind: journal.KindStatus, ChatID: "1", Text: "hi"})
	assert.ErrorIs(t, err, ErrJournalTableMissing)

	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation must be repeatable")

	entry := &journal.Entry{Kind: journal.KindError, ChatID: "424242", Text: "Сбой в работе программы: boom"}
	require.NoError(t, repo.Record(ctx, entry))
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.SentAt.IsZero())

	var kind, text string
	err = db.QueryRowContext(ctx, `SELECT kind, text FROM notification_journal WHERE id = $1`, entry.ID).Scan(&kind, &text)
	require.NoError(t, err)
	assert.Equal(t, string(journal.KindError), kind)
	assert.Equal(t, entry.Text, text)
}

func TestNewPostgresConnection_BadDSN(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewPostgresConnection(ctx, "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
}
