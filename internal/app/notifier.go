// internal/app/notifier.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/journal"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// Dispatcher delivers a message to the configured recipient.
// Notify never fails from the caller's point of view; the result only says
// whether the message reached Telegram.
type Dispatcher interface {
	Notify(ctx context.Context, kind journal.Kind, text string) bool
}

// Notifier is the best-effort Telegram Dispatcher.
type Notifier struct {
	telegramClient domainTelegram.Client
	journal        journal.Repository
	chatID         string
	logger         *logrus.Entry
}

func NewNotifier(tc domainTelegram.Client, jr journal.Repository, chatID string, logger *logrus.Entry) *Notifier {
	if jr == nil {
		jr = journal.Discard
	}
	return &Notifier{
		telegramClient: tc,
		journal:        jr,
		chatID:         chatID,
		logger:         logger,
	}
}

// Notify sends text to the chat. Delivery errors, and panics raised by the
// transport, are logged here and never reach the caller.
func (n *Notifier) Notify(ctx context.Context, kind journal.Kind, text string) (delivered bool) {
	logCtx := n.logger.WithFields(logrus.Fields{"kind": kind, "chat_id": n.chatID})

	defer func() {
		if r := recover(); r != nil {
			logCtx.WithError(fmt.Errorf("panic: %v", r)).Error("Telegram transport panicked, message not sent")
			delivered = false
		}
		metrics.ObserveNotification(string(kind), delivered)
	}()

	if err := n.telegramClient.SendMessage(ctx, n.chatID, text, nil); err != nil {
		logCtx.WithError(err).Error("Failed to send message to Telegram")
		return false
	}
	logCtx.WithField("text", text).Info("Message sent to Telegram")

	entry := &journal.Entry{Kind: kind, ChatID: n.chatID, Text: text, SentAt: time.Now()}
	if err := n.journal.Record(ctx, entry); err != nil {
		logCtx.WithError(err).Warn("Failed to record delivered message in journal")
	}
	return true
}
