package telegram

import (
	"context"

	"gopkg.in/telebot.v3"
)

// Client sends text messages through a Telegram bot.
// It keeps the application logic decoupled from the bot library.
type Client interface {
	SendMessage(ctx context.Context, chatID string, text string, options *telebot.SendOptions) error
}
