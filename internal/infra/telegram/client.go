// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/telebot.v3"
)

// BotSettings configures the outbound-only bot.
type BotSettings struct {
	Token   string
	URL     string // Bot API base URL, empty for the public one
	Timeout time.Duration
}

// NewBot creates a send-only bot. It never polls for updates and does not
// call getMe, so start-up does not depend on Telegram being reachable.
func NewBot(s BotSettings) (*telebot.Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		URL:     s.URL,
		Token:   s.Token,
		Client:  &http.Client{Timeout: s.Timeout},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// chatRecipient lets a configured chat id or @channel name be used as a telebot.Recipient.
type chatRecipient string

func (r chatRecipient) Recipient() string { return string(r) }

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, chatID string, text string, options *telebot.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if options == nil {
		options = &telebot.SendOptions{}
	}

	_, err := tba.bot.Send(chatRecipient(chatID), text, options)
	if err != nil {
		return fmt.Errorf("send to chat %s: %w", chatID, err)
	}
	return nil
}
