package notifier

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nbcommunication/instagram-media-display/pkg/formatter"
	"github.com/nbcommunication/instagram-media-display/pkg/logger"
	"github.com/nbcommunication/instagram-media-display/pkg/retry"
)

// Telegram sends operator alerts to a configured chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func NewTelegram(token string, chatID int64, log logger.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log,
	}, nil
}

func (t *Telegram) NotifyAuthError(ctx context.Context, detail string) error {
	text := "⚠️ *Instagram API authorisation error*\n\n" +
		"The Instagram API has returned an authorisation error\\. " +
		"Please check your access token\\.\n\n" +
		formatter.EscapeMarkdownV2(formatter.Truncate(detail, 1000))

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	return retry.Do(ctx, t.logger, "notify auth error", func() error {
		_, err := t.bot.Send(msg)
		return err
	}, retry.DefaultConfig())
}

var _ Client = (*Telegram)(nil)
