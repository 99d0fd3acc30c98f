package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"

	"hivewatch/internal/config"
	"hivewatch/internal/logging"
	"hivewatch/internal/models"
	"hivewatch/internal/utils"
)

// TelegramChannel escalates error-level notifications to a Telegram chat.
// Lower-severity notifications are ignored, the in-app list covers those.
type TelegramChannel struct {
	token   string
	chatID  int64
	limiter *rate.Limiter
	logger  *logging.Logger
}

// NewTelegramChannel builds the escalation channel from config.
func NewTelegramChannel(cfg config.Config, logger *logging.Logger) (*TelegramChannel, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("missing TELEGRAM_BOT_TOKEN")
	}
	if cfg.Telegram.ChatID == 0 {
		return nil, fmt.Errorf("missing TELEGRAM_CHAT_ID")
	}
	rps := cfg.Telegram.RatePerSecond
	return &TelegramChannel{
		token:   cfg.Telegram.BotToken,
		chatID:  cfg.Telegram.ChatID,
		limiter: rate.NewLimiter(rate.Limit(float64(rps)), rps),
		logger:  logger,
	}, nil
}

func (t *TelegramChannel) Publish(ctx context.Context, n models.Notification) error {
	if n.Type != models.NotificationError {
		return nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limit exceeded: %w", err)
	}

	text := fmt.Sprintf("*%s*\n%s", n.Title, n.Message)

	return utils.Retry(t.logger, 3, time.Second, func() error {
		b, err := bot.New(t.token)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		params := &bot.SendMessageParams{
			ChatID:    t.chatID,
			Text:      text,
			ParseMode: "Markdown",
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", t.chatID, err)
		}
		return nil
	})
}
