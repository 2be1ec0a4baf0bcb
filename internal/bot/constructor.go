package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shelfwatch/internal/storage"
)

// NewBot creates a new Telegram bot
func NewBot(token string, db storage.Storage, loc *time.Location, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	return &Bot{
		api:      api,
		db:       db,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
		sessions: make(map[int64]session),
	}, nil
}
