package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"logbook/internal/report"
	"logbook/internal/storage"
)

// NewBot creates a new Telegram bot answering for one pilot's logbook
func NewBot(token string, db storage.Storage, reports *report.Builder, pilotID uuid.UUID, allowedUserIDs []int64, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	b := newBot(db, reports, pilotID, allowedUserIDs, logger)
	b.api = api
	b.out = api
	return b, nil
}

func newBot(db storage.Storage, reports *report.Builder, pilotID uuid.UUID, allowedUserIDs []int64, logger *zap.Logger) *Bot {
	allowedUsers := make(map[int64]bool)
	for _, id := range allowedUserIDs {
		allowedUsers[id] = true
	}

	return &Bot{
		db:           db,
		reports:      reports,
		pilotID:      pilotID,
		allowedUsers: allowedUsers,
		states:       make(map[int64]*ConversationState),
		logger:       logger,
		now:          time.Now,
	}
}

// GetAPI returns the underlying bot API
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}
