package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"logbook/internal/dates"
)

// sendMessage sends a message, logging delivery failures
func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if b.out == nil {
		return // For testing
	}
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", zap.Error(err), zap.Int64("chat_id", msg.ChatID))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyError(chatID int64, err error) {
	b.reply(chatID, fmt.Sprintf("Error: %v", err))
}

// answerCallback removes the loading state of an inline button
func (b *Bot) answerCallback(query *tgbotapi.CallbackQuery) {
	if b.out == nil {
		return
	}
	if _, err := b.out.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Debug("Failed to answer callback", zap.Error(err))
	}
}

// today is the reference date for reports requested through the bot
func (b *Bot) today() time.Time {
	return dates.Day(b.now())
}
