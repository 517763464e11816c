package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.reply(message.Chat.ID, "An error occurred while processing your request. Please try again.")
		}
	}()

	userID := message.From.ID
	ctx := context.Background()

	if state, ok := b.state(userID); ok {
		switch {
		case state.Step == stepDone:
			b.clearState(userID)
		case message.IsCommand():
			// Any command cancels an ongoing conversation
			b.clearState(userID)
		default:
			b.handleConversation(ctx, message, state)
			return
		}
	}

	if !message.IsCommand() {
		return
	}

	switch message.Command() {
	case "start", "help":
		b.handleStart(message)
	case "status":
		b.handleStatus(ctx, message)
	case "totals":
		b.handleTotals(ctx, message)
	case "progress":
		b.handleProgress(ctx, message)
	case "people":
		b.handlePeople(ctx, message)
	case "aircraft":
		b.handleAircraft(ctx, message)
	case "last":
		b.handleLast(ctx, message)
	case "monthly":
		b.handleMonthlyStart(message)
	case "ground":
		b.handleGroundStart(message)
	default:
		b.reply(message.Chat.ID, "Unknown command. Use /start to see available commands.")
	}
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	userID := query.From.ID
	ctx := context.Background()

	b.answerCallback(query)

	state, ok := b.state(userID)
	if !ok || query.Message == nil {
		return
	}

	data := query.Data
	switch {
	case strings.HasPrefix(data, "monthly:"):
		b.handleMonthlyCallback(ctx, query, state)
	case strings.HasPrefix(data, "date:"):
		b.handleDateCallback(ctx, query, state)
	case strings.HasPrefix(data, "instructor:"):
		b.handleInstructorCallback(query, state)
	}

	if state.Step == stepDone {
		b.clearState(userID)
	}
}
