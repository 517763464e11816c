package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"logbook/internal/report"
	"logbook/internal/stats"
)

// handleStart shows welcome message and available commands
func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := `Welcome to your pilot logbook! 🛩

Available commands:
/status - Passenger currency, medical and license
/totals - Logbook totals
/progress - Progress toward commercial and instrument
/people - Passengers and instructors
/aircraft - Hours per aircraft
/last - Last 10 flights
/monthly - Hours per month
/ground - Log a ground instruction session`

	b.reply(message.Chat.ID, text)
}

// buildReport builds today's report, replying with the error on failure
func (b *Bot) buildReport(ctx context.Context, chatID int64) (*report.Report, bool) {
	rep, err := b.reports.Build(ctx, b.pilotID, b.today())
	if err != nil {
		b.logger.Error("Failed to build report for bot",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.replyError(chatID, err)
		return nil, false
	}
	return rep, true
}

func (b *Bot) handleStatus(ctx context.Context, message *tgbotapi.Message) {
	if rep, ok := b.buildReport(ctx, message.Chat.ID); ok {
		b.reply(message.Chat.ID, formatStatus(rep.Stats, rep.AsOf))
	}
}

func (b *Bot) handleTotals(ctx context.Context, message *tgbotapi.Message) {
	if rep, ok := b.buildReport(ctx, message.Chat.ID); ok {
		b.reply(message.Chat.ID, formatTotals(rep.Stats))
	}
}

func (b *Bot) handleProgress(ctx context.Context, message *tgbotapi.Message) {
	if rep, ok := b.buildReport(ctx, message.Chat.ID); ok {
		b.reply(message.Chat.ID, formatProgress(rep.Stats))
	}
}

func (b *Bot) handlePeople(ctx context.Context, message *tgbotapi.Message) {
	if rep, ok := b.buildReport(ctx, message.Chat.ID); ok {
		b.reply(message.Chat.ID, formatPeople(rep))
	}
}

func (b *Bot) handleAircraft(ctx context.Context, message *tgbotapi.Message) {
	if rep, ok := b.buildReport(ctx, message.Chat.ID); ok {
		b.reply(message.Chat.ID, formatAircraft(rep.Aircraft))
	}
}

// handleLast shows the most recent flights
func (b *Bot) handleLast(ctx context.Context, message *tgbotapi.Message) {
	rep, ok := b.buildReport(ctx, message.Chat.ID)
	if !ok {
		return
	}
	rows := rep.Flights
	if len(rows) > stats.DefaultLimit {
		rows = rows[:stats.DefaultLimit]
	}
	b.reply(message.Chat.ID, formatFlights(rows))
}

// handleMonthlyStart asks for the length of the monthly breakdown
func (b *Bot) handleMonthlyStart(message *tgbotapi.Message) {
	b.setState(message.From.ID, &ConversationState{
		Command: "monthly",
		Step:    1,
		Data:    make(map[string]interface{}),
	})

	var buttons []tgbotapi.InlineKeyboardButton
	for _, n := range monthlyPeriods {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d months", n),
			fmt.Sprintf("monthly:%d", n),
		))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "📊 Select time period:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(buttons[:2]...),
		tgbotapi.NewInlineKeyboardRow(buttons[2:]...),
	)
	b.sendMessage(msg)
}

// handleGroundStart initiates the ground session conversation
func (b *Bot) handleGroundStart(message *tgbotapi.Message) {
	b.setState(message.From.ID, &ConversationState{
		Command: "ground",
		Step:    1,
		Data:    make(map[string]interface{}),
	})

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(dateChoices); i += 2 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(dateChoices[i].label, "date:"+dateChoices[i].key),
			tgbotapi.NewInlineKeyboardButtonData(dateChoices[i+1].label, "date:"+dateChoices[i+1].key),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📝 Custom date", "date:custom"),
	))

	msg := tgbotapi.NewMessage(message.Chat.ID, "📅 Select session date:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}
