package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"logbook/internal/dates"
	"logbook/internal/models"
	"logbook/internal/stats"
)

// handleMonthlyCallback sends the monthly breakdown for the selected period
func (b *Bot) handleMonthlyCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	chatID := query.Message.Chat.ID
	if state.Command != "monthly" {
		return
	}
	state.Step = stepDone

	months, err := parseMonthlyPeriod(query.Data)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	flights, err := b.db.ListFlights(ctx, b.pilotID)
	if err != nil {
		b.logger.Error("Failed to list flights for monthly breakdown",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.replyError(chatID, err)
		return
	}

	b.reply(chatID, formatMonthly(stats.MonthlyBreakdown(flights, months, b.today())))
}

// handleDateCallback processes date selection from inline keyboard
func (b *Bot) handleDateCallback(ctx context.Context, query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != "ground" || state.Step != 1 {
		return
	}
	chatID := query.Message.Chat.ID
	key := strings.TrimPrefix(query.Data, "date:")

	if key == "custom" {
		state.Data["awaiting_custom_date"] = true
		b.reply(chatID, "📝 Please enter the date in format YYYY-MM-DD\n\nExample: 2024-01-15")
		return
	}

	date, ok := resolveDateChoice(key, b.today())
	if !ok {
		return
	}
	state.Data["date"] = date
	state.Step = 2
	b.showInstructorSelection(ctx, chatID, state)
}

// showInstructorSelection offers the instructors on file plus a
// no-instructor option
func (b *Bot) showInstructorSelection(ctx context.Context, chatID int64, state *ConversationState) {
	pilots, err := b.db.ListPilots(ctx)
	if err != nil {
		b.logger.Error("Failed to list pilots for instructor selection",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.replyError(chatID, err)
		state.Step = stepDone
		return
	}

	instructors := make(map[string]models.Pilot)
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range pilots {
		if !p.Role.IsInstructor() {
			continue
		}
		id := p.ID.String()
		instructors[id] = p
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👨‍✈️ "+p.Name(), "instructor:"+id),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🙋 No instructor", "instructor:none"),
	))
	state.Data["instructors"] = instructors

	msg := tgbotapi.NewMessage(chatID, "👤 Select the instructor:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}

// handleInstructorCallback processes instructor selection
func (b *Bot) handleInstructorCallback(query *tgbotapi.CallbackQuery, state *ConversationState) {
	if state.Command != "ground" || state.Step != 2 {
		return
	}
	chatID := query.Message.Chat.ID
	key := strings.TrimPrefix(query.Data, "instructor:")

	if key != "none" {
		instructors, _ := state.Data["instructors"].(map[string]models.Pilot)
		instructor, ok := instructors[key]
		if !ok {
			b.reply(chatID, "Error: Invalid instructor selection")
			state.Step = stepDone
			return
		}
		state.Data["instructor"] = instructor
	}
	delete(state.Data, "instructors")
	state.Step = 3

	date := state.Data["date"].(time.Time)
	b.reply(chatID, fmt.Sprintf("⏱ Session on %s. How many hours? (e.g. 1.5)", dates.ISO(date)))
}
