package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"logbook/internal/dates"
	"logbook/internal/models"
)

// handleConversation processes multi-step conversations
func (b *Bot) handleConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Command {
	case "ground":
		b.handleGroundConversation(ctx, message, state)
	}

	if state.Step == stepDone {
		b.clearState(message.From.ID)
	}
}

// handleGroundConversation handles the text steps of logging a ground
// session. Date and instructor are picked with inline keyboards.
func (b *Bot) handleGroundConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	chatID := message.Chat.ID

	switch state.Step {
	case 1: // Waiting for custom date input
		if _, ok := state.Data["awaiting_custom_date"]; !ok {
			return
		}
		date, err := parseCustomDate(message.Text, b.today())
		if err != nil {
			b.reply(chatID, "❌ Invalid date. Please use YYYY-MM-DD, not in the future\n\nExample: 2024-01-15")
			return
		}

		delete(state.Data, "awaiting_custom_date")
		state.Data["date"] = date
		state.Step = 2
		b.showInstructorSelection(ctx, chatID, state)

	case 3: // Waiting for hours
		hours, err := parseHours(message.Text)
		if err != nil {
			b.reply(chatID, "❌ "+err.Error()+"\n\nExample: 1.5")
			return
		}
		state.Data["hours"] = hours
		state.Step = 4
		b.reply(chatID, "📝 Enter the subject, or - to skip:")

	case 4: // Waiting for subject
		subject := strings.TrimSpace(message.Text)
		if subject == "-" {
			subject = ""
		}

		session := models.GroundSession{
			PilotID:    b.pilotID,
			Date:       state.Data["date"].(time.Time),
			GroundTime: state.Data["hours"].(decimal.Decimal),
			Subject:    subject,
		}
		if instructor, ok := state.Data["instructor"].(models.Pilot); ok {
			session.Instructor = &instructor
		}

		if err := b.db.CreateGroundSession(ctx, &session); err != nil {
			b.logger.Error("Failed to create ground session",
				zap.Error(err),
				zap.Int64("user_id", message.From.ID),
			)
			b.reply(chatID, fmt.Sprintf("Error creating ground session: %v", err))
		} else {
			b.logger.Info("Ground session logged",
				zap.String("session_id", session.ID.String()),
				zap.Time("date", session.Date),
				zap.String("hours", session.GroundTime.String()),
			)
			b.reply(chatID, groundConfirmation(session))
		}

		state.Step = stepDone
	}
}

func groundConfirmation(s models.GroundSession) string {
	instructor := "none"
	if s.Instructor != nil {
		instructor = s.Instructor.Name()
	}
	subject := s.Subject
	if subject == "" {
		subject = "-"
	}
	return fmt.Sprintf("✅ Ground session logged!\n\n📅 Date: %s\n👤 Instructor: %s\n⏱ Hours: %s\n📚 Subject: %s",
		dates.ISO(s.Date), instructor, s.GroundTime.StringFixed(1), subject)
}
