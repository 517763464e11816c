package bot

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"logbook/internal/report"
	"logbook/internal/storage"
)

// sender is the part of the Telegram API the handlers talk to
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot wrapper
type Bot struct {
	api          *tgbotapi.BotAPI
	out          sender
	db           storage.Storage
	reports      *report.Builder
	pilotID      uuid.UUID
	allowedUsers map[int64]bool
	states       map[int64]*ConversationState
	statesMu     sync.RWMutex
	logger       *zap.Logger
	now          func() time.Time
}

// ConversationState tracks the state of multi-step commands
type ConversationState struct {
	Command string
	Step    int
	Data    map[string]interface{}
}

// stepDone marks a finished conversation
const stepDone = -1

func (b *Bot) state(userID int64) (*ConversationState, bool) {
	b.statesMu.RLock()
	defer b.statesMu.RUnlock()
	s, ok := b.states[userID]
	return s, ok
}

func (b *Bot) setState(userID int64, s *ConversationState) {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()
	b.states[userID] = s
}

func (b *Bot) clearState(userID int64) {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()
	delete(b.states, userID)
}
