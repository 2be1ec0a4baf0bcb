package bot

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shelfwatch/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api        *tgbotapi.BotAPI
	db         storage.Storage
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
	sessions   map[int64]session
	sessionsMu sync.RWMutex
}

// step enumerates the registration flow states. A chat with no session entry
// is idle; every transition goes through the session accessors so failure
// paths always land in a defined state.
type step int

const (
	stepAwaitingPhoto step = iota + 1
	stepAwaitingReturnableOrDate
	stepAwaitingReturnableDate
)

// session tracks one chat's in-flight product registration
type session struct {
	Step        step
	PhotoFileID string
	StartedAt   time.Time
}

func (b *Bot) session(chatID int64) (session, bool) {
	b.sessionsMu.RLock()
	defer b.sessionsMu.RUnlock()
	s, ok := b.sessions[chatID]
	return s, ok
}

func (b *Bot) setSession(chatID int64, s session) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	b.sessions[chatID] = s
}

func (b *Bot) clearSession(chatID int64) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	delete(b.sessions, chatID)
}

// EvictStaleSessions drops abandoned registration flows older than maxAge and
// returns how many were removed. Called from the daily scheduler so the
// session map cannot grow without bound.
func (b *Bot) EvictStaleSessions(maxAge time.Duration) int {
	cutoff := b.now().Add(-maxAge)

	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	evicted := 0
	for chatID, s := range b.sessions {
		if s.StartedAt.Before(cutoff) {
			delete(b.sessions, chatID)
			evicted++
		}
	}
	return evicted
}
