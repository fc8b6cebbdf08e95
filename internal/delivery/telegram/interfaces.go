package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/storage"
)

// BotAPI is the subset of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type PreferencesService interface {
	GetOrDefault(ctx context.Context, userID int64) (*entities.Preferences, error)
	SetMode(ctx context.Context, userID int64, mode entities.Mode) (*entities.Preferences, error)
	SetMaxQuestions(ctx context.Context, userID int64, n int) (*entities.Preferences, error)
	SetLanguage(ctx context.Context, userID int64, lang string) (*entities.Preferences, error)
	ToggleCategory(ctx context.Context, userID int64, c entities.Category) (*entities.Preferences, error)
	SetFilter(ctx context.Context, userID int64, filter string) (*entities.Preferences, error)
	SetSeed(ctx context.Context, userID int64, seed string) (*entities.Preferences, error)
}

// SessionStorage keeps one quiz session per chat.
type SessionStorage interface {
	With(chatID int64, fn func(cs *storage.ChatSession) error) error
	Delete(chatID int64)
}
