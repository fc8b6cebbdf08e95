package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
	"github.com/aliskhannn/quiz-trainer/internal/service"
	"github.com/aliskhannn/quiz-trainer/internal/storage"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: 100}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) last() tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return nil
	}
	return b.sent[len(b.sent)-1]
}

type bankSource struct {
	err error
}

func (s bankSource) FetchQuestions(context.Context, string, string) ([]entities.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []entities.Question{{
		ID:              "q1",
		Kind:            entities.KindSingle,
		Prompt:          "Pick the first",
		Options:         []entities.QuestionOption{{ID: "a", Text: "First"}, {ID: "b", Text: "Second"}},
		CorrectIDs:      []string{"a"},
		Explanation:     entities.Explanation{"First is first."},
		LockOptionOrder: true,
		Version:         entities.VersionOf(1),
	}}, nil
}

func newTestHandler(src service.QuestionSource) (*Handler, *fakeBot, *storage.SessionStorage, *repository.MemoryPreferences) {
	bot := &fakeBot{}
	prefs := repository.NewMemoryPreferences()
	sessions := storage.NewSessionStorage(func(chatID int64) *service.Session {
		return service.NewSession(src, service.WithPreferences(prefs, chatID))
	})
	h := NewHandler(bot, zap.NewNop(), sessions,
		service.NewPreferencesService(prefs, []string{"en"}, "en"), []string{"en"})
	return h, bot, sessions, prefs
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	cmdLen := len(strings.Fields(text)[0])
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func callbackUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID},
		Message: &tgbotapi.Message{MessageID: 100, Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}

// TestQuizCommandStartsSession verifies /quiz sends the first question and saves settings.
func TestQuizCommandStartsSession(t *testing.T) {
	h, bot, sessions, prefs := newTestHandler(bankSource{})
	ctx := context.Background()

	h.handleUpdate(ctx, commandUpdate(1, "/quiz basic 10 7"))

	msg, ok := bot.last().(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected a message, got %T", bot.last())
	}
	if !strings.Contains(msg.Text, "Pick the first") || msg.ReplyMarkup == nil {
		t.Fatalf("unexpected question message %+v", msg)
	}

	_ = sessions.With(1, func(cs *storage.ChatSession) error {
		if cs.MessageID != 100 || cs.Session.Config().Filter != "basic" || cs.Session.Config().SeedRaw != "7" {
			t.Fatalf("unexpected session %+v", cs.Session.Config())
		}
		return nil
	})

	stored, err := prefs.Get(ctx, 1)
	if err != nil || stored.MaxQuestions != 10 {
		t.Fatalf("expected saved preferences, got %+v (%v)", stored, err)
	}
}

// TestQuizCommandSourceFailure verifies an unavailable bank yields a friendly message.
func TestQuizCommandSourceFailure(t *testing.T) {
	h, bot, _, _ := newTestHandler(bankSource{err: context.DeadlineExceeded})

	h.handleUpdate(context.Background(), commandUpdate(1, "/quiz"))

	msg, ok := bot.last().(tgbotapi.MessageConfig)
	if !ok || msg.Text != msgQuizUnavailable {
		t.Fatalf("expected unavailable message, got %+v", bot.last())
	}
}

// TestQuizCallbacksEditMessage verifies select and check edit the quiz in place.
func TestQuizCallbacksEditMessage(t *testing.T) {
	h, bot, sessions, _ := newTestHandler(bankSource{})
	ctx := context.Background()
	h.handleUpdate(ctx, commandUpdate(1, "/quiz"))

	h.handleUpdate(ctx, callbackUpdate(1, buildSelectCallback(0, 0)))
	h.handleUpdate(ctx, callbackUpdate(1, buildCheckCallback(0)))

	edit, ok := bot.last().(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("expected an edit, got %T", bot.last())
	}
	if edit.MessageID != 100 || !strings.Contains(edit.Text, "Correct") {
		t.Fatalf("unexpected edit %+v", edit)
	}

	_ = sessions.With(1, func(cs *storage.ChatSession) error {
		if !cs.Session.IsChecked("q1") || !cs.Session.IsSelected("q1", "a") {
			t.Fatalf("callbacks not applied")
		}
		return nil
	})
}

// TestStaleQuestionButton verifies buttons of another question are rejected.
func TestStaleQuestionButton(t *testing.T) {
	h, bot, sessions, _ := newTestHandler(bankSource{})
	ctx := context.Background()
	h.handleUpdate(ctx, commandUpdate(1, "/quiz"))

	h.handleUpdate(ctx, callbackUpdate(1, buildSelectCallback(5, 0)))

	_ = sessions.With(1, func(cs *storage.ChatSession) error {
		if len(cs.Session.Selected("q1")) != 0 {
			t.Fatalf("stale button changed the answer")
		}
		return nil
	})

	bot.mu.Lock()
	defer bot.mu.Unlock()
	answer, ok := bot.requests[len(bot.requests)-1].(tgbotapi.CallbackConfig)
	if !ok || answer.Text != msgStaleButton {
		t.Fatalf("expected stale toast, got %+v", bot.requests[len(bot.requests)-1])
	}
}

// TestApplyQuizArgs verifies positional overrides and the keep marker.
func TestApplyQuizArgs(t *testing.T) {
	req := entities.SessionRequest{Filter: "all", Max: "60", Seed: "1"}
	applyQuizArgs(&req, "- 20 99 extra")
	if req.Filter != "all" || req.Max != "20" || req.Seed != "99" {
		t.Fatalf("unexpected request %+v", req)
	}
}

// TestResetCommand verifies /reset returns the session to idle.
func TestResetCommand(t *testing.T) {
	h, _, sessions, _ := newTestHandler(bankSource{})
	ctx := context.Background()
	h.handleUpdate(ctx, commandUpdate(1, "/quiz"))
	h.handleUpdate(ctx, commandUpdate(1, "/reset"))

	_ = sessions.With(1, func(cs *storage.ChatSession) error {
		if cs.Session.Status() != entities.StatusIdle || cs.MessageID != 0 {
			t.Fatalf("expected idle session after reset")
		}
		return nil
	})
}

// TestWithErrorHandlingNotifiesChat verifies a failing action is swallowed and
// answered with the generic error message.
func TestWithErrorHandlingNotifiesChat(t *testing.T) {
	h, bot, _, _ := newTestHandler(bankSource{})

	fn := h.withErrorHandling(func(context.Context, int64) error { return context.Canceled })
	if err := fn(context.Background(), 4); err != nil {
		t.Fatalf("expected error to be handled, got %v", err)
	}

	msg, ok := bot.last().(tgbotapi.MessageConfig)
	if !ok || msg.ChatID != 4 || msg.Text != msgInternalError {
		t.Fatalf("expected internal error message, got %+v", bot.last())
	}
}
