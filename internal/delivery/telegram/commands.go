package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/storage"
)

// keepArg skips a positional /quiz argument.
const keepArg = "-"

func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, welcomeMarkdownV2())
		msg.ReplyMarkup = buildNewQuizKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMarkdownV2()))
	}
}

// handleQuiz starts a quiz from the saved preferences, overridden by the
// positional arguments [filter] [max] [seed].
func (h *Handler) handleQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		req := h.quizRequest(ctx, chatID)
		applyQuizArgs(&req, args)
		return h.startQuiz(ctx, chatID, req, 0)
	}
}

func (h *Handler) quizRequest(ctx context.Context, chatID int64) entities.SessionRequest {
	prefs, err := h.preferences.GetOrDefault(ctx, chatID)
	if err != nil {
		h.logger.Warn("failed to load preferences, using defaults",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		prefs = entities.NewPreferences(chatID)
	}
	return prefs.Request()
}

// applyQuizArgs overrides req with "/quiz [filter] [max] [seed]" arguments.
// A "-" keeps the saved value for that position.
func applyQuizArgs(req *entities.SessionRequest, args string) {
	fields := strings.Fields(args)
	targets := []*string{&req.Filter, &req.Max, &req.Seed}

	for i, f := range fields {
		if i >= len(targets) {
			break
		}
		if f == keepArg {
			continue
		}
		*targets[i] = f
	}
}

// startQuiz starts a new session for the chat. A non-zero messageID is
// edited in place, otherwise a new message is sent.
func (h *Handler) startQuiz(ctx context.Context, chatID int64, req entities.SessionRequest, messageID int) error {
	return h.sessions.With(chatID, func(cs *storage.ChatSession) error {
		if err := cs.Session.Start(ctx, req); err != nil {
			cs.MessageID = 0
			return h.send(newPlainMessage(chatID, msgQuizUnavailable))
		}

		h.logger.Info("quiz started",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", cs.Session.ID()),
			zap.Int("questions", cs.Session.Len()),
		)

		st := cs.Session.Snapshot()
		if messageID != 0 {
			cs.MessageID = messageID
			return h.edit(chatID, messageID, renderQuestion(st), buildQuestionKeyboard(st))
		}

		msg := newMessage(chatID, renderQuestion(st))
		msg.ReplyMarkup = buildQuestionKeyboard(st)
		sent, err := h.bot.Send(msg)
		if err != nil {
			return err
		}
		cs.MessageID = sent.MessageID
		return nil
	})
}

func (h *Handler) handleSummary() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.sessions.With(chatID, func(cs *storage.ChatSession) error {
			if cs.Session.Status() == entities.StatusIdle {
				return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
			}

			st := cs.Session.Snapshot()
			msg := newMessage(chatID, renderSummary(st, cs.Session.Summary()))
			if st.Finished {
				msg.ReplyMarkup = buildNewQuizKeyboard()
			}
			return h.send(msg)
		})
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := h.sessions.With(chatID, func(cs *storage.ChatSession) error {
			cs.Session.Reset()
			cs.MessageID = 0
			return nil
		})
		if err != nil {
			return err
		}

		msg := newPlainMessage(chatID, msgQuizReset)
		msg.ReplyMarkup = buildNewQuizKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleText() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newPlainMessage(chatID, msgUseQuizButtons))
	}
}

// edit replaces a message. Edits that leave the message unchanged are not
// errors.
func (h *Handler) edit(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	e := newEdit(chatID, messageID, text)
	e.ReplyMarkup = &kb

	if _, err := h.bot.Send(e); err != nil {
		if strings.Contains(err.Error(), "message is not modified") {
			return nil
		}
		return err
	}
	return nil
}
