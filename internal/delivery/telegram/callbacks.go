package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	var (
		chatID = cb.Message.Chat.ID
		msgID  = cb.Message.MessageID
		data   = decodeCallback(cb.Data)
		toast  string
		err    error
	)

	switch data.Action {
	case actionQuiz:
		toast, err = h.handleQuizCallback(ctx, chatID, msgID, data)
	case actionSettings:
		err = h.handleSettingsCallback(ctx, chatID, msgID, data)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		toast = msgInternalError
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

// handleQuizCallback applies a quiz button press and returns an optional
// toast for the user.
func (h *Handler) handleQuizCallback(ctx context.Context, chatID int64, msgID int, data callbackData) (string, error) {
	switch data.sub() {
	case quizNew:
		return "", h.startQuiz(ctx, chatID, h.quizRequest(ctx, chatID), msgID)
	case quizSummary:
		return "", h.handleSummary()(ctx, chatID)
	}

	var (
		toast    string
		finished bool
	)
	err := h.sessions.With(chatID, func(cs *storage.ChatSession) error {
		s := cs.Session
		if s.Status() == entities.StatusIdle || s.Len() == 0 {
			toast = msgNoActiveQuiz
			return nil
		}

		q, _ := s.Current()

		switch data.sub() {
		case quizSelect, quizCheck, quizReveal:
			qi, ok := data.intParam(1)
			if !ok || qi != s.Index() {
				toast = msgStaleButton
				return nil
			}
		}

		switch data.sub() {
		case quizSelect:
			oi, ok := data.intParam(2)
			if !ok || oi >= len(q.Options) {
				return nil
			}
			s.SelectOption(q.ID, q.Options[oi].ID)

		case quizCheck:
			if len(s.Selected(q.ID)) == 0 {
				toast = msgSelectFirst
				return nil
			}
			s.Check(q.ID)

		case quizReveal:
			s.Reveal(q.ID)

		case quizPrev:
			s.Prev()

		case quizNext:
			s.Next()

		case quizFinish:
			s.Finish()
			finished = true

		default:
			return nil
		}

		cs.MessageID = msgID
		st := s.Snapshot()
		return h.edit(chatID, msgID, renderQuestion(st), buildQuestionKeyboard(st))
	})
	if err != nil {
		return "", err
	}

	if finished {
		return "", h.handleSummary()(ctx, chatID)
	}
	return toast, nil
}
