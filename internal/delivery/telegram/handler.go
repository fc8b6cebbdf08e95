package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	sessions    SessionStorage
	preferences PreferencesService
	languages   []string
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	sessions SessionStorage,
	preferences PreferencesService,
	languages []string,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		sessions:    sessions,
		preferences: preferences,
		languages:   languages,
	}
}

// Commands lists the bot commands registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the trainer"},
		{Command: "quiz", Description: "New quiz (usage: /quiz [filter] [max] [seed])"},
		{Command: "settings", Description: "Quiz settings"},
		{Command: "summary", Description: "Score of the current quiz"},
		{Command: "reset", Description: "Discard the current quiz"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling update", zap.Any("panic", r))
		}
	}()

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.handleText())(ctx, chatID)
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

	case "help":
		_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz(args))(ctx, chatID)

	case "settings":
		_ = h.withErrorHandling(h.handleSettings(0))(ctx, chatID)

	case "summary":
		_ = h.withErrorHandling(h.handleSummary())(ctx, chatID)

	case "reset":
		_ = h.withErrorHandling(h.handleReset())(ctx, chatID)

	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}
