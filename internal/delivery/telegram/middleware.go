package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one command or callback for a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed quiz action and sends the chat a generic
// error message instead of leaving the keyboard unanswered.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("quiz action failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}
