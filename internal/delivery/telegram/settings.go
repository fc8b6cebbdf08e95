package telegram

import (
	"context"
	"strconv"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// handleSettings shows the settings menu. A non-zero messageID is edited in
// place.
func (h *Handler) handleSettings(messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		prefs, err := h.preferences.GetOrDefault(ctx, chatID)
		if err != nil {
			h.sendError(chatID, msgSettingsUnavailable)
			return err
		}

		text := renderSettings(prefs)
		kb := buildSettingsKeyboard()

		if messageID != 0 {
			return h.edit(chatID, messageID, text, kb)
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

func (h *Handler) handleSettingsCallback(ctx context.Context, chatID int64, msgID int, data callbackData) error {
	prefs, err := h.preferences.GetOrDefault(ctx, chatID)
	if err != nil {
		return err
	}

	value := ""
	if len(data.Params) > 1 {
		value = data.Params[1]
	}

	switch data.sub() {
	case settingsMode:
		if value == "" {
			return h.edit(chatID, msgID, renderSettings(prefs), buildModeKeyboard(prefs.Mode))
		}
		mode, _ := entities.NormalizeMode(value)
		if _, err := h.preferences.SetMode(ctx, chatID, mode); err != nil {
			return err
		}

	case settingsMax:
		if value == "" {
			return h.edit(chatID, msgID, renderSettings(prefs), buildMaxKeyboard(prefs.MaxQuestions))
		}
		n, _ := entities.ParseMax(value)
		if _, err := h.preferences.SetMaxQuestions(ctx, chatID, n); err != nil {
			return err
		}

	case settingsLanguage:
		if value == "" {
			return h.edit(chatID, msgID, renderSettings(prefs), buildLanguageKeyboard(h.languages, prefs.Language))
		}
		if _, err := h.preferences.SetLanguage(ctx, chatID, value); err != nil {
			return err
		}

	case settingsCategory:
		if value == "" {
			return h.edit(chatID, msgID, renderSettings(prefs), buildCategoryKeyboard(prefs.Filter))
		}
		updated, err := h.toggleCategory(ctx, chatID, value)
		if err != nil {
			return err
		}
		if updated == nil {
			return nil
		}
		return h.edit(chatID, msgID, renderSettings(updated), buildCategoryKeyboard(updated.Filter))

	case settingsSeed:
		if _, err := h.preferences.SetSeed(ctx, chatID, ""); err != nil {
			return err
		}
	}

	return h.handleSettings(msgID)(ctx, chatID)
}

// toggleCategory returns nil preferences when value names no category.
func (h *Handler) toggleCategory(ctx context.Context, chatID int64, value string) (*entities.Preferences, error) {
	if value == categoryAll {
		return h.preferences.SetFilter(ctx, chatID, entities.FilterAll)
	}

	i, err := strconv.Atoi(value)
	if err != nil || i < 0 || i >= len(entities.AllCategories) {
		return nil, nil
	}
	return h.preferences.ToggleCategory(ctx, chatID, entities.AllCategories[i])
}
