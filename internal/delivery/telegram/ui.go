package telegram

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

const maxButtonText = 40

// buildQuestionKeyboard builds the keyboard under a quiz question.
func buildQuestionKeyboard(st entities.SessionState) tgbotapi.InlineKeyboardMarkup {
	q, ok := st.Current()
	if !ok {
		return buildNewQuizKeyboard()
	}

	var rows [][]tgbotapi.InlineKeyboardButton

	if !st.Finished {
		for i, o := range q.Options {
			label := fmt.Sprintf("%d. %s", i+1, o.Text)
			if isSelected(st, q.ID, o.ID) {
				label = "🔘 " + label
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(truncate(label, maxButtonText), buildSelectCallback(st.Index, i)),
			))
		}
	}

	var actions []tgbotapi.InlineKeyboardButton
	if !st.Finished {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("✔️ Check", buildCheckCallback(st.Index)))
	}
	if st.Finished || st.Config.Mode == entities.ModeStudy {
		label := "👁 Reveal"
		if st.Revealed[q.ID] {
			label = "🙈 Hide"
		}
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData(label, buildRevealCallback(st.Index)))
	}
	if len(actions) > 0 {
		rows = append(rows, actions)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if st.Index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Prev", buildQuizCallback(quizPrev)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("%d/%d", st.Index+1, len(st.Questions)), buildQuizCallback(quizSummary),
	))
	if st.Index < len(st.Questions)-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildQuizCallback(quizNext)))
	}
	rows = append(rows, nav)

	if st.Finished {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Summary", buildQuizCallback(quizSummary)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildQuizCallback(quizNew)),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏁 Finish", buildQuizCallback(quizFinish)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildNewQuizKeyboard builds the keyboard offering a fresh quiz.
func buildNewQuizKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizCallback(quizNew)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", buildSettingsCallback(settingsMenu)),
		),
	)
}

// buildSettingsKeyboard builds main settings keyboard.
func buildSettingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎲 Mode", buildSettingsCallback(settingsMode)),
			tgbotapi.NewInlineKeyboardButtonData("📝 Length", buildSettingsCallback(settingsMax)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌐 Language", buildSettingsCallback(settingsLanguage)),
			tgbotapi.NewInlineKeyboardButtonData("🗂 Categories", buildSettingsCallback(settingsCategory)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Clear seed", buildSettingsCallback(settingsSeed, seedClear)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizCallback(quizNew)),
		),
	)
}

func backToSettingsRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Back to settings", buildSettingsCallback(settingsMenu)),
	)
}

// buildModeKeyboard builds keyboard for the mode setting.
func buildModeKeyboard(current entities.Mode) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, m := range entities.Modes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			checked(formatMode(m), m == current), buildSettingsCallback(settingsMode, string(m)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, backToSettingsRow())
}

// buildMaxKeyboard builds keyboard for the quiz length setting.
func buildMaxKeyboard(current int) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for _, n := range entities.MaxOptions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			checked(strconv.Itoa(n), n == current), buildSettingsCallback(settingsMax, strconv.Itoa(n)),
		))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backToSettingsRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLanguageKeyboard builds keyboard for the language setting.
func buildLanguageKeyboard(languages []string, current string) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, lang := range languages {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			checked(lang, lang == current), buildSettingsCallback(settingsLanguage, lang),
		))
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backToSettingsRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCategoryKeyboard builds keyboard toggling categories of the filter.
func buildCategoryKeyboard(filter string) tgbotapi.InlineKeyboardMarkup {
	parsed := entities.ParseFilter(filter)
	selected := make(map[entities.Category]bool, len(parsed.Categories))
	if !parsed.All {
		for _, c := range parsed.Categories {
			selected[c] = true
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, c := range entities.AllCategories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(checked(string(c), selected[c]), buildSettingsCallback(settingsCategory, strconv.Itoa(i))),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(checked("All categories", parsed.All), buildSettingsCallback(settingsCategory, categoryAll)),
	))
	rows = append(rows, backToSettingsRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func checked(label string, on bool) string {
	if on {
		return "✅ " + label
	}
	return label
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
