// messages.go contains message templates and formatting helpers for Telegram.

package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Error messages.
const (
	msgQuizUnavailable     = "Failed to load questions. No questions are available right now, try another filter or try again later."
	msgNoActiveQuiz        = "There is no active quiz. Start one with /quiz."
	msgSettingsUnavailable = "Could not load your settings. Try again later."
	msgStaleButton         = "This button belongs to another question."
	msgSelectFirst         = "Select an answer first."
	msgInternalError       = "Something went wrong. Try again later."
	msgUnknownCommand      = "Unknown command. Available commands:\n\n/quiz [filter] [max] [seed] - start a quiz\n/settings - quiz settings\n/summary - current score\n/reset - discard the quiz\n/help - help"
	msgQuizReset           = "Quiz discarded. Start a new one with /quiz."
	msgUseQuizButtons      = "Use the buttons under the quiz message, or start a new quiz with /quiz."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMarkdownV2 builds the welcome message safely for MarkdownV2.
func welcomeMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("Quiz Trainer"))
	sb.WriteString(md(" helps you practise multiple-choice questions by category."))
	sb.WriteString("\n\n")

	sb.WriteString(md("1. Use /quiz to start a quiz with your saved settings."))
	sb.WriteString("\n")
	sb.WriteString(md("2. Use /quiz basic,ux-&-components 20 42 to pick categories, length and a seed."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Use /settings to change the mode, length, language and categories."))
	sb.WriteString("\n")
	sb.WriteString(md("4. Use /summary for your score and /reset to discard the quiz."))
	sb.WriteString("\n\n")

	sb.WriteString(italic("Study mode shows feedback after each check. Exam mode shows it only after you finish."))

	return sb.String()
}

// helpMarkdownV2 builds the help message.
func helpMarkdownV2() string {
	var sb strings.Builder

	sb.WriteString(bold("How it works"))
	sb.WriteString("\n\n")
	sb.WriteString(md("• Tap an option to select it. Multi-answer questions toggle each option."))
	sb.WriteString("\n")
	sb.WriteString(md("• Check scores the current answer, Reveal shows the correct one."))
	sb.WriteString("\n")
	sb.WriteString(md("• Finish freezes the quiz so you can review every question."))
	sb.WriteString("\n\n")
	sb.WriteString(bold("Filters"))
	sb.WriteString("\n\n")
	sb.WriteString(md("A comma-separated list of categories, or all. Unknown names are ignored."))
	sb.WriteString("\n")
	sb.WriteString(md("A seed makes the question and option order reproducible."))

	return sb.String()
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
