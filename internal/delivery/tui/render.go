package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

const (
	colorTitle   = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("244")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorCursor  = lipgloss.Color("220")
)

// stylize applies a foreground color unless color is disabled.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func renderIdle(errMsg string, noColor bool) string {
	if errMsg != "" {
		return stylize("Failed to load questions: "+errMsg, noColor, colorWrong) + "\n" +
			stylize("Press s to try again.", noColor, colorMuted)
	}
	return stylize("No session. Press s to start.", noColor, colorMuted)
}

func renderHeader(st entities.SessionState, noColor bool) string {
	title := fmt.Sprintf("Question %d/%d", st.Index+1, len(st.Questions))
	parts := []string{stylize(title, noColor, colorTitle)}

	if q, ok := st.Current(); ok && q.Category != "" {
		parts = append(parts, stylize(string(q.Category), noColor, colorMuted))
	}
	parts = append(parts, stylize(string(st.Config.Mode), noColor, colorMuted))
	if st.Config.Seeded() {
		parts = append(parts, stylize("seed "+st.Config.SeedRaw, noColor, colorMuted))
	}
	if st.Finished {
		parts = append(parts, stylize("finished", noColor, colorCursor))
	}

	return strings.Join(parts, " · ")
}

// feedbackVisible matches the bot: exam mode hides correctness until the
// session is finished.
func feedbackVisible(st entities.SessionState, questionID string) bool {
	return st.Finished || (st.Config.Mode == entities.ModeStudy && st.Checked[questionID])
}

func answerVisible(st entities.SessionState, questionID string) bool {
	return st.Revealed[questionID] && (st.Finished || st.Config.Mode == entities.ModeStudy)
}

func renderQuestion(st entities.SessionState, noColor bool) string {
	q, ok := st.Current()
	if !ok {
		return stylize("This session has no questions.", noColor, colorMuted)
	}

	var sb strings.Builder
	sb.WriteString(q.Prompt)
	if q.Kind == entities.KindMulti {
		sb.WriteString(stylize("  (select all that apply)", noColor, colorMuted))
	}
	sb.WriteString("\n\n")

	selected := make(map[string]bool)
	for _, id := range st.Selections[q.ID] {
		selected[id] = true
	}
	reveal := answerVisible(st, q.ID)

	for i, o := range q.Options {
		box := "[ ]"
		if selected[o.ID] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %d. %s", box, i+1, o.Text)
		switch {
		case reveal && q.IsCorrectOption(o.ID):
			line = stylize(line+"  ✓", noColor, colorCorrect)
		case selected[o.ID]:
			line = stylize(line, noColor, colorCursor)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		if reveal && o.Explanation != "" {
			sb.WriteString(stylize("      "+o.Explanation, noColor, colorMuted))
			sb.WriteString("\n")
		}
	}

	if fb := renderFeedback(st, q, noColor); fb != "" {
		sb.WriteString("\n")
		sb.WriteString(fb)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderFeedback(st entities.SessionState, q entities.Question, noColor bool) string {
	if !feedbackVisible(st, q.ID) {
		if st.Checked[q.ID] {
			return stylize("Answer recorded.", noColor, colorMuted)
		}
		return ""
	}

	selected := st.Selections[q.ID]
	if len(selected) == 0 {
		return stylize("Not answered.", noColor, colorMuted)
	}

	explanation := q.Explanation
	verdict := stylize("Correct", noColor, colorCorrect)
	if !service.IsCorrect(q, selected) {
		verdict = stylize("Incorrect", noColor, colorWrong)
		if !q.ExplanationIncorrect.IsEmpty() {
			explanation = q.ExplanationIncorrect
		}
	}

	lines := append([]string{verdict}, explanation...)
	return strings.Join(lines, "\n")
}

func renderScore(st entities.SessionState, sum entities.Summary, noColor bool) string {
	if !st.Finished {
		return stylize(fmt.Sprintf("answered %d/%d", sum.Answered, sum.Total), noColor, colorMuted)
	}
	return stylize(
		fmt.Sprintf("Score: %d/%d (%d%%) · incorrect %d · unanswered %d",
			sum.Correct, sum.Total, sum.Percent, sum.Incorrect, sum.Remaining),
		noColor, colorTitle,
	)
}
