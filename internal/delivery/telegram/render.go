package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/service"
)

// showFeedback reports whether correctness of q may be shown. Exam mode
// hides it until the session is finished.
func showFeedback(st entities.SessionState, questionID string) bool {
	if st.Finished {
		return true
	}
	return st.Config.Mode == entities.ModeStudy && st.Checked[questionID]
}

// showAnswer reports whether the correct options of q are highlighted.
func showAnswer(st entities.SessionState, questionID string) bool {
	if !st.Revealed[questionID] {
		return false
	}
	return st.Finished || st.Config.Mode == entities.ModeStudy
}

func isSelected(st entities.SessionState, questionID, optionID string) bool {
	for _, id := range st.Selections[questionID] {
		if id == optionID {
			return true
		}
	}
	return false
}

// renderQuestion renders the current question of st for MarkdownV2.
func renderQuestion(st entities.SessionState) string {
	q, ok := st.Current()
	if !ok {
		return md(msgNoActiveQuiz)
	}

	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question %d of %d", st.Index+1, len(st.Questions))))
	if q.Category != "" {
		sb.WriteString(md(" · "))
		sb.WriteString(italic(string(q.Category)))
	}
	if st.Finished {
		sb.WriteString(md(" · review"))
	}
	sb.WriteString("\n")
	if q.Kind == entities.KindMulti {
		sb.WriteString(italic("Select all that apply."))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md(q.Prompt))
	sb.WriteString("\n\n")

	answer := showAnswer(st, q.ID)
	for i, o := range q.Options {
		marker := "⚪"
		if isSelected(st, q.ID, o.ID) {
			marker = "🔘"
		}
		sb.WriteString(md(fmt.Sprintf("%s %d. %s", marker, i+1, o.Text)))
		if answer && q.IsCorrectOption(o.ID) {
			sb.WriteString(md(" ✅"))
		}
		sb.WriteString("\n")
		if answer && o.Explanation != "" {
			sb.WriteString(italic("   ↳ " + o.Explanation))
			sb.WriteString("\n")
		}
	}

	if fb := renderFeedback(st, q); fb != "" {
		sb.WriteString("\n")
		sb.WriteString(fb)
	}

	if answer && q.SourceRef != "" {
		sb.WriteString("\n")
		sb.WriteString(italic("Source: " + q.SourceRef))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func renderFeedback(st entities.SessionState, q entities.Question) string {
	selected := st.Selections[q.ID]

	if !showFeedback(st, q.ID) {
		if st.Checked[q.ID] {
			return italic("Answer recorded.") + "\n"
		}
		return ""
	}

	if len(selected) == 0 {
		return italic("Not answered.") + "\n"
	}

	var sb strings.Builder
	explanation := q.Explanation
	if service.IsCorrect(q, selected) {
		sb.WriteString(bold("✅ Correct"))
	} else {
		sb.WriteString(bold("❌ Incorrect"))
		if !q.ExplanationIncorrect.IsEmpty() {
			explanation = q.ExplanationIncorrect
		}
	}
	sb.WriteString("\n")

	for _, p := range explanation {
		sb.WriteString(md(p))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderSummary renders the score of st.
func renderSummary(st entities.SessionState, sum entities.Summary) string {
	var sb strings.Builder

	title := "📊 Current score"
	if st.Finished {
		title = "🏁 Quiz finished"
	}
	sb.WriteString(bold(title))
	sb.WriteString("\n\n")
	sb.WriteString(md(buildProgressBar(sum.Correct, sum.Total, 20)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("✅ Correct: %d / %d (%d%%)", sum.Correct, sum.Total, sum.Percent)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("❌ Incorrect: %d", sum.Incorrect)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("📝 Answered: %d", sum.Answered)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("⏳ Remaining: %d", sum.Remaining)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🎲 Mode: %s · Filter: %s", st.Config.Mode, st.Config.Filter)))
	if st.Config.Seeded() {
		sb.WriteString("\n")
		sb.WriteString(md("🔁 Seed: " + st.Config.SeedRaw))
	}

	return sb.String()
}

// renderSettings renders stored preferences.
func renderSettings(p *entities.Preferences) string {
	seed := p.Seed
	if seed == "" {
		seed = "random"
	}
	filter := p.Filter
	if filter == "" {
		filter = entities.FilterAll
	}

	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s\n%s\n%s\n",
		bold("⚙️ Settings"),
		md(fmt.Sprintf("🎲 Mode: %s", formatMode(p.Mode))),
		md(fmt.Sprintf("📝 Questions per quiz: %d", p.MaxQuestions)),
		md(fmt.Sprintf("🌐 Language: %s", p.Language)),
		md(fmt.Sprintf("🗂 Categories: %s", filter)),
		md(fmt.Sprintf("🔁 Seed: %s", seed)),
	)
}

func formatMode(mode entities.Mode) string {
	switch mode {
	case entities.ModeExam:
		return "Exam"
	default:
		return "Study"
	}
}
