package service

import (
	"math"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// IsExactMatch reports whether selected and correct contain the same ids.
// Order and duplicates are ignored.
func IsExactMatch(selected, correct []string) bool {
	want := toSet(correct)
	got := toSet(selected)
	if len(want) != len(got) {
		return false
	}
	for id := range want {
		if _, ok := got[id]; !ok {
			return false
		}
	}
	return true
}

// IsCorrect scores one answer. Single and multi questions both use exact
// matching.
func IsCorrect(q entities.Question, selected []string) bool {
	return IsExactMatch(selected, q.CorrectIDs)
}

// Summarize scores questions against the recorded selections. Questions
// without a selection count as neither correct nor incorrect.
func Summarize(questions []entities.Question, selections entities.Selections) entities.Summary {
	summary := entities.Summary{Total: len(questions)}

	for _, q := range questions {
		selected := selections[q.ID]
		if len(selected) == 0 {
			continue
		}
		if IsCorrect(q, selected) {
			summary.CorrectIDs = append(summary.CorrectIDs, q.ID)
			continue
		}
		summary.IncorrectIDs = append(summary.IncorrectIDs, q.ID)
	}

	summary.Correct = len(summary.CorrectIDs)
	summary.Incorrect = len(summary.IncorrectIDs)
	summary.Answered = summary.Correct + summary.Incorrect
	summary.Remaining = summary.Total - summary.Answered
	if summary.Total > 0 {
		summary.Percent = int(math.Floor(float64(summary.Correct)/float64(summary.Total)*100 + 0.5))
	}

	return summary
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
