package service

import (
	"slices"
	"testing"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// TestIsExactMatch verifies set comparison ignores order and duplicates.
func TestIsExactMatch(t *testing.T) {
	cases := []struct {
		selected, correct []string
		want              bool
	}{
		{[]string{"a"}, []string{"a"}, true},
		{[]string{"c", "a"}, []string{"a", "c"}, true},
		{[]string{"a", "a", "c"}, []string{"a", "c"}, true},
		{[]string{"a"}, []string{"a", "c"}, false},
		{[]string{"a", "b", "c"}, []string{"a", "c"}, false},
		{nil, []string{"a"}, false},
		{[]string{"b"}, []string{"a"}, false},
	}

	for _, tc := range cases {
		if got := IsExactMatch(tc.selected, tc.correct); got != tc.want {
			t.Fatalf("IsExactMatch(%v, %v) = %v, expected %v", tc.selected, tc.correct, got, tc.want)
		}
	}
}

// TestIsCorrectMultiRequiresFullSet verifies partial multi answers are wrong.
func TestIsCorrectMultiRequiresFullSet(t *testing.T) {
	q := multiQuestion("m1")
	if IsCorrect(q, []string{"a"}) {
		t.Fatalf("partial answer scored as correct")
	}
	if !IsCorrect(q, []string{"c", "a"}) {
		t.Fatalf("full answer scored as wrong")
	}
}

// TestSummarizeCountsAnswered verifies unanswered questions are remaining.
func TestSummarizeCountsAnswered(t *testing.T) {
	questions := []entities.Question{singleQuestion("q1"), singleQuestion("q2"), multiQuestion("q3"), singleQuestion("q4")}
	selections := entities.Selections{
		"q1": {"a"},
		"q2": {"b"},
		"q3": {"a", "c"},
		"q4": {},
	}

	sum := Summarize(questions, selections)
	if sum.Total != 4 || sum.Answered != 3 || sum.Correct != 2 || sum.Incorrect != 1 || sum.Remaining != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.Percent != 50 {
		t.Fatalf("expected 50%%, got %d", sum.Percent)
	}
	if !slices.Equal(sum.CorrectIDs, []string{"q1", "q3"}) || !slices.Equal(sum.IncorrectIDs, []string{"q2"}) {
		t.Fatalf("unexpected ids %v / %v", sum.CorrectIDs, sum.IncorrectIDs)
	}
}

// TestSummarizePercentRounding verifies the percentage rounds half up.
func TestSummarizePercentRounding(t *testing.T) {
	questions := numberedBank(3)

	sum := Summarize(questions, entities.Selections{"q1": {"a"}})
	if sum.Percent != 33 {
		t.Fatalf("expected 33, got %d", sum.Percent)
	}
	sum = Summarize(questions, entities.Selections{"q1": {"a"}, "q2": {"a"}})
	if sum.Percent != 67 {
		t.Fatalf("expected 67, got %d", sum.Percent)
	}

	eight := numberedBank(8)
	sum = Summarize(eight, entities.Selections{"q1": {"a"}})
	if sum.Percent != 13 {
		t.Fatalf("expected 12.5 to round to 13, got %d", sum.Percent)
	}
}

// TestSummarizeAllCorrect verifies a fully correct set scores 100.
func TestSummarizeAllCorrect(t *testing.T) {
	questions := append(numberedBank(2), multiQuestion("m1"))
	sum := Summarize(questions, entities.Selections{"q1": {"a"}, "q2": {"a"}, "m1": {"c", "a"}})
	if sum.Correct != 3 || sum.Incorrect != 0 || sum.Percent != 100 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

// TestSummarizeEmpty verifies an empty session scores zero.
func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil, entities.Selections{})
	if sum.Total != 0 || sum.Percent != 0 || sum.Remaining != 0 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}
