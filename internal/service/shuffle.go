package service

import (
	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
)

// Shuffle returns a Fisher–Yates permutation of items. The input is never
// modified. Given the same input and a source in the same state the output
// is identical.
func Shuffle[T any](items []T, rng RandomSource) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(rng.Float64() * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// OrderOptions returns the presentation order of q's options: the authored
// order when the question locks it, a shuffle otherwise.
func OrderOptions(q entities.Question, rng RandomSource) []entities.QuestionOption {
	if q.LockOptionOrder {
		return append([]entities.QuestionOption(nil), q.Options...)
	}
	return Shuffle(q.Options, rng)
}
