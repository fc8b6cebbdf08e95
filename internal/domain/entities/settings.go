package entities

import (
	"math"
	"strconv"
	"strings"
)

// Mode is the quiz presentation mode.
type Mode string

const (
	ModeStudy Mode = "study" // feedback right after checking
	ModeExam  Mode = "exam"  // feedback only after finishing
)

// DefaultMode is used when no valid mode is given.
const DefaultMode = ModeStudy

// Modes lists the supported modes.
var Modes = []Mode{ModeStudy, ModeExam}

// NormalizeMode maps raw input to a Mode. The second result is false when
// the fallback was used.
func NormalizeMode(raw string) (Mode, bool) {
	v := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, m := range Modes {
		if m == v {
			return m, true
		}
	}
	return DefaultMode, false
}

// MaxOptions lists the allowed session lengths.
var MaxOptions = []int{10, 20, 30, 60, 80, 120}

// DefaultMaxQuestions is used when no valid length is given.
const DefaultMaxQuestions = 60

// IsMaxOption reports whether n is an allowed session length.
func IsMaxOption(n int) bool {
	for _, m := range MaxOptions {
		if m == n {
			return true
		}
	}
	return false
}

// NormalizeMax keeps n when it is allowed and falls back otherwise.
func NormalizeMax(n int) (int, bool) {
	if IsMaxOption(n) {
		return n, true
	}
	return DefaultMaxQuestions, false
}

// ParseMax parses a session length such as "20" or " 60.0 ".
func ParseMax(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return DefaultMaxQuestions, false
	}
	return NormalizeMax(int(f))
}

// DefaultLanguage is the fallback language code.
const DefaultLanguage = "en"

// NormalizeLanguage lower-cases raw and checks it against the supported
// codes. Unsupported or empty input falls back to fallback.
func NormalizeLanguage(raw string, supported []string, fallback string) (string, bool) {
	if fallback == "" {
		fallback = DefaultLanguage
	}
	code := strings.ToLower(strings.TrimSpace(raw))
	if code == "" {
		return fallback, true
	}
	for _, s := range supported {
		if strings.EqualFold(s, code) {
			return code, true
		}
	}
	return fallback, false
}
