package entities

import (
	"strconv"
	"time"
)

// Preferences are the per-user choices remembered between sessions.
// They never carry question or answer data.
type Preferences struct {
	UserID       int64
	Language     string // language code, e.g. "en"
	Filter       string // canonical category filter, "all" or CSV
	MaxQuestions int    // one of MaxOptions
	Seed         string // raw seed as entered, empty when unseeded
	Mode         Mode
	UpdatedAt    time.Time
}

// NewPreferences creates preferences with default values.
func NewPreferences(userID int64) *Preferences {
	return &Preferences{
		UserID:       userID,
		Language:     DefaultLanguage,
		Filter:       FilterAll,
		MaxQuestions: DefaultMaxQuestions,
		Mode:         DefaultMode,
		UpdatedAt:    time.Now(),
	}
}

// Request turns stored preferences into a session request.
func (p *Preferences) Request() SessionRequest {
	return SessionRequest{
		Language: p.Language,
		Filter:   p.Filter,
		Max:      strconv.Itoa(p.MaxQuestions),
		Seed:     p.Seed,
		Mode:     string(p.Mode),
	}
}

// Normalize replaces unknown values with defaults, the way stored
// preferences are re-read.
func (p *Preferences) Normalize(supportedLanguages []string, defaultLanguage string) {
	p.Language, _ = NormalizeLanguage(p.Language, supportedLanguages, defaultLanguage)
	p.Filter = ParseFilter(p.Filter).String()
	p.MaxQuestions, _ = NormalizeMax(p.MaxQuestions)
	p.Mode, _ = NormalizeMode(string(p.Mode))
}
