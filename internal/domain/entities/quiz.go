package entities

// SessionStatus is the lifecycle state of a quiz session.
type SessionStatus string

const (
	StatusIdle     SessionStatus = "idle"     // nothing loaded
	StatusLoading  SessionStatus = "loading"  // fetching the bank
	StatusActive   SessionStatus = "active"   // answering
	StatusFinished SessionStatus = "finished" // frozen for review
)

// SessionRequest is the raw, unnormalized input for starting a session,
// as it arrives from a command, a query string or stored preferences.
type SessionRequest struct {
	Language string
	Filter   string
	Max      string
	Seed     string
	Mode     string
}

// SessionConfig is the resolved configuration of a running session.
type SessionConfig struct {
	Language     string
	Filter       string // canonical filter passed to the question source
	Categories   []Category
	MaxQuestions int
	Seed         *uint32 // nil when the session is not reproducible
	SeedRaw      string
	Mode         Mode
}

// Seeded reports whether the session order is reproducible.
func (c SessionConfig) Seeded() bool {
	return c.Seed != nil
}

// Selections maps a question id to the chosen option ids.
type Selections map[string][]string

// Clone returns a deep copy.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// SessionState is a read-only snapshot of a session.
type SessionState struct {
	ID         string
	Status     SessionStatus
	Questions  []Question
	Index      int
	Selections Selections
	Checked    map[string]bool
	Revealed   map[string]bool
	Finished   bool
	Err        string
	Config     SessionConfig
}

// Current returns the question at Index.
func (s SessionState) Current() (Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Summary aggregates the score of a set of questions.
type Summary struct {
	Total        int
	Answered     int
	Correct      int
	Incorrect    int
	Remaining    int
	Percent      int
	CorrectIDs   []string
	IncorrectIDs []string
}
