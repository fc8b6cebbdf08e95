package entities

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionKind says how many options a question accepts.
type QuestionKind string

const (
	KindSingle QuestionKind = "single" // exactly one correct option
	KindMulti  QuestionKind = "multi"  // one or more correct options
)

// Valid reports whether k is a known kind.
func (k QuestionKind) Valid() bool {
	return k == KindSingle || k == KindMulti
}

// QuestionOption is a single answer choice.
type QuestionOption struct {
	ID          string `json:"id" yaml:"id"`                                       // unique within its question
	Text        string `json:"text" yaml:"text"`                                   // rendered label
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"` // shown on reveal
}

// Question is one multiple-choice item of a bank. Explanation is shown after
// checking, ExplanationIncorrect after a wrong answer. Version is nil when the
// record has no version field; zero is a valid version.
type Question struct {
	ID                   string           `json:"id" yaml:"id"`
	Kind                 QuestionKind     `json:"type" yaml:"type"`
	Prompt               string           `json:"prompt" yaml:"prompt"`
	Options              []QuestionOption `json:"options" yaml:"options"`
	CorrectIDs           []string         `json:"correct" yaml:"correct"`
	Explanation          Explanation      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	ExplanationIncorrect Explanation      `json:"explanationIncorrect,omitempty" yaml:"explanationIncorrect,omitempty"`
	SourceRef            string           `json:"source,omitempty" yaml:"source,omitempty"`
	ShuffleEnabled       bool             `json:"shuffle,omitempty" yaml:"shuffle,omitempty"`
	LockOptionOrder      bool             `json:"lockOptionOrder,omitempty" yaml:"lockOptionOrder,omitempty"`
	Version              *int             `json:"version" yaml:"version"`
	Category             Category         `json:"pillar,omitempty" yaml:"pillar,omitempty"`
}

// Option returns the option with the given id.
func (q *Question) Option(id string) (QuestionOption, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return QuestionOption{}, false
}

// HasOption reports whether id names one of the question's options.
func (q *Question) HasOption(id string) bool {
	_, ok := q.Option(id)
	return ok
}

// IsCorrectOption reports whether the option id is part of the correct set.
func (q *Question) IsCorrectOption(id string) bool {
	for _, c := range q.CorrectIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can reorder options freely.
func (q Question) Clone() Question {
	q.Options = append([]QuestionOption(nil), q.Options...)
	q.CorrectIDs = append([]string(nil), q.CorrectIDs...)
	q.Explanation = append(Explanation(nil), q.Explanation...)
	q.ExplanationIncorrect = append(Explanation(nil), q.ExplanationIncorrect...)
	if q.Version != nil {
		q.Version = VersionOf(*q.Version)
	}
	return q
}

// VersionOf returns a pointer to n for building questions in code.
func VersionOf(n int) *int {
	return &n
}

// Explanation holds one or more paragraphs. Bank files may use either a
// plain string or a list of strings.
type Explanation []string

// IsEmpty reports whether no non-blank paragraph is present.
func (e Explanation) IsEmpty() bool {
	for _, p := range e {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts a string or an array of strings.
func (e *Explanation) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*e = compact([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("explanation must be a string or a list of strings: %w", err)
	}
	*e = compact(many)
	return nil
}

// MarshalJSON writes a single paragraph back as a plain string.
func (e Explanation) MarshalJSON() ([]byte, error) {
	if len(e) == 1 {
		return json.Marshal(e[0])
	}
	return json.Marshal([]string(e))
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (e *Explanation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*e = compact([]string{node.Value})
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return fmt.Errorf("explanation: %w", err)
		}
		*e = compact(many)
		return nil
	default:
		return fmt.Errorf("explanation must be a string or a list of strings (line %d)", node.Line)
	}
}

func compact(paragraphs []string) Explanation {
	out := make(Explanation, 0, len(paragraphs))
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
