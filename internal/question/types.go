package question

import (
	"fmt"
	"regexp"
	"strings"
)

// TypeQuiz is the only document type accepted as a question.
const TypeQuiz = "quiz"

// DefaultLevel is shown when a record does not declare a level.
const DefaultLevel = "intermediate"

// Record is a single question definition. It is never mutated after load.
type Record struct {
	// Type must be TypeQuiz; anything else is discarded by the loader.
	Type string `yaml:"type"`

	// ID is optional and only needed when another record follows up on this one.
	ID string `yaml:"id,omitempty"`

	// FollowupTo names the ID of the record that must be asked first.
	FollowupTo string `yaml:"followup_to,omitempty"`

	// Starter records are eligible to open the sequence.
	Starter bool `yaml:"starter,omitempty"`

	Title    string `yaml:"title,omitempty"`
	Question string `yaml:"question"`
	Context  string `yaml:"context,omitempty"`
	Level    string `yaml:"level,omitempty"`

	// Answers is the authored option order. Display order may differ.
	Answers []AnswerOption `yaml:"answers"`

	// RandomAnswerOrder permits the presentation to permute Answers.
	RandomAnswerOrder bool `yaml:"random_answer_order,omitempty"`

	// AllowRetry enables a retry after an incorrect submission.
	AllowRetry bool `yaml:"allow_retry,omitempty"`

	MultipleCorrectFlag bool `yaml:"multiple_correct,omitempty"`
	Meta                Meta `yaml:"meta,omitempty"`

	// Source is the reference the record was loaded from.
	Source string `yaml:"-"`
}

// Meta holds optional authoring metadata.
type Meta struct {
	MultipleCorrect bool `yaml:"multiple_correct,omitempty"`
}

// AnswerOption is one selectable answer.
type AnswerOption struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct,omitempty"`
	Points  int    `yaml:"points,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// Value returns the points awarded for this option when it is correct.
// Absent or non-positive points count as 1.
func (a AnswerOption) Value() int {
	if a.Points <= 0 {
		return 1
	}
	return a.Points
}

// MultipleCorrect reports whether the record is flagged as having more than
// one correct answer. Informational only; selection is always single-choice.
func (r Record) MultipleCorrect() bool {
	return r.MultipleCorrectFlag || r.Meta.MultipleCorrect
}

// HasID reports whether the record can be referenced by a follow-up.
func (r Record) HasID() bool {
	return r.ID != ""
}

// IsFollowup reports whether the record depends on another record.
func (r Record) IsFollowup() bool {
	return r.FollowupTo != ""
}

// MaxPoints returns the largest point value among correct answers.
func (r Record) MaxPoints() int {
	best := 0
	for _, a := range r.Answers {
		if a.Correct && a.Value() > best {
			best = a.Value()
		}
	}
	return best
}

// CorrectPointsSum returns the sum of point values of every correct answer.
func (r Record) CorrectPointsSum() int {
	total := 0
	for _, a := range r.Answers {
		if a.Correct {
			total += a.Value()
		}
	}
	return total
}

// LevelOrDefault returns the declared level or DefaultLevel.
func (r Record) LevelOrDefault() string {
	if r.Level == "" {
		return DefaultLevel
	}
	return r.Level
}

// Ref returns a short label for log lines: the ID, else the source, else the title.
func (r Record) Ref() string {
	switch {
	case r.ID != "":
		return r.ID
	case r.Source != "":
		return r.Source
	default:
		return r.Title
	}
}

// DisplayTitle returns the title used in question lists. Records without a
// title fall back to a truncated plain-text version of the question.
func (r Record) DisplayTitle(maxLen int) string {
	if r.Title != "" {
		return r.Title
	}
	return Truncate(StripMarkup(r.Question), maxLen)
}

// BreakdownTitle returns the title used in the results breakdown.
func (r Record) BreakdownTitle(index int) string {
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("Question %d", index+1)
}

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	markPattern   = regexp.MustCompile("\\*\\*|\\*|`")
	spacesPattern = regexp.MustCompile(`\s+`)
)

// StripTags removes HTML tags, keeping their inner text.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// StripMarkup removes HTML tags and markdown-lite markers and collapses whitespace.
func StripMarkup(s string) string {
	s = StripTags(s)
	s = markPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(spacesPattern.ReplaceAllString(s, " "))
}

// Truncate shortens s to maxLen runes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
