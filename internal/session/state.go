package session

import (
	"errors"
	"math/rand/v2"

	"github.com/abhisek/sparkquiz/internal/question"
)

var (
	// ErrNoQuestions is returned when a session is created without questions.
	ErrNoQuestions = errors.New("no questions")

	// ErrNoSelection is returned by Submit when no answer has been selected.
	ErrNoSelection = errors.New("no answer selected")

	// ErrAlreadySubmitted is returned when the current question was already
	// submitted in this cycle.
	ErrAlreadySubmitted = errors.New("answer already submitted")

	// ErrRetryNotAllowed is returned by Retry unless the stored result is
	// incorrect and the question allows retries.
	ErrRetryNotAllowed = errors.New("retry not allowed")

	// ErrInvalidIndex is returned for out-of-range question or answer indices.
	ErrInvalidIndex = errors.New("index out of range")

	// ErrSessionOver is returned for transitions on a completed or exited session.
	ErrSessionOver = errors.New("session is over")
)

// Status is the global session status.
type Status int

const (
	StatusInProgress  Status = iota // Questions are being served
	StatusCompleted                 // Advanced past the last question
	StatusExitedEarly               // Left before the end
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusExitedEarly:
		return "exited-early"
	default:
		return "in-progress"
	}
}

// QuestionState tracks whether a question has a stored result.
type QuestionState int

const (
	StateUnanswered QuestionState = iota
	StateAnswered
)

func (s QuestionState) String() string {
	if s == StateAnswered {
		return "answered"
	}
	return "unanswered"
}

// ScoringMode selects how the total possible score is computed.
type ScoringMode string

const (
	// ScoringSum adds up the points of every correct answer of each question.
	ScoringSum ScoringMode = "sum"
	// ScoringMax counts only the highest-valued correct answer of each question.
	ScoringMax ScoringMode = "max"
)

// Result is the stored outcome of a submission.
type Result struct {
	// SelectedIndex indexes Record.Answers in authored order.
	SelectedIndex int
	IsCorrect     bool
	PointsEarned  int
}

// Sequencer orders questions when a session restarts.
type Sequencer interface {
	Order(records []question.Record) []question.Record
}

// Options configures a Session.
type Options struct {
	// Scoring defaults to ScoringSum.
	Scoring ScoringMode

	// Rand drives answer permutation and, without a Sequencer, the restart
	// shuffle. A random source is used when nil.
	Rand *rand.Rand

	// Sequencer re-orders questions on Restart. Without one, Restart falls
	// back to a plain shuffle.
	Sequencer Sequencer
}

// DisplayAnswer is an answer option in display position.
type DisplayAnswer struct {
	// Index is the option's position in Record.Answers.
	Index  int
	Option question.AnswerOption
}
