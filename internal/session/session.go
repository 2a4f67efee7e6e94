package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sparkquiz/internal/question"
)

// Session is the quiz state machine for one run. It is owned by a single
// caller; every transition runs to completion before the next one.
type Session struct {
	id        string
	startTime time.Time
	endTime   time.Time
	questions []question.Record
	position  int
	states    []QuestionState
	results   []*Result
	status    Status

	// Per-cycle state for the current question. A cycle starts whenever the
	// question is (re)displayed: on advance, jump, retry and restart.
	pending   int   // display index of the pending choice, -1 when none
	submitted bool  // true once the cycle's answer was submitted
	display   []int // display position -> index into Record.Answers

	scoring   ScoringMode
	rng       *rand.Rand
	sequencer Sequencer

	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// New creates a session over already-ordered questions.
func New(questions []question.Record, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if opts.Scoring == "" {
		opts.Scoring = ScoringSum
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Session{
		questions:   append([]question.Record(nil), questions...),
		scoring:     opts.Scoring,
		rng:         opts.Rand,
		sequencer:   opts.Sequencer,
		subscribers: make(map[int]func(Snapshot)),
	}
	s.reset()
	return s, nil
}

// ID returns the session identifier. It changes on Restart.
func (s *Session) ID() string { return s.id }


// Status returns the global session status.
func (s *Session) Status() Status { return s.status }

// Position returns the index of the current question.
func (s *Session) Position() int { return s.position }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Questions returns a copy of the ordered questions.
func (s *Session) Questions() []question.Record {
	return append([]question.Record(nil), s.questions...)
}

// State returns the answer state of question i.
func (s *Session) State(i int) QuestionState {
	if i < 0 || i >= len(s.states) {
		return StateUnanswered
	}
	return s.states[i]
}

// Result returns a copy of the stored result for question i, or nil.
func (s *Session) Result(i int) *Result {
	if i < 0 || i >= len(s.results) || s.results[i] == nil {
		return nil
	}
	r := *s.results[i]
	return &r
}

// Current returns the current question.
func (s *Session) Current() question.Record {
	return s.questions[s.position]
}

// SelectAnswer records displayIndex as the pending choice for the current
// question. It does not touch stored states or results.
func (s *Session) SelectAnswer(displayIndex int) error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if displayIndex < 0 || displayIndex >= len(s.display) {
		return fmt.Errorf("select answer %d: %w", displayIndex, ErrInvalidIndex)
	}
	s.pending = displayIndex
	s.notify()
	return nil
}

// Submit scores the pending choice and stores the result for the current
// question. After a Retry the new result replaces the earlier one.
func (s *Session) Submit() (Result, error) {
	if err := s.checkActive(); err != nil {
		return Result{}, err
	}
	if s.submitted {
		return Result{}, ErrAlreadySubmitted
	}
	if s.pending < 0 {
		return Result{}, ErrNoSelection
	}

	idx := s.display[s.pending]
	opt := s.questions[s.position].Answers[idx]
	res := Result{SelectedIndex: idx, IsCorrect: opt.Correct}
	if opt.Correct {
		res.PointsEarned = opt.Value()
	}

	s.states[s.position] = StateAnswered
	s.results[s.position] = &res
	s.submitted = true
	s.notify()
	return res, nil
}

// CanRetry reports whether Retry is currently permitted.
func (s *Session) CanRetry() bool {
	if s.status != StatusInProgress {
		return false
	}
	res := s.results[s.position]
	return res != nil && !res.IsCorrect && s.questions[s.position].AllowRetry
}

// Retry re-opens the current question for a new selection. The stored
// result and answered state remain until the next Submit overwrites them.
func (s *Session) Retry() error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if !s.CanRetry() {
		return ErrRetryNotAllowed
	}
	s.beginCycle()
	s.submitted = false
	s.notify()
	return nil
}

// Advance moves to the next question, or completes the session from the last one.
func (s *Session) Advance() error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if s.position < len(s.questions)-1 {
		s.position++
		s.beginCycle()
	} else {
		s.finish(StatusCompleted)
	}
	s.notify()
	return nil
}

// Jump moves directly to question index without touching stored results.
// Returning to an answered question shows its result; it cannot be
// submitted again unless Retry allows it.
func (s *Session) Jump(index int) error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("jump to %d: %w", index, ErrInvalidIndex)
	}
	s.position = index
	s.beginCycle()
	s.notify()
	return nil
}

// NeedsExitConfirmation reports whether Exit requires the caller's consent,
// which is the case once any question has been answered.
func (s *Session) NeedsExitConfirmation() bool {
	return s.AnsweredCount() > 0
}

// Exit ends the session early. With answered questions and confirmed false
// nothing changes and Exit returns false.
func (s *Session) Exit(confirmed bool) (bool, error) {
	if err := s.checkActive(); err != nil {
		return false, err
	}
	if s.NeedsExitConfirmation() && !confirmed {
		return false, nil
	}
	s.finish(StatusExitedEarly)
	s.notify()
	return true, nil
}

// Restart re-orders the questions and clears every result. It is permitted
// in any status.
func (s *Session) Restart() {
	if s.sequencer != nil {
		s.questions = s.sequencer.Order(s.questions)
	} else {
		s.rng.Shuffle(len(s.questions), func(i, j int) {
			s.questions[i], s.questions[j] = s.questions[j], s.questions[i]
		})
	}
	s.reset()
	s.notify()
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

func (s *Session) reset() {
	s.id = uuid.New().String()
	s.startTime = time.Now()
	s.endTime = time.Time{}
	s.position = 0
	s.status = StatusInProgress
	s.states = make([]QuestionState, len(s.questions))
	s.results = make([]*Result, len(s.questions))
	s.beginCycle()
}

// beginCycle clears the pending choice and picks the display order for the
// current question. An answered question opens already submitted, so its
// stored result shows and only Retry can reopen it.
func (s *Session) beginCycle() {
	s.pending = -1
	s.submitted = s.states[s.position] == StateAnswered

	n := len(s.questions[s.position].Answers)
	if s.questions[s.position].RandomAnswerOrder {
		s.display = s.rng.Perm(n)
		return
	}
	s.display = make([]int, n)
	for i := range s.display {
		s.display[i] = i
	}
}

func (s *Session) finish(status Status) {
	s.status = status
	s.endTime = time.Now()
}

// elapsed is the time spent in the current run, frozen once it ends.
func (s *Session) elapsed() time.Duration {
	if s.endTime.IsZero() {
		return time.Since(s.startTime)
	}
	return s.endTime.Sub(s.startTime)
}

func (s *Session) checkActive() error {
	if s.status != StatusInProgress {
		return fmt.Errorf("%w (%s)", ErrSessionOver, s.status)
	}
	return nil
}

func (s *Session) notify() {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.subscribers {
		fn(snap)
	}
}
