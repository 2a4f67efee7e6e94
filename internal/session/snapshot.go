package session

import "github.com/abhisek/sparkquiz/internal/question"

// Snapshot is an immutable view of the session for the presentation layer.
type Snapshot struct {
	SessionID string
	Status    Status

	// Index is the current position; Total the number of questions.
	Index int
	Total int
	IsLast bool

	Question question.Record
	Answers  []DisplayAnswer
	State    QuestionState

	// Pending is the display index of the selected answer, -1 when none.
	Pending   int
	Submitted bool

	// Result is the stored result for the current question, if any.
	Result *Result

	// Selected is the submitted option; AlsoCorrect lists the other correct
	// options of a multiple-correct question answered incorrectly.
	// Both are only set once the current cycle has been submitted.
	Selected    *DisplayAnswer
	AlsoCorrect []DisplayAnswer

	CanRetry bool

	Score             int
	TotalPossible     int
	Answered          int
	BadgeRequirement  int
	QualifiesForBadge bool
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	q := s.questions[s.position]

	answers := make([]DisplayAnswer, len(s.display))
	for pos, idx := range s.display {
		answers[pos] = DisplayAnswer{Index: idx, Option: q.Answers[idx]}
	}

	snap := Snapshot{
		SessionID:         s.id,
		Status:            s.status,
		Index:             s.position,
		Total:             len(s.questions),
		IsLast:            s.position == len(s.questions)-1,
		Question:          q,
		Answers:           answers,
		State:             s.states[s.position],
		Pending:           s.pending,
		Submitted:         s.submitted,
		Result:            s.Result(s.position),
		CanRetry:          s.CanRetry(),
		Score:             s.Score(),
		TotalPossible:     s.TotalPossibleScore(),
		Answered:          s.AnsweredCount(),
		BadgeRequirement:  s.BadgeRequirement(),
		QualifiesForBadge: s.QualifiesForBadge(),
	}

	if s.submitted && snap.Result != nil {
		for _, a := range answers {
			if a.Index == snap.Result.SelectedIndex {
				sel := a
				snap.Selected = &sel
				continue
			}
			if q.MultipleCorrect() && !snap.Result.IsCorrect && a.Option.Correct {
				snap.AlsoCorrect = append(snap.AlsoCorrect, a)
			}
		}
	}
	return snap
}

// EntryStatus is a question's status in the question list.
type EntryStatus int

const (
	EntryUnanswered EntryStatus = iota
	EntryAnswered
	EntryCurrent
)

func (e EntryStatus) String() string {
	switch e {
	case EntryCurrent:
		return "Current"
	case EntryAnswered:
		return "Answered"
	default:
		return "Not Answered"
	}
}

// ListTitleLength caps untitled questions in the question list.
const ListTitleLength = 60

// Entry is one row of the question list.
type Entry struct {
	Index  int
	Title  string
	Status EntryStatus
}

// Entries returns the question list with per-question status.
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.questions))
	for i, q := range s.questions {
		st := EntryUnanswered
		switch {
		case i == s.position:
			st = EntryCurrent
		case s.states[i] == StateAnswered:
			st = EntryAnswered
		}
		out[i] = Entry{Index: i, Title: q.DisplayTitle(ListTitleLength), Status: st}
	}
	return out
}
