package session

import "time"

// Outcome is one row of the per-question breakdown.
type Outcome struct {
	Index        int
	Title        string
	State        QuestionState
	Correct      bool
	PointsEarned int
	// MaxPoints is the best correct answer's value, whatever the scoring mode.
	MaxPoints    int
	SelectedText string
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	SessionID string
	// Complete is true when the session ran to the end rather than exiting early.
	Complete bool
	// StartedAt is when the run began; Duration is how long it took.
	StartedAt            time.Time
	Duration             time.Duration
	Score                int
	TotalPossible        int
	Percentage           int
	Answered             int
	TotalQuestions       int
	CompletionPercentage int
	BadgeRequirement     int
	QualifiesForBadge    bool
	Breakdown            []Outcome
}

// Summary returns the results of the session so far.
func (s *Session) Summary() *Summary {
	return BuildSummary(s)
}

// BuildSummary creates a Summary from the current session state.
func BuildSummary(s *Session) *Summary {
	breakdown := make([]Outcome, len(s.questions))
	for i, q := range s.questions {
		o := Outcome{
			Index:     i,
			Title:     q.BreakdownTitle(i),
			State:     s.states[i],
			MaxPoints: q.MaxPoints(),
		}
		if r := s.results[i]; r != nil {
			o.Correct = r.IsCorrect
			o.PointsEarned = r.PointsEarned
			o.SelectedText = q.Answers[r.SelectedIndex].Text
		}
		breakdown[i] = o
	}

	return &Summary{
		SessionID:            s.id,
		Complete:             s.status == StatusCompleted,
		StartedAt:            s.startTime,
		Duration:             s.elapsed(),
		Score:                s.Score(),
		TotalPossible:        s.TotalPossibleScore(),
		Percentage:           s.Percentage(),
		Answered:             s.AnsweredCount(),
		TotalQuestions:       len(s.questions),
		CompletionPercentage: s.CompletionPercentage(),
		BadgeRequirement:     s.BadgeRequirement(),
		QualifiesForBadge:    s.QualifiesForBadge(),
		Breakdown:            breakdown,
	}
}
