package session

import "math"

// BadgeNumerator and BadgeDenominator define the badge threshold (80%).
const (
	BadgeNumerator   = 4
	BadgeDenominator = 5
)

// Score returns the sum of points earned across stored results.
func (s *Session) Score() int {
	total := 0
	for _, r := range s.results {
		if r != nil {
			total += r.PointsEarned
		}
	}
	return total
}

// AnsweredCount returns how many questions have a stored result.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, st := range s.states {
		if st == StateAnswered {
			n++
		}
	}
	return n
}

// TotalPossibleScore returns the score denominator under the session's scoring mode.
func (s *Session) TotalPossibleScore() int {
	total := 0
	for _, q := range s.questions {
		if s.scoring == ScoringMax {
			total += q.MaxPoints()
		} else {
			total += q.CorrectPointsSum()
		}
	}
	return total
}

// Percentage returns the rounded score percentage, 0 when nothing is scorable.
func (s *Session) Percentage() int {
	return Percent(s.Score(), s.TotalPossibleScore())
}

// CompletionPercentage returns the rounded share of answered questions.
func (s *Session) CompletionPercentage() int {
	return Percent(s.AnsweredCount(), len(s.questions))
}

// BadgeRequirement returns the answered count needed for the badge.
func (s *Session) BadgeRequirement() int {
	return BadgeRequirement(len(s.questions))
}

// QualifiesForBadge reports whether enough questions have been answered.
func (s *Session) QualifiesForBadge() bool {
	return s.AnsweredCount() >= s.BadgeRequirement()
}

// BadgeRequirement returns ceil(0.8 × total) using integer arithmetic.
func BadgeRequirement(total int) int {
	if total <= 0 {
		return 0
	}
	return (total*BadgeNumerator + BadgeDenominator - 1) / BadgeDenominator
}

// Percent returns round(100 × part / whole), or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
