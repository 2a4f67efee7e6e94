package session

import "github.com/rs/zerolog"

// TransitionLogger returns a subscriber that logs every transition at debug
// level. Subscribe it with Session.Subscribe.
func TransitionLogger(logger zerolog.Logger) func(Snapshot) {
	return func(s Snapshot) {
		ev := logger.Debug().
			Str("session", s.SessionID).
			Stringer("status", s.Status).
			Int("position", s.Index).
			Int("answered", s.Answered).
			Int("score", s.Score).
			Bool("submitted", s.Submitted)
		if s.Result != nil {
			ev = ev.Bool("correct", s.Result.IsCorrect)
		}
		ev.Msg("session transition")
	}
}
