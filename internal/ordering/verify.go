package ordering

import (
	"fmt"

	"github.com/abhisek/sparkquiz/internal/question"
)

// Violation is a follow-up placed before its parent.
type Violation struct {
	Ref            string
	Parent         string
	Position       int
	ParentPosition int
}

func (v Violation) String() string {
	return fmt.Sprintf("%q at %d precedes parent %q at %d", v.Ref, v.Position+1, v.Parent, v.ParentPosition+1)
}

// Verify reports every follow-up in seq that appears before the first record
// carrying its parent ID. Follow-ups whose parent is absent are not violations.
func Verify(seq []question.Record) []Violation {
	first := make(map[string]int)
	for i, r := range seq {
		if !r.HasID() {
			continue
		}
		if _, seen := first[r.ID]; !seen {
			first[r.ID] = i
		}
	}

	var out []Violation
	for i, r := range seq {
		if !r.IsFollowup() {
			continue
		}
		p, ok := first[r.FollowupTo]
		if !ok || p < i {
			continue
		}
		out = append(out, Violation{
			Ref:            r.Ref(),
			Parent:         r.FollowupTo,
			Position:       i,
			ParentPosition: p,
		})
	}
	return out
}
