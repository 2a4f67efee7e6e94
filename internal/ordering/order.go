package ordering

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/abhisek/sparkquiz/internal/question"
)

// Orderer sequences question records so that starters come first and every
// follow-up comes after its parent. Not safe for concurrent use.
type Orderer struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// New creates an Orderer drawing randomness from rng.
func New(rng *rand.Rand, logger zerolog.Logger) *Orderer {
	return &Orderer{rng: rng, logger: logger}
}

// NewSeeded creates an Orderer with a PCG source. A zero seed picks a random one.
func NewSeeded(seed uint64, logger zerolog.Logger) *Orderer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), logger)
}

// Shuffle returns a uniformly shuffled copy of records with no constraints applied.
func (o *Orderer) Shuffle(records []question.Record) []question.Record {
	out := make([]question.Record, len(records))
	copy(out, records)
	o.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Order returns a permutation of records that honours starter-first and
// follow-up-after-parent constraints, randomized wherever they allow.
//
// It runs a work-list fixed point: each pass places every eligible record
// in work-list order and enqueues the follow-ups it releases. A pass that
// places nothing means a cycle or a dangling reference; the stuck records
// are then placed in random order and scanning continues.
func (o *Orderer) Order(records []question.Record) []question.Record {
	st := newOrderState(records)

	var starters, seed []int
	for i, r := range records {
		switch {
		case r.Starter:
			starters = append(starters, i)
		case !r.IsFollowup():
			seed = append(seed, i)
		case !st.hasID(r.FollowupTo):
			// Parent absent: only the fallback can place it.
			seed = append(seed, i)
		case r.HasID() && len(st.dependents[r.ID]) > 0:
			// A dependency target that is itself a follow-up.
			seed = append(seed, i)
		}
	}

	o.shuffleIdx(starters)
	for _, i := range starters {
		st.queued[i] = true
	}
	var work []int
	for _, i := range starters {
		st.place(i)
		work = append(work, o.release(st, i)...)
	}

	o.shuffleIdx(seed)
	for _, i := range seed {
		if !st.queued[i] {
			st.queued[i] = true
			work = append(work, i)
		}
	}

	for len(work) > 0 {
		var remaining, released []int
		for _, i := range work {
			if !st.eligible(i) {
				remaining = append(remaining, i)
				continue
			}
			st.place(i)
			released = append(released, o.release(st, i)...)
		}

		if len(remaining) == len(work) {
			o.shuffleIdx(remaining)
			o.warnDeadlock(records, remaining)
			for _, i := range remaining {
				st.place(i)
				released = append(released, o.release(st, i)...)
			}
			remaining = nil
		}
		work = append(remaining, released...)
	}

	out := make([]question.Record, 0, len(records))
	for _, i := range st.order {
		out = append(out, records[i])
	}
	return out
}

// release enqueues the follow-ups of a just-placed record that are neither
// queued nor placed yet, in random order.
func (o *Orderer) release(st *orderState, i int) []int {
	r := st.records[i]
	if !r.HasID() {
		return nil
	}
	var fresh []int
	for _, d := range st.dependents[r.ID] {
		if st.queued[d] || st.placed[d] {
			continue
		}
		st.queued[d] = true
		fresh = append(fresh, d)
	}
	o.shuffleIdx(fresh)
	return fresh
}

func (o *Orderer) shuffleIdx(idx []int) {
	o.rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
}

func (o *Orderer) warnDeadlock(records []question.Record, stuck []int) {
	refs := make([]string, 0, len(stuck))
	for _, i := range stuck {
		refs = append(refs, records[i].Ref())
	}
	o.logger.Warn().
		Strs("questions", refs).
		Msg("follow-up dependencies cannot be satisfied, placing remaining questions randomly")
}

// orderState tracks placement by input index; IDs are optional and may repeat.
type orderState struct {
	records    []question.Record
	byID       map[string][]int
	dependents map[string][]int
	placed     []bool
	queued     []bool
	placedIDs  map[string]bool
	order      []int
}

func newOrderState(records []question.Record) *orderState {
	st := &orderState{
		records:    records,
		byID:       make(map[string][]int),
		dependents: make(map[string][]int),
		placed:     make([]bool, len(records)),
		queued:     make([]bool, len(records)),
		placedIDs:  make(map[string]bool),
		order:      make([]int, 0, len(records)),
	}
	for i, r := range records {
		if r.HasID() {
			st.byID[r.ID] = append(st.byID[r.ID], i)
		}
		if r.IsFollowup() {
			st.dependents[r.FollowupTo] = append(st.dependents[r.FollowupTo], i)
		}
	}
	return st
}

func (st *orderState) hasID(id string) bool {
	return len(st.byID[id]) > 0
}

// eligible reports whether record i may be placed now.
func (st *orderState) eligible(i int) bool {
	r := st.records[i]
	return !r.IsFollowup() || st.placedIDs[r.FollowupTo]
}

func (st *orderState) place(i int) {
	st.placed[i] = true
	st.order = append(st.order, i)
	if id := st.records[i].ID; id != "" {
		st.placedIDs[id] = true
	}
}
