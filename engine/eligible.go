package engine

import (
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// eligibleSet is the dense, order-irrelevant collection of seed ids
// currently able to win, backed by an arena-style slice plus a position
// index so removal is O(1) swap-and-pop.
//
// A plain map would give O(1) membership too, but its iteration order is
// unspecified, and resolution needs a *defined* scan order for tie-break
// collection and pseudo-random selection to be replayable. The slice
// order (insertion order, perturbed only by swap-and-pop) is that
// defined order.
type eligibleSet struct {
	ids []inter.SeedID
	pos map[inter.SeedID]int
}

func newEligibleSet() eligibleSet {
	return eligibleSet{pos: make(map[inter.SeedID]int)}
}

// add inserts the id if absent.
func (s *eligibleSet) add(id inter.SeedID) {
	if _, ok := s.pos[id]; ok {
		return
	}
	s.pos[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

// remove deletes the id with swap-and-pop: the last element moves into
// the vacated slot. Returns false if the id was not present.
func (s *eligibleSet) remove(id inter.SeedID) bool {
	i, ok := s.pos[id]
	if !ok {
		return false
	}
	last := len(s.ids) - 1
	moved := s.ids[last]
	s.ids[i] = moved
	s.pos[moved] = i
	s.ids = s.ids[:last]
	delete(s.pos, id)
	return true
}

// contains reports membership.
func (s *eligibleSet) contains(id inter.SeedID) bool {
	_, ok := s.pos[id]
	return ok
}

// size returns the number of eligible seeds.
func (s *eligibleSet) size() int {
	return len(s.ids)
}

// reset empties the set, keeping allocations.
func (s *eligibleSet) reset() {
	s.ids = s.ids[:0]
	for id := range s.pos {
		delete(s.pos, id)
	}
}

// snapshot copies the current ids in scan order, for read-only queries
// that must not alias engine-owned memory.
func (s *eligibleSet) snapshot() []inter.SeedID {
	out := make([]inter.SeedID, len(s.ids))
	copy(out, s.ids)
	return out
}
