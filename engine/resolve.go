package engine

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/abraham-ai/go-abraham-curation/curation"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// resolve implements the resolution policy for the open round. It
// returns the winning seed, nil for a skipped round, or an error when
// the configured deadlock strategy is Revert. It mutates nothing; the
// caller (advance) applies the outcome.
func (e *Engine) resolve() (*inter.Seed, error) {
	max, tied := e.scanMax(e.eligible.ids)

	if max == 0 {
		return e.resolveDeadlock()
	}
	if len(tied) == 1 {
		return e.seeds[tied[0]], nil
	}

	strategy := e.rules.current.Policy.TieBreak
	if strategy == curation.PseudoRandom {
		return e.seeds[e.pickRandom(tied)], nil
	}
	return e.seeds[e.breakTie(tied, strategy)], nil
}

// resolveDeadlock handles the zero-max-score case per the configured
// strategy.
func (e *Engine) resolveDeadlock() (*inter.Seed, error) {
	switch e.rules.current.Policy.Deadlock {
	case curation.Revert:
		return nil, ErrNoPositiveScores

	case curation.SkipRound:
		return nil, nil

	case curation.RandomFromAll:
		if e.eligible.size() == 0 {
			// Nothing to pick from; behave as a skip so the round still
			// makes progress.
			return nil, nil
		}
		return e.seeds[e.pickRandom(e.eligible.ids)], nil

	case curation.AllowRewins:
		pool := e.rewinPool()
		if len(pool) == 0 {
			return nil, nil
		}
		return e.seeds[e.pickRandom(pool)], nil
	}
	// Unknown strategies are rejected by Rules.Validate before they can
	// reach the ledger.
	return nil, ErrNoPositiveScores
}

// rewinPool is the AllowRewins candidate set: the eligible seeds plus
// every previously-won, non-retracted seed, the latter appended in
// ascending id order so the pool order is defined.
func (e *Engine) rewinPool() []inter.SeedID {
	pool := append([]inter.SeedID(nil), e.eligible.ids...)
	for id := inter.SeedID(1); id < e.nextSeedID; id++ {
		seed, ok := e.seeds[id]
		if !ok || seed.Retracted || !seed.Decided() {
			continue
		}
		pool = append(pool, id)
	}
	return pool
}

// scanMax walks the candidate ids in their defined order and returns
// the maximum score along with all candidates holding it, preserving
// scan order among the tied.
func (e *Engine) scanMax(ids []inter.SeedID) (inter.Score, []inter.SeedID) {
	var max inter.Score
	var tied []inter.SeedID
	for _, id := range ids {
		score := e.seeds[id].BlessingScore
		switch {
		case score > max:
			max = score
			tied = append(tied[:0], id)
		case score == max && max > 0:
			tied = append(tied, id)
		}
	}
	return max, tied
}

// breakTie applies a deterministic tie-break strategy to the tied
// candidates. Creation-time strategies fall back to the lower id when
// two seeds share a timestamp, so the result is always unique.
func (e *Engine) breakTie(tied []inter.SeedID, strategy curation.TieBreakStrategy) inter.SeedID {
	best := tied[0]
	for _, id := range tied[1:] {
		if e.beats(id, best, strategy) {
			best = id
		}
	}
	return best
}

// beats reports whether candidate a wins the tie against b under the
// strategy.
func (e *Engine) beats(a, b inter.SeedID, strategy curation.TieBreakStrategy) bool {
	sa, sb := e.seeds[a], e.seeds[b]
	switch strategy {
	case curation.EarliestSubmission:
		if sa.CreatedAt != sb.CreatedAt {
			return sa.CreatedAt < sb.CreatedAt
		}
		return a < b
	case curation.LatestSubmission:
		if sa.CreatedAt != sb.CreatedAt {
			return sa.CreatedAt > sb.CreatedAt
		}
		return a < b
	case curation.LowestSeedID:
		return a < b
	case curation.HighestSeedID:
		return a > b
	}
	return false
}

// pickRandom selects one candidate pseudo-randomly: the draw is a
// keccak of the round number and an injected entropy value, reduced
// modulo the pool size over the defined pool order. Deterministic given
// the same entropy input, and exactly as manipulable as that entropy
// source: best-effort, not adversary-proof.
func (e *Engine) pickRandom(pool []inter.SeedID) inter.SeedID {
	entropy := e.entropy()
	h := crypto.Keccak256(bigendian.Uint64ToBytes(uint64(e.roundNumber)), entropy[:])
	i := bigendian.BytesToUint64(h[:8]) % uint64(len(pool))
	return pool[i]
}
