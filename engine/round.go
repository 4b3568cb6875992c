package engine

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/sirupsen/logrus"

	"github.com/abraham-ai/go-abraham-curation/curation"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// Advance resolves the open round and opens the next one. It is the
// engine's single serialization point: it succeeds at most once per
// round, and a second call before the next period elapses fails with
// ErrPeriodNotEnded.
//
// On success, in one atomic transition the engine:
//  1. selects the round outcome (winner, skip, or pseudo-random
//     fallback) per the current tie-break and deadlock policy,
//  2. marks the winner selected and removes it from the eligible set,
//  3. optionally zeroes the losing candidates' scores
//     (ResetScoresOnResolve),
//  4. appends the immutable round record,
//  5. swaps the pending rules into current (all tunables except the
//     treasury, which was never deferred), and
//  6. opens round N+1 with a fresh period and an eligible set rebuilt
//     under the just-applied rules.
//
// A deadlocked round under the Revert policy fails with
// ErrNoPositiveScores instead (the documented, expected non-outcome)
// and the round stays resolvable.
//
// When the resolved round has a winner, the record is also handed to
// the OnWinner callback after the lock is released.
func (e *Engine) Advance() (inter.WinnerRecord, error) {
	record, err := e.advance()
	if err != nil {
		return inter.WinnerRecord{}, err
	}
	if !record.Skipped() && e.emit != nil {
		// Emitted outside the lock: the elevation workflow behind the
		// callback may be slow, and must never be able to deadlock the
		// engine by calling back into it.
		e.emit(record)
	}
	return record, nil
}

func (e *Engine) advance() (inter.WinnerRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	if now < e.periodStart+e.rules.current.Rounds.PeriodDuration {
		return inter.WinnerRecord{}, ErrPeriodNotEnded
	}

	outcome, err := e.resolve()
	if err != nil {
		return inter.WinnerRecord{}, err
	}

	record := inter.WinnerRecord{
		Round:      e.roundNumber,
		SeedID:     inter.NoSeed,
		ResolvedAt: now,
	}
	if outcome != nil {
		record.SeedID = outcome.ID
		record.ContentHandle = outcome.ContentHandle
		record.FinalScore = outcome.BlessingScore

		if !outcome.Decided() {
			outcome.SelectedInRound = e.roundNumber
		}
		e.eligible.remove(outcome.ID)

		if e.rules.current.Policy.ResetScoresOnResolve {
			e.resetLoserScores(outcome.ID)
		}

		e.log.WithFields(logrus.Fields{
			"round": uint32(e.roundNumber),
			"seed":  uint64(outcome.ID),
			"score": outcome.BlessingScore.String(),
		}).Info("round resolved")
	} else {
		e.log.WithField("round", uint32(e.roundNumber)).Info("round skipped")
	}

	e.history = append(e.history, RoundRecord{
		Number:      e.roundNumber,
		PeriodStart: e.periodStart,
		ResolvedAt:  now,
		Winner:      record.SeedID,
		FinalScore:  record.FinalScore,
	})

	// Deferred configuration swap: pending becomes current inside the
	// same transition, never mid-round.
	e.rules.applyPending()

	e.roundNumber++
	e.periodStart = now
	e.submitted = nil
	e.rebuildEligible()

	return record, nil
}

// resetLoserScores zeroes the scores of every still-eligible candidate
// except the winner, so stale totals cannot silently carry into later
// rounds under persistent mode. The winner's score is left untouched
// for audit, as are retracted seeds' historical scores.
func (e *Engine) resetLoserScores(winner inter.SeedID) {
	for _, id := range e.eligible.ids {
		if id == winner {
			continue
		}
		e.seeds[id].BlessingScore = 0
	}
}

// eligibleUnderMode evaluates the mode-dependent part of the
// eligibility invariant for a seed already known to be unretracted and
// undecided.
func eligibleUnderMode(seed *inter.Seed, mode curation.RoundMode, round idx.Epoch) bool {
	return mode == curation.Persistent || seed.SubmittedInRound == round
}
