package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/abraham-ai/go-abraham-curation/inter"
)

// SubmitSeed registers a new candidate work and returns its id.
//
// The content handle is validated for its minimal syntactic shape only;
// it is never resolved. Submission is rejected once the global or the
// per-round seed ceiling is reached; both exist to bound the full-set
// scans that resolution performs. The new seed enters the eligible set
// immediately and the open round's submission index records it.
//
// Submission stays open while the round is unresolved, including after
// the period has elapsed (a deadlocked round under the Revert policy
// must be able to receive new candidates).
func (e *Engine) SubmitSeed(creator common.Address, contentHandle string) (inter.SeedID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	limits := e.rules.current.Limits
	if err := inter.ValidateContentHandle(contentHandle, int(limits.MaxContentHandleLen)); err != nil {
		return inter.NoSeed, err
	}
	if uint32(len(e.seeds)) >= limits.MaxSeeds {
		return inter.NoSeed, ErrSeedLimitReached
	}
	if uint32(len(e.submitted)) >= limits.MaxSeedsPerRound {
		return inter.NoSeed, ErrRoundSeedLimitReached
	}

	id := e.nextSeedID
	e.nextSeedID++
	seed := &inter.Seed{
		ID:               id,
		Creator:          creator,
		ContentHandle:    contentHandle,
		CreatedAt:        e.clock(),
		SubmittedInRound: e.roundNumber,
	}
	e.seeds[id] = seed
	e.eligible.add(id)
	e.submitted = append(e.submitted, id)

	e.log.WithFields(logrus.Fields{
		"seed":    uint64(id),
		"creator": creator.Hex(),
		"round":   uint32(e.roundNumber),
	}).Debug("seed submitted")
	return id, nil
}

// RetractSeed permanently withdraws a seed. Only the creator may
// retract, and only before the seed has won a round. Retraction removes
// the seed from the eligible set but leaves all accumulated scores and
// commandment counts untouched for audit.
func (e *Engine) RetractSeed(caller common.Address, id inter.SeedID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	seed, ok := e.seeds[id]
	if !ok {
		return ErrSeedNotFound
	}
	if caller != seed.Creator {
		return ErrNotCreator
	}
	if seed.Retracted {
		return ErrSeedRetracted
	}
	if seed.Decided() {
		return ErrSeedAlreadySelected
	}

	seed.Retracted = true
	e.eligible.remove(id)

	e.log.WithFields(logrus.Fields{
		"seed":  uint64(id),
		"round": uint32(e.roundNumber),
	}).Debug("seed retracted")
	return nil
}

// rebuildEligible reconstructs the eligible set from first principles
// under the current rules and the open round number. Called at round
// boundaries, where the round mode may have just changed: a seed is a
// member iff it is unretracted, undecided and admitted by the mode.
// Seeds are scanned in ascending id order so the rebuilt scan order is
// deterministic.
func (e *Engine) rebuildEligible() {
	e.eligible.reset()
	mode := e.rules.current.Rounds.Mode
	for id := inter.SeedID(1); id < e.nextSeedID; id++ {
		seed, ok := e.seeds[id]
		if !ok {
			continue
		}
		if seed.Retracted || seed.Decided() {
			continue
		}
		if !eligibleUnderMode(seed, mode, e.roundNumber) {
			continue
		}
		e.eligible.add(id)
	}
}
