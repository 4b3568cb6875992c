package engine

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/abraham-ai/go-abraham-curation/curation"
)

// rulesLedger holds the two parallel rule sets: the current rules that
// govern the open round, and the pending rules staged by the governor.
// Pending becomes current exactly once per round, at the Advance
// transition, so a mid-round change can never re-price activity already
// inside the round. The treasury address is the one exception: it is
// applied immediately on write, since redirecting future accruals
// carries no fairness risk for voters.
type rulesLedger struct {
	current curation.Rules
	pending curation.Rules
}

func newRulesLedger(r curation.Rules) rulesLedger {
	return rulesLedger{current: r.Copy(), pending: r.Copy()}
}

// applyPending swaps pending into current. Called only from Advance,
// inside the same state transition as the round outcome.
func (l *rulesLedger) applyPending() {
	l.current = l.pending.Copy()
}

// ---------------------------------------------------------------------
// Governor operations. These are the only write paths for configuration
// and root publication.
// ---------------------------------------------------------------------

// SetPendingRules stages a full rule set to be applied at the next round
// boundary. The staged treasury is forced to the currently effective one
// because treasury changes go through SetTreasury (immediate), never
// through deferral.
func (e *Engine) SetPendingRules(caller common.Address, r curation.Rules) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.governor {
		return ErrNotAuthorized
	}
	if err := r.Validate(); err != nil {
		return err
	}
	staged := r.Copy()
	staged.Economy.Treasury = e.rules.current.Economy.Treasury
	e.rules.pending = staged
	e.log.WithField("round", e.roundNumber).Info("pending rules staged")
	return nil
}

// SetTreasury changes the treasury address immediately, in both the
// current and pending rule sets.
func (e *Engine) SetTreasury(caller, treasury common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.governor {
		return ErrNotAuthorized
	}
	e.rules.current.Economy.Treasury = treasury
	e.rules.pending.Economy.Treasury = treasury
	e.log.WithField("treasury", treasury.Hex()).Info("treasury updated")
	return nil
}

// CurrentRules returns a copy of the rules governing the open round.
func (e *Engine) CurrentRules() curation.Rules {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules.current.Copy()
}

// PendingRules returns a copy of the staged rules.
func (e *Engine) PendingRules() curation.Rules {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules.pending.Copy()
}

// PublishRoot stores a new electorate commitment root. The engine keeps
// the previous root alongside it so proofs generated just before the
// update remain valid for one cycle; it performs no validation of the
// root's provenance beyond the caller check.
func (e *Engine) PublishRoot(caller common.Address, root hash.Hash) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.governor {
		return ErrNotAuthorized
	}
	now := e.clock()
	e.roots.Publish(root, now)
	e.log.WithFields(logrus.Fields{
		"root": root.Hex(),
		"at":   now.String(),
	}).Info("commitment root published")
	return nil
}
