package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/abraham-ai/go-abraham-curation/inter"
)

// Bless casts a vote on a seed.
//
// The elector proves membership by presenting its owned unit ids and a
// proof against a published commitment root (current root first, then
// the previous one to tolerate in-flight proofs). The daily blessing
// quota is len(units) x BlessingsPerUnit, attested fresh on every call
// rather than cached.
//
// The score effect is the O(1) delta update mandated by the data model:
// the elector's cumulative blessing count on this seed feeds the
// sub-linear Dampen curve, and only the difference between the new and
// the last-applied dampened weight, scaled by the current blessing
// weight and the within-period time-decay multiplier, is added to the
// seed's score. Re-deriving the full score from history would make the
// call cost grow with the elector's past; the stored last-applied value
// keeps it constant.
//
// payment must cover the current blessing cost; the excess is returned
// as the refund, never retained. A nil payment reads as zero.
func (e *Engine) Bless(elector common.Address, id inter.SeedID, units []uint64, proof [][]byte, payment *big.Int) (refund *big.Int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Validation before any state read.
	if len(units) == 0 {
		return nil, ErrEmptyUnitSet
	}

	seed, ok := e.seeds[id]
	if !ok {
		return nil, ErrSeedNotFound
	}
	if seed.Retracted {
		return nil, ErrSeedRetracted
	}
	if seed.Decided() {
		return nil, ErrSeedAlreadySelected
	}

	if !e.roots.VerifyAgainst(e.oracle, elector, units, proof) {
		return nil, ErrInvalidProof
	}

	now := e.clock()
	quotas := e.rules.current.Quotas
	used := e.usedToday(elector, now)
	limit := uint64(len(units)) * uint64(quotas.BlessingsPerUnit)
	if uint64(used.blessings) >= limit {
		return nil, ErrQuotaExhausted
	}

	cost := e.rules.current.Economy.BlessingCost
	refund, err = splitPayment(payment, cost)
	if err != nil {
		return nil, err
	}

	// All checks passed; mutate as one unit.
	pair := e.pairFor(elector, id)
	pair.blessings++
	newWeight := inter.Dampen(pair.blessings)
	rawDelta := newWeight - pair.blessApplied
	pair.blessApplied = newWeight

	scoring := e.rules.current.Scoring
	decay := inter.DecayMultiplier(
		now.Elapsed(e.periodStart),
		e.rules.current.Rounds.PeriodDuration,
		scoring.TimeDecayBase,
		scoring.TimeDecayMin,
	)
	delta := inter.WeighDelta(rawDelta, scoring.BlessingWeight, decay)
	seed.BlessingScore += delta

	used.blessings++
	e.treasuryAccrued.Add(e.treasuryAccrued, cost)

	e.log.WithFields(logrus.Fields{
		"seed":    uint64(id),
		"elector": elector.Hex(),
		"delta":   delta.String(),
		"score":   seed.BlessingScore.String(),
	}).Debug("blessing applied")
	return refund, nil
}

// Command attaches a comment to a seed.
//
// Commandments are discourse, not voting: they remain possible on seeds
// that already won and on rounds long past; only retracted (or unknown)
// seeds reject them. They consume an independent daily quota. When the
// current rules give commandments a non-zero weight, a commandment on a
// still-undecided seed also contributes score through the same
// delta/dampen pattern as blessings; decided seeds never change score,
// so a winner's recorded final score stays auditable.
//
// The handle names the comment's content address; like the seed handle
// it is validated for shape only and never resolved.
func (e *Engine) Command(elector common.Address, id inter.SeedID, contentHandle string, units []uint64, proof [][]byte, payment *big.Int) (refund *big.Int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := inter.ValidateContentHandle(contentHandle, int(e.rules.current.Limits.MaxContentHandleLen)); err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, ErrEmptyUnitSet
	}

	seed, ok := e.seeds[id]
	if !ok {
		return nil, ErrSeedNotFound
	}
	if seed.Retracted {
		return nil, ErrSeedRetracted
	}

	if !e.roots.VerifyAgainst(e.oracle, elector, units, proof) {
		return nil, ErrInvalidProof
	}

	now := e.clock()
	quotas := e.rules.current.Quotas
	used := e.usedToday(elector, now)
	limit := uint64(len(units)) * uint64(quotas.CommandmentsPerUnit)
	if uint64(used.commandments) >= limit {
		return nil, ErrQuotaExhausted
	}

	cost := e.rules.current.Economy.CommandmentCost
	refund, err = splitPayment(payment, cost)
	if err != nil {
		return nil, err
	}

	seed.CommandmentCount++
	used.commandments++
	e.treasuryAccrued.Add(e.treasuryAccrued, cost)

	scoring := e.rules.current.Scoring
	if scoring.CommandmentWeight > 0 && !seed.Decided() {
		pair := e.pairFor(elector, id)
		pair.commandments++
		newWeight := inter.Dampen(pair.commandments)
		rawDelta := newWeight - pair.cmdApplied
		pair.cmdApplied = newWeight

		decay := inter.DecayMultiplier(
			now.Elapsed(e.periodStart),
			e.rules.current.Rounds.PeriodDuration,
			scoring.TimeDecayBase,
			scoring.TimeDecayMin,
		)
		seed.BlessingScore += inter.WeighDelta(rawDelta, scoring.CommandmentWeight, decay)
	}

	e.log.WithFields(logrus.Fields{
		"seed":    uint64(id),
		"elector": elector.Hex(),
		"count":   seed.CommandmentCount,
	}).Debug("commandment applied")
	return refund, nil
}

// usedToday returns the elector's mutable usage record for the day of
// `now`. A record stamped with an older day is recycled in place: the
// counters start from zero under the new day key, which is the only
// reset mechanism the quotas have.
func (e *Engine) usedToday(elector common.Address, now inter.Timestamp) *dayUsage {
	today := now.Day()
	u, ok := e.usage[elector]
	if !ok {
		u = &dayUsage{day: today}
		e.usage[elector] = u
		return u
	}
	if u.day != today {
		*u = dayUsage{day: today}
	}
	return u
}

// pairFor returns the mutable contribution stream for (elector, seed).
func (e *Engine) pairFor(elector common.Address, id inter.SeedID) *pairState {
	k := pairKey{elector: elector, seed: id}
	p, ok := e.pairs[k]
	if !ok {
		p = &pairState{}
		e.pairs[k] = p
	}
	return p
}

// splitPayment checks payment against cost and computes the refund.
// Errors before any state mutation, so an insufficient payment has no
// scoring or quota effect; the refund is everything above the cost.
func splitPayment(payment, cost *big.Int) (*big.Int, error) {
	if payment == nil {
		payment = new(big.Int)
	}
	if payment.Cmp(cost) < 0 {
		return nil, ErrInsufficientPayment
	}
	return new(big.Int).Sub(payment, cost), nil
}
