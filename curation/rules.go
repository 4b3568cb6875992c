// Package curation defines the network rules and configuration
// parameters for the Abraham curation engine.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Round lifecycle rules (period duration, round mode)
//   - Scoring rules (blessing/commandment weights, time decay)
//   - Quota rules (per-unit daily allowances)
//   - Economic parameters (blessing/commandment costs, treasury)
//   - Candidate limits bounding iteration costs
//   - Resolution policy (tie-break and deadlock strategies)
//
// The Rules type is the central configuration structure. The engine
// holds two copies: the "current" rules that govern the open round and
// a "pending" copy staged by the governor, swapped into current exactly
// at a round boundary so a mid-round rule change can never retroactively
// re-price votes already cast.
package curation

import (
	"encoding/json"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/abraham-ai/go-abraham-curation/inter"
)

// Network identification constants.
const (
	// MainNetworkID identifies the production curation network.
	MainNetworkID uint64 = 0xab1

	// TestNetworkID identifies the staging network.
	TestNetworkID uint64 = 0xab2

	// FakeNetworkID identifies local/fake networks used in testing.
	FakeNetworkID uint64 = 0xab3
)

// Default candidate ceilings. These bound the cost of the full-set scans
// that resolution and eligible-set rebuilds perform.
const (
	// DefaultMaxSeeds is the global seed ceiling.
	DefaultMaxSeeds = 100_000

	// DefaultMaxSeedsPerRound is the per-round submission ceiling.
	DefaultMaxSeedsPerRound = 1_000

	// DefaultMaxContentHandleLen bounds the stored content-address
	// string. Real IPFS CIDs are well under this.
	DefaultMaxContentHandleLen = 256
)

// Rules describes the complete configuration of a curation network.
// When adding fields, remember Copy(): every non-copiable value
// (*big.Int) must be deep-copied there.
type Rules struct {
	Name      string // network name identifier ("main", "test", "fake")
	NetworkID uint64

	// Rounds options - round lifecycle configuration
	Rounds RoundsRules

	// Scoring options - vote weighting and time decay
	Scoring ScoringRules

	// Quotas options - per-elector daily allowances
	Quotas QuotaRules

	// Economy options - costs and treasury
	Economy EconomyRules

	// Limits options - candidate ceilings
	Limits LimitsRules

	// Policy options - tie-break and deadlock resolution
	Policy PolicyRules
}

// RoundsRules defines the round lifecycle parameters.
type RoundsRules struct {
	// PeriodDuration is the length of one voting window. A round becomes
	// resolvable once PeriodStart + PeriodDuration has elapsed.
	PeriodDuration inter.Timestamp

	// Mode selects persistent or round-scoped eligibility.
	Mode RoundMode
}

// ScoringRules defines how blessings and commandments translate into
// score, in fixed-point units (see inter.ScoreScale).
type ScoringRules struct {
	// BlessingWeight multiplies every dampened blessing delta.
	BlessingWeight uint64

	// CommandmentWeight multiplies every dampened commandment delta.
	// Zero means commandments are pure discourse with no score effect.
	CommandmentWeight uint64

	// TimeDecayBase is the slope of the within-period decay curve,
	// scaled by inter.ScoreScale. Zero disables decay.
	TimeDecayBase inter.Score

	// TimeDecayMin is the floor of the decay multiplier, scaled by
	// inter.ScoreScale. Contributions never decay below this, so a
	// last-second blessing always counts for something.
	TimeDecayMin inter.Score
}

// QuotaRules defines the per-elector daily allowances. The effective
// quota is attested ownership times the per-unit rate, re-checked
// against the oracle on every call rather than cached.
type QuotaRules struct {
	// BlessingsPerUnit is the daily blessing allowance per owned unit.
	BlessingsPerUnit uint32

	// CommandmentsPerUnit is the daily commandment allowance per owned
	// unit, tracked independently of blessings.
	CommandmentsPerUnit uint32
}

// EconomyRules contains the payment parameters. Costs are denominated in
// the base currency unit; any payment beyond the current cost is
// refunded in the same call, never retained.
type EconomyRules struct {
	// BlessingCost is the price of one blessing. May be zero.
	BlessingCost *big.Int

	// CommandmentCost is the price of one commandment. May be zero.
	CommandmentCost *big.Int

	// Treasury receives accrued costs. Unlike every other tunable, a
	// treasury change applies immediately rather than at the round
	// boundary, since it carries no fairness risk for voters.
	Treasury common.Address
}

// LimitsRules bounds the candidate set so that the full-set scans in
// resolution stay cheap.
type LimitsRules struct {
	// MaxSeeds is the global ceiling on submitted seeds.
	MaxSeeds uint32

	// MaxSeedsPerRound is the ceiling on submissions within one round.
	MaxSeedsPerRound uint32

	// MaxContentHandleLen bounds the content-address string length.
	MaxContentHandleLen uint32
}

// PolicyRules selects the resolution behavior.
type PolicyRules struct {
	// TieBreak picks among seeds tied at the maximum score.
	TieBreak TieBreakStrategy

	// Deadlock decides the outcome of a round with no positive score.
	Deadlock DeadlockStrategy

	// ResetScoresOnResolve zeroes the scores of losing eligible seeds
	// when a round resolves, so stale scores cannot silently carry
	// forward under persistent mode. The winner's score is left intact
	// for audit.
	ResetScoresOnResolve bool
}

// MainNetRules returns the production configuration: daily rounds,
// persistent eligibility, the safe Revert deadlock policy.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Rounds: RoundsRules{
			PeriodDuration: inter.Timestamp(24 * time.Hour),
			Mode:           Persistent,
		},
		Scoring: DefaultScoringRules(),
		Quotas:  DefaultQuotaRules(),
		Economy: DefaultEconomyRules(),
		Limits:  DefaultLimitsRules(),
		Policy: PolicyRules{
			TieBreak:             EarliestSubmission,
			Deadlock:             Revert,
			ResetScoresOnResolve: false,
		},
	}
}

// TestNetRules returns the staging configuration: same economics as
// mainnet but hourly rounds and the forward-progress SkipRound policy,
// so a quiet staging network does not stall.
func TestNetRules() Rules {
	r := MainNetRules()
	r.Name = "test"
	r.NetworkID = TestNetworkID
	r.Rounds.PeriodDuration = inter.Timestamp(1 * time.Hour)
	r.Policy.Deadlock = SkipRound
	return r
}

// FakeNetRules returns the local/fake network configuration with
// accelerated parameters for testing and development:
//   - ten-second rounds instead of daily
//   - free blessings and commandments
//   - generous quotas
//   - SkipRound deadlock policy so simulations always make progress
func FakeNetRules() Rules {
	r := MainNetRules()
	r.Name = "fake"
	r.NetworkID = FakeNetworkID
	r.Rounds.PeriodDuration = inter.Timestamp(10 * time.Second)
	r.Quotas.BlessingsPerUnit = 100
	r.Quotas.CommandmentsPerUnit = 100
	r.Economy.BlessingCost = new(big.Int)
	r.Economy.CommandmentCost = new(big.Int)
	r.Policy.Deadlock = SkipRound
	return r
}

// DefaultScoringRules returns the mainnet scoring configuration.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		BlessingWeight:    1000,
		CommandmentWeight: 0, // commandments are discourse by default
		// Lose at most half the weight across the period, floored at 0.5.
		TimeDecayBase: inter.ScoreScale / 2,
		TimeDecayMin:  inter.ScoreScale / 2,
	}
}

// DefaultQuotaRules returns the mainnet quota configuration.
func DefaultQuotaRules() QuotaRules {
	return QuotaRules{
		BlessingsPerUnit:    5,
		CommandmentsPerUnit: 10,
	}
}

// DefaultEconomyRules returns the mainnet economy configuration.
// Costs default to zero; a live deployment stages real prices through
// the pending rules.
func DefaultEconomyRules() EconomyRules {
	return EconomyRules{
		BlessingCost:    new(big.Int),
		CommandmentCost: new(big.Int),
		Treasury:        common.Address{},
	}
}

// DefaultLimitsRules returns the mainnet candidate ceilings.
func DefaultLimitsRules() LimitsRules {
	return LimitsRules{
		MaxSeeds:            DefaultMaxSeeds,
		MaxSeedsPerRound:    DefaultMaxSeedsPerRound,
		MaxContentHandleLen: DefaultMaxContentHandleLen,
	}
}

// Validate rejects configurations the engine cannot safely run with.
// Called whenever rules enter the engine (construction and staging of
// pending rules), so an invalid config can never reach a round boundary.
func (r Rules) Validate() error {
	if r.Rounds.PeriodDuration == 0 {
		return errors.New("rules: zero period duration")
	}
	if !r.Rounds.Mode.Valid() {
		return errors.New("rules: unknown round mode")
	}
	if !r.Policy.TieBreak.Valid() {
		return errors.New("rules: unknown tie-break strategy")
	}
	if !r.Policy.Deadlock.Valid() {
		return errors.New("rules: unknown deadlock strategy")
	}
	if r.Economy.BlessingCost == nil || r.Economy.CommandmentCost == nil {
		return errors.New("rules: nil cost")
	}
	if r.Economy.BlessingCost.Sign() < 0 || r.Economy.CommandmentCost.Sign() < 0 {
		return errors.New("rules: negative cost")
	}
	if r.Scoring.TimeDecayMin > inter.ScoreScale {
		return errors.New("rules: decay floor above 1.0")
	}
	if r.Limits.MaxSeeds == 0 || r.Limits.MaxSeedsPerRound == 0 {
		return errors.New("rules: zero seed ceiling")
	}
	return nil
}

// Copy creates a deep copy of Rules. Required because EconomyRules holds
// *big.Int values that a shallow copy would share between the current
// and pending rule sets.
func (r Rules) Copy() Rules {
	cp := r
	if r.Economy.BlessingCost != nil {
		cp.Economy.BlessingCost = new(big.Int).Set(r.Economy.BlessingCost)
	}
	if r.Economy.CommandmentCost != nil {
		cp.Economy.CommandmentCost = new(big.Int).Set(r.Economy.CommandmentCost)
	}
	return cp
}

// String returns a JSON representation of the rules for logging and
// config dumps.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
