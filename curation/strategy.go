package curation

import "fmt"

// TieBreakStrategy selects among multiple seeds tied at the maximum
// score when a round resolves. Every strategy except PseudoRandom is a
// pure function of the candidate set, so replaying the same round state
// always yields the same winner.
type TieBreakStrategy uint8

const (
	// EarliestSubmission prefers the tied seed created first
	// (lowest CreatedAt, then lowest ID as the final discriminator).
	EarliestSubmission TieBreakStrategy = iota

	// LatestSubmission prefers the tied seed created last.
	LatestSubmission

	// LowestSeedID prefers the tied seed with the smallest ID.
	LowestSeedID

	// HighestSeedID prefers the tied seed with the largest ID.
	HighestSeedID

	// PseudoRandom picks among tied seeds using a hash of the round
	// number and an injected entropy value. Deterministic given the same
	// entropy input, but explicitly NOT a fairness guarantee against an
	// adversary who can influence that entropy source.
	PseudoRandom
)

// DeadlockStrategy decides what happens when a round reaches its period
// end with no positive-scoring candidate at all.
type DeadlockStrategy uint8

const (
	// Revert makes Advance fail entirely; the round stays resolvable and
	// keeps accepting activity. The safest default, at the price of
	// potentially stalling until someone blesses something.
	Revert DeadlockStrategy = iota

	// SkipRound records no winner but still advances the round; all
	// seeds remain eligible.
	SkipRound

	// RandomFromAll picks a winner pseudo-randomly from the eligible set
	// despite the zero score, guaranteeing forward progress.
	RandomFromAll

	// AllowRewins widens the deadlock candidate pool to previously-won,
	// non-retracted seeds and picks pseudo-randomly. A deliberate policy
	// escape hatch, never a default.
	AllowRewins
)

var tieBreakNames = map[TieBreakStrategy]string{
	EarliestSubmission: "earliest",
	LatestSubmission:   "latest",
	LowestSeedID:       "lowest-id",
	HighestSeedID:      "highest-id",
	PseudoRandom:       "pseudo-random",
}

var deadlockNames = map[DeadlockStrategy]string{
	Revert:        "revert",
	SkipRound:     "skip-round",
	RandomFromAll: "random-from-all",
	AllowRewins:   "allow-rewins",
}

func (s TieBreakStrategy) String() string {
	if name, ok := tieBreakNames[s]; ok {
		return name
	}
	return fmt.Sprintf("tie-break(%d)", uint8(s))
}

// Valid reports whether the strategy is one of the defined values.
// Rules validation uses this to reject configs written with a raw
// out-of-range integer.
func (s TieBreakStrategy) Valid() bool {
	_, ok := tieBreakNames[s]
	return ok
}

func (s DeadlockStrategy) String() string {
	if name, ok := deadlockNames[s]; ok {
		return name
	}
	return fmt.Sprintf("deadlock(%d)", uint8(s))
}

// Valid reports whether the strategy is one of the defined values.
func (s DeadlockStrategy) Valid() bool {
	_, ok := deadlockNames[s]
	return ok
}

// TieBreakFromString parses a strategy name as written in CLI flags and
// config files.
func TieBreakFromString(name string) (TieBreakStrategy, error) {
	for s, n := range tieBreakNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown tie-break strategy %q", name)
}

// DeadlockFromString parses a strategy name as written in CLI flags and
// config files.
func DeadlockFromString(name string) (DeadlockStrategy, error) {
	for s, n := range deadlockNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown deadlock strategy %q", name)
}

// RoundMode controls how long a submitted seed stays eligible.
type RoundMode uint8

const (
	// Persistent keeps every undecided, unretracted seed eligible across
	// rounds until it wins or is retracted.
	Persistent RoundMode = iota

	// RoundBased restricts eligibility to seeds submitted in the current
	// round; unselected seeds expire when the round advances.
	RoundBased
)

var roundModeNames = map[RoundMode]string{
	Persistent: "persistent",
	RoundBased: "round-based",
}

func (m RoundMode) String() string {
	if name, ok := roundModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("round-mode(%d)", uint8(m))
}

// Valid reports whether the mode is one of the defined values.
func (m RoundMode) Valid() bool {
	_, ok := roundModeNames[m]
	return ok
}

// RoundModeFromString parses a mode name as written in CLI flags.
func RoundModeFromString(name string) (RoundMode, error) {
	for m, n := range roundModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown round mode %q", name)
}
