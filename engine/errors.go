package engine

import (
	"errors"

	"github.com/abraham-ai/go-abraham-curation/inter"
)

// The engine's error taxonomy. Every failure is local and non-retryable:
// the engine performs no internal retries, and a failed call leaves state
// bit-for-bit unchanged, so callers treat any error as "no-op, inspect
// and re-submit".
//
// Validation errors are rejected before any state read; authorization
// before any mutation; eligibility errors consume no quota; lifecycle
// errors leave the round exactly as found; payment errors precede any
// scoring effect.
var (
	// Validation errors. Content-handle shape errors live in inter
	// (inter.ErrEmptyContentHandle, inter.ErrMalformedContentHandle)
	// and are aliased here so callers can match against one package.
	ErrEmptyContentHandle     = inter.ErrEmptyContentHandle
	ErrMalformedContentHandle = inter.ErrMalformedContentHandle
	ErrEmptyUnitSet           = errors.New("empty ownership unit set")
	ErrSeedLimitReached       = errors.New("global seed limit reached")
	ErrRoundSeedLimitReached  = errors.New("per-round seed limit reached")

	// Authorization errors.
	ErrNotAuthorized = errors.New("caller is not the governor")
	ErrNotCreator    = errors.New("caller is not the seed creator")

	// Eligibility errors.
	ErrInvalidProof   = errors.New("invalid membership proof")
	ErrQuotaExhausted = errors.New("daily quota exhausted")

	// Lifecycle errors.
	ErrSeedNotFound        = errors.New("seed not found")
	ErrSeedRetracted       = errors.New("seed is retracted")
	ErrSeedAlreadySelected = errors.New("seed already selected as a winner")
	ErrPeriodNotEnded      = errors.New("round period not ended")

	// ErrNoPositiveScores is the documented non-outcome of a deadlocked
	// round under the Revert strategy: an expected, non-fatal condition,
	// not a bug. The round stays resolvable and keeps accepting
	// activity.
	ErrNoPositiveScores = errors.New("no seed has a positive score")

	// Payment errors.
	ErrInsufficientPayment = errors.New("payment below configured cost")
)
