// Package inter defines the curation engine's core data structures: the
// native Timestamp, the Seed (a submitted candidate work), fixed-point
// score arithmetic, and the WinnerRecord emitted when a round resolves.
//
// Key concepts:
//   - Seed: a content proposal competing to win a round
//   - Blessing: a rate-limited, dampened vote that raises a seed's score
//   - Commandment: a perpetual, rate-limited comment on a seed
//   - Round: a fixed-duration voting window ending in at most one winner
//
// The engine package mutates these structures; everything here is plain
// data plus pure functions, so it can be reasoned about (and tested)
// without any engine state.
package inter

import (
	"errors"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// Content-handle validation errors. These sit in inter rather than the
// engine because the shape check is a property of the data itself and is
// also useful to CLI tooling before anything touches engine state.
var (
	ErrEmptyContentHandle     = errors.New("empty content handle")
	ErrMalformedContentHandle = errors.New("malformed content handle")
)

// SeedID identifies a seed. IDs are assigned monotonically starting from 1
// and are never reused, so an ID is a stable handle for the seed's whole
// lifetime, including after retraction or a win.
//
// ID 0 is reserved as "no seed" (e.g. a skipped round's winner).
type SeedID uint64

// NoSeed is the zero SeedID, used where "no seed" is a meaningful value.
const NoSeed = SeedID(0)

// Seed is a submitted candidate work.
//
// A seed is eligible to win exactly while:
//
//	!Retracted && SelectedInRound == 0 &&
//	(mode == Persistent || SubmittedInRound == currentRound)
//
// The engine's eligible set mirrors this predicate at all times; the
// fields here are the source of truth for auditing it.
type Seed struct {
	// ID is the stable, monotonically assigned identifier.
	ID SeedID

	// Creator is the address that submitted the seed. Only the creator
	// may retract it.
	Creator common.Address

	// ContentHandle is an opaque content-address string (e.g. an IPFS
	// CID). The engine validates a minimal syntactic shape but never
	// resolves or stores the content itself.
	ContentHandle string

	// BlessingScore is the accumulated, dampened, time-decayed score in
	// fixed-point units (see ScoreScale). Stored unsigned: the scoring
	// arithmetic only ever adds non-negative deltas, so the score can
	// never go negative.
	BlessingScore Score

	// CommandmentCount counts comments attached to the seed. Unbounded
	// over time, since commandments remain possible on decided seeds.
	CommandmentCount uint64

	// CreatedAt is the engine time at submission.
	CreatedAt Timestamp

	// SubmittedInRound is the round that was open at submission.
	SubmittedInRound idx.Epoch

	// SelectedInRound is 0 while unresolved and set exactly once, to the
	// round number, when the seed wins.
	SelectedInRound idx.Epoch

	// Retracted is a terminal flag set by the creator before any win.
	Retracted bool
}

// Decided reports whether the seed has already won a round.
func (s *Seed) Decided() bool {
	return s.SelectedInRound != 0
}

// EstimateSize returns an approximate in-memory size of the seed in
// bytes. Used for capacity planning of the seed arena; not an exact
// serialized size.
func (s *Seed) EstimateSize() int {
	// Fixed-width fields: ID, BlessingScore, CommandmentCount, CreatedAt
	// (8 bytes each), two round indexes (4 bytes each), the flag byte.
	fixed := 4*8 + 2*4 + 1
	return fixed + common.AddressLength + len(s.ContentHandle)
}

// ValidateContentHandle checks the minimal syntactic shape required of a
// content-address string: non-empty, at most maxLen bytes, printable
// ASCII with no whitespace. Anything stronger (multibase prefixes, hash
// lengths) is deliberately out of scope; the handle is opaque to the
// engine and is resolved only by downstream consumers.
func ValidateContentHandle(handle string, maxLen int) error {
	if len(handle) == 0 {
		return ErrEmptyContentHandle
	}
	if maxLen > 0 && len(handle) > maxLen {
		return ErrMalformedContentHandle
	}
	for i := 0; i < len(handle); i++ {
		c := handle[i]
		if c <= 0x20 || c >= 0x7f {
			return ErrMalformedContentHandle
		}
	}
	return nil
}
