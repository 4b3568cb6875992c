package inter

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// WinnerRecord is the structured notification emitted when a round
// resolves. It is the engine's only produced output: the external
// elevation workflow (mint + auction) consumes it and is responsible
// for its own idempotency and partial-failure recovery; the engine
// never retries on its behalf.
//
// A skipped round (deadlock under the SkipRound strategy) is recorded
// with SeedID == NoSeed and an empty ContentHandle.
type WinnerRecord struct {
	// Round is the round number that resolved.
	Round idx.Epoch

	// SeedID is the winning seed, or NoSeed for a skipped round.
	SeedID SeedID

	// ContentHandle is the winner's content address, copied out so the
	// consumer does not need to query the engine again.
	ContentHandle string

	// FinalScore is the winner's blessing score at resolution time.
	FinalScore Score

	// ResolvedAt is the engine time at which the round resolved.
	ResolvedAt Timestamp
}

// Skipped reports whether the record describes a round that advanced
// without a winner.
func (w *WinnerRecord) Skipped() bool {
	return w.SeedID == NoSeed
}

// EncodeRLP-compatible wire form. The record is serialized with RLP so
// downstream consumers get a canonical, order-defined byte encoding to
// persist or relay.

// Bytes returns the canonical RLP encoding of the record.
func (w *WinnerRecord) Bytes() []byte {
	b, err := rlp.EncodeToBytes(w)
	if err != nil {
		// All fields are RLP-encodable value types; this cannot fail.
		panic(fmt.Errorf("winner record encoding: %v", err))
	}
	return b
}

// DecodeWinnerRecord parses a record from its canonical RLP encoding.
func DecodeWinnerRecord(b []byte) (WinnerRecord, error) {
	var w WinnerRecord
	err := rlp.DecodeBytes(b, &w)
	return w, err
}

// Hash returns the keccak-256 of the canonical encoding. Consumers can
// use it as an idempotency key ("already minted this record").
func (w *WinnerRecord) Hash() hash.Hash {
	return hash.BytesToHash(crypto.Keccak256(w.Bytes()))
}

// String renders a compact human-readable form for logs.
func (w *WinnerRecord) String() string {
	if w.Skipped() {
		return fmt.Sprintf("{round=%d skipped}", w.Round)
	}
	return fmt.Sprintf("{round=%d seed=%d score=%s}", w.Round, w.SeedID, w.FinalScore)
}
