// Package eligibility gates who may bless and comment.
//
// The electorate is the set of holders of a reference collectible on
// another chain. The engine never fetches or caches ownership data;
// instead, an authorized actor periodically publishes a cryptographic
// commitment (a Merkle root) over the current ownership snapshot, and
// callers present membership proofs against it. Verification is a pure,
// synchronous function over already-published data, so no network call
// ever happens inside a state transition.
package eligibility

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
)

// Oracle verifies that a claimed set of ownership units, tied to a
// holder address, is a member of a previously published commitment.
//
// Implementations must be deterministic and side-effect free: the
// engine calls Verify while holding its state lock and relies on it
// never blocking.
type Oracle interface {
	// Verify returns true iff `proof` demonstrates that `holder` owns
	// exactly the given unit ids under the commitment `root`.
	Verify(root hash.Hash, holder common.Address, units []uint64, proof [][]byte) bool
}

// StaticOracle is a fixture oracle for tests and local simulation: it
// accepts any proof for the holders it was seeded with, against any
// root. Never use outside tests and fakenets.
type StaticOracle struct {
	// Holders maps an address to the unit ids it is considered to own.
	Holders map[common.Address][]uint64
}

// NewStaticOracle builds a fixture oracle over the given holder set.
func NewStaticOracle(holders map[common.Address][]uint64) *StaticOracle {
	return &StaticOracle{Holders: holders}
}

// Verify implements Oracle. The proof bytes are ignored; the claimed
// units must be a subset of the seeded holdings.
func (o *StaticOracle) Verify(_ hash.Hash, holder common.Address, units []uint64, _ [][]byte) bool {
	owned, ok := o.Holders[holder]
	if !ok || len(units) == 0 {
		return false
	}
	set := make(map[uint64]bool, len(owned))
	for _, u := range owned {
		set[u] = true
	}
	for _, u := range units {
		if !set[u] {
			return false
		}
	}
	return true
}
