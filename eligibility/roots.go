package eligibility

import (
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"

	"github.com/abraham-ai/go-abraham-curation/inter"
)

// RootLedger holds the current and previous commitment roots.
//
// Two roots are kept because proof generation races root publication: a
// holder may build a proof against root N while the publisher pushes
// root N+1. Accepting the previous root for one publication cycle keeps
// those in-flight proofs usable. The ledger performs no provenance
// validation of the root itself; the engine authorizes the publisher.
//
// The zero value is a ledger with no published root, against which no
// proof verifies.
type RootLedger struct {
	current    hash.Hash
	previous   hash.Hash
	updatedAt  inter.Timestamp
	hasCurrent bool
	hasPrev    bool
}

// Publish stores a new commitment root, demoting the current root to
// previous, and timestamps the update.
func (l *RootLedger) Publish(root hash.Hash, now inter.Timestamp) {
	if l.hasCurrent {
		l.previous = l.current
		l.hasPrev = true
	}
	l.current = root
	l.hasCurrent = true
	l.updatedAt = now
}

// Current returns the latest published root and whether one exists.
func (l *RootLedger) Current() (hash.Hash, bool) {
	return l.current, l.hasCurrent
}

// Previous returns the root before the latest publication, if any.
func (l *RootLedger) Previous() (hash.Hash, bool) {
	return l.previous, l.hasPrev
}

// UpdatedAt returns the time of the latest publication.
func (l *RootLedger) UpdatedAt() inter.Timestamp {
	return l.updatedAt
}

// VerifyAgainst checks a membership proof against the current root
// first, then falls back to the previous root. With no published root
// every proof fails: an empty electorate commitment means no electorate.
func (l *RootLedger) VerifyAgainst(o Oracle, holder common.Address, units []uint64, proof [][]byte) bool {
	if l.hasCurrent && o.Verify(l.current, holder, units, proof) {
		return true
	}
	if l.hasPrev && o.Verify(l.previous, holder, units, proof) {
		return true
	}
	return false
}
