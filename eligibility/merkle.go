package eligibility

import (
	"bytes"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MerkleOracle is the reference Oracle implementation: a keccak-256
// Merkle proof verifier with sorted-pair interior hashing (the pair is
// ordered bytewise before hashing, so a proof carries no left/right
// direction bits).
//
// Leaf format: keccak256(holder || bigendian(unit_0) || ... ||
// bigendian(unit_n-1)), with the unit ids sorted ascending by the
// snapshot generator. One leaf commits to a holder's complete set of
// units, so a holder cannot split holdings across several proofs to
// multiply quotas.
type MerkleOracle struct{}

// Verify implements Oracle. It folds the leaf hash through the proof's
// sibling hashes and compares the result against the published root.
func (MerkleOracle) Verify(root hash.Hash, holder common.Address, units []uint64, proof [][]byte) bool {
	if len(units) == 0 {
		return false
	}
	node := LeafHash(holder, units)
	for _, sibling := range proof {
		if len(sibling) != 32 {
			return false
		}
		node = pairHash(node, hash.BytesToHash(sibling))
	}
	return node == root
}

// LeafHash computes the Merkle leaf for a holder and its unit set.
// Exposed so snapshot generators and tests build trees with the exact
// same leaf encoding the verifier expects.
func LeafHash(holder common.Address, units []uint64) hash.Hash {
	buf := make([]byte, 0, common.AddressLength+8*len(units))
	buf = append(buf, holder.Bytes()...)
	for _, u := range units {
		buf = append(buf, bigendian.Uint64ToBytes(u)...)
	}
	return hash.BytesToHash(crypto.Keccak256(buf))
}

// pairHash combines two nodes with the smaller byte sequence first.
func pairHash(a, b hash.Hash) hash.Hash {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return hash.BytesToHash(crypto.Keccak256(a.Bytes(), b.Bytes()))
}

// BuildTree computes the root and per-leaf proofs for a set of leaves,
// using the same sorted-pair hashing as Verify. Odd nodes are promoted
// unhashed to the next level. This is a utility for tests and local
// snapshot generation; production roots are computed off-engine.
func BuildTree(leaves []hash.Hash) (root hash.Hash, proofs [][][]byte) {
	if len(leaves) == 0 {
		return hash.Zero, nil
	}
	proofs = make([][][]byte, len(leaves))
	// position of each original leaf at the current level
	positions := make([]int, len(leaves))
	for i := range positions {
		positions[i] = i
	}
	level := append([]hash.Hash(nil), leaves...)

	for len(level) > 1 {
		next := make([]hash.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i]) // odd node, promoted
				continue
			}
			next = append(next, pairHash(level[i], level[i+1]))
		}
		for leaf, pos := range positions {
			sibling := pos ^ 1
			if sibling < len(level) {
				proofs[leaf] = append(proofs[leaf], level[sibling].Bytes())
			}
			positions[leaf] = pos / 2
		}
		level = next
	}
	return level[0], proofs
}
