// Package sigma implements the sigma-protocols used by the mixnet
// trustee core (plain preimage, equality of preimages) together with
// their non-interactive Fiat-Shamir challenge derivation.
//
// The challenge derivation generalizes takakv-msc-poc/voteproof's
// getFSChallenge, which concatenates a fixed four-element transcript
// (w, Kp, Kq1, Kq2) and hashes with SHA-256, into a variadic transcript
// hashed with SHA3-256 (see SPEC_FULL.md's domain stack).
package sigma

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/dnkolegov/gomix/group"
)

// Encodable is implemented by group.GroupElement and group.ScalarElement.
// It is the minimal contract the Fiat-Shamir transcript needs from a
// public input or commitment.
type Encodable interface {
	Encode() string
}

// Challenge derives the non-interactive Fiat-Shamir scalar challenge from
// a transcript of public inputs and a prover id, per spec §4.2: the
// transcript is the concatenation of each element's canonical encoding,
// in order, followed by proverID verbatim, hashed and reduced mod q.
func Challenge(cg *group.CryptoGroup, proverID string, transcript ...Encodable) *group.ScalarElement {
	digest := sha3.New256()
	for _, item := range transcript {
		digest.Write([]byte(item.Encode()))
	}
	digest.Write([]byte(proverID))

	return cg.NewScalar(new(big.Int).SetBytes(digest.Sum(nil)))
}

// IndexedChallenge is the second, independent non-interactive generator
// used for the per-index bridgingCommitments/eValues of the permutation
// and shuffle proofs (spec §4.5 step 4). It folds index into the
// transcript so that each of the N eValues is bound to its position,
// while remaining seeded from the same public transcript as Challenge.
func IndexedChallenge(cg *group.CryptoGroup, proverID string, index int, transcript ...Encodable) *group.ScalarElement {
	digest := sha3.New256()
	digest.Write([]byte("indexed"))
	fmt.Fprintf(digest, "|%d|", index)
	for _, item := range transcript {
		digest.Write([]byte(item.Encode()))
	}
	digest.Write([]byte(proverID))

	return cg.NewScalar(new(big.Int).SetBytes(digest.Sum(nil)))
}
