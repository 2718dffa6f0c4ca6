// Package permutation implements uniform permutation sampling, Pedersen-
// style permutation commitments, and the non-interactive proof that a
// batch of commitments opens to some permutation of a fixed generator
// set. It is the "offline" half of the mixer's verifiable shuffle (spec
// §4.5's PreShuffle), grounded on util.PedersenCommit's g^x*h^r shape
// (originally used for Bulletproofs blinding) generalized to a per-index
// generator h_i, and on voteproof's sigma-protocol commit/challenge/
// respond structure for the consistency proof.
package permutation

import (
	"crypto/rand"
	"math/big"

	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/mixerr"
)

// Sample draws a uniformly random permutation of {0, ..., n-1} using
// Fisher-Yates over a cryptographically secure source.
func Sample(n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := n - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, mixerr.NewProofError("permutation-sample", err)
		}
		j := int(jBig.Int64())
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm, nil
}

// Data holds a mixer's private permutation and the per-index commitment
// randomness it produced. It must be retained between PreShuffle and
// Shuffle and discarded (via Zeroize) once Shuffle has run.
type Data struct {
	Perm       []int
	Randomness []*group.ScalarElement
}

// Zeroize scrubs both the commitment randomness and the permutation
// itself in place. Perm is exactly the secret the mixer's anonymity
// guarantee protects, so it must be destroyed alongside the randomness
// once Shuffle has consumed it.
func (d *Data) Zeroize() {
	for _, r := range d.Randomness {
		r.Zeroize()
	}
	for i := range d.Perm {
		d.Perm[i] = 0
	}
}

// Commit builds permutation commitments c_i = g^{r_i} * h_{perm[i]} for a
// freshly sampled permutation of len(generators) elements, returning the
// commitments and the private Data needed to later prove consistency and
// to perform the shuffle.
func Commit(cg *group.CryptoGroup, generators []*group.GroupElement) ([]*group.GroupElement, *Data, error) {
	n := len(generators)
	perm, err := Sample(n)
	if err != nil {
		return nil, nil, err
	}

	commitments := make([]*group.GroupElement, n)
	randomness := make([]*group.ScalarElement, n)
	for i := 0; i < n; i++ {
		r, err := cg.RandomScalar()
		if err != nil {
			return nil, nil, mixerr.NewProofError("permutation-commit", err)
		}
		randomness[i] = r
		commitments[i] = cg.Generator().Exponentiate(r).Multiply(generators[perm[i]])
	}

	return commitments, &Data{Perm: perm, Randomness: randomness}, nil
}
