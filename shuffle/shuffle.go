// Package shuffle implements the re-encryption shuffle proof: given a
// batch of input ciphertexts and a batch of output ciphertexts, prove
// that the output is some permutation of the input, each element
// re-encrypted under the same public key, without revealing the
// permutation or the re-encryption randomness. This is the "online" half
// of the mixer's verifiable shuffle (spec §4.6's Shuffle), grounded on
// voteproof's Pedersen-paired sigma-protocol shape, here applied to the
// two ciphertext components (A, B) instead of voteproof's (Xp, Xq), and
// on permutation.Proof's bridging-commitment chain for hiding the
// permutation (the two packages share the same construction because
// they face the same problem: N secrets, each tied to its own base,
// that must stay hidden).
package shuffle

import (
	"fmt"

	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/mixerr"
	"github.com/dnkolegov/gomix/sigma"
)

// Proof is the non-interactive re-encryption shuffle proof over witness
// (perm, reEncryptionScalars) and public input (input ciphertexts, output
// ciphertexts). Like permutation.Proof, it derives one public exponent
// e_i per index (EValues) and privately reindexes them into ê_j =
// e_{π^{-1}(j)}, the value "used at" input position j, then proves
// knowledge of a consistent ê without disclosing the reindexing. Because
// each ciphertext carries two components, the bridging chain runs in
// two parallel legs (A against base g, B against base pub) sharing one
// per-step secret pair (ê_j, β_j) and one Fiat-Shamir challenge, the same
// way sigma.EqualityProof shares one witness across multiple bases.
type Proof struct {
	EValues              []*group.ScalarElement
	BridgingCommitmentsA []*group.GroupElement
	BridgingCommitmentsB []*group.GroupElement
	StepCommitmentsA     []*group.GroupElement
	StepCommitmentsB     []*group.GroupElement
	Challenge            *group.ScalarElement
	ZPerm                []*group.ScalarElement
	ZBlind               []*group.ScalarElement
	Delta                *group.ScalarElement
}

// Prove builds the shuffle proof for output, produced from input by
// applying perm and re-encrypting position i with reEncryptionScalars[i]:
// output[i] = ReEncrypt(pub, input[perm[i]], reEncryptionScalars[i]).
func Prove(cg *group.CryptoGroup, proverID string, pub *group.GroupElement, input, output []elgamal.Ciphertext, perm []int, reEncryptionScalars []*group.ScalarElement) (*Proof, error) {
	n := len(input)
	if n != len(output) || n != len(perm) || n != len(reEncryptionScalars) {
		return nil, fmt.Errorf("%w: shuffle proof arity mismatch", mixerr.ErrArityMismatch)
	}

	challenges := indexedChallenges(cg, proverID, input, output)

	inv := make([]int, n)
	for i := 0; i < n; i++ {
		inv[perm[i]] = i
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
			return nil, mixerr.NewProofError("shuffle-bridge", err)
		}
		s, err := cg.RandomScalar()
		if err != nil {
			return nil, mixerr.NewProofError("shuffle-bridge", err)
		}
		tt, err := cg.RandomScalar()
		if err != nil {
			return nil, mixerr.NewProofError("shuffle-bridge", err)
		}
		beta[j], stepSecret[j], stepBlind[j] = b, s, tt
	}

	bridgingA := make([]*group.GroupElement, n)
	bridgingB := make([]*group.GroupElement, n)
	stepA := make([]*group.GroupElement, n)
	stepB := make([]*group.GroupElement, n)
	accA := cg.Identity()
	accB := cg.Identity()
	for j := 0; j < n; j++ {
		accA = accA.Multiply(input[j].A.Exponentiate(ePerm[j])).Multiply(cg.Generator().Exponentiate(beta[j]))
		accB = accB.Multiply(input[j].B.Exponentiate(ePerm[j])).Multiply(pub.Exponentiate(beta[j]))
		bridgingA[j] = accA
		bridgingB[j] = accB
		stepA[j] = input[j].A.Exponentiate(stepSecret[j]).Multiply(cg.Generator().Exponentiate(stepBlind[j]))
		stepB[j] = input[j].B.Exponentiate(stepSecret[j]).Multiply(pub.Exponentiate(stepBlind[j]))
	}

	c := chainChallenge(cg, proverID, input, output, bridgingA, bridgingB, stepA, stepB)

	zPerm := make([]*group.ScalarElement, n)
	zBlind := make([]*group.ScalarElement, n)
	for j := 0; j < n; j++ {
		zPerm[j] = stepSecret[j].Add(c.Multiply(ePerm[j]))
		zBlind[j] = stepBlind[j].Add(c.Multiply(beta[j]))
	}

	S := cg.ScalarFromInt64(0)
	for i := 0; i < n; i++ {
		S = S.Add(reEncryptionScalars[i].Multiply(challenges[i]))
	}
	B := cg.ScalarFromInt64(0)
	for j := 0; j < n; j++ {
		B = B.Add(beta[j])
	}
	delta := B.Add(S.Negate())

	return &Proof{
		EValues:              challenges,
		BridgingCommitmentsA: bridgingA,
		BridgingCommitmentsB: bridgingB,
		StepCommitmentsA:     stepA,
		StepCommitmentsB:     stepB,
		Challenge:            c,
		ZPerm:                zPerm,
		ZBlind:               zBlind,
		Delta:                delta,
	}, nil
}

// Verify recomputes the Fiat-Shamir exponents from the public input and
// output ciphertexts, checks they match the published EValues, checks
// every step of both bridging chains opens as claimed under one shared
// challenge, and checks both chains' end values are consistent with the
// output/input ciphertext batches under Delta.
func (p *Proof) Verify(cg *group.CryptoGroup, proverID string, pub *group.GroupElement, input, output []elgamal.Ciphertext) bool {
	n := len(input)
	if n == 0 || n != len(output) || n != len(p.EValues) || n != len(p.BridgingCommitmentsA) ||
		n != len(p.BridgingCommitmentsB) || n != len(p.StepCommitmentsA) || n != len(p.StepCommitmentsB) ||
		n != len(p.ZPerm) || n != len(p.ZBlind) {
		return false
	}

	expected := indexedChallenges(cg, proverID, input, output)
	for i := 0; i < n; i++ {
		if !expected[i].Equal(p.EValues[i]) {
			return false
		}
	}

	c := chainChallenge(cg, proverID, input, output, p.BridgingCommitmentsA, p.BridgingCommitmentsB, p.StepCommitmentsA, p.StepCommitmentsB)
	if !c.Equal(p.Challenge) {
		return false
	}

	prevA, prevB := cg.Identity(), cg.Identity()
	for j := 0; j < n; j++ {
		lhsA := input[j].A.Exponentiate(p.ZPerm[j]).Multiply(cg.Generator().Exponentiate(p.ZBlind[j]))
		rhsA := p.StepCommitmentsA[j].Multiply(p.BridgingCommitmentsA[j].Multiply(prevA.Invert()).Exponentiate(c))
		if !lhsA.Equal(rhsA) {
			return false
		}
		lhsB := input[j].B.Exponentiate(p.ZPerm[j]).Multiply(pub.Exponentiate(p.ZBlind[j]))
		rhsB := p.StepCommitmentsB[j].Multiply(p.BridgingCommitmentsB[j].Multiply(prevB.Invert()).Exponentiate(c))
		if !lhsB.Equal(rhsB) {
			return false
		}
		prevA, prevB = p.BridgingCommitmentsA[j], p.BridgingCommitmentsB[j]
	}

	outA, outB := cg.Identity(), cg.Identity()
	for i, ct := range output {
		outA = outA.Multiply(ct.A.Exponentiate(p.EValues[i]))
		outB = outB.Multiply(ct.B.Exponentiate(p.EValues[i]))
	}

	closingA := outA.Multiply(cg.Generator().Exponentiate(p.Delta))
	closingB := outB.Multiply(pub.Exponentiate(p.Delta))
	return p.BridgingCommitmentsA[n-1].Equal(closingA) && p.BridgingCommitmentsB[n-1].Equal(closingB)
}

func indexedChallenges(cg *group.CryptoGroup, proverID string, input, output []elgamal.Ciphertext) []*group.ScalarElement {
	n := len(input)
	transcript := ciphertextTranscript(input, output)
	challenges := make([]*group.ScalarElement, n)
	for i := 0; i < n; i++ {
		challenges[i] = sigma.IndexedChallenge(cg, proverID, i, transcript...)
	}
	return challenges
}

func chainChallenge(cg *group.CryptoGroup, proverID string, input, output []elgamal.Ciphertext, bridgingA, bridgingB, stepA, stepB []*group.GroupElement) *group.ScalarElement {
	transcript := ciphertextTranscript(input, output)
	full := make([]sigma.Encodable, 0, len(transcript)+4*len(bridgingA))
	full = append(full, transcript...)
	for _, b := range bridgingA {
		full = append(full, b)
	}
	for _, b := range bridgingB {
		full = append(full, b)
	}
	for _, s := range stepA {
		full = append(full, s)
	}
	for _, s := range stepB {
		full = append(full, s)
	}
	return sigma.Challenge(cg, proverID, full...)
}

func ciphertextTranscript(input, output []elgamal.Ciphertext) []sigma.Encodable {
	transcript := make([]sigma.Encodable, 0, 4*len(input))
	for _, ct := range input {
		transcript = append(transcript, ct.A, ct.B)
	}
	for _, ct := range output {
		transcript = append(transcript, ct.A, ct.B)
	}
	return transcript
}
