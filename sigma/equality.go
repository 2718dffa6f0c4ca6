package sigma

import (
	"fmt"

	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/mixerr"
)

// EqualityProof proves knowledge of a single witness w satisfying n+1
// parallel preimage relations base_i^w = target_i, 0 being the primary
// statement (g^w = y) and 1..n the secondary statements. It is a direct
// generalization of takakv-msc-poc/voteproof's two-statement Pedersen-
// paired sigma proof (Kp/Kq1/Kq2 commitments, single response z) to an
// arbitrary number of parallel statements sharing one witness and one
// response, as required by keymaker.PartialDecrypt proving that the same
// private share produced both its public key share and every partial
// decryption factor in a batch.
type EqualityProof struct {
	Commitments []*group.GroupElement // one per statement, same order as bases/targets
	Challenge   *group.ScalarElement
	Response    *group.ScalarElement
}

// ProveEquality proves knowledge of w such that bases[i]^w == targets[i]
// for every i. bases and targets must have equal, non-zero length.
func ProveEquality(cg *group.CryptoGroup, proverID string, bases []*group.GroupElement, w *group.ScalarElement, targets []*group.GroupElement) (*EqualityProof, error) {
	if len(bases) == 0 || len(bases) != len(targets) {
		return nil, fmt.Errorf("%w: equality proof requires matching non-empty bases/targets", mixerr.ErrArityMismatch)
	}

	s, err := cg.RandomScalar()
	if err != nil {
		return nil, mixerr.NewProofError("equality", err)
	}

	commitments := make([]*group.GroupElement, len(bases))
	transcript := make([]Encodable, 0, 2*len(bases))
	for i, base := range bases {
		commitments[i] = base.Exponentiate(s)
	}
	for _, target := range targets {
		transcript = append(transcript, target)
	}
	for _, t := range commitments {
		transcript = append(transcript, t)
	}

	c := Challenge(cg, proverID, transcript...)
	z := s.Add(c.Multiply(w))

	return &EqualityProof{Commitments: commitments, Challenge: c, Response: z}, nil
}

// Verify checks every bases[i]^Response == Commitments[i] * targets[i]^Challenge
// and that Challenge was honestly derived from (targets, Commitments).
func (p *EqualityProof) Verify(cg *group.CryptoGroup, proverID string, bases []*group.GroupElement, targets []*group.GroupElement) bool {
	if len(bases) != len(targets) || len(bases) != len(p.Commitments) {
		return false
	}

	transcript := make([]Encodable, 0, 2*len(bases))
	for _, target := range targets {
		transcript = append(transcript, target)
	}
	for _, t := range p.Commitments {
		transcript = append(transcript, t)
	}

	expected := Challenge(cg, proverID, transcript...)
	if !expected.Equal(p.Challenge) {
		return false
	}

	for i, base := range bases {
		lhs := base.Exponentiate(p.Response)
		rhs := p.Commitments[i].Multiply(targets[i].Exponentiate(p.Challenge))
		if !lhs.Equal(rhs) {
			return false
		}
	}
	return true
}
