package sigma

import (
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/mixerr"
)

// PreimageProof is a non-interactive Schnorr proof of knowledge of x such
// that y = g^x, grounded on takakv-msc-poc/voteproof.Prove's
// commit/challenge/respond structure, specialized to the single-witness,
// single-statement case (used by keymaker.CreateShare to prove the
// trustee knows the private share behind its published y).
type PreimageProof struct {
	Commitment *group.GroupElement
	Challenge  *group.ScalarElement
	Response   *group.ScalarElement
}

// ProvePreimage proves knowledge of x such that base^x = y.
func ProvePreimage(cg *group.CryptoGroup, proverID string, base *group.GroupElement, x *group.ScalarElement, y *group.GroupElement) (*PreimageProof, error) {
	s, err := cg.RandomScalar()
	if err != nil {
		return nil, mixerr.NewProofError("preimage", err)
	}

	t := base.Exponentiate(s)
	c := Challenge(cg, proverID, y, t)
	z := s.Add(c.Multiply(x))

	return &PreimageProof{Commitment: t, Challenge: c, Response: z}, nil
}

// Verify checks that base^Response == Commitment * y^Challenge and that
// Challenge was honestly derived from (y, Commitment).
func (p *PreimageProof) Verify(cg *group.CryptoGroup, proverID string, base *group.GroupElement, y *group.GroupElement) bool {
	expected := Challenge(cg, proverID, y, p.Commitment)
	if !expected.Equal(p.Challenge) {
		return false
	}

	lhs := base.Exponentiate(p.Response)
	rhs := p.Commitment.Multiply(y.Exponentiate(p.Challenge))
	return lhs.Equal(rhs)
}
