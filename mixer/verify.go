package mixer

import (
	"github.com/dnkolegov/gomix/dto"
	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
)

// VerifyPreShuffle checks a PreShuffle proof against the public
// commitments and the commitment generators it was derived from.
func VerifyPreShuffle(cg *group.CryptoGroup, proverID string, d dto.PermutationProofDTO, generators, commitments []*group.GroupElement) (bool, error) {
	proof, err := dto.PermutationProofFromDTO(cg, d)
	if err != nil {
		return false, err
	}
	return proof.Verify(cg, proverID, generators, commitments), nil
}

// VerifyShuffle checks a Shuffle proof's online mix proof against the
// public input and output ciphertext batches and the public key they
// were re-encrypted under, and its embedded offline permutation proof
// against generators, decoding the permutation commitments the DTO
// carries alongside it. Both sub-proofs must verify for the shuffle as
// a whole to be accepted.
func VerifyShuffle(cg *group.CryptoGroup, proverID string, d dto.ShuffleProofDTO, pub *group.GroupElement, input, output []elgamal.Ciphertext, generators []*group.GroupElement) (bool, error) {
	mix, permProof, commitments, err := dto.ShuffleProofFromDTO(cg, d)
	if err != nil {
		return false, err
	}
	if !permProof.Verify(cg, proverID, generators, commitments) {
		return false, nil
	}
	return mix.Verify(cg, proverID, pub, input, output), nil
}
