// Package keymaker implements the KeyMaker trustee role: generating a
// private/public ElGamal key share with a proof of knowledge of the
// private share, and later producing partial decryption factors for a
// batch of ciphertexts together with a proof that the same share
// produced both the key share and the factors. Grounded on
// takakv-msc-poc/voteproof's Prove/Verify sigma-protocol shape, reused
// here via the sigma package's PreimageProof and EqualityProof.
package keymaker

import (
	"fmt"

	"github.com/dnkolegov/gomix/dto"
	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/mixerr"
	"github.com/dnkolegov/gomix/sigma"
)

// CreateShare samples a fresh private key share x and publishes
// y = g^x together with a proof of knowledge of x.
func CreateShare(cg *group.CryptoGroup, proverID string) (dto.EncryptionKeyShareDTO, *elgamal.KeyPair, error) {
	kp, err := elgamal.GenerateKeyPair(cg)
	if err != nil {
		return dto.EncryptionKeyShareDTO{}, nil, mixerr.NewProofError("createShare", err)
	}

	proof, err := sigma.ProvePreimage(cg, proverID, cg.Generator(), kp.PrivateKey, kp.PublicKey)
	if err != nil {
		return dto.EncryptionKeyShareDTO{}, nil, err
	}

	return dto.EncryptionKeyShareToDTO(proverID, kp.PublicKey, proof), kp, nil
}

// PartialDecrypt computes, for every ciphertext in the batch, this
// trustee's partial decryption factor, and a single proof that all of
// them (and the trustee's public key share) were produced by the same
// private share x.
//
// If vk is non-nil (threshold case), the factors are d_i = a_i^x and the
// proof's primary statement is g^x = vk (the externally-combined
// verification key). If vk is nil (two-trustee/symmetric case), the
// factors are the group-inverted d_i = (a_i^x)^-1 so that a symmetric
// pair of KeyMakers reconstructs the message with a single multiplication
// (b * d_1 * d_2) rather than a division; the proof's primary statement
// is g^x = share.PublicKey. In both cases the equality proof itself is
// built against the un-inverted targets a_i^x, which keeps the response
// derivation identical regardless of branch.
func PartialDecrypt(cg *group.CryptoGroup, proverID string, ciphertexts []elgamal.Ciphertext, share *elgamal.KeyPair, vk *group.GroupElement) (dto.PartialDecryptionDTO, error) {
	if len(ciphertexts) == 0 {
		return dto.PartialDecryptionDTO{}, fmt.Errorf("%w: empty ciphertext batch", mixerr.ErrArityMismatch)
	}

	for _, ct := range ciphertexts {
		if ct.A.IsIdentity() {
			return dto.PartialDecryptionDTO{}, fmt.Errorf("%w: ciphertext A component is the identity", mixerr.ErrDegenerateCiphertext)
		}
	}

	bases := make([]*group.GroupElement, len(ciphertexts))
	targets := make([]*group.GroupElement, len(ciphertexts))
	factors := make([]*group.GroupElement, len(ciphertexts))
	threshold := vk != nil

	for i, ct := range ciphertexts {
		bases[i] = ct.A
		targets[i] = ct.A.Exponentiate(share.PrivateKey)
		if threshold {
			factors[i] = targets[i]
		} else {
			factors[i] = targets[i].Invert()
		}
	}

	yProof := vk
	if !threshold {
		yProof = share.PublicKey
	}

	allBases := append([]*group.GroupElement{cg.Generator()}, bases...)
	allTargets := append([]*group.GroupElement{yProof}, targets...)

	proof, err := sigma.ProveEquality(cg, proverID, allBases, share.PrivateKey, allTargets)
	if err != nil {
		return dto.PartialDecryptionDTO{}, err
	}

	return dto.PartialDecryptionToDTO(proverID, factors, proof), nil
}

// VerifyKeyShare checks a published EncryptionKeyShareDTO's proof of
// knowledge against its own public key.
func VerifyKeyShare(cg *group.CryptoGroup, d dto.EncryptionKeyShareDTO) (*group.GroupElement, bool, error) {
	publicKey, proof, err := dto.EncryptionKeyShareFromDTO(cg, d)
	if err != nil {
		return nil, false, err
	}
	return publicKey, proof.Verify(cg, d.ProverID, cg.Generator(), publicKey), nil
}

// VerifyPartialDecryption checks a published PartialDecryptionDTO against
// the ciphertext batch it was computed over and the trustee's effective
// public key (vk for the threshold case, or the trustee's own key share
// y for the symmetric case). It returns the decoded factors so the
// caller can combine them.
func VerifyPartialDecryption(cg *group.CryptoGroup, d dto.PartialDecryptionDTO, ciphertexts []elgamal.Ciphertext, effectiveKey *group.GroupElement, threshold bool) ([]*group.GroupElement, bool, error) {
	factors, proof, err := dto.PartialDecryptionFromDTO(cg, d)
	if err != nil {
		return nil, false, err
	}
	if len(factors) != len(ciphertexts) {
		return nil, false, fmt.Errorf("%w: partial decryption factor count mismatch", mixerr.ErrArityMismatch)
	}

	bases := make([]*group.GroupElement, len(ciphertexts))
	targets := make([]*group.GroupElement, len(ciphertexts))
	for i, ct := range ciphertexts {
		bases[i] = ct.A
		if threshold {
			targets[i] = factors[i]
		} else {
			targets[i] = factors[i].Invert()
		}
	}

	allBases := append([]*group.GroupElement{cg.Generator()}, bases...)
	allTargets := append([]*group.GroupElement{effectiveKey}, targets...)

	return factors, proof.Verify(cg, d.ProverID, allBases, allTargets), nil
}

// Combine recovers the plaintexts for a shuffled ciphertext batch given
// the decoded partial decryption factors from every symmetric-mode
// KeyMaker trustee (vk absent): m_i = b_i * factorSets[0][i] * ... *
// factorSets[k-1][i], per spec §4.4's rationale that this mode's factors
// are pre-inverted so reconstruction is a direct multiplication.
func Combine(ciphertexts []elgamal.Ciphertext, factorSets [][]*group.GroupElement) ([]*group.GroupElement, error) {
	for _, factors := range factorSets {
		if len(factors) != len(ciphertexts) {
			return nil, fmt.Errorf("%w: factor set size does not match ciphertext batch", mixerr.ErrArityMismatch)
		}
	}

	plaintexts := make([]*group.GroupElement, len(ciphertexts))
	for i, ct := range ciphertexts {
		m := ct.B
		for _, factors := range factorSets {
			m = m.Multiply(factors[i])
		}
		plaintexts[i] = m
	}
	return plaintexts, nil
}
