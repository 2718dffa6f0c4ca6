// Package elgamal implements the ElGamal primitives the mixnet trustee
// core operates over: ciphertexts, key pairs, re-encryption, and
// decryption with a known scalar (the partial-decryption arithmetic
// itself lives in keymaker.PartialDecrypt). The core itself never
// encrypts (spec §4.1); Encrypt exists so tests and the demo command can
// build ciphertext batches end-to-end, grounded on takakv-msc-poc's
// encryptVote and Lavode-distributed-elgamal's Enc.
package elgamal

import (
	"github.com/dnkolegov/gomix/group"
)

// Ciphertext is an ElGamal ciphertext (a, b) = (g^r, m*y^r).
type Ciphertext struct {
	A *group.GroupElement
	B *group.GroupElement
}

// KeyPair is a private/public ElGamal key pair (x, y=g^x).
type KeyPair struct {
	PrivateKey *group.ScalarElement
	PublicKey  *group.GroupElement
}

// GenerateKeyPair samples x uniformly from Z_q and computes y = g^x.
func GenerateKeyPair(cg *group.CryptoGroup) (*KeyPair, error) {
	x, err := cg.RandomScalar()
	if err != nil {
		return nil, err
	}
	y := cg.Generator().Exponentiate(x)
	return &KeyPair{PrivateKey: x, PublicKey: y}, nil
}

// Encrypt encrypts message (a group element) under pub, sampling fresh
// randomness r. It returns the ciphertext and r so that callers building
// test fixtures can check shuffle completeness (spec §8, property 4).
func Encrypt(cg *group.CryptoGroup, pub *group.GroupElement, message *group.GroupElement) (Ciphertext, *group.ScalarElement, error) {
	r, err := cg.RandomScalar()
	if err != nil {
		return Ciphertext{}, nil, err
	}

	a := cg.Generator().Exponentiate(r)
	b := message.Multiply(pub.Exponentiate(r))

	return Ciphertext{A: a, B: b}, r, nil
}

// ReEncrypt re-randomizes a ciphertext under the same public key by a
// fresh scalar s: (a*g^s, b*y^s). The result decrypts to the same
// plaintext as the input.
func ReEncrypt(cg *group.CryptoGroup, pub *group.GroupElement, ct Ciphertext, s *group.ScalarElement) Ciphertext {
	a := ct.A.Multiply(cg.Generator().Exponentiate(s))
	b := ct.B.Multiply(pub.Exponentiate(s))
	return Ciphertext{A: a, B: b}
}

// DecryptWithScalar recovers the message given the full decryption
// scalar x (i.e. the sum of all partial decryption contributions has
// already been combined into x): m = b / a^x.
func DecryptWithScalar(ct Ciphertext, x *group.ScalarElement) *group.GroupElement {
	mask := ct.A.Exponentiate(x)
	return ct.B.Multiply(mask.Invert())
}
