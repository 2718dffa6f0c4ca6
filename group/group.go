// Package group implements the prime-order subgroup of (Z/pZ)* that the
// mixnet trustee core operates over: a safe-prime Schnorr group with
// modulus p = 2q+1, generator g, and order q.
//
// Unlike takakv-msc-poc's group.Group/group.Element, which share a single
// interface across several concrete backends (ModP, P-256, P-384,
// secp256k1, ristretto255) and recover the concrete type with a runtime
// type assertion in each method, CryptoGroup exposes exactly one backend
// through two distinct concrete types, GroupElement and ScalarElement.
// There is nothing to assert: a GroupElement can never be passed where a
// ScalarElement is expected, because the compiler rejects it.
package group

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/dnkolegov/gomix/mixerr"
)

// CryptoGroup is the immutable configuration described by spec §3 as
// CryptoSettings' group component: a cyclic group G of prime order q,
// with generator g, defined over the multiplicative group of integers
// modulo a safe prime p = 2q+1.
type CryptoGroup struct {
	p *big.Int
	q *big.Int
	g *big.Int
}

// NewCryptoGroup validates and wraps an existing (p, q, g) triple. It
// enforces the invariant g != 1 and g^q = 1 mod p.
func NewCryptoGroup(p, q, g *big.Int) (*CryptoGroup, error) {
	if p.Sign() <= 0 || q.Sign() <= 0 || g.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive parameter", mixerr.ErrInvalidGroupParameters)
	}

	two := big.NewInt(2)
	expected := new(big.Int).Mul(q, two)
	expected.Add(expected, big.NewInt(1))
	if expected.Cmp(p) != 0 {
		return nil, fmt.Errorf("%w: p must equal 2q+1", mixerr.ErrInvalidGroupParameters)
	}

	if !p.ProbablyPrime(32) || !q.ProbablyPrime(32) {
		return nil, fmt.Errorf("%w: p and q must be prime", mixerr.ErrInvalidGroupParameters)
	}

	if g.Cmp(big.NewInt(1)) == 0 {
		return nil, fmt.Errorf("%w: g must not be 1", mixerr.ErrInvalidGroupParameters)
	}

	check := new(big.Int).Exp(g, q, p)
	if check.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("%w: g^q != 1 mod p", mixerr.ErrInvalidGroupParameters)
	}

	return &CryptoGroup{p: new(big.Int).Set(p), q: new(big.Int).Set(q), g: new(big.Int).Set(g)}, nil
}

// GenerateCryptoGroup searches for a fresh safe-prime Schnorr group with a
// qBits-bit subgroup order, following the same search strategy as
// Lavode-distributed-elgamal's GenerateSchnorrGroup: sample a prime q,
// test p = 2q+1 for primality, and retry until both are prime; then find
// a generator by raising a random base to the cofactor power.
func GenerateCryptoGroup(qBits int) (*CryptoGroup, error) {
	if qBits < 16 {
		return nil, fmt.Errorf("%w: qBits must be >= 16", mixerr.ErrInvalidGroupParameters)
	}

	var p, q *big.Int
	for {
		var err error
		q, err = rand.Prime(rand.Reader, qBits)
		if err != nil {
			return nil, err
		}

		p = new(big.Int).Mul(q, big.NewInt(2))
		p.Add(p, big.NewInt(1))

		if p.ProbablyPrime(32) {
			break
		}
	}

	g, err := findGenerator(p, q)
	if err != nil {
		return nil, err
	}

	return &CryptoGroup{p: p, q: q, g: g}, nil
}

// findGenerator locates a generator of the order-q subgroup of (Z/pZ)* by
// picking random bases h in [2, p) and raising them to the cofactor power
// (p-1)/q = 2, retrying whenever the result is the identity.
func findGenerator(p, q *big.Int) (*big.Int, error) {
	pMinusTwo := new(big.Int).Sub(p, big.NewInt(2))
	cofactor := new(big.Int).Div(new(big.Int).Sub(p, big.NewInt(1)), q)

	for {
		h, err := rand.Int(rand.Reader, pMinusTwo)
		if err != nil {
			return nil, err
		}
		h.Add(h, big.NewInt(2))

		g := new(big.Int).Exp(h, cofactor, p)
		if g.Cmp(big.NewInt(1)) != 0 {
			return g, nil
		}
	}
}

// P returns the field modulus p.
func (cg *CryptoGroup) P() *big.Int { return new(big.Int).Set(cg.p) }

// Q returns the subgroup order q.
func (cg *CryptoGroup) Q() *big.Int { return new(big.Int).Set(cg.q) }

// Generator returns the group's distinguished generator g.
func (cg *CryptoGroup) Generator() *GroupElement {
	return &GroupElement{group: cg, val: new(big.Int).Set(cg.g)}
}

// Identity returns the group's identity element.
func (cg *CryptoGroup) Identity() *GroupElement {
	return &GroupElement{group: cg, val: big.NewInt(1)}
}

// Equal reports whether two CryptoGroup values describe the same group.
func (cg *CryptoGroup) Equal(other *CryptoGroup) bool {
	if cg == other {
		return true
	}
	if cg == nil || other == nil {
		return false
	}
	return cg.p.Cmp(other.p) == 0 && cg.q.Cmp(other.q) == 0 && cg.g.Cmp(other.g) == 0
}

// CommitmentGenerators deterministically derives n generators
// h_1, ..., h_n of G, independent of g in the sense that no party knows
// their discrete logarithm to base g. This resolves the Open Question in
// spec.md §9 ("exact deterministic construction of the independent
// commitment generators is delegated to the group-parameter provider"):
// since no interop target for an existing verifier was retrievable for
// this build, a local hash-indexed rejection-sampling construction is
// defined and documented here (see DESIGN.md) rather than left implicit.
//
// h_i is derived by hashing a domain-separated label built from the
// group parameters, the index i, and a rejection counter, squaring the
// result mod p (p = 2q+1, so squaring maps (Z/pZ)* onto the order-q
// subgroup), and retrying on the rare chance of landing on the identity.
func (cg *CryptoGroup) CommitmentGenerators(n int) ([]*GroupElement, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative generator count", mixerr.ErrInvalidGroupParameters)
	}

	generators := make([]*GroupElement, n)
	for i := 0; i < n; i++ {
		h, err := cg.deriveGenerator(i)
		if err != nil {
			return nil, err
		}
		generators[i] = h
	}
	return generators, nil
}

func (cg *CryptoGroup) deriveGenerator(index int) (*GroupElement, error) {
	for counter := 0; counter < math.MaxInt32; counter++ {
		digest := sha3.New256()
		digest.Write([]byte("mixnet-generator"))
		digest.Write(cg.p.Bytes())
		digest.Write(cg.q.Bytes())
		digest.Write(cg.g.Bytes())
		fmt.Fprintf(digest, "|%d|%d", index, counter)

		r := new(big.Int).SetBytes(digest.Sum(nil))
		r.Mod(r, cg.p)
		if r.Sign() == 0 {
			continue
		}

		val := new(big.Int).Exp(r, big.NewInt(2), cg.p)
		if val.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		return &GroupElement{group: cg, val: val}, nil
	}
	return nil, fmt.Errorf("%w: exhausted rejection sampling for generator %d", mixerr.ErrEncodingFailure, index)
}
