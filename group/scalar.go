package group

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/dnkolegov/gomix/mixerr"
)

// ScalarElement is a member of the ring of integers modulo q.
type ScalarElement struct {
	group *CryptoGroup
	val   *big.Int
}

// NewScalar wraps v as a ScalarElement of cg, reducing it mod q.
func (cg *CryptoGroup) NewScalar(v *big.Int) *ScalarElement {
	val := new(big.Int).Mod(v, cg.q)
	return &ScalarElement{group: cg, val: val}
}

// ScalarFromInt64 is a small convenience constructor used throughout the
// tests and the demo command.
func (cg *CryptoGroup) ScalarFromInt64(v int64) *ScalarElement {
	return cg.NewScalar(big.NewInt(v))
}

// RandomScalar samples a scalar uniformly from Z_q using a
// cryptographically secure source.
func (cg *CryptoGroup) RandomScalar() (*ScalarElement, error) {
	val, err := rand.Int(rand.Reader, cg.q)
	if err != nil {
		return nil, err
	}
	return &ScalarElement{group: cg, val: val}, nil
}

// Add returns the sum of the receiver and other mod q.
func (s *ScalarElement) Add(other *ScalarElement) *ScalarElement {
	if !s.group.Equal(other.group) {
		panic("group: mismatched groups in Add")
	}
	val := new(big.Int).Add(s.val, other.val)
	val.Mod(val, s.group.q)
	return &ScalarElement{group: s.group, val: val}
}

// Multiply returns the product of the receiver and other mod q.
func (s *ScalarElement) Multiply(other *ScalarElement) *ScalarElement {
	if !s.group.Equal(other.group) {
		panic("group: mismatched groups in Multiply")
	}
	val := new(big.Int).Mul(s.val, other.val)
	val.Mod(val, s.group.q)
	return &ScalarElement{group: s.group, val: val}
}

// Negate returns -s mod q.
func (s *ScalarElement) Negate() *ScalarElement {
	val := new(big.Int).Neg(s.val)
	val.Mod(val, s.group.q)
	return &ScalarElement{group: s.group, val: val}
}

// Invert returns the multiplicative inverse of s mod q. It fails if s is
// zero.
func (s *ScalarElement) Invert() (*ScalarElement, error) {
	if s.val.Sign() == 0 {
		return nil, fmt.Errorf("%w: cannot invert zero scalar", mixerr.ErrProofGenerationFailure)
	}
	val := new(big.Int).ModInverse(s.val, s.group.q)
	return &ScalarElement{group: s.group, val: val}, nil
}

// Equal reports value equality of two scalars of the same group.
func (s *ScalarElement) Equal(other *ScalarElement) bool {
	if other == nil {
		return false
	}
	if !s.group.Equal(other.group) {
		return false
	}
	return s.val.Cmp(other.val) == 0
}

// IsZero reports whether s is the additive identity.
func (s *ScalarElement) IsZero() bool {
	return s.val.Sign() == 0
}

// BigInt returns the underlying big.Int representative in [0, q). The
// returned value is a defensive copy.
func (s *ScalarElement) BigInt() *big.Int {
	return new(big.Int).Set(s.val)
}

// Zeroize overwrites the scalar's value in place. Callers holding private
// permutation or key-share randomness use this to scrub it from memory
// once it is no longer needed.
func (s *ScalarElement) Zeroize() {
	words := s.val.Bits()
	for i := range words {
		words[i] = 0
	}
	s.val.SetInt64(0)
}

// Encode returns the canonical decimal-string encoding of the scalar, per
// spec §6.
func (s *ScalarElement) Encode() string {
	return s.val.String()
}

// DecodeScalar parses a canonical decimal-string encoding produced by
// Encode back into a ScalarElement bound to cg.
func DecodeScalar(cg *CryptoGroup, s string) (*ScalarElement, error) {
	val, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: malformed scalar %q", mixerr.ErrEncodingFailure, s)
	}
	if val.Sign() < 0 || val.Cmp(cg.q) >= 0 {
		return nil, fmt.Errorf("%w: scalar %q out of range", mixerr.ErrEncodingFailure, s)
	}
	return &ScalarElement{group: cg, val: val}, nil
}
