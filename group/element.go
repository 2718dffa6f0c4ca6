package group

import (
	"fmt"
	"math/big"

	"github.com/dnkolegov/gomix/mixerr"
)

// GroupElement is a member of G. It carries a pointer back to its
// defining group so operations can check operand compatibility without a
// runtime type assertion.
type GroupElement struct {
	group *CryptoGroup
	val   *big.Int
}

// Multiply returns the product of the receiver and other, both taken as
// elements of G (spec §4.1's "multiply").
func (e *GroupElement) Multiply(other *GroupElement) *GroupElement {
	if !e.group.Equal(other.group) {
		panic("group: mismatched groups in Multiply")
	}
	val := new(big.Int).Mul(e.val, other.val)
	val.Mod(val, e.group.p)
	return &GroupElement{group: e.group, val: val}
}

// Exponentiate raises the receiver to the scalar power s ("^").
func (e *GroupElement) Exponentiate(s *ScalarElement) *GroupElement {
	if !e.group.Equal(s.group) {
		panic("group: mismatched groups in Exponentiate")
	}
	val := new(big.Int).Exp(e.val, s.val, e.group.p)
	return &GroupElement{group: e.group, val: val}
}

// Invert returns the multiplicative inverse of the receiver in G.
func (e *GroupElement) Invert() *GroupElement {
	val := new(big.Int).ModInverse(e.val, e.group.p)
	return &GroupElement{group: e.group, val: val}
}

// Equal reports value equality of two group elements of the same group.
func (e *GroupElement) Equal(other *GroupElement) bool {
	if other == nil {
		return false
	}
	if !e.group.Equal(other.group) {
		return false
	}
	return e.val.Cmp(other.val) == 0
}

// IsIdentity reports whether the receiver is the group's identity element.
func (e *GroupElement) IsIdentity() bool {
	return e.val.Cmp(big.NewInt(1)) == 0
}

// Group returns the group this element belongs to.
func (e *GroupElement) Group() *CryptoGroup {
	return e.group
}

// Encode returns the canonical decimal-string encoding of the element,
// per spec §6.
func (e *GroupElement) Encode() string {
	return e.val.String()
}

// DecodeGroupElement parses a canonical decimal-string encoding produced
// by Encode back into a GroupElement bound to cg. It returns
// mixerr.ErrEncodingFailure if the string does not round-trip to a valid
// member of cg's field.
func DecodeGroupElement(cg *CryptoGroup, s string) (*GroupElement, error) {
	val, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: malformed group element %q", mixerr.ErrEncodingFailure, s)
	}
	if val.Sign() <= 0 || val.Cmp(cg.p) >= 0 {
		return nil, fmt.Errorf("%w: group element %q out of range", mixerr.ErrEncodingFailure, s)
	}
	return &GroupElement{group: cg, val: val}, nil
}
