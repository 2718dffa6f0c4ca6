// Package dto holds the wire-format data-transfer objects exchanged
// between trustees: JSON envelopes around the canonical decimal string
// encoding of group/scalar elements (spec §6), staged through
// json.RawMessage the way takakv-msc-poc's marshal.go and
// voteproof/marshal.go stage group.Element fields, generalized to the
// mixnet's proof and ciphertext shapes.
package dto

import (
	"fmt"
	"strings"

	"github.com/dnkolegov/gomix/mixerr"
)

// EncodeTuple renders parts as the canonical parenthesized,
// comma-separated tuple encoding used throughout spec §6 for composite
// values (ciphertexts, proof commitments). It backs ShuffleProofDTO's
// permutationCommitment field, packaging the recomputed per-index
// permutation commitments as a single wire string.
func EncodeTuple(parts ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p)
	}
	b.WriteByte(')')
	return b.String()
}

// DecodeTuple parses the inverse of EncodeTuple. Child encodings
// (decimal scalar/group-element strings) never themselves contain '('
// or ',', so splitting the parenthesized body on top-level commas is
// unambiguous.
func DecodeTuple(s string) ([]string, error) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("%w: malformed tuple %q", mixerr.ErrEncodingFailure, s)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		return []string{}, nil
	}
	return strings.Split(body, ","), nil
}
