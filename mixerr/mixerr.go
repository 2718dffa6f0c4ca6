// Package mixerr defines the sentinel error kinds shared by the mixnet
// trustee core.
package mixerr

import "errors"

// ErrInvalidGroupParameters indicates that a group's defining equation
// g^q = 1 mod p does not hold, or that p is not a safe prime.
var ErrInvalidGroupParameters = errors.New("mixerr: invalid group parameters")

// ErrArityMismatch indicates that a ciphertext batch's size does not match
// the N committed to during the offline shuffle phase.
var ErrArityMismatch = errors.New("mixerr: ciphertext batch arity mismatch")

// ErrDegenerateCiphertext indicates that a ciphertext's a-component encodes
// to the group identity, which would trivially satisfy any decryption proof.
var ErrDegenerateCiphertext = errors.New("mixerr: degenerate ciphertext")

// ErrProofGenerationFailure indicates that a sigma-protocol generator
// reported an inconsistency, such as a witness outside its expected domain.
var ErrProofGenerationFailure = errors.New("mixerr: proof generation failure")

// ErrEncodingFailure indicates that a produced element could not be
// encoded, or could not be decoded back to the same value.
var ErrEncodingFailure = errors.New("mixerr: encoding failure")

// ProofError wraps ErrProofGenerationFailure with the identity of the
// subproof that failed, per the error handling design's requirement to
// propagate that identity.
type ProofError struct {
	Subproof string
	Err      error
}

func (e *ProofError) Error() string {
	return "mixerr: " + e.Subproof + ": " + e.Err.Error()
}

func (e *ProofError) Unwrap() error {
	return ErrProofGenerationFailure
}

// NewProofError reports a failure in the named subproof.
func NewProofError(subproof string, err error) error {
	return &ProofError{Subproof: subproof, Err: err}
}
