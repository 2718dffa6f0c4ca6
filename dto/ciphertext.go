package dto

import (
	"encoding/json"
	"fmt"

	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
)

// CiphertextDTO is the wire form of an ElGamal ciphertext (A, B).
type CiphertextDTO struct {
	A json.RawMessage `json:"a"`
	B json.RawMessage `json:"b"`
}

// CiphertextToDTO encodes a ciphertext for transport.
func CiphertextToDTO(ct elgamal.Ciphertext) CiphertextDTO {
	return CiphertextDTO{
		A: json.RawMessage(fmt.Sprintf("%q", ct.A.Encode())),
		B: json.RawMessage(fmt.Sprintf("%q", ct.B.Encode())),
	}
}

// CiphertextFromDTO decodes a wire ciphertext against cg.
func CiphertextFromDTO(cg *group.CryptoGroup, d CiphertextDTO) (elgamal.Ciphertext, error) {
	a, err := decodeQuotedGroupElement(cg, d.A)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	b, err := decodeQuotedGroupElement(cg, d.B)
	if err != nil {
		return elgamal.Ciphertext{}, err
	}
	return elgamal.Ciphertext{A: a, B: b}, nil
}

// CiphertextBatchToDTO encodes a batch of ciphertexts for transport.
func CiphertextBatchToDTO(batch []elgamal.Ciphertext) []CiphertextDTO {
	out := make([]CiphertextDTO, len(batch))
	for i, ct := range batch {
		out[i] = CiphertextToDTO(ct)
	}
	return out
}

// CiphertextBatchFromDTO decodes a batch of wire ciphertexts against cg.
func CiphertextBatchFromDTO(cg *group.CryptoGroup, batch []CiphertextDTO) ([]elgamal.Ciphertext, error) {
	out := make([]elgamal.Ciphertext, len(batch))
	for i, d := range batch {
		ct, err := CiphertextFromDTO(cg, d)
		if err != nil {
			return nil, err
		}
		out[i] = ct
	}
	return out, nil
}

func decodeQuotedGroupElement(cg *group.CryptoGroup, raw json.RawMessage) (*group.GroupElement, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return group.DecodeGroupElement(cg, s)
}

func decodeQuotedScalar(cg *group.CryptoGroup, raw json.RawMessage) (*group.ScalarElement, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return group.DecodeScalar(cg, s)
}

func quoteString(s string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%q", s))
}
