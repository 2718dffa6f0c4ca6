package dto

import (
	"encoding/json"

	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/sigma"
)

// EncryptionKeyShareDTO is published by a KeyMaker trustee: its public
// key share y = g^x together with a proof of knowledge of x.
type EncryptionKeyShareDTO struct {
	ProverID  string           `json:"proverID"`
	PublicKey json.RawMessage  `json:"publicKey"`
	Proof     PreimageProofDTO `json:"proof"`
}

// PartialDecryptionDTO is published by a KeyMaker trustee against a batch
// of ciphertexts: the partial decryption factors (d_i) and a proof that
// the same private share used to publish the key share produced them.
type PartialDecryptionDTO struct {
	ProverID string            `json:"proverID"`
	Factors  []json.RawMessage `json:"factors"`
	Proof    EqualityProofDTO  `json:"proof"`
}

func EncryptionKeyShareToDTO(proverID string, publicKey *group.GroupElement, proof *sigma.PreimageProof) EncryptionKeyShareDTO {
	return EncryptionKeyShareDTO{
		ProverID:  proverID,
		PublicKey: quoteString(publicKey.Encode()),
		Proof:     PreimageProofToDTO(proof),
	}
}

func EncryptionKeyShareFromDTO(cg *group.CryptoGroup, d EncryptionKeyShareDTO) (*group.GroupElement, *sigma.PreimageProof, error) {
	publicKey, err := decodeQuotedGroupElement(cg, d.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	proof, err := PreimageProofFromDTO(cg, d.Proof)
	if err != nil {
		return nil, nil, err
	}
	return publicKey, proof, nil
}

func PartialDecryptionToDTO(proverID string, factors []*group.GroupElement, proof *sigma.EqualityProof) PartialDecryptionDTO {
	raw := make([]json.RawMessage, len(factors))
	for i, f := range factors {
		raw[i] = quoteString(f.Encode())
	}
	return PartialDecryptionDTO{
		ProverID: proverID,
		Factors:  raw,
		Proof:    EqualityProofToDTO(proof),
	}
}

func PartialDecryptionFromDTO(cg *group.CryptoGroup, d PartialDecryptionDTO) ([]*group.GroupElement, *sigma.EqualityProof, error) {
	factors := make([]*group.GroupElement, len(d.Factors))
	for i, raw := range d.Factors {
		f, err := decodeQuotedGroupElement(cg, raw)
		if err != nil {
			return nil, nil, err
		}
		factors[i] = f
	}
	proof, err := EqualityProofFromDTO(cg, d.Proof)
	if err != nil {
		return nil, nil, err
	}
	return factors, proof, nil
}
