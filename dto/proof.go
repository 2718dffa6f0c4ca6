package dto

import (
	"encoding/json"

	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/permutation"
	"github.com/dnkolegov/gomix/shuffle"
	"github.com/dnkolegov/gomix/sigma"
)

// PreimageProofDTO is the wire form of sigma.PreimageProof.
type PreimageProofDTO struct {
	Commitment json.RawMessage `json:"commitment"`
	Challenge  json.RawMessage `json:"challenge"`
	Response   json.RawMessage `json:"response"`
}

func PreimageProofToDTO(p *sigma.PreimageProof) PreimageProofDTO {
	return PreimageProofDTO{
		Commitment: quoteString(p.Commitment.Encode()),
		Challenge:  quoteString(p.Challenge.Encode()),
		Response:   quoteString(p.Response.Encode()),
	}
}

func PreimageProofFromDTO(cg *group.CryptoGroup, d PreimageProofDTO) (*sigma.PreimageProof, error) {
	commitment, err := decodeQuotedGroupElement(cg, d.Commitment)
	if err != nil {
		return nil, err
	}
	challenge, err := decodeQuotedScalar(cg, d.Challenge)
	if err != nil {
		return nil, err
	}
	response, err := decodeQuotedScalar(cg, d.Response)
	if err != nil {
		return nil, err
	}
	return &sigma.PreimageProof{Commitment: commitment, Challenge: challenge, Response: response}, nil
}

// EqualityProofDTO is the wire form of sigma.EqualityProof.
type EqualityProofDTO struct {
	Commitments []json.RawMessage `json:"commitments"`
	Challenge   json.RawMessage   `json:"challenge"`
	Response    json.RawMessage   `json:"response"`
}

func EqualityProofToDTO(p *sigma.EqualityProof) EqualityProofDTO {
	commitments := make([]json.RawMessage, len(p.Commitments))
	for i, c := range p.Commitments {
		commitments[i] = quoteString(c.Encode())
	}
	return EqualityProofDTO{
		Commitments: commitments,
		Challenge:   quoteString(p.Challenge.Encode()),
		Response:    quoteString(p.Response.Encode()),
	}
}

func EqualityProofFromDTO(cg *group.CryptoGroup, d EqualityProofDTO) (*sigma.EqualityProof, error) {
	commitments := make([]*group.GroupElement, len(d.Commitments))
	for i, raw := range d.Commitments {
		c, err := decodeQuotedGroupElement(cg, raw)
		if err != nil {
			return nil, err
		}
		commitments[i] = c
	}
	challenge, err := decodeQuotedScalar(cg, d.Challenge)
	if err != nil {
		return nil, err
	}
	response, err := decodeQuotedScalar(cg, d.Response)
	if err != nil {
		return nil, err
	}
	return &sigma.EqualityProof{Commitments: commitments, Challenge: challenge, Response: response}, nil
}

func scalarsToDTO(scalars []*group.ScalarElement) []json.RawMessage {
	out := make([]json.RawMessage, len(scalars))
	for i, s := range scalars {
		out[i] = quoteString(s.Encode())
	}
	return out
}

func scalarsFromDTO(cg *group.CryptoGroup, raws []json.RawMessage) ([]*group.ScalarElement, error) {
	out := make([]*group.ScalarElement, len(raws))
	for i, raw := range raws {
		s, err := decodeQuotedScalar(cg, raw)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func elementsToDTO(elements []*group.GroupElement) []json.RawMessage {
	out := make([]json.RawMessage, len(elements))
	for i, e := range elements {
		out[i] = quoteString(e.Encode())
	}
	return out
}

func elementsFromDTO(cg *group.CryptoGroup, raws []json.RawMessage) ([]*group.GroupElement, error) {
	out := make([]*group.GroupElement, len(raws))
	for i, raw := range raws {
		e, err := decodeQuotedGroupElement(cg, raw)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// PermutationProofDTO is the wire form of permutation.Proof: spec §3's
// SigmaProofDTO enriched with bridgingCommitments and eValues. Hiding N
// independently-permuted secrets cannot be compressed into a single
// (commitment, challenge, response) triple (see permutation.Proof's
// doc comment and DESIGN.md), so the triple's commitment and response
// are themselves generalized to per-index sequences (stepCommitments,
// zPerm, zBlind) tied together by one shared challenge and one
// aggregate closing scalar (delta).
type PermutationProofDTO struct {
	EValues             []json.RawMessage `json:"eValues"`
	BridgingCommitments []json.RawMessage `json:"bridgingCommitments"`
	StepCommitments     []json.RawMessage `json:"stepCommitments"`
	Challenge           json.RawMessage   `json:"challenge"`
	ZPerm               []json.RawMessage `json:"zPerm"`
	ZBlind              []json.RawMessage `json:"zBlind"`
	Delta               json.RawMessage   `json:"delta"`
}

func PermutationProofToDTO(p *permutation.Proof) PermutationProofDTO {
	return PermutationProofDTO{
		EValues:             scalarsToDTO(p.EValues),
		BridgingCommitments: elementsToDTO(p.BridgingCommitments),
		StepCommitments:     elementsToDTO(p.StepCommitments),
		Challenge:           quoteString(p.Challenge.Encode()),
		ZPerm:               scalarsToDTO(p.ZPerm),
		ZBlind:              scalarsToDTO(p.ZBlind),
		Delta:               quoteString(p.Delta.Encode()),
	}
}

func PermutationProofFromDTO(cg *group.CryptoGroup, d PermutationProofDTO) (*permutation.Proof, error) {
	eValues, err := scalarsFromDTO(cg, d.EValues)
	if err != nil {
		return nil, err
	}
	bridging, err := elementsFromDTO(cg, d.BridgingCommitments)
	if err != nil {
		return nil, err
	}
	step, err := elementsFromDTO(cg, d.StepCommitments)
	if err != nil {
		return nil, err
	}
	challenge, err := decodeQuotedScalar(cg, d.Challenge)
	if err != nil {
		return nil, err
	}
	zPerm, err := scalarsFromDTO(cg, d.ZPerm)
	if err != nil {
		return nil, err
	}
	zBlind, err := scalarsFromDTO(cg, d.ZBlind)
	if err != nil {
		return nil, err
	}
	delta, err := decodeQuotedScalar(cg, d.Delta)
	if err != nil {
		return nil, err
	}
	return &permutation.Proof{
		EValues:             eValues,
		BridgingCommitments: bridging,
		StepCommitments:     step,
		Challenge:           challenge,
		ZPerm:               zPerm,
		ZBlind:              zBlind,
		Delta:               delta,
	}, nil
}

// MixProofDTO is the wire form of shuffle.Proof: spec §3's SigmaProofDTO
// plus eValues, generalized the same way as PermutationProofDTO and for
// the same reason, with the bridging chain doubled into an A-leg and a
// B-leg (one per ciphertext component) sharing every per-index secret.
type MixProofDTO struct {
	EValues              []json.RawMessage `json:"eValues"`
	BridgingCommitmentsA []json.RawMessage `json:"bridgingCommitmentsA"`
	BridgingCommitmentsB []json.RawMessage `json:"bridgingCommitmentsB"`
	StepCommitmentsA     []json.RawMessage `json:"stepCommitmentsA"`
	StepCommitmentsB     []json.RawMessage `json:"stepCommitmentsB"`
	Challenge            json.RawMessage   `json:"challenge"`
	ZPerm                []json.RawMessage `json:"zPerm"`
	ZBlind               []json.RawMessage `json:"zBlind"`
	Delta                json.RawMessage   `json:"delta"`
}

func MixProofToDTO(p *shuffle.Proof) MixProofDTO {
	return MixProofDTO{
		EValues:              scalarsToDTO(p.EValues),
		BridgingCommitmentsA: elementsToDTO(p.BridgingCommitmentsA),
		BridgingCommitmentsB: elementsToDTO(p.BridgingCommitmentsB),
		StepCommitmentsA:     elementsToDTO(p.StepCommitmentsA),
		StepCommitmentsB:     elementsToDTO(p.StepCommitmentsB),
		Challenge:            quoteString(p.Challenge.Encode()),
		ZPerm:                scalarsToDTO(p.ZPerm),
		ZBlind:               scalarsToDTO(p.ZBlind),
		Delta:                quoteString(p.Delta.Encode()),
	}
}

func MixProofFromDTO(cg *group.CryptoGroup, d MixProofDTO) (*shuffle.Proof, error) {
	eValues, err := scalarsFromDTO(cg, d.EValues)
	if err != nil {
		return nil, err
	}
	bridgingA, err := elementsFromDTO(cg, d.BridgingCommitmentsA)
	if err != nil {
		return nil, err
	}
	bridgingB, err := elementsFromDTO(cg, d.BridgingCommitmentsB)
	if err != nil {
		return nil, err
	}
	stepA, err := elementsFromDTO(cg, d.StepCommitmentsA)
	if err != nil {
		return nil, err
	}
	stepB, err := elementsFromDTO(cg, d.StepCommitmentsB)
	if err != nil {
		return nil, err
	}
	challenge, err := decodeQuotedScalar(cg, d.Challenge)
	if err != nil {
		return nil, err
	}
	zPerm, err := scalarsFromDTO(cg, d.ZPerm)
	if err != nil {
		return nil, err
	}
	zBlind, err := scalarsFromDTO(cg, d.ZBlind)
	if err != nil {
		return nil, err
	}
	delta, err := decodeQuotedScalar(cg, d.Delta)
	if err != nil {
		return nil, err
	}
	return &shuffle.Proof{
		EValues:              eValues,
		BridgingCommitmentsA: bridgingA,
		BridgingCommitmentsB: bridgingB,
		StepCommitmentsA:     stepA,
		StepCommitmentsB:     stepB,
		Challenge:            challenge,
		ZPerm:                zPerm,
		ZBlind:               zBlind,
		Delta:                delta,
	}, nil
}

// ShuffleProofDTO is the wire form of a completed online shuffle, per
// spec §3: the online MixProofDTO, the offline PermutationProofDTO it is
// paired with, and the permutation commitments recomputed from private
// data at shuffle time (never trusted from a caller), packaged as one
// EncodeTuple string.
type ShuffleProofDTO struct {
	Mix                   MixProofDTO         `json:"mix"`
	Permutation           PermutationProofDTO `json:"permutation"`
	PermutationCommitment json.RawMessage     `json:"permutationCommitment"`
}

// ShuffleProofToDTO assembles a ShuffleProofDTO from the online mix
// proof, the offline permutation proof it is paired with, and the
// permutation commitments (recomputed by the caller from private data,
// per spec §4.6 step 3).
func ShuffleProofToDTO(mix *shuffle.Proof, permProof *permutation.Proof, commitments []*group.GroupElement) ShuffleProofDTO {
	encoded := make([]string, len(commitments))
	for i, c := range commitments {
		encoded[i] = c.Encode()
	}
	return ShuffleProofDTO{
		Mix:                   MixProofToDTO(mix),
		Permutation:           PermutationProofToDTO(permProof),
		PermutationCommitment: quoteString(EncodeTuple(encoded...)),
	}
}

func ShuffleProofFromDTO(cg *group.CryptoGroup, d ShuffleProofDTO) (*shuffle.Proof, *permutation.Proof, []*group.GroupElement, error) {
	mix, err := MixProofFromDTO(cg, d.Mix)
	if err != nil {
		return nil, nil, nil, err
	}
	permProof, err := PermutationProofFromDTO(cg, d.Permutation)
	if err != nil {
		return nil, nil, nil, err
	}

	var tuple string
	if err := json.Unmarshal(d.PermutationCommitment, &tuple); err != nil {
		return nil, nil, nil, err
	}
	parts, err := DecodeTuple(tuple)
	if err != nil {
		return nil, nil, nil, err
	}
	commitments := make([]*group.GroupElement, len(parts))
	for i, part := range parts {
		c, err := group.DecodeGroupElement(cg, part)
		if err != nil {
			return nil, nil, nil, err
		}
		commitments[i] = c
	}

	return mix, permProof, commitments, nil
}
