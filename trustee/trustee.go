// Package trustee is a thin façade binding a CryptoGroup and a trustee
// identity to the keymaker and mixer operations, adding structured
// logging around each operation. Grounded on vocdoni-davinci-node's
// pattern of wrapping core operations with zerolog.Logger fields scoped
// to a component and request identity.
package trustee

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dnkolegov/gomix/dto"
	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/keymaker"
	"github.com/dnkolegov/gomix/mixer"
)

// KeyMaker wraps the keymaker package's operations with an identity, a
// group, and a logger.
type KeyMaker struct {
	Settings *group.CryptoGroup
	ID       string
	Log      zerolog.Logger

	share *elgamal.KeyPair
}

// NewKeyMaker builds a KeyMaker trustee, deriving its logger from base
// with the "component" and "trusteeID" fields set.
func NewKeyMaker(settings *group.CryptoGroup, id string, base zerolog.Logger) *KeyMaker {
	return &KeyMaker{
		Settings: settings,
		ID:       id,
		Log:      base.With().Str("component", "keymaker").Str("trusteeID", id).Logger(),
	}
}

// PublicKey returns this trustee's public key share. It panics if called
// before CreateShare.
func (k *KeyMaker) PublicKey() *group.GroupElement {
	return k.share.PublicKey
}

// CreateShare generates and logs this trustee's key share.
func (k *KeyMaker) CreateShare() (dto.EncryptionKeyShareDTO, error) {
	d, share, err := keymaker.CreateShare(k.Settings, k.ID)
	if err != nil {
		k.Log.Error().Err(err).Msg("key share generation failed")
		return dto.EncryptionKeyShareDTO{}, err
	}
	k.share = share
	k.Log.Info().Str("publicKey", share.PublicKey.Encode()).Msg("key share created")
	return d, nil
}

// PartialDecrypt computes and logs this trustee's partial decryption of
// ciphertexts. vk is nil for the two-trustee symmetric case.
func (k *KeyMaker) PartialDecrypt(ciphertexts []elgamal.Ciphertext, vk *group.GroupElement) (dto.PartialDecryptionDTO, error) {
	d, err := keymaker.PartialDecrypt(k.Settings, k.ID, ciphertexts, k.share, vk)
	if err != nil {
		k.Log.Error().Err(err).Int("batchSize", len(ciphertexts)).Msg("partial decryption failed")
		return dto.PartialDecryptionDTO{}, err
	}
	k.Log.Info().Int("batchSize", len(ciphertexts)).Msg("partial decryption completed")
	return d, nil
}

// Mixer wraps the mixer package's Mixer with an identity and a logger.
type Mixer struct {
	Log zerolog.Logger

	core *mixer.Mixer
}

// NewMixer builds a Mixer trustee, deriving its logger from base with the
// "component" and "trusteeID" fields set.
func NewMixer(settings *group.CryptoGroup, id string, base zerolog.Logger) *Mixer {
	return &Mixer{
		Log:  base.With().Str("component", "mixer").Str("trusteeID", id).Logger(),
		core: mixer.New(settings, id),
	}
}

// PreShuffle commits to a fresh permutation and logs the result.
func (m *Mixer) PreShuffle(n int) (dto.PermutationProofDTO, []*group.GroupElement, []*group.GroupElement, error) {
	d, generators, commitments, err := m.core.PreShuffle(n)
	if err != nil {
		m.Log.Error().Err(err).Int("batchSize", n).Msg("pre-shuffle failed")
		return dto.PermutationProofDTO{}, nil, nil, err
	}
	m.Log.Info().Int("batchSize", n).Msg("pre-shuffle committed")
	return d, generators, commitments, nil
}

// Shuffle re-encrypts and permutes ciphertexts and logs the result.
func (m *Mixer) Shuffle(pub *group.GroupElement, ciphertexts []elgamal.Ciphertext) ([]elgamal.Ciphertext, dto.ShuffleProofDTO, error) {
	output, proof, err := m.core.Shuffle(pub, ciphertexts)
	if err != nil {
		m.Log.Error().Err(err).Msg("shuffle failed")
		return nil, dto.ShuffleProofDTO{}, err
	}
	m.Log.Info().Int("batchSize", len(ciphertexts)).Msg("shuffle completed")
	return output, proof, nil
}

// PreShuffleAndShuffle runs the one-shot concurrent variant and logs the
// result.
func (m *Mixer) PreShuffleAndShuffle(ctx context.Context, pub *group.GroupElement, ciphertexts []elgamal.Ciphertext) (dto.PermutationProofDTO, []elgamal.Ciphertext, dto.ShuffleProofDTO, error) {
	permProof, output, shuffleProof, err := m.core.PreShuffleAndShuffle(ctx, pub, ciphertexts)
	if err != nil {
		m.Log.Error().Err(err).Msg("pre-shuffle-and-shuffle failed")
		return dto.PermutationProofDTO{}, nil, dto.ShuffleProofDTO{}, err
	}
	m.Log.Info().Int("batchSize", len(ciphertexts)).Msg("pre-shuffle-and-shuffle completed")
	return permProof, output, shuffleProof, nil
}
