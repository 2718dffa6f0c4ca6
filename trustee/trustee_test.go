package trustee

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
)

func testGroup(t *testing.T) *group.CryptoGroup {
	t.Helper()
	cg, err := group.GenerateCryptoGroup(64)
	require.NoError(t, err)
	return cg
}

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestKeyMakerCreateShareAndDecrypt(t *testing.T) {
	cg := testGroup(t)
	km := NewKeyMaker(cg, "keymaker-1", discardLogger())

	d, err := km.CreateShare()
	require.NoError(t, err)
	require.Equal(t, "keymaker-1", d.ProverID)

	msg := cg.Generator().Exponentiate(cg.ScalarFromInt64(3))
	ct, _, err := elgamal.Encrypt(cg, km.share.PublicKey, msg)
	require.NoError(t, err)

	_, err = km.PartialDecrypt([]elgamal.Ciphertext{ct}, km.share.PublicKey)
	require.NoError(t, err)
}

func TestMixerPreShuffleAndShuffle(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	m := NewMixer(cg, "mixer-1", discardLogger())

	ct, _, err := elgamal.Encrypt(cg, kp.PublicKey, cg.Generator())
	require.NoError(t, err)
	batch := []elgamal.Ciphertext{ct}

	_, _, _, err = m.PreShuffle(len(batch))
	require.NoError(t, err)

	output, _, err := m.Shuffle(kp.PublicKey, batch)
	require.NoError(t, err)
	require.Len(t, output, 1)
}

func TestMixerPreShuffleAndShuffleOneShot(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	m := NewMixer(cg, "mixer-1", discardLogger())

	ct, _, err := elgamal.Encrypt(cg, kp.PublicKey, cg.Generator())
	require.NoError(t, err)
	batch := []elgamal.Ciphertext{ct}

	_, output, _, err := m.PreShuffleAndShuffle(context.Background(), kp.PublicKey, batch)
	require.NoError(t, err)
	require.Len(t, output, 1)
}
