package keymaker

import (
	"testing"

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

func TestCreateShareProducesVerifiableProof(t *testing.T) {
	cg := testGroup(t)
	d, kp, err := CreateShare(cg, "keymaker-1")
	require.NoError(t, err)

	publicKey, ok, err := VerifyKeyShare(cg, d)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, publicKey.Equal(kp.PublicKey))
}

func TestVerifyKeyShareRejectsWrongProver(t *testing.T) {
	cg := testGroup(t)
	d, _, err := CreateShare(cg, "keymaker-1")
	require.NoError(t, err)
	d.ProverID = "keymaker-2"

	_, ok, err := VerifyKeyShare(cg, d)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPartialDecryptThresholdRoundTrip(t *testing.T) {
	cg := testGroup(t)
	_, kp, err := CreateShare(cg, "keymaker-1")
	require.NoError(t, err)

	msg := cg.Generator().Exponentiate(cg.ScalarFromInt64(99))
	ct, _, err := elgamal.Encrypt(cg, kp.PublicKey, msg)
	require.NoError(t, err)

	d, err := PartialDecrypt(cg, "keymaker-1", []elgamal.Ciphertext{ct}, kp, kp.PublicKey)
	require.NoError(t, err)

	factors, ok, err := VerifyPartialDecryption(cg, d, []elgamal.Ciphertext{ct}, kp.PublicKey, true)
	require.NoError(t, err)
	require.True(t, ok)

	recovered := ct.B.Multiply(factors[0].Invert())
	require.True(t, msg.Equal(recovered))
}

func TestPartialDecryptTwoTrusteeSymmetricCombination(t *testing.T) {
	cg := testGroup(t)
	_, kp1, err := CreateShare(cg, "keymaker-1")
	require.NoError(t, err)
	_, kp2, err := CreateShare(cg, "keymaker-2")
	require.NoError(t, err)

	jointKey := kp1.PublicKey.Multiply(kp2.PublicKey)
	msg := cg.Generator().Exponentiate(cg.ScalarFromInt64(7))
	ct, _, err := elgamal.Encrypt(cg, jointKey, msg)
	require.NoError(t, err)

	d1, err := PartialDecrypt(cg, "keymaker-1", []elgamal.Ciphertext{ct}, kp1, nil)
	require.NoError(t, err)
	d2, err := PartialDecrypt(cg, "keymaker-2", []elgamal.Ciphertext{ct}, kp2, nil)
	require.NoError(t, err)

	factors1, ok1, err := VerifyPartialDecryption(cg, d1, []elgamal.Ciphertext{ct}, kp1.PublicKey, false)
	require.NoError(t, err)
	require.True(t, ok1)
	factors2, ok2, err := VerifyPartialDecryption(cg, d2, []elgamal.Ciphertext{ct}, kp2.PublicKey, false)
	require.NoError(t, err)
	require.True(t, ok2)

	recovered := ct.B.Multiply(factors1[0]).Multiply(factors2[0])
	require.True(t, msg.Equal(recovered))
}

func TestPartialDecryptRejectsEmptyBatch(t *testing.T) {
	cg := testGroup(t)
	_, kp, err := CreateShare(cg, "keymaker-1")
	require.NoError(t, err)

	_, err = PartialDecrypt(cg, "keymaker-1", nil, kp, kp.PublicKey)
	require.Error(t, err)
}

func TestPartialDecryptRejectsDegenerateCiphertext(t *testing.T) {
	cg := testGroup(t)
	_, kp, err := CreateShare(cg, "keymaker-1")
	require.NoError(t, err)

	degenerate := elgamal.Ciphertext{A: cg.Identity(), B: cg.Identity()}
	_, err = PartialDecrypt(cg, "keymaker-1", []elgamal.Ciphertext{degenerate}, kp, kp.PublicKey)
	require.Error(t, err)
}
