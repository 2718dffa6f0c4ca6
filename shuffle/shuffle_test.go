package shuffle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/permutation"
)

func testGroup(t *testing.T) *group.CryptoGroup {
	t.Helper()
	cg, err := group.GenerateCryptoGroup(64)
	require.NoError(t, err)
	return cg
}

func buildBatch(t *testing.T, cg *group.CryptoGroup, pub *group.GroupElement, n int) []elgamal.Ciphertext {
	t.Helper()
	batch := make([]elgamal.Ciphertext, n)
	for i := 0; i < n; i++ {
		msg := cg.Generator().Exponentiate(cg.ScalarFromInt64(int64(i + 2)))
		ct, _, err := elgamal.Encrypt(cg, pub, msg)
		require.NoError(t, err)
		batch[i] = ct
	}
	return batch
}

func shuffleBatch(t *testing.T, cg *group.CryptoGroup, pub *group.GroupElement, input []elgamal.Ciphertext, perm []int) ([]elgamal.Ciphertext, []*group.ScalarElement) {
	t.Helper()
	n := len(input)
	output := make([]elgamal.Ciphertext, n)
	scalars := make([]*group.ScalarElement, n)
	for i := 0; i < n; i++ {
		s, err := cg.RandomScalar()
		require.NoError(t, err)
		scalars[i] = s
		output[i] = elgamal.ReEncrypt(cg, pub, input[perm[i]], s)
	}
	return output, scalars
}

func TestShuffleProofRoundTrip(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	input := buildBatch(t, cg, kp.PublicKey, 5)
	perm, err := permutation.Sample(5)
	require.NoError(t, err)
	output, scalars := shuffleBatch(t, cg, kp.PublicKey, input, perm)

	proof, err := Prove(cg, "mixer-1", kp.PublicKey, input, output, perm, scalars)
	require.NoError(t, err)
	require.True(t, proof.Verify(cg, "mixer-1", kp.PublicKey, input, output))
}

func TestShuffleOutputDecryptsToPermutedInput(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	plaintexts := make([]*group.GroupElement, 4)
	input := make([]elgamal.Ciphertext, 4)
	for i := range plaintexts {
		plaintexts[i] = cg.Generator().Exponentiate(cg.ScalarFromInt64(int64(10 + i)))
		ct, _, err := elgamal.Encrypt(cg, kp.PublicKey, plaintexts[i])
		require.NoError(t, err)
		input[i] = ct
	}

	perm, err := permutation.Sample(4)
	require.NoError(t, err)
	output, _ := shuffleBatch(t, cg, kp.PublicKey, input, perm)

	for i, ct := range output {
		recovered := elgamal.DecryptWithScalar(ct, kp.PrivateKey)
		require.True(t, plaintexts[perm[i]].Equal(recovered))
	}
}

func TestVerifyRejectsTamperedOutput(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	input := buildBatch(t, cg, kp.PublicKey, 4)
	perm, err := permutation.Sample(4)
	require.NoError(t, err)
	output, scalars := shuffleBatch(t, cg, kp.PublicKey, input, perm)

	proof, err := Prove(cg, "mixer-1", kp.PublicKey, input, output, perm, scalars)
	require.NoError(t, err)

	tampered := make([]elgamal.Ciphertext, len(output))
	copy(tampered, output)
	tampered[0] = elgamal.Ciphertext{A: tampered[0].A.Multiply(cg.Generator()), B: tampered[0].B}

	require.False(t, proof.Verify(cg, "mixer-1", kp.PublicKey, input, tampered))
}

// TestEValuesAreUnpermuted guards the fix for a prior defect where the
// proof published the prover's permuted reindexing of these challenges
// directly, letting any verifier recover the secret permutation by
// matching values. EValues must equal the independently-recomputable,
// natural-index-order challenges exactly.
func TestEValuesAreUnpermuted(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	input := buildBatch(t, cg, kp.PublicKey, 5)
	perm, err := permutation.Sample(5)
	require.NoError(t, err)
	output, scalars := shuffleBatch(t, cg, kp.PublicKey, input, perm)

	proof, err := Prove(cg, "mixer-1", kp.PublicKey, input, output, perm, scalars)
	require.NoError(t, err)

	recomputed := indexedChallenges(cg, "mixer-1", input, output)
	for i := range input {
		require.True(t, recomputed[i].Equal(proof.EValues[i]), "eValues[%d] must be the natural-order challenge, not a permuted one", i)
	}
}

func TestVerifyRejectsTamperedBridgingCommitment(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	input := buildBatch(t, cg, kp.PublicKey, 4)
	perm, err := permutation.Sample(4)
	require.NoError(t, err)
	output, scalars := shuffleBatch(t, cg, kp.PublicKey, input, perm)

	proof, err := Prove(cg, "mixer-1", kp.PublicKey, input, output, perm, scalars)
	require.NoError(t, err)

	proof.BridgingCommitmentsB[0] = proof.BridgingCommitmentsB[0].Multiply(cg.Generator())
	require.False(t, proof.Verify(cg, "mixer-1", kp.PublicKey, input, output))
}

func TestProveRejectsArityMismatch(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	input := buildBatch(t, cg, kp.PublicKey, 3)
	_, err = Prove(cg, "mixer-1", kp.PublicKey, input, input[:2], []int{0, 1, 2}, nil)
	require.Error(t, err)
}
