package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/permutation"
	"github.com/dnkolegov/gomix/shuffle"
	"github.com/dnkolegov/gomix/sigma"
)

func testGroup(t *testing.T) *group.CryptoGroup {
	t.Helper()
	cg, err := group.GenerateCryptoGroup(64)
	require.NoError(t, err)
	return cg
}

func TestEncodeTuple(t *testing.T) {
	require.Equal(t, "(1,2,3)", EncodeTuple("1", "2", "3"))
	require.Equal(t, "()", EncodeTuple())
}

func TestDecodeTupleRoundTrip(t *testing.T) {
	parts, err := DecodeTuple(EncodeTuple("1", "2", "3"))
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, parts)

	empty, err := DecodeTuple(EncodeTuple())
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = DecodeTuple("1,2,3")
	require.Error(t, err)
}

func TestPermutationProofRoundTrip(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(4)
	require.NoError(t, err)
	commitments, data, err := permutation.Commit(cg, generators)
	require.NoError(t, err)
	proof, err := permutation.Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	d := PermutationProofToDTO(proof)
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var roundTripped PermutationProofDTO
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	recovered, err := PermutationProofFromDTO(cg, roundTripped)
	require.NoError(t, err)
	require.True(t, recovered.Verify(cg, "mixer-1", generators, commitments))
}

func TestShuffleProofRoundTrip(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)

	n := 4
	generators, err := cg.CommitmentGenerators(n)
	require.NoError(t, err)
	commitments, data, err := permutation.Commit(cg, generators)
	require.NoError(t, err)
	permProof, err := permutation.Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	input := make([]elgamal.Ciphertext, n)
	output := make([]elgamal.Ciphertext, n)
	scalars := make([]*group.ScalarElement, n)
	for i := 0; i < n; i++ {
		msg := cg.Generator().Exponentiate(cg.ScalarFromInt64(int64(i + 2)))
		ct, _, err := elgamal.Encrypt(cg, kp.PublicKey, msg)
		require.NoError(t, err)
		input[i] = ct
		s, err := cg.RandomScalar()
		require.NoError(t, err)
		scalars[i] = s
		output[i] = elgamal.ReEncrypt(cg, kp.PublicKey, input[data.Perm[i]], s)
	}

	mixProof, err := shuffle.Prove(cg, "mixer-1", kp.PublicKey, input, output, data.Perm, scalars)
	require.NoError(t, err)

	d := ShuffleProofToDTO(mixProof, permProof, commitments)
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var roundTripped ShuffleProofDTO
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	recoveredMix, recoveredPerm, recoveredCommitments, err := ShuffleProofFromDTO(cg, roundTripped)
	require.NoError(t, err)
	require.True(t, recoveredMix.Verify(cg, "mixer-1", kp.PublicKey, input, output))
	require.True(t, recoveredPerm.Verify(cg, "mixer-1", generators, recoveredCommitments))
}

func TestCiphertextRoundTrip(t *testing.T) {
	cg := testGroup(t)
	kp, err := elgamal.GenerateKeyPair(cg)
	require.NoError(t, err)
	msg := cg.Generator().Exponentiate(cg.ScalarFromInt64(42))
	ct, _, err := elgamal.Encrypt(cg, kp.PublicKey, msg)
	require.NoError(t, err)

	d := CiphertextToDTO(ct)
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var roundTripped CiphertextDTO
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	recovered, err := CiphertextFromDTO(cg, roundTripped)
	require.NoError(t, err)
	require.True(t, ct.A.Equal(recovered.A))
	require.True(t, ct.B.Equal(recovered.B))
}

func TestPreimageProofRoundTrip(t *testing.T) {
	cg := testGroup(t)
	x := cg.ScalarFromInt64(11)
	y := cg.Generator().Exponentiate(x)
	proof, err := sigma.ProvePreimage(cg, "prover-1", cg.Generator(), x, y)
	require.NoError(t, err)

	d := PreimageProofToDTO(proof)
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var roundTripped PreimageProofDTO
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	recovered, err := PreimageProofFromDTO(cg, roundTripped)
	require.NoError(t, err)
	require.True(t, recovered.Verify(cg, "prover-1", cg.Generator(), y))
}
