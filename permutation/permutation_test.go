package permutation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/sigma"
)

func testGroup(t *testing.T) *group.CryptoGroup {
	t.Helper()
	cg, err := group.GenerateCryptoGroup(64)
	require.NoError(t, err)
	return cg
}

func TestSampleProducesAPermutation(t *testing.T) {
	perm, err := Sample(8)
	require.NoError(t, err)
	require.Len(t, perm, 8)

	seen := make([]bool, 8)
	for _, p := range perm {
		require.False(t, seen[p], "index %d repeated", p)
		seen[p] = true
	}
}

func TestCommitAndProveRoundTrip(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(6)
	require.NoError(t, err)

	commitments, data, err := Commit(cg, generators)
	require.NoError(t, err)
	require.Len(t, commitments, 6)

	proof, err := Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)
	require.True(t, proof.Verify(cg, "mixer-1", generators, commitments))
}

func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(5)
	require.NoError(t, err)

	commitments, data, err := Commit(cg, generators)
	require.NoError(t, err)

	proof, err := Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	tampered := make([]*group.GroupElement, len(commitments))
	copy(tampered, commitments)
	tampered[0] = tampered[0].Multiply(cg.Generator())

	require.False(t, proof.Verify(cg, "mixer-1", generators, tampered))
}

func TestVerifyRejectsWrongProverID(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(4)
	require.NoError(t, err)

	commitments, data, err := Commit(cg, generators)
	require.NoError(t, err)

	proof, err := Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	require.False(t, proof.Verify(cg, "mixer-2", generators, commitments))
}

func TestZeroizeClearsRandomnessAndPermutation(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(3)
	require.NoError(t, err)

	_, data, err := Commit(cg, generators)
	require.NoError(t, err)

	data.Zeroize()
	for _, r := range data.Randomness {
		require.True(t, r.IsZero())
	}
	for _, p := range data.Perm {
		require.Equal(t, 0, p)
	}
}

// TestEValuesAreUnpermuted guards the fix for a prior defect where the
// proof published the prover's permuted reindexing of these challenges
// directly, letting any verifier recover the secret permutation by
// matching values. EValues must equal the independently-recomputable,
// natural-index-order challenges exactly; nothing in the proof may
// expose the permuted reindexing.
func TestEValuesAreUnpermuted(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(6)
	require.NoError(t, err)

	commitments, data, err := Commit(cg, generators)
	require.NoError(t, err)

	proof, err := Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	transcript := make([]sigma.Encodable, 0, 2*len(generators))
	for _, c := range commitments {
		transcript = append(transcript, c)
	}
	for _, h := range generators {
		transcript = append(transcript, h)
	}
	for i := range generators {
		want := sigma.IndexedChallenge(cg, "mixer-1", i, transcript...)
		require.True(t, want.Equal(proof.EValues[i]), "eValues[%d] must be the natural-order challenge, not a permuted one", i)
	}
}

func TestVerifyRejectsTamperedBridgingCommitment(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(5)
	require.NoError(t, err)

	commitments, data, err := Commit(cg, generators)
	require.NoError(t, err)

	proof, err := Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	proof.BridgingCommitments[1] = proof.BridgingCommitments[1].Multiply(cg.Generator())
	require.False(t, proof.Verify(cg, "mixer-1", generators, commitments))
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	cg := testGroup(t)
	generators, err := cg.CommitmentGenerators(5)
	require.NoError(t, err)

	commitments, data, err := Commit(cg, generators)
	require.NoError(t, err)

	proof, err := Prove(cg, "mixer-1", generators, commitments, data)
	require.NoError(t, err)

	proof.ZPerm[0] = proof.ZPerm[0].Add(cg.ScalarFromInt64(1))
	require.False(t, proof.Verify(cg, "mixer-1", generators, commitments))
}
