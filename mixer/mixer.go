// Package mixer implements the Mixer trustee role: a two-phase verifiable
// re-encryption shuffle. PreShuffle commits to a fresh random permutation
// (the "offline" phase); Shuffle re-encrypts and permutes a ciphertext
// batch according to the committed permutation and proves it did so
// faithfully (the "online" phase). PreShuffleAndShuffle runs both phases
// against a concurrently-known ciphertext count in one call, grounded on
// the concurrency idiom in internal/workerpool.
package mixer

import (
	"context"
	"fmt"
	"sync"

	"github.com/dnkolegov/gomix/dto"
	"github.com/dnkolegov/gomix/elgamal"
	"github.com/dnkolegov/gomix/group"
	"github.com/dnkolegov/gomix/internal/workerpool"
	"github.com/dnkolegov/gomix/mixerr"
	"github.com/dnkolegov/gomix/permutation"
	"github.com/dnkolegov/gomix/shuffle"
)

type phase int

const (
	phaseIdle phase = iota
	phasePrepared
	phaseShuffled
)

// Mixer is a single trustee's mix-server state. It is safe for
// concurrent use: PreShuffle and Shuffle are mutually exclusive and must
// be called in order for a given batch size.
type Mixer struct {
	cg       *group.CryptoGroup
	proverID string

	mu         sync.Mutex
	state      phase
	n          int
	data       *permutation.Data
	generators []*group.GroupElement
	permProof  *permutation.Proof
}

// New creates a Mixer bound to a group and a prover identity used in its
// Fiat-Shamir transcripts.
func New(cg *group.CryptoGroup, proverID string) *Mixer {
	return &Mixer{cg: cg, proverID: proverID, state: phaseIdle}
}

// PreShuffle commits to a fresh random permutation of n positions and
// proves the commitment is well-formed, without yet touching any
// ciphertext. It must be called before Shuffle.
func (m *Mixer) PreShuffle(n int) (dto.PermutationProofDTO, []*group.GroupElement, []*group.GroupElement, error) {
	if n <= 0 {
		return dto.PermutationProofDTO{}, nil, nil, fmt.Errorf("%w: batch size must be positive", mixerr.ErrArityMismatch)
	}

	generators, err := m.cg.CommitmentGenerators(n)
	if err != nil {
		return dto.PermutationProofDTO{}, nil, nil, err
	}

	commitments, data, err := permutation.Commit(m.cg, generators)
	if err != nil {
		return dto.PermutationProofDTO{}, nil, nil, err
	}

	proof, err := permutation.Prove(m.cg, m.proverID, generators, commitments, data)
	if err != nil {
		data.Zeroize()
		return dto.PermutationProofDTO{}, nil, nil, err
	}

	m.mu.Lock()
	m.state = phasePrepared
	m.n = n
	m.data = data
	m.generators = generators
	m.permProof = proof
	m.mu.Unlock()

	return dto.PermutationProofToDTO(proof), generators, commitments, nil
}

// Shuffle re-encrypts and permutes ciphertexts according to the
// permutation committed to by the most recent PreShuffle call, and
// proves it did so faithfully. It takes the prepared permutation state
// under the lock as soon as the checks pass, returning the Mixer to its
// idle phase, and zeroizes that state before returning, on success and on
// failure alike.
func (m *Mixer) Shuffle(pub *group.GroupElement, ciphertexts []elgamal.Ciphertext) ([]elgamal.Ciphertext, dto.ShuffleProofDTO, error) {
	m.mu.Lock()
	if m.state != phasePrepared {
		m.mu.Unlock()
		return nil, dto.ShuffleProofDTO{}, fmt.Errorf("%w: Shuffle called without a prior PreShuffle", mixerr.ErrArityMismatch)
	}
	if len(ciphertexts) != m.n {
		m.mu.Unlock()
		return nil, dto.ShuffleProofDTO{}, fmt.Errorf("%w: ciphertext batch size does not match PreShuffle", mixerr.ErrArityMismatch)
	}
	data := m.data
	generators := m.generators
	permProof := m.permProof
	m.state = phaseIdle
	m.data = nil
	m.generators = nil
	m.permProof = nil
	m.mu.Unlock()

	n := len(ciphertexts)
	scalars := make([]*group.ScalarElement, n)
	output := make([]elgamal.Ciphertext, n)
	for i := 0; i < n; i++ {
		s, err := m.cg.RandomScalar()
		if err != nil {
			data.Zeroize()
			return nil, dto.ShuffleProofDTO{}, mixerr.NewProofError("shuffle-reencrypt", err)
		}
		scalars[i] = s
		output[i] = elgamal.ReEncrypt(m.cg, pub, ciphertexts[data.Perm[i]], s)
	}

	proof, err := shuffle.Prove(m.cg, m.proverID, pub, ciphertexts, output, data.Perm, scalars)
	if err != nil {
		data.Zeroize()
		return nil, dto.ShuffleProofDTO{}, err
	}

	// Recompute the permutation commitments from private data rather
	// than trusting any caller-held copy (spec §4.6 step 3).
	commitments := make([]*group.GroupElement, n)
	for i := 0; i < n; i++ {
		commitments[i] = m.cg.Generator().Exponentiate(data.Randomness[i]).Multiply(generators[data.Perm[i]])
	}

	data.Zeroize()

	return output, dto.ShuffleProofToDTO(proof, permProof, commitments), nil
}

// PreShuffleAndShuffle runs both phases in one call. Once the permutation
// is sampled and committed, the permutation commitment proof (which does
// not depend on the ciphertexts) is produced concurrently with
// re-encrypting the batch under that permutation and building the shuffle
// proof over the result; the two tasks are joined before the DTOs are
// assembled. This is the mixer's task-level concurrency idiom (as opposed
// to element-wise batch parallelism within a single phase). It returns
// ctx.Err() without drawing any randomness if ctx is already done.
func (m *Mixer) PreShuffleAndShuffle(ctx context.Context, pub *group.GroupElement, ciphertexts []elgamal.Ciphertext) (dto.PermutationProofDTO, []elgamal.Ciphertext, dto.ShuffleProofDTO, error) {
	n := len(ciphertexts)
	if n == 0 {
		return dto.PermutationProofDTO{}, nil, dto.ShuffleProofDTO{}, fmt.Errorf("%w: empty ciphertext batch", mixerr.ErrArityMismatch)
	}
	if err := ctx.Err(); err != nil {
		return dto.PermutationProofDTO{}, nil, dto.ShuffleProofDTO{}, err
	}

	generators, err := m.cg.CommitmentGenerators(n)
	if err != nil {
		return dto.PermutationProofDTO{}, nil, dto.ShuffleProofDTO{}, err
	}

	commitments, data, err := permutation.Commit(m.cg, generators)
	if err != nil {
		return dto.PermutationProofDTO{}, nil, dto.ShuffleProofDTO{}, err
	}

	var permProof *permutation.Proof
	var shuffleProof *shuffle.Proof
	var output []elgamal.Ciphertext

	err = workerpool.Join(ctx,
		func(context.Context) error {
			var perr error
			permProof, perr = permutation.Prove(m.cg, m.proverID, generators, commitments, data)
			return perr
		},
		func(innerCtx context.Context) error {
			type reEncrypted struct {
				ct elgamal.Ciphertext
				s  *group.ScalarElement
			}
			results, rerr := workerpool.MapOrdered(innerCtx, 0, data.Perm, func(_ context.Context, srcIndex int) (reEncrypted, error) {
				s, serr := m.cg.RandomScalar()
				if serr != nil {
					return reEncrypted{}, mixerr.NewProofError("shuffle-reencrypt", serr)
				}
				return reEncrypted{ct: elgamal.ReEncrypt(m.cg, pub, ciphertexts[srcIndex], s), s: s}, nil
			})
			if rerr != nil {
				return rerr
			}

			scalars := make([]*group.ScalarElement, n)
			output = make([]elgamal.Ciphertext, n)
			for i, r := range results {
				scalars[i] = r.s
				output[i] = r.ct
			}

			var perr error
			shuffleProof, perr = shuffle.Prove(m.cg, m.proverID, pub, ciphertexts, output, data.Perm, scalars)
			return perr
		},
	)
	data.Zeroize()
	if err != nil {
		return dto.PermutationProofDTO{}, nil, dto.ShuffleProofDTO{}, err
	}

	return dto.PermutationProofToDTO(permProof), output, dto.ShuffleProofToDTO(shuffleProof, permProof, commitments), nil
}
