package prime

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sieve returns primality of every number below limit.
func sieve(limit int) []bool {
	isPrime := make([]bool, limit)
	for i := 2; i < limit; i++ {
		isPrime[i] = true
	}
	for i := 2; i*i < limit; i++ {
		if !isPrime[i] {
			continue
		}
		for j := i * i; j < limit; j += i {
			isPrime[j] = false
		}
	}
	return isPrime
}

func TestIsProbablePrimeBelowTenThousand(t *testing.T) {
	ctx := context.Background()
	for n, want := range sieve(10000) {
		got, err := IsProbablePrime(ctx, big.NewInt(int64(n)))
		require.NoError(t, err)
		assert.Equal(t, want, got, "n = %d", n)
	}
}

func TestMillerRabinComposites(t *testing.T) {
	ctx := context.Background()
	// Carmichael numbers fool Fermat testing but not Miller-Rabin.
	for _, n := range []int64{561, 1105, 1729, 2465, 6601, 8911, 41041} {
		got, err := MillerRabin(ctx, big.NewInt(n), 10)
		require.NoError(t, err)
		assert.False(t, got, "n = %d", n)
	}
}

func TestMillerRabinPrimes(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int64{2, 3, 5, 7919, 104729} {
		got, err := MillerRabin(ctx, big.NewInt(n), 10)
		require.NoError(t, err)
		assert.True(t, got, "n = %d", n)
	}
}

func TestAreRelativelyPrime(t *testing.T) {
	assert.True(t, AreRelativelyPrime(big.NewInt(2), big.NewInt(3)))
	assert.False(t, AreRelativelyPrime(big.NewInt(2), big.NewInt(4)))
	assert.True(t, AreRelativelyPrime(big.NewInt(35), big.NewInt(18)))
}

func TestGetPrime(t *testing.T) {
	ctx := context.Background()
	p, err := GetPrime(ctx, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, p.BitLen())
	assert.Equal(t, uint(1), p.Bit(0))

	ok, err := IsProbablePrime(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetPrimeTooSmall(t *testing.T) {
	_, err := GetPrime(context.Background(), 3)
	assert.Error(t, err)
}

func TestGetPrimeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetPrime(ctx, 128)
	assert.ErrorIs(t, err, ErrCancelled)
}

type countingRecorder struct {
	candidates int
	rejects    int
}

func (r *countingRecorder) Candidate() { r.candidates++ }
func (r *countingRecorder) Reject()    { r.rejects++ }

func TestSearchRecords(t *testing.T) {
	rec := &countingRecorder{}
	_, err := Search{Rec: rec}.GetPrime(context.Background(), 32)
	require.NoError(t, err)

	assert.Greater(t, rec.candidates, 0)
	assert.Equal(t, rec.candidates-1, rec.rejects)
}
