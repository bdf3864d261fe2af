// Package prime implements probabilistic prime generation: small-prime
// trial division followed by Miller-Rabin witness testing, and a random
// search for primes of a requested bit length.
package prime

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sybrenstuvel/gorsa/bignum"
	"github.com/sybrenstuvel/gorsa/randnum"
)

// ErrCancelled is the cause of failures due to a cancelled context. Prime
// search can run for a long time; the context is checked between candidate
// draws and between Miller-Rabin rounds.
var ErrCancelled = errors.New("prime search cancelled")

// trialDivisionBound bounds the small primes used for trial division
// before Miller-Rabin testing.
const trialDivisionBound = 1000

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)

	smallPrimes []*big.Int
)

func init() {
	composite := make([]bool, trialDivisionBound)
	for i := 2; i < trialDivisionBound; i++ {
		if composite[i] {
			continue
		}
		smallPrimes = append(smallPrimes, big.NewInt(int64(i)))
		for j := i * i; j < trialDivisionBound; j += i {
			composite[j] = true
		}
	}
}

// AreRelativelyPrime reports whether gcd(a, b) == 1.
func AreRelativelyPrime(a, b *big.Int) bool {
	return bignum.GCD(a, b).Cmp(one) == 0
}

// rounds returns the number of Miller-Rabin rounds for a candidate of the
// given size, following NIST FIPS 186-4 Appendix C table C.3 (error
// probability 2^-100).
func rounds(n *big.Int) int {
	bits := bignum.BitSize(n)
	switch {
	case bits >= 1536:
		return 3
	case bits >= 1024:
		return 4
	case bits >= 512:
		return 7
	}
	return 10
}

// MillerRabin runs k rounds of Miller-Rabin testing on n with uniformly
// random witnesses in [2, n-2]. A false result is always correct; a true
// result is wrong with probability at most 4^-k.
func MillerRabin(ctx context.Context, n *big.Int, k int) (bool, error) {
	// Witnesses are drawn from [2, n-2], which is empty below 5.
	if n.Cmp(big.NewInt(5)) < 0 {
		return n.Cmp(two) == 0 || n.Cmp(three) == 0, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}

	// Write n-1 as 2^r * d with d odd.
	d := new(big.Int).Sub(n, one)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	nMinusOne := new(big.Int).Sub(n, one)
	span := new(big.Int).Sub(n, three)

	x := new(big.Int)
	for i := 0; i < k; i++ {
		if err := ctx.Err(); err != nil {
			return false, errors.Wrap(ErrCancelled, err.Error())
		}

		a := randnum.ReadRandomInt(span)
		a.Add(a, two)

		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		witness := true
		for j := 0; j < r-1; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(one) == 0 {
				return false, nil
			}
			if x.Cmp(nMinusOne) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false, nil
		}
	}

	return true, nil
}

// IsProbablePrime reports whether n is probably prime. Candidates are
// first trial-divided by all primes below 1000, then subjected to
// Miller-Rabin testing with the FIPS 186-4 round count plus one extra
// round.
func IsProbablePrime(ctx context.Context, n *big.Int) (bool, error) {
	if n.Cmp(two) < 0 {
		return false, nil
	}

	rem := new(big.Int)
	for _, p := range smallPrimes {
		if n.Cmp(p) == 0 {
			return true, nil
		}
		if rem.Mod(n, p).Sign() == 0 {
			return false, nil
		}
	}

	return MillerRabin(ctx, n, rounds(n)+1)
}

// Recorder observes the progress of a prime search. Implementations must
// be safe for use from a single search goroutine only.
type Recorder interface {
	// Candidate records a candidate being drawn and tested.
	Candidate()
	// Reject records a candidate failing the primality test.
	Reject()
}

// Search finds primes of a requested size. The zero value searches
// without instrumentation.
type Search struct {
	Rec Recorder
}

// GetPrime returns a random prime of exactly bits bits. Sizes below 4
// bits are rejected.
func (s Search) GetPrime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 4 {
		return nil, errors.Errorf("prime size %d too small", bits)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(ErrCancelled, err.Error())
		}

		candidate := randnum.ReadRandomOddInt(bits)
		if s.Rec != nil {
			s.Rec.Candidate()
		}

		ok, err := IsProbablePrime(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
		if s.Rec != nil {
			s.Rec.Reject()
		}
	}
}

// GetPrime returns a random prime of exactly bits bits.
func GetPrime(ctx context.Context, bits int) (*big.Int, error) {
	return Search{}.GetPrime(ctx, bits)
}
