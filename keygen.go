package gorsa

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/sybrenstuvel/gorsa/bignum"
	"github.com/sybrenstuvel/gorsa/prime"
	"github.com/sybrenstuvel/gorsa/randnum"
)

// DefaultExponent is the public exponent used when no override is given.
const DefaultExponent = 65537

// minKeySize is the smallest modulus size the scheme defines.
const minKeySize = 9

// keyGenConfig holds configuration for key generation.
type keyGenConfig struct {
	exponent int
	accurate bool
	recorder prime.Recorder
}

// KeyGenOption configures NewKeys.
type KeyGenOption func(*keyGenConfig)

// WithExponent overrides the public exponent. The exponent must be odd
// and at least 3.
func WithExponent(e int) KeyGenOption {
	return func(c *keyGenConfig) {
		c.exponent = e
	}
}

// WithFastMode allows the generated modulus to fall one bit short of the
// requested size, in exchange for fewer prime-search iterations.
func WithFastMode() KeyGenOption {
	return func(c *keyGenConfig) {
		c.accurate = false
	}
}

// WithPrimeSearchRecorder instruments the prime search, for example with
// telemetry.PrimeSearch.
func WithPrimeSearchRecorder(rec prime.Recorder) KeyGenOption {
	return func(c *keyGenConfig) {
		c.recorder = rec
	}
}

// findPQ returns two distinct primes whose product has nbits bits. The
// two primes get bit lengths ceil(nbits/2)+shift and floor(nbits/2)-shift
// for a small random shift, so that p and q are not aligned in size. In
// accurate mode candidates are redrawn, alternating between p and q,
// until the product has exactly nbits bits.
func findPQ(ctx context.Context, search prime.Search, nbits int, accurate bool) (p, q *big.Int, err error) {
	shift := int(randnum.ReadRandomInt(big.NewInt(int64(nbits/16 + 1))).Int64())
	pbits := bignum.CeilDiv(nbits, 2) + shift
	qbits := nbits/2 - shift

	acceptable := func(p, q *big.Int) bool {
		if p.Cmp(q) == 0 {
			return false
		}
		if !accurate {
			return true
		}
		n := new(big.Int).Mul(p, q)
		return bignum.BitSize(n) == nbits
	}

	if p, err = search.GetPrime(ctx, pbits); err != nil {
		return nil, nil, err
	}
	if q, err = search.GetPrime(ctx, qbits); err != nil {
		return nil, nil, err
	}

	changeP := false
	for !acceptable(p, q) {
		if changeP {
			if p, err = search.GetPrime(ctx, pbits); err != nil {
				return nil, nil, err
			}
		} else {
			if q, err = search.GetPrime(ctx, qbits); err != nil {
				return nil, nil, err
			}
		}
		changeP = !changeP
	}

	if p.Cmp(q) < 0 {
		p, q = q, p
	}
	return p, q, nil
}

// calculateD returns the private exponent for e modulo
// lambda(n) = lcm(p-1, q-1). Fails when e and lambda(n) are not coprime,
// in which case the caller must pick new primes.
func calculateD(e int, p, q *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	lambda := bignum.LCM(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	return bignum.Inverse(big.NewInt(int64(e)), lambda)
}

// NewKeys generates a fresh RSA key pair with a modulus of nbits bits.
// Generation can take seconds to minutes for large sizes; it is aborted
// between prime candidates and Miller-Rabin rounds when ctx is cancelled,
// failing with ErrKeyGenCancelled.
func NewKeys(ctx context.Context, nbits int, opts ...KeyGenOption) (*PublicKey, *PrivateKey, error) {
	config := keyGenConfig{
		exponent: DefaultExponent,
		accurate: true,
	}
	for _, opt := range opts {
		opt(&config)
	}

	if nbits < minKeySize {
		return nil, nil, errors.Wrapf(ErrKeySizeTooSmall, "%d bits", nbits)
	}
	if config.exponent < 3 || config.exponent%2 == 0 {
		return nil, nil, errors.Errorf("public exponent %d must be odd and at least 3", config.exponent)
	}

	search := prime.Search{Rec: config.recorder}

	// Redraw primes until e is invertible modulo lambda(n).
	var p, q, d *big.Int
	for {
		var err error
		p, q, err = findPQ(ctx, search, nbits, config.accurate)
		if err != nil {
			return nil, nil, err
		}

		d, err = calculateD(config.exponent, p, q)
		if err == nil {
			break
		}
		if errors.Cause(err) != bignum.ErrNotRelativelyPrime {
			return nil, nil, err
		}
	}

	n := new(big.Int).Mul(p, q)
	priv := NewPrivateKey(n, config.exponent, d, p, q)
	pub := &PublicKey{N: n, E: config.exponent}

	return pub, priv, nil
}
