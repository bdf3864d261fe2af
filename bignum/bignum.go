// Package bignum provides arbitrary-precision helpers used throughout the
// RSA implementation: bit and byte sizes, big-endian conversions between
// integers and byte strings, and number-theoretic primitives.
package bignum

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrNotRelativelyPrime is the cause of Inverse failures.
var ErrNotRelativelyPrime = errors.New("arguments are not relatively prime")

// ErrIntTooLarge is the cause of IntToBytes failures.
var ErrIntTooLarge = errors.New("integer does not fit requested byte length")

var one = big.NewInt(1)

// BitSize returns the number of bits needed to represent x, excluding any
// leading zero bits. BitSize(0) is 0.
func BitSize(x *big.Int) int {
	return x.BitLen()
}

// ByteSize returns the number of bytes needed to hold x, rounded up.
// ByteSize(0) is 1.
func ByteSize(x *big.Int) int {
	if x.Sign() == 0 {
		return 1
	}
	return CeilDiv(x.BitLen(), 8)
}

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// BytesToInt interprets b as a big-endian unsigned integer. An empty slice
// yields zero.
func BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// IntToBytes encodes the non-negative integer x big-endian, left-padded
// with zeros to exactly size bytes. Fails when x needs more than size
// bytes.
func IntToBytes(x *big.Int, size int) ([]byte, error) {
	b := x.Bytes()
	if len(b) > size {
		return nil, errors.Wrapf(ErrIntTooLarge, "need %d bytes but block size is %d", len(b), size)
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out, nil
}

// IntBytes encodes x big-endian with no padding. Zero encodes to an empty
// slice.
func IntBytes(x *big.Int) []byte {
	return x.Bytes()
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

// LCM returns the least common multiple of a and b.
func LCM(a, b *big.Int) *big.Int {
	g := GCD(a, b)
	m := new(big.Int).Div(a, g)
	return m.Mul(m, b)
}

// Inverse returns x^-1 mod n. Fails with ErrNotRelativelyPrime when
// gcd(x, n) != 1.
func Inverse(x, n *big.Int) (*big.Int, error) {
	g := GCD(x, n)
	if g.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrNotRelativelyPrime, "%v and %v share divisor %v", x, n, g)
	}
	return new(big.Int).ModInverse(x, n), nil
}
