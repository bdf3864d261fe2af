// Package randnum draws cryptographically secure random integers.
//
// All randomness in the library flows through this package, which in turn
// reads from crypto/rand. A failing entropy source panics: a process whose
// CSPRNG is broken must not continue producing key material.
package randnum

import (
	"crypto/rand"
	"math/big"

	"github.com/sybrenstuvel/gorsa/bignum"
)

// read returns n bytes of cryptographic random. Panics if the read fails.
func read(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// ReadRandomBits returns ceil(nbits/8) random bytes with the excess top
// bits cleared, so the value fits in nbits bits.
func ReadRandomBits(nbits int) []byte {
	nbytes := bignum.CeilDiv(nbits, 8)
	b := read(nbytes)
	if excess := uint(8*nbytes - nbits); excess > 0 {
		b[0] &= 0xff >> excess
	}
	return b
}

// ReadRandomInt returns a uniform random integer in [0, n), by rejection
// sampling draws of BitSize(n) bits.
func ReadRandomInt(n *big.Int) *big.Int {
	bits := bignum.BitSize(n)
	for {
		x := bignum.BytesToInt(ReadRandomBits(bits))
		if x.Cmp(n) < 0 {
			return x
		}
	}
}

// ReadRandomOddInt returns a random odd integer of exactly nbits bits: the
// top bit is set to pin the width and the bottom bit is set to make it
// odd.
func ReadRandomOddInt(nbits int) *big.Int {
	x := bignum.BytesToInt(ReadRandomBits(nbits))
	x.SetBit(x, nbits-1, 1)
	x.SetBit(x, 0, 1)
	return x
}
