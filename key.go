package gorsa

import (
	"math/big"

	"github.com/sybrenstuvel/gorsa/bignum"
	"github.com/sybrenstuvel/gorsa/prime"
	"github.com/sybrenstuvel/gorsa/randnum"
)

// PublicKey is an RSA public key: the semiprime modulus n and the public
// exponent e. Keys are immutable after construction and safe to share
// between goroutines.
type PublicKey struct {
	N *big.Int
	E int
}

// Size returns the modulus length in bytes. Padded blocks, ciphertexts
// and signatures under this key are exactly this long.
func (k *PublicKey) Size() int {
	return bignum.CeilDiv(k.N.BitLen(), 8)
}

// Equal reports whether two public keys are the same key.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && k.E == other.E && k.N.Cmp(other.N) == 0
}

// PrivateKey is an RSA private key. Alongside the public components it
// holds the private exponent d, the prime factors p > q, and the CRT
// parameters Exp1 = d mod (p-1), Exp2 = d mod (q-1) and Coef = q^-1 mod p
// used to speed up decryption. Immutable after construction.
type PrivateKey struct {
	PublicKey
	D    *big.Int
	P    *big.Int
	Q    *big.Int
	Exp1 *big.Int
	Exp2 *big.Int
	Coef *big.Int
}

// NewPrivateKey assembles a private key from its core components,
// deriving the CRT parameters. The primes are swapped if needed so that
// p > q.
func NewPrivateKey(n *big.Int, e int, d, p, q *big.Int) *PrivateKey {
	if p.Cmp(q) < 0 {
		p, q = q, p
	}

	pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
	qMinusOne := new(big.Int).Sub(q, big.NewInt(1))

	coef := new(big.Int).ModInverse(q, p)

	return &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		P:         p,
		Q:         q,
		Exp1:      new(big.Int).Mod(d, pMinusOne),
		Exp2:      new(big.Int).Mod(d, qMinusOne),
		Coef:      coef,
	}
}

// Equal reports whether two private keys are the same key.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	return other != nil &&
		k.PublicKey.Equal(&other.PublicKey) &&
		k.D.Cmp(other.D) == 0 &&
		k.P.Cmp(other.P) == 0 &&
		k.Q.Cmp(other.Q) == 0 &&
		k.Exp1.Cmp(other.Exp1) == 0 &&
		k.Exp2.Cmp(other.Exp2) == 0 &&
		k.Coef.Cmp(other.Coef) == 0
}

// blindingFactor draws a random value coprime to n, along with its
// inverse mod n.
func (k *PrivateKey) blindingFactor() (r, rInv *big.Int) {
	for {
		r = randnum.ReadRandomInt(k.N)
		if r.Sign() == 0 || !prime.AreRelativelyPrime(r, k.N) {
			continue
		}
		return r, new(big.Int).ModInverse(r, k.N)
	}
}

// blindedDecrypt computes c^d mod n through the CRT representation,
// blinding the input with a fresh random factor so the operation's timing
// does not correlate with the ciphertext. A fresh factor per call keeps
// the key immutable; the cost is one modular inverse per decryption.
func (k *PrivateKey) blindedDecrypt(c *big.Int) *big.Int {
	e := big.NewInt(int64(k.E))

	r, rInv := k.blindingFactor()
	blinded := new(big.Int).Exp(r, e, k.N)
	blinded.Mul(blinded, c).Mod(blinded, k.N)

	// m = m2 + q*((m1 - m2) * coef mod p)
	m1 := new(big.Int).Exp(blinded, k.Exp1, k.P)
	m2 := new(big.Int).Exp(blinded, k.Exp2, k.Q)
	h := new(big.Int).Sub(m1, m2)
	h.Mul(h, k.Coef).Mod(h, k.P)
	m := h.Mul(h, k.Q).Add(h, m2)

	return m.Mul(m, rInv).Mod(m, k.N)
}
