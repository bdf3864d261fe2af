package gorsa

import (
	"bytes"
	"crypto/subtle"
	"math/big"

	"github.com/pkg/errors"

	"github.com/sybrenstuvel/gorsa/bignum"
	"github.com/sybrenstuvel/gorsa/randnum"
)

// overhead is the number of bytes PKCS#1 v1.5 framing consumes: the two
// marker bytes, the zero separator, and at least 8 bytes of padding.
const overhead = 11

// padForEncryption builds the type-2 block 00 02 PS 00 M, where PS is at
// least 8 non-zero random bytes. Zero draws are resampled byte-wise.
func padForEncryption(message []byte, targetLength int) ([]byte, error) {
	if len(message) > targetLength-overhead {
		return nil, errors.Wrapf(ErrMessageTooLong,
			"%d bytes needed for message, but there is only space for %d",
			len(message), targetLength-overhead)
	}

	block := make([]byte, targetLength)
	block[1] = 0x02

	ps := block[2 : targetLength-len(message)-1]
	for filled := 0; filled < len(ps); {
		chunk := randnum.ReadRandomBits(8 * (len(ps) - filled))
		for _, b := range chunk {
			if b == 0 {
				continue
			}
			ps[filled] = b
			filled++
		}
	}

	copy(block[targetLength-len(message):], message)
	return block, nil
}

// padForSigning builds the type-1 block 00 01 FF..FF 00 M. The padding is
// deterministic so that verification can rebuild the exact block.
func padForSigning(message []byte, targetLength int) ([]byte, error) {
	if len(message) > targetLength-overhead {
		return nil, errors.Wrapf(ErrMessageTooLong,
			"%d bytes needed for message, but there is only space for %d",
			len(message), targetLength-overhead)
	}

	block := make([]byte, targetLength)
	block[1] = 0x01
	for i := 2; i < targetLength-len(message)-1; i++ {
		block[i] = 0xff
	}

	copy(block[targetLength-len(message):], message)
	return block, nil
}

// Encrypt encrypts message with the public key using PKCS#1 v1.5 type-2
// padding. The message can be at most Size()-11 bytes; the ciphertext is
// exactly Size() bytes. Padding is random, so encrypting the same message
// twice yields different ciphertexts.
func Encrypt(message []byte, pub *PublicKey) ([]byte, error) {
	keyLength := pub.Size()
	padded, err := padForEncryption(message, keyLength)
	if err != nil {
		return nil, err
	}

	m := bignum.BytesToInt(padded)
	c := new(big.Int).Exp(m, big.NewInt(int64(pub.E)), pub.N)

	return bignum.IntToBytes(c, keyLength)
}

// Decrypt decrypts a ciphertext produced by Encrypt. Any failure —
// ciphertext of the wrong length, bad block markers, a separator inside
// the minimum padding — yields the same ErrDecryption with no further
// detail.
func Decrypt(ciphertext []byte, priv *PrivateKey) ([]byte, error) {
	keyLength := priv.Size()

	// Length is public information, so this check may bail out early.
	// Leading zero bytes vanish when the ciphertext is treated as an
	// integer, so an over-long ciphertext could otherwise decrypt as if
	// truncated (CVE-2020-13757 in another implementation of this
	// scheme).
	if len(ciphertext) != keyLength {
		return nil, ErrDecryption
	}

	c := bignum.BytesToInt(ciphertext)
	m := priv.blindedDecrypt(c)
	cleartext, err := bignum.IntToBytes(m, keyLength)
	if err != nil {
		return nil, ErrDecryption
	}

	markerBad := subtle.ConstantTimeCompare(cleartext[:2], []byte{0x00, 0x02}) != 1

	// The separator must leave room for at least 8 padding bytes, so the
	// earliest valid position is index 10.
	sepIdx := bytes.IndexByte(cleartext[2:], 0x00)
	sepBad := sepIdx < 0 || sepIdx+2 < 10

	if markerBad || sepBad {
		return nil, ErrDecryption
	}

	return cleartext[sepIdx+3:], nil
}

// SignHash signs a precomputed digest with the private key, wrapping it
// in the DigestInfo prefix for the named hash method. This is a detached
// signature of exactly Size() bytes.
func SignHash(digest []byte, priv *PrivateKey, algorithm string) ([]byte, error) {
	alg, ok := hashRegistry[algorithm]
	if !ok {
		return nil, errors.Wrap(ErrUnknownHashAlgorithm, algorithm)
	}

	cleartext := make([]byte, 0, len(alg.prefix)+len(digest))
	cleartext = append(cleartext, alg.prefix...)
	cleartext = append(cleartext, digest...)

	keyLength := priv.Size()
	padded, err := padForSigning(cleartext, keyLength)
	if err != nil {
		return nil, err
	}

	m := bignum.BytesToInt(padded)
	s := priv.blindedDecrypt(m)

	return bignum.IntToBytes(s, keyLength)
}

// Sign hashes message with the named hash method and signs the digest.
func Sign(message []byte, priv *PrivateKey, algorithm string) ([]byte, error) {
	digest, err := ComputeHash(message, algorithm)
	if err != nil {
		return nil, err
	}
	return SignHash(digest, priv, algorithm)
}

// Verify checks signature against message and returns the name of the
// hash method recovered from the signature itself. The method is detected
// from the DigestInfo prefix in the decrypted block, never trusted from
// the caller. All failures yield the same ErrVerification.
func Verify(message, signature []byte, pub *PublicKey) (string, error) {
	keyLength := pub.Size()
	if len(signature) != keyLength {
		return "", ErrVerification
	}

	clearSig, err := rawVerify(signature, pub)
	if err != nil {
		return "", ErrVerification
	}

	methodName, err := findMethodHash(clearSig)
	if err != nil {
		return "", ErrVerification
	}

	digest, err := ComputeHash(message, methodName)
	if err != nil {
		return "", ErrVerification
	}

	// Rebuild the block we would have signed and require an exact match.
	// This rejects malformed padding, misplaced prefixes and wrong
	// digests in one comparison.
	cleartext := append(append([]byte{}, hashRegistry[methodName].prefix...), digest...)
	expected, err := padForSigning(cleartext, keyLength)
	if err != nil {
		return "", ErrVerification
	}

	if subtle.ConstantTimeCompare(expected, clearSig) != 1 {
		return "", ErrVerification
	}

	return methodName, nil
}

// FindSignatureHash returns the hash method name detected from the
// signature, without verifying the message. Use Verify when the message
// should be checked as well.
func FindSignatureHash(signature []byte, pub *PublicKey) (string, error) {
	clearSig, err := rawVerify(signature, pub)
	if err != nil {
		return "", ErrVerification
	}
	return findMethodHash(clearSig)
}

// rawVerify applies the public-key operation to a signature and returns
// the padded block.
func rawVerify(signature []byte, pub *PublicKey) ([]byte, error) {
	s := bignum.BytesToInt(signature)
	m := new(big.Int).Exp(s, big.NewInt(int64(pub.E)), pub.N)
	return bignum.IntToBytes(m, pub.Size())
}
