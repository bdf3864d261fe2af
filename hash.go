package gorsa

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// hashAlgorithm couples a digest constructor with the DER-encoded
// DigestInfo prefix (AlgorithmIdentifier plus OCTET STRING header) that,
// prepended to the digest, forms the value signed under PKCS#1 v1.5.
// Prefix bytes per RFC 8017 section 9.2 note 1.
type hashAlgorithm struct {
	newHash func() hash.Hash
	prefix  []byte
}

// hashRegistry is the closed set of supported hash methods. Names are
// case-sensitive. MD5 and SHA-1 are cryptographically broken; they remain
// both signable and verifiable for backward compatibility; avoid them for
// new signatures.
var hashRegistry = map[string]hashAlgorithm{
	"MD5": {
		newHash: md5.New,
		prefix: []byte{
			0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86,
			0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10,
		},
	},
	"SHA-1": {
		newHash: sha1.New,
		prefix: []byte{
			0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02,
			0x1a, 0x05, 0x00, 0x04, 0x14,
		},
	},
	"SHA-224": {
		newHash: sha256.New224,
		prefix: []byte{
			0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x04, 0x05, 0x00, 0x04, 0x1c,
		},
	},
	"SHA-256": {
		newHash: sha256.New,
		prefix: []byte{
			0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
		},
	},
	"SHA-384": {
		newHash: sha512.New384,
		prefix: []byte{
			0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30,
		},
	},
	"SHA-512": {
		newHash: sha512.New,
		prefix: []byte{
			0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40,
		},
	},
	"SHA3-256": {
		newHash: sha3.New256,
		prefix: []byte{
			0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x08, 0x05, 0x00, 0x04, 0x20,
		},
	},
	"SHA3-384": {
		newHash: sha3.New384,
		prefix: []byte{
			0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x09, 0x05, 0x00, 0x04, 0x30,
		},
	},
	"SHA3-512": {
		newHash: sha3.New512,
		prefix: []byte{
			0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01,
			0x65, 0x03, 0x04, 0x02, 0x0a, 0x05, 0x00, 0x04, 0x40,
		},
	},
}

// ComputeHash returns the digest of message under the named hash method.
func ComputeHash(message []byte, algorithm string) ([]byte, error) {
	alg, ok := hashRegistry[algorithm]
	if !ok {
		return nil, errors.Wrap(ErrUnknownHashAlgorithm, algorithm)
	}
	h := alg.newHash()
	h.Write(message)
	return h.Sum(nil), nil
}

// findMethodHash recovers the hash method from a decrypted signature
// block by locating a known DigestInfo prefix. The method is never taken
// from the caller.
func findMethodHash(clearSig []byte) (string, error) {
	for name, alg := range hashRegistry {
		if bytes.Contains(clearSig, alg.prefix) {
			return name, nil
		}
	}
	return "", ErrVerification
}
