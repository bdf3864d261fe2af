package gorsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash(t *testing.T) {
	digest, err := ComputeHash(nil, "SHA-256")
	require.NoError(t, err)
	assert.Equal(t,
		mustHex(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"),
		digest)

	digest, err = ComputeHash([]byte("hello"), "MD5")
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "5d41402abc4b2a76b9719d911017c592"), digest)
}

func TestComputeHashUnknownAlgorithm(t *testing.T) {
	_, err := ComputeHash(nil, "SHA-257")
	assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)

	// Names are case-sensitive.
	_, err = ComputeHash(nil, "sha-256")
	assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)
}

func TestDigestInfoPrefixLengths(t *testing.T) {
	// Every prefix declares the total DigestInfo length in its second
	// byte; the digest length sits in the final byte.
	for name, alg := range hashRegistry {
		h := alg.newHash()
		digestLen := h.Size()

		assert.Equal(t, byte(digestLen), alg.prefix[len(alg.prefix)-1], name)
		assert.Equal(t, int(alg.prefix[1]), len(alg.prefix)-2+digestLen, name)
	}
}
