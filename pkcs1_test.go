package gorsa

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sybrenstuvel/gorsa/bignum"
)

func TestDecryptFixedCiphertext(t *testing.T) {
	_, priv := testKeyPair(t)

	message, err := Decrypt(mustHex(t, testCiphertextHex), priv)
	require.NoError(t, err)
	assert.Equal(t, testMessage, message)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pub, priv := testKeyPair(t)

	messages := [][]byte{
		[]byte("hello"),
		{0x00, 0x00, 0x00, 0x00, 0x01},
		{},
		bytes.Repeat([]byte{0xa5}, pub.Size()-11), // largest message that fits
	}
	for _, message := range messages {
		ciphertext, err := Encrypt(message, pub)
		require.NoError(t, err)
		assert.Len(t, ciphertext, pub.Size())

		decrypted, err := Decrypt(ciphertext, priv)
		require.NoError(t, err)
		assert.Equal(t, message, decrypted)
	}
}

func TestEncryptMessageTooLong(t *testing.T) {
	pub, _ := testKeyPair(t)

	_, err := Encrypt(bytes.Repeat([]byte{1}, pub.Size()-10), pub)
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestEncryptRandomizedPadding(t *testing.T) {
	pub, priv := testKeyPair(t)

	c1, err := Encrypt(testMessage, pub)
	require.NoError(t, err)
	c2, err := Encrypt(testMessage, pub)
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2)

	for _, c := range [][]byte{c1, c2} {
		m, err := Decrypt(c, priv)
		require.NoError(t, err)
		assert.Equal(t, testMessage, m)
	}
}

func TestDecryptWrongLength(t *testing.T) {
	pub, priv := testKeyPair(t)

	ciphertext, err := Encrypt(testMessage, pub)
	require.NoError(t, err)

	_, err = Decrypt(ciphertext[:pub.Size()-1], priv)
	assert.ErrorIs(t, err, ErrDecryption)

	_, err = Decrypt(append(ciphertext, 0x00), priv)
	assert.ErrorIs(t, err, ErrDecryption)
}

// rawEncrypt applies the bare public-key operation to a handcrafted
// padded block, bypassing the padding checks on the way in.
func rawEncrypt(t *testing.T, block []byte, pub *PublicKey) []byte {
	t.Helper()
	m := bignum.BytesToInt(block)
	c := new(big.Int).Exp(m, big.NewInt(int64(pub.E)), pub.N)
	out, err := bignum.IntToBytes(c, pub.Size())
	require.NoError(t, err)
	return out
}

func TestDecryptShortPaddingRejected(t *testing.T) {
	pub, priv := testKeyPair(t)
	k := pub.Size()

	// Only 7 bytes of padding; the minimum is 8.
	block := make([]byte, k)
	block[1] = 0x02
	for i := 2; i < 9; i++ {
		block[i] = 0xcc
	}
	copy(block[10:], bytes.Repeat([]byte{0x42}, k-10))

	_, err := Decrypt(rawEncrypt(t, block, pub), priv)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestDecryptBadMarkerRejected(t *testing.T) {
	pub, priv := testKeyPair(t)
	k := pub.Size()

	// Type-1 marker on an encryption block.
	block := make([]byte, k)
	block[1] = 0x01
	for i := 2; i < k-2; i++ {
		block[i] = 0xcc
	}

	_, err := Decrypt(rawEncrypt(t, block, pub), priv)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestDecryptMissingSeparatorRejected(t *testing.T) {
	pub, priv := testKeyPair(t)
	k := pub.Size()

	block := make([]byte, k)
	block[1] = 0x02
	for i := 2; i < k; i++ {
		block[i] = 0xcc
	}

	_, err := Decrypt(rawEncrypt(t, block, pub), priv)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestSignFixedVector(t *testing.T) {
	_, priv := testKeyPair(t)

	signature, err := Sign(testMessage, priv, "SHA-256")
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, testSignatureHex), signature)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv := testKeyPair(t)

	// Algorithms whose DigestInfo fits a 512-bit key; the larger digests
	// are covered by TestSignVerifyAllAlgorithms.
	algorithms := []string{"MD5", "SHA-1", "SHA-224", "SHA-256", "SHA3-256"}
	for _, algorithm := range algorithms {
		signature, err := Sign(testMessage, priv, algorithm)
		require.NoError(t, err, algorithm)
		assert.Len(t, signature, pub.Size())

		recovered, err := Verify(testMessage, signature, pub)
		require.NoError(t, err, algorithm)
		assert.Equal(t, algorithm, recovered)
	}
}

func TestSignDigestTooLongForKey(t *testing.T) {
	// SHA-512's DigestInfo plus digest needs 83 bytes; a 512-bit key
	// only has room for 53.
	_, priv := testKeyPair(t)

	_, err := Sign(testMessage, priv, "SHA-512")
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestVerifyTamperedMessage(t *testing.T) {
	pub, priv := testKeyPair(t)

	signature, err := Sign([]byte("attack at dawn"), priv, "SHA-256")
	require.NoError(t, err)

	_, err = Verify([]byte("attack at noon"), signature, pub)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestVerifyTamperedSignature(t *testing.T) {
	pub, priv := testKeyPair(t)

	signature, err := Sign(testMessage, priv, "SHA-256")
	require.NoError(t, err)
	signature[4] ^= 0x40

	_, err = Verify(testMessage, signature, pub)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestVerifyWrongLength(t *testing.T) {
	pub, _ := testKeyPair(t)

	_, err := Verify(testMessage, mustHex(t, testSignatureHex)[1:], pub)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestSignUnknownAlgorithm(t *testing.T) {
	_, priv := testKeyPair(t)

	_, err := Sign(testMessage, priv, "sha-256")
	assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)

	_, err = SignHash(make([]byte, 32), priv, "SHA-257")
	assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)
}

func TestFindSignatureHash(t *testing.T) {
	pub, _ := testKeyPair(t)

	name, err := FindSignatureHash(mustHex(t, testSignatureHex), pub)
	require.NoError(t, err)
	assert.Equal(t, "SHA-256", name)
}

func TestSignHashDetached(t *testing.T) {
	pub, priv := testKeyPair(t)

	digest, err := ComputeHash(testMessage, "SHA-256")
	require.NoError(t, err)

	signature, err := SignHash(digest, priv, "SHA-256")
	require.NoError(t, err)

	recovered, err := Verify(testMessage, signature, pub)
	require.NoError(t, err)
	assert.Equal(t, "SHA-256", recovered)
}
