package gorsa

import (
	"github.com/pkg/errors"

	"github.com/sybrenstuvel/gorsa/prime"
)

var (
	// ErrDecryption is returned whenever decryption fails. The message is
	// deliberately generic: distinguishing the failing check would give a
	// padding oracle to attackers.
	ErrDecryption = errors.New("decryption failed")

	// ErrVerification is returned whenever signature verification fails,
	// with the same single generic message regardless of the check that
	// tripped.
	ErrVerification = errors.New("verification failed")

	// ErrMessageTooLong is returned when a message does not fit in the
	// padded block for the key size.
	ErrMessageTooLong = errors.New("message too long for key size")

	// ErrUnknownHashAlgorithm is returned when signing with a hash method
	// outside the supported set. Names are case-sensitive.
	ErrUnknownHashAlgorithm = errors.New("unknown hash algorithm")

	// ErrKeySizeTooSmall is returned by NewKeys for key sizes the scheme
	// does not define.
	ErrKeySizeTooSmall = errors.New("key size too small")

	// ErrUnknownFormat is returned when a key format is neither "PEM" nor
	// "DER".
	ErrUnknownFormat = errors.New("unknown key format")

	// ErrMalformedKey is the cause of all key parsing failures.
	ErrMalformedKey = errors.New("malformed key")

	// ErrKeyGenCancelled is the cause of NewKeys failures due to a
	// cancelled or expired context.
	ErrKeyGenCancelled = prime.ErrCancelled
)
