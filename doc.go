// Package gorsa implements the RSA public-key cryptosystem as described
// in PKCS#1 v1.5: key generation, encryption and decryption with type-2
// padding, signature generation and verification over DigestInfo-wrapped
// hashes, and PKCS#1 DER/PEM key serialization.
//
// The implementation is not constant time. Modular exponentiation runs on
// math/big, whose timing depends on operand values; decryption applies
// RSA blinding to mask the private exponent, and padding checks use
// crypto/subtle, but callers needing full timing-attack resistance should
// use crypto/rsa instead.
package gorsa
