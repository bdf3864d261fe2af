package gorsa

import (
	"encoding/asn1"
	"encoding/pem"
	"math/big"

	"github.com/pkg/errors"
)

// PEM block labels for PKCS#1 key material. These match OpenSSL's
// "traditional" format, not the SubjectPublicKeyInfo/PKCS#8 wrappers.
const (
	publicKeyPEMLabel  = "RSA PUBLIC KEY"
	privateKeyPEMLabel = "RSA PRIVATE KEY"
)

// Supported serialization formats.
const (
	FormatPEM = "PEM"
	FormatDER = "DER"
)

// pkcs1PublicKey is the ASN.1 shape of RSAPublicKey:
//
//	RSAPublicKey ::= SEQUENCE {
//	    modulus           INTEGER,
//	    publicExponent    INTEGER
//	}
type pkcs1PublicKey struct {
	N *big.Int
	E int
}

// pkcs1PrivateKey is the ASN.1 shape of a two-prime RSAPrivateKey:
//
//	RSAPrivateKey ::= SEQUENCE {
//	    version           INTEGER (0),
//	    modulus           INTEGER,
//	    publicExponent    INTEGER,
//	    privateExponent   INTEGER,
//	    prime1            INTEGER,
//	    prime2            INTEGER,
//	    exponent1         INTEGER,
//	    exponent2         INTEGER,
//	    coefficient       INTEGER
//	}
type pkcs1PrivateKey struct {
	Version int
	N       *big.Int
	E       int
	D       *big.Int
	P       *big.Int
	Q       *big.Int
	Exp1    *big.Int
	Exp2    *big.Int
	Coef    *big.Int
}

// SavePKCS1 encodes the public key as PKCS#1, in "PEM" or "DER" format.
func (k *PublicKey) SavePKCS1(format string) ([]byte, error) {
	der, err := asn1.Marshal(pkcs1PublicKey{N: k.N, E: k.E})
	if err != nil {
		return nil, errors.Wrap(err, "could not encode as DER")
	}
	return applyFormat(der, publicKeyPEMLabel, format)
}

// SavePKCS1 encodes the private key as PKCS#1, in "PEM" or "DER" format.
func (k *PrivateKey) SavePKCS1(format string) ([]byte, error) {
	der, err := asn1.Marshal(pkcs1PrivateKey{
		N:    k.N,
		E:    k.E,
		D:    k.D,
		P:    k.P,
		Q:    k.Q,
		Exp1: k.Exp1,
		Exp2: k.Exp2,
		Coef: k.Coef,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not encode as DER")
	}
	return applyFormat(der, privateKeyPEMLabel, format)
}

func applyFormat(der []byte, label, format string) ([]byte, error) {
	switch format {
	case FormatDER:
		return der, nil
	case FormatPEM:
		return pem.EncodeToMemory(&pem.Block{Type: label, Bytes: der}), nil
	}
	return nil, errors.Wrap(ErrUnknownFormat, format)
}

// LoadPublicKeyPKCS1 decodes a PKCS#1 public key from "PEM" or "DER"
// data.
func LoadPublicKeyPKCS1(data []byte, format string) (*PublicKey, error) {
	der, err := stripFormat(data, publicKeyPEMLabel, format)
	if err != nil {
		return nil, err
	}
	return parsePublicKeyDER(der)
}

// LoadPrivateKeyPKCS1 decodes a PKCS#1 private key from "PEM" or "DER"
// data.
func LoadPrivateKeyPKCS1(data []byte, format string) (*PrivateKey, error) {
	der, err := stripFormat(data, privateKeyPEMLabel, format)
	if err != nil {
		return nil, err
	}
	return parsePrivateKeyDER(der)
}

// stripFormat returns the DER payload, unwrapping PEM armor when asked
// for. pem.Decode tolerates surrounding junk, trailing whitespace and
// CRLF line endings, and only yields blocks whose BEGIN and END labels
// match; the block label itself is checked here.
func stripFormat(data []byte, label, format string) ([]byte, error) {
	switch format {
	case FormatDER:
		return data, nil
	case FormatPEM:
		block, _ := pem.Decode(data)
		if block == nil {
			return nil, errors.Wrap(ErrMalformedKey, "could not decode PEM block")
		}
		if block.Type != label {
			return nil, errors.Wrapf(ErrMalformedKey, "expected %q PEM block, got %q", label, block.Type)
		}
		return block.Bytes, nil
	}
	return nil, errors.Wrap(ErrUnknownFormat, format)
}

func parsePublicKeyDER(der []byte) (*PublicKey, error) {
	p := new(pkcs1PublicKey)
	rest, err := asn1.Unmarshal(der, p)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedKey, err.Error())
	}
	if len(rest) != 0 {
		return nil, errors.Wrap(ErrMalformedKey, "unexpected trailing data")
	}
	if p.N.Sign() <= 0 || p.E <= 0 {
		return nil, errors.Wrap(ErrMalformedKey, "key field out of range")
	}
	return &PublicKey{N: p.N, E: p.E}, nil
}

func parsePrivateKeyDER(der []byte) (*PrivateKey, error) {
	p := new(pkcs1PrivateKey)
	rest, err := asn1.Unmarshal(der, p)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedKey, err.Error())
	}
	if len(rest) != 0 {
		return nil, errors.Wrap(ErrMalformedKey, "unexpected trailing data")
	}
	if p.Version != 0 {
		return nil, errors.Wrapf(ErrMalformedKey, "unsupported version %d", p.Version)
	}
	for _, field := range []*big.Int{p.N, p.D, p.P, p.Q, p.Exp1, p.Exp2, p.Coef} {
		if field.Sign() <= 0 {
			return nil, errors.Wrap(ErrMalformedKey, "key field out of range")
		}
	}
	if p.E <= 0 {
		return nil, errors.Wrap(ErrMalformedKey, "key field out of range")
	}

	// CRT parameters are rederived from d, p and q; stored values that
	// disagree are discarded in favor of the recomputed ones.
	return NewPrivateKey(p.N, p.E, p.D, p.P, p.Q), nil
}
