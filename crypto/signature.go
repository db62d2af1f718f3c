// Package crypto holds the secp256k1 helpers the wire codecs delegate to:
// compressed point parsing and the translation between the 64-byte compact
// signature form used on the wire and the DER+sighash form used internally.
package crypto

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	// CompactSigSize is the wire length of an (r, s) signature pair:
	// two 32-byte big-endian integers, no recovery id.
	CompactSigSize = 64

	// PubKeySize is the length of a SEC1 compressed point.
	PubKeySize = 33

	// SigHashAll is the signature hash type byte appended to every
	// protocol signature in its internal DER form.
	SigHashAll = byte(0x01)
)

var (
	// ErrInvalidPoint indicates bytes that do not parse as a point on
	// the secp256k1 curve.
	ErrInvalidPoint = errors.New("crypto: invalid curve point")

	// ErrInvalidSignature indicates an (r, s) pair outside the valid
	// scalar range, or DER bytes that do not parse.
	ErrInvalidSignature = errors.New("crypto: invalid signature")
)

// curveN is the order of the secp256k1 group.
var curveN = btcec.S256().Params().N

type ecdsaASN1Signature struct {
	R, S *big.Int
}

// ParsePubKey parses a SEC1 compressed point, rejecting anything not on
// the curve.
func ParsePubKey(b []byte) (*btcec.PublicKey, error) {
	if len(b) != PubKeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPoint, len(b))
	}
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return pub, nil
}

func validScalar(v *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(curveN) < 0
}

// CompactToDER converts a 64-byte compact r||s signature into the internal
// form: an ASN.1 DER SEQUENCE{INTEGER r, INTEGER s} with the sighash-all
// byte appended. The (r, s) pair must lie in [1, N-1].
func CompactToDER(compact []byte) ([]byte, error) {
	if len(compact) != CompactSigSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSignature, len(compact))
	}
	r := new(big.Int).SetBytes(compact[:32])
	s := new(big.Int).SetBytes(compact[32:])
	if !validScalar(r) || !validScalar(s) {
		return nil, fmt.Errorf("%w: r/s out of range", ErrInvalidSignature)
	}
	der, err := asn1.Marshal(ecdsaASN1Signature{R: r, S: s})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return append(der, SigHashAll), nil
}

// DERToCompact extracts the (r, s) pair from an internal DER+sighash
// signature and returns the 64-byte compact wire form. It is the exact
// inverse of CompactToDER.
func DERToCompact(sig []byte) ([CompactSigSize]byte, error) {
	var out [CompactSigSize]byte
	if len(sig) < 2 || sig[len(sig)-1] != SigHashAll {
		return out, fmt.Errorf("%w: missing sighash byte", ErrInvalidSignature)
	}
	var parsed ecdsaASN1Signature
	rest, err := asn1.Unmarshal(sig[:len(sig)-1], &parsed)
	if err != nil || len(rest) != 0 {
		return out, fmt.Errorf("%w: malformed DER", ErrInvalidSignature)
	}
	if !validScalar(parsed.R) || !validScalar(parsed.S) {
		return out, fmt.Errorf("%w: r/s out of range", ErrInvalidSignature)
	}
	rb := parsed.R.Bytes()
	sb := parsed.S.Bytes()
	if len(rb) > 32 || len(sb) > 32 {
		return out, fmt.Errorf("%w: r/s too wide", ErrInvalidSignature)
	}
	copy(out[32-len(rb):32], rb)
	copy(out[64-len(sb):64], sb)
	return out, nil
}
