package wire

import (
	"fmt"

	"github.com/tos-network/gln/crypto"
)

// Sig is a protocol signature in its node-internal form: ASN.1 DER bytes
// with the sighash-all byte appended, ready for the script engine. Its
// wire form is the fixed 64-byte compact r||s pair; the two forms
// translate losslessly in both directions.
type Sig []byte

// NewSigFromWire validates a compact 64-byte r||s pair and converts it to
// the internal DER+sighash form.
func NewSigFromWire(compact []byte) (Sig, error) {
	der, err := crypto.CompactToDER(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return Sig(der), nil
}

// ToWire extracts the (r, s) pair and returns the 64-byte compact form.
func (s Sig) ToWire() ([crypto.CompactSigSize]byte, error) {
	compact, err := crypto.DERToCompact(s)
	if err != nil {
		return compact, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return compact, nil
}

func (r *reader) sig() (Sig, error) {
	b, err := r.bytes(crypto.CompactSigSize)
	if err != nil {
		return nil, err
	}
	return NewSigFromWire(b)
}

func (w *writer) sig(s Sig) error {
	compact, err := s.ToWire()
	if err != nil {
		return err
	}
	w.bytes(compact[:])
	return nil
}

// OptionalSig is a signature slot whose presence is decided by the
// enclosing message from the bytes remaining in the frame, never by an
// in-band flag.
type OptionalSig struct {
	Present bool
	Sig     Sig
}

// decodeOptionalSig consumes a trailing signature if the frame still
// holds exactly one; zero remaining bytes mean absent.
func decodeOptionalSig(r *reader) (OptionalSig, error) {
	switch n := r.remaining(); n {
	case 0:
		return OptionalSig{}, nil
	case crypto.CompactSigSize:
		s, err := r.sig()
		if err != nil {
			return OptionalSig{}, err
		}
		return OptionalSig{Present: true, Sig: s}, nil
	default:
		return OptionalSig{}, fmt.Errorf("%w: %d trailing bytes for optional signature", ErrAmbiguousTrailingData, n)
	}
}

func encodeOptionalSig(w *writer, s OptionalSig) error {
	if !s.Present {
		return nil
	}
	return w.sig(s.Sig)
}

func (r *reader) pubKey() (PubKey, error) {
	b, err := r.bytes(crypto.PubKeySize)
	if err != nil {
		return PubKey{}, err
	}
	if _, err := crypto.ParsePubKey(b); err != nil {
		return PubKey{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	var pk PubKey
	copy(pk[:], b)
	return pk, nil
}

func (w *writer) pubKey(pk PubKey) {
	w.bytes(pk[:])
}

func (r *reader) scalar() (Scalar, error) {
	b, err := r.bytes32()
	if err != nil {
		return Scalar{}, err
	}
	return Scalar(b), nil
}
