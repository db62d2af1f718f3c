package wire

import "errors"

var (
	// ErrMalformedLength indicates a frame shorter or longer than its
	// declared fields require.
	ErrMalformedLength = errors.New("wire: malformed frame length")

	// ErrUnknownMessageType indicates an unregistered message
	// discriminator. Decoding is all or nothing; there is no partial
	// decode for unknown types.
	ErrUnknownMessageType = errors.New("wire: unknown message type")

	// ErrUnknownAddressType indicates an unrecognized address tag byte.
	ErrUnknownAddressType = errors.New("wire: unknown address type")

	// ErrInvalidPoint indicates 33 bytes rejected by the curve check.
	ErrInvalidPoint = errors.New("wire: invalid public key point")

	// ErrInvalidSignature indicates a compact (r, s) pair rejected by
	// the signature validity check.
	ErrInvalidSignature = errors.New("wire: invalid signature")

	// ErrOversizeInput indicates a value too large for its fixed or
	// length-prefixed field.
	ErrOversizeInput = errors.New("wire: input exceeds field width")

	// ErrAmbiguousTrailingData indicates a trailing byte count that
	// neither omits nor exactly fills an optional field.
	ErrAmbiguousTrailingData = errors.New("wire: ambiguous trailing data")

	// ErrInvalidRealm indicates a per-hop payload whose realm byte is
	// not zero.
	ErrInvalidRealm = errors.New("wire: invalid realm")
)
