package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// reader walks a single message frame. The frame boundary is supplied by
// the transport, so "bytes remaining" is authoritative: fixed-width reads
// past the end fail with ErrMalformedLength.
type reader struct {
	buf []byte
	off int
}

func newReader(frame []byte) *reader {
	return &reader{buf: frame}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

// bytes returns the next n bytes of the frame. The returned slice aliases
// the frame; callers that retain it must copy.
func (r *reader) bytes(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedLength, n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (byte, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *reader) bytes32() ([32]byte, error) {
	var out [32]byte
	b, err := r.bytes(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// varBytes reads a 16-bit big-endian length prefix followed by that many
// bytes, returning a copy safe to retain.
func (r *reader) varBytes() ([]byte, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// rest consumes every byte left in the frame, returning a copy.
func (r *reader) rest() []byte {
	b := r.buf[r.off:]
	r.off = len(r.buf)
	return append([]byte(nil), b...)
}

// writer accumulates an encoded frame. Fixed-width puts cannot fail; only
// length-prefixed or validated fields return errors.
type writer struct {
	buf bytes.Buffer
}

func newWriter() *writer {
	return new(writer)
}

func (w *writer) bytes(b []byte) {
	w.buf.Write(b)
}

func (w *writer) u8(v byte) {
	w.buf.WriteByte(v)
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// varBytes writes a 16-bit length prefix followed by b.
func (w *writer) varBytes(b []byte) error {
	if len(b) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes in a 16-bit length-prefixed field", ErrOversizeInput, len(b))
	}
	w.u16(uint16(len(b)))
	w.buf.Write(b)
	return nil
}

func (w *writer) finish() []byte {
	return w.buf.Bytes()
}

// readZeroPadded reads an n-byte field and strips the zero-byte padding
// suffix. Trailing zero bytes are never treated as content.
func readZeroPadded(r *reader, n int) (string, error) {
	b, err := r.bytes(n)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(b, "\x00")), nil
}

// writeZeroPadded writes the UTF-8 bytes of s followed by zero bytes up
// to the field width n.
func writeZeroPadded(w *writer, s string, n int) error {
	if len(s) > n {
		return fmt.Errorf("%w: %d byte string in %d byte field", ErrOversizeInput, len(s), n)
	}
	w.bytes([]byte(s))
	w.bytes(make([]byte, n-len(s)))
	return nil
}
