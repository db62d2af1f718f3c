package wire

import (
	"fmt"

	"github.com/tos-network/gln/params"
)

// PerHopPayload is the fixed 33-byte descriptor a sender embeds for each
// relay of a multi-hop payment: realm (1, must be zero), short channel id
// (8), amount to forward in millisatoshi (8), outgoing timelock (4) and
// 12 bytes of padding. Onion packet construction and peeling happen
// elsewhere; only the descriptor shape lives here.
type PerHopPayload struct {
	ShortChannelID ShortChannelID
	AmtToForward   MilliSatoshi
	OutgoingCltv   uint32
}

// DecodePerHopPayload parses exactly one 33-byte hop descriptor.
func DecodePerHopPayload(b []byte) (PerHopPayload, error) {
	var p PerHopPayload
	if len(b) != params.HopPayloadSize {
		return p, fmt.Errorf("%w: hop payload is %d bytes, want %d", ErrMalformedLength, len(b), params.HopPayloadSize)
	}
	r := newReader(b)
	realm, _ := r.u8()
	if realm != 0 {
		return p, fmt.Errorf("%w: %d", ErrInvalidRealm, realm)
	}
	scid, _ := r.u64()
	amt, _ := r.u64()
	cltv, _ := r.u32()
	p.ShortChannelID = ShortChannelID(scid)
	p.AmtToForward = MilliSatoshi(amt)
	p.OutgoingCltv = cltv
	return p, nil
}

// EncodePerHopPayload writes the 33-byte descriptor with a zero realm and
// zero padding.
func EncodePerHopPayload(p PerHopPayload) []byte {
	w := newWriter()
	w.u8(0)
	w.u64(uint64(p.ShortChannelID))
	w.u64(uint64(p.AmtToForward))
	w.u32(p.OutgoingCltv)
	w.bytes(make([]byte, 12))
	return w.finish()
}
