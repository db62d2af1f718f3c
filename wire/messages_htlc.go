package wire

import (
	"fmt"

	"github.com/tos-network/gln/params"
)

func init() {
	registerMessage(MsgUpdateAddHTLC, func() Message { return new(UpdateAddHTLC) })
	registerMessage(MsgUpdateFulfillHTLC, func() Message { return new(UpdateFulfillHTLC) })
	registerMessage(MsgUpdateFailHTLC, func() Message { return new(UpdateFailHTLC) })
	registerMessage(MsgCommitSig, func() Message { return new(CommitSig) })
	registerMessage(MsgRevokeAndAck, func() Message { return new(RevokeAndAck) })
	registerMessage(MsgUpdateFee, func() Message { return new(UpdateFee) })
	registerMessage(MsgUpdateFailMalformedHTLC, func() Message { return new(UpdateFailMalformedHTLC) })
	registerMessage(MsgChannelReestablish, func() Message { return new(ChannelReestablish) })
}

// OnionPacket is the fixed-size encrypted routing packet forwarded with
// every offered HTLC. Its construction and peeling are external; the
// codec treats it as opaque bytes.
type OnionPacket [params.OnionPacketSize]byte

// UpdateAddHTLC offers a new HTLC on the channel.
type UpdateAddHTLC struct {
	ChannelID   ChannelID
	ID          uint64
	AmountMsat  MilliSatoshi
	PaymentHash Hash
	CltvExpiry  uint32
	OnionPacket OnionPacket
}

func (m *UpdateAddHTLC) MsgType() MessageType { return MsgUpdateAddHTLC }

func (m *UpdateAddHTLC) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.ID, err = r.u64(); err != nil {
		return err
	}
	v, err := r.u64()
	if err != nil {
		return err
	}
	m.AmountMsat = MilliSatoshi(v)
	if b, err = r.bytes32(); err != nil {
		return err
	}
	m.PaymentHash = Hash(b)
	if m.CltvExpiry, err = r.u32(); err != nil {
		return err
	}
	pkt, err := r.bytes(params.OnionPacketSize)
	if err != nil {
		return err
	}
	copy(m.OnionPacket[:], pkt)
	return nil
}

func (m *UpdateAddHTLC) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(m.ID)
	w.u64(uint64(m.AmountMsat))
	w.bytes(m.PaymentHash[:])
	w.u32(m.CltvExpiry)
	w.bytes(m.OnionPacket[:])
	return nil
}

// UpdateFulfillHTLC settles an HTLC by revealing its preimage.
type UpdateFulfillHTLC struct {
	ChannelID       ChannelID
	ID              uint64
	PaymentPreimage Hash
}

func (m *UpdateFulfillHTLC) MsgType() MessageType { return MsgUpdateFulfillHTLC }

func (m *UpdateFulfillHTLC) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.ID, err = r.u64(); err != nil {
		return err
	}
	if b, err = r.bytes32(); err != nil {
		return err
	}
	m.PaymentPreimage = Hash(b)
	return nil
}

func (m *UpdateFulfillHTLC) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(m.ID)
	w.bytes(m.PaymentPreimage[:])
	return nil
}

// UpdateFailHTLC removes an HTLC with an encrypted failure reason routed
// back to the payer.
type UpdateFailHTLC struct {
	ChannelID ChannelID
	ID        uint64
	Reason    []byte
}

func (m *UpdateFailHTLC) MsgType() MessageType { return MsgUpdateFailHTLC }

func (m *UpdateFailHTLC) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.ID, err = r.u64(); err != nil {
		return err
	}
	m.Reason, err = r.varBytes()
	return err
}

func (m *UpdateFailHTLC) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(m.ID)
	return w.varBytes(m.Reason)
}

// CommitSig signs the remote commitment transaction plus one signature
// per offered HTLC, in output order.
type CommitSig struct {
	ChannelID      ChannelID
	Signature      Sig
	HtlcSignatures []Sig
}

func (m *CommitSig) MsgType() MessageType { return MsgCommitSig }

func (m *CommitSig) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.Signature, err = r.sig(); err != nil {
		return err
	}
	n, err := r.u16()
	if err != nil {
		return err
	}
	if n > 0 {
		m.HtlcSignatures = make([]Sig, 0, n)
		for i := uint16(0); i < n; i++ {
			s, err := r.sig()
			if err != nil {
				return err
			}
			m.HtlcSignatures = append(m.HtlcSignatures, s)
		}
	}
	return nil
}

func (m *CommitSig) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	if err := w.sig(m.Signature); err != nil {
		return err
	}
	if len(m.HtlcSignatures) > 0xffff {
		return fmt.Errorf("%w: %d htlc signatures", ErrOversizeInput, len(m.HtlcSignatures))
	}
	w.u16(uint16(len(m.HtlcSignatures)))
	for _, s := range m.HtlcSignatures {
		if err := w.sig(s); err != nil {
			return err
		}
	}
	return nil
}

// RevokeAndAck revokes the previous commitment by revealing its secret
// and commits to the next point.
type RevokeAndAck struct {
	ChannelID              ChannelID
	PerCommitmentSecret    Scalar
	NextPerCommitmentPoint PubKey
}

func (m *RevokeAndAck) MsgType() MessageType { return MsgRevokeAndAck }

func (m *RevokeAndAck) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.PerCommitmentSecret, err = r.scalar(); err != nil {
		return err
	}
	m.NextPerCommitmentPoint, err = r.pubKey()
	return err
}

func (m *RevokeAndAck) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.bytes(m.PerCommitmentSecret[:])
	w.pubKey(m.NextPerCommitmentPoint)
	return nil
}

// UpdateFee proposes a new commitment feerate.
type UpdateFee struct {
	ChannelID    ChannelID
	FeeratePerKw uint32
}

func (m *UpdateFee) MsgType() MessageType { return MsgUpdateFee }

func (m *UpdateFee) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	m.FeeratePerKw, err = r.u32()
	return err
}

func (m *UpdateFee) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u32(m.FeeratePerKw)
	return nil
}

// UpdateFailMalformedHTLC removes an HTLC whose onion could not be
// parsed, proving it with the onion hash.
type UpdateFailMalformedHTLC struct {
	ChannelID   ChannelID
	ID          uint64
	ShaOfOnion  Hash
	FailureCode uint16
}

func (m *UpdateFailMalformedHTLC) MsgType() MessageType { return MsgUpdateFailMalformedHTLC }

func (m *UpdateFailMalformedHTLC) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.ID, err = r.u64(); err != nil {
		return err
	}
	if b, err = r.bytes32(); err != nil {
		return err
	}
	m.ShaOfOnion = Hash(b)
	m.FailureCode, err = r.u16()
	return err
}

func (m *UpdateFailMalformedHTLC) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(m.ID)
	w.bytes(m.ShaOfOnion[:])
	w.u16(m.FailureCode)
	return nil
}

// ChannelReestablish resynchronizes commitment state after a reconnect.
type ChannelReestablish struct {
	ChannelID                  ChannelID
	NextLocalCommitmentNumber  uint64
	NextRemoteRevocationNumber uint64
}

func (m *ChannelReestablish) MsgType() MessageType { return MsgChannelReestablish }

func (m *ChannelReestablish) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.NextLocalCommitmentNumber, err = r.u64(); err != nil {
		return err
	}
	m.NextRemoteRevocationNumber, err = r.u64()
	return err
}

func (m *ChannelReestablish) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(m.NextLocalCommitmentNumber)
	w.u64(m.NextRemoteRevocationNumber)
	return nil
}
