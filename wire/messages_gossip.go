package wire

import (
	"fmt"
	"strings"

	"github.com/tos-network/gln/params"
)

func init() {
	registerMessage(MsgChannelAnnouncement, func() Message { return new(ChannelAnnouncement) })
	registerMessage(MsgNodeAnnouncement, func() Message { return new(NodeAnnouncement) })
	registerMessage(MsgChannelUpdate, func() Message { return new(ChannelUpdate) })
	registerMessage(MsgAnnouncementSignatures, func() Message { return new(AnnouncementSignatures) })
	registerMessage(MsgQueryShortChannelIDs, func() Message { return new(QueryShortChannelIDs) })
	registerMessage(MsgReplyShortChannelIDsEnd, func() Message { return new(ReplyShortChannelIDsEnd) })
	registerMessage(MsgQueryChannelRange, func() Message { return new(QueryChannelRange) })
	registerMessage(MsgReplyChannelRange, func() Message { return new(ReplyChannelRange) })
	registerMessage(MsgGossipTimestampFilter, func() Message { return new(GossipTimestampFilter) })
}

// ChannelAnnouncement proves a channel exists, signed by both node keys
// and both funding keys. Rebroadcast verbatim network-wide, so its
// encoding is cacheable.
type ChannelAnnouncement struct {
	NodeSig1       Sig
	NodeSig2       Sig
	BitcoinSig1    Sig
	BitcoinSig2    Sig
	Features       []byte
	ChainHash      ChainHash
	ShortChannelID ShortChannelID
	NodeID1        PubKey
	NodeID2        PubKey
	BitcoinKey1    PubKey
	BitcoinKey2    PubKey
}

func (m *ChannelAnnouncement) MsgType() MessageType { return MsgChannelAnnouncement }

func (m *ChannelAnnouncement) decode(r *reader) error {
	var err error
	if m.NodeSig1, err = r.sig(); err != nil {
		return err
	}
	if m.NodeSig2, err = r.sig(); err != nil {
		return err
	}
	if m.BitcoinSig1, err = r.sig(); err != nil {
		return err
	}
	if m.BitcoinSig2, err = r.sig(); err != nil {
		return err
	}
	if m.Features, err = r.varBytes(); err != nil {
		return err
	}
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	scid, err := r.u64()
	if err != nil {
		return err
	}
	m.ShortChannelID = ShortChannelID(scid)
	if m.NodeID1, err = r.pubKey(); err != nil {
		return err
	}
	if m.NodeID2, err = r.pubKey(); err != nil {
		return err
	}
	if m.BitcoinKey1, err = r.pubKey(); err != nil {
		return err
	}
	m.BitcoinKey2, err = r.pubKey()
	return err
}

func (m *ChannelAnnouncement) encode(w *writer) error {
	for _, s := range []Sig{m.NodeSig1, m.NodeSig2, m.BitcoinSig1, m.BitcoinSig2} {
		if err := w.sig(s); err != nil {
			return err
		}
	}
	if err := w.varBytes(m.Features); err != nil {
		return err
	}
	w.bytes(m.ChainHash[:])
	w.u64(uint64(m.ShortChannelID))
	w.pubKey(m.NodeID1)
	w.pubKey(m.NodeID2)
	w.pubKey(m.BitcoinKey1)
	w.pubKey(m.BitcoinKey2)
	return nil
}

func (m *ChannelAnnouncement) cacheKey() string {
	var b strings.Builder
	b.WriteString("chan_ann/")
	b.Write(m.NodeSig1)
	b.Write(m.NodeSig2)
	b.Write(m.BitcoinSig1)
	b.Write(m.BitcoinSig2)
	writeKeyBytes(&b, m.Features)
	b.Write(m.ChainHash[:])
	writeKeyU64(&b, uint64(m.ShortChannelID))
	b.Write(m.NodeID1[:])
	b.Write(m.NodeID2[:])
	b.Write(m.BitcoinKey1[:])
	b.Write(m.BitcoinKey2[:])
	return b.String()
}

// NodeAnnouncement advertises a node's alias, color and reachable
// addresses. Cacheable.
type NodeAnnouncement struct {
	Signature Sig
	Features  []byte
	Timestamp uint32
	NodeID    PubKey
	Color     Color
	Alias     string
	Addresses []NetAddress
}

func (m *NodeAnnouncement) MsgType() MessageType { return MsgNodeAnnouncement }

func (m *NodeAnnouncement) decode(r *reader) error {
	var err error
	if m.Signature, err = r.sig(); err != nil {
		return err
	}
	if m.Features, err = r.varBytes(); err != nil {
		return err
	}
	if m.Timestamp, err = r.u32(); err != nil {
		return err
	}
	if m.NodeID, err = r.pubKey(); err != nil {
		return err
	}
	rgb, err := r.bytes(3)
	if err != nil {
		return err
	}
	m.Color = Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	if m.Alias, err = readZeroPadded(r, params.AliasSize); err != nil {
		return err
	}
	region, err := r.varBytes()
	if err != nil {
		return err
	}
	m.Addresses, err = decodeAddressList(region)
	return err
}

func (m *NodeAnnouncement) encode(w *writer) error {
	if err := w.sig(m.Signature); err != nil {
		return err
	}
	if err := w.varBytes(m.Features); err != nil {
		return err
	}
	w.u32(m.Timestamp)
	w.pubKey(m.NodeID)
	w.bytes([]byte{m.Color.R, m.Color.G, m.Color.B})
	if err := writeZeroPadded(w, m.Alias, params.AliasSize); err != nil {
		return err
	}
	return w.varBytes(encodeAddressList(m.Addresses))
}

func (m *NodeAnnouncement) cacheKey() string {
	var b strings.Builder
	b.WriteString("node_ann/")
	b.Write(m.Signature)
	writeKeyBytes(&b, m.Features)
	writeKeyU64(&b, uint64(m.Timestamp))
	b.Write(m.NodeID[:])
	b.Write([]byte{m.Color.R, m.Color.G, m.Color.B})
	writeKeyBytes(&b, []byte(m.Alias))
	writeKeyBytes(&b, encodeAddressList(m.Addresses))
	return b.String()
}

// ChannelUpdate publishes one direction's forwarding policy. The maximum
// HTLC value is an optional trailing field: its presence is inferred
// purely from the bytes left after the fixed fields. Cacheable.
type ChannelUpdate struct {
	Signature                 Sig
	ChainHash                 ChainHash
	ShortChannelID            ShortChannelID
	Timestamp                 uint32
	MessageFlags              byte
	ChannelFlags              byte
	CltvExpiryDelta           uint16
	HtlcMinimumMsat           MilliSatoshi
	FeeBaseMsat               uint32
	FeeProportionalMillionths uint32

	// HtlcMaximumMsat is nil when the trailing field is absent.
	HtlcMaximumMsat *MilliSatoshi
}

func (m *ChannelUpdate) MsgType() MessageType { return MsgChannelUpdate }

func (m *ChannelUpdate) decode(r *reader) error {
	var err error
	if m.Signature, err = r.sig(); err != nil {
		return err
	}
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	scid, err := r.u64()
	if err != nil {
		return err
	}
	m.ShortChannelID = ShortChannelID(scid)
	if m.Timestamp, err = r.u32(); err != nil {
		return err
	}
	if m.MessageFlags, err = r.u8(); err != nil {
		return err
	}
	if m.ChannelFlags, err = r.u8(); err != nil {
		return err
	}
	if m.CltvExpiryDelta, err = r.u16(); err != nil {
		return err
	}
	v, err := r.u64()
	if err != nil {
		return err
	}
	m.HtlcMinimumMsat = MilliSatoshi(v)
	if m.FeeBaseMsat, err = r.u32(); err != nil {
		return err
	}
	if m.FeeProportionalMillionths, err = r.u32(); err != nil {
		return err
	}
	switch n := r.remaining(); n {
	case 0:
		m.HtlcMaximumMsat = nil
	case 8:
		v, err := r.u64()
		if err != nil {
			return err
		}
		max := MilliSatoshi(v)
		m.HtlcMaximumMsat = &max
	default:
		return fmt.Errorf("%w: %d trailing bytes for htlc_maximum_msat", ErrAmbiguousTrailingData, n)
	}
	return nil
}

func (m *ChannelUpdate) encode(w *writer) error {
	if err := w.sig(m.Signature); err != nil {
		return err
	}
	w.bytes(m.ChainHash[:])
	w.u64(uint64(m.ShortChannelID))
	w.u32(m.Timestamp)
	w.u8(m.MessageFlags)
	w.u8(m.ChannelFlags)
	w.u16(m.CltvExpiryDelta)
	w.u64(uint64(m.HtlcMinimumMsat))
	w.u32(m.FeeBaseMsat)
	w.u32(m.FeeProportionalMillionths)
	if m.HtlcMaximumMsat != nil {
		w.u64(uint64(*m.HtlcMaximumMsat))
	}
	return nil
}

func (m *ChannelUpdate) cacheKey() string {
	var b strings.Builder
	b.WriteString("chan_upd/")
	b.Write(m.Signature)
	b.Write(m.ChainHash[:])
	writeKeyU64(&b, uint64(m.ShortChannelID))
	writeKeyU64(&b, uint64(m.Timestamp))
	b.Write([]byte{m.MessageFlags, m.ChannelFlags})
	writeKeyU64(&b, uint64(m.CltvExpiryDelta))
	writeKeyU64(&b, uint64(m.HtlcMinimumMsat))
	writeKeyU64(&b, uint64(m.FeeBaseMsat))
	writeKeyU64(&b, uint64(m.FeeProportionalMillionths))
	if m.HtlcMaximumMsat == nil {
		b.WriteByte(0)
	} else {
		b.WriteByte(1)
		writeKeyU64(&b, uint64(*m.HtlcMaximumMsat))
	}
	return b.String()
}

// AnnouncementSignatures exchanges the signatures both peers need to
// assemble a ChannelAnnouncement.
type AnnouncementSignatures struct {
	ChannelID        ChannelID
	ShortChannelID   ShortChannelID
	NodeSignature    Sig
	BitcoinSignature Sig
}

func (m *AnnouncementSignatures) MsgType() MessageType { return MsgAnnouncementSignatures }

func (m *AnnouncementSignatures) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	scid, err := r.u64()
	if err != nil {
		return err
	}
	m.ShortChannelID = ShortChannelID(scid)
	if m.NodeSignature, err = r.sig(); err != nil {
		return err
	}
	m.BitcoinSignature, err = r.sig()
	return err
}

func (m *AnnouncementSignatures) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(uint64(m.ShortChannelID))
	if err := w.sig(m.NodeSignature); err != nil {
		return err
	}
	return w.sig(m.BitcoinSignature)
}

// QueryShortChannelIDs asks a peer for the announcements behind a set of
// encoded short channel ids. The encoding of Data (including its leading
// compression byte) is opaque to the codec.
type QueryShortChannelIDs struct {
	ChainHash ChainHash
	Data      []byte
}

func (m *QueryShortChannelIDs) MsgType() MessageType { return MsgQueryShortChannelIDs }

func (m *QueryShortChannelIDs) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	m.Data, err = r.varBytes()
	return err
}

func (m *QueryShortChannelIDs) encode(w *writer) error {
	w.bytes(m.ChainHash[:])
	return w.varBytes(m.Data)
}

// ReplyShortChannelIDsEnd closes a QueryShortChannelIDs exchange.
type ReplyShortChannelIDsEnd struct {
	ChainHash ChainHash
	Complete  byte
}

func (m *ReplyShortChannelIDsEnd) MsgType() MessageType { return MsgReplyShortChannelIDsEnd }

func (m *ReplyShortChannelIDsEnd) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	m.Complete, err = r.u8()
	return err
}

func (m *ReplyShortChannelIDsEnd) encode(w *writer) error {
	w.bytes(m.ChainHash[:])
	w.u8(m.Complete)
	return nil
}

// QueryChannelRange asks for all short channel ids in a block span.
type QueryChannelRange struct {
	ChainHash      ChainHash
	FirstBlockNum  uint32
	NumberOfBlocks uint32
}

func (m *QueryChannelRange) MsgType() MessageType { return MsgQueryChannelRange }

func (m *QueryChannelRange) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	if m.FirstBlockNum, err = r.u32(); err != nil {
		return err
	}
	m.NumberOfBlocks, err = r.u32()
	return err
}

func (m *QueryChannelRange) encode(w *writer) error {
	w.bytes(m.ChainHash[:])
	w.u32(m.FirstBlockNum)
	w.u32(m.NumberOfBlocks)
	return nil
}

// ReplyChannelRange answers a QueryChannelRange with a block span and the
// encoded ids it covers.
type ReplyChannelRange struct {
	ChainHash      ChainHash
	FirstBlockNum  uint32
	NumberOfBlocks uint32
	Complete       byte
	Data           []byte
}

func (m *ReplyChannelRange) MsgType() MessageType { return MsgReplyChannelRange }

func (m *ReplyChannelRange) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	if m.FirstBlockNum, err = r.u32(); err != nil {
		return err
	}
	if m.NumberOfBlocks, err = r.u32(); err != nil {
		return err
	}
	if m.Complete, err = r.u8(); err != nil {
		return err
	}
	m.Data, err = r.varBytes()
	return err
}

func (m *ReplyChannelRange) encode(w *writer) error {
	w.bytes(m.ChainHash[:])
	w.u32(m.FirstBlockNum)
	w.u32(m.NumberOfBlocks)
	w.u8(m.Complete)
	return w.varBytes(m.Data)
}

// GossipTimestampFilter limits which gossip a peer relays to a timestamp
// window.
type GossipTimestampFilter struct {
	ChainHash      ChainHash
	FirstTimestamp uint32
	TimestampRange uint32
}

func (m *GossipTimestampFilter) MsgType() MessageType { return MsgGossipTimestampFilter }

func (m *GossipTimestampFilter) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	if m.FirstTimestamp, err = r.u32(); err != nil {
		return err
	}
	m.TimestampRange, err = r.u32()
	return err
}

func (m *GossipTimestampFilter) encode(w *writer) error {
	w.bytes(m.ChainHash[:])
	w.u32(m.FirstTimestamp)
	w.u32(m.TimestampRange)
	return nil
}
