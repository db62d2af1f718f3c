package wire

import (
	"fmt"

	"github.com/tos-network/gln/params"
)

// MessageType is the 2-byte big-endian discriminator prefixing every
// message frame.
type MessageType uint16

const (
	MsgInit                    MessageType = 16
	MsgError                   MessageType = 17
	MsgPing                    MessageType = 18
	MsgPong                    MessageType = 19
	MsgOpenChannel             MessageType = 32
	MsgAcceptChannel           MessageType = 33
	MsgFundingCreated          MessageType = 34
	MsgFundingSigned           MessageType = 35
	MsgFundingLocked           MessageType = 36
	MsgShutdown                MessageType = 38
	MsgClosingSigned           MessageType = 39
	MsgUpdateAddHTLC           MessageType = 128
	MsgUpdateFulfillHTLC       MessageType = 130
	MsgUpdateFailHTLC          MessageType = 131
	MsgCommitSig               MessageType = 132
	MsgRevokeAndAck            MessageType = 133
	MsgUpdateFee               MessageType = 134
	MsgUpdateFailMalformedHTLC MessageType = 135
	MsgChannelReestablish      MessageType = 136
	MsgChannelAnnouncement     MessageType = 256
	MsgNodeAnnouncement        MessageType = 257
	MsgChannelUpdate           MessageType = 258
	MsgAnnouncementSignatures  MessageType = 259
	MsgQueryShortChannelIDs    MessageType = 261
	MsgReplyShortChannelIDsEnd MessageType = 262
	MsgQueryChannelRange       MessageType = 263
	MsgReplyChannelRange       MessageType = 264
	MsgGossipTimestampFilter   MessageType = 265
)

func (t MessageType) String() string {
	switch t {
	case MsgInit:
		return "init"
	case MsgError:
		return "error"
	case MsgPing:
		return "ping"
	case MsgPong:
		return "pong"
	case MsgOpenChannel:
		return "open_channel"
	case MsgAcceptChannel:
		return "accept_channel"
	case MsgFundingCreated:
		return "funding_created"
	case MsgFundingSigned:
		return "funding_signed"
	case MsgFundingLocked:
		return "funding_locked"
	case MsgShutdown:
		return "shutdown"
	case MsgClosingSigned:
		return "closing_signed"
	case MsgUpdateAddHTLC:
		return "update_add_htlc"
	case MsgUpdateFulfillHTLC:
		return "update_fulfill_htlc"
	case MsgUpdateFailHTLC:
		return "update_fail_htlc"
	case MsgCommitSig:
		return "commitment_signed"
	case MsgRevokeAndAck:
		return "revoke_and_ack"
	case MsgUpdateFee:
		return "update_fee"
	case MsgUpdateFailMalformedHTLC:
		return "update_fail_malformed_htlc"
	case MsgChannelReestablish:
		return "channel_reestablish"
	case MsgChannelAnnouncement:
		return "channel_announcement"
	case MsgNodeAnnouncement:
		return "node_announcement"
	case MsgChannelUpdate:
		return "channel_update"
	case MsgAnnouncementSignatures:
		return "announcement_signatures"
	case MsgQueryShortChannelIDs:
		return "query_short_channel_ids"
	case MsgReplyShortChannelIDsEnd:
		return "reply_short_channel_ids_end"
	case MsgQueryChannelRange:
		return "query_channel_range"
	case MsgReplyChannelRange:
		return "reply_channel_range"
	case MsgGossipTimestampFilter:
		return "gossip_timestamp_filter"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(t))
	}
}

// Message is one protocol message decoded into its typed form. All
// implementations are immutable value carriers; decoding never retains
// the input frame.
type Message interface {
	MsgType() MessageType
	decode(r *reader) error
	encode(w *writer) error
}

// messageRegistry maps discriminators to variant factories. New message
// types register themselves from init so adding a discriminator never
// touches existing variants.
var messageRegistry = make(map[MessageType]func() Message)

func registerMessage(t MessageType, factory func() Message) {
	if _, dup := messageRegistry[t]; dup {
		panic(fmt.Sprintf("wire: duplicate message type %d", t))
	}
	messageRegistry[t] = factory
}

// DecodeMessage parses one complete frame: the 2-byte discriminator
// followed by exactly the message payload. The frame length is the
// transport's; any bytes left over after the declared fields make the
// frame malformed.
func DecodeMessage(frame []byte) (Message, error) {
	if len(frame) > params.MaxMessagePayload {
		return nil, fmt.Errorf("%w: %d byte frame exceeds transport maximum", ErrMalformedLength, len(frame))
	}
	r := newReader(frame)
	t, err := r.u16()
	if err != nil {
		return nil, err
	}
	factory, ok := messageRegistry[MessageType(t)]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessageType, t)
	}
	msg := factory()
	if err := msg.decode(r); err != nil {
		return nil, err
	}
	if n := r.remaining(); n != 0 {
		return nil, fmt.Errorf("%w: %d bytes after %s fields", ErrMalformedLength, n, msg.MsgType())
	}
	return msg, nil
}

// EncodeMessage serializes msg with its discriminator prefix. Output is
// byte-identical to the frame the message decoded from.
func EncodeMessage(msg Message) ([]byte, error) {
	w := newWriter()
	w.u16(uint16(msg.MsgType()))
	if err := msg.encode(w); err != nil {
		return nil, err
	}
	return w.finish(), nil
}

// Encoder serializes messages to complete frames. The package-level
// registry satisfies it via CodecEncoder; CachingEncoder decorates any
// implementation.
type Encoder interface {
	EncodeMessage(Message) ([]byte, error)
}

// CodecEncoder is the plain registry-backed Encoder.
type CodecEncoder struct{}

func (CodecEncoder) EncodeMessage(msg Message) ([]byte, error) {
	return EncodeMessage(msg)
}
