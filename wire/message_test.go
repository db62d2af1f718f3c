package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func testMessages(t *testing.T) []Message {
	t.Helper()
	maxHtlc := MilliSatoshi(980000000)
	var onion OnionPacket
	for i := range onion {
		onion[i] = byte(i)
	}
	return []Message{
		&Init{GlobalFeatures: []byte{0x01}, LocalFeatures: []byte{0x08, 0x82}},
		&Error{ChannelID: ChannelID{0x01}, Data: []byte("internal error")},
		&Ping{NumPongBytes: 12, Ignored: []byte{0x00, 0x00}},
		&Pong{Ignored: bytes.Repeat([]byte{0x00}, 12)},
		&OpenChannel{
			ChainHash:               ChainHash{0x6f, 0xe2, 0x8c},
			TemporaryChannelID:      ChannelID{0x02},
			FundingSatoshis:         1000000,
			PushMsat:                5000,
			DustLimitSatoshis:       546,
			MaxHtlcValueInFlight:    ^MilliSatoshi(0),
			ChannelReserveSatoshis:  10000,
			HtlcMinimumMsat:         1,
			FeeratePerKw:            2500,
			ToSelfDelay:             144,
			MaxAcceptedHtlcs:        483,
			FundingPubKey:           testPubKey(t, 0x11),
			RevocationBasepoint:     testPubKey(t, 0x12),
			PaymentBasepoint:        testPubKey(t, 0x13),
			DelayedPaymentBasepoint: testPubKey(t, 0x14),
			HtlcBasepoint:           testPubKey(t, 0x15),
			FirstPerCommitmentPoint: testPubKey(t, 0x16),
			ChannelFlags:            0x01,
		},
		&AcceptChannel{
			TemporaryChannelID:      ChannelID{0x03},
			DustLimitSatoshis:       546,
			MaxHtlcValueInFlight:    20000000,
			ChannelReserveSatoshis:  10000,
			HtlcMinimumMsat:         1000,
			MinimumDepth:            3,
			ToSelfDelay:             720,
			MaxAcceptedHtlcs:        30,
			FundingPubKey:           testPubKey(t, 0x21),
			RevocationBasepoint:     testPubKey(t, 0x22),
			PaymentBasepoint:        testPubKey(t, 0x23),
			DelayedPaymentBasepoint: testPubKey(t, 0x24),
			HtlcBasepoint:           testPubKey(t, 0x25),
			FirstPerCommitmentPoint: testPubKey(t, 0x26),
		},
		&FundingCreated{
			TemporaryChannelID: ChannelID{0x04},
			FundingTxid:        Hash{0xaa, 0xbb},
			FundingOutputIndex: 1,
			Signature:          testSig(t, 0x41),
		},
		&FundingSigned{ChannelID: ChannelID{0x05}, Signature: testSig(t, 0x42)},
		&FundingLocked{ChannelID: ChannelID{0x06}, NextPerCommitmentPoint: testPubKey(t, 0x27)},
		&Shutdown{ChannelID: ChannelID{0x07}, ScriptPubKey: []byte{0x00, 0x14, 0xde, 0xad}},
		&ClosingSigned{ChannelID: ChannelID{0x08}, FeeSatoshis: 1520, Signature: testSig(t, 0x43)},
		&UpdateAddHTLC{
			ChannelID:   ChannelID{0x09},
			ID:          17,
			AmountMsat:  150000,
			PaymentHash: Hash{0xcc},
			CltvExpiry:  550100,
			OnionPacket: onion,
		},
		&UpdateFulfillHTLC{ChannelID: ChannelID{0x0a}, ID: 17, PaymentPreimage: Hash{0xdd}},
		&UpdateFailHTLC{ChannelID: ChannelID{0x0b}, ID: 18, Reason: bytes.Repeat([]byte{0xee}, 32)},
		&CommitSig{
			ChannelID:      ChannelID{0x0c},
			Signature:      testSig(t, 0x44),
			HtlcSignatures: []Sig{testSig(t, 0x45), testSig(t, 0x46)},
		},
		&RevokeAndAck{
			ChannelID:              ChannelID{0x0d},
			PerCommitmentSecret:    Scalar{0x31},
			NextPerCommitmentPoint: testPubKey(t, 0x28),
		},
		&UpdateFee{ChannelID: ChannelID{0x0e}, FeeratePerKw: 1250},
		&UpdateFailMalformedHTLC{
			ChannelID:   ChannelID{0x0f},
			ID:          19,
			ShaOfOnion:  Hash{0xab},
			FailureCode: 0x4005,
		},
		&ChannelReestablish{
			ChannelID:                  ChannelID{0x10},
			NextLocalCommitmentNumber:  7,
			NextRemoteRevocationNumber: 6,
		},
		&ChannelAnnouncement{
			NodeSig1:       testSig(t, 0x51),
			NodeSig2:       testSig(t, 0x52),
			BitcoinSig1:    testSig(t, 0x53),
			BitcoinSig2:    testSig(t, 0x54),
			Features:       []byte{0x00},
			ChainHash:      ChainHash{0x6f},
			ShortChannelID: NewShortChannelID(501234, 17, 1),
			NodeID1:        testPubKey(t, 0x31),
			NodeID2:        testPubKey(t, 0x32),
			BitcoinKey1:    testPubKey(t, 0x33),
			BitcoinKey2:    testPubKey(t, 0x34),
		},
		&NodeAnnouncement{
			Signature: testSig(t, 0x55),
			Timestamp: 1534528000,
			NodeID:    testPubKey(t, 0x35),
			Color:     Color{R: 0x33, G: 0x99, B: 0xff},
			Alias:     "gln-node",
			Addresses: []NetAddress{
				IPv4Addr{Addr: [4]byte{192, 168, 1, 42}, Port: 9735},
				Tor2Addr{Onion: [10]byte{0x01, 0x02}, Port: 9735},
			},
		},
		&ChannelUpdate{
			Signature:                 testSig(t, 0x56),
			ChainHash:                 ChainHash{0x6f},
			ShortChannelID:            NewShortChannelID(501234, 17, 1),
			Timestamp:                 1534529000,
			MessageFlags:              0x01,
			ChannelFlags:              0x00,
			CltvExpiryDelta:           144,
			HtlcMinimumMsat:           1000,
			FeeBaseMsat:               1000,
			FeeProportionalMillionths: 100,
			HtlcMaximumMsat:           &maxHtlc,
		},
		&AnnouncementSignatures{
			ChannelID:        ChannelID{0x11},
			ShortChannelID:   NewShortChannelID(501234, 17, 1),
			NodeSignature:    testSig(t, 0x57),
			BitcoinSignature: testSig(t, 0x58),
		},
		&QueryShortChannelIDs{ChainHash: ChainHash{0x6f}, Data: []byte{0x00, 0x01, 0x02}},
		&ReplyShortChannelIDsEnd{ChainHash: ChainHash{0x6f}, Complete: 1},
		&QueryChannelRange{ChainHash: ChainHash{0x6f}, FirstBlockNum: 500000, NumberOfBlocks: 1000},
		&ReplyChannelRange{
			ChainHash:      ChainHash{0x6f},
			FirstBlockNum:  500000,
			NumberOfBlocks: 1000,
			Complete:       1,
			Data:           []byte{0x00, 0xaa},
		},
		&GossipTimestampFilter{ChainHash: ChainHash{0x6f}, FirstTimestamp: 1534500000, TimestampRange: 3600},
	}
}

func TestMessageRoundtrip(t *testing.T) {
	for _, want := range testMessages(t) {
		frame, err := EncodeMessage(want)
		if err != nil {
			t.Fatalf("%s: encode: %v", want.MsgType(), err)
		}
		got, err := DecodeMessage(frame)
		if err != nil {
			t.Fatalf("%s: decode: %v", want.MsgType(), err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: roundtrip mismatch:\n got:  %+v\n want: %+v", want.MsgType(), got, want)
		}
		again, err := EncodeMessage(got)
		if err != nil {
			t.Fatalf("%s: re-encode: %v", want.MsgType(), err)
		}
		if !bytes.Equal(again, frame) {
			t.Fatalf("%s: re-encode differs:\n first:  %x\n second: %x", want.MsgType(), frame, again)
		}
	}
}

// TestFrameReencodeExact builds a funding_signed frame byte by byte, the
// way it arrives off the transport, and checks decode/encode reproduces
// it exactly, signature translation included.
func TestFrameReencodeExact(t *testing.T) {
	var frame []byte
	frame = append(frame, 0x00, 0x23) // funding_signed
	channelID := bytes.Repeat([]byte{0x17}, 32)
	frame = append(frame, channelID...)
	compact := make([]byte, 64)
	for i := range compact {
		compact[i] = 0x30 + byte(i%16)
	}
	compact[0] &= 0x7f
	compact[32] &= 0x7f
	frame = append(frame, compact...)

	msg, err := DecodeMessage(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	fs, ok := msg.(*FundingSigned)
	if !ok {
		t.Fatalf("wrong variant: %T", msg)
	}
	if !bytes.Equal(fs.ChannelID[:], channelID) {
		t.Fatal("channel id mismatch")
	}
	out, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(out, frame) {
		t.Fatalf("re-encode mismatch:\n in:  %x\n out: %x", frame, out)
	}
}

func TestDecodeUnknownMessageType(t *testing.T) {
	if _, err := DecodeMessage([]byte{0x03, 0xe8}); !errors.Is(err, ErrUnknownMessageType) {
		t.Fatalf("type 1000 accepted: %v", err)
	}
}

func TestDecodeEmptyFrame(t *testing.T) {
	if _, err := DecodeMessage(nil); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("empty frame accepted: %v", err)
	}
	if _, err := DecodeMessage([]byte{0x00}); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("1 byte frame accepted: %v", err)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	frame, err := EncodeMessage(&UpdateFee{ChannelID: ChannelID{0x01}, FeeratePerKw: 100})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeMessage(append(frame, 0x00)); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("trailing byte accepted: %v", err)
	}
}

func TestDecodeRejectsTruncatedFrame(t *testing.T) {
	frame, err := EncodeMessage(&UpdateFee{ChannelID: ChannelID{0x01}, FeeratePerKw: 100})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeMessage(frame[:len(frame)-1]); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("truncated frame accepted: %v", err)
	}
}

func TestDecodeRejectsInvalidPoint(t *testing.T) {
	var frame []byte
	frame = append(frame, 0x00, 0x24) // funding_locked
	frame = append(frame, make([]byte, 32)...)
	point := make([]byte, 33)
	point[0] = 0x05
	frame = append(frame, point...)
	if _, err := DecodeMessage(frame); !errors.Is(err, ErrInvalidPoint) {
		t.Fatalf("off-curve point accepted: %v", err)
	}
}

func TestDecodeRejectsInvalidSignature(t *testing.T) {
	var frame []byte
	frame = append(frame, 0x00, 0x23) // funding_signed
	frame = append(frame, make([]byte, 32)...)
	frame = append(frame, make([]byte, 64)...) // r = s = 0
	if _, err := DecodeMessage(frame); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("zero signature accepted: %v", err)
	}
}
