package wire

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/tos-network/gln/crypto"
)

// ChannelID identifies an established channel: the funding txid XORed
// with the funding output index.
type ChannelID [32]byte

// ChainHash identifies the chain a message refers to by its genesis hash.
type ChainHash [32]byte

// Hash is a 32-byte value: payment hashes, preimages, funding txids.
type Hash [32]byte

// MilliSatoshi is an amount of 1/1000ths of a satoshi. It covers the full
// unsigned 64-bit range and always compares unsigned.
type MilliSatoshi uint64

// ShortChannelID locates a channel's funding output on chain: block
// height (3 bytes), transaction index (3 bytes) and output index
// (2 bytes) packed big-endian into one 64-bit value. It is used both as
// a wire field and as a map key.
type ShortChannelID uint64

// NewShortChannelID packs funding output coordinates into a ShortChannelID.
func NewShortChannelID(blockHeight, txIndex uint32, outputIndex uint16) ShortChannelID {
	return ShortChannelID(uint64(blockHeight&0xffffff)<<40 |
		uint64(txIndex&0xffffff)<<16 |
		uint64(outputIndex))
}

// BlockHeight returns the block the funding transaction confirmed in.
func (s ShortChannelID) BlockHeight() uint32 {
	return uint32(s>>40) & 0xffffff
}

// TxIndex returns the funding transaction's index within its block.
func (s ShortChannelID) TxIndex() uint32 {
	return uint32(s>>16) & 0xffffff
}

// OutputIndex returns the funding output's index within its transaction.
func (s ShortChannelID) OutputIndex() uint16 {
	return uint16(s)
}

func (s ShortChannelID) String() string {
	return fmt.Sprintf("%dx%dx%d", s.BlockHeight(), s.TxIndex(), s.OutputIndex())
}

// Color is a node's RGB display color. Pure value; any channel byte is
// valid.
type Color struct {
	R, G, B uint8
}

// Scalar is a 32-byte big-endian private value, such as a revoked
// per-commitment secret.
type Scalar [32]byte

// PubKey is a SEC1 compressed secp256k1 point: one parity byte and a
// 32-byte x coordinate. Values decoded from the wire have passed the
// curve-membership check.
type PubKey [33]byte

// NewPubKey compresses a parsed public key into its wire form.
func NewPubKey(pub *btcec.PublicKey) PubKey {
	var pk PubKey
	copy(pk[:], pub.SerializeCompressed())
	return pk
}

// ParsePubKey re-validates and expands the compressed point.
func (pk PubKey) ParsePubKey() (*btcec.PublicKey, error) {
	return crypto.ParsePubKey(pk[:])
}

func (pk PubKey) String() string {
	return fmt.Sprintf("%x", pk[:])
}
