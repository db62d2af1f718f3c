package params

const (
	// MaxMessagePayload is the transport frame ceiling: the encrypted
	// transport carries a 16-bit length, so no message (type prefix
	// included) can exceed this many bytes.
	MaxMessagePayload = 65535

	// OnionPacketSize is the fixed length of the onion routing packet
	// carried by update_add_htlc: version (1) + ephemeral point (33) +
	// hops data (1300) + hmac (32).
	OnionPacketSize = 1366

	// HopPayloadSize is the fixed length of a single per-hop descriptor
	// inside the onion packet.
	HopPayloadSize = 33

	// AliasSize is the zero-padded node alias field width in
	// node_announcement.
	AliasSize = 32

	// GossipCacheEntries bounds the announcement encode cache. Sized to
	// the active gossip set a node rebroadcasts during sync.
	GossipCacheEntries = 1024
)
