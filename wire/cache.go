package wire

import (
	"encoding/binary"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/tos-network/gln/params"
)

// cacheable marks gossip variants whose encodings may be memoized. The
// key is assembled directly from the field values, so two distinct
// instances with equal fields share one entry, and computing it never
// runs the field codecs.
type cacheable interface {
	Message
	cacheKey() string
}

func writeKeyBytes(b *strings.Builder, v []byte) {
	writeKeyU64(b, uint64(len(v)))
	b.Write(v)
}

func writeKeyU64(b *strings.Builder, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	b.Write(buf[:])
}

// CachingEncoder memoizes the encodings of cacheable gossip messages,
// which get rebroadcast verbatim to many peers. All other variants pass
// straight through. The cache is bounded with LRU eviction and safe for
// concurrent use; decoding is never cached.
type CachingEncoder struct {
	enc   Encoder
	cache *lru.Cache
}

// NewCachingEncoder wraps enc with a cache of at most maxEntries gossip
// encodings. A nil enc uses the package registry.
func NewCachingEncoder(enc Encoder, maxEntries int) (*CachingEncoder, error) {
	if enc == nil {
		enc = CodecEncoder{}
	}
	cache, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("wire: bad cache size %d: %v", maxEntries, err)
	}
	return &CachingEncoder{enc: enc, cache: cache}, nil
}

// NewGossipEncoder returns a CachingEncoder over the package registry
// with the default gossip cache bound.
func NewGossipEncoder() *CachingEncoder {
	cache, _ := lru.New(params.GossipCacheEntries)
	return &CachingEncoder{enc: CodecEncoder{}, cache: cache}
}

// EncodeMessage returns the memoized frame for a cacheable message when a
// structurally equal value was encoded before, otherwise encodes and
// stores it. Callers must not mutate the returned slice.
func (ce *CachingEncoder) EncodeMessage(msg Message) ([]byte, error) {
	cm, ok := msg.(cacheable)
	if !ok {
		return ce.enc.EncodeMessage(msg)
	}
	key := cm.cacheKey()
	if frame, ok := ce.cache.Get(key); ok {
		return frame.([]byte), nil
	}
	frame, err := ce.enc.EncodeMessage(msg)
	if err != nil {
		return nil, err
	}
	ce.cache.Add(key, frame)
	return frame, nil
}

// Len reports the number of cached gossip encodings.
func (ce *CachingEncoder) Len() int {
	return ce.cache.Len()
}
