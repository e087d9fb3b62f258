// Package embcache caches query embeddings in a key-value store so repeated
// answer texts skip the provider round-trip.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pathlight/careermatch/internal/db"
	"github.com/pathlight/careermatch/internal/domain"
)

const (
	keyPrefix = "careermatch:emb_cache:"
	// cacheTTL bounds staleness against catalog re-embeds with a new model.
	cacheTTL = 30 * 24 * time.Hour
)

// KV is the slice of the store this cache needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedEmbedder decorates an embedder with a byte-level cache. Entries are
// keyed by a hash of the exact input text, so the instruction decorator must
// wrap this one, not sit inside it.
type CachedEmbedder struct {
	inner      domain.Embedder
	kv         KV
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates the caching decorator. cacheTotal is a counter vec with a
// "result" label ("hit"/"miss"); nil disables counting.
func New(inner domain.Embedder, kv KV, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, kv: kv, cacheTotal: cacheTotal, logger: logger}
}

// Embed serves from cache when possible. A hit reports zero token usage
// since no provider call happened. Cache failures of any kind degrade to a
// provider round-trip and a warning; they never fail the request.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	sum := sha256.Sum256([]byte(text))
	key := keyPrefix + hex.EncodeToString(sum[:])

	if vec, ok := c.lookup(ctx, key); ok {
		c.count("hit")
		return domain.EmbeddingResult{Embedding: vec}, nil
	}
	c.count("miss")

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}

	if err := c.kv.SetWithTTL(ctx, key, encodeVector(result.Embedding), cacheTTL); err != nil {
		c.logger.Warn("embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

func (c *CachedEmbedder) lookup(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.kv.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return nil, false
	case err != nil:
		c.logger.Warn("embedding cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	case len(data) == 0:
		return nil, false
	}

	vec, err := decodeVector(data)
	if err != nil {
		c.logger.Warn("corrupt embedding cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return vec, true
}

func (c *CachedEmbedder) count(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, errors.New("cached embedding is not a float32 sequence")
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
