package client

import (
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

const (
	defaultCacheSize = 8 << 20
	defaultCacheTTL  = time.Minute
)

// responseCache holds raw response bodies. Every successful write bumps
// the generation: derived keys embed it, so listings are dropped at once,
// and a read that started under an older generation is never stored.
type responseCache struct {
	mu         sync.Mutex
	store      *ristretto.Cache[string, []byte]
	generation uint64
	ttl        time.Duration
}

func newResponseCache(maxBytes int64, ttl time.Duration) (*responseCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters:        max(maxBytes/100, 1000),
		MaxCost:            maxBytes,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &responseCache{store: store, ttl: ttl}, nil
}

func stableKey(target string) string {
	return "movie:" + target
}

func derivedKey(generation uint64, target string) string {
	return strconv.FormatUint(generation, 10) + ":" + target
}

// snapshot returns the generation a read is issued under.
func (c *responseCache) snapshot() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *responseCache) get(key string) ([]byte, bool) {
	return c.store.Get(key)
}

// fill stores a read response unless a write completed after generation
// was taken. It reports whether the body was stored.
func (c *responseCache) fill(generation uint64, key string, raw []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.set(key, raw)
	return true
}

// commit records a successful write and stores the server's copy of the
// written resource under key.
func (c *responseCache) commit(key string, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.set(key, raw)
}

func (c *responseCache) set(key string, raw []byte) {
	c.store.SetWithTTL(key, raw, int64(len(raw)), c.ttl)
	c.store.Wait()
}

func (c *responseCache) close() {
	c.store.Close()
}
