package tokens

import (
	"strings"
	"sync"
)

// NameCache remembers contract names per (network, address). Entries
// never expire; the cache lives as long as the process. Bounding it is
// a known limitation, NFT contract sets seen by one wallet stay small.
type NameCache struct {
	mu    sync.Mutex
	names map[string]string
}

func NewNameCache() *NameCache {
	return &NameCache{names: map[string]string{}}
}

func cacheKey(network, address string) string {
	return network + ":" + strings.ToLower(address)
}

func (c *NameCache) Get(network, address string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names[cacheKey(network, address)]
	return name, ok
}

func (c *NameCache) Put(network, address, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[cacheKey(network, address)] = name
}
