package batch

import (
	"sync"

	"github.com/Faultbox/isomesh/pkg/dualcontour"
)

// Cache is an in-memory store of meshed regions. Meshes are shared, not
// copied; callers must not modify a cached mesh.
type Cache struct {
	data map[dualcontour.Region]*dualcontour.MeshBuffer
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[dualcontour.Region]*dualcontour.MeshBuffer),
	}
}

// Get retrieves the mesh for a region.
func (c *Cache) Get(r dualcontour.Region) (*dualcontour.MeshBuffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.data[r]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return m, ok
}

// Set stores the mesh for a region.
func (c *Cache) Set(r dualcontour.Region, m *dualcontour.MeshBuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[r] = m
}

// Len returns the number of cached regions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[dualcontour.Region]*dualcontour.MeshBuffer)
	c.hits = 0
	c.misses = 0
}
