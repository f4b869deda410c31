package texture

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/gogpu/atelier/internal/cache"
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// Cache keeps derived rasters between Map calls: resized textures, keyed by
// texture content and target size, and seeded noise fields. Unseeded noise
// is never cached.
//
// A nil *Cache is valid and caches nothing. Cache is safe for concurrent use.
type Cache struct {
	rasters *cache.Cache[cacheKey, *image.Raster]
}

type cacheKind uint8

const (
	kindResize cacheKind = iota + 1
	kindNoise
)

type cacheKey struct {
	kind       cacheKind
	sum        uint64 // texture fingerprint or noise seed
	srcW, srcH int
	w, h       int
}

// NewCache creates a cache holding at most entries rasters. It returns nil
// for entries <= 0.
func NewCache(entries int) *Cache {
	if entries <= 0 {
		return nil
	}
	return &Cache{rasters: cache.New[cacheKey, *image.Raster](entries)}
}

// Stats returns the statistics of the underlying cache.
func (c *Cache) Stats() cache.Stats {
	if c == nil {
		return cache.Stats{}
	}
	return c.rasters.Stats()
}

// Clear drops every cached raster. Statistics are kept.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.rasters.Clear()
}

// resize returns tex resized to w×h. The result may be shared and must not
// be modified.
func (c *Cache) resize(ex parallel.Executor, tex *image.Raster, w, h int) (*image.Raster, error) {
	if c == nil {
		return image.ResizeBilinear(ex, tex, w, h)
	}
	tw, th := tex.Bounds()
	k := cacheKey{kind: kindResize, sum: fingerprint(tex), srcW: tw, srcH: th, w: w, h: h}
	if r, ok := c.rasters.Get(k); ok {
		return r, nil
	}
	r, err := image.ResizeBilinear(ex, tex, w, h)
	if err != nil {
		return nil, err
	}
	c.rasters.Set(k, r)
	return r, nil
}

// noise returns the w×h noise field for seed. The result may be shared and
// must not be modified.
func (c *Cache) noise(ex parallel.Executor, w, h int, seed *uint64) (*image.Raster, error) {
	if c == nil || seed == nil {
		return noiseField(ex, w, h, seed)
	}
	k := cacheKey{kind: kindNoise, sum: *seed, w: w, h: h}
	if r, ok := c.rasters.Get(k); ok {
		return r, nil
	}
	r, err := noiseField(ex, w, h, seed)
	if err != nil {
		return nil, err
	}
	c.rasters.Set(k, r)
	return r, nil
}

// fingerprint is the FNV-1a hash of the raster's channel count and value
// bits.
func fingerprint(r *image.Raster) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 8*256)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(r.Channels()))
	for _, v := range r.Pix() {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		if len(buf) == cap(buf) {
			_, _ = h.Write(buf) // fnv.Write never returns an error
			buf = buf[:0]
		}
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
