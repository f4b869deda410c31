// Package cache provides a bounded, thread-safe LRU cache for derived
// rasters.
//
// Values are shared between callers and must be treated as read-only.
//
//	c := cache.New[key, *image.Raster](16)
//	if r, ok := c.Get(k); ok {
//	    return r
//	}
//	r := compute()
//	c.Set(k, r)
//
// A nil *Cache is valid and caches nothing.
package cache
