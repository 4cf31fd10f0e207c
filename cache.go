package artstamps

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// cacheEntry is one shape's outline in world space together with the
// transform version it was computed from.
type cacheEntry struct {
	version uint64
	points  []Vec2
	bounds  Rect
}

// CacheStats counts geometry cache lookups.
type CacheStats struct {
	Hits       int
	Misses     int
	Recomputes int // entries replaced because the shape's geometry changed
}

// GeometryCache memoizes world-space shape outlines by shape ID. Entries are
// created the first time a shape is tested and are replaced when the shape's
// transform or outline changes, so a hit always equals a fresh computation.
// This holds across levels that reuse an ID for different geometry.
//
// A GeometryCache is not safe for concurrent use.
type GeometryCache struct {
	entries map[string]*cacheEntry
	stats   CacheStats
}

// NewGeometryCache returns an empty cache.
func NewGeometryCache() *GeometryCache {
	return &GeometryCache{entries: make(map[string]*cacheEntry)}
}

// Len returns the number of cached outlines.
func (c *GeometryCache) Len() int {
	return len(c.entries)
}

// Stats returns the lookup counters accumulated since the last Reset.
func (c *GeometryCache) Stats() CacheStats {
	return c.stats
}

// Invalidate drops the entry for one shape ID.
func (c *GeometryCache) Invalidate(id string) {
	delete(c.entries, id)
}

// Reset drops every entry and zeroes the counters.
func (c *GeometryCache) Reset() {
	clear(c.entries)
	c.stats = CacheStats{}
}

// Prune drops entries for shapes that are no longer part of the level and
// returns how many were removed.
func (c *GeometryCache) Prune(l *Level) int {
	live := make(map[string]struct{}, len(l.Shapes))
	for i := range l.Shapes {
		live[l.Shapes[i].ID] = struct{}{}
	}
	removed := 0
	for id := range c.entries {
		if _, ok := live[id]; !ok {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// outline returns the shape's world outline and its bounds, computing and
// storing them on a miss.
func (c *GeometryCache) outline(s *Shape) ([]Vec2, Rect, error) {
	version := shapeVersion(s)
	entry, ok := c.entries[s.ID]
	if ok && entry.version == version {
		c.stats.Hits++
		return entry.points, entry.bounds, nil
	}

	points := make([]Vec2, len(s.Outline))
	for i, p := range s.Outline {
		w := s.Transform.Forward(p)
		if !w.finite() {
			return nil, Rect{}, &GeometryError{Op: "transform outline", Shape: s.ID, Err: ErrNonFinite}
		}
		points[i] = w
	}

	if ok {
		c.stats.Recomputes++
		entry.version = version
		entry.points = points
		entry.bounds = boundsOf(points)
		return entry.points, entry.bounds, nil
	}
	c.stats.Misses++
	entry = &cacheEntry{version: version, points: points, bounds: boundsOf(points)}
	c.entries[s.ID] = entry
	return entry.points, entry.bounds, nil
}

// shapeVersion hashes the transform fingerprint together with every outline
// point.
func shapeVersion(s *Shape) uint64 {
	d := xxhash.New()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], s.Transform.Fingerprint())
	_, _ = d.Write(buf[:8])
	for _, p := range s.Outline {
		binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Y))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
