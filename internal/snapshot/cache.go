package snapshot

import (
	"math"
	"time"

	"github.com/google/btree"
	"github.com/samber/lo"

	"sectionmesh/internal/world"
)

// World is what the cache needs to capture sections on demand.
type World interface {
	Level
	Chunk(pos world.ChunkPos) *world.Chunk
}

type ageKey struct {
	ts  int64
	pos world.SectionPos
}

func lessAge(a, b ageKey) bool {
	if a.ts != b.ts {
		return a.ts < b.ts
	}
	if a.pos.X != b.pos.X {
		return a.pos.X < b.pos.X
	}
	if a.pos.Y != b.pos.Y {
		return a.pos.Y < b.pos.Y
	}
	return a.pos.Z < b.pos.Z
}

// Cache keeps recently captured sections so neighbouring rebuilds can share
// them. It belongs to the goroutine that owns the world and is not safe for
// concurrent use.
type Cache struct {
	world    World
	capturer *Capturer
	ttl      time.Duration
	now      func() time.Time

	entries map[world.SectionPos]*cacheEntry
	byAge   *btree.BTreeG[ageKey]
}

// cacheEntry remembers the timestamp the section is indexed under, which
// drifts from the section's own when SetLastUsedTimestamp is called
// outside the cache.
type cacheEntry struct {
	section *Section
	indexed int64
}

// NewCache returns a cache that evicts snapshots unused for longer than ttl.
func NewCache(w World, capturer *Capturer, ttl time.Duration) *Cache {
	return &Cache{
		world:    w,
		capturer: capturer,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[world.SectionPos]*cacheEntry),
		byAge:    btree.NewG(16, lessAge),
	}
}

// Acquire returns the cached snapshot of pos, capturing it first if needed,
// and refreshes its last-used timestamp.
func (c *Cache) Acquire(pos world.SectionPos) *Section {
	ts := c.now().UnixNano()
	if e, ok := c.entries[pos]; ok {
		c.touch(e, ts)
		return e.section
	}

	var chunk Chunk
	var section *world.Section
	if ch := c.world.Chunk(pos.Chunk()); ch != nil {
		chunk = ch
		section = ch.Section(pos.Y)
	}
	e := &cacheEntry{section: c.capturer.Capture(c.world, chunk, section, pos)}
	c.entries[pos] = e
	c.byAge.ReplaceOrInsert(ageKey{ts: ts, pos: pos})
	e.indexed = ts
	e.section.SetLastUsedTimestamp(ts)
	return e.section
}

func (c *Cache) touch(e *cacheEntry, ts int64) {
	c.reindex(e, ts)
	e.section.SetLastUsedTimestamp(ts)
}

func (c *Cache) reindex(e *cacheEntry, ts int64) {
	pos := e.section.pos
	c.byAge.Delete(ageKey{ts: e.indexed, pos: pos})
	c.byAge.ReplaceOrInsert(ageKey{ts: ts, pos: pos})
	e.indexed = ts
}

// Invalidate drops the snapshot of pos so the next Acquire recaptures it.
func (c *Cache) Invalidate(pos world.SectionPos) {
	e, ok := c.entries[pos]
	if !ok {
		return
	}
	c.byAge.Delete(ageKey{ts: e.indexed, pos: pos})
	delete(c.entries, pos)
}

// Cleanup evicts every snapshot last used before now minus the TTL and
// returns how many were removed. A snapshot whose timestamp was moved past
// the cutoff with SetLastUsedTimestamp is kept and reindexed.
func (c *Cache) Cleanup() int {
	cutoff := c.now().Add(-c.ttl).UnixNano()
	var stale []ageKey
	pivot := ageKey{ts: cutoff, pos: world.SectionPos{X: math.MinInt, Y: math.MinInt, Z: math.MinInt}}
	c.byAge.AscendLessThan(pivot, func(k ageKey) bool {
		stale = append(stale, k)
		return true
	})

	evicted := 0
	for _, k := range stale {
		e, ok := c.entries[k.pos]
		if !ok || e.indexed != k.ts {
			c.byAge.Delete(k)
			continue
		}
		if ts := e.section.LastUsedTimestamp(); ts >= cutoff {
			c.reindex(e, ts)
			continue
		}
		c.byAge.Delete(k)
		delete(c.entries, k.pos)
		evicted++
	}
	return evicted
}

// Len returns the number of cached snapshots.
func (c *Cache) Len() int { return len(c.entries) }

// Positions lists the cached section positions in no particular order.
func (c *Cache) Positions() []world.SectionPos { return lo.Keys(c.entries) }
