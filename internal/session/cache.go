// cache.go implements the process-wide global pattern cache (§4.K).
//
// Two tiers: a preset map holding the eleven preset patterns keyed by their
// pattern text (compiled on first session creation, never evicted), and a dynamic map for
// caller-registered patterns keyed by their UTF-8 bytes.
//
// The dynamic tier's eviction policy is directly adapted from the teacher's
// S3-FIFO cache (ai-anonymizing-proxy/internal/anonymizer/s3fifo_cache.go):
// same two FIFO queues (S probationary, M protected) plus a bounded ghost
// set, same saturating frequency counter, same promotion/eviction rules.
// The teacher's version fronts a bbolt-backed PersistentCache so eviction
// also trims on-disk size; §1's "no persistence" non-goal means there is no
// disk tier here, so evicted compiled handles are simply dropped (freeing
// the *regexp.Regexp for GC) rather than deleted from a backing store. This
// bounds the memory a long-lived process accumulates if a host registers
// many one-off dynamic patterns — a concern §4.K's original text left
// unbounded (see SPEC_FULL.md §3.K).
package session

import (
	"container/list"
	"sync"

	"github.com/oneaifw/corefw/internal/regexengine"
)

// patternCache holds the two tiers described above. All public methods
// acquire mu; the API mutex (session.go) additionally serializes every
// exported entry point, so cache access is never actually contended in
// practice, but the cache remains independently safe.
type patternCache struct {
	mu sync.Mutex

	presets map[string]*regexengine.Handle // static preset slots, keyed by pattern text

	capacity int
	sTarget  int
	ghostCap int

	entries map[string]*cacheEntry
	sQueue  *list.List
	mQueue  *list.List

	ghostBuf   []string
	ghostSet   map[string]struct{}
	ghostHead  int
	ghostCount int

	hits, misses int64
}

type cacheEntry struct {
	handle *regexengine.Handle
	freq   uint8
	elem   *list.Element
	inM    bool
}

// newPatternCache returns a cache whose dynamic tier holds at most capacity
// compiled patterns; values < 2 are clamped to 2, mirroring the teacher's
// newS3FIFOCache clamp.
func newPatternCache(capacity int) *patternCache {
	if capacity < 2 {
		capacity = 2
	}
	sTarget := capacity / 10
	if sTarget < 1 {
		sTarget = 1
	}
	ghostCap := 2 * sTarget
	if ghostCap < 4 {
		ghostCap = 4
	}
	return &patternCache{
		presets:  make(map[string]*regexengine.Handle),
		capacity: capacity,
		sTarget:  sTarget,
		ghostCap: ghostCap,
		entries:  make(map[string]*cacheEntry, capacity),
		sQueue:   list.New(),
		mQueue:   list.New(),
		ghostBuf: make([]string, ghostCap),
		ghostSet: make(map[string]struct{}, ghostCap),
	}
}

// resolvePreset compiles and stores pattern in the static preset tier. It is
// called only during session construction for the fixed preset table, never
// evicted, and shared across all sessions.
func (c *patternCache) resolvePreset(pattern string) (*regexengine.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.presets[pattern]; ok {
		return h, nil
	}
	h, err := regexengine.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.presets[pattern] = h
	return h, nil
}

// resolveDynamic compiles (or reuses) a caller-supplied pattern via the
// S3-FIFO dynamic tier. A pattern already present as a preset is served from
// there instead, deduplicating against the preset table per §4.C.
func (c *patternCache) resolveDynamic(pattern string) (*regexengine.Handle, error) {
	c.mu.Lock()
	if h, ok := c.presets[pattern]; ok {
		c.mu.Unlock()
		return h, nil
	}
	if e, ok := c.entries[pattern]; ok {
		if e.freq < 3 {
			e.freq++
		}
		h := e.handle
		c.hits++
		c.mu.Unlock()
		return h, nil
	}
	c.misses++
	c.mu.Unlock()

	h, err := regexengine.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.insert(pattern, h)
	return h, nil
}

// HitsMisses reports the dynamic tier's cumulative hit/miss counts.
func (c *patternCache) HitsMisses() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *patternCache) insert(key string, h *regexengine.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.handle = h
		return
	}

	inM := c.ghostContains(key)
	var elem *list.Element
	if inM {
		elem = c.mQueue.PushBack(key)
	} else {
		elem = c.sQueue.PushBack(key)
	}
	c.entries[key] = &cacheEntry{handle: h, freq: 0, elem: elem, inM: inM}

	for c.sQueue.Len()+c.mQueue.Len() > c.capacity {
		c.evictOne()
	}
}

// evictOne must be called with c.mu held.
func (c *patternCache) evictOne() {
	if c.sQueue.Len() > 0 {
		c.evictFromS()
		return
	}
	c.evictFromM()
}

func (c *patternCache) evictFromS() {
	front := c.sQueue.Front()
	if front == nil {
		return
	}
	key, _ := front.Value.(string)
	c.sQueue.Remove(front)

	e, ok := c.entries[key]
	if !ok {
		return
	}
	if e.freq > 0 {
		e.freq = 0
		e.inM = true
		e.elem = c.mQueue.PushBack(key)
		mTarget := c.capacity - c.sTarget
		if c.mQueue.Len() > mTarget {
			c.evictFromM()
		}
	} else {
		delete(c.entries, key)
		c.ghostAdd(key)
	}
}

func (c *patternCache) evictFromM() {
	front := c.mQueue.Front()
	if front == nil {
		return
	}
	key, _ := front.Value.(string)
	c.mQueue.Remove(front)
	delete(c.entries, key)
}

func (c *patternCache) ghostContains(key string) bool {
	_, ok := c.ghostSet[key]
	return ok
}

func (c *patternCache) ghostAdd(key string) {
	if _, exists := c.ghostSet[key]; exists {
		return
	}
	if c.ghostCount == c.ghostCap {
		oldest := c.ghostBuf[c.ghostHead]
		delete(c.ghostSet, oldest)
		c.ghostHead = (c.ghostHead + 1) % c.ghostCap
		c.ghostCount--
	}
	writeIdx := (c.ghostHead + c.ghostCount) % c.ghostCap
	c.ghostBuf[writeIdx] = key
	c.ghostSet[key] = struct{}{}
	c.ghostCount++
}

// shutdown clears both tiers. Idempotent; callers must not race other cache
// methods against it (mirrors §4.K's "shutdown is idempotent but callers
// must not race other entry points against it").
func (c *patternCache) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presets = make(map[string]*regexengine.Handle)
	c.entries = make(map[string]*cacheEntry, c.capacity)
	c.sQueue = list.New()
	c.mQueue = list.New()
	c.ghostSet = make(map[string]struct{}, c.ghostCap)
	c.ghostBuf = make([]string, c.ghostCap)
	c.ghostHead, c.ghostCount = 0, 0
	c.hits, c.misses = 0, 0
}
