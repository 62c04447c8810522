package perft

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const shardCount = 256
const shardMask = shardCount - 1

// Entry caches the node count of one position at one depth.
type Entry struct {
	Key   uint64 // Full Zobrist hash for verification
	Nodes int64
	Depth int32
}

// Table is a fixed-size hash table of subtree node counts, safe for use by
// concurrent workers.
type Table struct {
	entries []Entry
	shards  [shardCount]sync.RWMutex
	size    uint64
	mask    uint64

	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewTable creates a table using about sizeMB megabytes.
func NewTable(sizeMB int) *Table {
	entrySize := uint64(24)
	numEntries := max(roundDownToPowerOf2((uint64(sizeMB)*1024*1024)/entrySize), 1)

	return &Table{
		entries: make([]Entry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (t *Table) shardIndex(idx uint64) int {
	return int(idx & shardMask)
}

// Probe returns the cached count for hash at exactly depth.
func (t *Table) Probe(hash uint64, depth int) (int64, bool) {
	t.probes.Add(1)

	idx := hash & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].RLock()
	e := t.entries[idx]
	t.shards[shard].RUnlock()

	if e.Key == hash && int(e.Depth) == depth && depth > 0 {
		t.hits.Add(1)
		return e.Nodes, true
	}
	return 0, false
}

// Store caches nodes for hash at depth. Deeper entries are kept over
// shallower ones since they save more work.
func (t *Table) Store(hash uint64, depth int, nodes int64) {
	idx := hash & t.mask
	shard := t.shardIndex(idx)

	t.shards[shard].Lock()
	e := &t.entries[idx]
	if e.Depth == 0 || depth >= int(e.Depth) {
		*e = Entry{Key: hash, Nodes: nodes, Depth: int32(depth)}
	}
	t.shards[shard].Unlock()
}

// Clear empties the table and resets its statistics.
func (t *Table) Clear() {
	for i := range t.shards {
		t.shards[i].Lock()
	}
	clear(t.entries)
	for i := range t.shards {
		t.shards[i].Unlock()
	}
	t.hits.Store(0)
	t.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (t *Table) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (t *Table) Size() uint64 {
	return t.size
}
