package lot

import (
	"hash/fnv"
	"sync"

	"github.com/joshuapare/lotkit/pkg/types"
)

// numShards is the number of independent registry shards.
// Must be a power of two for fast modulo via bitmask.
const numShards = 16

// entry is the registry record for one parked vehicle. It is written once by
// Park and never mutated; Remove deletes it.
type entry struct {
	vehicle   types.Vehicle
	placement types.Placement
}

// registryShard is one slice of the id space.
type registryShard struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// registry maps vehicle ids to their placements, spread across shards to
// reduce lock contention between unrelated ids.
type registry struct {
	shards [numShards]registryShard
}

func newRegistry() *registry {
	r := &registry{}
	for i := range r.shards {
		r.shards[i].entries = make(map[string]entry)
	}
	return r
}

// shardFor returns the shard index for an id using FNV-1a.
func shardFor(id string) int {
	h := fnv.New32a()
	h.Write([]byte(id)) //nolint:errcheck // fnv hash.Write never errors
	return int(h.Sum32() & (numShards - 1))
}

func (r *registry) shard(id string) *registryShard {
	return &r.shards[shardFor(id)]
}

func (r *registry) get(id string) (entry, bool) {
	sh := r.shard(id)
	sh.mu.RLock()
	e, ok := sh.entries[id]
	sh.mu.RUnlock()
	return e, ok
}

func (r *registry) contains(id string) bool {
	_, ok := r.get(id)
	return ok
}

// insert stores e under id unless id is already present. The check and the
// write happen in one critical section.
func (r *registry) insert(id string, e entry) bool {
	sh := r.shard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, exists := sh.entries[id]; exists {
		return false
	}
	sh.entries[id] = e
	return true
}

// remove deletes id's entry. Callers hold the per-id lock and have already
// looked the entry up, so a missing id is a no-op.
func (r *registry) remove(id string) {
	sh := r.shard(id)
	sh.mu.Lock()
	delete(sh.entries, id)
	sh.mu.Unlock()
}

func (r *registry) len() int {
	total := 0
	for i := range r.shards {
		sh := &r.shards[i]
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}

// placements copies every placement, keyed by vehicle id. Shards are read one
// at a time, so the copy is only exact when no Park or Remove is in flight.
func (r *registry) placements() map[string]types.Placement {
	out := make(map[string]types.Placement)
	for i := range r.shards {
		sh := &r.shards[i]
		sh.mu.RLock()
		for id, e := range sh.entries {
			out[id] = e.placement.Clone()
		}
		sh.mu.RUnlock()
	}
	return out
}
