package lot

import (
	"sync"

	"github.com/joshuapare/lotkit/pkg/types"
)

// Floor is a fixed-size, ordered group of spots. Spot k always has index k.
//
// TryReserve and Release form the floor's critical section: no two of them
// ever run concurrently on the same floor, which is what keeps placements on
// one floor disjoint.
type Floor struct {
	mu    sync.Mutex
	id    int
	spots []*Spot
	free  int // count of unoccupied spots, guarded by mu
}

func newFloor(id, size int) *Floor {
	spots := make([]*Spot, size)
	for i := range spots {
		spots[i] = newSpot(id, i)
	}
	return &Floor{id: id, spots: spots, free: size}
}

// ID returns the floor's position within the lot.
func (f *Floor) ID() int { return f.id }

// Capacity returns the number of spots on the floor.
func (f *Floor) Capacity() int { return len(f.spots) }

// Available returns the number of free spots. The value is a snapshot and
// may be stale as soon as it is returned.
func (f *Floor) Available() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.free
}

// TryReserve occupies the first run of v.Kind.Spots() contiguous free spots
// and returns their indices in ascending order. It reports false, leaving the
// floor untouched, when no run is long enough.
func (f *Floor) TryReserve(v types.Vehicle) ([]int, bool) {
	need := v.Kind.Spots()
	if need <= 0 || need > len(f.spots) {
		return nil, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.free < need {
		return nil, false
	}

	start := firstFit(f.spots, need)
	if start < 0 {
		return nil, false
	}

	reserved := make([]int, need)
	for i := range reserved {
		s := f.spots[start+i]
		if err := s.Occupy(v); err != nil {
			// firstFit saw this spot free under the same lock.
			panic(err)
		}
		reserved[i] = s.index
	}
	f.free -= need
	return reserved, true
}

// firstFit returns the start of the lowest-indexed run of need free spots,
// or -1 if none exists.
func firstFit(spots []*Spot, need int) int {
	run := 0
	for i, s := range spots {
		if s.occupied {
			run = 0
			continue
		}
		run++
		if run == need {
			return i - need + 1
		}
	}
	return -1
}

// Release frees the listed spots held by vehicle id. Every index is checked
// before anything changes: an out-of-range index or a spot not held by id
// fails with an Inconsistent error and leaves the floor untouched.
func (f *Floor) Release(id string, spots []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, i := range spots {
		if i < 0 || i >= len(f.spots) {
			return types.Errorf(types.ErrKindInconsistent,
				"floor %d: spot %d out of range [0,%d)", f.id, i, len(f.spots))
		}
		occ, ok := f.spots[i].Occupant()
		if !ok || occ.ID != id {
			return types.Errorf(types.ErrKindInconsistent,
				"floor %d: spot %d is not held by %q", f.id, i, id)
		}
	}

	for _, i := range spots {
		s := f.spots[i]
		if s.occupied {
			s.Vacate()
			f.free++
		}
	}
	return nil
}

// snapshot returns the occupant id of every spot ("" for free spots).
func (f *Floor) snapshot() FloorSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	occupants := make([]string, len(f.spots))
	for i, s := range f.spots {
		if s.occupied {
			occupants[i] = s.occupant.ID
		}
	}
	return FloorSnapshot{Floor: f.id, Occupants: occupants}
}
