// Package lot allocates contiguous runs of parking spots to concurrently
// arriving vehicles.
//
// # Overview
//
// A Lot owns a fixed, ordered list of Floors; each Floor owns a fixed, ordered
// list of Spots. Floors and spots are created once by New and never resized.
// A vehicle needs Kind.Spots() contiguous spots on a single floor:
//
//	bike  -> 1 spot
//	car   -> 1 spot
//	truck -> 2 adjacent spots
//
// # Operations
//
//   - Park(v): place v on the first floor with a sufficient free run
//   - Remove(id): free the spots held by id
//   - Locate(id): lowest spot held by id, if any
//   - Available(): free spots per floor, in floor order
//   - IsFull(): true when no floor has a free spot
//
// # Usage Example
//
//	l, err := lot.New(lot.Options{Floors: 2, SpotsPerFloor: 10})
//	if err != nil {
//	    return err
//	}
//
//	p, err := l.Park(types.Vehicle{ID: "T1", Kind: types.Truck})
//	switch {
//	case errors.Is(err, types.ErrAlreadyParked):
//	    // T1 already holds a placement
//	case errors.Is(err, types.ErrLotFull):
//	    // no floor has two adjacent free spots
//	}
//
//	// p.Floor == 0, p.Spots == []int{0, 1}
//	err = l.Remove("T1")
//
// # Spot Selection
//
// Floors are tried strictly in order. Within a floor the scan is first-fit:
// the run with the lowest starting index that reaches the required length
// wins, regardless of how much larger the run is. A run resets whenever an
// occupied spot is seen, so two free spots separated by an occupied one never
// satisfy a truck.
//
// # Thread Safety
//
// All Lot methods are safe for concurrent use.
//
//   - Each Floor serializes its own scan-and-mark and release under a mutex;
//     different floors proceed in parallel and no goroutine ever holds two
//     floor locks.
//   - The vehicle registry is split into 16 shards, each under its own
//     RWMutex. Committing a placement is an insert-if-absent on one shard.
//   - Park's commit and Remove's lookup/release/delete are serialized per
//     vehicle id with a named lock, so two callers racing on the same id see
//     exactly one winner.
//
// Park reserves spots before committing the id. When a concurrent Park for the
// same id commits first, the loser hands its reserved spots back to the floor
// and fails with types.ErrAlreadyParked.
//
// # Errors
//
// Expected failures are *types.Error values of kind Input, AlreadyAllocated,
// Full or NotFound. A kind Inconsistent error means a lot invariant was found
// broken; it is logged at error level and should never occur.
//
// # Related Packages
//
//   - github.com/joshuapare/lotkit/lot/verify: invariant checks over a Snapshot
//   - github.com/joshuapare/lotkit/lot/metrics: Prometheus Observer
//   - github.com/joshuapare/lotkit/pkg/types: vehicles, placements, errors
package lot
