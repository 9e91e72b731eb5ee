package lot_test

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/lotkit/lot"
	"github.com/joshuapare/lotkit/lot/verify"
	"github.com/joshuapare/lotkit/pkg/types"
)

// runConcurrently starts n goroutines that block until all are ready, then
// calls fn(i) in each.
func runConcurrently(n int, fn func(i int)) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			fn(i)
		}()
	}
	close(start)
	wg.Wait()
}

func Test_Concurrent_DuplicateIDOneWinner(t *testing.T) {
	for round := range 20 {
		l, err := lot.New(lot.Options{Floors: 4, SpotsPerFloor: 50})
		require.NoError(t, err)

		const n = 64
		var wins, dups atomic.Int32
		runConcurrently(n, func(i int) {
			kind := types.Kinds[i%len(types.Kinds)]
			_, err := l.Park(types.Vehicle{ID: "SAME", Kind: kind})
			switch {
			case err == nil:
				wins.Add(1)
			case types.IsDefect(err):
				t.Errorf("round %d: defect: %v", round, err)
			default:
				assert.ErrorIs(t, err, types.ErrAlreadyParked)
				dups.Add(1)
			}
		})

		require.EqualValues(t, 1, wins.Load(), "round %d", round)
		require.EqualValues(t, n-1, dups.Load(), "round %d", round)
		require.Equal(t, 1, l.Parked())

		v, ok := l.Vehicle("SAME")
		require.True(t, ok)
		free := 0
		for _, fa := range l.Available() {
			free += fa.Available
		}
		require.Equal(t, l.Capacity()-v.Kind.Spots(), free, "losers must hand their spots back")
		require.NoError(t, verify.AllInvariants(l.Snapshot()))
	}
}

func Test_Concurrent_OversubscribedNoOverlap(t *testing.T) {
	l, err := lot.New(lot.Options{FloorSizes: []int{7, 5, 9}})
	require.NoError(t, err)

	const n = 200
	var parked, full atomic.Int32
	runConcurrently(n, func(i int) {
		kind := types.Kinds[i%len(types.Kinds)]
		_, err := l.Park(types.Vehicle{ID: fmt.Sprintf("V%03d", i), Kind: kind})
		switch {
		case err == nil:
			parked.Add(1)
		case types.IsDefect(err):
			t.Errorf("defect: %v", err)
		default:
			assert.ErrorIs(t, err, types.ErrLotFull)
			full.Add(1)
		}
	})

	require.EqualValues(t, n, parked.Load()+full.Load())
	require.EqualValues(t, l.Parked(), parked.Load())
	require.NoError(t, verify.AllInvariants(l.Snapshot()))
}

func Test_Concurrent_Churn(t *testing.T) {
	l, err := lot.New(lot.Options{Floors: 3, SpotsPerFloor: 8})
	require.NoError(t, err)

	const workers = 16
	runConcurrently(workers, func(w int) {
		rng := rand.New(rand.NewSource(int64(w)))
		for i := range 200 {
			v := types.Vehicle{
				ID:   fmt.Sprintf("w%d-%d", w, rng.Intn(4)),
				Kind: types.Kinds[rng.Intn(len(types.Kinds))],
			}
			if rng.Intn(2) == 0 {
				_, err := l.Park(v)
				if types.IsDefect(err) {
					t.Errorf("step %d: park defect: %v", i, err)
				}
				continue
			}
			if err := l.Remove(v.ID); types.IsDefect(err) {
				t.Errorf("step %d: remove defect: %v", i, err)
			}
		}
	})

	require.NoError(t, verify.AllInvariants(l.Snapshot()))

	for id := range l.Snapshot().Placements {
		require.NoError(t, l.Remove(id))
	}
	require.Equal(t, 0, l.Parked())
	for _, fa := range l.Available() {
		require.Equal(t, fa.Capacity, fa.Available)
	}
}

func Test_Concurrent_ParkRemoveSameID(t *testing.T) {
	l, err := lot.New(lot.Options{Floors: 1, SpotsPerFloor: 4})
	require.NoError(t, err)

	runConcurrently(32, func(i int) {
		for range 50 {
			if i%2 == 0 {
				_, err := l.Park(types.Vehicle{ID: "X", Kind: types.Truck})
				assert.False(t, types.IsDefect(err), "park: %v", err)
			} else {
				err := l.Remove("X")
				assert.False(t, types.IsDefect(err), "remove: %v", err)
			}
		}
	})

	require.NoError(t, verify.AllInvariants(l.Snapshot()))
	require.LessOrEqual(t, l.Parked(), 1)
}

func Test_Concurrent_DoubleRemoveOneSuccess(t *testing.T) {
	for round := range 20 {
		l, err := lot.New(lot.Options{Floors: 2, SpotsPerFloor: 4})
		require.NoError(t, err)
		_, err = l.Park(types.Vehicle{ID: "T1", Kind: types.Truck})
		require.NoError(t, err)

		const n = 16
		var removed, missing atomic.Int32
		runConcurrently(n, func(int) {
			err := l.Remove("T1")
			switch {
			case err == nil:
				removed.Add(1)
			case types.IsDefect(err):
				t.Errorf("round %d: defect: %v", round, err)
			default:
				assert.ErrorIs(t, err, types.ErrNotFound)
				missing.Add(1)
			}
		})

		require.EqualValues(t, 1, removed.Load(), "round %d", round)
		require.EqualValues(t, n-1, missing.Load(), "round %d", round)
		require.Equal(t, 8, l.Available()[0].Available+l.Available()[1].Available)
		require.NoError(t, verify.AllInvariants(l.Snapshot()))
	}
}
