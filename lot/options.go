package lot

import (
	"log/slog"

	"github.com/joshuapare/lotkit/pkg/types"
)

// Options configures a Lot.
type Options struct {
	// FloorSizes gives the spot count of each floor, in floor order.
	// When set it takes precedence over Floors and SpotsPerFloor.
	FloorSizes []int

	// Floors and SpotsPerFloor describe a lot of identical floors.
	Floors        int
	SpotsPerFloor int

	// Logger defaults to logger.L.
	Logger *slog.Logger

	// Observer defaults to a no-op.
	Observer Observer
}

// sizes resolves the per-floor spot counts.
func (o Options) sizes() ([]int, error) {
	if len(o.FloorSizes) > 0 {
		sizes := make([]int, len(o.FloorSizes))
		for i, n := range o.FloorSizes {
			if n <= 0 {
				return nil, types.Errorf(types.ErrKindInput, "floor %d: size must be positive, got %d", i, n)
			}
			sizes[i] = n
		}
		return sizes, nil
	}

	if o.Floors <= 0 {
		return nil, types.Errorf(types.ErrKindInput, "floors must be positive, got %d", o.Floors)
	}
	if o.SpotsPerFloor <= 0 {
		return nil, types.Errorf(types.ErrKindInput, "spots per floor must be positive, got %d", o.SpotsPerFloor)
	}
	sizes := make([]int, o.Floors)
	for i := range sizes {
		sizes[i] = o.SpotsPerFloor
	}
	return sizes, nil
}
