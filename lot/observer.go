package lot

import "github.com/joshuapare/lotkit/pkg/types"

// Observer receives the outcome of every Park and Remove. Implementations
// must be safe for concurrent use and must not call back into the Lot.
type Observer interface {
	// ObservePark is called once per Park with its result (nil on success).
	ObservePark(kind types.VehicleKind, err error)
	// ObserveRemove is called once per Remove with its result.
	ObserveRemove(err error)
}

type noopObserver struct{}

func (noopObserver) ObservePark(types.VehicleKind, error) {}
func (noopObserver) ObserveRemove(error)                  {}
