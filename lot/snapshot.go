package lot

import "github.com/joshuapare/lotkit/pkg/types"

// FloorSnapshot records who holds each spot of one floor. Occupants[k] is the
// vehicle id at spot k, or "" when the spot is free.
type FloorSnapshot struct {
	Floor     int      `json:"floor"`
	Occupants []string `json:"occupants"`
}

// Free returns the number of free spots in the snapshot.
func (fs FloorSnapshot) Free() int {
	n := 0
	for _, id := range fs.Occupants {
		if id == "" {
			n++
		}
	}
	return n
}

// Snapshot is a copy of the physical occupancy and the registry.
type Snapshot struct {
	Floors     []FloorSnapshot            `json:"floors"`
	Placements map[string]types.Placement `json:"placements"`
}
