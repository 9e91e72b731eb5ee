package types

// Location is a single spot address: the floor and the spot index within it.
type Location struct {
	Floor int `json:"floor"`
	Spot  int `json:"spot"`
}

// Placement is the full set of spots assigned to one vehicle. Spots are
// ascending and contiguous, all on Floor.
type Placement struct {
	Floor int   `json:"floor"`
	Spots []int `json:"spots"`
}

// Location returns the address of the lowest assigned spot.
func (p Placement) Location() Location {
	if len(p.Spots) == 0 {
		return Location{Floor: p.Floor, Spot: -1}
	}
	return Location{Floor: p.Floor, Spot: p.Spots[0]}
}

// Clone returns a copy whose Spots slice is not shared with p.
func (p Placement) Clone() Placement {
	spots := make([]int, len(p.Spots))
	copy(spots, p.Spots)
	return Placement{Floor: p.Floor, Spots: spots}
}

// FloorAvailability is a point-in-time count of free spots on one floor.
type FloorAvailability struct {
	Floor     int `json:"floor"`
	Available int `json:"available"`
	Capacity  int `json:"capacity"`
}
