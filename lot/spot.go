package lot

import "github.com/joshuapare/lotkit/pkg/types"

// Spot is a single parking space. It has no locking of its own; the owning
// Floor serializes every access.
type Spot struct {
	floor    int
	index    int
	occupied bool
	occupant *types.Vehicle
}

func newSpot(floor, index int) *Spot {
	return &Spot{floor: floor, index: index}
}

// Floor returns the id of the floor holding the spot.
func (s *Spot) Floor() int { return s.floor }

// Index returns the spot's position within its floor.
func (s *Spot) Index() int { return s.index }

// Occupied reports whether a vehicle holds the spot.
func (s *Spot) Occupied() bool { return s.occupied }

// Occupant returns the vehicle holding the spot, if any.
func (s *Spot) Occupant() (types.Vehicle, bool) {
	if !s.occupied {
		return types.Vehicle{}, false
	}
	return *s.occupant, true
}

// Occupy assigns v to a free spot. An already occupied spot is left untouched
// and an Inconsistent error is returned.
func (s *Spot) Occupy(v types.Vehicle) error {
	if s.occupied {
		return types.Errorf(types.ErrKindInconsistent,
			"spot %d/%d already occupied by %q", s.floor, s.index, s.occupant.ID)
	}
	s.occupied = true
	s.occupant = &v
	return nil
}

// Vacate frees the spot. Vacating a free spot is a no-op.
func (s *Spot) Vacate() {
	s.occupied = false
	s.occupant = nil
}
