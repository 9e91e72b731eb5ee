package verify

import (
	"fmt"
	"maps"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/joshuapare/lotkit/lot"
	"github.com/joshuapare/lotkit/pkg/types"
)

// ValidationError describes one broken invariant.
type ValidationError struct {
	Type    string
	Message string
	Floor   int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Floor >= 0 {
		return fmt.Sprintf("%s on floor %d: %s", e.Type, e.Floor, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ValidationError) Unwrap() error { return types.ErrInconsistent }

// AllInvariants runs every check in order.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(s lot.Snapshot) error {
	if err := Contiguity(s); err != nil {
		return err
	}
	if err := NoOverlap(s); err != nil {
		return err
	}
	return Bijection(s)
}

// Contiguity validates the shape of every placement.
func Contiguity(s lot.Snapshot) error {
	for _, id := range sortedIDs(s) {
		p := s.Placements[id]
		if p.Floor < 0 || p.Floor >= len(s.Floors) {
			return &ValidationError{
				Type:    "Contiguity",
				Message: fmt.Sprintf("vehicle %q placed on unknown floor %d", id, p.Floor),
				Floor:   -1,
				Details: map[string]any{"vehicle": id, "floors": len(s.Floors)},
			}
		}
		if len(p.Spots) == 0 {
			return &ValidationError{
				Type:    "Contiguity",
				Message: fmt.Sprintf("vehicle %q holds no spots", id),
				Floor:   p.Floor,
			}
		}

		size := len(s.Floors[p.Floor].Occupants)
		for i, spot := range p.Spots {
			if spot < 0 || spot >= size {
				return &ValidationError{
					Type:    "Contiguity",
					Message: fmt.Sprintf("vehicle %q holds spot %d outside [0,%d)", id, spot, size),
					Floor:   p.Floor,
				}
			}
			if i > 0 && spot != p.Spots[i-1]+1 {
				return &ValidationError{
					Type:    "Contiguity",
					Message: fmt.Sprintf("vehicle %q holds non-contiguous spots %v", id, p.Spots),
					Floor:   p.Floor,
					Details: map[string]any{"vehicle": id, "spots": p.Spots},
				}
			}
		}
	}
	return nil
}

// NoOverlap validates that placements on the same floor are disjoint.
// Placements must already satisfy Contiguity.
func NoOverlap(s lot.Snapshot) error {
	claimed := make([]*bitset.BitSet, len(s.Floors))
	owner := make([]map[int]string, len(s.Floors))
	for i, fs := range s.Floors {
		claimed[i] = bitset.New(uint(len(fs.Occupants)))
		owner[i] = make(map[int]string)
	}

	for _, id := range sortedIDs(s) {
		p := s.Placements[id]
		for _, spot := range p.Spots {
			if claimed[p.Floor].Test(uint(spot)) {
				return &ValidationError{
					Type:    "NoOverlap",
					Message: fmt.Sprintf("spot %d claimed by %q and %q", spot, owner[p.Floor][spot], id),
					Floor:   p.Floor,
					Details: map[string]any{"spot": spot, "first": owner[p.Floor][spot], "second": id},
				}
			}
			claimed[p.Floor].Set(uint(spot))
			owner[p.Floor][spot] = id
		}
	}
	return nil
}

// Bijection validates that physical occupancy and the registry agree spot by
// spot. Placements must already satisfy Contiguity.
func Bijection(s lot.Snapshot) error {
	covered := make([]*bitset.BitSet, len(s.Floors))
	owner := make([]map[int]string, len(s.Floors))
	for i, fs := range s.Floors {
		covered[i] = bitset.New(uint(len(fs.Occupants)))
		owner[i] = make(map[int]string)
	}
	for _, id := range sortedIDs(s) {
		p := s.Placements[id]
		for _, spot := range p.Spots {
			covered[p.Floor].Set(uint(spot))
			owner[p.Floor][spot] = id
		}
	}

	for i, fs := range s.Floors {
		occupied := bitset.New(uint(len(fs.Occupants)))
		for spot, id := range fs.Occupants {
			if id != "" {
				occupied.Set(uint(spot))
			}
		}

		if !occupied.Equal(covered[i]) {
			diff := occupied.SymmetricDifference(covered[i])
			spot, _ := diff.NextSet(0)
			msg := fmt.Sprintf("spot %d occupied by %q but not in the registry", spot, fs.Occupants[int(spot)])
			if covered[i].Test(spot) {
				msg = fmt.Sprintf("spot %d registered to %q but free", spot, owner[i][int(spot)])
			}
			return &ValidationError{
				Type:    "Bijection",
				Message: msg,
				Floor:   fs.Floor,
				Details: map[string]any{"mismatched": diff.Count()},
			}
		}

		for spot, id := range fs.Occupants {
			if id != "" && owner[i][spot] != id {
				return &ValidationError{
					Type:    "Bijection",
					Message: fmt.Sprintf("spot %d occupied by %q but registered to %q", spot, id, owner[i][spot]),
					Floor:   fs.Floor,
				}
			}
		}
	}
	return nil
}

func sortedIDs(s lot.Snapshot) []string {
	return slices.Sorted(maps.Keys(s.Placements))
}
