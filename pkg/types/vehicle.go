package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// VehicleKind enumerates the vehicle classes the lot accepts. The set is
// closed; each kind needs a fixed number of contiguous spots.
type VehicleKind uint8

const (
	Bike VehicleKind = iota + 1
	Car
	Truck
)

// Kinds lists every valid kind in declaration order.
var Kinds = []VehicleKind{Bike, Car, Truck}

// Spots returns how many contiguous spots a vehicle of this kind occupies.
// Invalid kinds need zero.
func (k VehicleKind) Spots() int {
	switch k {
	case Bike, Car:
		return 1
	case Truck:
		return 2
	default:
		return 0
	}
}

// Valid reports whether k is one of the declared kinds.
func (k VehicleKind) Valid() bool {
	return k.Spots() > 0
}

func (k VehicleKind) String() string {
	switch k {
	case Bike:
		return "bike"
	case Car:
		return "car"
	case Truck:
		return "truck"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k VehicleKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, Errorf(ErrKindInput, "unknown vehicle kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name, see ParseVehicleKind.
func (k *VehicleKind) UnmarshalText(text []byte) error {
	parsed, err := ParseVehicleKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseVehicleKind resolves a kind name. Matching ignores surrounding
// whitespace and case ("Truck", " TRUCK " and "truck" are equal).
func ParseVehicleKind(s string) (VehicleKind, error) {
	// A Caser is stateful, so each call folds with its own.
	name := cases.Fold().String(strings.TrimSpace(s))
	for _, k := range Kinds {
		if name == k.String() {
			return k, nil
		}
	}
	return 0, &Error{
		Kind: ErrKindInput,
		Msg:  fmt.Sprintf("unknown vehicle kind %q (want bike, car or truck)", s),
	}
}

// Vehicle is a client of the lot. ID is the uniqueness key across the
// whole lot.
type Vehicle struct {
	ID   string      `json:"id"`
	Kind VehicleKind `json:"kind"`
}

// Validate rejects vehicles that must never reach a floor.
func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return Errorf(ErrKindInput, "vehicle id must not be empty")
	}
	if !v.Kind.Valid() {
		return Errorf(ErrKindInput, "vehicle %q: unknown kind %d", v.ID, uint8(v.Kind))
	}
	return nil
}

func (v Vehicle) String() string {
	return v.Kind.String() + " " + v.ID
}
