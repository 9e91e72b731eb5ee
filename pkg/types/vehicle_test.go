package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleKind_Spots(t *testing.T) {
	tests := []struct {
		kind VehicleKind
		want int
	}{
		{kind: Bike, want: 1},
		{kind: Car, want: 1},
		{kind: Truck, want: 2},
		{kind: VehicleKind(0), want: 0},
		{kind: VehicleKind(99), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Spots())
			assert.Equal(t, tt.want > 0, tt.kind.Valid())
		})
	}
}

func TestParseVehicleKind(t *testing.T) {
	tests := []struct {
		in      string
		want    VehicleKind
		wantErr bool
	}{
		{in: "bike", want: Bike},
		{in: "Car", want: Car},
		{in: " TRUCK ", want: Truck},
		{in: "truck\n", want: Truck},
		{in: "bus", wantErr: true},
		{in: "", wantErr: true},
		{in: "cars", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVehicleKind(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadInput)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVehicle_Validate(t *testing.T) {
	require.NoError(t, Vehicle{ID: "T1", Kind: Truck}.Validate())
	require.ErrorIs(t, Vehicle{ID: "", Kind: Car}.Validate(), ErrBadInput)
	require.ErrorIs(t, Vehicle{ID: "   ", Kind: Car}.Validate(), ErrBadInput)
	require.ErrorIs(t, Vehicle{ID: "X", Kind: VehicleKind(7)}.Validate(), ErrBadInput)
}

func TestVehicle_JSON(t *testing.T) {
	data, err := json.Marshal(Vehicle{ID: "T1", Kind: Truck})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"T1","kind":"truck"}`, string(data))

	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"id":"B9","kind":"Bike"}`), &v))
	require.Equal(t, Vehicle{ID: "B9", Kind: Bike}, v)

	err = json.Unmarshal([]byte(`{"id":"B9","kind":"boat"}`), &v)
	require.Error(t, err)
}

func TestPlacement_Location(t *testing.T) {
	p := Placement{Floor: 2, Spots: []int{4, 5}}
	require.Equal(t, Location{Floor: 2, Spot: 4}, p.Location())

	clone := p.Clone()
	clone.Spots[0] = 9
	require.Equal(t, 4, p.Spots[0])
}
