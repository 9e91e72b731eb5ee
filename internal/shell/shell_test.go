package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/lotkit/lot"
	"github.com/joshuapare/lotkit/pkg/types"
)

func newTestShell(t *testing.T, sizes ...int) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	l, err := lot.New(lot.Options{FloorSizes: sizes})
	require.NoError(t, err)
	var out bytes.Buffer
	return New(l, &out), &out
}

func TestExec_Commands(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
	}{
		{name: "park truck", line: "park T1 truck", want: "parked T1 (truck) at floor 0, spots 0-1\n"},
		{name: "park car", line: "park C1 Car", want: "parked C1 (car) at floor 0, spot 2\n"},
		{name: "park full", line: "park C2 car", wantErr: types.ErrLotFull},
		{name: "park duplicate", line: "park T1 bike", wantErr: types.ErrAlreadyParked},
		{name: "where", line: "where T1", want: "T1 is at floor 0, spot 0\n"},
		{name: "where unknown", line: "where nobody", wantErr: types.ErrNotFound},
		{name: "full", line: "full", want: "lot is full\n"},
		{name: "leave alias", line: "leave C1", want: "removed C1\n"},
		{name: "remove unknown", line: "remove C1", wantErr: types.ErrNotFound},
		{name: "avail", line: "avail", want: "floor 0: 1/3 free\n"},
		{name: "status", line: "status", want: "floor 0: [T1 T1 .]\n1 vehicle(s) parked\n"},
		{name: "unknown kind", line: "park B1 boat", wantErr: types.ErrBadInput},
		{name: "missing args", line: "park B1", wantErr: types.ErrBadInput},
		{name: "unknown command", line: "fly away", wantErr: types.ErrBadInput},
		{name: "unterminated quote", line: `park "B1 bike`, wantErr: types.ErrBadInput},
		{name: "comment", line: "# park X car", want: ""},
		{name: "blank", line: "   ", want: ""},
	}

	in, out := newTestShell(t, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			quit, err := in.Exec(tt.line)
			require.False(t, quit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, out.String())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, out.String())
		})
	}
}

func TestExec_QuotedID(t *testing.T) {
	in, out := newTestShell(t, 2)

	_, err := in.Exec(`park "red bike" bike`)
	require.NoError(t, err)
	require.Equal(t, "parked red bike (bike) at floor 0, spot 0\n", out.String())

	out.Reset()
	_, err = in.Exec(`where 'red bike'`)
	require.NoError(t, err)
	require.Equal(t, "red bike is at floor 0, spot 0\n", out.String())
}

func TestExec_Exit(t *testing.T) {
	in, _ := newTestShell(t, 1)
	for _, line := range []string{"exit", "quit", "EXIT"} {
		quit, err := in.Exec(line)
		require.NoError(t, err)
		require.True(t, quit, line)
	}
}

func TestRun_Session(t *testing.T) {
	in, out := newTestShell(t, 1, 1)

	script := strings.Join([]string{
		"park T1 truck",
		"park C1 car",
		"park B1 bike",
		"full",
		"remove C1",
		"remove C1",
		"exit",
		"park never reached",
	}, "\n")

	require.NoError(t, in.Run(context.Background(), strings.NewReader(script), ""))

	want := strings.Join([]string{
		`error: no space for truck "T1": need 2 contiguous spots`,
		"parked C1 (car) at floor 0, spot 0",
		"parked B1 (bike) at floor 1, spot 0",
		"lot is full",
		"removed C1",
		`error: vehicle "C1" not found`,
		"",
	}, "\n")
	require.Equal(t, want, out.String())
}

func TestRun_PromptAndEOF(t *testing.T) {
	in, out := newTestShell(t, 1)

	require.NoError(t, in.Run(context.Background(), strings.NewReader("avail\n"), "> "))
	require.Equal(t, "> floor 0: 1/1 free\n> ", out.String())
}

func TestRun_Cancelled(t *testing.T) {
	in, _ := newTestShell(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := in.Run(ctx, strings.NewReader("avail\n"), "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestHelp(t *testing.T) {
	in, out := newTestShell(t, 1)
	_, err := in.Exec("help")
	require.NoError(t, err)
	for _, want := range []string{"park <id> <bike|car|truck>", "remove <id>", "where <id>", "exit"} {
		require.Contains(t, out.String(), want)
	}
}

func TestFormatSpots(t *testing.T) {
	require.Equal(t, "no spots", formatSpots(nil))
	require.Equal(t, "spot 4", formatSpots([]int{4}))
	require.Equal(t, "spots 4-5", formatSpots([]int{4, 5}))
}
