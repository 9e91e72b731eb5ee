package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := Errorf(ErrKindNotFound, "vehicle %q not found", "C1")

	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrLotFull)
	require.NotErrorIs(t, err, ErrInconsistent)
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("remove C1: %w", ErrNotFound)

	require.ErrorIs(t, err, ErrNotFound)
	kind, ok := KindOf(err)
	require.True(t, ok)
	require.Equal(t, ErrKindNotFound, kind)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: ErrKindInconsistent, Msg: "release floor 0", Err: cause}

	require.ErrorIs(t, err, cause)
	require.Equal(t, "release floor 0: boom", err.Error())
}

func TestError_NilMessage(t *testing.T) {
	var err *Error
	assert.Equal(t, "<nil>", err.Error())
	assert.False(t, err.Is(ErrNotFound))
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	require.False(t, ok)

	_, ok = KindOf(nil)
	require.False(t, ok)
}

func TestIsDefect(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "inconsistent", err: ErrInconsistent, want: true},
		{name: "wrapped inconsistent", err: fmt.Errorf("ctx: %w", Errorf(ErrKindInconsistent, "x")), want: true},
		{name: "full", err: ErrLotFull, want: false},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "plain", err: errors.New("plain"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDefect(tt.err))
		})
	}
}

func TestErrKind_String(t *testing.T) {
	assert.Equal(t, "already-allocated", ErrKindAlreadyAllocated.String())
	assert.Equal(t, "full", ErrKindFull.String())
	assert.Equal(t, "unknown-kind-42", ErrKind(42).String())
}
