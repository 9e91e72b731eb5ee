package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInput            ErrKind = iota // unknown vehicle kind or malformed request
	ErrKindAlreadyAllocated                // vehicle id already holds a placement
	ErrKindFull                            // no floor has a sufficient contiguous run
	ErrKindNotFound                        // vehicle id holds no placement
	ErrKindInconsistent                    // broken invariant; a defect, never expected
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInput:
		return "input"
	case ErrKindAlreadyAllocated:
		return "already-allocated"
	case ErrKindFull:
		return "full"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindInconsistent:
		return "inconsistent"
	default:
		return fmt.Sprintf("unknown-kind-%d", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so errors carrying
// extra context still match the sentinel for their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by the lot.
var (
	// ErrBadInput indicates an unknown vehicle kind or a malformed request.
	ErrBadInput = &Error{Kind: ErrKindInput, Msg: "invalid request"}
	// ErrAlreadyParked indicates the vehicle id already holds a placement.
	ErrAlreadyParked = &Error{Kind: ErrKindAlreadyAllocated, Msg: "vehicle already parked"}
	// ErrLotFull indicates no floor could fit the vehicle.
	ErrLotFull = &Error{Kind: ErrKindFull, Msg: "no space available"}
	// ErrNotFound indicates the vehicle id holds no placement.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "vehicle not found"}
	// ErrInconsistent indicates a broken lot invariant.
	ErrInconsistent = &Error{Kind: ErrKindInconsistent, Msg: "lot state inconsistent"}
)

// Errorf builds a typed error of the given kind with a formatted message.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if !errors.As(err, &te) || te == nil {
		return 0, false
	}
	return te.Kind, true
}

// IsDefect reports whether err signals a broken invariant rather than an
// expected failure.
func IsDefect(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == ErrKindInconsistent
}
