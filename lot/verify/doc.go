// Package verify checks lot invariants over a lot.Snapshot.
//
// # Overview
//
// The checks are intended for tests and for the demo harness: take a snapshot
// while no Park or Remove is in flight and assert that it is sound.
//
// Validation categories:
//   - Contiguity: every placement names an existing floor and a contiguous,
//     ascending, in-range run of spots
//   - NoOverlap: no spot is claimed by two placements
//   - Bijection: a spot is occupied exactly when a placement covers it, and
//     by that placement's vehicle
//
// # Quick Start
//
//	if err := verify.AllInvariants(l.Snapshot()); err != nil {
//	    t.Fatalf("lot invariant broken: %v", err)
//	}
//
// # ValidationError
//
// All checks return *ValidationError on failure. It unwraps to
// types.ErrInconsistent, so errors.Is and types.IsDefect both recognise it:
//
//	type ValidationError struct {
//	    Type    string         // check name, e.g. "NoOverlap"
//	    Message string         // human-readable description
//	    Floor   int            // floor involved (-1 if N/A)
//	    Details map[string]any // additional context
//	}
package verify
