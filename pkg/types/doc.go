// Package types defines the small, copyable values shared by the lot
// allocator and its callers: vehicle kinds, vehicles, placements, and the
// typed error taxonomy.
//
// Design goals:
//   - Value types only; nothing here holds locks or references lot state.
//   - Typed errors with stable categories (input/already-allocated/full/...).
//   - Results that may be absent are returned as (T, bool), never as sentinels.
package types
