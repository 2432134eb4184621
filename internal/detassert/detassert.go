// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package detassert implements the debug-only invariant checks spec.md
// §7 calls for: "InvariantViolated: detected only in debug builds via
// assertions ... release builds assume the invariant." Build with
// -tags detdebug to enable them; without the tag both functions are
// no-ops with no overhead on the authoritative tick path.
package detassert

// Sorted panics with msg if cond is false and the detdebug build tag is
// set. Use it to verify a post-sort non-decreasing invariant.
func Sorted(cond bool, msg string) {
	sorted(cond, msg)
}

// Invariant panics with msg if cond is false and the detdebug build tag
// is set. Use it for any invariant whose violation would mean two
// peers could diverge.
func Invariant(cond bool, msg string) {
	invariant(cond, msg)
}
