// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package ordmath holds the tiny generic ordering helpers shared by
// budget (Min over remaining values), orderkey (Compare, which work
// queues and the delta buffer reach through orderkey.Compare), and
// buffer's record comparator, so the same three-way comparison and
// min reduction aren't hand-rolled per package.
package ordmath

import "golang.org/x/exp/constraints"

// Compare returns -1, 0, or 1 as a orders before, equal to, or after b.
func Compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
