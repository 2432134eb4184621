// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

//go:build detdebug

package detassert

func sorted(cond bool, msg string) {
	if !cond {
		panic("detassert: sort post-condition violated: " + msg)
	}
}

func invariant(cond bool, msg string) {
	if !cond {
		panic("detassert: invariant violated: " + msg)
	}
}
