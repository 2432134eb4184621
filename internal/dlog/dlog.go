// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package dlog binds the kernel's setup/refusal-time logging to
// github.com/luxfi/log. The kernel never logs on the per-tick hot
// path; every call site in this module is setup-time (Reserve,
// registration) or an exceptional refusal a host may want surfaced.
package dlog

import "github.com/luxfi/log"

// Logger is the logging interface every kernel component accepts.
// Components default to NoOp() when none is supplied.
type Logger = log.Logger

// NoOp returns a logger that discards everything, used as the default
// when a host does not wire one in.
func NoOp() Logger {
	return log.NewNoOpLogger()
}

// WithComponent tags logger with the component name producing log
// lines, matching the "With" field-binding convention luxfi/log
// exposes.
func WithComponent(logger Logger, component string) Logger {
	if logger == nil {
		return NoOp()
	}
	return logger.With("component", component)
}
