// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package errs accumulates setup-time errors so a batch of
// registrations can report every failure at once instead of stopping
// at the first. It is never used on the per-tick path — per-tick
// failures are refusal counters, not errors (spec.md §7).
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Errs collects zero or more errors.
type Errs struct {
	errors []error
}

// Add appends err if non-nil.
func (e *Errs) Add(err error) {
	if err == nil {
		return
	}
	e.errors = append(e.errors, err)
}

// Errored reports whether any error has been added.
func (e *Errs) Errored() bool {
	return len(e.errors) > 0
}

// Len returns the number of collected errors.
func (e *Errs) Len() int {
	return len(e.errors)
}

// Err returns nil, the single error, or a combined error describing
// all of them.
func (e *Errs) Err() error {
	switch len(e.errors) {
	case 0:
		return nil
	case 1:
		return e.errors[0]
	default:
		return errors.New(e.String())
	}
}

// String renders every collected error as a bulleted list.
func (e *Errs) String() string {
	if len(e.errors) == 0 {
		return ""
	}
	var sb strings.Builder
	plural := "s"
	if len(e.errors) == 1 {
		plural = ""
	}
	fmt.Fprintf(&sb, "%d error%s occurred:", len(e.errors), plural)
	for _, err := range e.errors {
		sb.WriteString("\n\t* ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
