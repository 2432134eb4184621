// Copyright (c) 2026 the Domino authors. All rights reserved.
// Use of this source code is governed by the MIT license in the LICENSE file.

// Package metrics exposes the kernel's refusal counters and budget
// gauges to Prometheus. Nothing in this package sits on the
// authoritative tick path: a host registers a Registry once at setup
// and polls scheduler/budget/workqueue/buffer probes into it between
// ticks (or on a separate scrape goroutine) — never from inside
// Scheduler.Tick.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry wraps a prometheus.Registerer with the counter/gauge shapes
// the kernel's probes need, grounded on metrics/metrics.go and
// metrics/metric.go.
type Registry struct {
	reg prometheus.Registerer
}

// New wraps reg. Passing prometheus.NewRegistry() gives the host an
// isolated registry; passing prometheus.DefaultRegisterer merges into
// the process-wide one.
func New(reg prometheus.Registerer) *Registry {
	return &Registry{reg: reg}
}

// RefusalCounter registers (or returns, if already registered) a
// monotonic counter backing one of the kernel's probe_* refusal
// counters (spec.md §7/§9 — "Refusal counter").
func (r *Registry) RefusalCounter(name, help string) (prometheus.Counter, error) {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
	if err := r.reg.Register(c); err != nil {
		if existing, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if cast, ok := existing.ExistingCollector.(prometheus.Counter); ok {
				return cast, nil
			}
		}
		return nil, err
	}
	return c, nil
}

// ScopeGauge registers a gauge intended to mirror a budget scope's
// remaining units between ticks.
func (r *Registry) ScopeGauge(name, help string, labels []string) (*prometheus.GaugeVec, error) {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, labels)
	if err := r.reg.Register(g); err != nil {
		if existing, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if cast, ok := existing.ExistingCollector.(*prometheus.GaugeVec); ok {
				return cast, nil
			}
		}
		return nil, err
	}
	return g, nil
}
