//go:build !linux

// Package mapmul perf counter stubs for non-Linux platforms
package mapmul

// perfGroup stub for platforms without perf_event_open
type perfGroup struct{}

// openPerfGroup reports no counter support; measurement falls back to
// wall-clock timing.
func openPerfGroup() (*perfGroup, error) {
	return nil, nil
}

func (g *perfGroup) start() {}

func (g *perfGroup) stop(stats *InvocationStats) {}

func (g *perfGroup) close() {}
