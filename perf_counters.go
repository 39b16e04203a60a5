// Package mapmul performance counter integration for invocation measurement
package mapmul

import (
	"fmt"
	"time"
)

// InvocationStats holds measurements for one kernel invocation
type InvocationStats struct {
	// Name identifies the measured invocation
	Name string

	// Duration is the wall-clock time of the invocation
	Duration time.Duration

	// CPU counters (Linux only, zero elsewhere)
	Cycles       uint64
	Instructions uint64

	// IPC is instructions per cycle, derived from the counters
	IPC float64

	// HardwareCounters reports whether Cycles/Instructions are populated
	HardwareCounters bool
}

// String formats the stats for logging
func (s *InvocationStats) String() string {
	if s.HardwareCounters {
		return fmt.Sprintf("%s: %v, %d cycles, %d instructions, IPC=%.2f",
			s.Name, s.Duration, s.Cycles, s.Instructions, s.IPC)
	}
	return fmt.Sprintf("%s: %v", s.Name, s.Duration)
}

// MeasureInvocation runs fn and reports its wall-clock time plus, where the
// platform supports it, hardware cycle and instruction counts from
// perf_event_open. Counter setup failures (missing permissions, non-Linux
// platforms) degrade to timing-only measurement; fn's error is returned
// alongside whatever was measured.
func MeasureInvocation(name string, fn func() error) (*InvocationStats, error) {
	stats := &InvocationStats{Name: name}

	group, _ := openPerfGroup()
	if group != nil {
		defer group.close()
		group.start()
	}

	start := time.Now()
	err := fn()
	stats.Duration = time.Since(start)

	if group != nil {
		group.stop(stats)
	}
	if stats.Cycles > 0 {
		stats.HardwareCounters = true
		stats.IPC = float64(stats.Instructions) / float64(stats.Cycles)
	}

	return stats, err
}
