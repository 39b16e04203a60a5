//go:build linux

// Package mapmul Linux perf_event_open counter implementation
package mapmul

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

// perfGroup holds one file descriptor per hardware event, both counting the
// calling thread in user mode only.
type perfGroup struct {
	cyclesFD       int
	instructionsFD int
}

// openPerfGroup opens cycle and instruction counters for the current thread.
// Returns nil when the kernel refuses (perf_event_paranoid, seccomp, missing
// PMU); callers fall back to wall-clock timing.
func openPerfGroup() (*perfGroup, error) {
	cycles, err := openHardwareCounter(unix.PERF_COUNT_HW_CPU_CYCLES)
	if err != nil {
		return nil, err
	}
	instructions, err := openHardwareCounter(unix.PERF_COUNT_HW_INSTRUCTIONS)
	if err != nil {
		unix.Close(cycles)
		return nil, err
	}
	return &perfGroup{cyclesFD: cycles, instructionsFD: instructions}, nil
}

func openHardwareCounter(config uint64) (int, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: config,
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return -1, NewExecutionError("openHardwareCounter", "perf_event_open failed", err)
	}
	return fd, nil
}

func (g *perfGroup) start() {
	unix.IoctlSetInt(g.cyclesFD, unix.PERF_EVENT_IOC_RESET, 0)
	unix.IoctlSetInt(g.instructionsFD, unix.PERF_EVENT_IOC_RESET, 0)
	unix.IoctlSetInt(g.cyclesFD, unix.PERF_EVENT_IOC_ENABLE, 0)
	unix.IoctlSetInt(g.instructionsFD, unix.PERF_EVENT_IOC_ENABLE, 0)
}

func (g *perfGroup) stop(stats *InvocationStats) {
	unix.IoctlSetInt(g.cyclesFD, unix.PERF_EVENT_IOC_DISABLE, 0)
	unix.IoctlSetInt(g.instructionsFD, unix.PERF_EVENT_IOC_DISABLE, 0)
	stats.Cycles = readCounter(g.cyclesFD)
	stats.Instructions = readCounter(g.instructionsFD)
}

func (g *perfGroup) close() {
	unix.Close(g.cyclesFD)
	unix.Close(g.instructionsFD)
}

func readCounter(fd int) uint64 {
	var buf [8]byte
	n, err := unix.Read(fd, buf[:])
	if err != nil || n != len(buf) {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}
