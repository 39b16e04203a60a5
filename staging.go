package mapmul

import "fmt"

// stageMatrix copies the full flattened matrix out of m into buf, one lookup
// per key in 0..len(buf)-1. Any failed lookup aborts the invocation; no
// partial-load state escapes the loader.
func stageMatrix[T Scalar](m Map[T], buf []T) error {
	for i := range buf {
		v, err := m.Lookup(uint32(i))
		if err != nil {
			return NewExecutionError("stageMatrix",
				fmt.Sprintf("lookup of key %d failed", i), err)
		}
		buf[i] = *v
	}
	return nil
}

// writeBackMatrix copies the computed result into m with create-or-update
// semantics, one update per key. Runs only after the multiply has fully
// completed.
func writeBackMatrix[T Scalar](m Map[T], buf []T) error {
	for i := range buf {
		if err := m.Update(uint32(i), buf[i], UpdateAny); err != nil {
			return NewExecutionError("writeBackMatrix",
				fmt.Sprintf("update of key %d failed", i), err)
		}
	}
	return nil
}
