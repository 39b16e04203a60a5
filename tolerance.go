// Package mapmul tolerance-based verification for floating-point comparisons
package mapmul

import (
	"fmt"
	"math"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison
type ToleranceConfig struct {
	// AbsTol is the absolute tolerance for values near zero
	AbsTol float32

	// RelTol is the relative tolerance as a fraction of the larger value
	RelTol float32
}

// DefaultTolerance returns the tolerance for comparing blocked and reference
// float32 kernel output, which may differ through summation reordering.
func DefaultTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-7,
		RelTol: 1e-5,
	}
}

// RelaxedTolerance returns relaxed tolerance for long accumulations
func RelaxedTolerance() ToleranceConfig {
	return ToleranceConfig{
		AbsTol: 1e-5,
		RelTol: 1e-3,
	}
}

// Float32NearEqual checks if two float32 values are equal within tolerance
func Float32NearEqual(a, b float32, tol ToleranceConfig) bool {
	// Exact equality handles ±0 and identical NaN payloads don't matter here
	if a == b {
		return true
	}
	if math.IsNaN(float64(a)) && math.IsNaN(float64(b)) {
		return true
	}

	diff := math.Abs(float64(a - b))
	if diff <= float64(tol.AbsTol) {
		return true
	}

	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	return diff <= larger*float64(tol.RelTol)
}

// VerifyFloat32 compares two float32 matrices element-wise and returns a
// numerical error describing the first mismatch, or nil when all elements
// agree within tolerance.
func VerifyFloat32(expected, actual []float32, tol ToleranceConfig) error {
	if len(expected) != len(actual) {
		return NewNumericalError("VerifyFloat32",
			fmt.Sprintf("length mismatch: %d vs %d", len(expected), len(actual)), nil)
	}
	for i := range expected {
		if !Float32NearEqual(expected[i], actual[i], tol) {
			return NewNumericalError("VerifyFloat32",
				fmt.Sprintf("element %d: expected %g, got %g", i, expected[i], actual[i]),
				map[string]float32{"expected": expected[i], "actual": actual[i]})
		}
	}
	return nil
}
