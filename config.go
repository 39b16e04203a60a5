// Package mapmul kernel variant configuration
package mapmul

import "fmt"

// Strategy selects the multiplication algorithm of a variant.
type Strategy int

const (
	// StrategyBlocked uses the cache-blocked 2x2 accumulator-tile kernel.
	StrategyBlocked Strategy = iota
	// StrategyReference uses the naive triple-loop kernel.
	StrategyReference
)

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case StrategyBlocked:
		return "blocked"
	case StrategyReference:
		return "reference"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// TileStride is the accumulator tile width in both output dimensions.
// The blocked kernel carries a 2x2 tile (four running sums).
const TileStride = 2

// Config fixes the compile-time parameters of one kernel variant: matrix
// dimension, blocking factors and algorithm. None of these are runtime
// discoverable; all loop bounds derive from them.
type Config struct {
	// Dim is the square matrix dimension N.
	Dim int

	// RowBlock is the output row-block size IB (blocked strategy only).
	RowBlock int

	// KBlock is the reduction-block size KB (blocked strategy only).
	KBlock int

	// Strategy selects blocked or reference multiplication.
	Strategy Strategy
}

// Predefined kernel variants.
var (
	// Small4Config is the 4x4 blocked variant, typically run with float32
	// elements.
	Small4Config = Config{Dim: 4, RowBlock: 4, KBlock: 4, Strategy: StrategyBlocked}

	// Blocked16Config is the cache-optimal 16x16 int32 variant.
	Blocked16Config = Config{Dim: 16, RowBlock: 4, KBlock: 4, Strategy: StrategyBlocked}

	// Huge32Config is the naive 32x32 int32 variant.
	Huge32Config = Config{Dim: 32, Strategy: StrategyReference}
)

// Elems returns the flattened element count N*N, which is also the store
// key-space size.
func (c Config) Elems() int {
	return c.Dim * c.Dim
}

// Validate checks the configuration preconditions. Blocked variants require
// the dimension to divide evenly into row blocks, row blocks into 2x2 tiles,
// and the dimension into reduction blocks; violations are fatal at
// construction, never at run time.
func (c Config) Validate() error {
	if c.Dim <= 0 {
		return NewConfigError("Validate", fmt.Sprintf("dimension %d must be positive", c.Dim))
	}
	if c.Strategy == StrategyReference {
		return nil
	}
	if c.Strategy != StrategyBlocked {
		return NewConfigError("Validate", fmt.Sprintf("unknown strategy %d", int(c.Strategy)))
	}
	if c.RowBlock <= 0 || c.KBlock <= 0 {
		return NewConfigError("Validate",
			fmt.Sprintf("block sizes IB=%d KB=%d must be positive", c.RowBlock, c.KBlock))
	}
	if c.Dim%c.RowBlock != 0 {
		return NewConfigError("Validate",
			fmt.Sprintf("dimension %d not divisible by row block %d", c.Dim, c.RowBlock))
	}
	if c.RowBlock%TileStride != 0 {
		return NewConfigError("Validate",
			fmt.Sprintf("row block %d not divisible by tile stride %d", c.RowBlock, TileStride))
	}
	if c.Dim%TileStride != 0 {
		return NewConfigError("Validate",
			fmt.Sprintf("dimension %d not divisible by tile stride %d", c.Dim, TileStride))
	}
	if c.Dim%c.KBlock != 0 {
		return NewConfigError("Validate",
			fmt.Sprintf("dimension %d not divisible by reduction block %d", c.Dim, c.KBlock))
	}
	return nil
}
