package mapmul

import "fmt"

// StoreOrdinal identifies one of the three logical stores of an invocation.
// Ordinals are assigned at load time, the way BPF programs receive map file
// descriptors, and are resolved to handles once before any data access.
type StoreOrdinal int

const (
	// StoreOperandA is the left multiplication operand.
	StoreOperandA StoreOrdinal = iota
	// StoreOperandB is the right multiplication operand.
	StoreOperandB
	// StoreResult receives the product.
	StoreResult

	numStores
)

// String returns a human-readable store name
func (o StoreOrdinal) String() string {
	switch o {
	case StoreOperandA:
		return "OperandA"
	case StoreOperandB:
		return "OperandB"
	case StoreResult:
		return "Result"
	default:
		return fmt.Sprintf("StoreOrdinal(%d)", int(o))
	}
}

// MapTable binds store ordinals to map handles for one invocation.
// The binding is established before the kernel runs and stays invariant for
// the invocation's duration.
type MapTable[T Scalar] struct {
	maps [numStores]Map[T]
}

// NewMapTable binds the operand and result maps to their load-time ordinals.
// Any entry may be nil; resolving it fails at Run time.
func NewMapTable[T Scalar](operandA, operandB, result Map[T]) *MapTable[T] {
	t := &MapTable[T]{}
	t.maps[StoreOperandA] = operandA
	t.maps[StoreOperandB] = operandB
	t.maps[StoreResult] = result
	return t
}

// Resolve returns the map handle bound to ord.
func (t *MapTable[T]) Resolve(ord StoreOrdinal) (Map[T], error) {
	if ord < 0 || ord >= numStores {
		return nil, NewResolveError("Resolve",
			fmt.Sprintf("store ordinal %d out of range", int(ord)))
	}
	m := t.maps[ord]
	if m == nil {
		return nil, ErrUnboundStore
	}
	return m, nil
}
