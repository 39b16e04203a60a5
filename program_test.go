package mapmul

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillMap[T Scalar](t *testing.T, m Map[T], vals []T) {
	t.Helper()
	for i, v := range vals {
		require.NoError(t, m.Update(uint32(i), v, UpdateAny))
	}
}

func readMap[T Scalar](t *testing.T, m Map[T], elems int) []T {
	t.Helper()
	out := make([]T, elems)
	for i := range out {
		v, err := m.Lookup(uint32(i))
		require.NoError(t, err)
		out[i] = *v
	}
	return out
}

// Scenario: A = identity, result must equal B exactly.
func TestIdentityTimesMatrix(t *testing.T) {
	const n = 4
	identity := make([]int32, n*n)
	for i := 0; i < n; i++ {
		identity[i*n+i] = 1
	}
	b := []int32{
		3, -1, 4, 1,
		-5, 9, 2, 6,
		5, 3, -5, 8,
		9, 7, 9, -3,
	}

	mapA := NewArrayMap[int32](n * n)
	mapB := NewArrayMap[int32](n * n)
	mapRes := NewArrayMap[int32](n * n)
	fillMap[int32](t, mapA, identity)
	fillMap[int32](t, mapB, b)

	prog, err := NewProgram(Small4Config, NewMapTable[int32](mapA, mapB, mapRes))
	require.NoError(t, err)
	require.NoError(t, prog.Run())

	assert.Equal(t, b, readMap[int32](t, mapRes, n*n))
}

// Scenario: A = all zeros, result must be all zeros regardless of B.
func TestZeroOperandGivesZeroResult(t *testing.T) {
	const n = 4
	rng := rand.New(rand.NewSource(11))

	mapA := NewArrayMap[int32](n * n)
	mapB := NewArrayMap[int32](n * n)
	mapRes := NewArrayMap[int32](n * n)
	fillMap[int32](t, mapB, randInt32Matrix(rng, n))
	// Poison the result store to prove the kernel overwrites it.
	for i := 0; i < n*n; i++ {
		require.NoError(t, mapRes.Update(uint32(i), -1, UpdateAny))
	}

	prog, err := NewProgram(Small4Config, NewMapTable[int32](mapA, mapB, mapRes))
	require.NoError(t, err)
	require.NoError(t, prog.Run())

	assert.Equal(t, make([]int32, n*n), readMap[int32](t, mapRes, n*n))
}

func TestRunEndToEndMatchesKernel(t *testing.T) {
	for _, cfg := range []Config{Blocked16Config, Huge32Config} {
		n := cfg.Dim
		rng := rand.New(rand.NewSource(int64(n)))
		a := randInt32Matrix(rng, n)
		b := randInt32Matrix(rng, n)

		mapA := NewArrayMap[int32](uint32(n * n))
		mapB := NewArrayMap[int32](uint32(n * n))
		mapRes := NewArrayMap[int32](uint32(n * n))
		fillMap[int32](t, mapA, a)
		fillMap[int32](t, mapB, b)

		prog, err := NewProgram(cfg, NewMapTable[int32](mapA, mapB, mapRes))
		require.NoError(t, err)
		require.NoError(t, prog.Run())

		assert.Equal(t, oracleMatMulInt32(a, b, n), readMap[int32](t, mapRes, n*n), "config %+v", cfg)
	}
}

// After a successful run the result store holds exactly N*N keys.
func TestWriteBackCompleteness(t *testing.T) {
	const n = 4
	rng := rand.New(rand.NewSource(5))

	mapA := NewArrayMap[int32](n * n)
	mapB := NewArrayMap[int32](n * n)
	mapRes := NewHashMap[int32](n * n)
	fillMap[int32](t, mapA, randInt32Matrix(rng, n))
	fillMap[int32](t, mapB, randInt32Matrix(rng, n))

	prog, err := NewProgram(Small4Config, NewMapTable[int32](mapA, mapB, mapRes))
	require.NoError(t, err)
	require.NoError(t, prog.Run())

	assert.Equal(t, n*n, mapRes.Len())
	for i := 0; i < n*n; i++ {
		_, err := mapRes.Lookup(uint32(i))
		assert.NoError(t, err, "key %d", i)
	}
}

// A failed operand lookup aborts the invocation before any writeback.
func TestLookupFailureAbortsWithoutWriteback(t *testing.T) {
	const n = 4
	rng := rand.New(rand.NewSource(8))

	mapA := NewArrayMap[int32](n * n)
	fillMap[int32](t, mapA, randInt32Matrix(rng, n))

	mapB := NewHashMap[int32](n * n)
	for i := 0; i < n*n; i++ {
		if i == 5 {
			continue // hole in operand B
		}
		require.NoError(t, mapB.Update(uint32(i), 1, UpdateAny))
	}
	mapRes := NewHashMap[int32](n * n)

	prog, err := NewProgram(Small4Config, NewMapTable[int32](mapA, mapB, mapRes))
	require.NoError(t, err)

	err = prog.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, 0, mapRes.Len(), "no partial result may be committed")
}

func TestUnboundStoreFailsRun(t *testing.T) {
	mapA := NewArrayMap[int32](16)
	mapB := NewArrayMap[int32](16)

	prog, err := NewProgram(Small4Config, NewMapTable[int32](mapA, mapB, nil))
	require.NoError(t, err)

	assert.ErrorIs(t, prog.Run(), ErrUnboundStore)
}

func TestInvalidConfigRejectedAtConstruction(t *testing.T) {
	table := NewMapTable[int32](NewArrayMap[int32](36), NewArrayMap[int32](36), NewArrayMap[int32](36))
	cfg := Config{Dim: 6, RowBlock: 4, KBlock: 2, Strategy: StrategyBlocked}

	_, err := NewProgram(cfg, table)
	require.Error(t, err)
	var kerr *KernelError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, ErrTypeConfig, kerr.Type)
}

// Staging the same store twice without intervening updates yields identical
// buffers.
func TestStagingIdempotence(t *testing.T) {
	const n = 8
	rng := rand.New(rand.NewSource(21))
	vals := randInt32Matrix(rng, n)

	m := NewArrayMap[int32](n * n)
	fillMap[int32](t, m, vals)

	first := make([]int32, n*n)
	second := make([]int32, n*n)
	require.NoError(t, stageMatrix[int32](m, first))
	require.NoError(t, stageMatrix[int32](m, second))

	assert.Equal(t, vals, first)
	assert.Equal(t, first, second)
}

func TestMeasureInvocation(t *testing.T) {
	const n = 16
	rng := rand.New(rand.NewSource(13))

	mapA := NewArrayMap[int32](n * n)
	mapB := NewArrayMap[int32](n * n)
	mapRes := NewArrayMap[int32](n * n)
	fillMap[int32](t, mapA, randInt32Matrix(rng, n))
	fillMap[int32](t, mapB, randInt32Matrix(rng, n))

	prog, err := NewProgram(Blocked16Config, NewMapTable[int32](mapA, mapB, mapRes))
	require.NoError(t, err)

	stats, err := MeasureInvocation("blocked16", prog.Run)
	require.NoError(t, err)
	assert.Greater(t, stats.Duration.Nanoseconds(), int64(0))
	assert.NotEmpty(t, stats.String())
}
