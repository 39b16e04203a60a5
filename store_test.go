package mapmul

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayMapLookup(t *testing.T) {
	m := NewArrayMap[int32](16)
	require.Equal(t, uint32(16), m.MaxEntries())

	// Every in-range key exists from creation, zero-valued.
	v, err := m.Lookup(0)
	require.NoError(t, err)
	assert.Equal(t, int32(0), *v)

	v, err = m.Lookup(15)
	require.NoError(t, err)
	assert.Equal(t, int32(0), *v)

	_, err = m.Lookup(16)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestArrayMapUpdateFlags(t *testing.T) {
	m := NewArrayMap[int32](4)

	require.NoError(t, m.Update(2, 7, UpdateAny))
	v, err := m.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, int32(7), *v)

	// Dense maps have no absent in-range keys, so create-only always fails
	// and update-only always succeeds.
	assert.ErrorIs(t, m.Update(1, 1, UpdateNoExist), ErrKeyExists)
	require.NoError(t, m.Update(2, 9, UpdateExist))
	v, err = m.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, int32(9), *v)

	assert.ErrorIs(t, m.Update(4, 1, UpdateAny), ErrKeyNotFound)
}

func TestArrayMapDeleteUnsupported(t *testing.T) {
	m := NewArrayMap[float32](4)
	assert.ErrorIs(t, m.Delete(0), ErrDeleteUnsupported)
}

func TestHashMapLookupUpdateDelete(t *testing.T) {
	m := NewHashMap[int32](8)
	assert.Equal(t, 0, m.Len())

	_, err := m.Lookup(3)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Update(3, 42, UpdateAny))
	v, err := m.Lookup(3)
	require.NoError(t, err)
	assert.Equal(t, int32(42), *v)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(3))
	_, err = m.Lookup(3)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, m.Delete(3), ErrKeyNotFound)
}

func TestHashMapUpdateFlags(t *testing.T) {
	m := NewHashMap[int32](8)

	assert.ErrorIs(t, m.Update(5, 1, UpdateExist), ErrKeyNotFound)
	require.NoError(t, m.Update(5, 1, UpdateNoExist))
	assert.ErrorIs(t, m.Update(5, 2, UpdateNoExist), ErrKeyExists)
	require.NoError(t, m.Update(5, 2, UpdateExist))

	v, err := m.Lookup(5)
	require.NoError(t, err)
	assert.Equal(t, int32(2), *v)
}

func TestMapTableResolve(t *testing.T) {
	a := NewArrayMap[int32](4)
	b := NewArrayMap[int32](4)
	res := NewArrayMap[int32](4)
	table := NewMapTable[int32](a, b, res)

	got, err := table.Resolve(StoreOperandA)
	require.NoError(t, err)
	assert.Same(t, Map[int32](a), got)

	got, err = table.Resolve(StoreResult)
	require.NoError(t, err)
	assert.Same(t, Map[int32](res), got)

	_, err = table.Resolve(StoreOrdinal(7))
	require.Error(t, err)

	unbound := NewMapTable[int32](a, nil, res)
	_, err = unbound.Resolve(StoreOperandB)
	assert.ErrorIs(t, err, ErrUnboundStore)
}
