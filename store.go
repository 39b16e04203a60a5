package mapmul

// Scalar is the set of element types a kernel variant can fix at build time.
// The in-scope variants use 32-bit signed integers or 32-bit floats; integer
// accumulation wraps per the element width, with no saturation.
type Scalar interface {
	~int32 | ~float32
}

// UpdateFlag selects the create/exists policy of an Update, matching the
// BPF_ANY / BPF_NOEXIST / BPF_EXIST map update flags.
type UpdateFlag uint32

const (
	// UpdateAny creates the entry or overwrites an existing one.
	UpdateAny UpdateFlag = iota
	// UpdateNoExist creates the entry only if the key is absent.
	UpdateNoExist
	// UpdateExist overwrites only an existing entry.
	UpdateExist
)

// Map is the indirect store interface the kernels consume. Implementations
// substitute for direct memory addressing: every element access goes through
// Lookup or Update with a 32-bit key.
//
// Lookup returns a reference to the stored value; callers dereference it
// immediately and must not retain it across updates. All operations are
// O(1) amortized.
type Map[T Scalar] interface {
	Lookup(key uint32) (*T, error)
	Update(key uint32, value T, flag UpdateFlag) error
	Delete(key uint32) error
}

// ArrayMap is a dense fixed-capacity map: every key in [0, maxEntries) exists
// from creation, zero-initialized. It mirrors BPF array map semantics, so
// create-only updates always fail and delete is unsupported.
type ArrayMap[T Scalar] struct {
	values []T
}

// NewArrayMap creates a dense map with keys 0..maxEntries-1 pre-allocated.
func NewArrayMap[T Scalar](maxEntries uint32) *ArrayMap[T] {
	return &ArrayMap[T]{
		values: make([]T, maxEntries),
	}
}

// MaxEntries returns the fixed key-space size.
func (m *ArrayMap[T]) MaxEntries() uint32 {
	return uint32(len(m.values))
}

// Lookup returns a reference to the value at key.
func (m *ArrayMap[T]) Lookup(key uint32) (*T, error) {
	if key >= uint32(len(m.values)) {
		return nil, ErrKeyNotFound
	}
	return &m.values[key], nil
}

// Update writes value at key. Since every in-range key exists, UpdateNoExist
// always fails with ErrKeyExists.
func (m *ArrayMap[T]) Update(key uint32, value T, flag UpdateFlag) error {
	if key >= uint32(len(m.values)) {
		return ErrKeyNotFound
	}
	if flag == UpdateNoExist {
		return ErrKeyExists
	}
	m.values[key] = value
	return nil
}

// Delete is unsupported for dense maps.
func (m *ArrayMap[T]) Delete(key uint32) error {
	return ErrDeleteUnsupported
}

// HashMap is a sparse map: keys exist only once updated, lookups of absent
// keys fail with ErrKeyNotFound and delete removes entries. The harness uses
// it when staging-failure behavior must be observable.
type HashMap[T Scalar] struct {
	values map[uint32]*T
}

// NewHashMap creates an empty sparse map sized for sizeHint entries.
func NewHashMap[T Scalar](sizeHint int) *HashMap[T] {
	return &HashMap[T]{
		values: make(map[uint32]*T, sizeHint),
	}
}

// Len returns the number of keys currently present.
func (m *HashMap[T]) Len() int {
	return len(m.values)
}

// Lookup returns a reference to the value at key, or ErrKeyNotFound.
func (m *HashMap[T]) Lookup(key uint32) (*T, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// Update writes value at key subject to the create/exists policy of flag.
func (m *HashMap[T]) Update(key uint32, value T, flag UpdateFlag) error {
	_, ok := m.values[key]
	switch flag {
	case UpdateNoExist:
		if ok {
			return ErrKeyExists
		}
	case UpdateExist:
		if !ok {
			return ErrKeyNotFound
		}
	}
	v := value
	m.values[key] = &v
	return nil
}

// Delete removes the entry at key, or fails with ErrKeyNotFound.
func (m *HashMap[T]) Delete(key uint32) error {
	if _, ok := m.values[key]; !ok {
		return ErrKeyNotFound
	}
	delete(m.values, key)
	return nil
}
