package mapmul

// Program is one loadable kernel instance: a variant configuration, its
// store bindings and the fixed-size working buffers. Buffers are sized at
// construction and reused across invocations; Run performs no allocation.
type Program[T Scalar] struct {
	cfg  Config
	maps *MapTable[T]

	matA   []T
	matB   []T
	matRes []T
}

// NewProgram builds a kernel instance for cfg over the given store bindings.
// Configuration preconditions are checked here, never during Run.
func NewProgram[T Scalar](cfg Config, maps *MapTable[T]) (*Program[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if maps == nil {
		return nil, NewResolveError("NewProgram", "nil map table")
	}
	elems := cfg.Elems()
	return &Program[T]{
		cfg:    cfg,
		maps:   maps,
		matA:   make([]T, elems),
		matB:   make([]T, elems),
		matRes: make([]T, elems),
	}, nil
}

// Config returns the variant configuration.
func (p *Program[T]) Config() Config {
	return p.cfg
}

// Run executes one invocation start to finish: resolve the three stores,
// stage both operands, multiply, write the result back. A nil return is the
// invocation's success code; any failure aborts before the writeback, so a
// failed run never commits a partial result.
func (p *Program[T]) Run() error {
	mapA, err := p.maps.Resolve(StoreOperandA)
	if err != nil {
		return err
	}
	mapB, err := p.maps.Resolve(StoreOperandB)
	if err != nil {
		return err
	}
	mapRes, err := p.maps.Resolve(StoreResult)
	if err != nil {
		return err
	}

	if err := stageMatrix(mapA, p.matA); err != nil {
		return err
	}
	if err := stageMatrix(mapB, p.matB); err != nil {
		return err
	}

	switch p.cfg.Strategy {
	case StrategyBlocked:
		matMulBlocked(p.matRes, p.matA, p.matB, p.cfg)
	default:
		matMulReference(p.matRes, p.matA, p.matB, p.cfg.Dim)
	}

	return writeBackMatrix(mapRes, p.matRes)
}
