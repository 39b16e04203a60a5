package mapmul

// matMulBlocked computes dst = a * b with cache blocking. All three slices
// are row-major n*n with n, IB and KB taken from cfg, which must have passed
// Validate.
//
// The reduction-block loop (kk) is the outer accumulation driver: one
// reduction block is processed across every 2x2 output tile of the current
// row block before the next block starts. This keeps the B rows of the
// current reduction block hot across the whole row block, at the cost of
// reloading each tile's partial sums from dst on every block after the
// first.
func matMulBlocked[T Scalar](dst, a, b []T, cfg Config) {
	n := cfg.Dim
	ib := cfg.RowBlock
	kb := cfg.KBlock

	for ii := 0; ii < n; ii += ib {
		for kk := 0; kk < n; kk += kb {
			firstBlock := kk == 0
			for j := 0; j < n; j += TileStride {
				for i := ii; i < ii+ib; i += TileStride {
					var acc00, acc01, acc10, acc11 T
					if !firstBlock {
						// Carry the partial sums accumulated by
						// prior reduction blocks.
						acc00 = dst[(i+0)*n+j+0]
						acc01 = dst[(i+0)*n+j+1]
						acc10 = dst[(i+1)*n+j+0]
						acc11 = dst[(i+1)*n+j+1]
					}
					for k := kk; k < kk+kb; k++ {
						a0 := a[(i+0)*n+k]
						a1 := a[(i+1)*n+k]
						b0 := b[k*n+j+0]
						b1 := b[k*n+j+1]
						acc00 += a0 * b0
						acc01 += a0 * b1
						acc10 += a1 * b0
						acc11 += a1 * b1
					}
					dst[(i+0)*n+j+0] = acc00
					dst[(i+0)*n+j+1] = acc01
					dst[(i+1)*n+j+0] = acc10
					dst[(i+1)*n+j+1] = acc11
				}
			}
		}
	}
}
