package mapmul

// matMulReference computes dst = a * b with the naive triple loop. The
// accumulator is reset per output element and written once, so there is no
// partial-sum carry; it serves as the oracle the blocked kernel must match.
func matMulReference[T Scalar](dst, a, b []T, n int) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for k := 0; k < n; k++ {
				sum += a[i*n+k] * b[k*n+j]
			}
			dst[i*n+j] = sum
		}
	}
}
