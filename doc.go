// Package mapmul implements fixed-size dense matrix-multiplication kernels
// for execution environments where data is reached through key-value map
// lookups instead of direct memory addressing.
//
// The kernels mirror the structure of BPF map-backed programs: three stores
// (operand A, operand B, result) are bound to load-time ordinals, operands
// are staged element by element into fixed-size local buffers, the product
// is computed either with a cache-blocked 2x2 accumulator-tile kernel or a
// naive reference kernel, and the result is written back through the same
// map interface.
//
// Example usage:
//
//	maps := mapmul.NewMapTable[int32](
//		mapmul.NewArrayMap[int32](256),
//		mapmul.NewArrayMap[int32](256),
//		mapmul.NewArrayMap[int32](256),
//	)
//	prog, err := mapmul.NewProgram(mapmul.Blocked16Config, maps)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := prog.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// All working memory is sized at construction and every loop bound is fixed
// by the variant's configuration, matching the statically bounded execution
// model the kernels were designed for.
package mapmul
