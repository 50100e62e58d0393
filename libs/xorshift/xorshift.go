// Package xorshift implements a 13/17/5 xorshift generator over a signed
// 32-bit word.
package xorshift

// Step advances the generator state by one step. The state is a signed
// 32-bit word: the left shifts wrap as two's complement, and the middle
// right shift is arithmetic, so negative states sign-extend. Every input
// is valid; zero maps to zero.
func Step(seed int32) int32 {
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	return seed
}

// Sequence applies Step n times starting from seed and returns the n
// results in order. The initial seed itself never appears in the output.
func Sequence(seed int32, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		seed = Step(seed)
		out[i] = seed
	}
	return out
}
