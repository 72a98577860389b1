package mathx

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// IsPow2 reports whether n is a positive power of two.
func IsPow2[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns the exact base-2 logarithm of n and whether n was a power
// of two. For other inputs it returns (0, false).
func Log2[T constraints.Unsigned](n T) (uint, bool) {
	if !IsPow2(n) {
		return 0, false
	}
	return uint(bits.TrailingZeros64(uint64(n))), true
}
