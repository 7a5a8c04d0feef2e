// Package safe provides overflow-checked conversions and guarded file reads.
package safe

import (
	"math"
)

// Uint64ToInt64 converts an uint64 value to int64, clamping to math.MaxInt64
// if overflow would occur. Byte and object counts reported by the runtime fit
// in int64; the clamp guards against malformed readings.
func Uint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}
