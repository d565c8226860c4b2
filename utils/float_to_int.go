// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToPCM16 scales x by 2^15, clips to [-32768, 32767] and truncates
// toward zero. NaN maps to 0.
func Float32ToPCM16(x float32) int16 {
	if x != x {
		return 0
	}

	v := float64(x) * 32768.0
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Float32sToPCM16 converts src into dst, which must be at least as long.
func Float32sToPCM16(dst []int, src []float32) {
	for i, x := range src {
		dst[i] = int(Float32ToPCM16(x))
	}
}
