// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// ClampInt16 rounds v to the nearest integer and saturates it to the int16 range.
func ClampInt16(v float64) int16 {
	switch {
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	}

	return int16(math.Round(v))
}
