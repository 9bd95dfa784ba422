// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples at fractional position x (0 <= x <= 1) between y1 and y2.
// The result saturates to the int16 range.
func CubicInterpolate(y0, y1, y2, y3 int16, x float64) int16 {
	p0, p1, p2, p3 := float64(y0), float64(y1), float64(y2), float64(y3)

	a0 := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	a1 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	a2 := -0.5*p0 + 0.5*p2

	return ClampInt16(((a0*x+a1)*x+a2)*x + p1)
}
