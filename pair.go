/*
Package epicycle reconstructs planar curves as sums of rotating vectors.

The root package holds the geometry primitives shared by all sub-packages:
2D points/vectors (type Pair) and affine transformations (type AT).
Sub-packages compile path data into parametric curves (curve, svgpath,
knots), estimate Fourier coefficients (fourier), evaluate chains of
rotating vectors (world) and draw frames (render).

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package epicycle

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle'
func tracer() tracing.Trace {
	return tracing.Select("epicycle")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Frac returns the fractional part of x, always in [0,1), also for
// negative x.
func Frac(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 { // x = -tiny rounds up to 1
		f = 0
	}
	return f
}

// === Pair Data Type ========================================================

// Pair is a 2D-point or 2D-vector. It is a complex number, with x as the
// real part and y as the imaginary part. Addition, subtraction and negation
// are Go's complex operators.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// C2P returns a Pair from a complex number.
func C2P(c complex128) Pair {
	if cmplx.IsNaN(c) || cmplx.IsInf(c) {
		tracer().Errorf("created pair for complex.NaN")
		return P(0, 0)
	}
	return P(real(c), imag(c))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// Polar creates a pair from a magnitude r and an angle theta (radians).
func Polar(r, theta float64) Pair {
	return Pair(cmplx.Rect(r, theta))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs, tolerating differences below Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Near compares two pairs, tolerating a distance up to eps.
func (p Pair) Near(p2 Pair, eps float64) bool {
	return (p - p2).Mag() <= eps
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return p.Mul(Polar(1, theta))
}

// Rotatedaround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) Rotatedaround(v Pair, theta float64) Pair {
	return (p - v).Rotated(theta) + v
}

// Mul is the complex product of p and q. Multiplying by a unit vector
// e^{iθ} rotates p by θ; this is how frequency content is shifted.
func (p Pair) Mul(q Pair) Pair {
	return p * q
}

// Mag is the length of p.
func (p Pair) Mag() float64 {
	return cmplx.Abs(p.C())
}

// Angle is the angle of p measured from the positive x-axis, in (-π,π].
func (p Pair) Angle() float64 {
	return cmplx.Phase(p.C())
}

// Lerp interpolates linearly between p (u=0) and q (u=1).
func (p Pair) Lerp(q Pair, u float64) Pair {
	return p + (q - p).Scaled(u)
}

// Mean returns the arithmetic mean of a list of pairs, i.e. the
// componentwise average. The mean of an empty list is the origin.
func Mean(pts []Pair) Pair {
	if len(pts) == 0 {
		return Origin
	}
	var total Pair
	for _, pt := range pts {
		total += pt
	}
	return total.Scaled(1 / float64(len(pts)))
}
