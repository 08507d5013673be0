package epicycle

import (
	"fmt"
	"math"
)

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	return make([]float64, 9)
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scales x by sx and y by sy, relative to the origin.
// A negative sy flips the y-axis, as needed for raster devices.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformation to a new one: m is applied first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Scale returns the length scaling factor of m, assuming m is a similarity
// transform (uniform scale, rotation, reflection, translation).
func (m AT) Scale() float64 {
	return math.Sqrt(math.Abs(m.get(0, 0)*m.get(1, 1) - m.get(0, 1)*m.get(1, 0)))
}

func (m AT) multiplyVector(v []float64) []float64 {
	return []float64{
		dotProd(m.row(0), v),
		dotProd(m.row(1), v),
		dotProd(m.row(2), v),
	}
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	c := m.multiplyVector([]float64{p.X(), p.Y(), 1.0})
	return P(c[0], c[1])
}
