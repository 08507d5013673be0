// Package curve deals with parametric planar curves made from simple
// segments: straight lines, quadratic and cubic Bézier curves, and
// elliptical arcs. Segments are chained into a Composite, which is a single
// periodic curve over a global parameter t in [0,1).
//
// Every segment is a pure function of its local parameter. Parameters
// outside of [0,1) are wrapped, i.e. segments are evaluated at frac(u).
package curve

import (
	"fmt"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.curve'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.curve")
}

// Segment is a parametric curve piece, evaluated for a local parameter
// u in [0,1). At(0) is the start point, At(u) approaches the end point
// for u → 1.
type Segment interface {
	At(u float64) epicycle.Pair
	Start() epicycle.Pair
	End() epicycle.Pair
}

// --- Line ------------------------------------------------------------------

// Line is a straight line from P0 to P1.
type Line struct {
	P0, P1 epicycle.Pair
}

// At interpolates linearly between the endpoints.
func (l Line) At(u float64) epicycle.Pair {
	return l.P0.Lerp(l.P1, epicycle.Frac(u))
}

func (l Line) Start() epicycle.Pair { return l.P0 }
func (l Line) End() epicycle.Pair   { return l.P1 }

func (l Line) String() string {
	return fmt.Sprintf("%s -- %s", l.P0, l.P1)
}

// --- Quadratic Bézier -------------------------------------------------------

// Quad is a quadratic Bézier curve with start P0, control point P1 and
// end P2.
type Quad struct {
	P0, P1, P2 epicycle.Pair
}

// At evaluates the quadratic Bernstein blend.
func (q Quad) At(u float64) epicycle.Pair {
	u = epicycle.Frac(u)
	mu := 1 - u
	return q.P0.Scaled(mu*mu) + q.P1.Scaled(2*u*mu) + q.P2.Scaled(u*u)
}

func (q Quad) Start() epicycle.Pair { return q.P0 }
func (q Quad) End() epicycle.Pair   { return q.P2 }

func (q Quad) String() string {
	return fmt.Sprintf("%s .. control %s .. %s", q.P0, q.P1, q.P2)
}

// --- Cubic Bézier -----------------------------------------------------------

// Cubic is a cubic Bézier curve with start P0, control points P1 and P2,
// and end P3.
type Cubic struct {
	P0, P1, P2, P3 epicycle.Pair
}

// At evaluates the cubic Bernstein blend.
func (c Cubic) At(u float64) epicycle.Pair {
	u = epicycle.Frac(u)
	mu := 1 - u
	return c.P0.Scaled(mu*mu*mu) +
		c.P1.Scaled(3*u*mu*mu) +
		c.P2.Scaled(3*u*u*mu) +
		c.P3.Scaled(u*u*u)
}

func (c Cubic) Start() epicycle.Pair { return c.P0 }
func (c Cubic) End() epicycle.Pair   { return c.P3 }

func (c Cubic) String() string {
	return fmt.Sprintf("%s .. controls %s and %s .. %s", c.P0, c.P1, c.P2, c.P3)
}
