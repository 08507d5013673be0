package curve

import (
	"fmt"
	"math"

	"github.com/npillmayer/epicycle"
)

// Arc is an elliptical arc in endpoint notation, as used by path data:
// from P0 to P1 on an ellipse with radii Radii (rx,ry), whose x-axis is
// rotated by Rotation degrees. Of the four candidate arcs, the flags select
// one: Large chooses the arc spanning more than 180°, Sweep chooses the arc
// running in positive-angle direction.
//
// Arcs are converted to center notation on construction, see
// https://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes.
// Use NewArc to create one.
type Arc struct {
	P0, P1   epicycle.Pair
	Radii    epicycle.Pair
	Rotation float64 // x-axis rotation in degrees
	Large    bool
	Sweep    bool
	// center parameterization
	kind   arcKind
	center epicycle.Pair
	rx, ry float64
	phi    float64 // rotation in radians
	theta1 float64 // start angle
	delta  float64 // signed sweep angle
}

type arcKind int8

const (
	arcEllipse arcKind = iota
	arcPoint           // start and end coincide: arc is omitted
	arcLine            // a zero radius: treated as a straight line
)

// NewArc creates an elliptical arc from p0 to p1. Radii are taken as
// absolute values and scaled up if they are too small to span the chord
// between the endpoints.
func NewArc(p0 epicycle.Pair, radii epicycle.Pair, rotation float64, large, sweep bool,
	p1 epicycle.Pair) Arc {
	a := Arc{P0: p0, P1: p1, Radii: radii, Rotation: rotation, Large: large, Sweep: sweep}
	rx, ry := math.Abs(radii.X()), math.Abs(radii.Y())
	switch {
	case p0 == p1:
		a.kind = arcPoint
		return a
	case epicycle.Is0(rx) || epicycle.Is0(ry):
		a.kind = arcLine
		return a
	}
	a.phi = rotation * math.Pi / 180.0
	// half chord in the coordinate frame of the ellipse
	h := ((p0 - p1).Scaled(0.5)).Rotated(-a.phi)
	x1p, y1p := h.X(), h.Y()
	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1.0 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}
	rx2, ry2 := rx*rx, ry*ry
	sq := (rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p) / (rx2*y1p*y1p + ry2*x1p*x1p)
	if sq < 0 {
		sq = 0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cp := epicycle.P(coef*rx*y1p/ry, -coef*ry*x1p/rx)
	a.center = cp.Rotated(a.phi) + (p0 + p1).Scaled(0.5)
	a.rx, a.ry = rx, ry
	ux, uy := (x1p-cp.X())/rx, (y1p-cp.Y())/ry
	vx, vy := (-x1p-cp.X())/rx, (-y1p-cp.Y())/ry
	a.theta1 = math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	a.delta = delta
	tracer().Debugf("arc %s -> %s: center %s, r=(%.4g,%.4g), θ1=%.4g, Δθ=%.4g",
		p0, p1, a.center, rx, ry, a.theta1, a.delta)
	return a
}

// At evaluates the arc at local parameter u.
func (a Arc) At(u float64) epicycle.Pair {
	u = epicycle.Frac(u)
	switch a.kind {
	case arcPoint:
		return a.P0
	case arcLine:
		return a.P0.Lerp(a.P1, u)
	}
	sin, cos := math.Sincos(a.theta1 + u*a.delta)
	return epicycle.P(a.rx*cos, a.ry*sin).Rotated(a.phi) + a.center
}

func (a Arc) Start() epicycle.Pair { return a.P0 }
func (a Arc) End() epicycle.Pair   { return a.P1 }

// Center returns the center of the ellipse the arc lies on. For degenerate
// arcs this is the midpoint of the chord.
func (a Arc) Center() epicycle.Pair {
	if a.kind != arcEllipse {
		return a.P0.Lerp(a.P1, 0.5)
	}
	return a.center
}

// SweepAngle returns the signed angle (radians) covered by the arc.
func (a Arc) SweepAngle() float64 {
	return a.delta
}

func (a Arc) String() string {
	return fmt.Sprintf("%s .. arc r=%s rot=%g large=%t sweep=%t .. %s",
		a.P0, a.Radii, a.Rotation, a.Large, a.Sweep, a.P1)
}
