/*
Package knots builds smooth curves through a handful of points, using John
Hobby's spline interpolation algorithm as known from MetaFont/MetaPost.

A list of knots is turned into a sequence of cubic Bézier segments, packed
into a composite curve which may then be handed to the Fourier analyzer.
This makes it easy to draw epicycles for shapes given as a few points only,
without having to write path data.

The primary source of information for "Hobby-splines" is:

	Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
	Computer Science Dept. Stanford University
	Report No. STAN-CS-85-1047, Jan 1985

The practical algorithm is explained in

	Computers & Typesetting, Vol. B & D.

Usage

	circle, err := knots.Closed([]epicycle.Pair{
	    epicycle.P(1, 1), epicycle.P(2, 2), epicycle.P(3, 1), epicycle.P(2, 0),
	})

results in four cubic segments approximating a circle of diameter 2
around (2,1):

	(1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000) .. (2,2)
	(2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523) .. (3,1)
	…

Only the tension of joins and the curl at the ends of open curves may be
configured. Explicit directions at knots are not supported.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package knots

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/curve"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.knots'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.knots")
}

const _epsilon = 0.0000001

var (
	// ErrTooFewKnots indicates knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("invalid knot coordinate")
	// ErrDegenerateJoin indicates two consecutive knots collapse to one point.
	ErrDegenerateJoin = errors.New("degenerate join between knots")
	// ErrDuplicateTerminalKnot indicates a closed curve which redundantly
	// repeats its first knot as the last knot.
	ErrDuplicateTerminalKnot = errors.New("closed curve must not repeat first knot as terminal knot")
)

// Option configures the skeleton of a curve before solving.
type Option func(*skeleton)

// WithTension sets the tension of every join. Tensions are adapted to lie
// between 3/4 and 4; 1 is neutral, higher values result in tighter curves.
func WithTension(t float64) Option {
	return func(sk *skeleton) {
		t = clampTension(t)
		for i := range sk.tensions {
			sk.tensions[i] = tension{pre: t, post: t}
		}
	}
}

// WithJoinTension sets the tensions of the join from knot i to knot i+1:
// t1 leaving knot i and t2 arriving at knot i+1.
func WithJoinTension(i int, t1, t2 float64) Option {
	return func(sk *skeleton) {
		if i < 0 || i >= sk.joins() {
			tracer().Errorf("no join %d for tension, ignored", i)
			return
		}
		sk.tensions[i].post = clampTension(t1)
		sk.tensions[(i+1)%sk.n()].pre = clampTension(t2)
	}
}

// WithCurl sets the curl at both ends of an open curve. A curl of 1 is
// neutral, 0 makes the curve leave its end knots in a straight manner.
// Closed curves ignore curl.
func WithCurl(c float64) Option {
	return func(sk *skeleton) {
		sk.curl = math.Max(0, c)
	}
}

// Closed builds a cyclic Hobby spline through the knots. At least 3 knots
// are required; the first knot must not be repeated at the end.
// The resulting composite has one cubic segment per knot.
func Closed(points []epicycle.Pair, opts ...Option) (*curve.Composite, error) {
	return build(points, true, opts)
}

// Open builds a Hobby spline through the knots, starting at the first and
// ending at the last knot. At least 2 knots are required.
// The resulting composite has one cubic segment per pair of consecutive knots.
func Open(points []epicycle.Pair, opts ...Option) (*curve.Composite, error) {
	return build(points, false, opts)
}

// MustClosed is a compatibility helper which panics on validation errors.
func MustClosed(points []epicycle.Pair, opts ...Option) *curve.Composite {
	c, err := Closed(points, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func build(points []epicycle.Pair, cycle bool, opts []Option) (*curve.Composite, error) {
	sk := newSkeleton(points, cycle)
	if err := sk.validate(); err != nil {
		tracer().Errorf("cannot solve knots: %v", err)
		return nil, err
	}
	for _, opt := range opts {
		opt(sk)
	}
	segs := sk.solve()
	tracer().Infof("Hobby spline with %d knots, cycle=%v", sk.n(), cycle)
	cubics := make([]curve.Segment, len(segs))
	for i, c := range segs {
		cubics[i] = c
	}
	return curve.NewComposite(cubics...)
}

// --- Skeleton --------------------------------------------------------------

type tension struct {
	pre, post float64 // arriving at and leaving a knot
}

// skeleton is a list of knots, without control point information.
type skeleton struct {
	knots    []epicycle.Pair
	tensions []tension
	curl     float64
	cycle    bool
}

func newSkeleton(points []epicycle.Pair, cycle bool) *skeleton {
	sk := &skeleton{
		knots:    make([]epicycle.Pair, len(points)),
		tensions: make([]tension, len(points)),
		curl:     1.0,
		cycle:    cycle,
	}
	copy(sk.knots, points)
	for i := range sk.tensions {
		sk.tensions[i] = tension{pre: 1.0, post: 1.0}
	}
	return sk
}

func (sk *skeleton) validate() error {
	n := sk.n()
	if sk.cycle {
		if n < 3 {
			return fmt.Errorf("%w: closed curve needs at least 3 knots, got %d", ErrTooFewKnots, n)
		}
		if (sk.knots[0] - sk.knots[n-1]).Mag() <= _epsilon {
			return ErrDuplicateTerminalKnot
		}
	} else if n < 2 {
		return fmt.Errorf("%w: open curve needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, z := range sk.knots {
		x, y := z.X(), z.Y()
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 0; i < sk.joins(); i++ {
		if sk.d(i) <= _epsilon {
			return fmt.Errorf("%w %d and %d", ErrDegenerateJoin, i, (i+1)%n)
		}
	}
	return nil
}

// n returns the knot count.
func (sk *skeleton) n() int {
	return len(sk.knots)
}

// joins returns the number of curve segments between knots.
func (sk *skeleton) joins() int {
	if sk.cycle {
		return sk.n()
	}
	return sk.n() - 1
}

// z returns knot (i mod n).
func (sk *skeleton) z(i int) epicycle.Pair {
	n := sk.n()
	return sk.knots[((i%n)+n)%n]
}

func (sk *skeleton) preTension(i int) float64 {
	return sk.tensions[i%sk.n()].pre
}

func (sk *skeleton) postTension(i int) float64 {
	return sk.tensions[i%sk.n()].post
}

// delta is the chord from z.i to z.i+1.
func (sk *skeleton) delta(i int) epicycle.Pair {
	return sk.z(i+1) - sk.z(i)
}

func (sk *skeleton) d(i int) float64 {
	return sk.delta(i).Mag()
}

// Turning angle at z.i.
func (sk *skeleton) psi(i int) float64 {
	psi := 0.0
	if sk.cycle || (i > 0 && i < sk.n()-1) {
		psi = sk.delta(i).Angle() - sk.delta(i-1).Angle()
	}
	return reduceAngle(psi)
}

func clampTension(t float64) float64 {
	if t < 0.75 {
		return 0.75
	} else if t > 4.0 {
		return 4.0
	}
	return t
}
