package world

import (
	"iter"

	"github.com/npillmayer/epicycle"
)

// World is an ordered collection of rotating vectors. Order does not change
// the traced point, but it determines the chain of arms drawn, so insertion
// order is preserved.
//
// A World is read-only after construction; State may be called from
// concurrent goroutines.
type World struct {
	vectors []SVector
}

// New creates a world from a list of rotating vectors. The list is copied.
func New(vs ...SVector) *World {
	w := &World{vectors: make([]SVector, len(vs))}
	copy(w.vectors, vs)
	tracer().Debugf("world with %d vectors", len(vs))
	return w
}

// Len returns the number of rotating vectors.
func (w *World) Len() int {
	return len(w.vectors)
}

// Vectors returns a copy of the rotating vectors, in stored order.
func (w *World) Vectors() []SVector {
	return append([]SVector(nil), w.vectors...)
}

// Radius is the sum of all magnitudes. Every point of every state lies
// within this distance from the origin.
func (w *World) Radius() float64 {
	r := 0.0
	for _, v := range w.vectors {
		r += v.Magnitude
	}
	return r
}

// Points yields the chain of cumulative vector sums at time t: first the
// origin, then one point per rotating vector, in stored order. The sequence
// is computed lazily and may be iterated more than once.
func (w *World) Points(t float64) iter.Seq[epicycle.Pair] {
	return func(yield func(epicycle.Pair) bool) {
		sum := epicycle.Origin
		if !yield(sum) {
			return
		}
		for _, v := range w.vectors {
			sum += v.State(t)
			if !yield(sum) {
				return
			}
		}
	}
}

// State returns the chain of cumulative vector sums at time t, see Points.
// The result has Len()+1 points and is freshly allocated on every call.
func (w *World) State(t float64) []epicycle.Pair {
	pts := make([]epicycle.Pair, 0, len(w.vectors)+1)
	for pt := range w.Points(t) {
		pts = append(pts, pt)
	}
	return pts
}

// Tip returns the point traced at time t, i.e. the last point of the chain.
func (w *World) Tip(t float64) epicycle.Pair {
	sum := epicycle.Origin
	for _, v := range w.vectors {
		sum += v.State(t)
	}
	return sum
}

// At is the same as Tip. It lets a world act as a parametric curve, e.g. to
// sample the reconstructed curve.
func (w *World) At(t float64) epicycle.Pair {
	return w.Tip(t)
}
