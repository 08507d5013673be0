// Package world holds chains of rotating vectors (epicycles).
//
// A World is an ordered, immutable collection of rotating vectors. For a
// time value t it yields the chain of cumulative vector sums, starting at
// the origin; the last point of the chain is the point traced at time t.
package world

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.world'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.world")
}

// SVector is a rotating vector: the term
//
//	Magnitude · e^{i(Phase + 2π·Frequency·t)}
//
// Phase is the angle at t=0 (radians), the sign of Frequency gives the
// direction of rotation.
type SVector struct {
	Phase     float64
	Frequency float64
	Magnitude float64
}

// S is a quick notation for constructing an SVector.
func S(phase, frequency, magnitude float64) SVector {
	return SVector{Phase: phase, Frequency: frequency, Magnitude: magnitude}
}

// Angle returns the angle of the vector at time t.
func (v SVector) Angle(t float64) float64 {
	return v.Phase + 2*math.Pi*v.Frequency*t
}

// State returns the vector at time t.
func (v SVector) State(t float64) epicycle.Pair {
	sin, cos := math.Sincos(v.Angle(t))
	return epicycle.P(v.Magnitude*cos, v.Magnitude*sin)
}

func (v SVector) String() string {
	return fmt.Sprintf("⟨f=%g, r=%.4g, φ=%.4g⟩", v.Frequency, v.Magnitude, v.Phase)
}

// SortByMagnitude returns a copy of vs, ordered by decreasing magnitude.
// Vectors of equal magnitude keep their relative order.
func SortByMagnitude(vs []SVector) []SVector {
	sorted := append([]SVector(nil), vs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Magnitude > sorted[j].Magnitude
	})
	return sorted
}

// SortByFrequency returns a copy of vs, ordered by increasing absolute
// frequency, positive before negative for equal absolute values:
// 0, 1, -1, 2, -2, …
func SortByFrequency(vs []SVector) []SVector {
	sorted := append([]SVector(nil), vs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		fi, fj := sorted[i].Frequency, sorted[j].Frequency
		if ai, aj := math.Abs(fi), math.Abs(fj); ai != aj {
			return ai < aj
		}
		return fi > fj
	})
	return sorted
}
