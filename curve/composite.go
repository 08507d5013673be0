package curve

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/epicycle"
)

// ErrEmptyPath indicates a composite without any segment.
var ErrEmptyPath = errors.New("path must contain at least one segment")

// Parametric is a closed parametric curve, evaluated for t in [0,1) and
// periodic with period 1.
type Parametric interface {
	At(t float64) epicycle.Pair
}

// Composite is an ordered sequence of segments, stitched together into a
// single parametric curve. Each segment covers an equal share of the global
// parameter range, i.e. for n segments, t maps to segment floor(t·n) with
// local parameter frac(t·n).
//
// A composite is immutable and stateless; it may be evaluated from
// concurrent goroutines.
type Composite struct {
	segments []Segment
}

// NewComposite creates a composite path from a non-empty list of segments.
func NewComposite(segs ...Segment) (*Composite, error) {
	if len(segs) == 0 {
		return nil, ErrEmptyPath
	}
	c := &Composite{segments: make([]Segment, len(segs))}
	copy(c.segments, segs)
	tracer().Debugf("composite path with %d segments", len(segs))
	return c, nil
}

// MustComposite is a compatibility helper which panics on an empty list
// of segments.
func MustComposite(segs ...Segment) *Composite {
	c, err := NewComposite(segs...)
	if err != nil {
		panic(err)
	}
	return c
}

// N returns the number of segments.
func (c *Composite) N() int {
	return len(c.segments)
}

// Segment returns segment i (mod N).
func (c *Composite) Segment(i int) Segment {
	n := c.N()
	return c.segments[((i%n)+n)%n]
}

// Segments returns a copy of the segment list.
func (c *Composite) Segments() []Segment {
	segs := make([]Segment, len(c.segments))
	copy(segs, c.segments)
	return segs
}

// Locate maps a global parameter t to a segment index and a local
// parameter within that segment.
func (c *Composite) Locate(t float64) (int, float64) {
	scaled := epicycle.Frac(t) * float64(c.N())
	i := int(math.Floor(scaled))
	if i >= c.N() { // guard against rounding at t → 1
		i = c.N() - 1
	}
	return i, scaled - float64(i)
}

// At evaluates the composite path at global parameter t.
func (c *Composite) At(t float64) epicycle.Pair {
	i, u := c.Locate(t)
	return c.segments[i].At(u)
}

// Start returns the start point of the first segment.
func (c *Composite) Start() epicycle.Pair {
	return c.segments[0].Start()
}

// End returns the end point of the last segment.
func (c *Composite) End() epicycle.Pair {
	return c.segments[c.N()-1].End()
}

// IsClosed is a predicate: does the last segment end where the first one
// starts?
func (c *Composite) IsClosed() bool {
	return c.Start().Equal(c.End())
}

// Sample evaluates a parametric curve at n equally spaced parameters
// t = i/n, i = 0…n-1.
func Sample(p Parametric, n int) []epicycle.Pair {
	if n <= 0 {
		return nil
	}
	pts := make([]epicycle.Pair, n)
	for i := range pts {
		pts[i] = p.At(float64(i) / float64(n))
	}
	return pts
}

// AsString returns a composite path as a (debugging) string, one segment
// per line.
func AsString(c *Composite) string {
	var sb strings.Builder
	for i, seg := range c.segments {
		if i > 0 {
			sb.WriteString("\n")
		}
		if s, ok := seg.(fmt.Stringer); ok {
			sb.WriteString(s.String())
		} else {
			sb.WriteString(seg.Start().String() + " .. " + seg.End().String())
		}
	}
	return sb.String()
}
