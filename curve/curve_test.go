package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func near(t *testing.T, want, got epicycle.Pair) {
	t.Helper()
	if !got.Near(want, eps) {
		t.Errorf("expected %v, got %v (error %g)", want, got, (got - want).Mag())
	}
}

func TestLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	l := Line{epicycle.P(0, 0), epicycle.P(2, 4)}
	near(t, epicycle.P(0, 0), l.At(0))
	near(t, epicycle.P(1, 2), l.At(0.5))
	near(t, epicycle.P(1, 2), l.At(1.5)) // wraps
	near(t, epicycle.P(1.5, 3), l.At(-0.25))
}

func TestQuad(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	q := Quad{epicycle.P(0, 0), epicycle.P(1, 2), epicycle.P(2, 0)}
	near(t, epicycle.P(0, 0), q.At(0))
	near(t, epicycle.P(1, 1), q.At(0.5))
	near(t, q.At(0.3), q.At(2.3))
	assert.True(t, q.At(0.999999).Near(q.End(), 1e-5))
}

func TestCubic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := Cubic{epicycle.P(0, 0), epicycle.P(0, 1), epicycle.P(1, 1), epicycle.P(1, 0)}
	near(t, epicycle.P(0, 0), c.At(0))
	near(t, epicycle.P(0.5, 0.75), c.At(0.5))
	assert.True(t, c.At(0.999999).Near(c.End(), 1e-5))
}

func TestArcHalfCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r := epicycle.P(1, 1)
	up := NewArc(epicycle.P(1, 0), r, 0, false, true, epicycle.P(-1, 0))
	near(t, epicycle.P(0, 0), up.Center())
	near(t, epicycle.P(1, 0), up.At(0))
	near(t, epicycle.P(0, 1), up.At(0.5))
	down := NewArc(epicycle.P(1, 0), r, 0, false, false, epicycle.P(-1, 0))
	near(t, epicycle.P(0, -1), down.At(0.5))
	assert.InDelta(t, -math.Pi, down.SweepAngle(), 1e-9)
}

func TestArcFlagsSelectCandidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p0, p1, r := epicycle.P(1, 0), epicycle.P(0, 1), epicycle.P(1, 1)
	small := NewArc(p0, r, 0, false, true, p1)
	near(t, epicycle.P(0, 0), small.Center())
	assert.InDelta(t, math.Pi/2, small.SweepAngle(), 1e-9)
	near(t, epicycle.P(math.Sqrt2/2, math.Sqrt2/2), small.At(0.5))
	large := NewArc(p0, r, 0, true, true, p1)
	near(t, epicycle.P(1, 1), large.Center())
	assert.InDelta(t, 3*math.Pi/2, large.SweepAngle(), 1e-9)
	near(t, epicycle.P(2, 1), large.At(1.0/3.0))
	for _, a := range []Arc{small, large,
		NewArc(p0, r, 0, true, false, p1), NewArc(p0, r, 0, false, false, p1)} {
		near(t, p0, a.At(0))
		assert.True(t, a.At(0.9999999).Near(p1, 1e-5), "arc %v does not end at %v", a, p1)
	}
}

func TestArcRotatedEllipse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// ellipse rx=2, ry=1 rotated by 90°: runs from (0,-2) over (1,0) to (0,2)
	a := NewArc(epicycle.P(0, -2), epicycle.P(2, 1), 90, false, true, epicycle.P(0, 2))
	near(t, epicycle.P(0, 0), a.Center())
	near(t, epicycle.P(1, 0), a.At(0.5))
}

func TestArcRadiiScaledUp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// radii far too small: scaled to span the chord, giving a half circle
	a := NewArc(epicycle.P(-2, 0), epicycle.P(0.5, 0.5), 0, false, true, epicycle.P(2, 0))
	near(t, epicycle.P(0, 0), a.Center())
	assert.InDelta(t, 2.0, a.At(0.5).Mag(), eps)
}

func TestArcDegenerate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pt := NewArc(epicycle.P(1, 1), epicycle.P(3, 3), 0, true, true, epicycle.P(1, 1))
	near(t, epicycle.P(1, 1), pt.At(0.7))
	flat := NewArc(epicycle.P(0, 0), epicycle.P(0, 3), 0, true, true, epicycle.P(2, 2))
	near(t, epicycle.P(1, 1), flat.At(0.5))
}

func TestCompositeSingleLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustComposite(Line{epicycle.P(0, 0), epicycle.P(1, 1)})
	assert.Equal(t, epicycle.P(0, 0), c.At(0))
	prev := math.Inf(1)
	for _, tt := range []float64{0.9, 0.99, 0.999, 0.9999999} {
		d := (c.At(tt) - epicycle.P(1, 1)).Mag()
		assert.Less(t, d, prev)
		prev = d
	}
	assert.Less(t, prev, 1e-6)
}

func TestCompositeLocate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	square := MustComposite(
		Line{epicycle.P(0, 0), epicycle.P(1, 0)},
		Line{epicycle.P(1, 0), epicycle.P(1, 1)},
		Line{epicycle.P(1, 1), epicycle.P(0, 1)},
		Line{epicycle.P(0, 1), epicycle.P(0, 0)},
	)
	i, u := square.Locate(0.625)
	assert.Equal(t, 2, i)
	assert.InDelta(t, 0.5, u, 1e-12)
	near(t, epicycle.P(0.5, 1), square.At(0.625))
	near(t, square.At(0.3), square.At(1.3)) // periodic
	near(t, square.At(0.8), square.At(-0.2))
	assert.True(t, square.IsClosed())
	assert.Equal(t, 4, square.N())
	assert.Equal(t, square.Segment(0), square.Segment(4))
}

func TestCompositeRejectsEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewComposite()
	assert.True(t, errors.Is(err, ErrEmptyPath))
	assert.Panics(t, func() { MustComposite() })
}

func TestSample(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustComposite(Line{epicycle.P(0, 0), epicycle.P(4, 0)})
	pts := Sample(c, 4)
	require.Len(t, pts, 4)
	for i, pt := range pts {
		near(t, epicycle.P(float64(i), 0), pt)
	}
	assert.Nil(t, Sample(c, 0))
}

func TestAsString(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustComposite(Line{epicycle.P(0, 0), epicycle.P(1, 0)}, Quad{epicycle.P(1, 0), epicycle.P(2, 1), epicycle.P(3, 0)})
	assert.Equal(t, "(0,0) -- (1,0)\n(1,0) .. control (2,1) .. (3,0)", AsString(c))
}
