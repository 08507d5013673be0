package svgpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/curve"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(t *testing.T, want, got epicycle.Pair) {
	t.Helper()
	if !got.Near(want, 1e-4) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScanCommands(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cmds, err := Scan("M 10,20 l-5.5.5e1 h3v-4 Z")
	require.NoError(t, err)
	require.Len(t, cmds, 5)
	assert.Equal(t, "M10 20", cmds[0].String())
	assert.Equal(t, Command{Letter: 'L', Relative: true, Args: []float64{-5.5, 5}, Pos: 8}, cmds[1])
	assert.Equal(t, "h3", cmds[2].String())
	assert.Equal(t, "v-4", cmds[3].String())
	assert.Equal(t, byte('Z'), cmds[4].Letter)
	assert.Equal(t, 1, cmds[4].Groups())
}

func TestScanArcFlagsWithoutSeparator(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cmds, err := Scan("M0 0a5 5 0 1010 0")
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, []float64{5, 5, 0, 1, 0, 10, 0}, cmds[1].Args)
}

func TestScanErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, c := range []struct {
		d   string
		err error
	}{
		{"10 20 L 1 1", ErrNoCommand},
		{"M 0 0 X 1 1", ErrUnknownCommand},
		{"M 0 0 L 1", ErrParamCount},
		{"M 0 0 C 1 1 2 2 3", ErrParamCount},
		{"M 0 0 L", ErrParamCount},
		{"M 0 0 Z 5", ErrParamCount},
		{"M 0 0 L 1 # 2", ErrBadNumber},
		{"M 0 0 A 5 5 0 2 0 1 1", ErrBadFlag},
		{"M 0 0 L 1e400 0", ErrBadNumber},
		{"M 0 0 L 0 -1e999", ErrBadNumber},
	} {
		_, err := Scan(c.d)
		assert.True(t, errors.Is(err, c.err), "%q: expected %v, got %v", c.d, c.err, err)
	}
}

func TestCompileLines(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := Compile("M0 0 L1 0 1 1 h-1 v-1")
	require.NoError(t, err)
	require.Equal(t, 4, c.N())
	assert.Equal(t, curve.Line{P0: epicycle.P(0, 0), P1: epicycle.P(1, 0)}, c.Segment(0))
	assert.Equal(t, curve.Line{P0: epicycle.P(1, 0), P1: epicycle.P(1, 1)}, c.Segment(1))
	assert.Equal(t, curve.Line{P0: epicycle.P(1, 1), P1: epicycle.P(0, 1)}, c.Segment(2))
	assert.Equal(t, curve.Line{P0: epicycle.P(0, 1), P1: epicycle.P(0, 0)}, c.Segment(3))
	assert.True(t, c.IsClosed())
}

func TestCompileRelativeGroups(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// every relative group is resolved against the cursor before that group
	c := MustCompile("m1 1 l1 0 0 1 -1 0")
	require.Equal(t, 3, c.N())
	assert.Equal(t, epicycle.P(2, 1), c.Segment(0).End())
	assert.Equal(t, epicycle.P(2, 2), c.Segment(1).End())
	assert.Equal(t, epicycle.P(1, 2), c.Segment(2).End())
}

func TestCompileImplicitLineAfterMove(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustCompile("m 1 1 2 0 0 2")
	require.Equal(t, 2, c.N())
	assert.Equal(t, curve.Line{P0: epicycle.P(1, 1), P1: epicycle.P(3, 1)}, c.Segment(0))
	assert.Equal(t, curve.Line{P0: epicycle.P(3, 1), P1: epicycle.P(3, 3)}, c.Segment(1))
}

func TestCompileCurves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustCompile("M0 0 q1 1 2 0 C 3 -1 4 1 5 0")
	require.Equal(t, 2, c.N())
	assert.Equal(t, curve.Quad{P0: epicycle.P(0, 0), P1: epicycle.P(1, 1), P2: epicycle.P(2, 0)}, c.Segment(0))
	assert.Equal(t, curve.Cubic{P0: epicycle.P(2, 0), P1: epicycle.P(3, -1), P2: epicycle.P(4, 1),
		P3: epicycle.P(5, 0)}, c.Segment(1))
}

func TestCompileSmoothCubicReflects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustCompile("M0 0 C0 1 1 1 1 0 S2 -1 2 0")
	require.Equal(t, 2, c.N())
	s := c.Segment(1).(curve.Cubic)
	assert.Equal(t, epicycle.P(1, 0), s.P0)
	assert.Equal(t, epicycle.P(1, -1), s.P1) // (1,1) reflected about (1,0)
	assert.Equal(t, epicycle.P(2, -1), s.P2)
	// without preceding cubic, the first control point is the cursor
	c = MustCompile("M0 0 L1 0 s1 1 2 0")
	s = c.Segment(1).(curve.Cubic)
	assert.Equal(t, epicycle.P(1, 0), s.P1)
	assert.Equal(t, epicycle.P(2, 1), s.P2)
	assert.Equal(t, epicycle.P(3, 0), s.P3)
}

func TestCompileSmoothQuadReflects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustCompile("M0 0 Q1 1 2 0 T4 0 6 0")
	require.Equal(t, 3, c.N())
	t1 := c.Segment(1).(curve.Quad)
	assert.Equal(t, epicycle.P(3, -1), t1.P1)
	t2 := c.Segment(2).(curve.Quad)
	assert.Equal(t, epicycle.P(5, 1), t2.P1) // chained reflection
	c = MustCompile("M0 0 T2 0")
	assert.Equal(t, epicycle.P(0, 0), c.Segment(0).(curve.Quad).P1)
}

func TestCompileArc(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := MustCompile("M1 0 a1 1 0 0 1 -2 0")
	require.Equal(t, 1, c.N())
	a := c.Segment(0).(curve.Arc)
	assert.Equal(t, epicycle.P(-1, 0), a.End())
	assert.Equal(t, epicycle.P(1, 1), a.Radii) // radii are never offset
	near(t, epicycle.P(0, 1), c.At(0.5))
}

func TestCompileClose(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	open := MustCompile("M0 0 L1 0 L1 1 Z l1 0")
	require.Equal(t, 3, open.N())
	// Z moves the cursor back to the subpath start
	assert.Equal(t, curve.Line{P0: epicycle.P(0, 0), P1: epicycle.P(1, 0)}, open.Segment(2))
	closed := MustCompile("M0 0 L1 0 L1 1 Z", ClosingLines())
	require.Equal(t, 3, closed.N())
	assert.Equal(t, curve.Line{P0: epicycle.P(1, 1), P1: epicycle.P(0, 0)}, closed.Segment(2))
	assert.True(t, closed.IsClosed())
}

func TestCompileRejects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, c := range []struct {
		d   string
		err error
	}{
		{"", ErrNoSegments},
		{"   ", ErrNoSegments},
		{"M 10 10", ErrNoSegments},
		{"M 10 10 Z", ErrNoSegments},
		{"M 0 0 L 1 #", ErrBadNumber},
		{"M 0 0 L 1 1 x", ErrUnknownCommand},
		{"M 0 0 L 1 x", ErrParamCount},
		{"M0 0 L1e400 0 L0 1 Z", ErrBadNumber},
		{"M 0 0 Q 1 1 2", ErrParamCount},
	} {
		p, err := Compile(c.d)
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, c.err), "%q: expected %v, got %v", c.d, c.err, err)
	}
	assert.Panics(t, func() { MustCompile("M 1 1") })
}

const heart = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
  <title>heart</title>
  <path d="M 0 0 L 1 1"/>
  <g><path id="outline" d="M5 3 C5 1 1 1 1 4 C1 6 5 8 5 9 C5 8 9 6 9 4 C9 1 5 1 5 3 Z"/></g>
  <rect x="0" y="0" width="1" height="1"/>
</svg>`

func TestDocumentTakesLastPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	d, err := Document(strings.NewReader(heart))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d, "M5 3 C5 1"))
	c, err := Read(strings.NewReader(heart))
	require.NoError(t, err)
	assert.Equal(t, 4, c.N())
	assert.True(t, c.IsClosed())
}

func TestDocumentWithoutPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Document(strings.NewReader(`<svg><rect width="1" height="1"/><path id="x"/></svg>`))
	assert.True(t, errors.Is(err, ErrNoPathData))
}

func TestOpen(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dir := t.TempDir()
	file := filepath.Join(dir, "heart.svg")
	require.NoError(t, os.WriteFile(file, []byte(heart), 0o644))
	c, err := Open(file)
	require.NoError(t, err)
	assert.Equal(t, 4, c.N())
	_, err = Open(filepath.Join(dir, "missing.svg"))
	assert.True(t, errors.Is(err, ErrNoDocument))
	_, err = Open(dir)
	assert.True(t, errors.Is(err, ErrNoDocument))
}
