/*
Package svgpath compiles the path data mini-language of SVG (the 'd'
attribute of a <path> element) into a composite parametric curve.

Supported are all path commands, M L H V C S Q T A Z, in absolute (upper
case) and relative (lower case) form, including implicit repetition of
parameter groups. Smooth curve commands (S, T) reflect the previous
control point, and elliptical arcs are evaluated as true arcs.

Compiling is a fold over the list of commands: a cursor state is threaded
through every command step, each step returning the new cursor together
with the segments it emits.

Close commands (Z) do not emit a closing segment by default; the cursor
jumps back to the start of the subpath. Use option ClosingLines to get an
explicit straight line back to the subpath start.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package svgpath

import (
	"errors"
	"fmt"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/curve"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.svgpath'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.svgpath")
}

// ErrNoSegments indicates path data without any drawing command.
var ErrNoSegments = errors.New("path data contains no drawing command")

// Option configures the path compiler.
type Option func(*options)

type options struct {
	closingLines bool
}

// ClosingLines makes Z commands emit a straight line back to the start of
// the subpath, if the cursor is not already there.
func ClosingLines() Option {
	return func(o *options) {
		o.closingLines = true
	}
}

// cursor is the state threaded through the compilation steps.
type cursor struct {
	pos   epicycle.Pair // current point
	start epicycle.Pair // start of the current subpath
	prev  byte          // previous command letter, upper case
	ctrl  epicycle.Pair // last control point of the previous curve command
}

// Compile parses path data and returns it as a composite path. The data
// must contain at least one drawing command. Compile never returns a
// partial result: on error the composite is nil.
func Compile(d string, opts ...Option) (*curve.Composite, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cmds, err := Scan(d)
	if err != nil {
		tracer().Errorf("cannot compile path data: %v", err)
		return nil, err
	}
	var segments []curve.Segment
	var cur cursor
	for _, cmd := range cmds {
		var segs []curve.Segment
		cur, segs = step(cur, cmd, o)
		segments = append(segments, segs...)
	}
	if len(segments) == 0 {
		tracer().Errorf("path data without drawing command")
		return nil, ErrNoSegments
	}
	tracer().Infof("compiled %d commands to %d segments, cursor ends at %s",
		len(cmds), len(segments), cur.pos)
	return curve.NewComposite(segments...)
}

// MustCompile is a compatibility helper which panics if the path data
// cannot be compiled.
func MustCompile(d string, opts ...Option) *curve.Composite {
	c, err := Compile(d, opts...)
	if err != nil {
		panic(fmt.Sprintf("svgpath: cannot compile %q: %v", d, err))
	}
	return c
}

// step processes a single command, group by group. It returns the cursor
// after the command and the segments emitted.
func step(cur cursor, cmd Command, o options) (cursor, []curve.Segment) {
	var segs []curve.Segment
	for g := 0; g < cmd.Groups(); g++ {
		var seg curve.Segment
		cur, seg = stepGroup(cur, cmd, g, o)
		if seg != nil {
			segs = append(segs, seg)
		}
	}
	return cur, segs
}

func stepGroup(cur cursor, cmd Command, g int, o options) (cursor, curve.Segment) {
	var args []float64
	if cmd.Letter != 'Z' {
		args = cmd.Group(g)
	}
	// abs resolves a point of this group against the pre-group cursor
	base := cur.pos
	abs := func(x, y float64) epicycle.Pair {
		if cmd.Relative {
			return base + epicycle.P(x, y)
		}
		return epicycle.P(x, y)
	}
	letter := cmd.Letter
	var seg curve.Segment
	switch letter {
	case 'M':
		if g == 0 {
			cur.pos = abs(args[0], args[1])
			cur.start = cur.pos
			break
		}
		letter = 'L' // subsequent pairs are implicit line-to commands
		end := abs(args[0], args[1])
		seg, cur.pos = curve.Line{P0: base, P1: end}, end
	case 'Z':
		if o.closingLines && !cur.pos.Equal(cur.start) {
			seg = curve.Line{P0: cur.pos, P1: cur.start}
		}
		cur.pos = cur.start
	case 'L':
		end := abs(args[0], args[1])
		seg, cur.pos = curve.Line{P0: base, P1: end}, end
	case 'H':
		end := epicycle.P(args[0], base.Y())
		if cmd.Relative {
			end = base + epicycle.P(args[0], 0)
		}
		seg, cur.pos = curve.Line{P0: base, P1: end}, end
	case 'V':
		end := epicycle.P(base.X(), args[0])
		if cmd.Relative {
			end = base + epicycle.P(0, args[0])
		}
		seg, cur.pos = curve.Line{P0: base, P1: end}, end
	case 'Q':
		ctrl, end := abs(args[0], args[1]), abs(args[2], args[3])
		seg, cur.pos, cur.ctrl = curve.Quad{P0: base, P1: ctrl, P2: end}, end, ctrl
	case 'T':
		ctrl := base
		if cur.prev == 'Q' || cur.prev == 'T' {
			ctrl = reflect(cur.ctrl, base)
		}
		end := abs(args[0], args[1])
		seg, cur.pos, cur.ctrl = curve.Quad{P0: base, P1: ctrl, P2: end}, end, ctrl
	case 'C':
		c1, c2, end := abs(args[0], args[1]), abs(args[2], args[3]), abs(args[4], args[5])
		seg, cur.pos, cur.ctrl = curve.Cubic{P0: base, P1: c1, P2: c2, P3: end}, end, c2
	case 'S':
		c1 := base
		if cur.prev == 'C' || cur.prev == 'S' {
			c1 = reflect(cur.ctrl, base)
		}
		c2, end := abs(args[0], args[1]), abs(args[2], args[3])
		seg, cur.pos, cur.ctrl = curve.Cubic{P0: base, P1: c1, P2: c2, P3: end}, end, c2
	case 'A':
		radii := epicycle.P(args[0], args[1])
		end := abs(args[5], args[6])
		seg = curve.NewArc(base, radii, args[2], args[3] != 0, args[4] != 0, end)
		cur.pos = end
	}
	cur.prev = letter
	return cur, seg
}

// reflect returns the reflection of control point c about point p.
func reflect(c, p epicycle.Pair) epicycle.Pair {
	return p.Scaled(2) - c
}
