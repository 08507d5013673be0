/*
Package render draws epicycle frames.

A frame consists of the chain of rotating vectors ("arms") at a given time,
optionally the circles the arms rotate on, and the trail of points the tip
of the chain has traced so far. Frames are drawn onto a Surface, which
works in pixel coordinates; a Viewport maps world coordinates to pixels.

Canvas is a raster Surface which is able to write PNG images. Animate
renders a sequence of frames onto a canvas.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package render

import (
	"image/color"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.render'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.render")
}

// Surface is a drawing target, working in pixel coordinates.
type Surface interface {
	SetColor(color.Color)
	DrawLine(a, b epicycle.Pair)
}

// CircleDrawer is implemented by surfaces which are able to draw circles.
// Frames draw the circles of rotating vectors only onto surfaces of this
// kind.
type CircleDrawer interface {
	DrawCircle(center epicycle.Pair, radius float64)
}

// Style holds the colors and options for drawing frames.
type Style struct {
	Background color.Color // canvas background
	Primary    color.Color // trail
	Secondary  color.Color // arms
	Circles    bool        // draw circles of rotating vectors
}

// polyline draws lines between consecutive points.
func polyline(s Surface, pts []epicycle.Pair) {
	for i := 1; i < len(pts); i++ {
		s.DrawLine(pts[i-1], pts[i])
	}
}
