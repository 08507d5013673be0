package render

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/world"
)

// Viewport maps world coordinates to pixel coordinates of a canvas.
type Viewport struct {
	at     epicycle.AT
	width  int
	height int
}

// NewViewport creates a viewport for a canvas of size width×height,
// mapping world coordinates with an affine transform.
func NewViewport(at epicycle.AT, width, height int) Viewport {
	return Viewport{at: at, width: width, height: height}
}

// Project maps a point in world coordinates to pixel coordinates.
func (vp Viewport) Project(p epicycle.Pair) epicycle.Pair {
	return vp.at.Transform(p)
}

// Scale is the factor by which world lengths are scaled to pixel lengths.
func (vp Viewport) Scale() float64 {
	return vp.at.Scale()
}

// Size returns the canvas size in pixels.
func (vp Viewport) Size() (int, int) {
	return vp.width, vp.height
}

// Visible is a predicate: does a rectangle in pixel coordinates overlap the
// canvas?
func (vp Viewport) Visible(r polyclip.Rectangle) bool {
	canvas := polyclip.Rectangle{
		Min: polyclip.Point{X: 0, Y: 0},
		Max: polyclip.Point{X: float64(vp.width), Y: float64(vp.height)},
	}
	return canvas.Overlaps(r)
}

// Fit creates a viewport which shows the world rectangle bounds centered on
// a canvas of size width×height, leaving a margin (fraction of the canvas
// size) on every side. The y-axis points upwards in world coordinates and
// downwards on the canvas. Aspect ratio is preserved.
func Fit(bounds polyclip.Rectangle, width, height int, margin float64) Viewport {
	bw := bounds.Max.X - bounds.Min.X
	bh := bounds.Max.Y - bounds.Min.Y
	uw := float64(width) * (1 - 2*margin)
	uh := float64(height) * (1 - 2*margin)
	s := math.Inf(1)
	if bw > epicycle.Epsilon {
		s = uw / bw
	}
	if bh > epicycle.Epsilon {
		s = math.Min(s, uh/bh)
	}
	if math.IsInf(s, 1) { // a single point
		s = 1
	}
	center := epicycle.P((bounds.Min.X+bounds.Max.X)/2, (bounds.Min.Y+bounds.Max.Y)/2)
	at := epicycle.Translation(-center).
		Combine(epicycle.Scaling(s, -s)).
		Combine(epicycle.Translation(epicycle.P(float64(width)/2, float64(height)/2)))
	tracer().Debugf("viewport for %v: scale %.4g, transform %v", bounds, s, at)
	return NewViewport(at, width, height)
}

// Bounds returns the bounding box of one or more point lists.
func Bounds(ptlists ...[]epicycle.Pair) polyclip.Rectangle {
	var poly polyclip.Polygon
	for _, pts := range ptlists {
		if len(pts) == 0 {
			continue
		}
		contour := make(polyclip.Contour, 0, len(pts))
		for _, p := range pts {
			contour.Add(polyclip.Point{X: p.X(), Y: p.Y()})
		}
		poly.Add(contour)
	}
	if len(poly) == 0 {
		return polyclip.Rectangle{}
	}
	return poly.BoundingBox()
}

// Extent returns a rectangle containing every state of a world, i.e. the
// square around the origin with half-width of the world's radius.
func Extent(w *world.World) polyclip.Rectangle {
	r := w.Radius()
	return polyclip.Rectangle{
		Min: polyclip.Point{X: -r, Y: -r},
		Max: polyclip.Point{X: r, Y: r},
	}
}

// circleBox returns the bounding box of a circle.
func circleBox(center epicycle.Pair, radius float64) polyclip.Rectangle {
	return polyclip.Rectangle{
		Min: polyclip.Point{X: center.X() - radius, Y: center.Y() - radius},
		Max: polyclip.Point{X: center.X() + radius, Y: center.Y() + radius},
	}
}
