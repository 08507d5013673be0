package render

import (
	"context"
	"image/color"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/config"
	"github.com/npillmayer/epicycle/world"
)

// Frame draws the state of world w at time t onto surface s: first the
// circles of the rotating vectors (if enabled and supported by s), then the
// chain of arms in the secondary color, then the trail in the primary color.
// The tip of the chain is pushed onto the trail before drawing it; trail may
// be nil.
func Frame(s Surface, vp Viewport, w *world.World, trail *Trail, t float64, style Style) {
	chain := w.State(t)
	if trail != nil {
		trail.Push(chain[len(chain)-1])
	}
	pixels := make([]epicycle.Pair, len(chain))
	for i, p := range chain {
		pixels[i] = vp.Project(p)
	}
	if cd, ok := s.(CircleDrawer); ok && style.Circles {
		s.SetColor(circleColor(style.Secondary))
		scale := vp.Scale()
		for i, v := range w.Vectors() {
			r := v.Magnitude * scale
			if r < 1 || !vp.Visible(circleBox(pixels[i], r)) {
				continue
			}
			cd.DrawCircle(pixels[i], r)
		}
	}
	s.SetColor(style.Secondary)
	polyline(s, pixels)
	if trail != nil {
		s.SetColor(style.Primary)
		pts := trail.Points()
		for i, p := range pts {
			pts[i] = vp.Project(p)
		}
		polyline(s, pts)
	}
}

// circleColor dims a color to a translucent variant.
func circleColor(c color.Color) color.Color {
	if c == nil {
		return nil
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x60}
}

// Animate renders cfg.Render.Frames frames of world w onto a canvas,
// starting at time 0 and advancing by the configured time step. After each
// frame, sink is called with the frame number and the canvas; an error from
// sink stops the animation. Cancellation of ctx is checked between frames.
func Animate(ctx context.Context, cfg *config.Config, w *world.World, vp Viewport,
	sink func(int, *Canvas) error) error {
	rc := cfg.Render
	style, err := NewStyle(cfg)
	if err != nil {
		return err
	}
	canvas := NewCanvas(rc.Width, rc.Height, rc.LineWidth)
	defer canvas.Close()
	trail := NewTrail(rc.Trail)
	dt := rc.TimeStep()
	tracer().Infof("rendering %d frames of %d×%d, time step %.4g", rc.Frames, rc.Width, rc.Height, dt)
	for i := 0; i < rc.Frames; i++ {
		if err := ctx.Err(); err != nil {
			tracer().Infof("rendering cancelled after %d frames", i)
			return err
		}
		canvas.Clear(style.Background)
		Frame(canvas, vp, w, trail, float64(i)*dt, style)
		if err := canvas.Err(); err != nil {
			return err
		}
		if err := sink(i, canvas); err != nil {
			return err
		}
	}
	return nil
}
