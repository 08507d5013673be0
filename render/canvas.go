package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/config"
)

// Canvas is a raster Surface, backed by a gg drawing context.
// Lines are stroked immediately; the first stroking error is kept and
// reported by Err.
type Canvas struct {
	gc  *gg.Context
	err error
}

// NewCanvas creates a canvas of width×height pixels. Lines are stroked
// with the given width.
func NewCanvas(width, height int, lineWidth float64) *Canvas {
	gc := gg.NewContext(width, height)
	gc.SetLineWidth(lineWidth)
	return &Canvas{gc: gc}
}

// SetColor sets the color for subsequent drawing operations.
func (c *Canvas) SetColor(col color.Color) {
	if col == nil {
		return
	}
	c.gc.SetColor(col)
}

// DrawLine strokes a line between a and b, in pixel coordinates.
func (c *Canvas) DrawLine(a, b epicycle.Pair) {
	c.gc.DrawLine(a.X(), a.Y(), b.X(), b.Y())
	c.stroke()
}

// DrawCircle strokes a circle, in pixel coordinates.
func (c *Canvas) DrawCircle(center epicycle.Pair, radius float64) {
	c.gc.DrawCircle(center.X(), center.Y(), radius)
	c.stroke()
}

func (c *Canvas) stroke() {
	if err := c.gc.Stroke(); err != nil && c.err == nil {
		tracer().Errorf("stroking failed: %v", err)
		c.err = err
	}
}

// Clear fills the whole canvas with a color.
func (c *Canvas) Clear(col color.Color) {
	if col == nil {
		col = color.Black
	}
	c.gc.ClearWithColor(gg.FromColor(col))
}

// Err returns the first error which occurred while drawing, if any.
func (c *Canvas) Err() error {
	return c.err
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (int, int) {
	return c.gc.Width(), c.gc.Height()
}

// Image returns the canvas content.
func (c *Canvas) Image() image.Image {
	return c.gc.Image()
}

// SavePNG writes the canvas content to a PNG file.
func (c *Canvas) SavePNG(filename string) error {
	return c.gc.SavePNG(filename)
}

// EncodePNG writes the canvas content as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.gc.EncodePNG(w)
}

// Close releases the resources of the drawing context.
func (c *Canvas) Close() error {
	return c.gc.Close()
}

// ParseColor converts a hex color string ("#RGB", "#RRGGBB", …) to a color.
func ParseColor(hex string) color.Color {
	return gg.Hex(hex).Color()
}

// NewStyle creates a drawing style from a configuration.
func NewStyle(cfg *config.Config) (Style, error) {
	if err := cfg.Validate(); err != nil {
		return Style{}, fmt.Errorf("cannot create style: %w", err)
	}
	return Style{
		Background: ParseColor(cfg.Colors.Background),
		Primary:    ParseColor(cfg.Colors.Primary),
		Secondary:  ParseColor(cfg.Colors.Secondary),
		Circles:    cfg.Render.Circles,
	}, nil
}
