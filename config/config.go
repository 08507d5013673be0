// Package config holds the settings for analyzing curves and rendering
// epicycle frames. Settings are read from TOML documents, e.g.
//
//	[analysis]
//	samples = 10000
//	harmonics = 50
//	order = "magnitude"
//
//	[render]
//	width = 800
//	height = 600
//
//	[colors]
//	primary = "#ffffff"
//
// Every value missing from a document keeps its default.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pelletier/go-toml/v2"
)

// tracer writes to trace with key 'epicycle.config'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.config")
}

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("invalid configuration")

// Orderings of rotating vectors, see package world.
const (
	OrderMagnitude = "magnitude"
	OrderFrequency = "frequency"
	OrderNone      = "none"
)

// Config is the top-level configuration.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Render   Render   `toml:"render"`
	Colors   Colors   `toml:"colors"`
	Trace    Trace    `toml:"trace"`
}

// Analysis configures the Fourier analyzer.
type Analysis struct {
	Samples   int    `toml:"samples"`   // number of integration samples
	Harmonics int    `toml:"harmonics"` // frequencies 1…n and −1…−n
	DC        bool   `toml:"dc"`        // include the frequency-0 term
	Order     string `toml:"order"`     // order of the vector chain
}

// Render configures the offline frame renderer.
type Render struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Frames    int     `toml:"frames"`
	Speed     float64 `toml:"speed"` // time step per frame; 0 = one period over all frames
	Trail     int     `toml:"trail"` // number of tip points kept
	Margin    float64 `toml:"margin"`
	Circles   bool    `toml:"circles"`
	LineWidth float64 `toml:"line_width"`
}

// Colors are hex color strings, as in "#0000ff".
type Colors struct {
	Background string `toml:"background"`
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
}

// Trace configures tracing output.
type Trace struct {
	Level string `toml:"level"`
}

// Default returns the default configuration: an 800×600 canvas with a
// white trail and blue arms on black.
func Default() *Config {
	return &Config{
		Analysis: Analysis{
			Samples:   10000,
			Harmonics: 50,
			Order:     OrderMagnitude,
		},
		Render: Render{
			Width:     800,
			Height:    600,
			Frames:    120,
			Trail:     400,
			Margin:    0.1,
			Circles:   true,
			LineWidth: 1.5,
		},
		Colors: Colors{
			Background: "#000000",
			Primary:    "#ffffff",
			Secondary:  "#0000ff",
		},
		Trace: Trace{Level: "info"},
	}
}

// Load decodes a TOML document over the default configuration and
// validates the result.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Open loads a configuration file, see Load.
func Open(filename string) (*Config, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	tracer().Infof("reading configuration from %s", filename)
	return Load(bufio.NewReader(fp))
}

// Validate checks that all numeric values are in range and that enumerated
// values are known.
func (c *Config) Validate() error {
	switch {
	case c.Analysis.Samples < 1:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalid, c.Analysis.Samples)
	case c.Analysis.Harmonics < 1:
		return fmt.Errorf("%w: harmonics must be positive, got %d", ErrInvalid, c.Analysis.Harmonics)
	case c.Render.Width < 1 || c.Render.Height < 1:
		return fmt.Errorf("%w: canvas size must be positive, got %d×%d", ErrInvalid,
			c.Render.Width, c.Render.Height)
	case c.Render.Frames < 1:
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalid, c.Render.Frames)
	case c.Render.Trail < 0:
		return fmt.Errorf("%w: trail must not be negative, got %d", ErrInvalid, c.Render.Trail)
	case c.Render.Margin < 0 || c.Render.Margin >= 0.5:
		return fmt.Errorf("%w: margin must be in [0,0.5), got %g", ErrInvalid, c.Render.Margin)
	case c.Render.LineWidth <= 0:
		return fmt.Errorf("%w: line width must be positive, got %g", ErrInvalid, c.Render.LineWidth)
	}
	switch c.Analysis.Order {
	case OrderMagnitude, OrderFrequency, OrderNone:
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalid, c.Analysis.Order)
	}
	for _, col := range []string{c.Colors.Background, c.Colors.Primary, c.Colors.Secondary} {
		if !isHexColor(col) {
			return fmt.Errorf("%w: malformed color %q", ErrInvalid, col)
		}
	}
	if _, ok := TraceLevel(c.Trace.Level); !ok {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalid, c.Trace.Level)
	}
	return nil
}

// TimeStep returns the time advanced per frame.
func (r Render) TimeStep() float64 {
	if r.Speed == 0 {
		return 1 / float64(r.Frames)
	}
	return r.Speed
}

// TraceLevel maps a level name to a tracing level.
func TraceLevel(name string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug, true
	case "info", "":
		return tracing.LevelInfo, true
	case "error":
		return tracing.LevelError, true
	}
	return tracing.LevelInfo, false
}

// isHexColor checks for "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with an
// optional leading '#'.
func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
