/*
Package fourier estimates the complex Fourier coefficients of a closed
parametric curve by sampled integration.

For a curve c(t), t ∈ [0,1), the coefficient for frequency f is

	C_f = ∫ c(t)·e^{−i2πft} dt

which we approximate by the arithmetic mean over S uniformly spaced samples.
Every coefficient becomes one rotating vector (see package world), and the
sum of all rotating vectors reproduces the curve.

There is no FFT involved: coefficients are computed one by one for a chosen
range of frequencies, which is all an epicycle drawing needs.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package fourier

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/curve"
	"github.com/npillmayer/epicycle/world"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycle.fourier'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.fourier")
}

// DefaultSamples is the number of samples taken from a curve, if not
// configured otherwise.
const DefaultSamples = 10000

var (
	// ErrHarmonics indicates a request for less than one harmonic.
	ErrHarmonics = errors.New("number of harmonics must be at least 1")
	// ErrSamples indicates an analyzer configured with less than one sample.
	ErrSamples = errors.New("number of samples must be at least 1")
)

// Analyzer estimates rotating vectors for closed parametric curves.
// An analyzer holds configuration only and may be shared between goroutines.
type Analyzer struct {
	samples int
	dc      bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// Samples sets the number of uniformly spaced samples used for integration.
func Samples(n int) Option {
	return func(a *Analyzer) {
		a.samples = n
	}
}

// DC lets the analyzer prepend the frequency-0 term, i.e. the centroid of
// the curve. Without it, reconstructions are centered at the origin.
func DC(on bool) Option {
	return func(a *Analyzer) {
		a.dc = on
	}
}

// New creates an analyzer. Without options it takes DefaultSamples samples
// and omits the DC term.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{samples: DefaultSamples}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SampleCount returns the number of samples the analyzer integrates over.
func (a *Analyzer) SampleCount() int {
	return a.samples
}

// Analyze estimates 2·n rotating vectors for curve c: first the positive
// frequencies 1…n, then the negative frequencies −1…−n. If the analyzer is
// configured with DC(true), the frequency-0 term comes first.
//
// The curve is sampled exactly once. Analyze is deterministic: the same
// curve and n always produce identical vectors.
func (a *Analyzer) Analyze(c curve.Parametric, n int) ([]world.SVector, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrHarmonics, n)
	}
	if a.samples < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSamples, a.samples)
	}
	pts := curve.Sample(c, a.samples)
	tracer().Debugf("sampled curve at %d parameters", len(pts))
	vs := make([]world.SVector, 0, 2*n+1)
	if a.dc {
		vs = append(vs, coefficient(pts, 0))
	}
	for f := 1; f <= n; f++ {
		vs = append(vs, coefficient(pts, float64(f)))
	}
	for f := 1; f <= n; f++ {
		vs = append(vs, coefficient(pts, float64(-f)))
	}
	tracer().Infof("analyzed curve: %d rotating vectors from %d samples", len(vs), a.samples)
	return vs, nil
}

// coefficient demodulates samples pts, taken at t_i = i/len(pts), with
// frequency f and averages the result.
func coefficient(pts []epicycle.Pair, f float64) world.SVector {
	s := float64(len(pts))
	demod := make([]epicycle.Pair, len(pts))
	for i, p := range pts {
		t := float64(i) / s
		demod[i] = p.Mul(epicycle.Polar(1, -2*math.Pi*f*t))
	}
	mean := epicycle.Mean(demod)
	v := world.SVector{
		Phase:     mean.Angle(),
		Frequency: f,
		Magnitude: mean.Mag(),
	}
	tracer().Debugf("coefficient %v", v)
	return v
}
