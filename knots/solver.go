package knots

import (
	"math"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/curve"
)

// solve finds the Hobby control points for every join and returns the
// resulting cubic segments.
//
// The notation sticks closely to MetaFont: theta.i is the angle between the
// outgoing tangent at z.i and the chord to z.i+1, phi.i+1 the corresponding
// incoming angle at z.i+1. The tridiagonal (open) or cyclic linear system
// for the theta values is solved by forward elimination (u, v, w) followed
// by back substitution.
func (sk *skeleton) solve() []curve.Cubic {
	m := sk.joins()
	u := make([]float64, m+2)
	v := make([]float64, m+2)
	theta := make([]float64, m+2)
	if !sk.cycle && sk.n() == 2 {
		return sk.controls(theta) // straight line, as in MetaFont
	}
	if sk.cycle {
		w := make([]float64, m+2)
		u[0], v[0], w[0] = 0, 0, 1
		sk.eliminate(1, m, u, v, w)
		sk.endCycle(theta, u, v, w)
	} else {
		sk.startOpen(u, v)
		sk.eliminate(1, m-1, u, v, nil)
		sk.endOpen(theta, u, v)
	}
	return sk.controls(theta)
}

func (sk *skeleton) startOpen(u, v []float64) {
	a := recip(sk.postTension(0))
	b := recip(sk.preTension(1))
	c := square(a) * sk.curl / square(b)
	u[0] = ((3-a)*c + b) / (a*c + 3 - b)
	v[0] = -u[0] * sk.psi(1)
	tracer().Debugf("u.0 = %.4g, v.0 = %.4g", u[0], v[0])
}

func (sk *skeleton) endOpen(theta, u, v []float64) {
	last := sk.n() - 1
	a := recip(sk.postTension(last - 1))
	b := recip(sk.preTension(last))
	c := square(b) * sk.curl / square(a)
	ulast := (b*c + 3 - a) / ((3-b)*c + a)
	theta[last] = v[last-1] / (u[last-1] - ulast)
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

func (sk *skeleton) endCycle(theta, u, v, w []float64) {
	n := sk.n()
	var a, b float64 = 0, 1
	for i := n; i > 0; i-- {
		a = v[i] - a*u[i]
		b = w[i] - b*u[i]
	}
	t0 := (v[n] - a*u[n]) / (1 - (w[n] - b*u[n]))
	v[0] = t0
	for i := 1; i <= n; i++ {
		v[i] += w[i] * t0
	}
	theta[0], theta[n] = t0, t0
	for i := n - 1; i > 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

// eliminate sets up the equations for knots from…to and performs the
// forward elimination step. w is nil for open curves.
func (sk *skeleton) eliminate(from, to int, u, v, w []float64) {
	for i := from; i <= to; i++ {
		a0 := recip(sk.postTension(i - 1))
		a1 := recip(sk.postTension(i))
		b1 := recip(sk.preTension(i))
		b2 := recip(sk.preTension(i + 1))
		A := a0 / (square(b1) * sk.d(i-1))
		B := (3 - a0) / (square(b1) * sk.d(i-1))
		C := (3 - b2) / (square(a1) * sk.d(i))
		D := b2 / (square(a1) * sk.d(i))
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*sk.psi(i) - D*sk.psi(i+1) - A*v[i-1]) / t
		if w != nil {
			w[i] = -A * w[i-1] / t
		}
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g", i, u[i], i, v[i])
	}
}

// controls turns the theta angles into control points, one cubic per join.
func (sk *skeleton) controls(theta []float64) []curve.Cubic {
	m := sk.joins()
	cubics := make([]curve.Cubic, m)
	for i := 0; i < m; i++ {
		phi := -sk.psi(i+1) - theta[i+1]
		a := recip(sk.postTension(i))
		b := recip(sk.preTension(i + 1))
		post, pre := controlOffsets(theta[i], phi, a, b, sk.delta(i))
		cubics[i] = curve.Cubic{
			P0: sk.z(i),
			P1: sk.z(i) + post,
			P2: sk.z(i+1) - pre,
			P3: sk.z(i + 1),
		}
		tracer().Debugf("join %d: %v", i, cubics[i])
	}
	return cubics
}

// controlOffsets calculates the offsets of the control points between z.i
// and z.i+1, relative to the two knots.
func controlOffsets(theta, phi, a, b float64, dvec epicycle.Pair) (epicycle.Pair, epicycle.Pair) {
	alpha, beta := hobbyAlphaBeta(theta, phi)
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	post := dvec.Rotated(theta).Scaled(a / 3 * rho)
	pre := dvec.Rotated(-phi).Scaled(b / 3 * sigma)
	return post, pre
}

// Hobby's velocity function, with empiric constants as explained by J.Hobby.
func hobbyAlphaBeta(theta, phi float64) (float64, float64) {
	const (
		constA  = math.Sqrt2
		constB  = 1.0 / 16
		constC  = 0.38196601125 // (3 - sqrt(5)) / 2
		constCC = 0.61803398875 // 1 - c
	)
	st, ct := math.Sincos(theta)
	sf, cf := math.Sincos(phi)
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) {
		return 1.0
	}
	return 1.0 / a
}

func square(a float64) float64 {
	return a * a
}
