// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moc

import "math"

// BoundaryKind selects a water-hammer boundary condition (§6.3).
type BoundaryKind int

const (
	BoundaryReservoir BoundaryKind = iota
	BoundaryValve
	BoundaryClosedEnd
	BoundaryConstantFlow
)

// UpstreamBoundary applies the upstream (node 0) boundary condition (§4.5).
type UpstreamBoundary struct {
	Kind BoundaryKind

	ReservoirHead HeadFunc // H(t), used when Kind==BoundaryReservoir
	FixedFlow     float64  // used when Kind==BoundaryConstantFlow
}

// Apply computes H[0]/Q[0] given the surviving C- characteristic from
// node 1 (§4.5 boundary table).
func (b *UpstreamBoundary) Apply(g *Grid, t float64) {
	cMinus := g.H[1] - g.B*g.Q[1] + g.R*g.Q[1]*abs(g.Q[1])
	switch b.Kind {
	case BoundaryReservoir:
		h := b.ReservoirHead.F(t, nil)
		g.Hnew[0] = h
		g.Qnew[0] = (h - cMinus) / g.B
	case BoundaryClosedEnd:
		g.Qnew[0] = 0
		g.Hnew[0] = cMinus
	case BoundaryConstantFlow:
		g.Qnew[0] = b.FixedFlow
		g.Hnew[0] = cMinus + g.B*b.FixedFlow
	default:
		g.Hnew[0] = cMinus
		g.Qnew[0] = 0
	}
}

// DownstreamBoundary applies the downstream (node N-1) boundary condition
// (§4.5), including the nonlinear valve quadratic.
type DownstreamBoundary struct {
	Kind BoundaryKind

	ReservoirHead HeadFunc // H(t), used when Kind==BoundaryReservoir
	FixedFlow     float64  // used when Kind==BoundaryConstantFlow

	Cv         float64  // valve coefficient, back-calculated from steady state at Run
	Tau        ValveFunc // relative opening τ(t) ∈ [0,1], used when Kind==BoundaryValve
	DownstreamHead float64 // H_d for the valve discharge relation
}

// Apply computes H[N-1]/Q[N-1] given the surviving C+ characteristic from
// node N-2 (§4.5 boundary table).
func (b *DownstreamBoundary) Apply(g *Grid, t float64) {
	n := g.N
	qm := g.Q[n-2]
	cPlus := g.H[n-2] + g.B*qm - g.R*qm*abs(qm)

	switch b.Kind {
	case BoundaryReservoir:
		h := b.ReservoirHead.F(t, nil)
		g.Hnew[n-1] = h
		g.Qnew[n-1] = (cPlus - h) / g.B
	case BoundaryClosedEnd:
		g.Qnew[n-1] = 0
		g.Hnew[n-1] = cPlus
	case BoundaryConstantFlow:
		g.Qnew[n-1] = b.FixedFlow
		g.Hnew[n-1] = cPlus - g.B*b.FixedFlow
	case BoundaryValve:
		tau := 1.0
		if b.Tau != nil {
			tau = b.Tau.F(t, nil)
		}
		q, h := b.valveSolve(g, cPlus, tau)
		g.Qnew[n-1] = q
		g.Hnew[n-1] = h
	}
}

// valveSolve solves the quadratic B·Q² + (Cv²τ²)·Q + Cv²τ²·(Hd-C+) = 0 for
// the non-negative root (§4.5). Falls back to Q=0, H=C+ when τ<1e-3 or the
// discriminant is negative (§4.5 "no hard failure in the transient step").
func (b *DownstreamBoundary) valveSolve(g *Grid, cPlus, tau float64) (q, h float64) {
	if tau < 1e-3 {
		return 0, cPlus
	}
	cv2tau2 := b.Cv * b.Cv * tau * tau
	a := g.B
	bb := cv2tau2
	c := cv2tau2 * (b.DownstreamHead - cPlus)
	disc := bb*bb - 4*a*c
	if disc < 0 {
		return 0, cPlus
	}
	sq := math.Sqrt(disc)
	q1 := (-bb + sq) / (2 * a)
	q2 := (-bb - sq) / (2 * a)
	q = q1
	if q2 > q {
		q = q2
	}
	if q < 0 {
		return 0, cPlus
	}
	h = cPlus - g.B*q
	return q, h
}

// BackCalculateCv derives the valve coefficient from the steady-state
// flow and head difference across the valve: Q = Cv·√(H-Hd) (§4.5
// "run(id)...back-calculates valve coefficient Cv from the steady state").
func BackCalculateCv(qSteady, hUp, hDown float64) float64 {
	delta := hUp - hDown
	if delta <= 0 {
		return 0
	}
	return qSteady / math.Sqrt(delta)
}
