// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package moc implements the method-of-characteristics water-hammer
// solver of §2 component 13 / §4.5: C+/C- compatibility equations on a
// uniform 1D grid with pluggable boundary conditions. The uniform node
// spacing is a plain division (dx = L/(n-1)), not gosl/utl.LinSpace —
// there is no array of intermediate values to build, only a scalar
// step. Grounded on gosl/fun.Func for time-varying boundary inputs
// (valve opening τ(t), reservoir head H(t)), the same pattern
// inp.TimeControl uses for DtFunc.
package moc

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/pipeflow/correlations"
	"github.com/cpmech/pipeflow/geometry"
)

// Grid holds the MoC computational grid: N nodes, uniform spacing,
// two time levels of H and Q, and running pressure envelopes (§3
// MoCGrid).
type Grid struct {
	N  int
	Dx float64 // [m]
	A  float64 // cross-section area [m²]
	C  float64 // wave speed [m/s], fixed after initialization (Korteweg)
	B  float64 // c/(gA)
	R  float64 // f·Δx/(2gDA²), per node (friction varies with D only, constant here)

	H, Hnew []float64 // piezometric head [m]
	Q, Qnew []float64 // volumetric flow [m³/s]

	Hmax, Hmin []float64 // running envelopes

	OutletHistoryT []float64
	OutletHistoryP []float64

	simTime float64
}

const gGrav = 9.80665

// KortewegWaveSpeed computes the effective acoustic velocity reduced by
// pipe-wall elasticity (GLOSSARY "Wave speed (Korteweg)"):
//
//	c² = c_fluid² / (1 + K_fluid·D/(E_pipe·t_w))
func KortewegWaveSpeed(cFluid, kFluid, d, ePipe, tWall float64) float64 {
	if ePipe <= 0 || tWall <= 0 {
		return cFluid
	}
	denom := 1 + kFluid*d/(ePipe*tWall)
	return cFluid / math.Sqrt(denom)
}

// NewGrid allocates a Grid of n nodes over geometry g with the given wave
// speed and friction factor, per the steady-state construction of §4.5
// "run(id)".
func NewGrid(g geometry.PipeGeometry, n int, waveSpeed, frictionF float64) *Grid {
	dx := g.L / float64(n-1)
	a := g.Area()
	b := waveSpeed / (gGrav * a)
	r := frictionF * dx / (2 * gGrav * g.D * a * a)
	grid := &Grid{
		N: n, Dx: dx, A: a, C: waveSpeed, B: b, R: r,
		H: make([]float64, n), Hnew: make([]float64, n),
		Q: make([]float64, n), Qnew: make([]float64, n),
		Hmax: make([]float64, n), Hmin: make([]float64, n),
	}
	return grid
}

// Dt returns the CFL-limited time step Δt = Δx/c (§4.5 "Courant=1 is the
// design target").
func (g *Grid) Dt() float64 {
	if g.C <= 0 {
		return 0
	}
	return g.Dx / g.C
}

// InitEnvelopes seeds Hmax/Hmin from the current steady H, called once
// after the steady-state initialization fills H (§4.5 "run(id)").
func (g *Grid) InitEnvelopes() {
	copy(g.Hmax, g.H)
	copy(g.Hmin, g.H)
}

// UpdateEnvelopes folds Hnew into the running max/min and records the
// outlet (t,P) history point (§4.5 outputs).
func (g *Grid) UpdateEnvelopes(rho float64) {
	for i := 0; i < g.N; i++ {
		if g.Hnew[i] > g.Hmax[i] {
			g.Hmax[i] = g.Hnew[i]
		}
		if g.Hnew[i] < g.Hmin[i] {
			g.Hmin[i] = g.Hnew[i]
		}
	}
	g.OutletHistoryT = append(g.OutletHistoryT, g.simTime)
	g.OutletHistoryP = append(g.OutletHistoryP, rho*gGrav*g.Hnew[g.N-1])
}

// Advance swaps the new time level into the current one and advances the
// clock by Δt.
func (g *Grid) Advance(dt float64) {
	g.H, g.Hnew = g.Hnew, g.H
	g.Q, g.Qnew = g.Qnew, g.Q
	g.simTime += dt
}

// Reset clears envelopes, history, and the simulation clock (§3 Lifecycle
// "reset on explicit reset").
func (g *Grid) Reset() {
	g.InitEnvelopes()
	g.OutletHistoryT = nil
	g.OutletHistoryP = nil
	g.simTime = 0
}

// SimulationTime returns the accumulated clock (§6.1 simulation_time()).
func (g *Grid) SimulationTime() float64 {
	return g.simTime
}

// Characteristics computes C+ (from node i-1 old values) and C- (from
// node i+1 old values) for interior node i (§4.5).
func (g *Grid) Characteristics(i int) (cPlus, cMinus float64) {
	qm := g.Q[i-1]
	cPlus = g.H[i-1] + g.B*qm - g.R*qm*abs(qm)
	qp := g.Q[i+1]
	cMinus = g.H[i+1] - g.B*qp + g.R*qp*abs(qp)
	return
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// SteadyFrictionFactor computes f from the steady Reynolds number, used
// once at Run (§4.5 "computes Darcy friction factor from steady-state
// Re").
func SteadyFrictionFactor(re, epsOverD float64) float64 {
	return correlations.DarcyFriction(re, epsOverD)
}

// ValveFunc and HeadFunc are gosl/fun.Func-shaped time-dependent boundary
// inputs: valve relative opening τ(t) and reservoir head H(t).
type ValveFunc = fun.Func
type HeadFunc = fun.Func
