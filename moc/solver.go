// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moc

import (
	"math"

	"github.com/cpmech/pipeflow/correlations"
	"github.com/cpmech/pipeflow/geometry"
	"github.com/cpmech/pipeflow/internal/pipeerr"
	"github.com/cpmech/pipeflow/internal/pipelog"
)

// Solver composes a Grid with upstream/downstream boundary dispatch (§2
// component 13, §4.5).
type Solver struct {
	Geom geometry.PipeGeometry
	N    int

	RhoFluid      float64 // [kg/m³]
	MuFluid       float64 // [Pa·s]
	SoundSpeed    float64 // fluid sound speed c_fluid [m/s]
	BulkModulus   float64 // K_fluid [Pa]
	PipeE         float64 // pipe elastic modulus [Pa]
	SteadyFlowQ   float64 // [m³/s]

	Upstream   UpstreamBoundary
	Downstream DownstreamBoundary

	Log *pipelog.Logger

	grid *Grid
}

// Run initializes the grid: wave speed (Korteweg), uniform spacing,
// steady-state friction factor, steady H/Q profile, and back-calculates
// the valve coefficient (§4.5 "run(id)").
func (s *Solver) Run() error {
	if err := s.Geom.Validate(); err != nil {
		return err
	}
	if s.N < 2 {
		return pipeerr.Err(pipeerr.ErrConfig, "N must be >= 2, got %d", s.N)
	}

	c := KortewegWaveSpeed(s.SoundSpeed, s.BulkModulus, s.Geom.D, s.PipeE, s.Geom.WallT)
	re := 0.0
	if s.MuFluid > 0 {
		v := s.SteadyFlowQ / s.Geom.Area()
		re = s.RhoFluid * math.Abs(v) * s.Geom.D / s.MuFluid
	}
	f := SteadyFrictionFactor(re, s.Geom.Rough/s.Geom.D)

	s.grid = NewGrid(s.Geom, s.N, c, f)

	v := s.SteadyFlowQ / s.grid.A
	hLossPerLength := f * v * v / (2 * gGrav * s.Geom.D)
	elevs := s.Geom.Elevations(s.N - 1)
	h0 := 0.0
	for i := 0; i < s.N; i++ {
		s.grid.H[i] = h0 - hLossPerLength*float64(i)*s.grid.Dx - elevs[i]
		s.grid.Q[i] = s.SteadyFlowQ
	}
	copy(s.grid.Hnew, s.grid.H)
	copy(s.grid.Qnew, s.grid.Q)
	s.grid.InitEnvelopes()

	if s.Downstream.Kind == BoundaryValve {
		hUp := s.grid.H[s.N-1]
		s.Downstream.Cv = BackCalculateCv(s.SteadyFlowQ, hUp, s.Downstream.DownstreamHead)
	}
	return nil
}

// RunTransient advances one time step Δt ≤ Δx/c (§4.5 "runTransient").
// If dt exceeds Δx/c, the call proceeds and logs a warning rather than
// failing (§4.5, §9 Open Questions: hardening this is a policy decision
// left unresolved by the source).
func (s *Solver) RunTransient(dt float64) error {
	if s.grid == nil {
		return pipeerr.Err(pipeerr.ErrConfig, "RunTransient called before Run")
	}
	dtStable := s.grid.Dt()
	if dt > dtStable {
		s.Log.Printf("runTransient: dt=%g exceeds stability limit Δx/c=%g; stability not guaranteed", dt, dtStable)
	}

	t := s.grid.SimulationTime() + dt
	n := s.grid.N
	for i := 1; i < n-1; i++ {
		cPlus, cMinus := s.grid.Characteristics(i)
		s.grid.Hnew[i] = (cPlus + cMinus) / 2
		s.grid.Qnew[i] = (cPlus - cMinus) / (2 * s.grid.B)
	}
	s.Upstream.Apply(s.grid, t)
	s.Downstream.Apply(s.grid, t)

	s.grid.UpdateEnvelopes(s.RhoFluid)
	s.grid.Advance(dt)
	return nil
}

// Reset clears envelopes/history; grid geometry (c, Δx, A, B) stays fixed
// after Run (§4.5 invariants).
func (s *Solver) Reset() {
	if s.grid != nil {
		s.grid.Reset()
	}
}

// HeadProfile returns a copy of the current H array [m] (§4.5 outputs).
func (s *Solver) HeadProfile() []float64 {
	return append([]float64(nil), s.grid.H...)
}

// FlowProfile returns a copy of the current Q array [m³/s].
func (s *Solver) FlowProfile() []float64 {
	return append([]float64(nil), s.grid.Q...)
}

// PressureProfile returns P = ρg·H at each node [Pa]. H already nets out
// elevation (Run seeds it as h0 - hLossPerLength*i*dx - elevs[i]), so no
// further elevation term is added here, matching PressureEnvelopes.
func (s *Solver) PressureProfile() []float64 {
	out := make([]float64, s.grid.N)
	for i := range out {
		out[i] = s.RhoFluid * gGrav * s.grid.H[i]
	}
	return out
}

// VelocityProfile returns v = Q/A at each node [m/s].
func (s *Solver) VelocityProfile() []float64 {
	out := make([]float64, s.grid.N)
	for i := range out {
		out[i] = s.grid.Q[i] / s.grid.A
	}
	return out
}

// PressureEnvelopes returns (Pmax, Pmin) running envelopes [Pa] (§4.5).
func (s *Solver) PressureEnvelopes() (pmax, pmin []float64) {
	pmax = make([]float64, s.grid.N)
	pmin = make([]float64, s.grid.N)
	for i := range pmax {
		pmax[i] = s.RhoFluid * gGrav * s.grid.Hmax[i]
		pmin[i] = s.RhoFluid * gGrav * s.grid.Hmin[i]
	}
	return
}

// OutletHistory returns the recorded (t,P) outlet history (§3 MoCGrid).
func (s *Solver) OutletHistory() (t, p []float64) {
	return s.grid.OutletHistoryT, s.grid.OutletHistoryP
}

// JoukowskySurge is the Joukowsky surge helper query, available without
// running the grid (§4.5 invariants).
func (s *Solver) JoukowskySurge(deltaV float64) float64 {
	return correlations.Joukowsky(s.RhoFluid, s.SoundSpeed, deltaV)
}

// SimulationTime returns the accumulated transient clock.
func (s *Solver) SimulationTime() float64 {
	if s.grid == nil {
		return 0
	}
	return s.grid.SimulationTime()
}
