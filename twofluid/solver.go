// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twofluid

import (
	"math"

	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/correlations"
	"github.com/cpmech/pipeflow/geometry"
	"github.com/cpmech/pipeflow/internal/pipeerr"
	"github.com/cpmech/pipeflow/thermo"
)

// InletMode selects how the inlet boundary is applied (§4.4 step 6).
type InletMode int

const (
	InletStreamConnected InletMode = iota
	InletFixedPressure
	InletFixedFlow
)

// OutletMode selects how the outlet boundary is applied (§4.4 step 6).
type OutletMode int

const (
	OutletConstantPressure OutletMode = iota
	OutletAbsorbing
)

// Boundary holds the inlet/outlet boundary condition settings (§6.1).
type Boundary struct {
	Inlet  InletMode
	Outlet OutletMode

	FixedInletPressure float64 // [Pa], used when Inlet==InletFixedPressure
	FixedInletFlow      float64 // [kg/s], used when Inlet==InletFixedFlow
	OutletPressure      float64 // [Pa], used when Outlet==OutletConstantPressure
}

// Solver is the composed two-fluid transient solver (§2 component 12,
// §4.4), owning the cell array, integrator, regime detector, and
// accumulation/slug trackers. Grounded on fem.Domain's composition of a
// mesh + elements + solver, adapted to a 1D cell array.
type Solver struct {
	Geom  geometry.PipeGeometry
	Num   config.NumericConfig
	Therm thermo.Client
	BC    Boundary

	cells   []*Cell
	integ   Integrator
	accum   AccumulationTracker
	slugs   SlugTracker
	simTime float64

	inletStream thermo.Fluid // last inlet fluid seen, for STREAM_CONNECTED (§4.4 step 6)
	subStepIdx  int
}

// Reset clears cell state and transient bookkeeping, forcing the next Run
// to reinitialize (§3 Lifecycle, §4.3 SPEC_FULL addition C).
func (s *Solver) Reset() {
	s.cells = nil
	s.accum.Reset()
	s.slugs.Reset()
	s.simTime = 0
	s.subStepIdx = 0
}

// Run initializes N cells over L, seeds primitive state from the inlet
// fluid, and iterates a steady-state drift-flux sweep (§4.4 "run(id)").
func (s *Solver) Run(inlet thermo.Fluid) error {
	if err := s.Geom.Validate(); err != nil {
		return err
	}
	n := s.Num.NInc
	if n < 2 {
		return pipeerr.Err(pipeerr.ErrConfig, "two-fluid solver requires N>=2 cells, got %d", n)
	}
	if inlet == nil {
		return pipeerr.Err(pipeerr.ErrConfig, "inlet fluid is required")
	}

	dx := s.Geom.L / float64(n)
	elevs := s.Geom.Elevations(n)
	thetas := make([]float64, n)
	for i := 0; i < n; i++ {
		z0, z1 := elevs[i], elevs[i+1]
		thetas[i] = math.Asin(clampUnit((z1 - z0) / dx))
	}

	gasIdx, hasGas := inlet.PhaseIndex(thermo.PhaseGas.Tag())
	oilIdx, hasOil := inlet.PhaseIndex(thermo.PhaseOil.Tag())
	waterIdx, hasWater := inlet.PhaseIndex(thermo.PhaseAqueous.Tag())
	threePhase := hasOil && hasWater

	s.cells = make([]*Cell, n)
	area := s.Geom.Area()

	var qG, qO, qW float64
	if hasGas {
		qG = inlet.VolumetricFlow(gasIdx)
	}
	if hasOil {
		qO = inlet.VolumetricFlow(oilIdx)
	}
	if hasWater {
		qW = inlet.VolumetricFlow(waterIdx)
	}
	qL := qO + qW

	for i := 0; i < n; i++ {
		c := &Cell{
			X: (float64(i) + 0.5) * dx, DX: dx, Theta: thetas[i],
			Z: 0.5 * (elevs[i] + elevs[i+1]), Eps: s.Geom.Rough, D: s.Geom.D,
			ThreePhase: threePhase,
			P:          inlet.Pressure(),
			T:          inlet.Temperature(),
		}
		if hasGas {
			c.RhoG = inlet.Density(gasIdx)
			c.MuG = inlet.Viscosity(gasIdx)
			c.CG = inlet.SoundSpeed(gasIdx)
		}
		if hasOil {
			c.RhoL = inlet.Density(oilIdx)
			c.MuL = inlet.Viscosity(oilIdx)
			c.CL = inlet.SoundSpeed(oilIdx)
			c.Sigma = inlet.SurfaceTension(gasIdx, oilIdx)
		} else if hasWater {
			c.RhoL = inlet.Density(waterIdx)
			c.MuL = inlet.Viscosity(waterIdx)
			c.CL = inlet.SoundSpeed(waterIdx)
		}
		if threePhase {
			c.RhoW = inlet.Density(waterIdx)
			c.MuW = inlet.Viscosity(waterIdx)
			c.CW = inlet.SoundSpeed(waterIdx)
		}

		vMix := (qG + qL) / area
		alfG, alfL := seedHoldup(qG, qL, area, c.RhoL, c.RhoG, c.Sigma, c.D, c.Theta, vMix)
		c.AlfG = alfG
		c.AlfL = alfL
		if threePhase && qL > 0 {
			c.AlfW = alfL * (qW / qL)
		}
		if area > 0 {
			if alfG > 0 {
				c.Vg = qG / (alfG * area)
			}
			if alfL > 0 {
				c.VL = qL / (alfL * area)
			}
			if threePhase && c.AlfW > 0 {
				c.Vw = qW / (c.AlfW * area)
			}
		}
		c.clampHoldups()
		c.SyncConservativeFromPrimitive()
		s.cells[i] = c
	}

	s.inletStream = inlet.Clone()
	s.accum.Rebuild(thetas)

	for sweep := 0; sweep < 100; sweep++ {
		maxRel := s.steadySweep(thetas)
		if maxRel < 1e-4 {
			break
		}
	}
	s.refreshRegimes()
	return nil
}

// seedHoldup computes α_g from drift-flux (§4.4 "calculate_local_holdup").
func seedHoldup(qG, qL, area, rhoL, rhoG, sigma, d, theta, vMix float64) (alfG, alfL float64) {
	if area <= 0 || qG+qL <= 0 {
		return 0, 1
	}
	vsg := qG / area
	const c0 = 1.2
	vgj := correlations.DriftVelocity(rhoL, rhoG, sigma, d, theta, vMix, gGrav)
	denom := c0*vMix + vgj
	if denom <= 0 {
		alfG = 0.5
	} else {
		alfG = vsg / denom
	}
	if alfG < 0.001 {
		alfG = 0.001
	}
	if alfG > 0.999 {
		alfG = 0.999
	}
	return alfG, 1 - alfG
}

// steadySweep performs one pass of the steady-state drift-flux
// initialization sweep (§4.4 "run(id)... iterates a steady-state
// drift-flux sweep"), returning the max relative pressure change for the
// convergence check.
func (s *Solver) steadySweep(thetas []float64) float64 {
	maxRel := 0.0
	for i := 1; i < len(s.cells); i++ {
		prev := s.cells[i-1]
		c := s.cells[i]

		rhoM := c.AlfL*c.RhoL + c.AlfG*c.RhoG
		vMix := c.MixtureVelocity()
		fricG, fricL := wallFriction(c)
		deltaPFric := (fricG + fricL) * c.DX
		deltaPGrav := rhoM * gGrav * math.Sin(c.Theta) * c.DX
		pNew := prev.P - deltaPFric - deltaPGrav
		if pNew <= 0 {
			pNew = prev.P * 0.5
		}
		rel := math.Abs(pNew-c.P) / math.Max(1, c.P)
		if rel > maxRel {
			maxRel = rel
		}
		c.P = pNew

		qG := c.AlfG * c.Vg * c.Area()
		qL := c.AlfL * c.VL * c.Area()
		alfG, alfL := seedHoldup(qG, qL, c.Area(), c.RhoL, c.RhoG, c.Sigma, c.D, c.Theta, vMix)
		if i > 0 {
			alfL = applyTerrainHoldupModifier(alfL, thetas[i-1], thetas[i])
			alfG = 1 - alfL
		}
		c.AlfG, c.AlfL = alfG, alfL
		c.clampHoldups()
		area := c.Area()
		if area > 0 {
			if c.AlfG > 0 {
				c.Vg = qG / (c.AlfG * area)
			}
			if c.AlfL > 0 {
				c.VL = qL / (c.AlfL * area)
			}
		}
		c.SyncConservativeFromPrimitive()
	}
	return maxRel
}

func (s *Solver) refreshRegimes() {
	for _, c := range s.cells {
		c.Regime = DetectRegime(c.AlfL, c.Vg, c.VL, c.D, c.Theta)
	}
	s.slugs.Update(s.cells)
}

// RunTransient advances the state by exactly dt, sub-stepping internally
// under CFL (§4.4 "runTransient(dt, id)").
func (s *Solver) RunTransient(dt float64, inlet thermo.Fluid) error {
	if s.cells == nil {
		return pipeerr.Err(pipeerr.ErrConfig, "RunTransient called before Run")
	}
	if dt <= 0 {
		return pipeerr.Err(pipeerr.ErrInput, "dt must be > 0, got %g", dt)
	}
	if inlet != nil {
		s.inletStream = inlet.Clone()
	}

	cfl := s.Num.CFL
	if cfl <= 0 {
		cfl = 0.5
	}
	dtStable := StableDt(s.cells, cfl)
	n, dtSub := SubSteps(dt, dtStable)
	if s.Num.MaxSubSteps > 0 && n > s.Num.MaxSubSteps {
		n = s.Num.MaxSubSteps
		dtSub = dt / float64(n)
	}

	interval := s.Num.ThermodynamicUpdateInterval
	if interval <= 0 {
		interval = 10
	}
	s.integ.RHS.Closure = s.Num.DragClosure

	start := s.simTime
	for k := 0; k < n; k++ {
		s.subStepIdx++
		if s.subStepIdx%interval == 0 && s.Therm != nil {
			s.refreshThermo()
		}

		s.integ.Step(s.cells, dtSub)
		s.applyBoundaries()
		s.validateCells()

		if s.Num.SlugTrackingEnabled {
			s.accum.Integrate(s.cells, dtSub)
		}
		s.refreshRegimes()
		s.simTime += dtSub
	}
	s.simTime = start + dt // exact, free of sub-step rounding
	return nil
}

// refreshThermo re-flashes each cell's phase properties at its current
// (P,T), combining oil+water into an effective liquid via Brinkman
// viscosity for three-phase cells (§4.4 step 2). A ThermoError on any
// cell skips that cell, keeping its previous properties; the failure is
// not logged or counted.
func (s *Solver) refreshThermo() {
	for _, c := range s.cells {
		f, err := s.Therm.NewFluid(c.P, c.T, nil, 0)
		if err != nil {
			continue // ThermoError: keep previous properties (§7)
		}
		if err := f.TPFlash(); err != nil {
			continue
		}
		if gi, ok := f.PhaseIndex(thermo.PhaseGas.Tag()); ok {
			c.RhoG, c.MuG, c.CG = f.Density(gi), f.Viscosity(gi), f.SoundSpeed(gi)
		}
		var muOil, muWater, rhoOil, rhoWater float64
		var haveOil, haveWater bool
		if oi, ok := f.PhaseIndex(thermo.PhaseOil.Tag()); ok {
			rhoOil, muOil = f.Density(oi), f.Viscosity(oi)
			c.CL = f.SoundSpeed(oi)
			haveOil = true
		}
		if wi, ok := f.PhaseIndex(thermo.PhaseAqueous.Tag()); ok {
			rhoWater, muWater = f.Density(wi), f.Viscosity(wi)
			c.RhoW, c.MuW, c.CW = rhoWater, muWater, f.SoundSpeed(wi)
			haveWater = true
		}
		if c.ThreePhase && haveOil && haveWater {
			phiW := 0.0
			if c.AlfL > 0 {
				phiW = c.AlfW / c.AlfL
			}
			c.RhoL = (1-phiW)*rhoOil + phiW*rhoWater
			c.MuL = brinkmanViscosity(phiW, muOil, muWater)
		} else if haveOil {
			c.RhoL, c.MuL = rhoOil, muOil
		} else if haveWater {
			c.RhoL, c.MuL = rhoWater, muWater
		}
	}
}

// brinkmanViscosity computes the Brinkman two-phase liquid viscosity with
// the continuous phase chosen by volume majority (§4.4 step 2).
func brinkmanViscosity(phiDispersedWater, muOil, muWater float64) float64 {
	if phiDispersedWater <= 0.5 {
		return muOil * math.Pow(1-phiDispersedWater, -2.5)
	}
	phiOil := 1 - phiDispersedWater
	return muWater * math.Pow(1-phiOil, -2.5)
}

// applyBoundaries enforces inlet/outlet boundary conditions (§4.4 step 6).
func (s *Solver) applyBoundaries() {
	n := len(s.cells)
	if n == 0 {
		return
	}
	first, last := s.cells[0], s.cells[n-1]

	switch s.BC.Inlet {
	case InletStreamConnected:
		if s.inletStream != nil {
			first.P = s.inletStream.Pressure()
			first.T = s.inletStream.Temperature()
		}
	case InletFixedPressure:
		first.P = s.BC.FixedInletPressure
	case InletFixedFlow:
		area := first.Area()
		if area > 0 && first.AlfG > 0 {
			first.Vg = s.BC.FixedInletFlow / first.RhoG / (first.AlfG * area)
		}
	}

	switch s.BC.Outlet {
	case OutletConstantPressure:
		last.P = s.BC.OutletPressure
	case OutletAbsorbing:
		if n > 1 {
			last.P = 2*s.cells[n-2].P - lastButOneP(s.cells, 2)
		}
	}
	first.SyncConservativeFromPrimitive()
	last.SyncConservativeFromPrimitive()
}

func lastButOneP(cells []*Cell, back int) float64 {
	idx := len(cells) - 1 - back
	if idx < 0 {
		return cells[0].P
	}
	return cells[idx].P
}

// validateCells enforces §4.4 step 7: holdups clamped and renormalized,
// P/T reset to the inlet reference if non-positive or NaN.
func (s *Solver) validateCells() {
	refP, refT := 0.0, 0.0
	if s.inletStream != nil {
		refP, refT = s.inletStream.Pressure(), s.inletStream.Temperature()
	}
	for _, c := range s.cells {
		c.clampHoldups()
		if c.P <= 0 || math.IsNaN(c.P) {
			c.P = refP
		}
		if c.T <= 0 || math.IsNaN(c.T) {
			c.T = refT
		}
	}
}

// Cells exposes the current cell array for profile queries (§6.1). The
// slice and its elements are never returned to callers directly by the
// facade layer — PipeFacade copies them (§3 Ownership).
func (s *Solver) Cells() []*Cell {
	return s.cells
}

// SimulationTime returns the accumulated transient clock (§6.1
// simulation_time()).
func (s *Solver) SimulationTime() float64 {
	return s.simTime
}

// LiquidInventory returns the accumulation tracker's zones (§4.4 step 8,
// §8 property S5).
func (s *Solver) LiquidInventory() []Zone {
	return s.accum.Zones
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
