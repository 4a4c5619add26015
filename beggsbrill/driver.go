// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beggsbrill

import (
	"math"

	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/correlations"
	"github.com/cpmech/pipeflow/geometry"
	"github.com/cpmech/pipeflow/internal/pipeerr"
	"github.com/cpmech/pipeflow/thermal"
	"github.com/cpmech/pipeflow/thermo"
)

const g = 9.80665 // [m/s²]

// Driver is the segmented 1D Beggs-Brill stepper (§2 component 5, §4.2),
// grounded on msolid.Driver.Run: a pre-allocated result array advanced one
// increment at a time, with explicit error return in place of the
// teacher's panic/chk.Err pairing.
type Driver struct {
	Geom  geometry.PipeGeometry
	Heat  config.HeatConfig
	Num   config.NumericConfig
	Therm thermo.Client

	profile *Profile // reused across Run calls; resized only when n changes
}

// Reset discards the cached profile, forcing the next Run to reallocate.
// Mirrors the teacher idiom of a pre-allocated array that is overwritten,
// not regrown, across repeated Runs (§9 design notes).
func (d *Driver) Reset() {
	d.profile = nil
}

// Run executes the stepper for inlet fluid f over d.Num.NInc segments and
// returns the resulting profile (§4.2). The outlet fluid is flashed to
// equilibrium: PH-flash for non-isothermal modes, TP-flash at T_inlet for
// ISOTHERMAL.
func (d *Driver) Run(f thermo.Fluid) (*Profile, thermo.Fluid, error) {
	if err := d.Geom.Validate(); err != nil {
		return nil, nil, err
	}
	n := d.Num.NInc
	if n < 1 {
		return nil, nil, pipeerr.Err(pipeerr.ErrConfig, "NInc must be >= 1, got %d", n)
	}

	if d.profile == nil || len(d.profile.Nodes) != n+1 {
		d.profile = NewProfile(n)
	}
	prof := d.profile

	lSeg := d.Geom.SegmentLength(n)
	elevs := d.Geom.Elevations(n)

	cur := f.Clone()
	prof.Nodes[0] = Node{P: cur.Pressure(), T: cur.Temperature()}
	prof.Segments[0] = SegmentResult{}

	cumLen := 0.0
	cumElev := 0.0
	tIn := cur.Temperature()

	for i := 1; i <= n; i++ {
		deltaZSeg := elevs[i] - elevs[i-1]
		theta := 0.0
		if lSeg != 0 {
			theta = math.Asin(clampUnit(deltaZSeg / lSeg))
		}

		seg, newFluid, err := d.stepSegment(cur, lSeg, deltaZSeg, theta, tIn)
		if err != nil {
			return nil, nil, err
		}

		cumLen += lSeg
		cumElev += deltaZSeg
		seg.CumLength = cumLen
		seg.CumElevation = cumElev

		prof.Segments[i] = seg
		cur = newFluid
		prof.Nodes[i] = Node{P: cur.Pressure(), T: cur.Temperature()}
	}

	prof.PressureDrop = prof.Nodes[0].P - prof.Nodes[n].P
	return prof, cur, nil
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

// stepSegment advances the fluid and returns the segment's derived
// quantities, following the nine-step algorithm of §4.2.
func (d *Driver) stepSegment(f thermo.Fluid, lSeg, deltaZSeg, theta, tIn float64) (SegmentResult, thermo.Fluid, error) {
	area := d.Geom.Area()

	gasIdx, hasGas := f.PhaseIndex(thermo.PhaseGas.Tag())
	liqIdx, hasLiq := f.PhaseIndex(thermo.PhaseOil.Tag())
	if !hasLiq {
		liqIdx, hasLiq = f.PhaseIndex(thermo.PhaseAqueous.Tag())
	}

	var qG, qL float64
	if hasGas {
		qG = f.VolumetricFlow(gasIdx)
	}
	if hasLiq {
		qL = f.VolumetricFlow(liqIdx)
	}

	vsG := qG / area
	vsL := qL / area
	vMix := vsG + vsL

	var regime correlations.Regime
	var holdupEL, rhoL, rhoG, muL, muG float64
	var fr, lambdaL float64

	if hasGas && hasLiq && vMix > 0 {
		lambdaL = vsL / vMix
		fr = vMix * vMix / (g * d.Geom.D)
		regime = correlations.ClassifyRegime(lambdaL, fr)
		if regime == correlations.RegimeUnknown {
			return SegmentResult{}, nil, pipeerr.Err(pipeerr.ErrRegimeNotFound,
				"no Beggs-Brill regime matched for lambdaL=%g fr=%g", lambdaL, fr)
		}
		e0 := correlations.BBHoldup(lambdaL, fr, regime)
		nvl := vsL * math.Pow(f.Density(liqIdx)/(g*f.SurfaceTension(gasIdx, liqIdx)), 0.25)
		bTheta := correlations.BBInclination(lambdaL, fr, nvl, theta, regime)
		// §9 Open Question: Payne holdup clip (E_L >= λ_L) is not applied,
		// matching the legacy source; flagged, not guessed, per §9.
		holdupEL = bTheta * e0
		rhoL = f.Density(liqIdx)
		rhoG = f.Density(gasIdx)
		muL = f.Viscosity(liqIdx)
		muG = f.Viscosity(gasIdx)
	} else if hasLiq {
		// single-phase liquid: E_L = λ_L = 1, read from the liquid phase
		// index that actually exists (§9 "corrected behavior: read from
		// phase 0 [i.e. the phase that exists] is authoritative here").
		regime = correlations.RegimeSinglePhase
		lambdaL = 1
		holdupEL = 1
		rhoL = f.Density(liqIdx)
		muL = f.Viscosity(liqIdx)
	} else if hasGas {
		regime = correlations.RegimeSinglePhase
		lambdaL = 0
		holdupEL = 0
		rhoG = f.Density(gasIdx)
		muG = f.Viscosity(gasIdx)
	} else {
		return SegmentResult{}, nil, pipeerr.Err(pipeerr.ErrConfig, "fluid has neither gas nor liquid phase")
	}

	// step 5: mixture density, hydrostatic drop
	rhoM := rhoL*holdupEL + rhoG*(1-holdupEL)
	deltaPHydro := rhoM * g * deltaZSeg

	// step 6: friction
	var rhoNS, muNS float64
	if regime == correlations.RegimeSinglePhase {
		rhoNS = rhoL + rhoG
		muNS = muL + muG
	} else {
		rhoNS = rhoL*lambdaL + rhoG*(1-lambdaL)
		muNS = muL*lambdaL + muG*(1-lambdaL)
	}
	reNS := 0.0
	if muNS > 0 {
		reNS = rhoNS * vMix * d.Geom.D / muNS
	}
	epsOverD := d.Geom.Rough / d.Geom.D
	fBase := correlations.DarcyFriction(reNS, epsOverD)

	var fTP float64
	if regime == correlations.RegimeSinglePhase || holdupEL <= 0 {
		fTP = fBase
	} else {
		y := lambdaL / (holdupEL * holdupEL)
		var s float64
		if y > 1 && y < 1.2 {
			s = math.Log(2.2*y - 1.2)
		} else {
			lny := math.Log(y)
			s = lny / (-0.0523 + 3.182*lny - 0.8725*lny*lny + 0.01853*lny*lny*lny*lny)
		}
		fTP = fBase * math.Exp(s)
	}
	deltaPFric := fTP * vMix * vMix * rhoNS * lSeg / (2 * d.Geom.D)

	deltaP := deltaPHydro + deltaPFric
	pOld := f.Pressure()
	pNew := pOld - deltaP
	if pNew <= 0 {
		return SegmentResult{}, nil, pipeerr.Err(pipeerr.ErrOutletPressureNegative,
			"segment pressure dropped to %g Pa", pNew)
	}

	newFluid := f.Clone()
	if err := newFluid.SetPressure(pNew, thermo.UnitPa); err != nil {
		return SegmentResult{}, nil, err
	}

	massFlow := f.TotalMassFlow()
	switch d.Heat.Mode {
	case config.Isothermal:
		if err := newFluid.SetTemperature(tIn, thermo.UnitK); err != nil {
			return SegmentResult{}, nil, err
		}
		if err := newFluid.TPFlash(); err != nil {
			return SegmentResult{}, nil, pipeerr.Err(pipeerr.ErrThermo, "%v", err)
		}
	default:
		u := d.heatU(f, reNS)
		hb, err := applyHeatBalance(f, d.Heat, u, d.Geom.D, lSeg, deltaP, deltaPFric, massFlow)
		if err != nil {
			return SegmentResult{}, nil, err
		}
		hOld := f.TotalEnthalpy()
		hNew := hOld + hb.DeltaH
		if err := newFluid.PHFlash(hNew); err != nil {
			return SegmentResult{}, nil, pipeerr.Err(pipeerr.ErrThermo, "%v", err)
		}
	}

	seg := SegmentResult{
		DeltaP:   deltaP,
		Regime:   regime,
		VsL:      vsL,
		VsG:      vsG,
		VMix:     vMix,
		MuNS:     muNS,
		RhoNS:    rhoNS,
		RhoL:     rhoL,
		HoldupEL: holdupEL,
		Re:       reNS,
	}
	return seg, newFluid, nil
}

// heatU dispatches to the active HeatTransferMode to produce U (§6.3).
func (d *Driver) heatU(f thermo.Fluid, re float64) float64 {
	switch d.Heat.Mode {
	case config.Adiabatic, config.Isothermal:
		return 0
	case config.SpecifiedU:
		return d.Heat.U
	case config.EstimatedInnerH, config.DetailedU:
		liqIdx, hasLiq := f.PhaseIndex(thermo.PhaseOil.Tag())
		if !hasLiq {
			liqIdx, hasLiq = f.PhaseIndex(thermo.PhaseAqueous.Tag())
		}
		var pr, k float64
		if hasLiq {
			mu := f.Viscosity(liqIdx)
			cp := f.SpecificHeat(liqIdx)
			k = f.Conductivity(liqIdx)
			if k > 0 {
				pr = mu * cp / k
			}
		}
		buildup := thermal.Buildup{
			Ri:      d.Geom.D / 2,
			WallT:   d.Geom.WallT,
			KWall:   d.Geom.WallK,
			HIn:     0,
			HOut:    0,
			Buried:  d.Geom.Buried,
			BurialH: d.Geom.BurialH,
			KSoil:   d.Geom.SoilK,
		}
		if d.Heat.Mode == config.DetailedU {
			buildup.CoatT = d.Geom.Coating.Thickness
			buildup.KCoat = d.Geom.Coating.K
			buildup.InsT = d.Geom.Insulation.Thickness
			buildup.KIns = d.Geom.Insulation.K
		}
		nu := correlations.NuPipe(re, pr, correlations.DarcyFriction(re, d.Geom.Rough/d.Geom.D))
		if k > 0 && d.Geom.D > 0 {
			buildup.HIn = nu * k / d.Geom.D
		}
		if d.Heat.Mode == config.EstimatedInnerH {
			return buildup.HIn
		}
		return buildup.OverallU()
	}
	return 0
}
