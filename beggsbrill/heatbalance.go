// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beggsbrill

import (
	"math"

	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/thermo"
)

// massWeighted sums a per-phase getter weighted by phase mass flow,
// returning the mass-weighted total and the total mass flow (§4.2 step 8
// "in the mass-weighted-phase sense").
func massWeighted(f thermo.Fluid, get func(phase int) float64) (weighted, totalMass float64) {
	n := f.PhaseCount()
	for p := 0; p < n; p++ {
		m := f.MassFlow(p)
		totalMass += m
		weighted += m * get(p)
	}
	return
}

// massWeightedCp returns the mass-flow-weighted specific heat of the fluid.
func massWeightedCp(f thermo.Fluid) float64 {
	wCp, mTot := massWeighted(f, f.SpecificHeat)
	if mTot <= 0 {
		return 0
	}
	return wCp / mTot
}

// massWeightedJT returns the mass-flow-weighted Joule-Thomson coefficient.
func massWeightedJT(f thermo.Fluid) float64 {
	wJT, mTot := massWeighted(f, f.JouleThomson)
	if mTot <= 0 {
		return 0
	}
	return wJT / mTot
}

// heatBalanceResult captures the enthalpy contributions of §4.2 step 8.
type heatBalanceResult struct {
	DeltaH    float64 // total enthalpy change over the segment [J/s] (rate, matches ṁ·Cp·ΔT convention)
	DeltaTwal float64
	NTU       float64
}

// applyHeatBalance computes the enthalpy update for one segment given the
// already-updated pressure drop Δp (hydrostatic+friction) and returns the
// wall, Joule-Thomson and friction-heating contributions (§4.2 step 8). It
// does not flash the fluid; the caller flashes using DeltaH. For
// isothermal mode it returns a zero result.
func applyHeatBalance(f thermo.Fluid, heat config.HeatConfig, u, d, lSeg, deltaP, frictionDeltaP, massFlow float64) (result heatBalanceResult, err error) {
	tIn := f.Temperature()

	if heat.Mode == config.Isothermal {
		return heatBalanceResult{}, nil
	}

	cp := massWeightedCp(f)

	if heat.Mode != config.Adiabatic && u > 0 && cp > 0 && massFlow > 0 {
		ntu := u * math.Pi * d * lSeg / (massFlow * cp)
		result.NTU = ntu
		result.DeltaTwal = (heat.ConstantWallT - tIn) * (1 - math.Exp(-ntu))
		result.DeltaH += massFlow * cp * result.DeltaTwal
	}

	if heat.IncludeJT {
		jt := massWeightedJT(f)
		result.DeltaH += massFlow * cp * (-jt * deltaP)
	}

	if heat.FrictionHeating {
		_, mTot := massWeighted(f, f.SpecificHeat)
		rho := 0.0
		if mTot > 0 {
			// mass-weighted density proxy for the dissipation term
			wRho, m := massWeighted(f, f.Density)
			if m > 0 {
				rho = wRho / m
			}
		}
		if rho > 0 {
			result.DeltaH += math.Abs(frictionDeltaP) * massFlow / rho
		}
	}
	return result, nil
}
