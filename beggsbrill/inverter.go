// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beggsbrill

import (
	"errors"
	"math"

	"github.com/cpmech/pipeflow/internal/pipeerr"
	"github.com/cpmech/pipeflow/thermo"
)

// sentinelTooHigh is returned internally by a sweep whose pressure drops
// below zero, steering the bisection downward — replacing the source's
// "catch a RuntimeException from the sweep" control flow with a typed
// sentinel value the bisection matches on (§9 design notes: "Strategy:
// return a result type with a FlowTooHigh variant").
const sentinelTooHigh = -1e6 // [Pa]

// Inverter wraps a Driver in an outer bisection on mass flow rate to match
// a target outlet pressure (§4.2 "Flow-rate inverter").
type Inverter struct {
	Driver *Driver
}

// sweepOutlet runs the stepper at the given mass flow and returns the
// outlet pressure, or sentinelTooHigh if the sweep failed with
// OutletPressureNegative (treated as "flow too high", §4.2/§7).
func (inv *Inverter) sweepOutlet(f thermo.Fluid, massFlowKgS float64) (float64, error) {
	trial := f.Clone()
	if err := trial.SetTotalFlowRate(massFlowKgS, "kg/s"); err != nil {
		return 0, err
	}
	inv.Driver.Reset()
	prof, _, err := inv.Driver.Run(trial)
	if err != nil {
		if errors.Is(err, pipeerr.ErrOutletPressureNegative) {
			return sentinelTooHigh, nil
		}
		return 0, err
	}
	return prof.Nodes[len(prof.Nodes)-1].P, nil
}

// Invert finds ṁ such that the resulting outlet pressure matches
// targetPOut within d.Num.InverterTol, via bisection bracketing
// [1 kg/h, 2·ṁNominal] with the high bound doubled up to 20 times
// (§4.2). Returns ErrInfeasible if no feasible bracket is found or even
// minimal flow undershoots the target.
func (inv *Inverter) Invert(f thermo.Fluid, targetPOut, mDotNominal float64) (massFlowKgS float64, iterations int, err error) {
	tol := inv.Driver.Num.InverterTol
	if tol <= 0 {
		tol = 1e-4
	}
	maxIter := inv.Driver.Num.InverterMaxIter
	if maxIter <= 0 {
		maxIter = 50
	}

	lo := 1.0 / 3600.0 // 1 kg/h in kg/s
	hi := 2 * mDotNominal
	if hi <= lo {
		hi = lo * 2
	}

	pLo, err := inv.sweepOutlet(f, lo)
	if err != nil {
		return 0, 0, err
	}
	if pLo < targetPOut {
		return 0, 0, pipeerr.Err(pipeerr.ErrInfeasible, "minimal flow %g kg/s already undershoots target %g Pa (got %g Pa)", lo, targetPOut, pLo)
	}

	pHi, err := inv.sweepOutlet(f, hi)
	if err != nil {
		return 0, 0, err
	}
	doublings := 0
	for pHi >= targetPOut && doublings < 20 {
		hi *= 2
		pHi, err = inv.sweepOutlet(f, hi)
		if err != nil {
			return 0, 0, err
		}
		doublings++
	}
	if pHi >= targetPOut {
		return 0, 0, pipeerr.Err(pipeerr.ErrInfeasible, "could not bracket target %g Pa within 20 doublings (hi=%g kg/s, P=%g Pa)", targetPOut, hi, pHi)
	}

	for it := 0; it < maxIter; it++ {
		iterations = it + 1
		mid := 0.5 * (lo + hi)
		pMid, err := inv.sweepOutlet(f, mid)
		if err != nil {
			return 0, 0, err
		}

		if math.Abs(pMid-targetPOut)/targetPOut < tol {
			return mid, iterations, nil
		}
		if math.Abs(hi-lo)/mid < tol {
			return mid, iterations, nil
		}

		// higher flow => more friction => lower P_out (monotone pipe, §8
		// property 7); pMid < target means flow too high.
		if pMid < targetPOut {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0, iterations, pipeerr.Err(pipeerr.ErrInfeasible, "bisection did not converge within %d iterations", maxIter)
}
