// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package onephase

import (
	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/internal/pipeerr"
	"github.com/cpmech/pipeflow/thermo"
)

// Driver is the lean compositional-pipe wrapper of §4.3. No numerical
// kernel lives here beyond sequencing calls to System.
type Driver struct {
	System FlowSystem

	Scheme                config.AdvectionScheme
	CompositionalTracking bool
	InternalTimeStep      float64 // [s], sub-step size consumed per runTransient call

	InletFluid  thermo.Fluid
	outletFluid thermo.Fluid
}

// Configure applies the scheme/tracking options (§4.3
// "setAdvectionScheme", "setCompositionalTracking").
func (d *Driver) Configure() {
	d.System.SetAdvectionScheme(d.Scheme)
	d.System.SetCompositionalTracking(d.CompositionalTracking)
}

// Reset clears the published outlet state (§3 Lifecycle).
func (d *Driver) Reset() {
	d.outletFluid = nil
}

// RunTransient advances by InternalTimeStep sub-steps until dt is
// consumed (§4.3: "advances by internalTimeStep sub-steps until Δt is
// consumed, then publishes outlet fluid = last node cloned and flashed").
func (d *Driver) RunTransient(dt float64) error {
	if d.InletFluid == nil {
		return pipeerr.Err(pipeerr.ErrInput, "onephase: inlet fluid not set")
	}
	if d.InternalTimeStep <= 0 {
		return pipeerr.Err(pipeerr.ErrConfig, "onephase: internalTimeStep must be > 0")
	}

	if err := d.System.SetInletNode(d.InletFluid); err != nil {
		return pipeerr.Err(pipeerr.ErrThermo, "onephase: set inlet node: %v", err)
	}
	d.System.SelectSolverKind(d.CompositionalTracking)

	remaining := dt
	const tol = 1e-9
	for remaining > tol {
		sub := d.InternalTimeStep
		if sub > remaining {
			sub = remaining
		}
		if err := d.System.Advance(sub); err != nil {
			return pipeerr.Err(pipeerr.ErrInfeasible, "onephase: advance sub-step: %v", err)
		}
		remaining -= sub
	}

	last := d.System.OutletFluid()
	if last == nil {
		return pipeerr.Err(pipeerr.ErrThermo, "onephase: flow system returned no outlet node")
	}
	clone := last.Clone()
	if err := clone.PHFlash(clone.TotalEnthalpy()); err != nil {
		return pipeerr.Err(pipeerr.ErrThermo, "onephase: outlet flash: %v", err)
	}
	d.outletFluid = clone
	return nil
}

// OutletFluid returns the published outlet clone, or nil before the
// first successful RunTransient (§3 Ownership: deep copies only).
func (d *Driver) OutletFluid() thermo.Fluid {
	return d.outletFluid
}
