// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package twofluid implements the coupled two-fluid transient integrator
// of §2 component 8-12 / §4.4: per-cell conservative/primitive state,
// the gas/liquid(/water) conservation RHS, an RK4 sub-stepper with
// CFL-derived time step, flow-regime detection, and accumulation
// tracking. Cell state is grounded on mdl/por.State's GetCopy/Set
// convention: a plain struct with an explicit copy-out and set-in-place
// pair, used here for the same reason — per-sub-step snapshotting
// without allocation churn.
package twofluid

// Cell holds the primitive and conservative state of one control volume
// (§3 TwoFluidCell). Water fields are only meaningful when ThreePhase is
// true.
type Cell struct {
	// geometry (fixed after initialization)
	X      float64 // position of cell center [m]
	DX     float64 // cell length [m]
	Theta  float64 // inclination [rad]
	Z      float64 // elevation [m]
	Eps    float64 // roughness [m]
	D      float64 // pipe diameter [m]

	ThreePhase bool

	// primitive state
	P    float64 // [Pa]
	T    float64 // [K]
	AlfG float64 // gas holdup α_g ∈ [0,1]
	AlfL float64 // liquid holdup α_L = 1-α_g (or α_o+α_w for three-phase)
	AlfW float64 // water holdup (three-phase only)
	Vg   float64 // gas velocity [m/s]
	VL   float64 // liquid velocity [m/s]
	Vw   float64 // water velocity [m/s] (three-phase only)

	// phase properties (refreshed periodically by TP-flash, §4.4 step 2)
	RhoG, RhoL, RhoW     float64
	MuG, MuL, MuW        float64
	CG, CL, CW           float64
	HG, HL, HW           float64
	Sigma                float64 // gas-liquid surface tension [N/m]
	WaterCut             float64 // W = α_w / α_L

	// conservative state U = (αgρg, αLρL, αgρg·vg, αLρL·vL) · A, extended
	// with water mass/momentum when ThreePhase (§3).
	Ug  [4]float64 // [mass_g, mass_L, mom_g, mom_L]
	Uw  [2]float64 // [mass_w, mom_w] (three-phase only)

	Regime RegimeTag
}

// GetCopy returns a deep copy of the cell (mdl/por.State.GetCopy idiom).
func (c *Cell) GetCopy() *Cell {
	cp := *c
	return &cp
}

// Set copies another cell's state into this one in place (mdl/por.State.Set
// idiom), avoiding per-sub-step allocation.
func (c *Cell) Set(o *Cell) {
	*c = *o
}

// Area returns the pipe cross-sectional area at this cell.
func (c *Cell) Area() float64 {
	return areaOf(c.D)
}

func areaOf(d float64) float64 {
	const piOver4 = 0.7853981633974483
	return piOver4 * d * d
}

// SyncConservativeFromPrimitive recomputes Ug/Uw from the current
// primitive fields (§3 invariant: "conservative and primitive are kept in
// sync at the end of each sub-step").
func (c *Cell) SyncConservativeFromPrimitive() {
	a := c.Area()
	alfL := c.AlfL
	rhoL := c.RhoL
	vL := c.VL
	if c.ThreePhase {
		// effective liquid = oil + water combined per §4.4 step 2
		phiW := 0.0
		if alfL > 0 {
			phiW = c.AlfW / alfL
		}
		rhoL = (1-phiW)*c.RhoL + phiW*c.RhoW
	}
	c.Ug[0] = c.AlfG * c.RhoG * a
	c.Ug[1] = alfL * rhoL * a
	c.Ug[2] = c.AlfG * c.RhoG * c.Vg * a
	c.Ug[3] = alfL * rhoL * vL * a
	if c.ThreePhase {
		c.Uw[0] = c.AlfW * c.RhoW * a
		c.Uw[1] = c.AlfW * c.RhoW * c.Vw * a
	}
}

// SyncPrimitiveFromConservative inverts SyncConservativeFromPrimitive,
// clamping holdups to [0,1] and renormalizing (§3, §4.4 step 7).
func (c *Cell) SyncPrimitiveFromConservative() {
	a := c.Area()
	if a <= 0 {
		return
	}
	massG := c.Ug[0] / a
	massL := c.Ug[1] / a
	if c.RhoG > 0 {
		c.AlfG = massG / c.RhoG
	}
	rhoLmix := c.RhoL
	if c.ThreePhase && c.AlfL > 0 {
		phiW := c.AlfW / c.AlfL
		rhoLmix = (1-phiW)*c.RhoL + phiW*c.RhoW
	}
	if rhoLmix > 0 {
		c.AlfL = massL / rhoLmix
	}
	c.clampHoldups()

	if c.AlfG > 0 && c.RhoG > 0 {
		c.Vg = c.Ug[2] / (c.AlfG * c.RhoG * a)
	}
	if massL > 0 {
		c.VL = c.Ug[3] / (c.AlfL * rhoLmix * a)
	}
	if c.ThreePhase && c.AlfW > 0 && c.RhoW > 0 {
		c.Vw = c.Uw[1] / (c.AlfW * c.RhoW * a)
	}
}

// clampHoldups enforces the §3 invariant: holdups are non-negative and
// sum to 1, renormalized on validation.
func (c *Cell) clampHoldups() {
	if c.AlfG < 0 {
		c.AlfG = 0
	}
	if c.AlfG > 1 {
		c.AlfG = 1
	}
	c.AlfL = 1 - c.AlfG
	if c.ThreePhase {
		if c.AlfW < 0 {
			c.AlfW = 0
		}
		if c.AlfW > c.AlfL {
			c.AlfW = c.AlfL
		}
		if c.AlfL > 0 {
			c.WaterCut = c.AlfW / c.AlfL
		}
	}
}

// MixtureVelocity returns v_mix = v_sG + v_sL at this cell (superficial
// velocities weighted by holdup, consistent with §4.1's v_mix usage).
func (c *Cell) MixtureVelocity() float64 {
	return c.AlfG*c.Vg + c.AlfL*c.VL
}

// SoundSpeedMax returns the fastest |v_phase|+c_phase across phases,
// used by the CFL time-step computation (§4.4 step 1).
func (c *Cell) SoundSpeedMax() float64 {
	m := abs(c.Vg) + c.CG
	if v := abs(c.VL) + c.CL; v > m {
		m = v
	}
	if c.ThreePhase {
		if v := abs(c.Vw) + c.CW; v > m {
			m = v
		}
	}
	return m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
