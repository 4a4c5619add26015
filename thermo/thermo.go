// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermo defines the ThermoClient collaborator contract (§6.2).
// The equation-of-state engine itself is out of scope (§1); every pipe
// solver in this module only ever calls through this interface. The
// pattern mirrors ele.Element / msolid.Model: a narrow interface consumed
// by the solver, allocated and owned by an external collaborator.
package thermo

import "github.com/cpmech/pipeflow/internal/pipeerr"

// Phase identifies a fluid phase by stable index (§3 Fluid invariants:
// 0=gas, then liquid phases).
type Phase int

const (
	PhaseGas Phase = iota
	PhaseOil
	PhaseAqueous
)

// Tag returns the canonical phase tag string used by PhaseIndex.
func (p Phase) Tag() string {
	switch p {
	case PhaseGas:
		return "gas"
	case PhaseOil:
		return "oil"
	case PhaseAqueous:
		return "aqueous"
	}
	return "unknown"
}

// Unit is a canonical unit string (§6.2). Unrecognised units must fail
// loudly with ErrUnknownUnit rather than silently degrade.
type Unit string

const (
	UnitPa   Unit = "Pa"
	UnitBara Unit = "bara"
	UnitBarg Unit = "barg"
	UnitMPa  Unit = "MPa"
	UnitPsi  Unit = "psi"
	UnitK    Unit = "K"
	UnitC    Unit = "C"
)

// CheckUnit validates u is one of the canonical pressure/temperature units.
func CheckUnit(u Unit) error {
	switch u {
	case UnitPa, UnitBara, UnitBarg, UnitMPa, UnitPsi, UnitK, UnitC:
		return nil
	}
	return pipeerr.Err(pipeerr.ErrUnknownUnit, "unit %q is not recognised", u)
}

// Fluid is an opaque handle owned by the external EOS collaborator (§3).
// Solvers never mutate a Fluid in place: they Clone, set (P,T) or (P,H),
// flash, and read back phase properties.
type Fluid interface {
	Clone() Fluid

	SetPressure(value float64, unit Unit) error
	SetTemperature(value float64, unit Unit) error
	SetTotalFlowRate(value float64, unit string) error
	SetMolarComposition(x []float64) error

	TPFlash() error
	PHFlash(enthalpy float64) error

	PhaseCount() int
	PhaseIndex(tag string) (int, bool)

	// per-phase getters (§3 Fluid)
	Density(phase int) float64
	Viscosity(phase int) float64
	SpecificHeat(phase int) float64
	Conductivity(phase int) float64
	SoundSpeed(phase int) float64
	Enthalpy(phase int) float64
	JouleThomson(phase int) float64
	SurfaceTension(phaseA, phaseB int) float64
	VolumetricFlow(phase int) float64
	MassFlow(phase int) float64
	Volume(phase int) float64
	MolarMass(phase int) float64

	Pressure() float64
	Temperature() float64
	TotalEnthalpy() float64
	TotalMassFlow() float64
}

// Client is the adapter to the external thermodynamic engine (§2
// component 1). Implementations are provided by the process orchestrator;
// this module treats Client purely as a consumed collaborator.
type Client interface {
	// NewFluid builds a Fluid handle seeded with pressure, temperature,
	// composition and total mass flow, ready for TPFlash/PHFlash.
	NewFluid(pressurePa, temperatureK float64, composition []float64, massFlowKgS float64) (Fluid, error)
}
