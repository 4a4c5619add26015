// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the enumerated configuration options of §6.3
// and the NumericConfig/HeatConfig structs referenced throughout §4. Struct
// shape follows inp.SolverData's plain-json-tagged convention.
package config

// HeatTransferMode selects how the stepper couples pressure drop to the
// enthalpy/temperature update (§6.3).
type HeatTransferMode int

const (
	Adiabatic HeatTransferMode = iota
	Isothermal
	SpecifiedU
	EstimatedInnerH
	DetailedU
)

// CalculationMode selects whether the stepper solves for outlet pressure
// given inlet flow, or inverts for flow rate given a target outlet
// pressure (§6.3).
type CalculationMode int

const (
	CalculateOutletPressure CalculationMode = iota
	CalculateFlowRate
)

// AdvectionScheme selects the numerical scheme used by the one-phase
// compositional driver (§4.3, §6.3).
type AdvectionScheme int

const (
	FirstOrderUpwind AdvectionScheme = iota
	TVDVanLeer
	TVDSuperbee
)

// BoundaryType selects a water-hammer boundary condition kind (§6.3).
type BoundaryType int

const (
	Reservoir BoundaryType = iota
	Valve
	ClosedEnd
	ConstantFlow
)

// DragClosure selects the two-fluid interfacial drag closure (§9 Open
// Questions: "Implementations should expose closure selection as a config
// enum and default to the documented Bendiksen form").
type DragClosure int

const (
	BendiksenDrag DragClosure = iota
	HarmathyDrag
)

// NumericConfig holds numerical settings shared across solvers.
type NumericConfig struct {
	NInc int `json:"nInc"` // number of increments/cells

	Mode CalculationMode `json:"mode"`

	// two-fluid transient
	CFL                        float64 `json:"cfl"`
	ThermodynamicUpdateInterval int    `json:"thermoUpdateInterval"`
	MaxSubSteps                int     `json:"maxSubSteps"`
	DragClosure                DragClosure `json:"dragClosure"`
	SlugTrackingEnabled        bool    `json:"slugTrackingEnabled"`

	// flow-rate inverter
	InverterTol     float64 `json:"inverterTol"`
	InverterMaxIter int     `json:"inverterMaxIter"`

	// water hammer
	GridCFL float64 `json:"gridCFL"`

	// one-phase compositional
	Scheme                AdvectionScheme `json:"scheme"`
	CompositionalTracking bool            `json:"compositionalTracking"`
	InternalTimeStep      float64         `json:"internalTimeStep"`
}

// DefaultNumericConfig returns the §4/§5 documented defaults.
func DefaultNumericConfig() NumericConfig {
	return NumericConfig{
		NInc:                        20,
		Mode:                        CalculateOutletPressure,
		CFL:                         0.5,
		ThermodynamicUpdateInterval: 10,
		MaxSubSteps:                 0, // 0 == unbounded (soft warning only, §5)
		DragClosure:                 BendiksenDrag,
		InverterTol:                 1e-4,
		InverterMaxIter:             50,
		GridCFL:                     1.0,
		Scheme:                      FirstOrderUpwind,
		InternalTimeStep:            0.1,
	}
}

// HeatConfig holds heat-balance settings (§4.2 step 8).
type HeatConfig struct {
	Mode            HeatTransferMode `json:"mode"`
	IncludeJT       bool             `json:"includeJT"`
	FrictionHeating bool             `json:"frictionHeating"`

	ConstantWallT float64 `json:"constantWallT"` // T_s [K], used when Mode != Adiabatic/Isothermal
	U             float64 `json:"u"`             // [W/(m²·K)], used when Mode == SpecifiedU
}
