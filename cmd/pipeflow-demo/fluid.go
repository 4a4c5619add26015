// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/cpmech/pipeflow/thermo"

// constFluid is a minimal constant-property stand-in for the external
// thermodynamic engine (§6.2 ThermoClient). The real EOS is explicitly
// out of scope (§1); this lets the demo binary exercise a full facade
// run without one. Flashes are no-ops: properties never change with
// (P,T) in this stub.
type constFluid struct {
	p, t float64
	comp []float64

	rhoGas, rhoLiq       float64
	muGas, muLiq         float64
	cpGas, cpLiq         float64
	kGas, kLiq           float64
	cGas, cLiq           float64
	jtGas, jtLiq         float64
	sigma                float64
	qGas, qLiq           float64 // volumetric flow [m³/s]
	massFlowFracGas       float64
	totalMassFlow         float64
}

func (f *constFluid) Clone() thermo.Fluid {
	cp := *f
	return &cp
}

func (f *constFluid) SetPressure(value float64, unit thermo.Unit) error {
	pa, err := toPascal(value, unit)
	if err != nil {
		return err
	}
	f.p = pa
	return nil
}

func (f *constFluid) SetTemperature(value float64, unit thermo.Unit) error {
	k, err := toKelvin(value, unit)
	if err != nil {
		return err
	}
	f.t = k
	return nil
}

func (f *constFluid) SetTotalFlowRate(value float64, unit string) error {
	kgs := value
	if unit == "kg/h" {
		kgs = value / 3600
	}
	ratio := 1.0
	if f.totalMassFlow > 0 {
		ratio = kgs / f.totalMassFlow
	}
	f.qGas *= ratio
	f.qLiq *= ratio
	f.totalMassFlow = kgs
	return nil
}

func (f *constFluid) SetMolarComposition(x []float64) error {
	f.comp = append([]float64(nil), x...)
	return nil
}

func (f *constFluid) TPFlash() error { return nil }

func (f *constFluid) PHFlash(enthalpy float64) error { return nil }

func (f *constFluid) PhaseCount() int {
	if f.qGas > 0 && f.qLiq > 0 {
		return 2
	}
	return 1
}

func (f *constFluid) PhaseIndex(tag string) (int, bool) {
	switch tag {
	case "gas":
		if f.qGas > 0 {
			return 0, true
		}
	case "oil":
		if f.qLiq > 0 {
			return 1, true
		}
	}
	return 0, false
}

func (f *constFluid) Density(phase int) float64 {
	if phase == 0 {
		return f.rhoGas
	}
	return f.rhoLiq
}

func (f *constFluid) Viscosity(phase int) float64 {
	if phase == 0 {
		return f.muGas
	}
	return f.muLiq
}

func (f *constFluid) SpecificHeat(phase int) float64 {
	if phase == 0 {
		return f.cpGas
	}
	return f.cpLiq
}

func (f *constFluid) Conductivity(phase int) float64 {
	if phase == 0 {
		return f.kGas
	}
	return f.kLiq
}

func (f *constFluid) SoundSpeed(phase int) float64 {
	if phase == 0 {
		return f.cGas
	}
	return f.cLiq
}

func (f *constFluid) Enthalpy(phase int) float64 {
	return f.SpecificHeat(phase) * f.t
}

func (f *constFluid) JouleThomson(phase int) float64 {
	if phase == 0 {
		return f.jtGas
	}
	return f.jtLiq
}

func (f *constFluid) SurfaceTension(phaseA, phaseB int) float64 {
	return f.sigma
}

func (f *constFluid) VolumetricFlow(phase int) float64 {
	if phase == 0 {
		return f.qGas
	}
	return f.qLiq
}

func (f *constFluid) MassFlow(phase int) float64 {
	if phase == 0 {
		return f.totalMassFlow * f.massFlowFracGas
	}
	return f.totalMassFlow * (1 - f.massFlowFracGas)
}

func (f *constFluid) Volume(phase int) float64 { return 0 }

func (f *constFluid) MolarMass(phase int) float64 { return 0 }

func (f *constFluid) Pressure() float64 { return f.p }

func (f *constFluid) Temperature() float64 { return f.t }

func (f *constFluid) TotalEnthalpy() float64 {
	return f.massFlowFracGas*f.totalMassFlow*f.Enthalpy(0) + (1-f.massFlowFracGas)*f.totalMassFlow*f.Enthalpy(1)
}

func (f *constFluid) TotalMassFlow() float64 { return f.totalMassFlow }

// constClient hands out copies of a seed constFluid (§6.2 Client).
type constClient struct {
	seed constFluid
}

func (c *constClient) NewFluid(pressurePa, temperatureK float64, composition []float64, massFlowKgS float64) (thermo.Fluid, error) {
	f := c.seed
	f.p = pressurePa
	f.t = temperatureK
	if massFlowKgS > 0 {
		f.totalMassFlow = massFlowKgS
	}
	if composition != nil {
		f.comp = append([]float64(nil), composition...)
	}
	return &f, nil
}

func toPascal(value float64, unit thermo.Unit) (float64, error) {
	switch unit {
	case thermo.UnitPa:
		return value, nil
	case thermo.UnitBara:
		return value * 1e5, nil
	case thermo.UnitMPa:
		return value * 1e6, nil
	case thermo.UnitPsi:
		return value * 6894.757, nil
	}
	return 0, thermo.CheckUnit(unit)
}

func toKelvin(value float64, unit thermo.Unit) (float64, error) {
	switch unit {
	case thermo.UnitK:
		return value, nil
	case thermo.UnitC:
		return value + 273.15, nil
	}
	return 0, thermo.CheckUnit(unit)
}
