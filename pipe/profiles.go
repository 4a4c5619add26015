// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipe

import (
	"github.com/cpmech/pipeflow/correlations"
	"github.com/cpmech/pipeflow/thermo"
)

// PressureProfile returns the P profile in bara, inlet to outlet (§6.1,
// §6.4 "Pressure returned in bara unless a unit argument is provided").
// Always a fresh copy (§3 Ownership).
func (p *Facade) PressureProfile() []float64 {
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbProfile == nil {
			return nil
		}
		out := make([]float64, len(p.bbProfile.Nodes))
		for i, node := range p.bbProfile.Nodes {
			out[i] = node.P / 1e5
		}
		return out
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		out := make([]float64, len(cells))
		for i, c := range cells {
			out[i] = c.P / 1e5
		}
		return out
	case KindMoC:
		out := p.MoC.PressureProfile()
		for i := range out {
			out[i] /= 1e5
		}
		return out
	}
	return nil
}

// TemperatureProfile returns the T profile in K, inlet to outlet (§6.1,
// §6.4 "temperature in K unless C requested").
func (p *Facade) TemperatureProfile() []float64 {
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbProfile == nil {
			return nil
		}
		out := make([]float64, len(p.bbProfile.Nodes))
		for i, node := range p.bbProfile.Nodes {
			out[i] = node.T
		}
		return out
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		out := make([]float64, len(cells))
		for i, c := range cells {
			out[i] = c.T
		}
		return out
	}
	return nil
}

// LiquidHoldupProfile returns α_L per node/cell (§6.1). Not meaningful
// for the single-phase MoC/one-phase variants, returns nil.
func (p *Facade) LiquidHoldupProfile() []float64 {
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbProfile == nil {
			return nil
		}
		out := make([]float64, len(p.bbProfile.Segments))
		for i, seg := range p.bbProfile.Segments {
			out[i] = seg.HoldupEL
		}
		return out
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		out := make([]float64, len(cells))
		for i, c := range cells {
			out[i] = c.AlfL
		}
		return out
	}
	return nil
}

// WaterCutProfile returns W=α_w/α_L per cell for three-phase two-fluid
// runs (§6.1, §3 TwoFluidCell).
func (p *Facade) WaterCutProfile() []float64 {
	if p.Kind != KindTwoFluid {
		return nil
	}
	cells := p.TwoFluid.Cells()
	out := make([]float64, len(cells))
	for i, c := range cells {
		if c.AlfL > 0 {
			out[i] = c.AlfW / c.AlfL
		}
	}
	return out
}

// FlowRegimeProfile returns the per-node/cell regime tag string (§6.1,
// §6.3 FlowRegime enums).
func (p *Facade) FlowRegimeProfile() []string {
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbProfile == nil {
			return nil
		}
		out := make([]string, len(p.bbProfile.Segments))
		for i, seg := range p.bbProfile.Segments {
			out[i] = seg.Regime.String()
		}
		return out
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		out := make([]string, len(cells))
		for i, c := range cells {
			out[i] = c.Regime.String()
		}
		return out
	}
	return nil
}

// VelocityProfile returns the mixture velocity per node/cell [m/s] (§6.1).
func (p *Facade) VelocityProfile() []float64 {
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbProfile == nil {
			return nil
		}
		out := make([]float64, len(p.bbProfile.Segments))
		for i, seg := range p.bbProfile.Segments {
			out[i] = seg.VMix
		}
		return out
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		out := make([]float64, len(cells))
		for i, c := range cells {
			out[i] = c.MixtureVelocity()
		}
		return out
	case KindMoC:
		return p.MoC.VelocityProfile()
	}
	return nil
}

// OutletPressure returns the outlet pressure converted to unit (§6.1
// "outlet_pressure(unit)").
func (p *Facade) OutletPressure(unit thermo.Unit) (float64, error) {
	var pa float64
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbOutlet == nil {
			return 0, nil
		}
		pa = p.bbOutlet.Pressure()
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		if len(cells) == 0 {
			return 0, nil
		}
		pa = cells[len(cells)-1].P
	case KindMoC:
		prof := p.MoC.PressureProfile()
		if len(prof) == 0 {
			return 0, nil
		}
		pa = prof[len(prof)-1]
	case KindOnePhase:
		f := p.OnePhase.OutletFluid()
		if f == nil {
			return 0, nil
		}
		pa = f.Pressure()
	}
	return fromPascal(pa, unit)
}

// OutletTemperature returns the outlet temperature converted to unit
// (§6.1 "outlet_temperature(unit)").
func (p *Facade) OutletTemperature(unit thermo.Unit) (float64, error) {
	var k float64
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbOutlet == nil {
			return 0, nil
		}
		k = p.bbOutlet.Temperature()
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		if len(cells) == 0 {
			return 0, nil
		}
		k = cells[len(cells)-1].T
	case KindOnePhase:
		f := p.OnePhase.OutletFluid()
		if f == nil {
			return 0, nil
		}
		k = f.Temperature()
	}
	return fromKelvin(k, unit)
}

// PressureDrop returns P_in - P_out in Pa (§6.1).
func (p *Facade) PressureDrop() float64 {
	switch p.Kind {
	case KindBeggsBrill:
		if p.bbProfile == nil {
			return 0
		}
		return p.bbProfile.PressureDrop
	case KindTwoFluid:
		cells := p.TwoFluid.Cells()
		if len(cells) < 2 {
			return 0
		}
		return cells[0].P - cells[len(cells)-1].P
	case KindMoC:
		prof := p.MoC.PressureProfile()
		if len(prof) < 2 {
			return 0
		}
		return prof[0] - prof[len(prof)-1]
	}
	return 0
}

// MixtureVelocity returns the inlet-cell (or first-segment) mixture
// velocity [m/s] (§6.1).
func (p *Facade) MixtureVelocity() float64 {
	v := p.VelocityProfile()
	i := 0
	if p.Kind == KindBeggsBrill {
		i = 1 // Segments[0] is unused; segment 1 is the inlet segment
	}
	if len(v) <= i {
		return 0
	}
	return v[i]
}

// ReynoldsNumber returns the inlet-segment Reynolds number (§6.1). Only
// meaningful for the Beggs-Brill variant, which tracks Re per segment.
func (p *Facade) ReynoldsNumber() float64 {
	if p.Kind != KindBeggsBrill || p.bbProfile == nil || len(p.bbProfile.Segments) < 2 {
		return 0
	}
	return p.bbProfile.Segments[1].Re
}

// FrictionFactor returns the Darcy friction factor recomputed from the
// inlet-segment Reynolds number (§6.1, §4.1 darcy_friction).
func (p *Facade) FrictionFactor() float64 {
	if p.Kind != KindBeggsBrill {
		return 0
	}
	re := p.ReynoldsNumber()
	if re == 0 {
		return 0
	}
	return correlations.DarcyFriction(re, p.Geom.Rough/p.Geom.D)
}

// SimulationTime returns the accumulated transient clock [s] (§6.1).
func (p *Facade) SimulationTime() float64 {
	switch p.Kind {
	case KindTwoFluid:
		return p.TwoFluid.SimulationTime()
	case KindMoC:
		return p.MoC.SimulationTime()
	}
	return 0
}

func fromPascal(pa float64, unit thermo.Unit) (float64, error) {
	switch unit {
	case thermo.UnitPa:
		return pa, nil
	case thermo.UnitBara:
		return pa / 1e5, nil
	case thermo.UnitBarg:
		return pa/1e5 - 1.01325, nil
	case thermo.UnitMPa:
		return pa / 1e6, nil
	case thermo.UnitPsi:
		return pa / 6894.757, nil
	}
	return 0, thermo.CheckUnit(unit)
}

func fromKelvin(k float64, unit thermo.Unit) (float64, error) {
	switch unit {
	case thermo.UnitK:
		return k, nil
	case thermo.UnitC:
		return k - 273.15, nil
	}
	return 0, thermo.CheckUnit(unit)
}
