// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipe implements the composition-root PipeFacade of §2
// component 14 / §6.1: a tagged variant over {BeggsBrillStepper,
// TwoFluidSolver, MoCSolver, OnePhaseCompositionalDriver}, replacing the
// teacher corpus's deep Pipeline→AdiabaticPipe inheritance chain with a
// flat struct holding one active Kind (§9 REDESIGN FLAGS). Grounded on
// fem.Domain, the composition root that wires mesh+elements+solver
// without itself deriving from any of them.
package pipe

import (
	"github.com/cpmech/pipeflow/beggsbrill"
	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/geometry"
	"github.com/cpmech/pipeflow/internal/pipeerr"
	"github.com/cpmech/pipeflow/moc"
	"github.com/cpmech/pipeflow/onephase"
	"github.com/cpmech/pipeflow/thermo"
	"github.com/cpmech/pipeflow/twofluid"
)

// Kind selects the active solver variant (§9 "tagged variant over the
// solver kind").
type Kind int

const (
	KindBeggsBrill Kind = iota
	KindTwoFluid
	KindMoC
	KindOnePhase
)

// Facade is the per-solver object exposing the §6.1 operations. Exactly
// one of the Kind-tagged fields is active, selected by Kind.
type Facade struct {
	Kind Kind

	Geom geometry.PipeGeometry
	Num  config.NumericConfig
	Heat config.HeatConfig
	Therm thermo.Client

	BB       *beggsbrill.Driver
	Inverter *beggsbrill.Inverter
	TwoFluid *twofluid.Solver
	MoC      *moc.Solver
	OnePhase *onephase.Driver

	calcID interface{} // last caller-supplied calculation id (§7)

	inletFluid     thermo.Fluid
	outletPressure float64
	outletUnit     thermo.Unit

	bbProfile    *beggsbrill.Profile
	bbOutlet     thermo.Fluid
}

// Configure applies geometry/numeric/heat settings without failing
// (§6.1 "configure(...): non-failing, pure setters").
func (p *Facade) Configure(geom geometry.PipeGeometry, num config.NumericConfig, heat config.HeatConfig) {
	p.Geom = geom
	p.Num = num
	p.Heat = heat
}

// SetInlet stores the inlet fluid, cloned on entry (§3 Ownership, §6.1
// "set_inlet(Fluid)").
func (p *Facade) SetInlet(f thermo.Fluid) {
	p.inletFluid = f.Clone()
}

// SetOutletPressure records a target outlet pressure for
// CALCULATE_FLOW_RATE mode (§6.1 "set_outlet_pressure").
func (p *Facade) SetOutletPressure(value float64, unit thermo.Unit) error {
	if err := thermo.CheckUnit(unit); err != nil {
		return err
	}
	p.outletPressure = value
	p.outletUnit = unit
	return nil
}

// Run performs the steady-state initialization appropriate to Kind,
// attaching calcID to the result (§6.1 "run(calc_id)", §7 "attached to
// every externally visible result").
func (p *Facade) Run(calcID interface{}) error {
	p.calcID = calcID
	if p.inletFluid == nil {
		return pipeerr.Err(pipeerr.ErrInput, "set_inlet must be called before run")
	}

	switch p.Kind {
	case KindBeggsBrill:
		return p.runBeggsBrill()
	case KindTwoFluid:
		p.TwoFluid.Geom = p.Geom
		p.TwoFluid.Num = p.Num
		p.TwoFluid.Therm = p.Therm
		return p.TwoFluid.Run(p.inletFluid)
	case KindMoC:
		p.MoC.Geom = p.Geom
		return p.MoC.Run()
	case KindOnePhase:
		p.OnePhase.Configure()
		p.OnePhase.InletFluid = p.inletFluid
		return nil
	}
	return pipeerr.Err(pipeerr.ErrConfig, "unknown facade kind %d", p.Kind)
}

// runBeggsBrill executes the stepper directly, or wraps it in the
// flow-rate inverter when Num.Mode==CalculateFlowRate (§4.2 "Flow-rate
// inverter").
func (p *Facade) runBeggsBrill() error {
	p.BB.Geom = p.Geom
	p.BB.Heat = p.Heat
	p.BB.Num = p.Num
	p.BB.Therm = p.Therm

	if p.Num.Mode == config.CalculateFlowRate {
		if p.outletUnit == "" {
			return pipeerr.Err(pipeerr.ErrInput, "set_outlet_pressure must be called in CALCULATE_FLOW_RATE mode")
		}
		targetPa, err := toPascal(p.outletPressure, p.outletUnit)
		if err != nil {
			return err
		}
		if targetPa >= p.inletFluid.Pressure() || targetPa <= 0 {
			return pipeerr.Err(pipeerr.ErrInput, "target outlet pressure %g Pa must be in (0, inlet pressure)", targetPa)
		}
		mDotNominal := p.inletFluid.TotalMassFlow()
		p.Inverter.Driver = p.BB
		mDot, _, err := p.Inverter.Invert(p.inletFluid, targetPa, mDotNominal)
		if err != nil {
			return err
		}
		trial := p.inletFluid.Clone()
		if err := trial.SetTotalFlowRate(mDot, "kg/s"); err != nil {
			return err
		}
		p.BB.Reset()
		prof, outlet, err := p.BB.Run(trial)
		if err != nil {
			return err
		}
		p.bbProfile, p.bbOutlet = prof, outlet
		return nil
	}

	p.BB.Reset()
	prof, outlet, err := p.BB.Run(p.inletFluid)
	if err != nil {
		return err
	}
	p.bbProfile, p.bbOutlet = prof, outlet
	return nil
}

// RunTransient advances by dt, attaching calcID (§6.1
// "run_transient(dt, calc_id)").
func (p *Facade) RunTransient(dt float64, calcID interface{}) error {
	p.calcID = calcID
	switch p.Kind {
	case KindBeggsBrill:
		return pipeerr.Err(pipeerr.ErrConfig, "Beggs-Brill stepper has no transient mode")
	case KindTwoFluid:
		return p.TwoFluid.RunTransient(dt, p.inletFluid)
	case KindMoC:
		return p.MoC.RunTransient(dt)
	case KindOnePhase:
		p.OnePhase.InletFluid = p.inletFluid
		return p.OnePhase.RunTransient(dt)
	}
	return pipeerr.Err(pipeerr.ErrConfig, "unknown facade kind %d", p.Kind)
}

// CalcID returns the last calculation id attached by Run/RunTransient.
func (p *Facade) CalcID() interface{} {
	return p.calcID
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
	return 0, pipeerr.Err(pipeerr.ErrUnknownUnit, "unit %q is not a pressure unit", unit)
}
