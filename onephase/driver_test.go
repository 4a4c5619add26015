// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package onephase

import (
	"testing"

	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/thermo"
)

// stubFluid is a minimal single-phase stand-in for the external EOS
// (§6.2), used only to exercise Driver's sequencing contract.
type stubFluid struct {
	p, t     float64
	massFlow float64
}

func (f *stubFluid) Clone() thermo.Fluid { cp := *f; return &cp }
func (f *stubFluid) SetPressure(v float64, u thermo.Unit) error    { f.p = v; return nil }
func (f *stubFluid) SetTemperature(v float64, u thermo.Unit) error { f.t = v; return nil }
func (f *stubFluid) SetTotalFlowRate(v float64, unit string) error { f.massFlow = v; return nil }
func (f *stubFluid) SetMolarComposition(x []float64) error         { return nil }
func (f *stubFluid) TPFlash() error                                { return nil }
func (f *stubFluid) PHFlash(h float64) error                       { return nil }
func (f *stubFluid) PhaseCount() int                               { return 1 }
func (f *stubFluid) PhaseIndex(tag string) (int, bool)             { return 0, tag == "oil" }
func (f *stubFluid) Density(phase int) float64                     { return 800 }
func (f *stubFluid) Viscosity(phase int) float64                   { return 3e-4 }
func (f *stubFluid) SpecificHeat(phase int) float64                { return 2000 }
func (f *stubFluid) Conductivity(phase int) float64                { return 0.15 }
func (f *stubFluid) SoundSpeed(phase int) float64                  { return 1200 }
func (f *stubFluid) Enthalpy(phase int) float64                    { return 2000 * f.t }
func (f *stubFluid) JouleThomson(phase int) float64                { return 0 }
func (f *stubFluid) SurfaceTension(a, b int) float64               { return 0.02 }
func (f *stubFluid) VolumetricFlow(phase int) float64              { return f.massFlow / 800 }
func (f *stubFluid) MassFlow(phase int) float64                    { return f.massFlow }
func (f *stubFluid) Volume(phase int) float64                      { return 0 }
func (f *stubFluid) MolarMass(phase int) float64                   { return 0 }
func (f *stubFluid) Pressure() float64                             { return f.p }
func (f *stubFluid) Temperature() float64                          { return f.t }
func (f *stubFluid) TotalEnthalpy() float64                        { return f.massFlow * f.Enthalpy(0) }
func (f *stubFluid) TotalMassFlow() float64                        { return f.massFlow }

// stubSystem records the sequence of calls a Driver makes, so the test
// can check ordering and sub-step counting rather than any real physics.
type stubSystem struct {
	scheme        config.AdvectionScheme
	tracking      bool
	inletSet      int
	kindSelected  bool
	compositional bool
	advanceCalls  []float64
	outlet        thermo.Fluid
	advanceErr    error
}

func (s *stubSystem) SetAdvectionScheme(scheme config.AdvectionScheme) { s.scheme = scheme }
func (s *stubSystem) SetCompositionalTracking(enabled bool)            { s.tracking = enabled }
func (s *stubSystem) SetInletNode(f thermo.Fluid) error {
	s.inletSet++
	s.outlet = f.Clone()
	return nil
}
func (s *stubSystem) SelectSolverKind(compositional bool) {
	s.kindSelected = true
	s.compositional = compositional
}
func (s *stubSystem) Advance(dt float64) error {
	s.advanceCalls = append(s.advanceCalls, dt)
	return s.advanceErr
}
func (s *stubSystem) OutletFluid() thermo.Fluid { return s.outlet }

// TestConfigureAppliesOptions checks §4.3: Configure pushes the scheme
// and compositional-tracking flag down to the collaborator.
func TestConfigureAppliesOptions(t *testing.T) {
	sys := &stubSystem{}
	d := &Driver{System: sys, Scheme: config.FirstOrderUpwind, CompositionalTracking: true}
	d.Configure()
	if sys.scheme != config.FirstOrderUpwind {
		t.Fatalf("scheme not applied: got %v", sys.scheme)
	}
	if !sys.tracking {
		t.Fatalf("compositional tracking not applied")
	}
}

// TestRunTransientSubSteps checks §4.3: RunTransient sub-steps by
// InternalTimeStep until dt is consumed, with the final sub-step
// truncated to whatever remains.
func TestRunTransientSubSteps(t *testing.T) {
	sys := &stubSystem{}
	d := &Driver{
		System:           sys,
		InternalTimeStep: 2,
		InletFluid:       &stubFluid{p: 50e5, t: 310, massFlow: 10},
	}
	if err := d.RunTransient(5); err != nil {
		t.Fatalf("RunTransient failed: %v", err)
	}
	want := []float64{2, 2, 1}
	if len(sys.advanceCalls) != len(want) {
		t.Fatalf("advance calls=%v, want %v", sys.advanceCalls, want)
	}
	for i := range want {
		if sys.advanceCalls[i] != want[i] {
			t.Fatalf("advance call %d=%g, want %g", i, sys.advanceCalls[i], want[i])
		}
	}
	if sys.inletSet != 1 {
		t.Fatalf("SetInletNode called %d times, want 1", sys.inletSet)
	}
	if !sys.kindSelected {
		t.Fatalf("SelectSolverKind was not called")
	}
}

// TestRunTransientPublishesFlashedOutlet checks §3 Ownership: the
// published outlet is a flashed clone, independent of the collaborator's
// internal node.
func TestRunTransientPublishesFlashedOutlet(t *testing.T) {
	sys := &stubSystem{}
	d := &Driver{
		System:           sys,
		InternalTimeStep: 1,
		InletFluid:       &stubFluid{p: 50e5, t: 310, massFlow: 10},
	}
	if err := d.RunTransient(1); err != nil {
		t.Fatalf("RunTransient failed: %v", err)
	}
	out := d.OutletFluid()
	if out == nil {
		t.Fatalf("expected a published outlet fluid")
	}
	if out == sys.outlet {
		t.Fatalf("published outlet must be a clone, not the collaborator's own node")
	}
}

// TestRunTransientRequiresInletFluid checks §4.3 input validation.
func TestRunTransientRequiresInletFluid(t *testing.T) {
	d := &Driver{System: &stubSystem{}, InternalTimeStep: 1}
	if err := d.RunTransient(1); err == nil {
		t.Fatalf("expected error when InletFluid is unset")
	}
}

// TestRunTransientRequiresPositiveInternalTimeStep checks §4.3 input
// validation on the sub-step size.
func TestRunTransientRequiresPositiveInternalTimeStep(t *testing.T) {
	d := &Driver{System: &stubSystem{}, InletFluid: &stubFluid{massFlow: 10}}
	if err := d.RunTransient(1); err == nil {
		t.Fatalf("expected error when InternalTimeStep is unset")
	}
}

// TestResetClearsOutlet checks §3 Lifecycle.
func TestResetClearsOutlet(t *testing.T) {
	sys := &stubSystem{}
	d := &Driver{
		System:           sys,
		InternalTimeStep: 1,
		InletFluid:       &stubFluid{p: 50e5, t: 310, massFlow: 10},
	}
	if err := d.RunTransient(1); err != nil {
		t.Fatalf("RunTransient failed: %v", err)
	}
	d.Reset()
	if d.OutletFluid() != nil {
		t.Fatalf("Reset should clear the published outlet fluid")
	}
}
