// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package moc

import (
	"math"
	"testing"

	"github.com/cpmech/pipeflow/geometry"
	"github.com/cpmech/pipeflow/internal/pipelog"
)

// constHead is a trivial fun.Func-shaped constant head boundary input.
type constHead float64

func (c constHead) F(t float64, x []float64) float64 { return float64(c) }

func newTestSolver() *Solver {
	geom := geometry.PipeGeometry{L: 1000, D: 0.3, Rough: 1e-5}
	log := &pipelog.Logger{}
	return &Solver{
		Geom:        geom,
		N:           21,
		RhoFluid:    1000,
		MuFluid:     1e-3,
		SoundSpeed:  1200,
		SteadyFlowQ: 0.1,
		Upstream:    UpstreamBoundary{Kind: BoundaryReservoir, ReservoirHead: constHead(100)},
		Downstream:  DownstreamBoundary{Kind: BoundaryValve, DownstreamHead: 0},
		Log:         log,
	}
}

// TestJoukowskyConsistency checks §8 property 5: for a reservoir-valve
// system with instantaneous valve closure, the peak |ΔP| at the valve
// node matches ρ·c·v_steady within 5%. The check uses the first
// transient step after closure, before any reflected wave returns from
// the upstream reservoir: at that instant the surviving C+ characteristic
// at the valve is built entirely from pre-closure steady values, so the
// head jump is exactly B·Q_steady = c·v_steady/g by construction.
func TestJoukowskyConsistency(t *testing.T) {
	s := newTestSolver()
	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	vSteady := s.SteadyFlowQ / s.grid.A
	expected := s.RhoFluid * s.SoundSpeed * math.Abs(vSteady)

	n := s.N
	hBefore := s.grid.H[n-1]

	s.Downstream.Tau = constHead(0) // instantaneous closure
	if err := s.RunTransient(s.grid.Dt()); err != nil {
		t.Fatalf("RunTransient failed: %v", err)
	}
	hAfter := s.grid.H[n-1]

	deltaP := s.RhoFluid * 9.80665 * (hAfter - hBefore)
	rel := math.Abs(deltaP-expected) / expected
	if rel > 0.05 {
		t.Fatalf("surge pressure %.1f Pa, want within 5%% of Joukowsky estimate %.1f Pa", deltaP, expected)
	}
}

func TestKortewegWaveSpeedReducesToFluidSpeedWithoutElasticity(t *testing.T) {
	c := KortewegWaveSpeed(1200, 2.2e9, 0.3, 0, 0)
	if c != 1200 {
		t.Fatalf("wave speed should equal fluid sound speed with no pipe elasticity, got %g", c)
	}
}

func TestKortewegWaveSpeedReducedByElasticity(t *testing.T) {
	c := KortewegWaveSpeed(1200, 2.2e9, 0.3, 200e9, 0.01)
	if c >= 1200 {
		t.Fatalf("wave speed should be reduced by pipe elasticity, got %g", c)
	}
}

func TestGridDtMatchesCFLTarget(t *testing.T) {
	s := newTestSolver()
	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := s.grid.Dx / s.grid.C
	if got := s.grid.Dt(); got != want {
		t.Fatalf("Dt()=%g, want %g", got, want)
	}
}

func TestBackCalculateCv(t *testing.T) {
	cv := BackCalculateCv(0.1, 100, 20)
	if cv <= 0 {
		t.Fatalf("expected positive Cv, got %g", cv)
	}
	if cv2 := BackCalculateCv(0.1, 20, 100); cv2 != 0 {
		t.Fatalf("non-positive head difference should give Cv=0, got %g", cv2)
	}
}

// TestPressureProfileAccountsForElevation checks that PressureProfile
// uses the same ρg·H formula as PressureEnvelopes. For a vertical,
// zero-flow pipe, H already nets out elevation (Run seeds
// H[i]=h0-hLossPerLength*i*dx-elevs[i]), so the pressure must fall off
// monotonically with elevation rather than come out flat.
func TestPressureProfileAccountsForElevation(t *testing.T) {
	geom := geometry.PipeGeometry{L: 1000, D: 0.3, Rough: 1e-5, DeltaZ: 1000}
	s := &Solver{
		Geom:        geom,
		N:           11,
		RhoFluid:    1000,
		MuFluid:     1e-3,
		SoundSpeed:  1200,
		SteadyFlowQ: 0,
		Upstream:    UpstreamBoundary{Kind: BoundaryReservoir, ReservoirHead: constHead(0)},
		Downstream:  DownstreamBoundary{Kind: BoundaryValve, DownstreamHead: 0},
		Log:         &pipelog.Logger{},
	}
	if err := s.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	p := s.PressureProfile()
	for i := 1; i < len(p); i++ {
		if p[i] >= p[i-1] {
			t.Fatalf("pressure should strictly decrease with elevation: node %d=%g >= node %d=%g", i, p[i], i-1, p[i-1])
		}
	}

	want := s.RhoFluid * gGrav * geom.DeltaZ
	got := p[0] - p[len(p)-1]
	if math.Abs(got-want) > 1e-6*want {
		t.Fatalf("pressure drop over elevation change=%g, want %g", got, want)
	}
}
