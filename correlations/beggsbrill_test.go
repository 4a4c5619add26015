// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package correlations

import "testing"

func TestClassifyRegimeSinglePhase(t *testing.T) {
	if r := ClassifyRegime(0, 1); r != RegimeSinglePhase {
		t.Fatalf("lambdaL=0 should classify SINGLE_PHASE, got %v", r)
	}
}

func TestClassifyRegimeNeverUnknownOnValidInputs(t *testing.T) {
	for _, lambdaL := range []float64{0.02, 0.1, 0.3, 0.5, 0.8} {
		for _, fr := range []float64{0.1, 1, 5, 20, 100} {
			if r := ClassifyRegime(lambdaL, fr); r == RegimeUnknown {
				t.Fatalf("lambdaL=%g fr=%g classified UNKNOWN", lambdaL, fr)
			}
		}
	}
}

// TestRegimeBoundaryContinuity sweeps Fr across the TRANSITION zone
// [L2,L3] at fixed λ_L and checks that B_θ·E_L0 is continuous across the
// SEGREGATED/TRANSITION and TRANSITION/INTERMITTENT boundaries (§8
// property 4).
func TestRegimeBoundaryContinuity(t *testing.T) {
	lambdaL := 0.05
	_, l2, l3, _ := BBBoundaries(lambdaL)
	const theta = 0.0
	const nvl = 1.0

	holdupAt := func(fr float64, regime Regime) float64 {
		e0 := BBHoldup(lambdaL, fr, regime)
		b := BBInclination(lambdaL, fr, nvl, theta, regime)
		return b * e0
	}

	eps := 1e-6
	hBelowL2 := holdupAt(l2-eps, RegimeSegregated)
	hAtL2 := holdupAt(l2, RegimeTransition)
	if abs(hBelowL2-hAtL2) > 1e-3*hBelowL2 {
		t.Fatalf("discontinuity at L2: segregated=%g transition=%g", hBelowL2, hAtL2)
	}

	hAtL3 := holdupAt(l3, RegimeTransition)
	hAboveL3 := holdupAt(l3+eps, RegimeIntermittent)
	if abs(hAtL3-hAboveL3) > 1e-3*hAtL3 {
		t.Fatalf("discontinuity at L3: transition=%g intermittent=%g", hAtL3, hAboveL3)
	}
}

func TestBBTransitionWeightClamped(t *testing.T) {
	lambdaL := 0.05
	_, l2, l3, _ := BBBoundaries(lambdaL)
	if a := BBTransitionWeight(lambdaL, l2); abs(a-1) > 1e-9 {
		t.Fatalf("A at Fr=L2 should be 1, got %g", a)
	}
	if a := BBTransitionWeight(lambdaL, l3); abs(a) > 1e-9 {
		t.Fatalf("A at Fr=L3 should be 0, got %g", a)
	}
}

func TestDriftVelocityZeroWhenNoDensityContrast(t *testing.T) {
	if v := DriftVelocity(700, 700, 0.02, 0.2, 0, 1, 9.81); v != 0 {
		t.Fatalf("equal densities should give v_gj=0, got %g", v)
	}
}
