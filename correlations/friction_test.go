// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package correlations

import "testing"

func TestDarcyFrictionLaminar(t *testing.T) {
	f := DarcyFriction(1000, 0)
	if want := 64.0 / 1000.0; abs(f-want) > 1e-12 {
		t.Fatalf("laminar f=%g, want %g", f, want)
	}
}

func TestDarcyFrictionZeroRe(t *testing.T) {
	if f := DarcyFriction(0, 1e-4); f != 0 {
		t.Fatalf("Re=0 should give f=0, got %g", f)
	}
}

func TestDarcyFrictionMonotoneDecreasingInRe(t *testing.T) {
	epsOverD := 1e-4
	prev := DarcyFriction(5000, epsOverD)
	for _, re := range []float64{1e4, 1e5, 1e6, 1e7} {
		f := DarcyFriction(re, epsOverD)
		if f >= prev {
			t.Fatalf("friction factor not decreasing: f(%g)=%g >= prev=%g", re, f, prev)
		}
		prev = f
	}
}

func TestDarcyFrictionMonotoneIncreasingInRoughness(t *testing.T) {
	re := 1e5
	prev := DarcyFriction(re, 1e-6)
	for _, eps := range []float64{1e-5, 1e-4, 1e-3} {
		f := DarcyFriction(re, eps)
		if f <= prev {
			t.Fatalf("friction factor not increasing with roughness: f(eps=%g)=%g <= prev=%g", eps, f, prev)
		}
		prev = f
	}
}

func TestNuPipeLaminar(t *testing.T) {
	if nu := NuPipe(1000, 5, 0.03); nu != 3.66 {
		t.Fatalf("laminar Nu=%g, want 3.66", nu)
	}
}

func TestShahEnhancementSinglePhaseLimits(t *testing.T) {
	if e := ShahEnhancement(0, 10, 700, 1e-5, 3e-4); e != 1 {
		t.Fatalf("x=0 should give E=1, got %g", e)
	}
	if e := ShahEnhancement(1, 10, 700, 1e-5, 3e-4); e != 1 {
		t.Fatalf("x=1 should give E=1, got %g", e)
	}
}

func TestShahEnhancementCapped(t *testing.T) {
	e := ShahEnhancement(0.5, 1, 1000, 1e-6, 1e-2)
	if e > 10 {
		t.Fatalf("E=%g exceeds cap of 10", e)
	}
}

func TestJoukowsky(t *testing.T) {
	dp := Joukowsky(1000, 1200, -2.5)
	if want := 1000.0 * 1200.0 * 2.5; abs(dp-want) > 1e-6 {
		t.Fatalf("joukowsky=%g, want %g", dp, want)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
