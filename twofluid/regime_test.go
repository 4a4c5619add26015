// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twofluid

import "testing"

func TestDetectRegimeSinglePhaseAtExtremeHoldup(t *testing.T) {
	if r := DetectRegime(0, 1, 1, 0.2, 0); r != RegimeSinglePhase {
		t.Fatalf("alfL=0 should classify SINGLE_PHASE, got %v", r)
	}
	if r := DetectRegime(1, 1, 1, 0.2, 0); r != RegimeSinglePhase {
		t.Fatalf("alfL=1 should classify SINGLE_PHASE, got %v", r)
	}
}

func TestDetectRegimeDeterministic(t *testing.T) {
	r1 := DetectRegime(0.4, 3, 0.5, 0.2, 0.1)
	r2 := DetectRegime(0.4, 3, 0.5, 0.2, 0.1)
	if r1 != r2 {
		t.Fatalf("DetectRegime is not deterministic: %v != %v", r1, r2)
	}
}

func TestClassifyTerrain(t *testing.T) {
	if s := ClassifyTerrain(-0.02, 0.02); s != SiteValley {
		t.Fatalf("expected valley, got %v", s)
	}
	if s := ClassifyTerrain(0.02, -0.02); s != SitePeak {
		t.Fatalf("expected peak, got %v", s)
	}
	if s := ClassifyTerrain(0, 0); s != SiteNone {
		t.Fatalf("expected no terrain feature, got %v", s)
	}
}
