// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package beggsbrill implements the segmented steady-state stepper of
// §2 component 5 / §4.2, grounded on msolid.Driver.Run: a pre-allocated
// per-increment result array mutated in place, rather than the
// teacher's per-stage []*State appended as it goes (§9 "stateful
// accumulation lists growing across sub-steps" — replaced here with a
// fixed-size array that is overwritten on each Run and reallocated only
// when the segment count changes, following the REDESIGN FLAG).
package beggsbrill

import "github.com/cpmech/pipeflow/correlations"

// Node holds the (P,T) state at one of the N+1 axis positions of a
// SegmentProfile (§3).
type Node struct {
	P float64 // [Pa]
	T float64 // [K]
}

// SegmentResult holds the derived per-segment quantities of §3
// SegmentProfile.
type SegmentResult struct {
	DeltaP          float64 // Δp over this segment [Pa]; DeltaP[0] convention N/A (indexed 1..N)
	Regime          correlations.Regime
	VsL, VsG, VMix  float64 // superficial / mixture velocities [m/s]
	MuNS, RhoNS     float64 // no-slip viscosity [Pa·s] and density [kg/m³]
	RhoL            float64 // liquid density used for hydrostatic term [kg/m³]
	HoldupEL        float64
	Re              float64
	CumLength       float64 // cumulative length to the outlet node of this segment [m]
	CumElevation    float64 // cumulative elevation to the outlet node of this segment [m]
}

// Profile is the full output of a Beggs-Brill Run: N+1 nodes and N
// segments (§3). Node 0 is the inlet, node N the outlet; DeltaP[0] is
// unused by convention (segments are 1-indexed against their outlet node).
type Profile struct {
	Nodes    []Node
	Segments []SegmentResult

	PressureDrop float64 // P_in - P_out [Pa]
}

// NewProfile pre-allocates a Profile for n segments (n+1 nodes), mirroring
// msolid.Driver's o.Res = make([]*State, nr) pre-allocation idiom.
func NewProfile(n int) *Profile {
	return &Profile{
		Nodes:    make([]Node, n+1),
		Segments: make([]SegmentResult, n+1), // index 0 unused, segments are 1..n
	}
}
