// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geometry implements PipeGeometry (§3): length, diameter, wall
// thickness, roughness, inclination/elevation profile, and derived
// cross-section. Struct shape and json tags follow inp.Data's plain,
// tagged-struct convention so an external report serializer can marshal
// geometry untouched.
package geometry

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/pipeflow/internal/pipeerr"
)

// Layer is one cylindrical shell of coating/insulation (§4.1 overall_U).
// Zero Thickness contributes zero thermal resistance.
type Layer struct {
	Thickness float64 `json:"thickness"` // [m]
	K         float64 `json:"k"`         // thermal conductivity [W/(m·K)]
}

// PipeGeometry holds length, diameter, wall thickness, roughness,
// inclination/elevation, and optional burial/insulation data (§3).
type PipeGeometry struct {
	L        float64 `json:"length"`    // total length [m]
	D        float64 `json:"diameter"`  // inner diameter [m]
	WallT    float64 `json:"wallT"`     // wall thickness [m]
	WallK    float64 `json:"wallK"`     // pipe wall conductivity [W/(m·K)], used by DetailedU/EstimatedInnerH
	Rough    float64 `json:"roughness"` // absolute roughness ε [m]
	Theta    float64 `json:"theta"`     // inclination [rad], used when ElevationProfile is nil
	DeltaZ   float64 `json:"deltaZ"`    // total elevation change [m]; any two of {L,ΔZ,θ} determine the third
	ElevProf []float64 `json:"elevProfile,omitempty"` // optional per-node elevation z_i [m]

	FittingsEquivLength float64 `json:"fittingsEquivLength"` // equivalent length added to friction path [m]

	Coating   Layer   `json:"coating"`
	Insulation Layer  `json:"insulation"`
	AmbientT  float64 `json:"ambientT"` // [K]
	Buried    bool    `json:"buried"`
	BurialH   float64 `json:"burialH"`  // burial depth to pipe centerline [m]
	SoilK     float64 `json:"soilK"`    // soil conductivity [W/(m·K)]
}

// Area returns the cross-sectional flow area A = πD²/4.
func (g *PipeGeometry) Area() float64 {
	return math.Pi * g.D * g.D / 4
}

// Validate checks the consistency invariants of §3: D>0, ε≥0, |Δz|≤L, and
// that geometry is self-consistent (any two of {L,Δz,θ} determine the
// third). Returns ErrMissingGeometry/ErrConfig on violation (§4.2).
func (g *PipeGeometry) Validate() error {
	if g.D <= 0 {
		return pipeerr.Err(pipeerr.ErrConfig, "diameter must be > 0, got %g", g.D)
	}
	if g.Rough < 0 {
		return pipeerr.Err(pipeerr.ErrConfig, "roughness must be >= 0, got %g", g.Rough)
	}
	if g.L <= 0 {
		return pipeerr.Err(pipeerr.ErrMissingGeometry, "length must be > 0")
	}
	// reconcile θ and ΔZ: at least one of the three must be derivable
	haveTheta := g.Theta != 0
	haveDeltaZ := g.DeltaZ != 0
	switch {
	case haveTheta && !haveDeltaZ:
		g.DeltaZ = g.L * math.Sin(g.Theta)
	case haveDeltaZ && !haveTheta:
		g.Theta = math.Asin(clamp(g.DeltaZ/g.L, -1, 1))
	case haveTheta && haveDeltaZ:
		expected := g.L * math.Sin(g.Theta)
		if math.Abs(expected-g.DeltaZ) > 1e-3*math.Max(1, math.Abs(g.DeltaZ)) {
			return pipeerr.Err(pipeerr.ErrConfig, "inconsistent geometry: L·sin(θ)=%g != ΔZ=%g", expected, g.DeltaZ)
		}
	}
	if math.Abs(g.DeltaZ) > g.L*(1+1e-9) {
		return pipeerr.Err(pipeerr.ErrConfig, "|ΔZ|=%g exceeds L=%g", math.Abs(g.DeltaZ), g.L)
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Elevations returns N+1 node elevations from the inlet (z=0), using
// ElevProf verbatim when set, otherwise a linear profile derived from
// DeltaZ — grounded on utl.LinSpace, the teacher's array-construction
// helper (see examples/*/doplot.go for the same LinSpace idiom).
func (g *PipeGeometry) Elevations(n int) []float64 {
	if len(g.ElevProf) == n+1 {
		out := make([]float64, n+1)
		copy(out, g.ElevProf)
		return out
	}
	return utl.LinSpace(0, g.DeltaZ, n+1)
}

// SegmentLength returns L/n, the uniform per-segment length for n segments.
func (g *PipeGeometry) SegmentLength(n int) float64 {
	return g.L / float64(n)
}

// TotalFrictionLength adds the fittings equivalent length to the run length,
// used by single-phase friction calculations that lump fittings losses in.
func (g *PipeGeometry) TotalFrictionLength() float64 {
	return g.L + g.FittingsEquivLength
}
