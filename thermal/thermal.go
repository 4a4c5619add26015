// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermal implements the layered cylindrical resistance model
// (§2 component 3, §4.1 overall_U): inner convection, wall, coating,
// insulation, outer convection, and an optional soil term, composed into
// an overall heat-transfer coefficient referenced to the inner area.
package thermal

import "math"

// Buildup holds the radii and conductivities of each concentric layer
// around the pipe bore, innermost to outermost.
type Buildup struct {
	Ri       float64 // inner radius [m]
	WallT    float64 // wall thickness [m]
	KWall    float64 // wall conductivity [W/(m·K)]
	CoatT    float64 // coating thickness [m]
	KCoat    float64 // coating conductivity [W/(m·K)]
	InsT     float64 // insulation thickness [m]
	KIns     float64 // insulation conductivity [W/(m·K)]
	HIn      float64 // inner film coefficient [W/(m²·K)]
	HOut     float64 // outer film coefficient [W/(m²·K)]
	Buried   bool
	BurialH  float64 // burial depth to centerline [m]
	KSoil    float64 // soil conductivity [W/(m·K)]
}

// resistanceLayer returns the resistance (referenced to inner area Ai)
// contributed by a cylindrical shell from r1 to r2 with conductivity k.
// A zero-thickness layer (r1==r2) contributes zero resistance.
func resistanceLayer(ri, r1, r2, k float64) float64 {
	if r2 <= r1 || k <= 0 {
		return 0
	}
	return ri * math.Log(r2/r1) / k
}

// OverallU composes the resistance stack into U_i, the overall heat
// transfer coefficient referenced to the inner area (§4.1).
func (b *Buildup) OverallU() float64 {
	ri := b.Ri
	if ri <= 0 {
		return 0
	}
	rWallOuter := ri + b.WallT
	rCoatOuter := rWallOuter + b.CoatT
	rInsOuter := rCoatOuter + b.InsT
	rOutermost := rInsOuter

	var rTot float64
	if b.HIn > 0 {
		rTot += 1 / b.HIn
	}
	rTot += resistanceLayer(ri, ri, rWallOuter, b.KWall)
	rTot += resistanceLayer(ri, rWallOuter, rCoatOuter, b.KCoat)
	rTot += resistanceLayer(ri, rCoatOuter, rInsOuter, b.KIns)
	if b.HOut > 0 {
		rTot += ri / (rOutermost * b.HOut)
	}
	if b.Buried && b.KSoil > 0 && b.BurialH > rOutermost {
		rTot += ri * math.Log(2*b.BurialH/rOutermost) / b.KSoil
	}
	if rTot <= 0 {
		return 0
	}
	return 1 / rTot
}
