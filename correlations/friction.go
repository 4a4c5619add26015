// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package correlations implements the pure-function library of §4.1:
// friction factor, Nusselt number, two-phase heat-transfer enhancement,
// drift velocity, Beggs-Brill regime boundaries and holdup fits, and the
// Joukowsky surge relation. Every function here is total: inputs are
// clamped or guarded rather than erroring (§4.1 "correlation functions
// never fail").
package correlations

import "math"

// DarcyFriction computes the Darcy-Weisbach friction factor f from the
// Reynolds number and relative roughness ε/D (§4.1).
func DarcyFriction(re, epsOverD float64) float64 {
	switch {
	case re < 1e-10:
		return 0
	case re < 2300:
		return 64 / re
	case re < 4000:
		fLam := 64 / 2300.0
		fTurb := haaland(4000, epsOverD)
		t := (re - 2300) / (4000 - 2300)
		return fLam + t*(fTurb-fLam)
	default:
		return haaland(re, epsOverD)
	}
}

func haaland(re, epsOverD float64) float64 {
	x := math.Pow(epsOverD/3.7, 1.11) + 6.9/re
	return math.Pow(-1.8*math.Log10(x), -2)
}

// GnielinskiNu computes the Gnielinski Nusselt number from Re, Pr and a
// friction factor f. If f<=0 a Petukhov-style fallback friction factor is
// computed first (§4.1). Valid for Pr∈[0.5,2000], Re∈[3000,5e6].
func GnielinskiNu(re, pr, f float64) float64 {
	if f <= 0 {
		f = math.Pow(0.790*math.Log(re)-1.64, -2)
	}
	f8 := f / 8
	num := f8 * (re - 1000) * pr
	den := 1 + 12.7*math.Sqrt(f8)*(math.Pow(pr, 2.0/3.0)-1)
	return num / den
}

// NuPipe blends laminar, transitional and Gnielinski-turbulent Nusselt
// number correlations across the Reynolds number range (§4.1).
func NuPipe(re, pr, f float64) float64 {
	switch {
	case re < 2300:
		return 3.66
	case re < 3000:
		nuLam := 3.66
		nuTurb := GnielinskiNu(3000, pr, f)
		t := (re - 2300) / (3000 - 2300)
		return nuLam + t*(nuTurb-nuLam)
	default:
		return GnielinskiNu(re, pr, f)
	}
}

// ShahEnhancement computes the two-phase heat-transfer enhancement factor
// E from the Martinelli parameter Xtt (§4.1). x is vapor quality. Returns
// 1 when x is outside (0.001, 0.999): the correlation is undefined at the
// single-phase limits. Falls back to a degenerate x(1-x) form when liquid
// density/viscosity are unavailable (rhoL<=0 or muL<=0).
func ShahEnhancement(x, rhoG, rhoL, muG, muL float64) float64 {
	if x <= 0.001 || x >= 0.999 {
		return 1
	}
	if rhoL <= 0 || muL <= 0 || muG <= 0 {
		return 1 + 2*x*(1-x)
	}
	xtt := math.Pow((1-x)/x, 0.9) * math.Sqrt(rhoG/rhoL) * math.Pow(muL/muG, 0.1)
	var e float64
	if xtt > 0.1 {
		e = 1 + 3.8*math.Pow(xtt, -0.45)
	} else {
		e = 2 + 3*math.Pow(xtt, -0.5)
	}
	if e > 10 {
		e = 10
	}
	return e
}

// Joukowsky computes the waterhammer surge pressure rise Δp = ρ·c·|Δv|.
func Joukowsky(rho, c, deltaV float64) float64 {
	return rho * c * math.Abs(deltaV)
}
