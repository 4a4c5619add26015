// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twofluid

import "math"

// RegimeTag is the two-fluid flow-regime classification of §6.3 (distinct
// from the Beggs-Brill Regime in package correlations — the two
// classifiers are deliberately independent per §4.4's "closure choice of
// this component" note).
type RegimeTag int

const (
	RegimeSinglePhase RegimeTag = iota
	RegimeStratifiedSmooth
	RegimeStratifiedWavy
	RegimeSlug
	RegimeBubble
	RegimeAnnularMist
)

func (r RegimeTag) String() string {
	switch r {
	case RegimeStratifiedSmooth:
		return "STRATIFIED_SMOOTH"
	case RegimeStratifiedWavy:
		return "STRATIFIED_WAVY"
	case RegimeSlug:
		return "SLUG"
	case RegimeBubble:
		return "BUBBLE"
	case RegimeAnnularMist:
		return "ANNULAR_MIST"
	}
	return "SINGLE_PHASE"
}

// DetectRegime classifies a cell's flow regime from (α_L, v_g, v_L, D, θ)
// using Taitel-Dukler-style transition boundaries (§4.4: "the contract is:
// given identical inputs, outputs are deterministic and regime
// transitions are piecewise-continuous in the input fields").
func DetectRegime(alfL, vG, vL, d, theta float64) RegimeTag {
	if alfL <= 1e-6 || alfL >= 1-1e-6 {
		return RegimeSinglePhase
	}
	vsg := alfL2Superficial(alfL, vG, true)
	vsl := alfL2Superficial(alfL, vL, false)

	froudeG := vsg / math.Sqrt(9.80665*d*math.Cos(theta))

	switch {
	case froudeG < 0.3*smoothStratifiedBoundary(alfL):
		return RegimeStratifiedSmooth
	case froudeG < stratifiedWavyBoundary(alfL, vsl):
		return RegimeStratifiedWavy
	case alfL > 0.5 && vsl < slugBubbleBoundary(vsg, d):
		return RegimeSlug
	case alfL < 0.25 && vsg > annularBoundary(vsl, d):
		return RegimeAnnularMist
	case alfL >= 0.25:
		return RegimeBubble
	}
	return RegimeSlug
}

func alfL2Superficial(alfL, v float64, gasPhase bool) float64 {
	if gasPhase {
		return (1 - alfL) * v
	}
	return alfL * v
}

func smoothStratifiedBoundary(alfL float64) float64 {
	return 1 + 2*alfL
}

func stratifiedWavyBoundary(alfL, vsl float64) float64 {
	return 0.5 + vsl/(1+alfL)
}

func slugBubbleBoundary(vsg, d float64) float64 {
	return 0.35 * math.Sqrt(9.80665*d) * (1 + vsg/10)
}

func annularBoundary(vsl, d float64) float64 {
	return 3.1 * math.Pow(9.80665*d, 0.5) * (1 + vsl)
}
