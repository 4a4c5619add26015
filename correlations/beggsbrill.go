// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package correlations

import "math"

// Regime is the Beggs-Brill flow-regime classification (§6.3).
type Regime int

const (
	RegimeUnknown Regime = iota
	RegimeSegregated
	RegimeIntermittent
	RegimeDistributed
	RegimeTransition
	RegimeSinglePhase
)

func (r Regime) String() string {
	switch r {
	case RegimeSegregated:
		return "SEGREGATED"
	case RegimeIntermittent:
		return "INTERMITTENT"
	case RegimeDistributed:
		return "DISTRIBUTED"
	case RegimeTransition:
		return "TRANSITION"
	case RegimeSinglePhase:
		return "SINGLE_PHASE"
	}
	return "UNKNOWN"
}

// BBBoundaries returns the L1..L4 regime boundary curves as functions of
// the no-slip liquid holdup λ_L (§4.1).
func BBBoundaries(lambdaL float64) (l1, l2, l3, l4 float64) {
	l1 = 316 * math.Pow(lambdaL, 0.302)
	l2 = 9.252e-4 * math.Pow(lambdaL, -2.4684)
	l3 = 0.1 * math.Pow(lambdaL, -1.4516)
	l4 = 0.5 * math.Pow(lambdaL, -6.738)
	return
}

// ClassifyRegime applies the Beggs-Brill decision tree (§4.2 step 3),
// returning RegimeUnknown only when every branch fails to match (the
// source calls this unreachable for valid inputs; kept as a defensive
// fallback here, mirroring §4.2's RegimeNotFound note).
func ClassifyRegime(lambdaL, fr float64) Regime {
	if lambdaL <= 0 {
		return RegimeSinglePhase
	}
	l1, l2, l3, l4 := BBBoundaries(lambdaL)

	switch {
	case lambdaL < 0.01 && fr < l1:
		return RegimeSegregated
	case lambdaL >= 0.01 && fr < l2:
		return RegimeSegregated
	case lambdaL >= 0.01 && fr >= l2 && fr <= l3:
		return RegimeTransition
	case lambdaL >= 0.01 && lambdaL < 0.4 && fr > l3 && fr <= l1:
		return RegimeIntermittent
	case lambdaL >= 0.4 && fr > l3 && fr <= l4:
		return RegimeIntermittent
	case lambdaL < 0.4 && fr >= l1:
		return RegimeDistributed
	case lambdaL >= 0.4 && fr > l4:
		return RegimeDistributed
	}
	return RegimeUnknown
}

// BBHoldup computes the horizontal holdup fit E_L0 for the given regime
// (§4.1). TRANSITION blends segregated and intermittent via the A-weight,
// which BBHoldup obtains from BBTransitionWeight (ClassifyRegime does not
// itself compute A).
func BBHoldup(lambdaL, fr float64, regime Regime) float64 {
	switch regime {
	case RegimeSegregated:
		return 0.98 * math.Pow(lambdaL, 0.4846) / math.Pow(fr, 0.0868)
	case RegimeIntermittent:
		return 0.845 * math.Pow(lambdaL, 0.5351) / math.Pow(fr, 0.0173)
	case RegimeDistributed:
		return 1.065 * math.Pow(lambdaL, 0.5824) / math.Pow(fr, 0.0609)
	case RegimeTransition:
		a := BBTransitionWeight(lambdaL, fr)
		eSeg := BBHoldup(lambdaL, fr, RegimeSegregated)
		eInt := BBHoldup(lambdaL, fr, RegimeIntermittent)
		return a*eSeg + (1-a)*eInt
	case RegimeSinglePhase:
		return lambdaL
	}
	return lambdaL
}

// BBTransitionWeight computes A = (L3-Fr)/(L3-L2), the TRANSITION blend
// weight (§4.2).
func BBTransitionWeight(lambdaL, fr float64) float64 {
	_, l2, l3, _ := BBBoundaries(lambdaL)
	if l3 == l2 {
		return 0.5
	}
	a := (l3 - fr) / (l3 - l2)
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return a
}

// BBInclination computes B_θ, the inclination correction factor applied to
// the horizontal holdup (§4.1). Returns 1 for single-phase flow.
func BBInclination(lambdaL, fr, nvl, theta float64, regime Regime) float64 {
	if regime == RegimeSinglePhase {
		return 1
	}
	var beta float64
	switch {
	case theta >= 0:
		switch regime {
		case RegimeSegregated:
			beta = (1 - lambdaL) * math.Log(0.011*math.Pow(nvl, 3.539)*math.Pow(lambdaL, -3.768)*math.Pow(fr, 0.305))
		case RegimeIntermittent:
			beta = (1 - lambdaL) * math.Log(2.96*math.Pow(lambdaL, 0.305)*math.Pow(nvl, -0.4473)*math.Pow(fr, 0.0978))
		case RegimeDistributed, RegimeTransition:
			beta = 0
		}
	default:
		beta = (1 - lambdaL) * math.Log(4.70*math.Pow(lambdaL, -0.3692)*math.Pow(nvl, 0.1244)*math.Pow(fr, -0.5056))
	}
	if beta < 0 {
		beta = 0
	}
	return 1 + beta*(math.Sin(1.8*theta)-(1.0/3.0)*math.Pow(math.Sin(1.8*theta), 3))
}

// DriftVelocity computes the Harmathy/Bendiksen gas drift velocity v_gj
// (§4.1), applying the large-pipe Bendiksen override when the Eötvös
// number exceeds 40 and Froude damping at high mixture velocity.
func DriftVelocity(rhoL, rhoG, sigma, d, theta, vMix, g float64) float64 {
	if rhoL <= rhoG || sigma <= 0 {
		return 0
	}
	deltaRho := rhoL - rhoG
	vgj0 := 1.53 * math.Pow(g*sigma*deltaRho/(rhoL*rhoL), 0.25)

	var fTheta float64
	if theta >= 0 {
		fTheta = math.Cos(theta) + 1.2*math.Sin(theta)
	} else {
		fTheta = math.Cos(theta) + 0.3*math.Abs(math.Sin(theta))
	}
	if fTheta < 0.1 {
		fTheta = 0.1
	}

	vgj := vgj0 * fTheta
	eo := g * deltaRho * d * d / sigma
	if eo > 40 {
		vgj = 0.35 * math.Sqrt(g*d*deltaRho/rhoL) * fTheta
	}
	damping := 1 / (1 + 0.1*vMix/math.Sqrt(g*d))
	return vgj * damping
}
