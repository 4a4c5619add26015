// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package onephase implements the lean one-phase compositional pipe
// wrapper of §4.3: a driver over an external one-phase flow-system
// collaborator, carrying no numerical kernel of its own. The shape
// mirrors ele.Element wrapping an external shp.Shape/integration-point
// collaborator rather than implementing its own quadrature.
package onephase

import (
	"github.com/cpmech/pipeflow/config"
	"github.com/cpmech/pipeflow/thermo"
)

// FlowSystem is the external one-phase flow-system façade this driver
// composes (§4.3 "Composes an external one-phase flow-system façade,
// treated as a collaborator"). It owns the actual momentum/composition
// kernel; this package only sequences calls to it.
type FlowSystem interface {
	SetAdvectionScheme(scheme config.AdvectionScheme)
	SetCompositionalTracking(enabled bool)

	// SetInletNode pushes the current inlet fluid state into node 0.
	SetInletNode(f thermo.Fluid) error

	// SelectSolverKind chooses the momentum-only vs. compositional
	// internal solve path for the coming sub-steps.
	SelectSolverKind(compositional bool)

	// Advance runs one internal sub-step of size dt.
	Advance(dt float64) error

	// OutletFluid returns the current last-node fluid state (not cloned).
	OutletFluid() thermo.Fluid
}
