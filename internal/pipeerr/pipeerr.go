// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeerr implements the error taxonomy of §7: sentinel error
// values that configuration, input, and sweep failures wrap with context,
// in the style of gosl/chk's formatted Err helper.
package pipeerr

import (
	"errors"
	"fmt"
)

// sentinel errors, checked with errors.Is by callers (e.g. the flow-rate
// inverter treats OutletPressureNegative specially, see §4.2 and §7)
var (
	ErrConfig                 = errors.New("pipeflow: config error")
	ErrInput                  = errors.New("pipeflow: input error")
	ErrOutletPressureNegative = errors.New("pipeflow: outlet pressure negative")
	ErrMissingGeometry        = errors.New("pipeflow: missing geometry")
	ErrRegimeNotFound         = errors.New("pipeflow: regime not found")
	ErrInfeasible             = errors.New("pipeflow: infeasible")
	ErrUnknownUnit            = errors.New("pipeflow: unknown unit")
	ErrThermo                 = errors.New("pipeflow: thermo error")
)

// Err formats a sentinel with context, mirroring gosl/chk.Err's %v-wrapping
// convention so callers can still errors.Is against the sentinel.
func Err(sentinel error, msg string, args ...interface{}) error {
	return fmt.Errorf("%w: "+msg, append([]interface{}{sentinel}, args...)...)
}
