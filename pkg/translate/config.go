// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package translate bit-blasts netlist cells into constraints over a
// solver.Builder backend, tracking a companion undef (x) bit per signal
// bit when three-valued modelling is enabled.
package translate

import "github.com/synthsat/satcell/pkg/netlist"

// DivZeroPolicy selects how $div/$mod cells behave when the divisor may be
// zero.
type DivZeroPolicy byte

const (
	// DivZeroAssumeNonzero tells the solver b != 0, so any query binding the
	// divisor to zero becomes unsatisfiable rather than producing a result.
	DivZeroAssumeNonzero DivZeroPolicy = iota
	// DivZeroDefined sets Y to a fixed divide-by-zero result instead of
	// constraining b away from zero.
	DivZeroDefined
)

// Config governs how the Encoder behaves across a translation pass.
type Config struct {
	// ModelUndef enables the three-valued undef-companion layer. When
	// false, Importer.ImportUndef is a programmer error to call and every
	// cell family only emits its value-layer constraints.
	ModelUndef bool
	// DivZeroPolicy selects $div/$mod zero-divisor behaviour.
	DivZeroPolicy DivZeroPolicy
	// Prefix namespaces every literal name this translation pass mints,
	// matching the "<prefix>[@<timestep>:]<wire-name>[[<offset>]]" naming
	// scheme.
	Prefix string
	// InitialStateSet, when non-nil, is invoked by Encoder with a dff
	// cell's Q port at timestep <= 1, the point at which Q's value is left
	// unconstrained here and instead belongs to the initial-state set. A
	// caller that cares which signals make up that set (e.g. to later
	// enumerate or constrain them) supplies this hook; the core itself has
	// no opinion on how the set is stored.
	InitialStateSet func(netlist.Vector)
}
