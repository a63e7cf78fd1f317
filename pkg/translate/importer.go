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

package translate

import (
	"fmt"

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/solver"
)

// Importer maps netlist signals to solver literals, one call at a time,
// naming every wire-backed bit deterministically so repeat imports of the
// same (wire, offset, timestep) return the same literal.
type Importer struct {
	Builder solver.Builder
	Config  Config
	freshX  int
}

// NewImporter constructs an Importer over the given backend and config.
func NewImporter(builder solver.Builder, cfg Config) *Importer {
	return &Importer{Builder: builder, Config: cfg}
}

// key builds the "<prefix>[@<timestep>:]<wire-name>[[<offset>]]" naming
// scheme literal key for a single wire-backed bit. timestep < 0 means "no
// timestep", matching satgen.h's own sentinel convention.
func (imp *Importer) key(bit netlist.Bit, timestep int) string {
	name := bit.Wire.Name
	if bit.Wire.Width > 1 {
		name = fmt.Sprintf("%s[%d]", name, bit.Offset)
	}

	if timestep < 0 {
		return imp.Config.Prefix + name
	}

	return fmt.Sprintf("%s@%d:%s", imp.Config.Prefix, timestep, name)
}

// ImportDefined implements the "import_defined" operation: constant x maps
// to FALSE.
func (imp *Importer) ImportDefined(sig netlist.Vector, timestep int) solver.Vector {
	sig = Canonicalize(sig)
	out := make(solver.Vector, len(sig))

	for i, bit := range sig {
		out[i] = imp.importValueBit(bit, timestep)
	}

	return out
}

func (imp *Importer) importValueBit(bit netlist.Bit, timestep int) solver.Literal {
	if bit.IsConst() {
		switch bit.Value {
		case netlist.S1:
			return imp.Builder.True()
		default:
			// S0, Sx and Sz all import as FALSE in the value layer; x/z
			// carry no defined value to offer.
			return imp.Builder.False()
		}
	}

	return imp.Builder.Frozen(imp.key(bit, timestep))
}

// ImportUndef implements "import_undef": each constant x becomes a fresh
// frozen literal, every other constant becomes FALSE. Calling this while
// undef modelling is disabled is a programmer error.
func (imp *Importer) ImportUndef(sig netlist.Vector, timestep int) solver.Vector {
	if !imp.Config.ModelUndef {
		panic("translate: ImportUndef called with undef modelling disabled")
	}

	sig = Canonicalize(sig)
	out := make(solver.Vector, len(sig))

	for i, bit := range sig {
		out[i] = imp.importUndefBit(bit, timestep)
	}

	return out
}

// ImportTracked implements "import_tracked": like ImportDefined, but each
// constant x becomes a fresh frozen literal instead of a fixed FALSE.
func (imp *Importer) ImportTracked(sig netlist.Vector, timestep int) solver.Vector {
	sig = Canonicalize(sig)
	out := make(solver.Vector, len(sig))

	for i, bit := range sig {
		if bit.IsConst() && bit.Value.IsUndef() {
			out[i] = imp.freshFrozen(timestep)
			continue
		}

		out[i] = imp.importValueBit(bit, timestep)
	}

	return out
}

// freshFrozen mints a frozen literal under a name no other call can repeat,
// giving constant x an unconstrained but nameable literal rather than an
// anonymous one: frozen so it survives backend simplification like every
// other imported bit, unique per occurrence so two x's are never
// accidentally equated.
func (imp *Importer) freshFrozen(timestep int) solver.Literal {
	imp.freshX++
	return imp.Builder.Frozen(fmt.Sprintf("%sfresh-x@%d:%d", imp.Config.Prefix, timestep, imp.freshX))
}

// importUndefBit returns the undef-companion literal for a single bit: a
// fresh frozen literal for constant x, FALSE for any other constant, and
// the frozen "undef:"-prefixed literal for a wire-backed bit.
func (imp *Importer) importUndefBit(bit netlist.Bit, timestep int) solver.Literal {
	if bit.IsConst() {
		if bit.Value.IsUndef() {
			return imp.freshFrozen(timestep)
		}

		return imp.Builder.False()
	}

	return imp.Builder.Frozen("undef:" + imp.key(bit, timestep))
}
