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
	"testing"

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/solver/bsolver"
	"github.com/synthsat/satcell/pkg/util/assert"
)

func Test_Importer_ImportDefined_Const_00(t *testing.T) {
	s := bsolver.New()
	imp := NewImporter(s, Config{Prefix: "top"})

	vec := netlist.NewVector(netlist.ConstBit(netlist.S1), netlist.ConstBit(netlist.S0), netlist.ConstBit(netlist.Sx))
	lits := imp.ImportDefined(vec, -1)

	s.Assume(lits[0])
	s.Assume(s.Not(lits[1]))
	s.Assume(s.Not(lits[2])) // x imports as FALSE in the value layer

	ok, _ := s.Solve()
	assert.Equal(t, true, ok)
}

func Test_Importer_ImportDefined_StableNaming_00(t *testing.T) {
	s := bsolver.New()
	imp := NewImporter(s, Config{Prefix: "top"})

	w := netlist.NewWire("x", 2)
	first := imp.ImportDefined(w.Vector(), 1)
	second := imp.ImportDefined(w.Vector(), 1)

	assert.Equal(t, first[0], second[0])
	assert.Equal(t, first[1], second[1])
}

func Test_Importer_ImportUndef_PanicsWhenDisabled_00(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic")
		}
	}()

	s := bsolver.New()
	imp := NewImporter(s, Config{ModelUndef: false})
	w := netlist.NewWire("x", 1)
	imp.ImportUndef(w.Vector(), 1)
}

func Test_Importer_ImportUndef_ConstX_Fresh_00(t *testing.T) {
	s := bsolver.New()
	imp := NewImporter(s, Config{ModelUndef: true})

	vec := netlist.NewVector(netlist.ConstBit(netlist.Sx), netlist.ConstBit(netlist.S0))
	undef := imp.ImportUndef(vec, -1)

	// Bit 0's undef companion is a fresh, unconstrained literal: both
	// polarities must be satisfiable.
	s.Assume(undef[0])
	ok1, _ := s.Solve()
	assert.Equal(t, true, ok1)

	s2 := bsolver.New()
	imp2 := NewImporter(s2, Config{ModelUndef: true})
	undef2 := imp2.ImportUndef(vec, -1)
	s2.Assume(s2.Not(undef2[0]))
	ok2, _ := s2.Solve()
	assert.Equal(t, true, ok2)

	// Bit 1 is a defined constant, so its undef companion is fixed FALSE.
	s3 := bsolver.New()
	imp3 := NewImporter(s3, Config{ModelUndef: true})
	undef3 := imp3.ImportUndef(vec, -1)
	s3.Assume(undef3[1])
	ok3, _ := s3.Solve()
	assert.Equal(t, false, ok3)
}
