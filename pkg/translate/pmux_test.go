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

// sequentialManyHot replicates encodePmux's maybe_one_hot/maybe_many_hot
// fold exactly (same update order: maybe_many_hot sees the pre-update
// maybe_one_hot), independently of the Builder-based implementation.
func sequentialManyHot(maybeS []bool) bool {
	oneHot, manyHot := false, false

	for _, m := range maybeS {
		manyHot = manyHot || (oneHot && m)
		oneHot = oneHot || m
	}

	return manyHot
}

// countManyHot is the textbook definition: "could two or more selects be
// hot simultaneously" is true iff at least two of the maybe-hot flags are
// set, independent of order.
func countManyHot(maybeS []bool) bool {
	count := 0

	for _, m := range maybeS {
		if m {
			count++
		}
	}

	return count >= 2
}

// The sequential accumulator used by the encoder must agree with the
// order-independent "at least two hot" definition on every row of the
// truth table, for select widths from 2 to 4 bits.
func Test_Pmux_ManyHotAccumulator_TruthTable_00(t *testing.T) {
	for width := 2; width <= 4; width++ {
		rows := 1 << uint(width)
		for row := 0; row < rows; row++ {
			maybeS := make([]bool, width)
			for i := 0; i < width; i++ {
				maybeS[i] = (row>>uint(i))&1 == 1
			}

			got := sequentialManyHot(maybeS)
			want := countManyHot(maybeS)

			if got != want {
				t.Fatalf("width=%d row=%v: sequential=%v count-based=%v", width, maybeS, got, want)
			}
		}
	}
}

// With a two-group $safe_pmux where select bit 0 is undef (maybe-hot) and
// select bit 1 is forced hot, the many-hot accumulator ends up equal to
// select 0's undef bit once bit 1 folds in. Y's undef companion is then A's
// undef when that bit is set and the pmux result's undef otherwise; both
// are 0 here (A is a defined constant, and the forced-hot select 1 pins the
// pmux result to group 1's defined value), so Y is defined and equal to
// group 1's value.
func Test_Encoder_SafePmux_MaybeHotThenForcedHot_DefinedResult_00(t *testing.T) {
	s := bsolver.New()
	enc := NewEncoder(s, Config{Prefix: "top", ModelUndef: true})

	cell := netlist.NewCell("p1", netlist.SafePmux)
	cell.Connections["A"] = bitsVector("0")
	cell.Connections["B"] = bitsVector("01") // group0=0, group1=1
	cell.Connections["S"] = bitsVector("x1") // select0 undef, select1 forced hot
	cell.Connections["Y"] = outputWire("y", 1)

	_, err := enc.ImportCell(cell, -1)
	assert.Equal(t, true, err == nil)

	undefY := enc.Importer.ImportUndef(cell.Connections["Y"], -1)
	s.Assume(undefY[0])

	ok, _ := s.Solve()
	assert.Equal(t, false, ok)

	s2 := bsolver.New()
	enc2 := NewEncoder(s2, Config{Prefix: "top", ModelUndef: true})

	cell2 := netlist.NewCell("p1", netlist.SafePmux)
	cell2.Connections["A"] = bitsVector("0")
	cell2.Connections["B"] = bitsVector("01")
	cell2.Connections["S"] = bitsVector("x1")
	cell2.Connections["Y"] = outputWire("y", 1)

	_, err = enc2.ImportCell(cell2, -1)
	assert.Equal(t, true, err == nil)

	yLits := enc2.Importer.ImportDefined(cell2.Connections["Y"], -1)
	assert.Equal(t, uint(1), solveUint(t, s2, yLits))
}
