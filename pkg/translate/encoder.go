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

// Encoder bit-blasts one cell at a time into constraints over Builder,
// consulting Importer for signal-to-literal naming and Aligner for operand
// width extension. Asserts accumulates $assert cells for later aggregation.
type Encoder struct {
	Builder  solver.Builder
	Importer *Importer
	Aligner  *WidthAligner
	Config   Config
	Asserts  *AssertEnvelope
}

// NewEncoder constructs an Encoder with a fresh assertion envelope.
func NewEncoder(builder solver.Builder, cfg Config) *Encoder {
	return &Encoder{
		Builder:  builder,
		Importer: NewImporter(builder, cfg),
		Aligner:  NewWidthAligner(builder),
		Config:   cfg,
		Asserts:  NewAssertEnvelope(),
	}
}

// dual bundles a port's imported value vector with its undef companion
// (nil when undef modelling is disabled).
type dual struct {
	val   solver.Vector
	undef solver.Vector
}

func (e *Encoder) importDual(sig netlist.Vector, timestep int) dual {
	d := dual{val: e.Importer.ImportDefined(sig, timestep)}
	if e.Config.ModelUndef {
		d.undef = e.Importer.ImportUndef(sig, timestep)
	}

	return d
}

// freshOrY returns a fresh vector the width of y to serve as the "clean"
// value yy when undef modelling is on, or y itself (so the value-layer
// equation becomes the only constraint on y) when it is off.
func (e *Encoder) freshOrY(y solver.Vector) solver.Vector {
	if !e.Config.ModelUndef {
		return y
	}

	return e.Builder.FreshVector(uint(len(y)))
}

// gate applies undef gating: (undefY_i) OR (y_i <-> yy_i), bit for bit.
// Where y is defined it must equal the clean value yy; where undef, y is
// left free for downstream logic to observe arbitrarily.
func (e *Encoder) gate(y, yy, undefY solver.Vector) {
	if !e.Config.ModelUndef {
		return
	}

	for i := range y {
		e.Builder.Assume(e.Builder.Or(undefY[i], e.Builder.Iff(y[i], yy[i])))
	}
}

func (e *Encoder) falseVector(w uint) solver.Vector {
	out := make(solver.Vector, w)
	for i := range out {
		out[i] = e.Builder.False()
	}

	return out
}

func (e *Encoder) trueLiteralVector(lit solver.Literal, w uint) solver.Vector {
	out := make(solver.Vector, w)
	out[0] = lit

	for i := 1; i < int(w); i++ {
		out[i] = e.Builder.False()
	}

	return out
}

// ImportCell bit-blasts one cell at the given timestep. It reports
// (false, nil) for a cell type this core declines to handle ($pow, $lut,
// and every sequential cell outside the DFF family), letting the caller
// decide policy. The returned error is nil for every family handled here:
// a missing port or a $slice reading past the end of A is a programmer
// error and panics, via netlist.Cell.Port and encodeSlice's range check.
func (e *Encoder) ImportCell(cell *netlist.Cell, timestep int) (bool, error) {
	switch cell.Family() {
	case netlist.And, netlist.Or, netlist.Xor, netlist.Xnor:
		return true, e.encodeBitwise(cell, timestep)
	case netlist.Not:
		return true, e.encodeNot(cell, timestep)
	case netlist.Mux:
		return true, e.encodeMux(cell, timestep)
	case netlist.Pmux:
		return true, e.encodePmux(cell, timestep, false)
	case netlist.SafePmux:
		return true, e.encodePmux(cell, timestep, true)
	case netlist.Pos, netlist.Bu0:
		return true, e.encodeUnaryPass(cell, timestep)
	case netlist.Neg:
		return true, e.encodeNeg(cell, timestep)
	case netlist.ReduceAnd, netlist.ReduceOr, netlist.ReduceXor, netlist.ReduceXnor,
		netlist.ReduceBool, netlist.LogicNot:
		return true, e.encodeReduce(cell, timestep)
	case netlist.LogicAnd, netlist.LogicOr:
		return true, e.encodeLogicConnective(cell, timestep)
	case netlist.Lt, netlist.Le, netlist.Ge, netlist.Gt, netlist.Eq, netlist.Ne:
		return true, e.encodeCompare(cell, timestep)
	case netlist.Eqx, netlist.Nex:
		return true, e.encodeStrictCompare(cell, timestep)
	case netlist.Shl, netlist.Shr, netlist.Sshl, netlist.Sshr:
		return true, e.encodeShift(cell, timestep)
	case netlist.Add, netlist.Sub:
		return true, e.encodeAddSub(cell, timestep)
	case netlist.Mul:
		return true, e.encodeMul(cell, timestep)
	case netlist.Div, netlist.Mod:
		return true, e.encodeDivMod(cell, timestep)
	case netlist.Slice:
		return true, e.encodeSlice(cell, timestep)
	case netlist.Concat:
		return true, e.encodeConcat(cell, timestep)
	case netlist.Dff:
		return true, e.encodeDff(cell, timestep)
	case netlist.Assert:
		return true, e.encodeAssert(cell, timestep)
	default:
		return false, nil
	}
}

// --- bitwise -----------------------------------------------------------

func (e *Encoder) encodeBitwise(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aVal, bVal, yExt := e.Aligner.AlignBinaryY(aD.val, bD.val, yD.val, cell.ASigned(), cell.BSigned(), false)

	yy := e.freshOrY(yExt)

	var result solver.Vector

	switch cell.Family() {
	case netlist.And:
		result = e.Builder.VecAnd(aVal, bVal)
	case netlist.Or:
		result = e.Builder.VecOr(aVal, bVal)
	case netlist.Xor:
		result = e.Builder.VecXor(aVal, bVal)
	case netlist.Xnor:
		result = e.Builder.VecNot(e.Builder.VecXor(aVal, bVal))
	}

	e.Builder.Set(yy, result)

	if e.Config.ModelUndef {
		aUndef, bUndef, undefYExt := e.Aligner.AlignBinaryY(aD.undef, bD.undef, yD.undef, false, false, false)
		undefY := e.computeBitwiseUndef(cell.Family(), aVal, bVal, aUndef, bUndef)
		e.Builder.Set(undefYExt, undefY)
		e.gate(yExt, yy, undefYExt)
	}

	return nil
}

func (e *Encoder) computeBitwiseUndef(family netlist.CellType, a, b, ax, bx solver.Vector) solver.Vector {
	out := make(solver.Vector, len(a))

	for i := range a {
		anyUndef := e.Builder.Or(ax[i], bx[i])

		switch family {
		case netlist.And:
			known0 := e.Builder.Or(
				e.Builder.And(e.Builder.Not(a[i]), e.Builder.Not(ax[i])),
				e.Builder.And(e.Builder.Not(b[i]), e.Builder.Not(bx[i])),
			)
			out[i] = e.Builder.And(anyUndef, e.Builder.Not(known0))
		case netlist.Or:
			known1 := e.Builder.Or(
				e.Builder.And(a[i], e.Builder.Not(ax[i])),
				e.Builder.And(b[i], e.Builder.Not(bx[i])),
			)
			out[i] = e.Builder.And(anyUndef, e.Builder.Not(known1))
		default: // Xor, Xnor
			out[i] = anyUndef
		}
	}

	return out
}

// --- not / pos / bu0 / neg ----------------------------------------------

func (e *Encoder) encodeNot(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aVal, _ := e.Aligner.AlignUnary(aD.val, yD.val, cell.ASigned(), false)
	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, e.Builder.VecNot(aVal))

	if e.Config.ModelUndef {
		aUndef, _ := e.Aligner.AlignUnary(aD.undef, e.falseVector(uint(len(yD.val))), cell.ASigned(), false)
		e.Builder.Set(yD.undef, aUndef)
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

func (e *Encoder) encodeUnaryPass(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	signed := cell.Family() == netlist.Pos && cell.ASigned()
	aVal, _ := e.Aligner.AlignUnary(aD.val, yD.val, signed, false)
	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, aVal)

	if e.Config.ModelUndef {
		aUndef, _ := e.Aligner.AlignUnary(aD.undef, e.falseVector(uint(len(yD.val))), signed, false)
		e.Builder.Set(yD.undef, aUndef)
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

func (e *Encoder) encodeNeg(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aVal, _ := e.Aligner.AlignUnary(aD.val, yD.val, cell.ASigned(), false)
	zero := e.falseVector(uint(len(aVal)))
	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, e.Builder.Sub(zero, aVal))

	if e.Config.ModelUndef {
		anyUndef := e.Builder.Reduce(solver.ReduceOr, aD.undef)
		undefY := make(solver.Vector, len(yD.val))
		for i := range undefY {
			undefY[i] = anyUndef
		}

		e.Builder.Set(yD.undef, undefY)
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

// --- mux / pmux / safe_pmux ---------------------------------------------

func (e *Encoder) encodeMux(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	sD := e.importDual(cell.Port("S"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, e.Builder.VecIte(sD.val[0], bD.val, aD.val))

	if e.Config.ModelUndef {
		undefY := make(solver.Vector, len(yD.val))

		for i := range undefY {
			diff := e.Builder.Or(e.Builder.Xor(aD.val[i], bD.val[i]), aD.undef[i], bD.undef[i])
			ifSDefined := e.Builder.Ite(sD.val[0], bD.undef[i], aD.undef[i])
			undefY[i] = e.Builder.Ite(sD.undef[0], diff, ifSDefined)
		}

		e.Builder.Set(yD.undef, undefY)
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

// pmuxUndef implements the per-bit maybe-set/maybe-clear tracking spec.md
// §4.3 describes for $pmux: a bit is undef in the final "tmp" result iff
// it is simultaneously reachable as a 0 and as a 1 across the sequence of
// (possibly undef) selects.
func (e *Encoder) pmuxUndef(aVal, aUndef solver.Vector, groups []solver.Vector, groupsUndef []solver.Vector, sVal, sUndef solver.Vector) solver.Vector {
	width := len(aVal)
	maybe0 := make(solver.Vector, width)
	maybe1 := make(solver.Vector, width)

	for j := 0; j < width; j++ {
		maybe0[j] = e.Builder.Or(e.Builder.Not(aVal[j]), aUndef[j])
		maybe1[j] = e.Builder.Or(aVal[j], aUndef[j])
	}

	for i, grp := range groups {
		grpUndef := groupsUndef[i]
		couldSelect := e.Builder.Or(sVal[i], sUndef[i])
		mustSelect := e.Builder.And(sVal[i], e.Builder.Not(sUndef[i]))

		for j := 0; j < width; j++ {
			bMaybe0 := e.Builder.Or(e.Builder.Not(grp[j]), grpUndef[j])
			bMaybe1 := e.Builder.Or(grp[j], grpUndef[j])

			prevOr0 := e.Builder.Or(maybe0[j], e.Builder.And(couldSelect, bMaybe0))
			prevOr1 := e.Builder.Or(maybe1[j], e.Builder.And(couldSelect, bMaybe1))

			maybe0[j] = e.Builder.Ite(mustSelect, bMaybe0, prevOr0)
			maybe1[j] = e.Builder.Ite(mustSelect, bMaybe1, prevOr1)
		}
	}

	out := make(solver.Vector, width)
	for j := 0; j < width; j++ {
		out[j] = e.Builder.And(maybe0[j], maybe1[j])
	}

	return out
}

func (e *Encoder) encodePmux(cell *netlist.Cell, timestep int, safe bool) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	sD := e.importDual(cell.Port("S"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	groupWidth := uint(len(aD.val))
	numGroups := len(sD.val)

	tmp := aD.val
	groups := make([]solver.Vector, numGroups)
	groupsUndef := make([]solver.Vector, numGroups)

	for i := 0; i < numGroups; i++ {
		groups[i] = bD.val[uint(i)*groupWidth : uint(i+1)*groupWidth]
		tmp = e.Builder.VecIte(sD.val[i], groups[i], tmp)

		if e.Config.ModelUndef {
			groupsUndef[i] = bD.undef[uint(i)*groupWidth : uint(i+1)*groupWidth]
		}
	}

	yy := e.freshOrY(yD.val)

	if !safe {
		e.Builder.Set(yy, tmp)
	} else {
		onehotLit := e.Builder.Onehot(sD.val, false)
		e.Builder.Set(yy, e.Builder.VecIte(onehotLit, tmp, aD.val))
	}

	if e.Config.ModelUndef {
		tmpUndef := e.pmuxUndef(aD.val, aD.undef, groups, groupsUndef, sD.val, sD.undef)

		var undefY solver.Vector

		if !safe {
			undefY = tmpUndef
		} else {
			maybeOneHot := e.Builder.False()
			maybeManyHot := e.Builder.False()

			for i := 0; i < numGroups; i++ {
				maybeS := e.Builder.Or(sD.val[i], sD.undef[i])
				maybeManyHot = e.Builder.Or(maybeManyHot, e.Builder.And(maybeOneHot, maybeS))
				maybeOneHot = e.Builder.Or(maybeOneHot, maybeS)
			}

			undefY = make(solver.Vector, len(tmpUndef))
			for j := range undefY {
				undefY[j] = e.Builder.Ite(maybeManyHot, aD.undef[j], tmpUndef[j])
			}
		}

		e.Builder.Set(yD.undef, undefY)
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

// --- reductions and logic connectives ------------------------------------

func (e *Encoder) encodeReduce(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	var bit solver.Literal

	switch cell.Family() {
	case netlist.ReduceAnd:
		bit = e.Builder.Reduce(solver.ReduceAnd, aD.val)
	case netlist.ReduceOr, netlist.ReduceBool:
		bit = e.Builder.Reduce(solver.ReduceOr, aD.val)
	case netlist.ReduceXor:
		bit = e.Builder.Reduce(solver.ReduceXor, aD.val)
	case netlist.ReduceXnor:
		bit = e.Builder.Not(e.Builder.Reduce(solver.ReduceXor, aD.val))
	case netlist.LogicNot:
		bit = e.Builder.Not(e.Builder.Reduce(solver.ReduceOr, aD.val))
	}

	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, e.trueLiteralVector(bit, uint(len(yy))))

	if e.Config.ModelUndef {
		undefBit := e.computeReduceUndef(cell.Family(), aD.val, aD.undef)
		e.Builder.Set(yD.undef, e.falseVectorExceptFirst(undefBit, uint(len(yD.undef))))
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

func (e *Encoder) falseVectorExceptFirst(first solver.Literal, w uint) solver.Vector {
	out := e.falseVector(w)
	if w > 0 {
		out[0] = first
	}

	return out
}

func (e *Encoder) computeReduceUndef(family netlist.CellType, a, ax solver.Vector) solver.Literal {
	anyUndef := e.Builder.Reduce(solver.ReduceOr, ax)

	switch family {
	case netlist.ReduceAnd:
		noKnown0 := e.Builder.True()
		for i := range a {
			known0 := e.Builder.And(e.Builder.Not(a[i]), e.Builder.Not(ax[i]))
			noKnown0 = e.Builder.And(noKnown0, e.Builder.Not(known0))
		}

		return e.Builder.And(noKnown0, anyUndef)
	case netlist.ReduceOr, netlist.ReduceBool, netlist.LogicNot:
		noKnown1 := e.Builder.True()
		for i := range a {
			known1 := e.Builder.And(a[i], e.Builder.Not(ax[i]))
			noKnown1 = e.Builder.And(noKnown1, e.Builder.Not(known1))
		}

		return e.Builder.And(noKnown1, anyUndef)
	default: // ReduceXor, ReduceXnor
		return anyUndef
	}
}

func (e *Encoder) encodeLogicConnective(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	ra := e.Builder.Reduce(solver.ReduceOr, aD.val)
	rb := e.Builder.Reduce(solver.ReduceOr, bD.val)

	var bit solver.Literal
	if cell.Family() == netlist.LogicAnd {
		bit = e.Builder.And(ra, rb)
	} else {
		bit = e.Builder.Or(ra, rb)
	}

	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, e.trueLiteralVector(bit, uint(len(yy))))

	if e.Config.ModelUndef {
		raUndef := e.computeReduceUndef(netlist.ReduceBool, aD.val, aD.undef)
		rbUndef := e.computeReduceUndef(netlist.ReduceBool, bD.val, bD.undef)

		var undefBit solver.Literal

		if cell.Family() == netlist.LogicAnd {
			forced0 := e.Builder.Or(
				e.Builder.And(e.Builder.Not(raUndef), e.Builder.Not(ra)),
				e.Builder.And(e.Builder.Not(rbUndef), e.Builder.Not(rb)),
			)
			undefBit = e.Builder.And(e.Builder.Or(raUndef, rbUndef), e.Builder.Not(forced0))
		} else {
			forced1 := e.Builder.Or(
				e.Builder.And(e.Builder.Not(raUndef), ra),
				e.Builder.And(e.Builder.Not(rbUndef), rb),
			)
			undefBit = e.Builder.And(e.Builder.Or(raUndef, rbUndef), e.Builder.Not(forced1))
		}

		e.Builder.Set(yD.undef, e.falseVectorExceptFirst(undefBit, uint(len(yD.undef))))
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

// --- comparisons ----------------------------------------------------------

func (e *Encoder) encodeCompare(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	signed := cell.ASigned() && cell.BSigned()
	aVal, bVal := e.Aligner.AlignBinary(aD.val, bD.val, cell.ASigned(), cell.BSigned(), false, 0)

	var bit solver.Literal

	switch cell.Family() {
	case netlist.Lt:
		if signed {
			bit = e.Builder.LtSigned(aVal, bVal)
		} else {
			bit = e.Builder.LtUnsigned(aVal, bVal)
		}
	case netlist.Le:
		if signed {
			bit = e.Builder.LeSigned(aVal, bVal)
		} else {
			bit = e.Builder.LeUnsigned(aVal, bVal)
		}
	case netlist.Ge:
		if signed {
			bit = e.Builder.GeSigned(aVal, bVal)
		} else {
			bit = e.Builder.GeUnsigned(aVal, bVal)
		}
	case netlist.Gt:
		if signed {
			bit = e.Builder.GtSigned(aVal, bVal)
		} else {
			bit = e.Builder.GtUnsigned(aVal, bVal)
		}
	case netlist.Eq:
		bit = e.Builder.Eq(aVal, bVal)
	case netlist.Ne:
		bit = e.Builder.Ne(aVal, bVal)
	}

	yy := e.freshOrY(yD.val)
	e.Builder.Set(yy, e.trueLiteralVector(bit, uint(len(yy))))

	if e.Config.ModelUndef {
		aUndef, bUndef := e.Aligner.AlignBinary(aD.undef, bD.undef, false, false, false, uint(len(aVal)))
		anyUndef := e.Builder.Or(e.Builder.Reduce(solver.ReduceOr, aUndef), e.Builder.Reduce(solver.ReduceOr, bUndef))

		var undefBit solver.Literal

		switch cell.Family() {
		case netlist.Eq, netlist.Ne:
			masked := e.maskedEqualityUndef(aVal, bVal, aUndef, bUndef)
			undefBit = e.Builder.And(anyUndef, masked)
		default:
			undefBit = anyUndef
		}

		e.Builder.Set(yD.undef, e.falseVectorExceptFirst(undefBit, uint(len(yD.undef))))
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

// maskedEqualityUndef reports whether, masking out every bit where either
// operand's companion undef bit is set, the remaining defined bits fail to
// separate a from b — i.e. the comparison's outcome genuinely depends on
// an undef bit.
func (e *Encoder) maskedEqualityUndef(a, b, ax, bx solver.Vector) solver.Literal {
	separated := e.Builder.False()

	for i := range a {
		masked := e.Builder.Or(ax[i], bx[i])
		differs := e.Builder.And(e.Builder.Not(masked), e.Builder.Xor(a[i], b[i]))
		separated = e.Builder.Or(separated, differs)
	}

	return e.Builder.Not(separated)
}

func (e *Encoder) encodeStrictCompare(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aVal, bVal := e.Aligner.AlignBinary(aD.val, bD.val, cell.ASigned(), cell.BSigned(), false, 0)

	aCmp, bCmp := aVal, bVal

	if e.Config.ModelUndef {
		aUndef, bUndef := e.Aligner.AlignBinary(aD.undef, bD.undef, false, false, false, uint(len(aVal)))
		aCmp = e.Builder.VecOr(aVal, aUndef)
		bCmp = e.Builder.VecOr(bVal, bUndef)
	}

	eqLit := e.Builder.Eq(aCmp, bCmp)

	bit := eqLit
	if cell.Family() == netlist.Nex {
		bit = e.Builder.Not(eqLit)
	}

	e.Builder.Set(yD.val, e.trueLiteralVector(bit, uint(len(yD.val))))

	if e.Config.ModelUndef {
		e.Builder.Set(yD.undef, e.falseVector(uint(len(yD.undef))))
	}

	return nil
}

// --- shifts -----------------------------------------------------------

// barrelShift shifts val by the amount encoded in shAmt (binary, unsigned),
// filling vacated bits with FALSE when shifting left and, when shifting
// right, with a per-iteration fill literal that is the current top bit (the
// sign bit) when signed is true, else FALSE. left selects direction. The shift is built as |shAmt| conditional
// power-of-two shifts; the step itself is capped at 2^30 to bound the
// variable blow-up from computing 1<<i for large i, but every bit of
// shAmt above index 30 still applies that capped step, matching a
// hardware barrel shifter's structure.
func (e *Encoder) barrelShift(val, shAmt solver.Vector, left, signed bool) solver.Vector {
	width := len(val)
	cur := val

	for i, selBit := range shAmt {
		shiftBits := uint(i)
		if shiftBits > 30 {
			shiftBits = 30
		}

		step := uint64(1) << shiftBits

		shifted := make(solver.Vector, width)

		var fill solver.Literal
		if signed && !left && len(cur) > 0 {
			fill = cur[len(cur)-1]
		} else {
			fill = e.Builder.False()
		}

		for j := 0; j < width; j++ {
			var src int
			if left {
				src = j - int(step)
			} else {
				src = j + int(step)
			}

			if src < 0 || src >= width {
				shifted[j] = fill
			} else {
				shifted[j] = cur[src]
			}
		}

		cur = e.Builder.VecIte(selBit, shifted, cur)
	}

	return cur
}

func (e *Encoder) encodeShift(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	family := cell.Family()
	left := family == netlist.Shl || family == netlist.Sshl
	signed := (family == netlist.Sshr) && cell.ASigned()

	aVal, _ := e.Aligner.AlignUnary(aD.val, yD.val, cell.ASigned(), false)
	yy := e.freshOrY(yD.val)

	result := e.barrelShift(aVal, bD.val, left, signed)
	e.Builder.Set(yy, result)

	if e.Config.ModelUndef {
		aUndef, _ := e.Aligner.AlignUnary(aD.undef, e.falseVector(uint(len(yy))), false, false)
		shiftedUndef := e.barrelShift(aUndef, bD.val, left, signed)

		bAnyUndef := e.Builder.Reduce(solver.ReduceOr, bD.undef)
		undefY := make(solver.Vector, len(shiftedUndef))

		for i := range undefY {
			undefY[i] = e.Builder.Or(shiftedUndef[i], bAnyUndef)
		}

		e.Builder.Set(yD.undef, undefY)
		e.gate(yD.val, yy, yD.undef)
	}

	return nil
}

// --- arithmetic ---------------------------------------------------------

func (e *Encoder) encodeAddSub(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aVal, bVal, yExt := e.Aligner.AlignBinaryY(aD.val, bD.val, yD.val, cell.ASigned(), cell.BSigned(), false)
	yy := e.freshOrY(yExt)

	var result solver.Vector
	if cell.Family() == netlist.Add {
		result = e.Builder.Add(aVal, bVal)
	} else {
		result = e.Builder.Sub(aVal, bVal)
	}

	e.Builder.Set(yy, result)

	if e.Config.ModelUndef {
		undefYExt := e.setArithUndef(yD, aD.undef, bD.undef, uint(len(yExt)))
		e.gate(yExt, yy, undefYExt)
	}

	return nil
}

// setArithUndef implements "any undef bit in either operand forces every
// output undef bit to 1", shared by add/sub/mul and by div/mod under
// DivZeroAssumeNonzero. The undef companion is
// grown to width w with fresh literals first, matching the value layer's
// own alignment, and the grown vector is returned for the caller's gate
// call. Under DivZeroDefined, encodeDivMod folds this same rule in directly
// alongside its extra divide-by-zero disjunct.
func (e *Encoder) setArithUndef(yD dual, aUndef, bUndef solver.Vector, w uint) solver.Vector {
	forced := e.Builder.Or(e.Builder.Reduce(solver.ReduceOr, aUndef), e.Builder.Reduce(solver.ReduceOr, bUndef))

	undefYExt := e.Aligner.extendFresh(yD.undef, w)

	out := make(solver.Vector, len(undefYExt))
	for i := range out {
		out[i] = forced
	}

	e.Builder.Set(undefYExt, out)

	return undefYExt
}

func (e *Encoder) encodeMul(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aVal, bVal, yExt := e.Aligner.AlignBinaryY(aD.val, bD.val, yD.val, cell.ASigned(), cell.BSigned(), false)
	width := len(aVal)

	acc := e.falseVector(uint(width))

	for i, bBit := range bVal {
		shifted := make(solver.Vector, width)
		for j := 0; j < width; j++ {
			src := j - i
			if src < 0 {
				shifted[j] = e.Builder.False()
			} else {
				shifted[j] = aVal[src]
			}
		}

		term := e.Builder.VecIte(bBit, shifted, e.falseVector(uint(width)))
		acc = e.Builder.Add(acc, term)
	}

	yy := e.freshOrY(yExt)
	e.Builder.Set(yy, acc)

	if e.Config.ModelUndef {
		undefYExt := e.setArithUndef(yD, aD.undef, bD.undef, uint(len(yExt)))
		e.gate(yExt, yy, undefYExt)
	}

	return nil
}

// encodeDivMod implements restoring long division over unsigned
// magnitudes, then reapplies the two operands' signs: the quotient's sign
// is the XOR of the operand sign bits, and the remainder takes the
// dividend's sign, matching how two's-complement division is conventionally
// defined in terms of its unsigned counterpart.
func (e *Encoder) encodeDivMod(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	aWidth, bWidth := uint(len(aD.val)), uint(len(bD.val))

	signed := cell.ASigned() && cell.BSigned()
	aVal, bVal, yExt := e.Aligner.AlignBinaryY(aD.val, bD.val, yD.val, cell.ASigned(), cell.BSigned(), false)
	width := len(aVal)

	var aSign, bSign solver.Literal
	if signed {
		aSign, bSign = aVal[width-1], bVal[width-1]
	} else {
		aSign, bSign = e.Builder.False(), e.Builder.False()
	}

	aMag := e.Builder.VecIte(aSign, e.Builder.Sub(e.falseVector(uint(width)), aVal), aVal)
	bMag := e.Builder.VecIte(bSign, e.Builder.Sub(e.falseVector(uint(width)), bVal), bVal)

	quotMag, remMag := e.restoringDivide(aMag, bMag)

	quotSign := e.Builder.Xor(aSign, bSign)
	remSign := aSign

	quot := e.Builder.VecIte(quotSign, e.Builder.Sub(e.falseVector(uint(width)), quotMag), quotMag)
	rem := e.Builder.VecIte(remSign, e.Builder.Sub(e.falseVector(uint(width)), remMag), remMag)

	bIsZero := e.Builder.Not(e.Builder.Reduce(solver.ReduceOr, bVal))

	var result solver.Vector

	switch {
	case e.Config.DivZeroPolicy == DivZeroAssumeNonzero:
		e.Builder.Assume(e.Builder.Not(bIsZero))

		if cell.Family() == netlist.Div {
			result = quot
		} else {
			result = rem
		}
	default: // DivZeroDefined
		var zeroResult solver.Vector

		switch cell.Family() {
		case netlist.Div:
			if !signed {
				zeroResult = e.divZeroUnsignedResult(aWidth, uint(width))
			} else {
				// All-ones (-1) when a is non-negative, else a single
				// low-bit set (the most negative representable quotient
				// magnitude's sign flips to +1).
				allOnes := e.allOnes(uint(width))
				oneOnly := e.falseVector(uint(width))
				oneOnly[0] = e.Builder.True()
				zeroResult = e.Builder.VecIte(aSign, oneOnly, allOnes)
			}

			result = e.Builder.VecIte(bIsZero, zeroResult, quot)
		default: // Mod
			// The low min(|A|,|B|) bits of a, padded with zero (unsigned)
			// or the sign of a (signed) — i.e. dividing by zero leaves the
			// dividend as its own remainder, truncated/padded to width.
			zeroResult := e.modZeroResult(aVal, aWidth, bWidth, uint(width), signed)
			result = e.Builder.VecIte(bIsZero, zeroResult, rem)
		}
	}

	yy := e.freshOrY(yExt)
	e.Builder.Set(yy, result)

	if e.Config.ModelUndef {
		var undefYExt solver.Vector

		if e.Config.DivZeroPolicy != DivZeroDefined {
			undefYExt = e.setArithUndef(yD, aD.undef, bD.undef, uint(len(yExt)))
		} else {
			undefYExt = e.Aligner.extendFresh(yD.undef, uint(len(yExt)))
			bAnyUndef := e.Builder.Reduce(solver.ReduceOr, bD.undef)
			aAnyUndef := e.Builder.Reduce(solver.ReduceOr, aD.undef)
			forced := e.Builder.Or(bIsZero, bAnyUndef, aAnyUndef)
			undefY := make(solver.Vector, len(undefYExt))

			for i := range undefY {
				undefY[i] = forced
			}

			e.Builder.Set(undefYExt, undefY)
		}

		e.gate(yExt, yy, undefYExt)
	}

	return nil
}

func (e *Encoder) allOnes(w uint) solver.Vector {
	out := make(solver.Vector, w)
	for i := range out {
		out[i] = e.Builder.True()
	}

	return out
}

// divZeroUnsignedResult builds the unsigned $div-by-zero result: aWidth
// ones (aWidth being A's width before alignment, not the aligned width w)
// followed by zero padding up to w.
func (e *Encoder) divZeroUnsignedResult(aWidth, w uint) solver.Vector {
	out := make(solver.Vector, w)

	for i := uint(0); i < w; i++ {
		if i < aWidth {
			out[i] = e.Builder.True()
		} else {
			out[i] = e.Builder.False()
		}
	}

	return out
}

// modZeroResult builds the $mod-by-zero result: the low min(aWidth, bWidth)
// bits of (aligned) a, padded with zero (unsigned) or a's own sign
// (signed) up to w.
func (e *Encoder) modZeroResult(aVal solver.Vector, aWidth, bWidth, w uint, signed bool) solver.Vector {
	copyBits := aWidth
	if bWidth < copyBits {
		copyBits = bWidth
	}

	out := make(solver.Vector, w)

	for i := uint(0); i < w; i++ {
		switch {
		case i < copyBits:
			out[i] = aVal[i]
		case signed && copyBits > 0:
			out[i] = out[copyBits-1]
		default:
			out[i] = e.Builder.False()
		}
	}

	return out
}

// restoringDivide computes unsigned a/b and a%b over equal-width vectors
// using the textbook restoring-division shift-subtract loop, MSB-first.
func (e *Encoder) restoringDivide(a, b solver.Vector) (solver.Vector, solver.Vector) {
	width := len(a)
	quot := make(solver.Vector, width)
	rem := e.falseVector(uint(width))

	for i := width - 1; i >= 0; i-- {
		// rem = (rem << 1) | a[i]
		shifted := make(solver.Vector, width)
		shifted[0] = a[i]

		for j := 1; j < width; j++ {
			shifted[j] = rem[j-1]
		}

		ge := e.Builder.GeUnsigned(shifted, b)
		sub := e.Builder.Sub(shifted, b)
		rem = e.Builder.VecIte(ge, sub, shifted)
		quot[i] = ge
	}

	return quot, rem
}

// --- slice / concat -------------------------------------------------------

func (e *Encoder) encodeSlice(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	offset := cell.ParamUint("OFFSET")
	width := uint(len(yD.val))

	if offset+width > uint(len(aD.val)) {
		panic(fmt.Sprintf("translate: $slice cell %q reads past the end of A", cell.Name))
	}

	e.Builder.Set(yD.val, aD.val[offset:offset+width])

	if e.Config.ModelUndef {
		e.Builder.Set(yD.undef, aD.undef[offset:offset+width])
	}

	return nil
}

func (e *Encoder) encodeConcat(cell *netlist.Cell, timestep int) error {
	aD := e.importDual(cell.Port("A"), timestep)
	bD := e.importDual(cell.Port("B"), timestep)
	yD := e.importDual(cell.Port("Y"), timestep)

	combined := append(append(solver.Vector{}, aD.val...), bD.val...)
	e.Builder.Set(yD.val, combined)

	if e.Config.ModelUndef {
		combinedUndef := append(append(solver.Vector{}, aD.undef...), bD.undef...)
		e.Builder.Set(yD.undef, combinedUndef)
	}

	return nil
}

// --- dff / assert ---------------------------------------------------------

// encodeDff implements the D-flip-flop family: at timestep 1 or below (the
// initial cycle, or no timestep at all) Q is left unconstrained here and instead reported to
// Config.InitialStateSet, if set, so a caller can track the signals that
// make up the initial-state set (e.g. to cross-reference a wire's "init"
// attribute via pkg/procinit) — and at every later timestep Q@t is pinned
// to D@(t-1), value and undef companion alike. Clock polarity and
// asynchronous resets are not modelled; _DFF_N_/_DFF_P_ behave identically
// to $dff here.
func (e *Encoder) encodeDff(cell *netlist.Cell, timestep int) error {
	if timestep <= 1 {
		if e.Config.InitialStateSet != nil {
			e.Config.InitialStateSet(cell.Port("Q"))
		}

		return nil
	}

	dD := e.importDual(cell.Port("D"), timestep-1)
	qD := e.importDual(cell.Port("Q"), timestep)

	e.Builder.Set(qD.val, dD.val)

	if e.Config.ModelUndef {
		e.Builder.Set(qD.undef, dD.undef)
	}

	return nil
}

// encodeAssert appends this cell's A (check) and EN (enable) ports to the
// assertion envelope. No solver constraint is emitted here; aggregation
// happens once per timestep via Encoder.Aggregate.
func (e *Encoder) encodeAssert(cell *netlist.Cell, timestep int) error {
	e.Asserts.Append(e.Config.Prefix, timestep, cell.Port("A"), cell.Port("EN"))
	return nil
}
