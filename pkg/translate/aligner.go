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

import "github.com/synthsat/satcell/pkg/solver"

// WidthAligner extends operand vectors to a common width before a cell
// family's operator is applied, mirroring the sign/zero extension rules a
// hardware synthesiser's width-casting stage performs on each operand.
type WidthAligner struct {
	Builder solver.Builder
}

// NewWidthAligner constructs a WidthAligner over the given backend.
func NewWidthAligner(builder solver.Builder) *WidthAligner {
	return &WidthAligner{Builder: builder}
}

// extend pads v up to width w, repeating its most-significant bit when
// signed is true and v is non-empty, else padding with FALSE.
func (wa *WidthAligner) extend(v solver.Vector, w uint, signed bool) solver.Vector {
	if uint(len(v)) >= w {
		return v
	}

	out := make(solver.Vector, w)
	copy(out, v)

	var ext solver.Literal
	if signed && len(v) > 0 {
		ext = v[len(v)-1]
	} else {
		ext = wa.Builder.False()
	}

	for i := len(v); i < int(w); i++ {
		out[i] = ext
	}

	return out
}

// extendFresh pads v up to width w with newly allocated free literals,
// used where a port is allowed to grow with genuinely unconstrained bits
// rather than a sign/zero-extension pattern.
func (wa *WidthAligner) extendFresh(v solver.Vector, w uint) solver.Vector {
	if uint(len(v)) >= w {
		return v
	}

	out := make(solver.Vector, w)
	copy(out, v)

	for i := len(v); i < int(w); i++ {
		out[i] = wa.Builder.Fresh()
	}

	return out
}

func maxWidth(widths ...uint) uint {
	m := uint(0)
	for _, w := range widths {
		if w > m {
			m = w
		}
	}

	return m
}

// AlignBinary extends a and b to max(|a|, |b|, targetWidth). Signedness is
// forcedSigned || (aSigned && bSigned), matching the A_SIGNED/B_SIGNED
// parameter convention every arithmetic and comparison cell carries.
func (wa *WidthAligner) AlignBinary(
	a, b solver.Vector, aSigned, bSigned, forcedSigned bool, targetWidth uint,
) (solver.Vector, solver.Vector) {
	signed := forcedSigned || (aSigned && bSigned)
	w := maxWidth(uint(len(a)), uint(len(b)), targetWidth)

	return wa.extend(a, w, signed), wa.extend(b, w, signed)
}

// AlignBinaryY extends a and b to max(|a|, |b|, |y|) exactly as AlignBinary
// does, and additionally grows y itself to that same width with fresh
// literals when an operand is wider than y, mirroring the 3-argument
// extendSignalWidth(a, b, y, cell) form used by cell families whose result
// is bound straight back onto y (bitwise, add/sub, mul, div/mod) rather
// than reduced to a single comparison bit. Without this, a truncating
// binary cell (operand wider than Y, legal in RTLIL) would produce a
// result vector wider than y and fail to bind.
func (wa *WidthAligner) AlignBinaryY(
	a, b, y solver.Vector, aSigned, bSigned, forcedSigned bool,
) (solver.Vector, solver.Vector, solver.Vector) {
	signed := forcedSigned || (aSigned && bSigned)
	w := maxWidth(uint(len(a)), uint(len(b)), uint(len(y)))

	return wa.extend(a, w, signed), wa.extend(b, w, signed), wa.extendFresh(y, w)
}

// AlignUnary mutually extends a to |y| and y to |a|. a grows by
// sign/zero-extension (signed = forcedSigned || aSigned); y grows with
// fresh free literals, since a cell's output is never derived from its own
// prior width.
func (wa *WidthAligner) AlignUnary(a, y solver.Vector, aSigned, forcedSigned bool) (solver.Vector, solver.Vector) {
	signed := forcedSigned || aSigned
	w := maxWidth(uint(len(a)), uint(len(y)))

	return wa.extend(a, w, signed), wa.extendFresh(y, w)
}
