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

package bsolver

import "github.com/synthsat/satcell/pkg/solver"

// rippleAdd builds a full-adder chain across a and b (equal width), XORing
// each b bit with invertB first and seeding the carry chain with carryIn.
// Feeding invertB=true, carryIn=True implements two's-complement
// subtraction as addition of the negation, the textbook trick
// original_source's satgen.h itself leans on for $sub and $lt alike.
func (s *Solver) rippleAdd(a, b solver.Vector, invertB bool, carryIn solver.Literal) (solver.Vector, solver.Literal) {
	if len(a) != len(b) {
		panic("bsolver: vector width mismatch")
	}

	sum := make(solver.Vector, len(a))
	carry := carryIn

	for i := range a {
		bi := b[i]
		if invertB {
			bi = s.Not(bi)
		}

		axb := s.xor2(a[i], bi)
		sum[i] = s.xor2(axb, carry)

		// majority(a, b, carry) via the standard Tseitin definition of a
		// full adder's carry-out.
		m1 := s.And(a[i], bi)
		m2 := s.And(a[i], carry)
		m3 := s.And(bi, carry)
		carry = s.Or(m1, m2, m3)
	}

	return sum, carry
}

// Add implements solver.Builder.
func (s *Solver) Add(a, b solver.Vector) solver.Vector {
	sum, _ := s.rippleAdd(a, b, false, s.falseVar)
	return sum
}

// Sub implements solver.Builder: a - b = a + ^b + 1.
func (s *Solver) Sub(a, b solver.Vector) solver.Vector {
	diff, _ := s.rippleAdd(a, b, true, s.trueVar)
	return diff
}

// Neg implements solver.Builder: -a = 0 - a.
func (s *Solver) Neg(a solver.Vector) solver.Vector {
	zero := make(solver.Vector, len(a))
	for i := range zero {
		zero[i] = s.falseVar
	}

	return s.Sub(zero, a)
}

// geUnsigned reports whether a >= b (unsigned) by inspecting the carry-out
// of a + ^b + 1: a borrow (carry-out 0) means a < b.
func (s *Solver) geUnsigned(a, b solver.Vector) solver.Literal {
	_, carryOut := s.rippleAdd(a, b, true, s.trueVar)
	return carryOut
}

// LtUnsigned implements solver.Builder.
func (s *Solver) LtUnsigned(a, b solver.Vector) solver.Literal {
	return s.Not(s.geUnsigned(a, b))
}

// LeUnsigned implements solver.Builder.
func (s *Solver) LeUnsigned(a, b solver.Vector) solver.Literal {
	return s.geUnsigned(b, a)
}

// GeUnsigned implements solver.Builder.
func (s *Solver) GeUnsigned(a, b solver.Vector) solver.Literal {
	return s.geUnsigned(a, b)
}

// GtUnsigned implements solver.Builder.
func (s *Solver) GtUnsigned(a, b solver.Vector) solver.Literal {
	return s.Not(s.geUnsigned(b, a))
}

// flipSign returns a copy of v with its most-significant bit (the sign bit
// of a two's-complement value) inverted. Biasing both operands this way
// before an unsigned comparison reproduces signed ordering, since it maps
// [-2^(n-1), 2^(n-1)) onto [0, 2^n) monotonically.
func (s *Solver) flipSign(v solver.Vector) solver.Vector {
	if len(v) == 0 {
		return v
	}

	out := make(solver.Vector, len(v))
	copy(out, v)
	top := len(out) - 1
	out[top] = s.Not(out[top])

	return out
}

// LtSigned implements solver.Builder.
func (s *Solver) LtSigned(a, b solver.Vector) solver.Literal {
	return s.LtUnsigned(s.flipSign(a), s.flipSign(b))
}

// LeSigned implements solver.Builder.
func (s *Solver) LeSigned(a, b solver.Vector) solver.Literal {
	return s.LeUnsigned(s.flipSign(a), s.flipSign(b))
}

// GeSigned implements solver.Builder.
func (s *Solver) GeSigned(a, b solver.Vector) solver.Literal {
	return s.GeUnsigned(s.flipSign(a), s.flipSign(b))
}

// GtSigned implements solver.Builder.
func (s *Solver) GtSigned(a, b solver.Vector) solver.Literal {
	return s.GtUnsigned(s.flipSign(a), s.flipSign(b))
}
