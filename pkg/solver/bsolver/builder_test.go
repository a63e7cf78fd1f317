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

import (
	"testing"

	"github.com/synthsat/satcell/pkg/solver"
	"github.com/synthsat/satcell/pkg/util/assert"
)

var _ solver.Builder = (*Solver)(nil)

func Test_Solver_Not_00(t *testing.T) {
	s := New()
	a := s.Fresh()
	y := s.Not(a)
	s.Assume(a)

	ok, m := s.Solve()
	assert.Equal(t, true, ok)
	assert.Equal(t, true, m.Value(a))
	assert.Equal(t, false, m.Value(y))
}

func Test_Solver_And_Unsat_00(t *testing.T) {
	s := New()
	a := s.Fresh()
	y := s.And(a, s.Not(a))
	s.Assume(y)

	ok, _ := s.Solve()
	assert.Equal(t, false, ok)
}

func Test_Solver_Xor_00(t *testing.T) {
	s := New()
	a, b := s.Fresh(), s.Fresh()
	y := s.Xor(a, b)
	s.Assume(a)
	s.Assume(s.Not(b))

	ok, m := s.Solve()
	assert.Equal(t, true, ok)
	assert.Equal(t, true, m.Value(y))
}

func Test_Solver_Ite_00(t *testing.T) {
	s := New()
	cond := s.False()
	t1, f1 := s.True(), s.False()
	y := s.Ite(cond, t1, f1)

	ok, m := s.Solve()
	assert.Equal(t, true, ok)
	assert.Equal(t, false, m.Value(y))
}

func Test_Solver_Add_00(t *testing.T) {
	s := New()
	a := s.FreshVector(4)
	b := s.FreshVector(4)
	sum := s.Add(a, b)

	// 3 + 5 = 8, which still fits in 4 bits (1000), so nothing wraps.
	s.Set(a, constVector(s, 3, 4))
	s.Set(b, constVector(s, 5, 4))

	ok, m := s.Solve()
	assert.Equal(t, true, ok)
	assert.Equal(t, uint(8), bitsToUint(m.ValueVector(sum)))
}

func Test_Solver_Sub_00(t *testing.T) {
	s := New()
	a := s.FreshVector(4)
	b := s.FreshVector(4)
	diff := s.Sub(a, b)

	s.Set(a, constVector(s, 5, 4))
	s.Set(b, constVector(s, 3, 4))

	ok, m := s.Solve()
	assert.Equal(t, true, ok)
	assert.Equal(t, uint(2), bitsToUint(m.ValueVector(diff)))
}

func Test_Solver_LtUnsigned_00(t *testing.T) {
	s := New()
	a := constVector(s, 3, 4)
	b := constVector(s, 5, 4)
	y := s.LtUnsigned(a, b)
	s.Assume(y)

	ok, _ := s.Solve()
	assert.Equal(t, true, ok)
}

func Test_Solver_LtSigned_00(t *testing.T) {
	s := New()
	// -1 (1111) should be LtSigned than 1 (0001) in a 4-bit two's
	// complement reading, even though -1 is unsigned-greater.
	a := constVector(s, 15, 4)
	b := constVector(s, 1, 4)
	y := s.LtSigned(a, b)
	s.Assume(y)

	ok, _ := s.Solve()
	assert.Equal(t, true, ok)
}

func Test_Solver_Onehot_00(t *testing.T) {
	s := New()
	vec := s.FreshVector(3)
	y := s.Onehot(vec, false)
	s.Assume(y)
	s.Assume(s.Not(vec[0]))
	s.Assume(s.Not(vec[1]))

	ok, m := s.Solve()
	assert.Equal(t, true, ok)
	assert.Equal(t, true, m.Value(vec[2]))
}

func Test_Solver_Onehot_RejectsAllZero_00(t *testing.T) {
	s := New()
	vec := s.FreshVector(2)
	y := s.Onehot(vec, false)
	s.Assume(y)
	s.Assume(s.Not(vec[0]))
	s.Assume(s.Not(vec[1]))

	ok, _ := s.Solve()
	assert.Equal(t, false, ok)
}

func Test_Solver_Frozen_Idempotent_00(t *testing.T) {
	s := New()
	a := s.Frozen("sig.a")
	b := s.Frozen("sig.a")
	assert.Equal(t, a, b)
}

// constVector returns value as a width-bit vector of the solver's reserved
// True/False literals, least-significant bit first.
func constVector(s *Solver, value uint, width uint) solver.Vector {
	vec := make(solver.Vector, width)
	for i := uint(0); i < width; i++ {
		if (value>>i)&1 == 1 {
			vec[i] = s.True()
		} else {
			vec[i] = s.False()
		}
	}

	return vec
}

func bitsToUint(bits []bool) uint {
	var v uint
	for i, b := range bits {
		if b {
			v |= 1 << uint(i)
		}
	}

	return v
}
