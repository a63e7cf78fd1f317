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

	"github.com/synthsat/satcell/pkg/solver/bsolver"
	"github.com/synthsat/satcell/pkg/util/assert"
)

func Test_WidthAligner_AlignBinary_ZeroExtend_00(t *testing.T) {
	s := bsolver.New()
	aligner := NewWidthAligner(s)

	a := s.FreshVector(2)
	b := s.FreshVector(4)

	newA, newB := aligner.AlignBinary(a, b, false, false, false, 0)
	assert.Equal(t, uint(4), newA.Width())
	assert.Equal(t, uint(4), newB.Width())
	assert.Equal(t, b[0], newB[0])

	s.Assume(s.Not(newA[2]))
	s.Assume(s.Not(newA[3]))

	ok, _ := s.Solve()
	assert.Equal(t, true, ok)
}

func Test_WidthAligner_AlignBinary_SignExtend_00(t *testing.T) {
	s := bsolver.New()
	aligner := NewWidthAligner(s)

	a := s.FreshVector(2)
	b := s.FreshVector(4)

	newA, _ := aligner.AlignBinary(a, b, true, true, false, 0)
	assert.Equal(t, a[1], newA[2])
	assert.Equal(t, a[1], newA[3])
}

func Test_WidthAligner_AlignUnary_GrowY_Fresh_00(t *testing.T) {
	s := bsolver.New()
	aligner := NewWidthAligner(s)

	a := s.FreshVector(4)
	y := s.FreshVector(2)

	newA, newY := aligner.AlignUnary(a, y, false, false)
	assert.Equal(t, uint(4), newA.Width())
	assert.Equal(t, uint(4), newY.Width())
	assert.Equal(t, y[0], newY[0])

	// the grown bits of y are free literals, independent of a.
	s.Assume(newY[2])
	s.Assume(s.Not(newY[3]))

	ok, _ := s.Solve()
	assert.Equal(t, true, ok)
}
