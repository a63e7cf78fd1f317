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
package netlist

import (
	"testing"

	"github.com/synthsat/satcell/pkg/util/assert"
)

func Test_Wire_UnusedBits_00(t *testing.T) {
	w := NewWire("ctrl", 4)

	assert.Equal(t, true, w.UnusedBits().IsEmpty())

	w.Attributes["unused_bits"] = "1 3"

	opt := w.UnusedBits()
	assert.Equal(t, true, opt.HasValue())

	bs := opt.Unwrap()
	assert.Equal(t, false, bs.Test(0))
	assert.Equal(t, true, bs.Test(1))
	assert.Equal(t, false, bs.Test(2))
	assert.Equal(t, true, bs.Test(3))
}

func Test_Wire_Vector_00(t *testing.T) {
	w := NewWire("x", 3)
	v := w.Vector()
	assert.Equal(t, uint(3), v.Width())

	for i := uint(0); i < 3; i++ {
		assert.Equal(t, i, v[i].Offset)
		assert.Equal(t, w, v[i].Wire)
	}
}
