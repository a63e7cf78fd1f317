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

import "strings"

// Vector is an ordered sequence of Bit, least-significant bit first. Its
// width is simply its length; signedness is never stored on the vector
// itself, only interpreted by whichever cell consumes it.
type Vector []Bit

// NewVector constructs a vector from individual bits.
func NewVector(bits ...Bit) Vector {
	return Vector(bits)
}

// ConstVector builds a vector of width-many constant bits, all carrying the
// same state, least-significant first.
func ConstVector(v Const, width uint) Vector {
	vec := make(Vector, width)
	for i := range vec {
		vec[i] = ConstBit(v)
	}

	return vec
}

// Width returns the number of bits in this vector.
func (v Vector) Width() uint {
	return uint(len(v))
}

// Slice extracts width bits starting at offset, least-significant first
// (i.e. matching the $slice cell's semantics).
func (v Vector) Slice(offset, width uint) Vector {
	if offset+width > v.Width() {
		panic("vector slice out of range")
	}

	out := make(Vector, width)
	copy(out, v[offset:offset+width])

	return out
}

// Concat appends other after this vector's bits (this vector occupies the
// low bits), matching the $concat cell's semantics.
func (v Vector) Concat(other Vector) Vector {
	out := make(Vector, 0, v.Width()+other.Width())
	out = append(out, v...)
	out = append(out, other...)

	return out
}

// Remove returns a copy of this vector with bit i deleted, used by the FSM
// optimiser when a CTRL_IN/CTRL_OUT column is merged or dropped.
func (v Vector) Remove(i uint) Vector {
	out := make(Vector, 0, len(v)-1)
	out = append(out, v[:i]...)
	out = append(out, v[i+1:]...)

	return out
}

// Equals performs a bit-for-bit comparison, used by proc_init's fixpoint
// substitution loop to detect convergence.
func (v Vector) Equals(other Vector) bool {
	if len(v) != len(other) {
		return false
	}

	for i := range v {
		if !v[i].Equals(other[i]) {
			return false
		}
	}

	return true
}

// IsFullyConst reports whether every bit of this vector is a literal
// constant.
func (v Vector) IsFullyConst() bool {
	for _, b := range v {
		if !b.IsConst() {
			return false
		}
	}

	return true
}

// HasUndef reports whether any bit of this vector is a constant x or z.
// Wire references are not inspected (their value is only known once the
// importer resolves them), so they never count as undef here.
func (v Vector) HasUndef() bool {
	for _, b := range v {
		if b.IsConst() && b.Value.IsUndef() {
			return true
		}
	}

	return false
}

// String renders the vector MSB-first, as is conventional for netlist
// dumps.
func (v Vector) String() string {
	var b strings.Builder

	for i := len(v) - 1; i >= 0; i-- {
		b.WriteString(v[i].String())
	}

	return b.String()
}
