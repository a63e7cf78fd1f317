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
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/synthsat/satcell/pkg/util"
)

// Wire is a named bundle of a fixed bit-width carrying an attribute
// dictionary. The two attributes the core itself interprets are
// "unused_bits" (a space-separated list of bit indices, consumed by the FSM
// optimiser's dead-output pass) and "init" (a constant, written by
// pkg/procinit and otherwise opaque to this package).
type Wire struct {
	Name       string
	Width      uint
	Attributes map[string]string
}

// NewWire constructs a wire with an empty attribute set.
func NewWire(name string, width uint) *Wire {
	return &Wire{Name: name, Width: width, Attributes: map[string]string{}}
}

// UnusedBits parses the "unused_bits" attribute into a bitset over this
// wire's bit indices. The option is empty when the attribute is absent (as
// opposed to present-but-empty).
func (w *Wire) UnusedBits() util.Option[*bitset.BitSet] {
	raw, ok := w.Attributes["unused_bits"]
	if !ok {
		return util.None[*bitset.BitSet]()
	}

	bs := bitset.New(w.Width)

	for _, tok := range strings.Fields(raw) {
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 {
			panic("wire " + w.Name + ": malformed unused_bits attribute: " + raw)
		}

		bs.Set(uint(idx))
	}

	return util.Some(bs)
}

// Bit returns a Bit referencing the i'th bit of this wire.
func (w *Wire) Bit(i uint) Bit {
	return WireBit(w, i)
}

// Vector returns a Vector referencing every bit of this wire,
// least-significant first.
func (w *Wire) Vector() Vector {
	vec := make(Vector, w.Width)
	for i := range vec {
		vec[i] = w.Bit(uint(i))
	}

	return vec
}
