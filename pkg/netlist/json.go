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
	"encoding/json"
	"fmt"
)

// jsonDesign is the on-disk fixture format consumed by "satcell encode" and
// "satcell solve". Field names mirror the data model directly so the format
// needs no documentation beyond this struct: it exists only so the CLI has
// something to read without an HDL front end.
type jsonDesign struct {
	Wires map[string]jsonWire            `json:"wires"`
	Cells map[string]jsonCell            `json:"cells"`
}

type jsonWire struct {
	Width      uint              `json:"width"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type jsonCell struct {
	Type        string              `json:"type"`
	Params      map[string]json.RawMessage `json:"params,omitempty"`
	Connections map[string][]string `json:"connections"`
}

// Design is an in-memory netlist: the wires it declares, keyed by name, and
// the cells it contains, keyed by instance name.
type Design struct {
	Wires map[string]*Wire
	Cells map[string]*Cell
}

// ParseDesign decodes a JSON netlist fixture.
func ParseDesign(data []byte) (*Design, error) {
	var jd jsonDesign

	if err := json.Unmarshal(data, &jd); err != nil {
		return nil, fmt.Errorf("parsing netlist: %w", err)
	}

	d := &Design{Wires: map[string]*Wire{}, Cells: map[string]*Cell{}}

	for name, jw := range jd.Wires {
		w := NewWire(name, jw.Width)
		for k, v := range jw.Attributes {
			w.Attributes[k] = v
		}

		d.Wires[name] = w
	}

	for name, jc := range jd.Cells {
		c := NewCell(name, CellType(jc.Type))

		for k, raw := range jc.Params {
			var asBool bool
			if err := json.Unmarshal(raw, &asBool); err == nil {
				c.Params[k] = BoolParam(asBool)
				continue
			}

			var asUint uint
			if err := json.Unmarshal(raw, &asUint); err != nil {
				return nil, fmt.Errorf("cell %q: param %q is neither bool nor uint", name, k)
			}

			c.Params[k] = UintParam(asUint)
		}

		for port, toks := range jc.Connections {
			vec, err := parseBitTokens(d, toks)
			if err != nil {
				return nil, fmt.Errorf("cell %q port %q: %w", name, port, err)
			}

			c.Connections[port] = vec
		}

		d.Cells[name] = c
	}

	return d, nil
}

// ParseBitTokens resolves a list of port tokens (constants or
// "<wire>[<offset>]" references into d's declared wires) into a Vector.
// Exported for the fsm-opt/proc-init CLI fixtures, which reference the same
// wire declarations but have no cell ports of their own to drive
// ParseDesign.
func ParseBitTokens(d *Design, toks []string) (Vector, error) {
	return parseBitTokens(d, toks)
}

// parseBitTokens turns a list of port tokens into a Vector, least
// significant first. Each token is either a literal constant ("0", "1",
// "x", "z") or "<wire>[<offset>]" ("<wire>" alone is shorthand for offset
// 0 on a single-bit wire).
func parseBitTokens(d *Design, toks []string) (Vector, error) {
	vec := make(Vector, 0, len(toks))

	for _, tok := range toks {
		switch tok {
		case "0":
			vec = append(vec, ConstBit(S0))
			continue
		case "1":
			vec = append(vec, ConstBit(S1))
			continue
		case "x":
			vec = append(vec, ConstBit(Sx))
			continue
		case "z":
			vec = append(vec, ConstBit(Sz))
			continue
		}

		name, offset, err := splitWireToken(tok)
		if err != nil {
			return nil, err
		}

		w, ok := d.Wires[name]
		if !ok {
			return nil, fmt.Errorf("reference to undeclared wire %q", name)
		}

		vec = append(vec, WireBit(w, offset))
	}

	return vec, nil
}

func splitWireToken(tok string) (name string, offset uint, err error) {
	for i, c := range tok {
		if c == '[' {
			if tok[len(tok)-1] != ']' {
				return "", 0, fmt.Errorf("malformed signal reference %q", tok)
			}

			var off uint

			if _, err := fmt.Sscanf(tok[i+1:len(tok)-1], "%d", &off); err != nil {
				return "", 0, fmt.Errorf("malformed bit offset in %q: %w", tok, err)
			}

			return tok[:i], off, nil
		}
	}

	return tok, 0, nil
}
