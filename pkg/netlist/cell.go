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

import "fmt"

// CellType identifies a cell family. The tag set is closed and matches
// spec.md §6 exactly, including the low-level gate spellings that are
// synonyms for their higher-level form.
type CellType string

// Combinational cell types.
const (
	And        CellType = "and"
	Or         CellType = "or"
	Xor        CellType = "xor"
	Xnor       CellType = "xnor"
	Not        CellType = "not"
	Mux        CellType = "mux"
	Pmux       CellType = "pmux"
	SafePmux   CellType = "safe_pmux"
	Pos        CellType = "pos"
	Bu0        CellType = "bu0"
	Neg        CellType = "neg"
	ReduceAnd  CellType = "reduce_and"
	ReduceOr   CellType = "reduce_or"
	ReduceXor  CellType = "reduce_xor"
	ReduceXnor CellType = "reduce_xnor"
	ReduceBool CellType = "reduce_bool"
	LogicNot   CellType = "logic_not"
	LogicAnd   CellType = "logic_and"
	LogicOr    CellType = "logic_or"
	Lt         CellType = "lt"
	Le         CellType = "le"
	Eq         CellType = "eq"
	Ne         CellType = "ne"
	Eqx        CellType = "eqx"
	Nex        CellType = "nex"
	Ge         CellType = "ge"
	Gt         CellType = "gt"
	Shl        CellType = "shl"
	Shr        CellType = "shr"
	Sshl       CellType = "sshl"
	Sshr       CellType = "sshr"
	Add        CellType = "add"
	Sub        CellType = "sub"
	Mul        CellType = "mul"
	Div        CellType = "div"
	Mod        CellType = "mod"
	Slice      CellType = "slice"
	Concat     CellType = "concat"
)

// Sequential cell types.
const (
	Dff    CellType = "dff"
	DffNeg CellType = "_DFF_N_"
	DffPos CellType = "_DFF_P_"
)

// Verification cell type.
const Assert CellType = "assert"

// Internal gate spellings, synonymous with their higher-level form.
const (
	GateAnd CellType = "_AND_"
	GateOr  CellType = "_OR_"
	GateXor CellType = "_XOR_"
	GateInv CellType = "_INV_"
	GateMux CellType = "_MUX_"
)

// canonicalType resolves internal gate spellings and DFF polarity variants
// down to the family the encoder actually dispatches on.
func canonicalType(t CellType) CellType {
	switch t {
	case GateAnd:
		return And
	case GateOr:
		return Or
	case GateXor:
		return Xor
	case GateInv:
		return Not
	case GateMux:
		return Mux
	case DffNeg, DffPos:
		return Dff
	default:
		return t
	}
}

// Param is a single cell parameter value: either an unsigned width/offset
// or a boolean signedness flag. Centralising the two accessors here means a
// wrong-kind lookup panics in one place instead of at every call site that
// would otherwise type-assert an `any`.
type Param struct {
	isBool bool
	u      uint
	b      bool
}

// UintParam constructs an unsigned parameter (width, offset, and the like).
func UintParam(v uint) Param {
	return Param{u: v}
}

// BoolParam constructs a boolean parameter (signedness flags).
func BoolParam(v bool) Param {
	return Param{isBool: true, b: v}
}

// Uint returns the unsigned value of this parameter, panicking if it is a
// boolean.
func (p Param) Uint() uint {
	if p.isBool {
		panic("parameter is boolean, not unsigned")
	}

	return p.u
}

// Bool returns the boolean value of this parameter; an unsigned parameter
// reads as false rather than panicking. A missing parameter (the zero
// Param) therefore also reads as false, matching
// the teacher's and yosys's convention that an absent *_SIGNED parameter
// means "unsigned".
func (p Param) Bool() bool {
	return p.b
}

// Cell is a single typed netlist node: a type tag, a parameter dictionary
// and a connection map from port name to signal vector.
type Cell struct {
	Name        string
	Type        CellType
	Params      map[string]Param
	Connections map[string]Vector
}

// NewCell constructs a cell with empty parameter/connection maps.
func NewCell(name string, t CellType) *Cell {
	return &Cell{
		Name:        name,
		Type:        t,
		Params:      map[string]Param{},
		Connections: map[string]Vector{},
	}
}

// Family returns the canonical cell family this cell belongs to, resolving
// internal gate spellings and DFF polarity variants.
func (c *Cell) Family() CellType {
	return canonicalType(c.Type)
}

// Port returns the signal vector connected to the named port, panicking
// (a programmer error per spec.md §7) if the port is absent — every port a
// cell's family requires must be present by construction.
func (c *Cell) Port(name string) Vector {
	v, ok := c.Connections[name]
	if !ok {
		panic(fmt.Sprintf("cell %q (%s): missing required port %q", c.Name, c.Type, name))
	}

	return v
}

// ParamUint returns an unsigned parameter, defaulting to 0 when absent.
func (c *Cell) ParamUint(name string) uint {
	if p, ok := c.Params[name]; ok {
		return p.Uint()
	}

	return 0
}

// ParamBool returns a boolean parameter, defaulting to false when absent.
func (c *Cell) ParamBool(name string) bool {
	if p, ok := c.Params[name]; ok {
		return p.Bool()
	}

	return false
}

// ASigned and BSigned read the A_SIGNED/B_SIGNED parameters used throughout
// the arithmetic and comparison families.
func (c *Cell) ASigned() bool { return c.ParamBool("A_SIGNED") }
func (c *Cell) BSigned() bool { return c.ParamBool("B_SIGNED") }
