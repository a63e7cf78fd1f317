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
package procinit

import (
	"testing"

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/util/assert"
)

func Test_Run_SetsInitAttributeAndRemovesSync_00(t *testing.T) {
	w := netlist.NewWire("q", 2)

	proc := &Process{
		Name: "p0",
		Syncs: []*SyncRule{
			{
				Type: SyncInit,
				Actions: []Action{
					{Lhs: w.Vector(), Rhs: netlist.Vector{netlist.ConstBit(netlist.S1), netlist.ConstBit(netlist.S0)}},
				},
			},
		},
	}

	err := Run("top", proc)
	assert.Equal(t, true, err == nil)
	assert.Equal(t, "01", w.Attributes["init"])
	assert.Equal(t, 0, len(proc.Syncs))
}

// The right-hand side references an intermediate wire defined by the root
// case's own assignments; InitFold must substitute through it before the
// fully-const check runs.
func Test_Run_FoldsThroughRootCaseActions_00(t *testing.T) {
	q := netlist.NewWire("q", 1)
	tmp := netlist.NewWire("tmp", 1)

	proc := &Process{
		Name: "p0",
		RootCase: CaseRule{
			Actions: []Action{
				{Lhs: tmp.Vector(), Rhs: netlist.Vector{netlist.ConstBit(netlist.S1)}},
			},
		},
		Syncs: []*SyncRule{
			{
				Type: SyncInit,
				Actions: []Action{
					{Lhs: q.Vector(), Rhs: tmp.Vector()},
				},
			},
		},
	}

	err := Run("top", proc)
	assert.Equal(t, true, err == nil)
	assert.Equal(t, "1", q.Attributes["init"])
}

func Test_Run_NonConstRhs_UserError_00(t *testing.T) {
	q := netlist.NewWire("q", 1)
	freeWire := netlist.NewWire("free", 1)

	proc := &Process{
		Name: "p0",
		Syncs: []*SyncRule{
			{
				Type: SyncInit,
				Actions: []Action{
					{Lhs: q.Vector(), Rhs: freeWire.Vector()},
				},
			},
		},
	}

	err := Run("top", proc)
	if err == nil {
		t.Fatal("expected a UserError")
	}

	if _, ok := err.(*netlist.UserError); !ok {
		t.Fatalf("expected *netlist.UserError, got %T", err)
	}
}

func Test_Run_PartialWireWidth_UserError_00(t *testing.T) {
	w := netlist.NewWire("q", 4)

	proc := &Process{
		Name: "p0",
		Syncs: []*SyncRule{
			{
				Type: SyncInit,
				// Only the low two bits of a four-bit wire are targeted.
				Actions: []Action{
					{Lhs: w.Vector().Slice(0, 2), Rhs: netlist.Vector{netlist.ConstBit(netlist.S1), netlist.ConstBit(netlist.S0)}},
				},
			},
		},
	}

	err := Run("top", proc)
	if _, ok := err.(*netlist.UserError); !ok {
		t.Fatalf("expected *netlist.UserError, got %T (%v)", err, err)
	}
}

// A non-init sync rule is left untouched, and RootCase/other syncs are
// unaffected when no init rule exists at all.
func Test_Run_NoInitRule_NoOp_00(t *testing.T) {
	proc := &Process{
		Name: "p0",
		Syncs: []*SyncRule{
			{Type: SyncEdgePos, Actions: []Action{}},
		},
	}

	err := Run("top", proc)
	assert.Equal(t, true, err == nil)
	assert.Equal(t, 1, len(proc.Syncs))
}
