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
package fsm

import (
	"testing"

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/util/assert"
)

func freeInputVector(n int) netlist.Vector {
	vec := make(netlist.Vector, n)
	for i := range vec {
		w := netlist.NewWire("i", 1)
		vec[i] = w.Bit(0)
	}

	return vec
}

// Four transitions sharing a (state_in, state_out) and ctrl_out, whose
// inputs range over every combination of two free bits with the third bit
// pinned to 0, collapse into a single pattern with the two free bits
// replaced by don't-cares.
func Test_Optimiser_FindDontCare_CollapsesToSinglePattern_00(t *testing.T) {
	c := &Cell{
		CtrlIn:  freeInputVector(3),
		CtrlOut: netlist.Vector{},
		Data: &netlist.FsmData{
			NumInputs:  3,
			NumOutputs: 0,
			NumStates:  2,
			Transitions: []netlist.Transition{
				{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P0, netlist.P0)},
				{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P0, netlist.P1)},
				{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P1, netlist.P0)},
				{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P1, netlist.P1)},
			},
		},
	}

	o := NewOptimiser("test")
	o.optFindDontCare(c)

	if len(c.Data.Transitions) != 1 {
		t.Fatalf("expected a single collapsed transition, got %d", len(c.Data.Transitions))
	}

	got := c.Data.Transitions[0].CtrlIn
	want := netlist.NewPattern(netlist.P0, netlist.PA, netlist.PA)
	assert.Equal(t, true, got.Equals(want))
}

// Two input columns driven by the same wire bit merge into one; a
// transition whose two copies of that signal conflict is dropped.
func Test_Optimiser_AliasInputs_MergesAndDropsConflicts_00(t *testing.T) {
	w := netlist.NewWire("s", 1)
	shared := w.Bit(0)
	other := netlist.NewWire("t", 1).Bit(0)

	c := &Cell{
		CtrlIn:  netlist.Vector{shared, shared, other},
		CtrlOut: netlist.Vector{},
		Data: &netlist.FsmData{
			NumInputs: 3,
			Transitions: []netlist.Transition{
				{CtrlIn: netlist.NewPattern(netlist.P0, netlist.P0, netlist.PX)}, // agrees, kept
				{CtrlIn: netlist.NewPattern(netlist.P0, netlist.P1, netlist.PX)}, // conflicts, dropped
				{CtrlIn: netlist.NewPattern(netlist.PX, netlist.P1, netlist.PX)}, // don't-care copies, kept
			},
		},
	}

	o := NewOptimiser("test")
	o.optAliasInputs(c)

	assert.Equal(t, uint(2), c.Data.NumInputs)
	assert.Equal(t, 2, len(c.Data.Transitions))
}

// An input column driven by the same bit as an output column is folded
// away: a transition survives only if its ctrl_in bit agrees (or is
// don't-care), and the merged column is dropped either way.
func Test_Optimiser_FeedbackInputs_00(t *testing.T) {
	w := netlist.NewWire("fb", 1)
	fb := w.Bit(0)

	c := &Cell{
		CtrlIn:  netlist.Vector{fb},
		CtrlOut: netlist.Vector{fb},
		Data: &netlist.FsmData{
			NumInputs:  1,
			NumOutputs: 1,
			Transitions: []netlist.Transition{
				{CtrlIn: netlist.NewPattern(netlist.P1), CtrlOut: netlist.NewPattern(netlist.P1)}, // matches, kept
				{CtrlIn: netlist.NewPattern(netlist.P0), CtrlOut: netlist.NewPattern(netlist.P1)}, // conflicts, dropped
				{CtrlIn: netlist.NewPattern(netlist.PX), CtrlOut: netlist.NewPattern(netlist.P0)}, // don't-care, kept
			},
		},
	}

	o := NewOptimiser("test")
	o.optFeedbackInputs(c)

	assert.Equal(t, uint(0), c.Data.NumInputs)
	assert.Equal(t, 2, len(c.Data.Transitions))
}

// An output column whose driving wire flags that bit unused is dropped
// from both the control vector and every transition's ctrl_out pattern.
func Test_Optimiser_UnusedOutputs_00(t *testing.T) {
	w := netlist.NewWire("o", 2)
	w.Attributes["unused_bits"] = "0"

	c := &Cell{
		CtrlIn:  netlist.Vector{},
		CtrlOut: netlist.Vector{w.Bit(0), w.Bit(1)},
		Data: &netlist.FsmData{
			NumOutputs: 2,
			Transitions: []netlist.Transition{
				{CtrlOut: netlist.NewPattern(netlist.P1, netlist.P0)},
			},
		},
	}

	o := NewOptimiser("test")
	o.optUnusedOutputs(c)

	assert.Equal(t, uint(1), c.Data.NumOutputs)
	assert.Equal(t, 1, len(c.CtrlOut))
	assert.Equal(t, true, c.Data.Transitions[0].CtrlOut.Equals(netlist.NewPattern(netlist.P0)))
}

// matches reports whether a concrete 0/1 input assignment satisfies a
// pattern (don't-care bits always match).
func matches(p netlist.Pattern, bits []netlist.PatternBit) bool {
	for i, pb := range p {
		if pb == netlist.PA {
			continue
		}

		if pb != bits[i] {
			return false
		}
	}

	return true
}

// The optimiser must not change the language of the FSM: for every
// possible 3-bit input assignment, exactly the same (state_in, state_out)
// transition fires before and after don't-care introduction.
func Test_Optimiser_FindDontCare_PreservesLanguage_00(t *testing.T) {
	before := []netlist.Transition{
		{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P0, netlist.P0)},
		{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P0, netlist.P1)},
		{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P1, netlist.P0)},
		{StateIn: 0, StateOut: 1, CtrlIn: netlist.NewPattern(netlist.P0, netlist.P1, netlist.P1)},
		{StateIn: 0, StateOut: 2, CtrlIn: netlist.NewPattern(netlist.P1, netlist.P0, netlist.P0)},
		{StateIn: 0, StateOut: 2, CtrlIn: netlist.NewPattern(netlist.P1, netlist.P0, netlist.P1)},
		{StateIn: 0, StateOut: 2, CtrlIn: netlist.NewPattern(netlist.P1, netlist.P1, netlist.P0)},
		{StateIn: 0, StateOut: 2, CtrlIn: netlist.NewPattern(netlist.P1, netlist.P1, netlist.P1)},
	}

	c := &Cell{
		CtrlIn:  freeInputVector(3),
		CtrlOut: netlist.Vector{},
		Data: &netlist.FsmData{
			NumInputs:   3,
			NumStates:   3,
			Transitions: append([]netlist.Transition(nil), before...),
		},
	}

	o := NewOptimiser("test")
	o.optFindDontCare(c)

	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for cc := 0; cc < 2; cc++ {
				assignment := []netlist.PatternBit{pb(a), pb(b), pb(cc)}

				wantOut := stateOutFor(before, assignment)
				gotOut := stateOutFor(c.Data.Transitions, assignment)

				if wantOut != gotOut {
					t.Fatalf("assignment %v: before state_out=%d after=%d", assignment, wantOut, gotOut)
				}
			}
		}
	}
}

func pb(v int) netlist.PatternBit {
	if v == 1 {
		return netlist.P1
	}

	return netlist.P0
}

func stateOutFor(transitions []netlist.Transition, assignment []netlist.PatternBit) uint {
	for _, tr := range transitions {
		if matches(tr.CtrlIn, assignment) {
			return tr.StateOut
		}
	}

	return ^uint(0)
}
