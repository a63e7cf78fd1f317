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

// Package fsm rewrites $fsm transition tables into an equivalent, smaller
// form: dropping dead outputs, merging aliased or feedback-driven inputs,
// and folding don't-cares into the pattern bits.
package fsm

import (
	log "github.com/sirupsen/logrus"

	"github.com/synthsat/satcell/pkg/netlist"
)

// Cell is the minimal view of an $fsm cell the optimiser needs: the control
// port vectors, alongside the transition table they index into.
type Cell struct {
	CtrlIn  netlist.Vector
	CtrlOut netlist.Vector
	Data    *netlist.FsmData
}

// Optimiser runs the fixed sequence of FSM table rewrites. It carries no
// state between calls; one instance may be reused across cells.
type Optimiser struct {
	Name string
}

// NewOptimiser constructs an Optimiser. name is used only in log lines, to
// identify which $fsm cell is being rewritten.
func NewOptimiser(name string) *Optimiser {
	return &Optimiser{Name: name}
}

// Optimise runs the five rewrites in sequence, mutating c.Data and c's
// control vectors in place. It is not reentrant for the same Cell.
func (o *Optimiser) Optimise(c *Cell) {
	log.Debugf("fsm: optimizing %q", o.Name)

	o.optUnusedOutputs(c)
	o.optAliasInputs(c)
	o.optFeedbackInputs(c)
	o.optFindDontCare(c)
	o.optConstAndUnusedInputs(c)
}

// signalIsUnused reports whether bit's driving wire marks this bit position
// as unused via its "unused_bits" attribute.
func signalIsUnused(bit netlist.Bit) bool {
	if bit.IsConst() {
		return false
	}

	unused := bit.Wire.UnusedBits()
	if unused.IsEmpty() {
		return false
	}

	return unused.Unwrap().Test(bit.Offset)
}

// optUnusedOutputs drops each output column whose driving wire bit is
// flagged unused, from both CtrlOut and every transition's CtrlOut pattern.
func (o *Optimiser) optUnusedOutputs(c *Cell) {
	for j := 0; j < int(c.Data.NumOutputs); j++ {
		if !signalIsUnused(c.CtrlOut[j]) {
			continue
		}

		log.Debugf("fsm: %q: removing unused output signal %s", o.Name, c.CtrlOut[j])

		c.CtrlOut = c.CtrlOut.Remove(uint(j))

		for i := range c.Data.Transitions {
			c.Data.Transitions[i].CtrlOut = c.Data.Transitions[i].CtrlOut.Remove(uint(j))
		}

		c.Data.NumOutputs--
		j--
	}
}

// optAliasInputs merges any two input columns driven by the same bit: their
// pattern bits are unified per transition (don't-care copies the other
// side's value; a defined conflict drops the transition; agreement drops
// the redundant column).
func (o *Optimiser) optAliasInputs(c *Cell) {
	for i := 0; i < int(c.Data.NumInputs); i++ {
		for j := i + 1; j < int(c.Data.NumInputs); j++ {
			if !c.CtrlIn[i].Equals(c.CtrlIn[j]) {
				continue
			}

			log.Debugf("fsm: %q: signal %s drives both input %d and input %d", o.Name, c.CtrlIn[i], i, j)

			var kept []netlist.Transition

			for _, tr := range c.Data.Transitions {
				si, sj := tr.CtrlIn[i], tr.CtrlIn[j]

				if !si.IsDefined() {
					si = sj
				} else if !sj.IsDefined() {
					sj = si
				}

				if si == sj {
					tr.CtrlIn = tr.CtrlIn.Clone()
					tr.CtrlIn[i] = si
					tr.CtrlIn = tr.CtrlIn.Remove(uint(j))
					kept = append(kept, tr)
				}
			}

			c.CtrlIn = c.CtrlIn.Remove(uint(j))
			c.Data.NumInputs--
			c.Data.Transitions = kept
			j--
		}
	}
}

// optFeedbackInputs merges any input column driven by the same bit as an
// output column: a transition survives iff its ctrl_in bit is don't-care or
// already matches the output pattern bit, and the redundant input column is
// then dropped.
func (o *Optimiser) optFeedbackInputs(c *Cell) {
	for j := 0; j < int(c.Data.NumOutputs); j++ {
		for i := 0; i < int(c.Data.NumInputs); i++ {
			if !c.CtrlIn[i].Equals(c.CtrlOut[j]) {
				continue
			}

			log.Debugf("fsm: %q: signal %s drives input %d and output %d", o.Name, c.CtrlIn[i], i, j)

			var kept []netlist.Transition

			for _, tr := range c.Data.Transitions {
				si, sj := tr.CtrlIn[i], tr.CtrlOut[j]
				if !si.IsDefined() || si == sj {
					tr.CtrlIn = tr.CtrlIn.Remove(uint(i))
					kept = append(kept, tr)
				}
			}

			c.CtrlIn = c.CtrlIn.Remove(uint(i))
			c.Data.NumInputs--
			c.Data.Transitions = kept
			i--
		}
	}
}

// groupKey identifies the (state_in, state_out, ctrl_out) group a
// transition belongs to for the don't-care pass.
type groupKey struct {
	stateIn, stateOut uint
	ctrlOut           string
}

// optFindDontCare groups transitions sharing (state_in, state_out,
// ctrl_out), then repeatedly fuses any two patterns in a group that differ
// in exactly one defined bit into a single pattern with a don't-care at
// that bit, until no further merge applies.
func (o *Optimiser) optFindDontCare(c *Cell) {
	groups := map[groupKey][]netlist.Pattern{}
	order := []groupKey{}

	for _, tr := range c.Data.Transitions {
		key := groupKey{tr.StateIn, tr.StateOut, tr.CtrlOut.String()}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}

		groups[key] = appendUniquePattern(groups[key], tr.CtrlIn)
	}

	var ctrlOutByKey = map[groupKey]netlist.Pattern{}
	for _, tr := range c.Data.Transitions {
		key := groupKey{tr.StateIn, tr.StateOut, tr.CtrlOut.String()}
		ctrlOutByKey[key] = tr.CtrlOut
	}

	c.Data.Transitions = nil

	for _, key := range order {
		patterns := groups[key]

		didSomething := true
		for didSomething {
			didSomething = false

			for bit := 0; bit < int(c.Data.NumInputs); bit++ {
				patterns, didSomething = mergeDontCareBit(patterns, uint(bit), didSomething)
			}
		}

		for _, p := range patterns {
			c.Data.Transitions = append(c.Data.Transitions, netlist.Transition{
				StateIn:  key.stateIn,
				StateOut: key.stateOut,
				CtrlIn:   p,
				CtrlOut:  ctrlOutByKey[key],
			})
		}
	}
}

// appendUniquePattern appends p to set unless an equal pattern is already
// present, mirroring the original's std::set<Const> deduplication.
func appendUniquePattern(set []netlist.Pattern, p netlist.Pattern) []netlist.Pattern {
	for _, existing := range set {
		if existing.Equals(p) {
			return set
		}
	}

	return append(set, p.Clone())
}

// mergeDontCareBit fuses any two patterns in set that differ only in bit
// into one pattern carrying netlist.PA there, reporting whether a merge
// occurred (folded into the running didSomething flag the fixpoint loop
// tracks across all bit positions in one sweep).
func mergeDontCareBit(set []netlist.Pattern, bit uint, didSomething bool) ([]netlist.Pattern, bool) {
	out := make([]netlist.Pattern, 0, len(set))
	consumed := make([]bool, len(set))

	for i, pattern := range set {
		if consumed[i] {
			continue
		}

		if !pattern[bit].IsDefined() {
			out = append(out, pattern)
			continue
		}

		other := pattern.Clone()
		if pattern[bit] == netlist.P0 {
			other[bit] = netlist.P1
		} else {
			other[bit] = netlist.P0
		}

		merged := false

		for j := i + 1; j < len(set); j++ {
			if consumed[j] || !set[j].Equals(other) {
				continue
			}

			fused := pattern.Clone()
			fused[bit] = netlist.PA
			out = append(out, fused)
			consumed[j] = true
			merged = true
			didSomething = true

			break
		}

		if !merged {
			out = append(out, pattern)
		}
	}

	return out, didSomething
}

// optConstAndUnusedInputs deletes any transition inconsistent with a
// constantly-driven input column, then drops every input column no
// surviving transition still constrains.
func (o *Optimiser) optConstAndUnusedInputs(c *Cell) {
	used := make([]bool, c.Data.NumInputs)

	var kept []netlist.Transition

	for _, tr := range c.Data.Transitions {
		ok := true

		for i := 0; i < int(c.Data.NumInputs); i++ {
			if c.CtrlIn[i].IsConst() {
				want := netlist.P0
				if c.CtrlIn[i].Value == netlist.S1 {
					want = netlist.P1
				}

				if tr.CtrlIn[i].IsDefined() && tr.CtrlIn[i] != want {
					ok = false
					break
				}
			}
		}

		if ok {
			for i := 0; i < int(c.Data.NumInputs); i++ {
				if !c.CtrlIn[i].IsConst() && tr.CtrlIn[i].IsDefined() {
					used[i] = true
				}
			}

			kept = append(kept, tr)
		}
	}

	for i := int(c.Data.NumInputs) - 1; i >= 0; i-- {
		if used[i] {
			continue
		}

		log.Debugf("fsm: %q: removing unused input signal %s", o.Name, c.CtrlIn[i])

		c.CtrlIn = c.CtrlIn.Remove(uint(i))

		for t := range kept {
			kept[t].CtrlIn = kept[t].CtrlIn.Remove(uint(i))
		}

		c.Data.NumInputs--
	}

	c.Data.Transitions = kept
}
