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
	log "github.com/sirupsen/logrus"

	"github.com/synthsat/satcell/pkg/netlist"
)

// substitute replaces every bit of vec that refers to the same signal as
// some bit of lhs with the corresponding bit of rhs, leaving every other
// bit (including constants) untouched.
func substitute(vec, lhs, rhs netlist.Vector) netlist.Vector {
	out := make(netlist.Vector, len(vec))
	copy(out, vec)

	for i, b := range vec {
		if b.IsConst() {
			continue
		}

		for j, lb := range lhs {
			if lb.Equals(b) {
				out[i] = rhs[j]
				break
			}
		}
	}

	return out
}

// InitFold repeatedly substitutes rootCase's own assignments into sig
// until a pass leaves it unchanged, the same fixpoint proc_get_const runs
// before demanding the result be fully constant.
func InitFold(sig netlist.Vector, rootCase CaseRule) netlist.Vector {
	for {
		tmp := sig
		for _, act := range rootCase.Actions {
			tmp = substitute(tmp, act.Lhs, act.Rhs)
		}

		if tmp.Equals(sig) {
			return sig
		}

		sig = tmp
	}
}

// wireChunk is a maximal run of vec positions referencing consecutive bits
// of a single wire, the unit proc_init writes `init` attributes against.
type wireChunk struct {
	wire      *netlist.Wire
	vecOffset uint
	width     uint
}

// chunksOf splits lhs into its wire-backed runs, skipping constant bits
// (an all-constant left-hand side, or constant bits mixed into a wider
// concatenation, contribute nothing to be initialised).
func chunksOf(lhs netlist.Vector) []wireChunk {
	var chunks []wireChunk

	i := 0
	for i < len(lhs) {
		if lhs[i].IsConst() {
			i++
			continue
		}

		wire := lhs[i].Wire
		start := i
		j := i + 1

		for j < len(lhs) && !lhs[j].IsConst() && lhs[j].Wire == wire && lhs[j].Offset == lhs[j-1].Offset+1 {
			j++
		}

		chunks = append(chunks, wireChunk{wire: wire, vecOffset: uint(start), width: uint(j - start)})
		i = j
	}

	return chunks
}

// Run extracts moduleName.proc's init sync rule, if any: folds each
// action's right-hand side to a constant via InitFold, requires the
// result be fully constant (x and z bits are accepted), and writes it into
// the driven wire's "init"
// attribute. The init sync rule is then removed from the process.
//
// Returns a *netlist.UserError, naming the offending signal, if a
// right-hand side never reduces to a constant or if an assignment only
// covers part of the wire it targets.
func Run(moduleName string, proc *Process) error {
	foundInit := false

	for _, sync := range proc.Syncs {
		if sync.Type != SyncInit {
			continue
		}

		foundInit = true

		log.Debugf("procinit: found init rule in %q.%q", moduleName, proc.Name)

		for _, action := range sync.Actions {
			rhs := InitFold(action.Rhs, proc.RootCase)

			if !rhs.IsFullyConst() {
				return netlist.NewUserError(action.Lhs.String(), "failed to reduce init value to a constant")
			}

			for _, ch := range chunksOf(action.Lhs) {
				if ch.width != ch.wire.Width {
					return netlist.NewUserError(ch.wire.Name, "init value is not for the entire wire")
				}

				value := rhs.Slice(ch.vecOffset, ch.width)

				log.Debugf("procinit: setting init value: %s = %s", ch.wire.Name, value)

				ch.wire.Attributes["init"] = value.String()
			}
		}
	}

	if foundInit {
		kept := make([]*SyncRule, 0, len(proc.Syncs))

		for _, sync := range proc.Syncs {
			if sync.Type != SyncInit {
				kept = append(kept, sync)
			}
		}

		proc.Syncs = kept
	}

	return nil
}
