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

package bsolver

import "github.com/synthsat/satcell/pkg/solver"

// Model is a satisfying assignment returned by Solve.
type Model struct {
	assign []int8
}

// Value returns the truth value lit takes in this model.
func (m *Model) Value(lit solver.Literal) bool {
	return m.assign[int(lit)] == 1
}

// ValueVector returns, bit for bit, the values vec takes in this model.
func (m *Model) ValueVector(vec solver.Vector) []bool {
	out := make([]bool, len(vec))
	for i, lit := range vec {
		out[i] = m.Value(lit)
	}

	return out
}

// clauseStatus is the outcome of inspecting a clause against a partial
// assignment.
type clauseStatus int

const (
	statusSatisfied clauseStatus = iota
	statusUnsat
	statusUnit
	statusUnresolved
)

func evalClause(c clause, assign []int8) (clauseStatus, int) {
	unassignedCount := 0
	unitLit := 0

	for _, lit := range c {
		v := lit
		if v < 0 {
			v = -v
		}

		val := assign[v]

		if val == 0 {
			unassignedCount++
			unitLit = lit

			continue
		}

		litTrue := (lit > 0 && val == 1) || (lit < 0 && val == -1)
		if litTrue {
			return statusSatisfied, 0
		}
	}

	switch unassignedCount {
	case 0:
		return statusUnsat, 0
	case 1:
		return statusUnit, unitLit
	default:
		return statusUnresolved, 0
	}
}

// propagate runs unit propagation to a fixpoint, returning false the moment
// a clause becomes unsatisfiable under the current assignment.
func (s *Solver) propagate(assign []int8) bool {
	changed := true

	for changed {
		changed = false

		for _, c := range s.clauses {
			status, unit := evalClause(c, assign)

			switch status {
			case statusUnsat:
				return false
			case statusUnit:
				v := unit
				if v < 0 {
					v = -v
				}

				if unit > 0 {
					assign[v] = 1
				} else {
					assign[v] = -1
				}

				changed = true
			case statusSatisfied, statusUnresolved:
			}
		}
	}

	return true
}

func (s *Solver) allSatisfied(assign []int8) bool {
	for _, c := range s.clauses {
		status, _ := evalClause(c, assign)
		if status != statusSatisfied {
			return false
		}
	}

	return true
}

func (s *Solver) dpll(assign []int8) bool {
	if !s.propagate(assign) {
		return false
	}

	branchVar := 0

	for v := 1; v <= s.numVars; v++ {
		if assign[v] == 0 {
			branchVar = v
			break
		}
	}

	if branchVar == 0 {
		return s.allSatisfied(assign)
	}

	saved := make([]int8, len(assign))
	copy(saved, assign)

	assign[branchVar] = 1
	if s.dpll(assign) {
		return true
	}

	copy(assign, saved)
	assign[branchVar] = -1

	return s.dpll(assign)
}

// Solve runs a complete DPLL search (unit propagation plus chronological
// backtracking) over every clause built so far and reports whether the
// formula is satisfiable. The search is exhaustive rather than
// conflict-driven, which is adequate for the bit-blasted formulas this
// reference backend is exercised against in tests and small CLI runs.
func (s *Solver) Solve() (bool, *Model) {
	assign := make([]int8, s.numVars+1)
	if !s.dpll(assign) {
		return false, nil
	}

	return true, &Model{assign: assign}
}

// NameValue looks up the value of a literal previously frozen under name.
// It panics if name was never frozen, since that is a caller error rather
// than an unsatisfiable-formula condition.
func (s *Solver) NameValue(m *Model, name string) bool {
	lit, ok := s.names[name]
	if !ok {
		panic("bsolver: no literal frozen under name " + name)
	}

	return m.Value(lit)
}
