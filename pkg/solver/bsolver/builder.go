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

// Package bsolver is a small from-scratch implementation of solver.Builder
// over a Tseitin-transformed CNF, solved with a recursive DPLL search. It
// stands in for the production SAT backend spec.md scopes out of this
// repository (the role ezMiniSAT plays behind original_source's SatGen):
// pkg/translate and pkg/fsm never import it, only the CLI and test suites
// do, so the translator core stays backend-agnostic.
package bsolver

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/synthsat/satcell/pkg/solver"
)

// clause is a disjunction of CNF literals: a positive int n means variable
// n, a negative int -n means its negation. Variable 0 is never used so sign
// alone disambiguates.
type clause []int

// Solver is an in-memory reference implementation of solver.Builder.
type Solver struct {
	numVars  int
	clauses  []clause
	names    map[string]solver.Literal
	trueVar  solver.Literal
	falseVar solver.Literal
}

// New constructs an empty solver with the reserved TRUE/FALSE literals
// already allocated.
func New() *Solver {
	s := &Solver{names: map[string]solver.Literal{}}
	s.trueVar = s.allocVar()
	s.falseVar = s.allocVar()
	s.addClause(clause{int(s.trueVar)})
	s.addClause(clause{-int(s.falseVar)})

	return s
}

func (s *Solver) allocVar() solver.Literal {
	s.numVars++
	return solver.Literal(s.numVars)
}

func (s *Solver) addClause(c clause) {
	s.clauses = append(s.clauses, c)
}

// True implements solver.Builder.
func (s *Solver) True() solver.Literal { return s.trueVar }

// False implements solver.Builder.
func (s *Solver) False() solver.Literal { return s.falseVar }

// Fresh implements solver.Builder.
func (s *Solver) Fresh() solver.Literal { return s.allocVar() }

// FreshVector implements solver.Builder.
func (s *Solver) FreshVector(width uint) solver.Vector {
	vec := make(solver.Vector, width)
	for i := range vec {
		vec[i] = s.Fresh()
	}

	return vec
}

// Frozen implements solver.Builder. Repeated calls with the same name
// return the same literal, matching the "<prefix>[@<timestep>:]<wire>"
// naming scheme spec.md §3 requires to be preserved bit-exactly.
func (s *Solver) Frozen(name string) solver.Literal {
	if lit, ok := s.names[name]; ok {
		return lit
	}

	lit := s.allocVar()
	s.names[name] = lit
	log.Debugf("bsolver: froze literal %d as %q", lit, name)

	return lit
}

// Names returns every name passed to Frozen so far, in sorted order. This
// exists for diagnostics (printing a solve witness keyed by signal name)
// and is not part of solver.Builder.
func (s *Solver) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Not implements solver.Builder via Tseitin: y <-> ¬a.
func (s *Solver) Not(a solver.Literal) solver.Literal {
	y := s.allocVar()
	ai, yi := int(a), int(y)
	s.addClause(clause{-yi, -ai})
	s.addClause(clause{yi, ai})

	return y
}

// And implements solver.Builder via Tseitin: y <-> l1 ∧ ... ∧ ln.
func (s *Solver) And(lits ...solver.Literal) solver.Literal {
	if len(lits) == 0 {
		return s.trueVar
	}

	if len(lits) == 1 {
		return lits[0]
	}

	y := s.allocVar()
	yi := int(y)
	big := clause{yi}

	for _, l := range lits {
		li := int(l)
		s.addClause(clause{-yi, li})
		big = append(big, -li)
	}

	s.addClause(big)

	return y
}

// Or implements solver.Builder via Tseitin: y <-> l1 ∨ ... ∨ ln.
func (s *Solver) Or(lits ...solver.Literal) solver.Literal {
	if len(lits) == 0 {
		return s.falseVar
	}

	if len(lits) == 1 {
		return lits[0]
	}

	y := s.allocVar()
	yi := int(y)
	big := clause{-yi}

	for _, l := range lits {
		li := int(l)
		s.addClause(clause{yi, -li})
		big = append(big, li)
	}

	s.addClause(big)

	return y
}

// Xor implements solver.Builder, folding pairwise for more than two
// arguments.
func (s *Solver) Xor(lits ...solver.Literal) solver.Literal {
	switch len(lits) {
	case 0:
		return s.falseVar
	case 1:
		return lits[0]
	}

	acc := s.xor2(lits[0], lits[1])
	for _, l := range lits[2:] {
		acc = s.xor2(acc, l)
	}

	return acc
}

func (s *Solver) xor2(a, b solver.Literal) solver.Literal {
	y := s.allocVar()
	ai, bi, yi := int(a), int(b), int(y)
	s.addClause(clause{-yi, ai, bi})
	s.addClause(clause{-yi, -ai, -bi})
	s.addClause(clause{yi, -ai, bi})
	s.addClause(clause{yi, ai, -bi})

	return y
}

// Iff implements solver.Builder: y <-> (a == b).
func (s *Solver) Iff(a, b solver.Literal) solver.Literal {
	y := s.allocVar()
	ai, bi, yi := int(a), int(b), int(y)
	s.addClause(clause{-yi, -ai, bi})
	s.addClause(clause{-yi, ai, -bi})
	s.addClause(clause{yi, ai, bi})
	s.addClause(clause{yi, -ai, -bi})

	return y
}

// Ite implements solver.Builder: y <-> (cond ? t : f).
func (s *Solver) Ite(cond, t, f solver.Literal) solver.Literal {
	y := s.allocVar()
	ci, ti, fi, yi := int(cond), int(t), int(f), int(y)
	s.addClause(clause{-ci, -ti, yi})
	s.addClause(clause{-ci, ti, -yi})
	s.addClause(clause{ci, -fi, yi})
	s.addClause(clause{ci, fi, -yi})

	return y
}

// VecNot implements solver.Builder.
func (s *Solver) VecNot(a solver.Vector) solver.Vector {
	out := make(solver.Vector, len(a))
	for i, l := range a {
		out[i] = s.Not(l)
	}

	return out
}

func (s *Solver) vecBinop(a, b solver.Vector, op func(x, y solver.Literal) solver.Literal) solver.Vector {
	if len(a) != len(b) {
		panic("bsolver: vector width mismatch")
	}

	out := make(solver.Vector, len(a))
	for i := range a {
		out[i] = op(a[i], b[i])
	}

	return out
}

// VecAnd implements solver.Builder.
func (s *Solver) VecAnd(a, b solver.Vector) solver.Vector {
	return s.vecBinop(a, b, func(x, y solver.Literal) solver.Literal { return s.And(x, y) })
}

// VecOr implements solver.Builder.
func (s *Solver) VecOr(a, b solver.Vector) solver.Vector {
	return s.vecBinop(a, b, func(x, y solver.Literal) solver.Literal { return s.Or(x, y) })
}

// VecXor implements solver.Builder.
func (s *Solver) VecXor(a, b solver.Vector) solver.Vector {
	return s.vecBinop(a, b, func(x, y solver.Literal) solver.Literal { return s.Xor(x, y) })
}

// VecIff implements solver.Builder.
func (s *Solver) VecIff(a, b solver.Vector) solver.Vector {
	return s.vecBinop(a, b, s.Iff)
}

// VecIte implements solver.Builder.
func (s *Solver) VecIte(cond solver.Literal, t, f solver.Vector) solver.Vector {
	if len(t) != len(f) {
		panic("bsolver: vector width mismatch")
	}

	out := make(solver.Vector, len(t))
	for i := range t {
		out[i] = s.Ite(cond, t[i], f[i])
	}

	return out
}

// Eq implements solver.Builder.
func (s *Solver) Eq(a, b solver.Vector) solver.Literal {
	if len(a) != len(b) {
		panic("bsolver: vector width mismatch")
	}

	if len(a) == 0 {
		return s.trueVar
	}

	bits := make([]solver.Literal, len(a))
	for i := range a {
		bits[i] = s.Iff(a[i], b[i])
	}

	return s.And(bits...)
}

// Ne implements solver.Builder.
func (s *Solver) Ne(a, b solver.Vector) solver.Literal {
	return s.Not(s.Eq(a, b))
}

// Reduce implements solver.Builder.
func (s *Solver) Reduce(op solver.ReduceOp, vec solver.Vector) solver.Literal {
	switch op {
	case solver.ReduceAnd:
		return s.And(vec...)
	case solver.ReduceOr:
		return s.Or(vec...)
	case solver.ReduceXor:
		return s.Xor(vec...)
	default:
		panic("bsolver: unknown reduce operator")
	}
}

// Onehot implements solver.Builder with a direct (quadratic) encoding,
// adequate for the small vectors this reference backend is ever asked to
// handle.
func (s *Solver) Onehot(vec solver.Vector, alsoAcceptZero bool) solver.Literal {
	n := len(vec)

	terms := make([]solver.Literal, 0, n+1)

	for i := 0; i < n; i++ {
		others := make([]solver.Literal, 0, n-1)
		for j := 0; j < n; j++ {
			if i != j {
				others = append(others, s.Not(vec[j]))
			}
		}

		others = append(others, vec[i])
		terms = append(terms, s.And(others...))
	}

	if alsoAcceptZero {
		allZero := make([]solver.Literal, n)
		for i := range vec {
			allZero[i] = s.Not(vec[i])
		}

		terms = append(terms, s.And(allZero...))
	}

	return s.Or(terms...)
}

// Assume implements solver.Builder.
func (s *Solver) Assume(lit solver.Literal) {
	s.addClause(clause{int(lit)})
}

// Set implements solver.Builder.
func (s *Solver) Set(a, b solver.Vector) {
	s.Assume(s.Eq(a, b))
}
