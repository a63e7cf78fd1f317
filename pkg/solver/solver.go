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

// Package solver defines the Builder interface the translator core
// (pkg/translate) consumes. The core never inspects a Literal's
// identity; it only composes literals through this interface. A concrete
// backend (such as pkg/solver/bsolver) is always out of the core's
// dependency graph.
package solver

// Literal is an opaque variable identifier assigned by the backend. The
// core treats it as referential only: it is never hashed, printed, or
// compared for anything but equality checks the backend itself performs.
type Literal uint

// Vector is an ordered collection of literals, least-significant first,
// mirroring netlist.Vector on the solver side of the bit-blasting boundary.
type Vector []Literal

// Width returns the number of literals in this vector.
func (v Vector) Width() uint {
	return uint(len(v))
}

// Builder is the interface the translator requires from a SAT backend. A
// backend must guarantee that Frozen is idempotent for a given name:
// calling it twice with the same name returns the same literal.
type Builder interface {
	// True returns the reserved literal which is always satisfied.
	True() Literal
	// False returns the reserved literal which is never satisfied.
	False() Literal
	// Fresh allocates a new, unconstrained literal.
	Fresh() Literal
	// FreshVector allocates width-many fresh literals.
	FreshVector(width uint) Vector
	// Frozen allocates (or looks up) a literal associated with the given
	// name. Frozen literals survive backend simplification and may be
	// queried by name after solving.
	Frozen(name string) Literal

	// Not, And, Or, Xor, Iff each return a single literal equivalent to the
	// corresponding boolean operator applied to their arguments (And/Or/Xor
	// are variadic to match expression-style folds).
	Not(a Literal) Literal
	And(lits ...Literal) Literal
	Or(lits ...Literal) Literal
	Xor(lits ...Literal) Literal
	Iff(a, b Literal) Literal
	// Ite returns cond ? t : f as a single literal.
	Ite(cond, t, f Literal) Literal

	// VecNot, VecAnd, VecOr, VecXor, VecIff apply the corresponding scalar
	// operator bitwise across equal-width vectors.
	VecNot(a Vector) Vector
	VecAnd(a, b Vector) Vector
	VecOr(a, b Vector) Vector
	VecXor(a, b Vector) Vector
	VecIff(a, b Vector) Vector
	// VecIte applies Ite bitwise: result[i] = cond ? t[i] : f[i].
	VecIte(cond Literal, t, f Vector) Vector

	// Eq and Ne return a single literal testing bitwise (in)equality of two
	// equal-width vectors.
	Eq(a, b Vector) Literal
	Ne(a, b Vector) Literal
	// LtUnsigned/LeUnsigned/GeUnsigned/GtUnsigned and the *Signed variants
	// return a single literal for the corresponding ordering predicate over
	// two equal-width vectors.
	LtUnsigned(a, b Vector) Literal
	LeUnsigned(a, b Vector) Literal
	GeUnsigned(a, b Vector) Literal
	GtUnsigned(a, b Vector) Literal
	LtSigned(a, b Vector) Literal
	LeSigned(a, b Vector) Literal
	GeSigned(a, b Vector) Literal
	GtSigned(a, b Vector) Literal

	// Add, Sub take two equal-width operands and return a vector of that
	// same width representing unsigned (or two's-complement, for Sub/Neg)
	// arithmetic with wraparound.
	Add(a, b Vector) Vector
	Sub(a, b Vector) Vector
	Neg(a Vector) Vector

	// Reduce folds op (And, Or or Xor) across every literal of vec into one
	// literal.
	Reduce(op ReduceOp, vec Vector) Literal

	// Onehot returns a literal which holds iff exactly one bit of vec is
	// set, or (when alsoAcceptZero is true) iff at most one bit is set.
	Onehot(vec Vector, alsoAcceptZero bool) Literal

	// Assume records lit as an assumed-true fact.
	Assume(lit Literal)
	// Set asserts a = b, bitwise.
	Set(a, b Vector)
}

// ReduceOp selects which boolean operator Reduce folds across a vector.
type ReduceOp byte

// The three reducible operators.
const (
	ReduceAnd ReduceOp = iota
	ReduceOr
	ReduceXor
)
