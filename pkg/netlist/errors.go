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

// UserError is the distinguished error kind for user-input failures: a
// signal referenced with an inconsistent width, an init right-hand side
// that doesn't reduce to a constant, and the like. It always names the
// offending signal so the caller can report a useful diagnostic, mirroring
// the shape of the teacher's pkg/sexp.SyntaxError (a struct carrying
// enough context to format itself, rather than a bare string).
type UserError struct {
	// Signal is the name of the offending wire or signal.
	Signal string
	// Msg describes what went wrong.
	Msg string
}

// NewUserError constructs a UserError.
func NewUserError(signal, msg string) *UserError {
	return &UserError{Signal: signal, Msg: msg}
}

// Error implements the error interface.
func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Signal, e.Msg)
}
