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

// Package procinit extracts the "initial" assignments of a process into
// init attributes on the driven wires, the way an HDL frontend's
// initial-block lowering is later folded into per-wire reset values.
//
// The Process/CaseRule/SyncRule model here is intentionally minimal: just
// enough shape to define ProcInit's interface, not a general process
// representation (that belongs to the netlist-elaboration stage this
// module treats as an external collaborator).
package procinit

import "github.com/synthsat/satcell/pkg/netlist"

// Action is a single `lhs = rhs` assignment, both sides signal vectors of
// equal width.
type Action struct {
	Lhs netlist.Vector
	Rhs netlist.Vector
}

// CaseRule holds the unconditional assignments of a process's root case:
// the substitution source for constant-folding a sync rule's right-hand
// side.
type CaseRule struct {
	Actions []Action
}

// SyncType identifies what triggers a SyncRule. Only SyncInit is
// interpreted by this package; the others exist so Process's shape matches
// what an elaboration stage would actually produce.
type SyncType byte

const (
	SyncInit SyncType = iota
	SyncAlways
	SyncEdgePos
	SyncEdgeNeg
	SyncLevel
)

// SyncRule is one trigger-guarded group of assignments within a process.
type SyncRule struct {
	Type    SyncType
	Actions []Action
}

// Process is a single procedural block: a root case of unconditional
// assignments plus zero or more sync rules.
type Process struct {
	Name     string
	RootCase CaseRule
	Syncs    []*SyncRule
}
