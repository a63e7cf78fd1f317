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

package translate

import (
	"fmt"

	"github.com/synthsat/satcell/pkg/netlist"
	"github.com/synthsat/satcell/pkg/solver"
)

// assertBucket accumulates the check/enable bits of every $assert cell
// encountered so far for one prefix-timestep key.
type assertBucket struct {
	check  netlist.Vector
	enable netlist.Vector
}

// AssertEnvelope grows by append as $assert cells are encountered during
// encoding and is read back, once per timestep, by Aggregate.
type AssertEnvelope struct {
	buckets map[string]*assertBucket
}

// NewAssertEnvelope constructs an empty envelope.
func NewAssertEnvelope() *AssertEnvelope {
	return &AssertEnvelope{buckets: map[string]*assertBucket{}}
}

// bucketKey returns the envelope's internal grouping key for a timestep.
func bucketKey(prefix string, timestep int) string {
	return fmt.Sprintf("%s@%d", prefix, timestep)
}

// Append records one $assert cell's A and EN ports under the given
// prefix/timestep key, concatenating onto whatever was recorded before.
func (e *AssertEnvelope) Append(prefix string, timestep int, check, enable netlist.Vector) {
	key := bucketKey(prefix, timestep)

	b, ok := e.buckets[key]
	if !ok {
		b = &assertBucket{}
		e.buckets[key] = b
	}

	b.check = b.check.Concat(check)
	b.enable = b.enable.Concat(enable)
}

// Aggregate reads the envelope entry for prefix/timestep and returns the
// reduction AND_i(check_i OR NOT(enable_i)) as a single solver literal. A
// key with no recorded asserts aggregates to TRUE (vacuously, nothing to
// violate). In undef mode, check and enable are each masked to
// "defined and not undef" first so an undef assert or enable bit cannot
// falsely satisfy the property.
func (e *Encoder) Aggregate(prefix string, timestep int) solver.Literal {
	key := bucketKey(prefix, timestep)

	b, ok := e.Asserts.buckets[key]
	if !ok {
		return e.Builder.True()
	}

	checkVal := e.Importer.ImportDefined(b.check, timestep)
	enableVal := e.Importer.ImportDefined(b.enable, timestep)

	if e.Config.ModelUndef {
		checkUndef := e.Importer.ImportUndef(b.check, timestep)
		enableUndef := e.Importer.ImportUndef(b.enable, timestep)

		for i := range checkVal {
			checkVal[i] = e.Builder.And(checkVal[i], e.Builder.Not(checkUndef[i]))
		}

		for i := range enableVal {
			enableVal[i] = e.Builder.And(enableVal[i], e.Builder.Not(enableUndef[i]))
		}
	}

	terms := make([]solver.Literal, len(checkVal))
	for i := range checkVal {
		terms[i] = e.Builder.Or(checkVal[i], e.Builder.Not(enableVal[i]))
	}

	return e.Builder.And(terms...)
}
