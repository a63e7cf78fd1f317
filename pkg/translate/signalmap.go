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

import "github.com/synthsat/satcell/pkg/netlist"

// Canonicalize reduces sig to the normal form the rest of the translator
// expects: a flat, single-bit-chunk vector. netlist.Vector is already
// stored this way (unlike a source RTLIL SigSpec, which may carry nested
// multi-bit chunks that need splitting), so this returns sig unchanged
// rather than rewriting it; it exists so call sites read the same as the
// three-stage pipeline spec.md describes, and so a future chunked
// representation has a single seam to change.
func Canonicalize(sig netlist.Vector) netlist.Vector {
	return sig
}
