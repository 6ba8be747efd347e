// Copyright Battelle Memorial Institute.
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
package wire

import (
	"strconv"
)

// Wire identifies a single quantum degree of freedom within a circuit.  Wires
// are opaque labels: whether a wire is a qubit or a qumode is a circuit-wide
// property determined by static analysis, not something attached to the wire
// itself.  Numeric labels are canonicalised to their decimal spelling, so the
// integer wire 3 and the string wire "3" denote the same degree of freedom.
type Wire string

// New constructs a wire from an arbitrary string label.
func New(label string) Wire {
	return Wire(label)
}

// OfIndex constructs a wire from a numeric label.
func OfIndex(index uint) Wire {
	return Wire(strconv.FormatUint(uint64(index), 10))
}

// Index attempts to interpret this wire as a numeric label, returning false if
// the label is not a (non-negative) decimal integer.
func (w Wire) Index() (uint, bool) {
	n, err := strconv.ParseUint(string(w), 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(n), true
}

func (w Wire) String() string {
	return string(w)
}
