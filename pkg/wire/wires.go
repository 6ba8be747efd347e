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
	"strings"
)

// Wires is an ordered collection of distinct wires.  Order matters: for
// example, the wires of a conditioned operation list the control qubits before
// the wires of its base operation.  All constructors and combinators preserve
// first-occurrence order whilst discarding duplicates.
type Wires []Wire

// NewWires constructs an ordered wire collection from the given labels,
// dropping any duplicates after their first occurrence.
func NewWires(ws ...Wire) Wires {
	out := make(Wires, 0, len(ws))
	for _, w := range ws {
		if !out.Contains(w) {
			out = append(out, w)
		}
	}

	return out
}

// Contains checks whether a given wire is in this collection.
func (p Wires) Contains(w Wire) bool {
	for _, v := range p {
		if v == w {
			return true
		}
	}

	return false
}

// ContainsAll checks whether every wire of another collection is in this one.
func (p Wires) ContainsAll(ws Wires) bool {
	for _, w := range ws {
		if !p.Contains(w) {
			return false
		}
	}

	return true
}

// IndexOf returns the position of a wire in this collection, or -1 if absent.
func (p Wires) IndexOf(w Wire) int {
	for i, v := range p {
		if v == w {
			return i
		}
	}

	return -1
}

// Append returns a new collection extending this one with the given wires,
// skipping duplicates.  The receiver is not mutated.
func (p Wires) Append(ws ...Wire) Wires {
	out := make(Wires, len(p), len(p)+len(ws))
	copy(out, p)

	for _, w := range ws {
		if !out.Contains(w) {
			out = append(out, w)
		}
	}

	return out
}

// Union returns the ordered union of this collection with another.
func (p Wires) Union(ws Wires) Wires {
	return p.Append(ws...)
}

// Intersect returns the wires present in both collections, ordered as in the
// receiver.
func (p Wires) Intersect(ws Wires) Wires {
	var out Wires

	for _, w := range p {
		if ws.Contains(w) {
			out = append(out, w)
		}
	}

	return out
}

// Disjoint checks whether this collection shares no wire with another.
func (p Wires) Disjoint(ws Wires) bool {
	return len(p.Intersect(ws)) == 0
}

// Equals checks whether two collections hold the same wires in the same order.
func (p Wires) Equals(ws Wires) bool {
	if len(p) != len(ws) {
		return false
	}

	for i := range p {
		if p[i] != ws[i] {
			return false
		}
	}

	return true
}

func (p Wires) String() string {
	var builder strings.Builder

	builder.WriteString("[")

	for i, w := range p {
		if i != 0 {
			builder.WriteString(", ")
		}

		builder.WriteString(string(w))
	}

	builder.WriteString("]")

	return builder.String()
}
