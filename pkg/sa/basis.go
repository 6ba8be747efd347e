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

// Package sa implements the static analysis passes which type-check hybrid
// circuits: wire classification into qubits and qumodes, and measurement
// basis-schema inference.
package sa

import (
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// WireType classifies a wire as a discrete (qubit) or bosonic (qumode) degree
// of freedom.  A wire must resolve to exactly one type across an entire
// circuit.
type WireType uint8

const (
	// Qubit is a two-level discrete degree of freedom.
	Qubit WireType = iota
	// Qumode is a continuous-variable bosonic degree of freedom.
	Qumode
)

func (t WireType) String() string {
	if t == Qubit {
		return "qubit"
	}

	return "qumode"
}

// ComputationalBasis describes how a qumode's measurement outcome is
// interpreted.
type ComputationalBasis uint8

const (
	// BasisUnset indicates no basis requirement.
	BasisUnset ComputationalBasis = iota
	// BasisDiscrete is the Fock (photon-number) basis.
	BasisDiscrete
	// BasisPosition is the position-quadrature basis.
	BasisPosition
)

func (b ComputationalBasis) String() string {
	switch b {
	case BasisDiscrete:
		return "discrete"
	case BasisPosition:
		return "position"
	default:
		return "unset"
	}
}

// schemaGroup records a basis requirement shared by a group of co-measured
// qumodes.
type schemaGroup struct {
	wires wire.Wires
	basis ComputationalBasis
}

// BasisSchema is an immutable record of which measurement basis each qumode
// of one measurement must be read out in.  Each wire belongs to at most one
// group; querying a wire returns the basis of its group, or BasisUnset.
type BasisSchema struct {
	groups []schemaGroup
}

// NewBasisSchema builds a schema from wire-group/basis pairs.  Pairs must be
// supplied in matching order.
func NewBasisSchema(groups []wire.Wires, bases []ComputationalBasis) BasisSchema {
	if len(groups) != len(bases) {
		panic("mismatched schema groups and bases")
	}

	schema := BasisSchema{make([]schemaGroup, len(groups))}
	for i := range groups {
		schema.groups[i] = schemaGroup{groups[i], bases[i]}
	}

	return schema
}

// Basis returns the basis required for the group containing the given wire.
func (p BasisSchema) Basis(w wire.Wire) ComputationalBasis {
	for _, g := range p.groups {
		if g.wires.Contains(w) {
			return g.basis
		}
	}

	return BasisUnset
}

// Wires returns every wire present in this schema.
func (p BasisSchema) Wires() wire.Wires {
	var ws wire.Wires
	for _, g := range p.groups {
		ws = ws.Union(g.wires)
	}

	return ws
}

// IsEmpty reports whether this schema places no basis requirement at all.
func (p BasisSchema) IsEmpty() bool {
	return len(p.groups) == 0
}
