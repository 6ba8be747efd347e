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

// Package decompose implements the gate-decomposition subsystem: a registry
// of declarative rewrite rules with resource costs, and a memoized min-cost
// graph search which rewrites circuits into a restricted target gate set,
// optionally allocating ancilla work qubits.
package decompose

import (
	"fmt"

	"github.com/pnnl/go-hybridlane/pkg/ops"
)

// ResourceRep is a structural key identifying an operator for decomposition
// bookkeeping: the operator kind plus whatever structure affects which
// rewrites apply (control count, base operator, Fock level).  It is never
// executed, only compared and hashed.
type ResourceRep struct {
	// Kind is the operator kind.
	Kind ops.Kind
	// NumControls is the number of condition qubits of a qubit-conditioned
	// representation.
	NumControls int
	// Base is the wrapped representation of a symbolic kind.
	Base *ResourceRep
	// FockLevel is the Fock-level argument, where carried.
	FockLevel int
}

// RepOf computes the resource representation of a gate.  Nested
// qubit-conditioned wrappers are flattened by summing control counts, and
// closed-form conditioned identities are folded, so the returned key only
// ever carries a single conditioning level over an unconditioned base.
func RepOf(g ops.Gate) ResourceRep {
	switch g.Kind {
	case ops.KindQubitConditioned:
		base := RepOf(*g.Base)
		return conditionedRep(base, len(g.Controls))

	case ops.KindAdjoint:
		base := RepOf(*g.Base)
		return ResourceRep{Kind: ops.KindAdjoint, Base: &base}

	case ops.KindPow:
		base := RepOf(*g.Base)
		return ResourceRep{Kind: ops.KindPow, Base: &base}

	default:
		return ResourceRep{Kind: g.Kind, FockLevel: g.FockLevel}
	}
}

// conditionedRep builds the representation of a base rep conditioned on n
// qubits, folding every known identity.
func conditionedRep(base ResourceRep, n int) ResourceRep {
	// Flatten nested conditioning first so the lookup table only needs
	// single-level entries.
	if base.Kind == ops.KindQubitConditioned {
		return conditionedRep(*base.Base, n+base.NumControls)
	}

	// Gates which are themselves conditioned forms unfold to their base with
	// extra controls, e.g. conditioning ConditionalDisplacement is
	// Displacement conditioned on two qubits.
	if unconditioned, ok := ops.ConditionedToBase(base.Kind); ok && !base.Kind.Is(ops.FlagVariadic) {
		extra := int(ops.SignatureOf(base.Kind).NumWires) - int(ops.SignatureOf(unconditioned).NumWires)
		base = ResourceRep{Kind: unconditioned, FockLevel: base.FockLevel}
		n += extra
	}

	if kind, ok := ops.KnownConditionedGate(base.Kind, n); ok {
		return ResourceRep{Kind: kind, FockLevel: base.FockLevel}
	}

	// Rotation is special-cased due to its half-angle convention.
	if base.Kind == ops.Rotation && n == 1 {
		return ResourceRep{Kind: ops.ConditionalRotation}
	}

	return ResourceRep{Kind: ops.KindQubitConditioned, NumControls: n, Base: &base}
}

// Name returns the display name of this representation, e.g. "RX" or
// "qCond(Fourier)".  Target gate sets are keyed by these names.
func (r ResourceRep) Name() string {
	switch r.Kind {
	case ops.KindQubitConditioned:
		return fmt.Sprintf("qCond(%s)", r.Base.Name())
	case ops.KindAdjoint:
		return fmt.Sprintf("Adjoint(%s)", r.Base.Name())
	case ops.KindPow:
		return fmt.Sprintf("Pow(%s)", r.Base.Name())
	default:
		return r.Kind.Name()
	}
}

// Key returns a unique hashable string for this representation.
func (r ResourceRep) Key() string {
	switch r.Kind {
	case ops.KindQubitConditioned:
		return fmt.Sprintf("qCond[%d](%s)", r.NumControls, r.Base.Key())
	case ops.KindAdjoint:
		return fmt.Sprintf("Adjoint(%s)", r.Base.Key())
	case ops.KindPow:
		return fmt.Sprintf("Pow(%s)", r.Base.Key())
	default:
		if r.Kind.Is(ops.FlagFockLevel) {
			return fmt.Sprintf("%s{n=%d}", r.Kind.Name(), r.FockLevel)
		}

		return r.Kind.Name()
	}
}

// Count pairs a resource representation with a multiplicity.
type Count struct {
	// Rep is the produced operator representation.
	Rep ResourceRep
	// N is how many instances the rule emits.
	N uint
}
