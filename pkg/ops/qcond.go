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
package ops

import (
	"fmt"

	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// This file implements the qubit-conditioned operator algebra.  For a unitary
// U = exp(-i theta G), the qubit-conditioned version is
//
//	exp(-i theta G (x) Z_c1 (x) ... (x) Z_ck)
//
// for control qubits c1..ck.  Conditioning generalises controlled-phase gates
// to continuous generators and is the natural primitive of the ion trap,
// whose sideband interactions condition bosonic evolution on the internal
// qubit state.

// ErrDecompositionUndefined reports that a qubit-conditioned operator has no
// known rewrite into simpler gates.
type ErrDecompositionUndefined struct {
	// Gate is the operator lacking a decomposition.
	Gate Gate
}

func (e *ErrDecompositionUndefined) Error() string {
	return fmt.Sprintf("decomposition not defined for %s", e.Gate.String())
}

// condKey identifies an entry of the known conditioned-gate table.
type condKey struct {
	base        Kind
	numControls int
}

// knownConditioned maps (base gate, control count) pairs to gates implementing
// the conditioned operator in closed form.  Only single-level entries are
// needed: resource flattening collapses nested conditioning before lookup.
var knownConditioned = map[condKey]Kind{
	{Displacement, 1}:     ConditionalDisplacement,
	{Fourier, 1}:          ConditionalParity,
	{Squeezing, 1}:        ConditionalSqueezing,
	{Beamsplitter, 1}:     ConditionalBeamsplitter,
	{TwoModeSqueezing, 1}: ConditionalTwoModeSqueezing,
	{TwoModeSum, 1}:       ConditionalTwoModeSum,
	{RZ, 1}:               IsingZZ,
	{IsingZZ, 1}:          MultiRZ,
}

// KnownConditionedGate looks up the closed-form gate implementing a base kind
// conditioned on the given number of qubits, if one exists.
func KnownConditionedGate(base Kind, numControls int) (Kind, bool) {
	k, ok := knownConditioned[condKey{base, numControls}]
	return k, ok
}

// ConditionedToBase maps closed-form conditioned gates back to their base
// gate.  This is the inverse direction of the known-gate table, used when
// conditioning an already-conditioned gate: qCond(ConditionalDisplacement)
// is Displacement conditioned on two qubits.
func ConditionedToBase(k Kind) (Kind, bool) {
	base, ok := map[Kind]Kind{
		ConditionalDisplacement:     Displacement,
		ConditionalSqueezing:        Squeezing,
		ConditionalParity:           Fourier,
		ConditionalTwoModeSqueezing: TwoModeSqueezing,
		ConditionalTwoModeSum:       TwoModeSum,
		ConditionalBeamsplitter:     Beamsplitter,
		IsingZZ:                     RZ,
		MultiRZ:                     RZ,
	}[k]

	return base, ok
}

// NewQubitConditioned constructs the symbolic qubit-conditioned wrapper
// without applying any algebraic identities.  The control wires must be
// disjoint from the base operator's wires.
func NewQubitConditioned(base Gate, controls wire.Wires) (Gate, error) {
	if !base.Wires().Disjoint(controls) {
		return Gate{}, fmt.Errorf(
			"control wires %s must be different from the operator wires %s",
			controls.String(), base.Wires().String())
	}

	return Gate{Kind: KindQubitConditioned, Base: &base, Controls: controls}, nil
}

// Qcond conditions a gate on the parity of the given control qubits, applying
// known identities eagerly: closed-form conditioned gates, the Z-rotation
// family, the Rotation factor-of-two convention, and flattening of nested
// conditioning.  Anything without an eager identity becomes a symbolic
// wrapper.
func Qcond(base Gate, controls wire.Wires) (Gate, error) {
	controls = wire.NewWires(controls...)

	if kind, ok := KnownConditionedGate(base.Kind, len(controls)); ok {
		out := Gate{
			Kind:      kind,
			Params:    base.Params,
			Operands:  controls.Union(base.Wires()),
			FockLevel: base.FockLevel,
		}

		return out, nil
	}

	// ConditionalRotation uses a half-angle convention relative to Rotation.
	if base.Kind == Rotation && len(controls) == 1 {
		return Gate{
			Kind:     ConditionalRotation,
			Params:   []float64{2 * base.Params[0]},
			Operands: controls.Union(base.Wires()),
		}, nil
	}

	switch base.Kind {
	case GlobalPhase, RZ, IsingZZ, MultiRZ:
		return foldZRotation(base, controls), nil

	case KindQubitConditioned:
		// Nested conditioning merges control wires.
		return Qcond(*base.Base, controls.Union(base.Controls))
	}

	return NewQubitConditioned(base, controls)
}

// foldZRotation extends a Z-type rotation with additional control qubits by
// widening its Z string, choosing the narrowest gate that fits.
func foldZRotation(base Gate, controls wire.Wires) Gate {
	param := base.Params[0]
	ws := controls.Union(base.Wires())

	if base.Kind == GlobalPhase {
		// exp(-i phi) conditioned on Z parity is a Z rotation of 2 phi.
		ws = controls
		param = 2 * param
	}

	switch len(ws) {
	case 1:
		return Gate{Kind: RZ, Params: []float64{param}, Operands: ws}
	case 2:
		return Gate{Kind: IsingZZ, Params: []float64{param}, Operands: ws}
	default:
		return Gate{Kind: MultiRZ, Params: []float64{param}, Operands: ws}
	}
}

// Flatten collapses nested qubit-conditioned wrappers into a single wrapper
// whose control list concatenates all levels, outermost controls first.
// Non-conditioned gates are returned unchanged.
func Flatten(g Gate) Gate {
	if g.Kind != KindQubitConditioned {
		return g
	}

	base := Flatten(*g.Base)

	if base.Kind == KindQubitConditioned {
		return Gate{
			Kind:     KindQubitConditioned,
			Base:     base.Base,
			Controls: g.Controls.Union(base.Controls),
		}
	}

	out := g
	out.Base = &base

	return out
}

// HasDecomposition reports whether DecomposeQubitConditioned can rewrite the
// given conditioned gate.
func HasDecomposition(g Gate) bool {
	if g.Kind != KindQubitConditioned {
		return false
	}

	if len(g.Controls) > 1 {
		return true
	}

	if _, ok := KnownConditionedGate(g.Base.Kind, len(g.Controls)); ok {
		return true
	}

	switch g.Base.Kind {
	case GlobalPhase, Identity, Rotation, MultiRZ:
		return true
	}

	return false
}

// DecomposeQubitConditioned rewrites a qubit-conditioned gate into simpler
// gates.  Rules are tried in priority order: the closed-form table, Z-string
// extension, identity and global-phase special cases, then the CNOT-ladder
// reduction for multiple controls.  Conjugating a single Z by a descending
// CNOT chain realises the product of Z's on every rung, so k controls reduce
// to one at the cost of 2(k-1) CNOTs.
func DecomposeQubitConditioned(g Gate) ([]Gate, error) {
	if g.Kind != KindQubitConditioned {
		return nil, fmt.Errorf("expected a qubit-conditioned gate, got %s", g.Name())
	}

	base := *g.Base

	if kind, ok := KnownConditionedGate(base.Kind, len(g.Controls)); ok {
		out := Gate{
			Kind:      kind,
			Params:    base.Params,
			Operands:  g.Wires(),
			FockLevel: base.FockLevel,
		}

		return []Gate{out}, nil
	}

	switch base.Kind {
	case MultiRZ:
		return []Gate{{Kind: MultiRZ, Params: base.Params, Operands: g.Wires()}}, nil

	case Identity:
		// I = exp(-i 0 I), hence exp(-i 0 ZI) = I.
		return []Gate{{Kind: Identity, Operands: g.Wires()}}, nil

	case GlobalPhase:
		return []Gate{{
			Kind:     MultiRZ,
			Params:   []float64{2 * base.Params[0]},
			Operands: g.Controls,
		}}, nil
	}

	if len(g.Controls) >= 2 {
		return decomposeByLadder(g)
	}

	if base.Kind == Rotation {
		return []Gate{{
			Kind:     ConditionalRotation,
			Params:   []float64{2 * base.Params[0]},
			Operands: g.Wires(),
		}}, nil
	}

	return nil, &ErrDecompositionUndefined{g}
}

func decomposeByLadder(g Gate) ([]Gate, error) {
	controls := g.Controls

	cnots := make([]Gate, 0, len(controls)-1)
	for i := 0; i+1 < len(controls); i++ {
		cnots = append(cnots, MustGate(CNOT, nil, controls[i], controls[i+1]))
	}

	inner, err := Qcond(*g.Base, wire.NewWires(controls[len(controls)-1]))
	if err != nil {
		return nil, err
	}

	out := make([]Gate, 0, 2*len(cnots)+1)
	out = append(out, cnots...)
	out = append(out, inner)

	for i := len(cnots) - 1; i >= 0; i-- {
		out = append(out, cnots[i])
	}

	return out, nil
}

// Generator returns the tensor factors of the Hermitian generator of a gate,
// when one is known in closed form.  For a qubit-conditioned gate the
// generator is Z on every control wire tensored with the base generator.
func Generator(g Gate) ([]Gate, bool) {
	switch g.Kind {
	case KindQubitConditioned:
		base, ok := Generator(*g.Base)
		if !ok {
			return nil, false
		}

		factors := make([]Gate, 0, len(g.Controls)+len(base))
		for _, c := range g.Controls {
			factors = append(factors, MustGate(PauliZ, nil, c))
		}

		return append(factors, base...), true

	case Rotation:
		return []Gate{MustGate(NumberOperator, nil, g.Operands[0])}, true

	case RZ, IsingZZ, MultiRZ:
		factors := make([]Gate, 0, len(g.Operands))
		for _, w := range g.Operands {
			factors = append(factors, MustGate(PauliZ, nil, w))
		}

		return factors, true

	case GlobalPhase:
		return []Gate{{Kind: Identity}}, true
	}

	return nil, false
}
