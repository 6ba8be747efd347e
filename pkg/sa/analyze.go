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
package sa

import (
	"fmt"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// StaticAnalysisResult holds the inferred wire partition of a circuit plus
// one basis schema per measurement.  Results are produced fresh by one
// analysis pass and never mutated afterwards.
type StaticAnalysisResult struct {
	// Qubits are the qubit-classified wires, in first-use order.
	Qubits wire.Wires
	// Qumodes are the qumode-classified wires, in first-use order.
	Qumodes wire.Wires
	// Schemas holds the inferred basis schema of each measurement,
	// index-aligned with the circuit's measurement list.
	Schemas []BasisSchema
}

// Analyze type-checks a circuit, partitioning its wires into qubits and
// qumodes and inferring the measurement basis required for every measured
// qumode.  Analysis fails with a StaticAnalysisError if any wire is used both
// as a qubit and as a qumode, or if a single measurement demands two bases of
// the same qumode.
func Analyze(c *circuit.Circuit) (*StaticAnalysisResult, error) {
	a := &analyzer{
		qubitCtx:  make(map[wire.Wire]string),
		qumodeCtx: make(map[wire.Wire]string),
	}

	for i := range c.Operations {
		if err := a.classifyGate(&c.Operations[i]); err != nil {
			return nil, err
		}
	}

	schemas := make([]BasisSchema, len(c.Measurements))

	for i, m := range c.Measurements {
		if m.Obs == nil {
			continue
		}

		bases := make(map[wire.Wire]ComputationalBasis)
		if err := a.walkObservable(m.Obs, bases); err != nil {
			return nil, err
		}

		schemas[i] = buildSchema(a.qumodes, bases)
	}

	return &StaticAnalysisResult{
		Qubits:  a.qubits,
		Qumodes: a.qumodes,
		Schemas: schemas,
	}, nil
}

// analyzer accumulates wire classifications together with the context (a gate
// or observable description) that forced each classification, so conflicts
// can be reported naming both sides.
type analyzer struct {
	qubits    wire.Wires
	qumodes   wire.Wires
	qubitCtx  map[wire.Wire]string
	qumodeCtx map[wire.Wire]string
}

func (a *analyzer) classify(w wire.Wire, t WireType, ctx string) error {
	switch t {
	case Qubit:
		if other, clash := a.qumodeCtx[w]; clash {
			return aliasingError(w, ctx, other)
		}

		if _, seen := a.qubitCtx[w]; !seen {
			a.qubitCtx[w] = ctx
			a.qubits = a.qubits.Append(w)
		}

	case Qumode:
		if other, clash := a.qubitCtx[w]; clash {
			return aliasingError(w, other, ctx)
		}

		if _, seen := a.qumodeCtx[w]; !seen {
			a.qumodeCtx[w] = ctx
			a.qumodes = a.qumodes.Append(w)
		}
	}

	return nil
}

// classifyGate records the wire types demanded by one gate's signature.  The
// trailing NumQumodes wires of a fixed-arity gate are qumode-typed and all
// preceding wires are qubit-typed; symbolic wrappers recurse into their base
// with control wires classified as qubits.
func (a *analyzer) classifyGate(g *ops.Gate) error {
	ctx := fmt.Sprintf("gate %s", g.String())

	switch g.Kind {
	case ops.KindQubitConditioned:
		for _, c := range g.Controls {
			if err := a.classify(c, Qubit, ctx); err != nil {
				return err
			}
		}

		return a.classifyGate(g.Base)

	case ops.KindAdjoint, ops.KindPow:
		return a.classifyGate(g.Base)
	}

	if g.Kind.Is(ops.FlagUntyped) {
		return nil
	}

	sig := ops.SignatureOf(g.Kind)
	operands := g.Operands

	if g.Kind.Is(ops.FlagVariadic) {
		t := Qubit
		if g.Kind.Is(ops.FlagAllQumodes) {
			t = Qumode
		}

		for _, w := range operands {
			if err := a.classify(w, t, ctx); err != nil {
				return err
			}
		}

		return nil
	}

	numQubits := sig.NumWires - sig.NumQumodes

	for i, w := range operands {
		t := Qubit
		if uint(i) >= numQubits {
			t = Qumode
		}

		if err := a.classify(w, t, ctx); err != nil {
			return err
		}
	}

	return nil
}

// walkObservable classifies an observable tree and accumulates the basis each
// qumode must be measured in.  Tensor products, sums, scalar multiples and
// powers are traversed structurally.
func (a *analyzer) walkObservable(obs circuit.Observable, bases map[wire.Wire]ComputationalBasis) error {
	switch node := obs.(type) {
	case *circuit.LeafObs:
		if err := a.classifyGate(&node.Gate); err != nil {
			return err
		}

		return recordBasis(&node.Gate, bases)

	case *circuit.TensorObs:
		for _, f := range node.Factors {
			if err := a.walkObservable(f, bases); err != nil {
				return err
			}
		}

	case *circuit.SumObs:
		for _, t := range node.Terms {
			if err := a.walkObservable(t, bases); err != nil {
				return err
			}
		}

	case *circuit.ScaledObs:
		return a.walkObservable(node.Obs, bases)

	case *circuit.PowObs:
		return a.walkObservable(node.Obs, bases)

	default:
		return fmt.Errorf("unsupported observable node %T", obs)
	}

	return nil
}

// naturalBasis gives the measurement basis a leaf observable demands of its
// qumode wires.
func naturalBasis(k ops.Kind) ComputationalBasis {
	switch k {
	case ops.NumberOperator, ops.TensorN, ops.FockStateProjector:
		return BasisDiscrete
	case ops.QuadX, ops.QuadP, ops.QuadOperator:
		return BasisPosition
	default:
		return BasisUnset
	}
}

func recordBasis(g *ops.Gate, bases map[wire.Wire]ComputationalBasis) error {
	basis := naturalBasis(g.Kind)
	if basis == BasisUnset {
		return nil
	}

	for _, w := range g.Wires() {
		if prev, ok := bases[w]; ok && prev != basis {
			return basisConflictError(w, prev, basis)
		}

		bases[w] = basis
	}

	return nil
}

// buildSchema groups the per-wire basis requirements of one measurement into
// a schema, with group wires ordered as in the analyzed qumode list.
func buildSchema(qumodes wire.Wires, bases map[wire.Wire]ComputationalBasis) BasisSchema {
	var (
		discrete wire.Wires
		position wire.Wires
	)

	for _, w := range qumodes {
		switch bases[w] {
		case BasisDiscrete:
			discrete = discrete.Append(w)
		case BasisPosition:
			position = position.Append(w)
		}
	}

	var (
		groups []wire.Wires
		kinds  []ComputationalBasis
	)

	if len(discrete) > 0 {
		groups = append(groups, discrete)
		kinds = append(kinds, BasisDiscrete)
	}

	if len(position) > 0 {
		groups = append(groups, position)
		kinds = append(kinds, BasisPosition)
	}

	return NewBasisSchema(groups, kinds)
}
