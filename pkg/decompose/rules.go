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

package decompose

import (
	"math"

	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// Rule is a single rewrite of one operator into an equivalent sequence.
// Produces declares what the rewrite emits, as resource representations with
// multiplicities, so the search can cost a rule without applying it.  Apply
// performs the rewrite on a concrete gate.
type Rule struct {
	// Produces lists the operator counts this rule emits.
	Produces func(rep ResourceRep) []Count
	// WorkWires is the number of fresh ancilla qubits Apply allocates.
	WorkWires uint
	// Apply rewrites the gate.  Gates are returned in circuit order.
	Apply func(g ops.Gate, alloc *Allocator) ([]ops.Gate, error)
}

// emits builds a static Produces function from a fixed count list.
func emits(counts ...Count) func(ResourceRep) []Count {
	return func(ResourceRep) []Count { return counts }
}

// rep, adjointRep and condRep are shorthands for building count tables.
func rep(k ops.Kind) ResourceRep {
	return ResourceRep{Kind: k}
}

func adjointRep(k ops.Kind) ResourceRep {
	base := rep(k)
	return ResourceRep{Kind: ops.KindAdjoint, Base: &base}
}

// Qubit gate rewrites.  The two-qubit entangling primitive on trapped ions is
// the Moelmer-Soerensen interaction, expressed here as IsingXX.

var hadamardRule = Rule{
	Produces: emits(Count{rep(ops.RY), 1}, Count{rep(ops.PauliZ), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		w := g.Operands[0]

		return []ops.Gate{
			ops.MustGate(ops.RY, []float64{-math.Pi / 2}, w),
			ops.MustGate(ops.PauliZ, nil, w),
		}, nil
	},
}

var cnotRule = Rule{
	Produces: emits(Count{rep(ops.IsingXX), 1}, Count{rep(ops.RY), 2}, Count{rep(ops.RX), 2}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		c, t := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.RY, []float64{math.Pi / 2}, c),
			ops.MustGate(ops.IsingXX, []float64{math.Pi / 2}, c, t),
			ops.MustGate(ops.RX, []float64{-math.Pi / 2}, t),
			ops.MustGate(ops.RX, []float64{-math.Pi / 2}, c),
			ops.MustGate(ops.RY, []float64{-math.Pi / 2}, c),
		}, nil
	},
}

var rotRule = Rule{
	Produces: emits(Count{rep(ops.AxisRotation), 2}, Count{rep(ops.GlobalPhase), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		phi, theta, omega := g.Params[0], g.Params[1], g.Params[2]
		w := g.Operands[0]

		return []ops.Gate{
			ops.MustGate(ops.AxisRotation, []float64{theta - math.Pi, math.Pi/2 - phi}, w),
			ops.MustGate(ops.AxisRotation, []float64{math.Pi, (omega-phi)/2 + math.Pi/2}, w),
			ops.MustGate(ops.GlobalPhase, []float64{(phi + omega) / 2}),
		}, nil
	},
}

var tRule = Rule{
	Produces: emits(Count{rep(ops.PhaseShift), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		return []ops.Gate{ops.MustGate(ops.PhaseShift, []float64{math.Pi / 4}, g.Operands[0])}, nil
	},
}

var phaseShiftRule = Rule{
	Produces: emits(Count{rep(ops.RZ), 1}, Count{rep(ops.GlobalPhase), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		phi := g.Params[0]

		return []ops.Gate{
			ops.MustGate(ops.RZ, []float64{phi}, g.Operands[0]),
			ops.MustGate(ops.GlobalPhase, []float64{-phi / 2}),
		}, nil
	},
}

var czRule = Rule{
	Produces: emits(Count{rep(ops.Hadamard), 2}, Count{rep(ops.CNOT), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		c, t := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.Hadamard, nil, t),
			ops.MustGate(ops.CNOT, nil, c, t),
			ops.MustGate(ops.Hadamard, nil, t),
		}, nil
	},
}

var swapRule = Rule{
	Produces: emits(Count{rep(ops.CNOT), 3}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, b := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.CNOT, nil, a, b),
			ops.MustGate(ops.CNOT, nil, b, a),
			ops.MustGate(ops.CNOT, nil, a, b),
		}, nil
	},
}

// Qumode gate rewrites.

var fourierRule = Rule{
	Produces: emits(Count{rep(ops.Rotation), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		return []ops.Gate{ops.MustGate(ops.Rotation, []float64{math.Pi / 2}, g.Operands[0])}, nil
	},
}

// Hybrid gate rewrites.  The conditional displacement admits three routes
// (parity sandwich, echoed form, Rabi sandwich); the search picks whichever
// is cheapest against the target set.

var cdParityRule = Rule{
	Produces: emits(
		Count{rep(ops.ConditionalParity), 1},
		Count{adjointRep(ops.ConditionalParity), 1},
		Count{rep(ops.Displacement), 1},
	),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.Adjoint(ops.MustGate(ops.ConditionalParity, nil, q, m)),
			ops.MustGate(ops.Displacement, []float64{a, phi + math.Pi/2}, m),
			ops.MustGate(ops.ConditionalParity, nil, q, m),
		}, nil
	},
}

var cdEchoRule = Rule{
	Produces: emits(Count{rep(ops.EchoedConditionalDisplacement), 1}, Count{rep(ops.PauliX), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.EchoedConditionalDisplacement, []float64{2 * a, phi}, q, m),
			ops.MustGate(ops.PauliX, nil, q),
		}, nil
	},
}

var cdRabiRule = Rule{
	Produces: emits(Count{rep(ops.Rabi), 1}, Count{rep(ops.Hadamard), 2}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.Hadamard, nil, q),
			ops.MustGate(ops.Rabi, []float64{a, phi + math.Pi/2}, q, m),
			ops.MustGate(ops.Hadamard, nil, q),
		}, nil
	},
}

var rabiRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalDisplacement), 1}, Count{rep(ops.Hadamard), 2}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		r, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.Hadamard, nil, q),
			ops.MustGate(ops.ConditionalDisplacement, []float64{r, phi - math.Pi/2}, q, m),
			ops.MustGate(ops.Hadamard, nil, q),
		}, nil
	},
}

var ecdRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalDisplacement), 1}, Count{rep(ops.PauliX), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.ConditionalDisplacement, []float64{a / 2, phi}, q, m),
			ops.MustGate(ops.PauliX, nil, q),
		}, nil
	},
}

var xcdRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalDisplacement), 1}, Count{rep(ops.Hadamard), 2}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.MustGate(ops.Hadamard, nil, q),
			ops.MustGate(ops.ConditionalDisplacement, []float64{a, phi}, q, m),
			ops.MustGate(ops.Hadamard, nil, q),
		}, nil
	},
}

var ycdRule = Rule{
	Produces: emits(
		Count{rep(ops.ConditionalXDisplacement), 1},
		Count{rep(ops.SGate), 1},
		Count{adjointRep(ops.SGate), 1},
	),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		a, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.Adjoint(ops.MustGate(ops.SGate, nil, q)),
			ops.MustGate(ops.ConditionalXDisplacement, []float64{a, phi}, q, m),
			ops.MustGate(ops.SGate, nil, q),
		}, nil
	},
}

var csRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalRotation), 2}, Count{rep(ops.Squeezing), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		r, phi := g.Params[0], g.Params[1]
		q, m := g.Operands[0], g.Operands[1]

		return []ops.Gate{
			ops.Adjoint(ops.MustGate(ops.ConditionalRotation, []float64{math.Pi / 2}, q, m)),
			ops.MustGate(ops.Squeezing, []float64{r, phi + math.Pi/2}, m),
			ops.MustGate(ops.ConditionalRotation, []float64{math.Pi / 2}, q, m),
		}, nil
	},
}

var snapRule = Rule{
	Produces: emits(Count{rep(ops.SelectiveQubitRotation), 2}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		phi := g.Params[0]

		first, err := ops.NewFockGate(ops.SelectiveQubitRotation, g.FockLevel, []float64{math.Pi, 0}, g.Operands)
		if err != nil {
			return nil, err
		}

		second, err := ops.NewFockGate(ops.SelectiveQubitRotation, g.FockLevel, []float64{-math.Pi, phi}, g.Operands)
		if err != nil {
			return nil, err
		}

		return []ops.Gate{first, second}, nil
	},
}

var cpRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalRotation), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		return []ops.Gate{
			ops.MustGate(ops.ConditionalRotation, []float64{math.Pi}, g.Operands[0], g.Operands[1]),
		}, nil
	},
}

var adjointCpRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalRotation), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		base := g.Base

		return []ops.Gate{
			ops.MustGate(ops.ConditionalRotation, []float64{-math.Pi}, base.Operands[0], base.Operands[1]),
		}, nil
	},
}

var powCpRule = Rule{
	Produces: emits(Count{rep(ops.ConditionalRotation), 1}),
	Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
		base := g.Base

		return []ops.Gate{
			ops.MustGate(ops.ConditionalRotation, []float64{math.Pi * g.Exponent}, base.Operands[0], base.Operands[1]),
		}, nil
	},
}

// ancillaRule rewrites an unconditional continuous-variable gate into its
// qubit-conditioned form acting on a fresh ancilla in the zero state, where
// the condition phase is trivial.  Rotation angles double under conditioning.
func ancillaRule(conditioned ops.Kind, scale float64) Rule {
	return Rule{
		Produces:  emits(Count{rep(conditioned), 1}),
		WorkWires: 1,
		Apply: func(g ops.Gate, alloc *Allocator) ([]ops.Gate, error) {
			anc, err := alloc.Fresh()
			if err != nil {
				return nil, err
			}

			params := make([]float64, len(g.Params))
			copy(params, g.Params)
			params[0] *= scale

			operands := append(wire.Wires{anc}, g.Operands...)

			gate, err := ops.New(conditioned, params, operands)
			if err != nil {
				return nil, err
			}

			return []ops.Gate{gate}, nil
		},
	}
}
