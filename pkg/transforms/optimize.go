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

// Package transforms provides circuit-to-circuit rewrites: peephole
// optimizations run between decomposition passes, and the measurement
// diagonalization which reduces every observable to a computational basis.
package transforms

import (
	"math"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// Transform rewrites a circuit, preserving its semantics.
type Transform func(circuit.Circuit) (circuit.Circuit, error)

// Chain composes transforms left to right.
func Chain(ts ...Transform) Transform {
	return func(c circuit.Circuit) (circuit.Circuit, error) {
		var err error

		for _, t := range ts {
			if c, err = t(c); err != nil {
				return c, err
			}
		}

		return c, nil
	}
}

// CancelInverses removes adjacent gate pairs that are mutual inverses on the
// same operands.  Gates on disjoint wires are looked through.
func CancelInverses(c circuit.Circuit) (circuit.Circuit, error) {
	var out []ops.Gate

	for _, g := range c.Operations {
		cancelled := false

		// Find the nearest earlier gate sharing a wire.
		for i := len(out) - 1; i >= 0; i-- {
			prev := out[i]
			if prev.Wires().Disjoint(g.Wires()) {
				continue
			}

			inv := ops.Simplify(ops.Adjoint(prev))
			if prev.Wires().Equals(g.Wires()) && inv.Equals(&g) {
				out = append(out[:i], out[i+1:]...)
				cancelled = true
			}

			break
		}

		if !cancelled {
			out = append(out, g)
		}
	}

	return c.WithOperations(out), nil
}

// MergeRotations fuses adjacent composable rotations of the same kind on the
// same operands by summing their angles.  Merges that reach a full period
// vanish entirely.
func MergeRotations(c circuit.Circuit) (circuit.Circuit, error) {
	var out []ops.Gate

	for _, g := range c.Operations {
		merged := false

		for i := len(out) - 1; i >= 0; i-- {
			prev := out[i]
			if prev.Wires().Disjoint(g.Wires()) {
				continue
			}

			if mergeable(prev, g) {
				params := make([]float64, len(prev.Params))
				copy(params, prev.Params)
				params[0] += g.Params[0]

				combined := prev
				combined.Params = params

				if s := ops.Simplify(combined); s.Kind == ops.Identity {
					out = append(out[:i], out[i+1:]...)
				} else {
					out[i] = s
				}

				merged = true
			}

			break
		}

		if !merged {
			out = append(out, g)
		}
	}

	return c.WithOperations(out), nil
}

// mergeable reports whether two gates are the same composable rotation,
// differing only in their angle.
func mergeable(a, b ops.Gate) bool {
	if a.Kind != b.Kind || !a.Kind.Is(ops.FlagComposable) {
		return false
	}

	if !a.Operands.Equals(b.Operands) || a.FockLevel != b.FockLevel {
		return false
	}

	for i := 1; i < len(a.Params); i++ {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}

	return true
}

// CommuteControlled pushes single-qubit basis gates rightward through the
// conditioned gates they commute with, bringing cancellable pairs together.
// Z-type gates slide past the condition qubit of phase-conditioned gates;
// X-type gates slide past targets of CNOTs and the X-conditioned family.
func CommuteControlled(c circuit.Circuit) (circuit.Circuit, error) {
	gates := append([]ops.Gate(nil), c.Operations...)

	for changed := true; changed; {
		changed = false

		for i := 0; i+1 < len(gates); i++ {
			if commutesPast(gates[i], gates[i+1]) {
				gates[i], gates[i+1] = gates[i+1], gates[i]
				changed = true
			}
		}
	}

	return c.WithOperations(gates), nil
}

// commutesPast reports whether a single-qubit gate a may move to the right of
// a wider gate b.
func commutesPast(a, b ops.Gate) bool {
	sig := ops.SignatureOf(a.Kind)
	if sig.NumWires != 1 || len(b.Wires()) < 2 {
		return false
	}

	w := a.Operands[0]
	if !b.Wires().Contains(w) {
		return false
	}

	switch {
	case zBasisGate(a.Kind):
		return zCommutes(b, w)
	case xBasisGate(a.Kind):
		return xCommutes(b, w)
	}

	return false
}

func zBasisGate(k ops.Kind) bool {
	switch k {
	case ops.PauliZ, ops.RZ, ops.PhaseShift, ops.SGate, ops.TGate:
		return true
	}

	return false
}

func xBasisGate(k ops.Kind) bool {
	switch k {
	case ops.PauliX, ops.RX, ops.SX:
		return true
	}

	return false
}

// zCommutes reports whether gate g acts diagonally in the Z basis on wire w.
func zCommutes(g ops.Gate, w wire.Wire) bool {
	switch g.Kind {
	case ops.CZ, ops.IsingZZ, ops.MultiRZ:
		return true
	case ops.CNOT,
		ops.ConditionalRotation,
		ops.ConditionalDisplacement,
		ops.ConditionalParity,
		ops.ConditionalSqueezing,
		ops.ConditionalBeamsplitter,
		ops.ConditionalTwoModeSqueezing,
		ops.ConditionalTwoModeSum:
		return w == g.Operands[0]
	}

	return false
}

// xCommutes reports whether gate g acts diagonally in the X basis on wire w.
func xCommutes(g ops.Gate, w wire.Wire) bool {
	switch g.Kind {
	case ops.IsingXX:
		return true
	case ops.CNOT:
		return w == g.Operands[1]
	case ops.ConditionalXDisplacement, ops.ConditionalXSqueezing, ops.Rabi:
		return w == g.Operands[0]
	}

	return false
}

// CombineGlobalPhases folds every global phase into a single trailing gate,
// dropping it when the total vanishes modulo a full period.
func CombineGlobalPhases(c circuit.Circuit) (circuit.Circuit, error) {
	var (
		out   []ops.Gate
		total float64
		seen  bool
	)

	for _, g := range c.Operations {
		if g.Kind == ops.GlobalPhase {
			total += g.Params[0]
			seen = true

			continue
		}

		out = append(out, g)
	}

	if seen {
		total = math.Mod(total, 2*math.Pi)
		if math.Abs(total) > 1e-9 {
			out = append(out, ops.MustGate(ops.GlobalPhase, []float64{total}))
		}
	}

	return c.WithOperations(out), nil
}

// SimplifyOps applies the local gate simplifications across the circuit and
// drops resulting identities.
func SimplifyOps(c circuit.Circuit) (circuit.Circuit, error) {
	var out []ops.Gate

	for _, g := range c.Operations {
		if s := ops.Simplify(g); s.Kind != ops.Identity {
			out = append(out, s)
		}
	}

	return c.WithOperations(out), nil
}
