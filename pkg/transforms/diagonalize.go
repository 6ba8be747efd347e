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

package transforms

import (
	"fmt"
	"math"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// rotationOf describes how one observable leaf reaches its measurement
// basis: the gates rotating the wire, and a key identifying the rotation so
// incompatible requirements on a shared wire can be detected.
type rotationOf struct {
	key   string
	gates []ops.Gate
}

// DiagonalizeMeasurements rewrites every observable into a computational
// basis, appending the basis rotations to the circuit.  Pauli observables
// become PauliZ; quadrature observables become QuadX.  Observables that need
// incompatible rotations on a shared wire are rejected.
func DiagonalizeMeasurements(c circuit.Circuit) (circuit.Circuit, error) {
	required := make(map[wire.Wire]rotationOf)
	order := wire.Wires{}

	measurements := make([]circuit.Measurement, len(c.Measurements))

	for i, m := range c.Measurements {
		measurements[i] = m

		if m.Obs == nil {
			continue
		}

		obs, err := diagonalizeObs(m.Obs, required, &order)
		if err != nil {
			return c, err
		}

		measurements[i].Obs = obs
	}

	gates := append([]ops.Gate(nil), c.Operations...)

	for _, w := range order {
		gates = append(gates, required[w].gates...)
	}

	out := c.WithOperations(gates)
	out.Measurements = measurements

	return out, nil
}

// MeasurementRotations collects the basis rotations a single measurement
// needs, without rewriting its observable.  Serializers use this to emit the
// rotations next to each measurement group instead of folding them into the
// circuit body.
func MeasurementRotations(m circuit.Measurement) ([]ops.Gate, error) {
	if m.Obs == nil {
		return nil, nil
	}

	required := make(map[wire.Wire]rotationOf)
	order := wire.Wires{}

	if _, err := diagonalizeObs(m.Obs, required, &order); err != nil {
		return nil, err
	}

	var gates []ops.Gate
	for _, w := range order {
		gates = append(gates, required[w].gates...)
	}

	return gates, nil
}

// diagonalizeObs maps an observable tree onto its computational-basis form,
// recording the rotation each wire requires.
func diagonalizeObs(obs circuit.Observable, required map[wire.Wire]rotationOf, order *wire.Wires) (circuit.Observable, error) {
	switch o := obs.(type) {
	case *circuit.LeafObs:
		return diagonalizeLeaf(o, required, order)

	case *circuit.TensorObs:
		factors := make([]circuit.Observable, len(o.Factors))

		for i, f := range o.Factors {
			d, err := diagonalizeObs(f, required, order)
			if err != nil {
				return nil, err
			}

			factors[i] = d
		}

		return &circuit.TensorObs{Factors: factors}, nil

	case *circuit.SumObs:
		terms := make([]circuit.Observable, len(o.Terms))

		for i, t := range o.Terms {
			d, err := diagonalizeObs(t, required, order)
			if err != nil {
				return nil, err
			}

			terms[i] = d
		}

		return &circuit.SumObs{Terms: terms}, nil

	case *circuit.ScaledObs:
		d, err := diagonalizeObs(o.Obs, required, order)
		if err != nil {
			return nil, err
		}

		return &circuit.ScaledObs{Scale: o.Scale, Obs: d}, nil

	case *circuit.PowObs:
		d, err := diagonalizeObs(o.Obs, required, order)
		if err != nil {
			return nil, err
		}

		return &circuit.PowObs{Obs: d, Exponent: o.Exponent}, nil
	}

	return nil, fmt.Errorf("cannot diagonalize observable of type %T", obs)
}

func diagonalizeLeaf(leaf *circuit.LeafObs, required map[wire.Wire]rotationOf, order *wire.Wires) (circuit.Observable, error) {
	g := leaf.Gate

	if g.Kind == ops.Identity || g.Kind.Is(ops.FlagVariadic) {
		// Wire-free or all-mode observables measure in the native basis.
		return leaf, nil
	}

	rot, replacement := leafRotation(g)
	w := g.Operands[0]

	if prev, ok := required[w]; ok {
		if prev.key != rot.key {
			return nil, fmt.Errorf("wire %s is measured in incompatible bases", w)
		}
	} else {
		required[w] = rot
		*order = order.Append(w)
	}

	if replacement == g.Kind {
		return leaf, nil
	}

	mapped := ops.MustGate(replacement, nil, g.Operands...)

	return &circuit.LeafObs{Gate: mapped}, nil
}

// leafRotation gives the basis rotation and computational-basis replacement
// for one observable kind.
func leafRotation(g ops.Gate) (rotationOf, ops.Kind) {
	w := g.Operands[0]

	switch g.Kind {
	case ops.PauliX:
		return rotationOf{
			key:   "X",
			gates: []ops.Gate{ops.MustGate(ops.Hadamard, nil, w)},
		}, ops.PauliZ

	case ops.PauliY:
		return rotationOf{
			key: "Y",
			gates: []ops.Gate{
				ops.MustGate(ops.PauliZ, nil, w),
				ops.MustGate(ops.SGate, nil, w),
				ops.MustGate(ops.Hadamard, nil, w),
			},
		}, ops.PauliZ

	case ops.Hadamard:
		return rotationOf{
			key:   "H",
			gates: []ops.Gate{ops.MustGate(ops.RY, []float64{-math.Pi / 4}, w)},
		}, ops.PauliZ

	case ops.QuadP:
		return rotationOf{
			key:   "P",
			gates: []ops.Gate{ops.MustGate(ops.Rotation, []float64{math.Pi / 2}, w)},
		}, ops.QuadX

	case ops.QuadOperator:
		return rotationOf{
			key:   fmt.Sprintf("Quad(%g)", g.Params[0]),
			gates: []ops.Gate{ops.MustGate(ops.Rotation, []float64{g.Params[0]}, w)},
		}, ops.QuadX
	}

	// Already diagonal in its computational basis.
	return rotationOf{}, g.Kind
}
