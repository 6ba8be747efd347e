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

// Package circuit provides the quantum-circuit intermediate representation
// consumed by the analysis and compilation passes: an ordered operation
// sequence plus a measurement list, with wire bookkeeping but no simulation
// semantics.
package circuit

import (
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// MeasurementType identifies how a measurement's statistics are gathered.
type MeasurementType uint8

const (
	// Expval is the analytic expectation value of an observable.
	Expval MeasurementType = iota
	// Var is the analytic variance of an observable.
	Var
	// Sample draws shot samples of an observable (or of the given wires).
	Sample
	// Counts tallies shot samples into a histogram.
	Counts
	// Probs estimates the outcome distribution over the given wires.
	Probs
)

// IsSampleBased reports whether this measurement type is computed from shot
// samples rather than analytically.
func (t MeasurementType) IsSampleBased() bool {
	return t == Sample || t == Counts || t == Probs
}

func (t MeasurementType) String() string {
	return [...]string{"expval", "var", "sample", "counts", "probs"}[t]
}

// Measurement pairs a measurement type with either an observable or an
// explicit wire list.
type Measurement struct {
	// Type identifies the statistic.
	Type MeasurementType
	// Obs is the measured observable, or nil for a bare wire measurement.
	Obs Observable
	// Operands is the explicit wire list of an observable-free measurement.
	Operands wire.Wires
}

// Wires returns the wires this measurement touches.
func (m Measurement) Wires() wire.Wires {
	if m.Obs != nil {
		return m.Obs.Wires()
	}

	return m.Operands
}

// MapWires relabels the measurement's wires through the given map.
func (m Measurement) MapWires(wm map[wire.Wire]wire.Wire) Measurement {
	out := m
	if m.Obs != nil {
		out.Obs = m.Obs.MapWires(wm)
	}

	if m.Operands != nil {
		mapped := make(wire.Wires, len(m.Operands))
		for i, w := range m.Operands {
			if v, ok := wm[w]; ok {
				mapped[i] = v
			} else {
				mapped[i] = w
			}
		}

		out.Operands = mapped
	}

	return out
}

// Circuit is an ordered sequence of operations followed by a list of
// measurements.  Circuits are treated as immutable by every pass: transforms
// return fresh circuits rather than mutating their input.
type Circuit struct {
	// Operations is the gate sequence, in execution order.
	Operations []ops.Gate
	// Measurements are the terminal measurements.
	Measurements []Measurement
	// Shots is the number of samples per measurement group (zero means
	// analytic execution was requested).
	Shots uint
}

// Wires returns the ordered union of all wires touched by any operation or
// measurement, in first-use order.
func (c *Circuit) Wires() wire.Wires {
	var ws wire.Wires

	for i := range c.Operations {
		ws = ws.Union(c.Operations[i].Wires())
	}

	for _, m := range c.Measurements {
		ws = ws.Union(m.Wires())
	}

	return ws
}

// MapWires returns a copy of this circuit with every wire relabelled through
// the given map.
func (c *Circuit) MapWires(m map[wire.Wire]wire.Wire) Circuit {
	out := Circuit{
		Operations:   make([]ops.Gate, len(c.Operations)),
		Measurements: make([]Measurement, len(c.Measurements)),
		Shots:        c.Shots,
	}

	for i := range c.Operations {
		out.Operations[i] = c.Operations[i].MapWires(m)
	}

	for i, meas := range c.Measurements {
		out.Measurements[i] = meas.MapWires(m)
	}

	return out
}

// WithOperations returns a copy of this circuit holding the given operation
// sequence but the same measurements and shot count.
func (c *Circuit) WithOperations(operations []ops.Gate) Circuit {
	return Circuit{
		Operations:   operations,
		Measurements: c.Measurements,
		Shots:        c.Shots,
	}
}
