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

package qscout

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/decompose"
	"github.com/pnnl/go-hybridlane/pkg/jaqal"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/sa"
	"github.com/pnnl/go-hybridlane/pkg/transforms"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// MaxQubits is the size of the ion chain.
const MaxQubits = 6

// DeviceError indicates a circuit the hardware cannot run.
type DeviceError struct {
	// Detail describes the violated restriction.
	Detail string
}

func (e *DeviceError) Error() string {
	return e.Detail
}

func deviceErrorf(format string, args ...any) *DeviceError {
	return &DeviceError{Detail: fmt.Sprintf(format, args...)}
}

// Options configure the compilation pipeline.
type Options struct {
	// Optimize enables the peephole passes between decomposition runs.
	Optimize bool
	// MaxQubits is the qubit budget per circuit.  Zero infers it from each
	// circuit; setting it above the circuit's own count grants access to
	// extra qumodes and ancilla qubits.
	MaxQubits uint
	// EnableCOMModes admits the center-of-mass qumodes, which are noisy due
	// to heating and excluded by default.
	EnableCOMModes bool
	// UseVirtualWires permits algorithmic wire labels, mapped onto hardware
	// wires by the layout solver.  When false the circuit must already use
	// hardware labels.
	UseVirtualWires bool
	// LayoutBudget bounds the layout search.  csp.DefaultMaxSteps when zero.
	LayoutBudget uint
}

// DefaultOptions returns the options the hardware team recommends.
func DefaultOptions() Options {
	return Options{
		Optimize:        true,
		UseVirtualWires: true,
	}
}

// nativeTargets is the hardware gate set with cost weights.  The plain
// conditional displacements are priced above their X-basis form so the
// search prefers the latter.
func nativeTargets() decompose.TargetSet {
	t := decompose.NewTargetSet()

	for name := range jaqal.QubitGates {
		t[name] = 1
	}

	for name := range jaqal.BosonGates {
		t[name] = 1
	}

	return t.
		WithWeight(ops.ConditionalDisplacement.Name(), 3).
		WithWeight(ops.ConditionalYDisplacement.Name(), 3)
}

// gateSupported checks the hardware restrictions of one native gate
// instance.
func gateSupported(g *ops.Gate) bool {
	switch g.Kind {
	case ops.ConditionalXSqueezing:
		// Only driven on the lower-manifold tilt mode.
		return g.Operands[1] == jaqal.Qumode{Manifold: 1, Index: 1}.Wire()

	case ops.NativeBeamsplitter:
		// Only between the tilt modes, from the qubits the zig-zag indexing
		// exposes.
		tilt := wire.NewWires(jaqal.Qumode{Manifold: 0, Index: 1}.Wire(), jaqal.Qumode{Manifold: 1, Index: 1}.Wire())
		if !g.Operands.ContainsAll(tilt) {
			return false
		}

		switch g.Operands[0] {
		case wire.New("0"), wire.New("1"), wire.New("3"):
			return true
		}

		return false
	}

	name := g.Name()
	return jaqal.QubitGates.Has(name) || jaqal.BosonGates.Has(name)
}

// Compile lowers a circuit to the native instruction set, laid out on
// hardware wires and validated.  The returned analysis reflects the final
// circuit and drives emission.
func Compile(c circuit.Circuit, opts Options) (circuit.Circuit, *sa.StaticAnalysisResult, error) {
	if opts.MaxQubits > MaxQubits {
		return c, nil, deviceErrorf("requested %d qubits but the ion chain holds at most %d",
			opts.MaxQubits, MaxQubits)
	}

	c, err := transforms.DiagonalizeMeasurements(c)
	if err != nil {
		return c, nil, err
	}

	res, err := sa.Analyze(&c)
	if err != nil {
		return c, nil, err
	}

	if len(res.Qubits) == 0 && len(res.Qumodes) == 0 && len(c.Operations) > 0 {
		return c, nil, deviceErrorf("no wire of the circuit could be typed; label at least one operand explicitly")
	}

	log.Debugf("analyzed circuit: %d qubits, %d qumodes", len(res.Qubits), len(res.Qumodes))

	// Decompose with ancilla allocation against the remaining qubit budget.
	var workWires uint
	if opts.MaxQubits > uint(len(res.Qubits)) {
		workWires = opts.MaxQubits - uint(len(res.Qubits))
	}

	dec, err := decompose.Decompose(c, decompose.Config{
		Targets:   nativeTargets(),
		WorkWires: workWires,
	})
	if err != nil {
		return c, nil, err
	}

	if dec.Outcome == decompose.OutcomePartial {
		return c, nil, deviceErrorf("no route to the native gate set for: %s",
			strings.Join(dec.Unsupported, ", "))
	}

	c = dec.Circuit

	if opts.UseVirtualWires {
		if c, err = layoutWires(c, opts); err != nil {
			return c, nil, err
		}
	}

	if opts.Optimize {
		optimize := transforms.Chain(
			transforms.CommuteControlled,
			transforms.CancelInverses,
			transforms.MergeRotations,
			transforms.SingleQubitFusion,
			decomposeNative,
			transforms.SimplifyOps,
			decomposeNative,
		)

		if c, err = optimize(c); err != nil {
			return c, nil, err
		}
	}

	if c, err = transforms.CombineGlobalPhases(c); err != nil {
		return c, nil, err
	}

	if res, err = validate(c, opts); err != nil {
		return c, nil, err
	}

	return c, res, nil
}

// decomposeNative re-runs decomposition as a transform, without ancilla
// allocation, to clean up after the optimization passes.
func decomposeNative(c circuit.Circuit) (circuit.Circuit, error) {
	res, err := decompose.Decompose(c, decompose.Config{Targets: nativeTargets()})
	if err != nil {
		return c, err
	}

	return res.Circuit, nil
}

// validate re-analyzes the final circuit and checks every hardware
// restriction: wire labels, gate support and measurement shape.
func validate(c circuit.Circuit, opts Options) (*sa.StaticAnalysisResult, error) {
	res, err := sa.Analyze(&c)
	if err != nil {
		return nil, err
	}

	maxQubits := opts.MaxQubits
	if maxQubits == 0 {
		maxQubits = MaxQubits
	}

	allowed := allowedDeviceWires(maxQubits, opts.EnableCOMModes)

	for _, w := range c.Wires() {
		if !allowed.Contains(w) {
			return nil, deviceErrorf("wire %s is not a hardware wire of this device", w)
		}
	}

	for i := range c.Operations {
		if !gateSupported(&c.Operations[i]) {
			return nil, deviceErrorf("operation %s is not supported natively", c.Operations[i].String())
		}
	}

	if err := validateMeasurements(&c); err != nil {
		return nil, err
	}

	return res, nil
}

// validateMeasurements enforces shot-based readout of diagonal observables;
// the hardware has no analytic mode.
func validateMeasurements(c *circuit.Circuit) error {
	if len(c.Measurements) == 0 {
		return deviceErrorf("circuit has no measurements")
	}

	if c.Shots == 0 {
		return deviceErrorf("analytic measurements are not supported; set a shot count")
	}

	for _, m := range c.Measurements {
		if m.Obs == nil {
			continue
		}

		if !diagonalObservable(m.Obs) {
			return deviceErrorf("observable is not diagonal in a hardware readout basis")
		}
	}

	return nil
}

// diagonalObservable accepts the observable shapes the readout hardware can
// sample: computational-basis leaves and tensor products of them.
func diagonalObservable(obs circuit.Observable) bool {
	switch o := obs.(type) {
	case *circuit.LeafObs:
		switch o.Gate.Kind {
		case ops.Identity, ops.PauliZ, ops.NumberOperator, ops.QuadX,
			ops.FockStateProjector, ops.TensorN:
			return true
		}

		return false

	case *circuit.TensorObs:
		for _, f := range o.Factors {
			if !diagonalObservable(f) {
				return false
			}
		}

		return true

	case *circuit.ScaledObs:
		return diagonalObservable(o.Obs)
	}

	return false
}
