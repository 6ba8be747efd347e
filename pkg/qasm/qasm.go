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

// Package qasm serializes hybrid circuits into a continuous-variable superset
// of OpenQASM 3.  Qumodes are declared with a qumode register type and read
// out through opaque homodyne and fock_number calibration functions; strict
// mode falls back to plain qubit declarations for standard-compliant tooling.
package qasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/sa"
	"github.com/pnnl/go-hybridlane/pkg/transforms"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// StdGates are the instructions provided by the standard stdgates.inc
// library.
var StdGates = map[string]string{
	"GlobalPhase": "gphase",
	"Identity":    "id",
	"Hadamard":    "h",
	"PauliX":      "x",
	"PauliY":      "y",
	"PauliZ":      "z",
	"S":           "s",
	"Adjoint(S)":  "sdg",
	"T":           "t",
	"Adjoint(T)":  "tdg",
	"SX":          "sx",
	"Rot":         "u",
	"RX":          "rx",
	"RY":          "ry",
	"RZ":          "rz",
	"PhaseShift":  "p",
	"CNOT":        "cx",
	"CZ":          "cz",
	"SWAP":        "swap",
}

// CvGates are the continuous-variable instructions of the cvstdgates.inc
// extension library.
var CvGates = map[string]string{
	"Displacement":                  "cv_d",
	"Rotation":                      "cv_r",
	"Squeezing":                     "cv_sq",
	"Beamsplitter":                  "cv_bs",
	"TwoModeSqueezing":              "cv_sq2",
	"CubicPhase":                    "cv_p3",
	"SelectiveNumberArbitraryPhase": "cv_snap",
	"ConditionalDisplacement":       "cv_cd",
	"SelectiveQubitRotation":        "cv_sqr",
	"JaynesCummings":                "cv_jc",
	"ModeSwap":                      "cv_swap",
	"Fourier":                       "cv_f",
	"AntiJaynesCummings":            "cv_ajc",
	"ConditionalParity":             "cv_cp",
	"ConditionalRotation":           "cv_cr",
	"ConditionalBeamsplitter":       "cv_cbs",
	"ConditionalTwoModeSqueezing":   "cv_csq2",
}

const (
	cvStdLib    = "cvstdgates.inc"
	qumodeDef   = "qumode"
	measureX    = "homodyne"
	measureFock = "fock_number"
)

// Options configure serialization.
type Options struct {
	// Rotations emits the basis rotations of each measurement before its
	// measure statements.
	Rotations bool
	// Precision is the number of significant digits for real gate
	// arguments.  Zero emits shortest-roundtrip values.
	Precision int
	// Strict declares qumodes as qubit registers so the output parses
	// under unextended OpenQASM 3 tooling.
	Strict bool
	// FloatBits is the width of homodyne measurement results.
	FloatBits int
	// IntBits is the width of Fock measurement results.
	IntBits int
	// Indent is the number of spaces inside block bodies.
	Indent int
}

// DefaultOptions returns the serialization defaults.
func DefaultOptions() Options {
	return Options{
		Rotations: true,
		FloatBits: 32,
		IntBits:   32,
		Indent:    4,
	}
}

// Emit serializes a circuit as an OpenQASM 3 program.  The circuit body
// becomes a state_prep subroutine; measurements are split into wire-disjoint
// groups, each rerunning state_prep before its measure statements.
func Emit(c *circuit.Circuit, opts Options) (string, error) {
	res, err := sa.Analyze(c)
	if err != nil {
		return "", err
	}

	e := emitter{circuit: c, res: res, opts: opts}

	return e.run()
}

type emitter struct {
	circuit *circuit.Circuit
	res     *sa.StaticAnalysisResult
	opts    Options

	b       strings.Builder
	wireRef map[wire.Wire]string
	cvars   int
}

func (e *emitter) run() (string, error) {
	e.wireRef = make(map[wire.Wire]string, len(e.res.Qubits)+len(e.res.Qumodes))
	for i, w := range e.res.Qubits {
		e.wireRef[w] = fmt.Sprintf("q[%d]", i)
	}

	for i, w := range e.res.Qumodes {
		e.wireRef[w] = fmt.Sprintf("m[%d]", i)
	}

	e.header()

	if err := e.statePrep(); err != nil {
		return "", err
	}

	if err := e.measurements(); err != nil {
		return "", err
	}

	return e.b.String(), nil
}

func (e *emitter) header() {
	modeKw := qumodeDef
	if e.opts.Strict {
		modeKw = "qubit"
	}

	fmt.Fprintf(&e.b, "OPENQASM 3.0;\n\n")
	fmt.Fprintf(&e.b, "include \"stdgates.inc\";\ninclude %q;\n\n", cvStdLib)

	if len(e.res.Qubits) > 0 {
		fmt.Fprintf(&e.b, "qubit q[%d];\n", len(e.res.Qubits))
	}

	if len(e.res.Qumodes) > 0 {
		fmt.Fprintf(&e.b, "%s m[%d];\n", modeKw, len(e.res.Qumodes))
	}

	// Readout calibrations are opaque; in practice these hold hardware
	// pulse definitions.
	pad := strings.Repeat(" ", e.opts.Indent)
	fmt.Fprintf(&e.b, "cal {\n")
	fmt.Fprintf(&e.b, "%sdefcal %s(%s q) -> float[%d] {}\n", pad, measureX, modeKw, e.opts.FloatBits)
	fmt.Fprintf(&e.b, "%sdefcal %s(%s q) -> uint[%d] {}\n", pad, measureFock, modeKw, e.opts.IntBits)
	fmt.Fprintf(&e.b, "}\n")
}

func (e *emitter) statePrep() error {
	pad := strings.Repeat(" ", e.opts.Indent)

	fmt.Fprintf(&e.b, "\ndef state_prep() {\n")

	if len(e.res.Qubits) > 0 {
		fmt.Fprintf(&e.b, "%sreset q;\n", pad)
	}

	if len(e.res.Qumodes) > 0 {
		fmt.Fprintf(&e.b, "%sreset m;\n", pad)
	}

	for i := range e.circuit.Operations {
		line, err := e.gateLine(&e.circuit.Operations[i])
		if err != nil {
			return err
		}

		fmt.Fprintf(&e.b, "%s%s\n", pad, line)
	}

	fmt.Fprintf(&e.b, "}\n")

	return nil
}

// measurementGroups splits measurements into wire-disjoint groups, each of
// which can share a single circuit execution.
func measurementGroups(measurements []circuit.Measurement) [][]int {
	var groups [][]int
	var groupWires []wire.Wires

	for i, m := range measurements {
		placed := false

		for gi := range groups {
			if groupWires[gi].Disjoint(m.Wires()) {
				groups[gi] = append(groups[gi], i)
				groupWires[gi] = groupWires[gi].Union(m.Wires())
				placed = true

				break
			}
		}

		if !placed {
			groups = append(groups, []int{i})
			groupWires = append(groupWires, m.Wires())
		}
	}

	return groups
}

func (e *emitter) measurements() error {
	for _, group := range measurementGroups(e.circuit.Measurements) {
		fmt.Fprintf(&e.b, "\nstate_prep();\n")

		if e.opts.Rotations {
			for _, mi := range group {
				rotations, err := transforms.MeasurementRotations(e.circuit.Measurements[mi])
				if err != nil {
					return err
				}

				for i := range rotations {
					line, err := e.gateLine(&rotations[i])
					if err != nil {
						return err
					}

					fmt.Fprintf(&e.b, "%s\n", line)
				}
			}
		}

		for _, mi := range group {
			if err := e.measure(mi); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *emitter) measure(mi int) error {
	m := e.circuit.Measurements[mi]
	measured := m.Wires()

	if qubits := e.res.Qubits.Intersect(measured); len(qubits) > 0 {
		cvar := e.fresh()
		fmt.Fprintf(&e.b, "bit %s[%d];\n", cvar, len(qubits))

		for i, w := range qubits {
			fmt.Fprintf(&e.b, "%s[%d] = measure %s;\n", cvar, i, e.wireRef[w])
		}
	}

	schema := e.res.Schemas[mi]

	for _, w := range e.res.Qumodes.Intersect(measured) {
		cvar := e.fresh()

		switch schema.Basis(w) {
		case sa.BasisDiscrete:
			fmt.Fprintf(&e.b, "uint[%d] %s;\n", e.opts.IntBits, cvar)
			fmt.Fprintf(&e.b, "%s = %s(%s);\n", cvar, measureFock, e.wireRef[w])

		case sa.BasisPosition:
			fmt.Fprintf(&e.b, "float[%d] %s;\n", e.opts.FloatBits, cvar)
			fmt.Fprintf(&e.b, "%s = %s(%s);\n", cvar, measureX, e.wireRef[w])

		default:
			return fmt.Errorf("qumode %s is measured without a readout basis", w)
		}
	}

	return nil
}

func (e *emitter) fresh() string {
	cvar := fmt.Sprintf("c%d", e.cvars)
	e.cvars++

	return cvar
}

// gateLine renders one instruction using the standard and extension gate
// libraries.
func (e *emitter) gateLine(g *ops.Gate) (string, error) {
	name := g.Name()

	id, ok := StdGates[name]
	if !ok {
		if id, ok = CvGates[name]; !ok {
			return "", fmt.Errorf("gate %s has no OpenQASM equivalent", name)
		}
	}

	params := g.Params
	if g.Kind == ops.KindAdjoint {
		params = g.Base.Params
	}

	args := make([]string, 0, len(params)+1)
	for _, p := range params {
		args = append(args, e.num(p))
	}

	if g.Kind.Is(ops.FlagFockLevel) {
		args = append(args, strconv.Itoa(g.FockLevel))
	}

	refs := make([]string, 0, len(g.Wires()))
	for _, w := range g.Wires() {
		ref, ok := e.wireRef[w]
		if !ok {
			return "", fmt.Errorf("wire %s does not appear in the analyzed circuit", w)
		}

		refs = append(refs, ref)
	}

	var sb strings.Builder

	sb.WriteString(id)

	if len(args) > 0 {
		sb.WriteString("(")
		sb.WriteString(strings.Join(args, ", "))
		sb.WriteString(")")
	}

	if len(refs) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(refs, ", "))
	}

	sb.WriteString(";")

	return sb.String(), nil
}

func (e *emitter) num(v float64) string {
	if e.opts.Precision > 0 {
		return strconv.FormatFloat(v, 'g', e.opts.Precision, 64)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
