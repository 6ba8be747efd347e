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

package jaqal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/sa"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// qubitBosonModule is the pulse-definition module providing the boson gates.
const qubitBosonModule = "Calibration_PulseDefinitions.QubitBosonPulses"

// Options configure program emission.
type Options struct {
	// Precision is the number of significant digits for real gate arguments.
	// Zero emits shortest-roundtrip values.
	Precision int
}

// Emit serializes a compiled circuit as a Jaqal program.  The circuit must
// contain only native instructions on hardware wire labels; anything else is
// an error.
func Emit(c *circuit.Circuit, opts Options) (string, error) {
	res, err := sa.Analyze(c)
	if err != nil {
		return "", err
	}

	numQubits, err := registerSize(res.Qubits)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	fmt.Fprintf(&b, "from qscout.v1.std usepulses *\n")
	fmt.Fprintf(&b, "from %s usepulses *\n\n", qubitBosonModule)
	fmt.Fprintf(&b, "register q[%d]\n\n", numQubits)

	body, err := emitBody(c, opts)
	if err != nil {
		return "", err
	}

	if c.Shots > 1 {
		fmt.Fprintf(&b, "loop %d {\n", c.Shots)
	} else {
		b.WriteString("{\n")
	}

	b.WriteString("\tprepare_all\n")
	b.WriteString(body)
	b.WriteString("\tmeasure_all\n")
	b.WriteString("}\n")

	return b.String(), nil
}

// registerSize is one past the highest referenced qubit index, since the
// register declaration must cover every wire the program touches.
func registerSize(qubits wire.Wires) (uint, error) {
	var n uint

	for _, w := range qubits {
		i, ok := w.Index()
		if !ok {
			return 0, fmt.Errorf("qubit wire %s is not a hardware label", w)
		}

		if i+1 > n {
			n = i + 1
		}
	}

	return n, nil
}

func emitBody(c *circuit.Circuit, opts Options) (string, error) {
	var b strings.Builder

	for i := range c.Operations {
		line, err := gateLine(&c.Operations[i], opts)
		if err != nil {
			return "", err
		}

		if line == "" {
			continue
		}

		b.WriteString("\t")
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// gateLine renders one native instruction, or an empty string for operators
// the hardware absorbs.
func gateLine(g *ops.Gate, opts Options) (string, error) {
	switch g.Kind {
	case ops.GlobalPhase, ops.Identity:
		return "", nil

	case ops.AxisRotation:
		// The pulse definition takes the axis angle before the rotation
		// angle.
		q, err := qubitArg(g.Operands[0])
		if err != nil {
			return "", err
		}

		return join("R", q, num(g.Params[1], opts), num(g.Params[0], opts)), nil

	case ops.JaynesCummings, ops.AntiJaynesCummings:
		q, mode, err := hybridArgs(g)
		if err != nil {
			return "", err
		}

		theta, phi := g.Params[0], g.Params[1]

		return join(BosonGates[g.Kind.Name()], q,
			itoa(mode.Manifold), itoa(mode.Index), num(phi, opts), num(theta, opts)), nil

	case ops.FockState:
		q, mode, err := hybridArgs(g)
		if err != nil {
			return "", err
		}

		return join(BosonGates[g.Kind.Name()], q,
			itoa(mode.Manifold), itoa(mode.Index), itoa(g.FockLevel)), nil

	case ops.ConditionalDisplacement, ops.ConditionalXDisplacement, ops.ConditionalYDisplacement:
		q, mode, err := hybridArgs(g)
		if err != nil {
			return "", err
		}

		// The pulse definitions take the displacement as a complex number.
		beta, angle := g.Params[0], g.Params[1]

		return join(BosonGates[g.Kind.Name()], q,
			itoa(mode.Manifold), itoa(mode.Index),
			num(beta*math.Cos(angle), opts), num(beta*math.Sin(angle), opts)), nil

	case ops.ConditionalXSqueezing:
		q, err := qubitArg(g.Operands[0])
		if err != nil {
			return "", err
		}

		return join(BosonGates[g.Kind.Name()], q, num(g.Params[0], opts)), nil

	case ops.SidebandProbe:
		q, mode, err := hybridArgs(g)
		if err != nil {
			return "", err
		}

		duration, phase, sign, detuning := g.Params[0], g.Params[1], g.Params[2], g.Params[3]

		return join(BosonGates[g.Kind.Name()], q,
			num(phase, opts), num(duration, opts),
			itoa(mode.Manifold), itoa(mode.Index),
			itoa(int(sign)), num(detuning, opts)), nil

	case ops.NativeBeamsplitter:
		q, err := qubitArg(g.Operands[0])
		if err != nil {
			return "", err
		}

		args := []string{BosonGates[g.Kind.Name()], q}
		for _, p := range g.Params {
			args = append(args, num(p, opts))
		}

		return join(args...), nil
	}

	if id, ok := QubitGates[g.Name()]; ok {
		operands := g.Wires()
		args := []string{id}

		for _, w := range operands {
			q, err := qubitArg(w)
			if err != nil {
				return "", err
			}

			args = append(args, q)
		}

		params := g.Params
		if g.Kind == ops.KindAdjoint {
			params = g.Base.Params
		}

		for _, p := range params {
			args = append(args, num(p, opts))
		}

		return join(args...), nil
	}

	return "", fmt.Errorf("cannot serialize non-native gate to Jaqal: %s", g.String())
}

func qubitArg(w wire.Wire) (string, error) {
	i, ok := w.Index()
	if !ok {
		return "", fmt.Errorf("qubit wire %s is not a hardware label", w)
	}

	return fmt.Sprintf("q[%d]", i), nil
}

// hybridArgs splits a qubit-and-qumode gate into its register reference and
// decoded mode.
func hybridArgs(g *ops.Gate) (string, Qumode, error) {
	q, err := qubitArg(g.Operands[0])
	if err != nil {
		return "", Qumode{}, err
	}

	mode, ok := ParseQumode(g.Operands[1])
	if !ok {
		return "", Qumode{}, fmt.Errorf("qumode wire %s is not a hardware label", g.Operands[1])
	}

	return q, mode, nil
}

func join(args ...string) string {
	return strings.Join(args, " ")
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// num formats a real argument at the configured precision.
func num(v float64, opts Options) string {
	if opts.Precision > 0 {
		return strconv.FormatFloat(v, 'g', opts.Precision, 64)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
