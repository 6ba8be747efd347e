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
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/csp"
	"github.com/pnnl/go-hybridlane/pkg/sa"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// layoutWires maps every virtual wire of the circuit onto a hardware wire.
// Layout is solved as a constraint satisfaction problem: wire typing fixes
// each variable's domain, hardware-named wires pin to themselves, and every
// gate restricts its operands to assignments the hardware supports.  Routing
// is not attempted.
func layoutWires(c circuit.Circuit, opts Options) (circuit.Circuit, error) {
	res, err := sa.Analyze(&c)
	if err != nil {
		return c, err
	}

	maxQubits := opts.MaxQubits
	if maxQubits == 0 {
		maxQubits = uint(len(res.Qubits))
	}

	maxQumodes := 2 * int(maxQubits)
	if !opts.EnableCOMModes {
		maxQumodes = 2*int(maxQubits) - 2
	}

	if uint(len(res.Qubits)) > maxQubits {
		return c, deviceErrorf("circuit has more qubits (%d) than the maximum requested or allowed (%d)",
			len(res.Qubits), maxQubits)
	}

	if len(res.Qumodes) > maxQumodes {
		return c, deviceErrorf("circuit has more qumodes (%d) than the maximum requested or allowed (%d)",
			len(res.Qumodes), maxQumodes)
	}

	assignment, err := solveLayout(&c, res, maxQubits, opts)
	if err != nil {
		return c, err
	}

	log.Debugf("layout assigned %d wires onto hardware", len(assignment))

	return c.MapWires(assignment), nil
}

// solveLayout builds and solves the layout problem.
func solveLayout(c *circuit.Circuit, res *sa.StaticAnalysisResult, maxQubits uint, opts Options) (map[wire.Wire]wire.Wire, error) {
	hwQubits := deviceQubits(maxQubits)
	hwQumodes := deviceQumodes(maxQubits, opts.EnableCOMModes)

	problem := csp.NewProblem[wire.Wire, wire.Wire]()
	problem.AddVariables(res.Qubits, hwQubits)
	problem.AddVariables(res.Qumodes, hwQumodes)
	problem.AllDifferent()

	if opts.LayoutBudget != 0 {
		problem.MaxSteps = opts.LayoutBudget
	}

	// Wires already carrying hardware labels pin to themselves.
	for _, w := range res.Qubits.Intersect(hwQubits) {
		pinned := w
		problem.AddUnary(w, func(d wire.Wire) bool { return d == pinned })
	}

	for _, w := range res.Qumodes.Intersect(hwQumodes) {
		pinned := w
		problem.AddUnary(w, func(d wire.Wire) bool { return d == pinned })
	}

	// Each gate must land on an assignment the hardware supports.
	for i := range c.Operations {
		g := &c.Operations[i]
		operands := g.Wires()

		problem.AddConstraint(operands, func(assigned []wire.Wire) bool {
			m := make(map[wire.Wire]wire.Wire, len(operands))
			for j, w := range operands {
				m[w] = assigned[j]
			}

			mapped := g.MapWires(m)

			return gateSupported(&mapped)
		})
	}

	assignment, err := problem.Solve()

	switch {
	case errors.Is(err, csp.ErrBudgetExhausted):
		return nil, deviceErrorf("layout search budget exhausted before a solution was found")
	case err != nil:
		return nil, err
	case assignment.IsEmpty():
		return nil, deviceErrorf("no layout was found that could implement the gates in the circuit")
	}

	return assignment.Unwrap(), nil
}
