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
	"github.com/pnnl/go-hybridlane/pkg/ops"
)

// Registry holds the known rewrite rules, keyed by operator name.  Rules for
// qubit-conditioned operators with several condition qubits are synthesized
// on demand rather than enumerated.
type Registry struct {
	rules map[string][]Rule
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string][]Rule)}
}

// Standard returns a registry seeded with every built-in rewrite.
func Standard() *Registry {
	r := NewRegistry()

	// Qubit gates down to the trapped-ion primitives.
	r.Add(ops.Hadamard.Name(), hadamardRule)
	r.Add(ops.CNOT.Name(), cnotRule)
	r.Add(ops.Rot.Name(), rotRule)
	r.Add(ops.TGate.Name(), tRule)
	r.Add(ops.PhaseShift.Name(), phaseShiftRule)
	r.Add(ops.CZ.Name(), czRule)
	r.Add(ops.SWAP.Name(), swapRule)

	// Qumode gates.
	r.Add(ops.Fourier.Name(), fourierRule)
	r.Add(ops.Displacement.Name(), ancillaRule(ops.ConditionalDisplacement, 1))
	r.Add(ops.Squeezing.Name(), ancillaRule(ops.ConditionalSqueezing, 1))
	r.Add(ops.Rotation.Name(), ancillaRule(ops.ConditionalRotation, 2))

	// Hybrid gates.
	r.Add(ops.ConditionalDisplacement.Name(), cdParityRule, cdEchoRule, cdRabiRule)
	r.Add(ops.Rabi.Name(), rabiRule)
	r.Add(ops.EchoedConditionalDisplacement.Name(), ecdRule)
	r.Add(ops.ConditionalXDisplacement.Name(), xcdRule)
	r.Add(ops.ConditionalYDisplacement.Name(), ycdRule)
	r.Add(ops.ConditionalSqueezing.Name(), csRule)
	r.Add(ops.SelectiveNumberArbitraryPhase.Name(), snapRule)
	r.Add(ops.ConditionalParity.Name(), cpRule)
	r.Add("Adjoint(ConditionalParity)", adjointCpRule)
	r.Add("Pow(ConditionalParity)", powCpRule)

	return r
}

// Add registers rules under the given operator name, after any already
// present.
func (r *Registry) Add(name string, rules ...Rule) {
	r.rules[name] = append(r.rules[name], rules...)
}

// RulesFor returns every applicable rule for a representation.
func (r *Registry) RulesFor(rep ResourceRep) []Rule {
	rules := r.rules[rep.Name()]

	if rep.Kind == ops.KindQubitConditioned && rep.NumControls > 1 {
		rules = append(rules[:len(rules):len(rules)], ladderRule(rep))
	}

	return rules
}

// ladderRule synthesizes the multi-control reduction: a chain of CNOTs folds
// the parity of every condition qubit onto the last one, the singly
// conditioned gate acts there, and the chain is undone.
func ladderRule(res ResourceRep) Rule {
	single := conditionedRep(*res.Base, 1)
	cnots := uint(2 * (res.NumControls - 1))

	return Rule{
		Produces: emits(Count{single, 1}, Count{rep(ops.CNOT), cnots}),
		Apply: func(g ops.Gate, _ *Allocator) ([]ops.Gate, error) {
			return ops.DecomposeQubitConditioned(g)
		},
	}
}
