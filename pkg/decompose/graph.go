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
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// DefaultMaxDepth bounds recursive rule expansion.
const DefaultMaxDepth = 64

// TargetSet maps native operator names to cost weights.  A rewrite route is
// costed as the weighted sum of the native operators it bottoms out in, so
// heavier weights steer the search away from expensive primitives.
type TargetSet map[string]uint

// NewTargetSet builds a target set where every named operator has unit
// weight.
func NewTargetSet(names ...string) TargetSet {
	t := make(TargetSet, len(names))

	for _, n := range names {
		t[n] = 1
	}

	return t
}

// WithWeight sets the weight of one operator, returning the set for
// chaining.
func (t TargetSet) WithWeight(name string, weight uint) TargetSet {
	t[name] = weight
	return t
}

// Contains checks membership by operator name.
func (t TargetSet) Contains(name string) bool {
	_, ok := t[name]
	return ok
}

// Outcome reports how far a decomposition got.
type Outcome uint8

const (
	// OutcomeDecomposed means every operation was rewritten into the target
	// set.
	OutcomeDecomposed Outcome = iota
	// OutcomePartial means some operations had no route to the target set
	// and were passed through unchanged.
	OutcomePartial
)

// Config controls a decomposition run.
type Config struct {
	// Targets is the native gate set to rewrite into.
	Targets TargetSet
	// Registry supplies the rewrite rules.  Standard() is used when nil.
	Registry *Registry
	// WorkWires is the ancilla qubit budget.
	WorkWires uint
	// Strict causes operations without a route to fail the run instead of
	// passing through.
	Strict bool
	// MaxDepth bounds rule recursion.  DefaultMaxDepth when zero.
	MaxDepth uint
}

// Result is the output of a decomposition run.
type Result struct {
	// Circuit is the rewritten circuit.
	Circuit circuit.Circuit
	// Outcome reports whether the rewrite was total.
	Outcome Outcome
	// Unsupported lists operator names with no route, in first-seen order.
	Unsupported []string
	// WorkWires lists the ancilla wires allocated during the rewrite.
	WorkWires wire.Wires
}

// DecompositionError is returned in strict mode when operators cannot be
// rewritten into the target set.
type DecompositionError struct {
	// Names are the offending operator names.
	Names []string
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("no decomposition to the target gate set for %s", strings.Join(e.Names, ", "))
}

// Decompose rewrites every operation of the circuit into the target gate
// set, picking the cheapest route through the rule registry for each
// operator.  Measurements are untouched.
func Decompose(c circuit.Circuit, cfg Config) (Result, error) {
	if cfg.Registry == nil {
		cfg.Registry = Standard()
	}

	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	s := &solver{
		cfg:      cfg,
		memo:     make(map[string]route),
		visiting: make(map[string]bool),
		alloc:    NewAllocator(cfg.WorkWires),
	}

	var rewritten []ops.Gate

	for _, g := range c.Operations {
		expanded, err := s.expand(g, 0)
		if err != nil {
			return Result{}, err
		}

		rewritten = append(rewritten, expanded...)
	}

	if cfg.Strict && len(s.unsupported) > 0 {
		return Result{}, &DecompositionError{Names: s.unsupported}
	}

	outcome := OutcomeDecomposed
	if len(s.unsupported) > 0 {
		outcome = OutcomePartial
	}

	log.Debugf("decomposed %d operations into %d native operations (%d ancilla)",
		len(c.Operations), len(rewritten), len(s.alloc.Issued()))

	return Result{
		Circuit:     c.WithOperations(rewritten),
		Outcome:     outcome,
		Unsupported: s.unsupported,
		WorkWires:   s.alloc.Issued(),
	}, nil
}

// route is a costed way of reaching the target set from one representation.
// A nil rule means the representation is itself native.
type route struct {
	cost uint
	rule *Rule
}

type solver struct {
	cfg  Config
	memo map[string]route
	// visiting guards against rule cycles, e.g. the conditional displacement
	// and Rabi rewrites which are mutual inverses.
	visiting    map[string]bool
	alloc       *Allocator
	unsupported []string
}

// expand rewrites one gate into target-set gates, recursing through the
// cheapest rule at each level.
func (s *solver) expand(g ops.Gate, depth uint) ([]ops.Gate, error) {
	// Conditioned wrappers built directly, e.g. by the circuit reader, may
	// still have a closed native form.
	if g.Kind == ops.KindQubitConditioned {
		g = ops.Flatten(g)

		if folded, err := ops.Qcond(*g.Base, g.Controls); err == nil {
			g = folded
		}
	}

	if g.Kind == ops.Identity {
		return nil, nil
	}

	rep := RepOf(g)

	if s.cfg.Targets.Contains(rep.Name()) {
		return []ops.Gate{g}, nil
	}

	r, ok, _ := s.route(rep, depth)
	if !ok || r.rule == nil {
		s.markUnsupported(rep.Name())
		return []ops.Gate{g}, nil
	}

	produced, err := r.rule.Apply(g, s.alloc)
	if err != nil {
		return nil, fmt.Errorf("decomposing %s: %w", g.Name(), err)
	}

	var flat []ops.Gate

	for _, p := range produced {
		sub, err := s.expand(p, depth+1)
		if err != nil {
			return nil, err
		}

		flat = append(flat, sub...)
	}

	return flat, nil
}

// route finds the cheapest way of rewriting a representation into the target
// set.  The third return distinguishes results that are safe to memoize from
// those computed while part of the rule graph was still being explored.
func (s *solver) route(r ResourceRep, depth uint) (route, bool, bool) {
	name := r.Name()

	if w, native := s.cfg.Targets[name]; native {
		return route{cost: w}, true, true
	}

	key := r.Key()

	if cached, ok := s.memo[key]; ok {
		return cached, true, true
	}

	if s.visiting[key] || depth >= s.cfg.MaxDepth {
		return route{}, false, false
	}

	s.visiting[key] = true
	defer delete(s.visiting, key)

	var (
		best    route
		found   bool
		settled = true
	)

	rules := s.cfg.Registry.RulesFor(r)

	for i := range rules {
		cost, ok, pure := s.ruleCost(rules[i], r, depth)
		settled = settled && pure

		if ok && (!found || cost < best.cost) {
			best = route{cost: cost, rule: &rules[i]}
			found = true
		}
	}

	if found && settled {
		s.memo[key] = best
	}

	return best, found, settled
}

// ruleCost sums the weighted cost of everything a rule produces.
func (s *solver) ruleCost(rule Rule, r ResourceRep, depth uint) (uint, bool, bool) {
	var (
		total uint
		pure  = true
	)

	for _, count := range rule.Produces(r) {
		sub, ok, p := s.route(count.Rep, depth+1)
		pure = pure && p

		if !ok {
			return 0, false, pure
		}

		total += count.N * sub.cost
	}

	return total, true, pure
}

func (s *solver) markUnsupported(name string) {
	for _, n := range s.unsupported {
		if n == name {
			return
		}
	}

	s.unsupported = append(s.unsupported, name)
}
