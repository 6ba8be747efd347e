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
package csp

import (
	"github.com/pnnl/go-hybridlane/pkg/util"
)

// Solve searches for the first satisfying assignment of this problem using
// backtracking with minimum-remaining-values variable ordering.  It returns
// the assignment on success; an empty option when the problem is proven
// unsatisfiable; and ErrBudgetExhausted when the step budget runs out first.
func (p *Problem[V, D]) Solve() (util.Option[map[V]D], error) {
	budget := p.MaxSteps
	if budget == 0 {
		budget = DefaultMaxSteps
	}

	s := &solver[V, D]{
		problem:    p,
		assignment: make([]int, len(p.vars)),
		budget:     budget,
	}

	for i := range s.assignment {
		s.assignment[i] = -1
	}

	ok, err := s.search()
	if err != nil || !ok {
		return util.None[map[V]D](), err
	}

	out := make(map[V]D, len(p.vars))
	for i, v := range p.vars {
		out[v] = p.domains[i][s.assignment[i]]
	}

	return util.Some(out), nil
}

type solver[V comparable, D comparable] struct {
	problem *Problem[V, D]
	// assignment maps variable index to chosen domain index (-1 when
	// unassigned).
	assignment []int
	steps      uint
	budget     uint
}

func (s *solver[V, D]) search() (bool, error) {
	target := s.selectVariable()
	if target < 0 {
		// Everything assigned.
		return true, nil
	}

	p := s.problem
	for j, ok := p.masks[target].NextSet(0); ok; j, ok = p.masks[target].NextSet(j + 1) {
		s.steps++
		if s.steps > s.budget {
			return false, ErrBudgetExhausted
		}

		s.assignment[target] = int(j)

		if s.consistent(target) {
			found, err := s.search()
			if err != nil || found {
				return found, err
			}
		}

		s.assignment[target] = -1
	}

	return false, nil
}

// selectVariable picks the unassigned variable with the fewest remaining
// domain values, or -1 when all variables are assigned.
func (s *solver[V, D]) selectVariable() int {
	best, bestSize := -1, uint(0)

	for i := range s.assignment {
		if s.assignment[i] >= 0 {
			continue
		}

		size := s.problem.masks[i].Count()
		if best < 0 || size < bestSize {
			best, bestSize = i, size
		}
	}

	return best
}

// consistent checks every constraint touching the just-assigned variable, in
// so far as its participants are assigned.
func (s *solver[V, D]) consistent(target int) bool {
	p := s.problem
	value := p.domains[target][s.assignment[target]]

	if p.allDiff {
		for i, a := range s.assignment {
			if i != target && a >= 0 && p.domains[i][a] == value {
				return false
			}
		}
	}

	for _, c := range p.nary {
		if !s.checkNary(c, target) {
			return false
		}
	}

	return true
}

func (s *solver[V, D]) checkNary(c naryConstraint[D], target int) bool {
	involved := false
	values := make([]D, len(c.vars))

	for i, v := range c.vars {
		if v == target {
			involved = true
		}

		if s.assignment[v] < 0 {
			// Deferred until fully assigned.
			return true
		}

		values[i] = s.problem.domains[v][s.assignment[v]]
	}

	if !involved {
		return true
	}

	return c.pred(values)
}
