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

// Package csp provides a small generic constraint-satisfaction solver.  A
// problem is a set of variables with explicit finite domains, optional unary
// and n-ary predicate constraints, and an optional global all-different
// constraint.  The solver returns the first satisfying assignment found; it
// performs no ranking among solutions.
package csp

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrBudgetExhausted is returned when the solver exceeds its step budget
// before either finding a solution or proving none exists.
var ErrBudgetExhausted = errors.New("constraint search budget exhausted")

// DefaultMaxSteps bounds the search when no explicit budget is configured.
// Layout problems are small (a handful of wires), so a bounded search that
// fails loudly beats an unbounded one that hangs.
const DefaultMaxSteps = 1_000_000

// Problem is a constraint-satisfaction problem over variables of type V with
// domain values of type D.
type Problem[V comparable, D comparable] struct {
	vars    []V
	index   map[V]int
	domains [][]D
	// masks[i] holds the domain indices of vars[i] still allowed after unary
	// constraint filtering.
	masks   []*bitset.BitSet
	nary    []naryConstraint[D]
	allDiff bool
	// MaxSteps bounds the number of candidate assignments tried; zero selects
	// DefaultMaxSteps.
	MaxSteps uint
}

type naryConstraint[D comparable] struct {
	vars []int
	pred func([]D) bool
}

// NewProblem constructs an empty problem.
func NewProblem[V comparable, D comparable]() *Problem[V, D] {
	return &Problem[V, D]{index: make(map[V]int)}
}

// AddVariable declares a variable with the given domain.  Declaring the same
// variable twice panics.
func (p *Problem[V, D]) AddVariable(v V, domain []D) {
	if _, ok := p.index[v]; ok {
		panic(fmt.Sprintf("variable %v declared twice", v))
	}

	mask := bitset.New(uint(len(domain)))
	for i := range domain {
		mask.Set(uint(i))
	}

	p.index[v] = len(p.vars)
	p.vars = append(p.vars, v)
	p.domains = append(p.domains, domain)
	p.masks = append(p.masks, mask)
}

// AddVariables declares several variables sharing one domain.
func (p *Problem[V, D]) AddVariables(vs []V, domain []D) {
	for _, v := range vs {
		p.AddVariable(v, domain)
	}
}

// AllDifferent requires every variable to take a distinct value.
func (p *Problem[V, D]) AllDifferent() {
	p.allDiff = true
}

// AddUnary restricts a variable's domain by a predicate, applied immediately.
func (p *Problem[V, D]) AddUnary(v V, pred func(D) bool) {
	i, ok := p.index[v]
	if !ok {
		panic(fmt.Sprintf("unknown variable %v", v))
	}

	for j, d := range p.domains[i] {
		if p.masks[i].Test(uint(j)) && !pred(d) {
			p.masks[i].Clear(uint(j))
		}
	}
}

// AddConstraint adds an n-ary predicate over the given variables.  The
// predicate receives candidate values in the same order and is checked once
// all its variables are assigned.
func (p *Problem[V, D]) AddConstraint(vars []V, pred func([]D) bool) {
	indices := make([]int, len(vars))

	for i, v := range vars {
		idx, ok := p.index[v]
		if !ok {
			panic(fmt.Sprintf("unknown variable %v", v))
		}

		indices[i] = idx
	}

	p.nary = append(p.nary, naryConstraint[D]{indices, pred})
}

// NumVariables returns the number of declared variables.
func (p *Problem[V, D]) NumVariables() int {
	return len(p.vars)
}
