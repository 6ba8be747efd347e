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
package circuit

import (
	"fmt"

	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// Observable is a symbolic Hermitian operator tree.  Static analysis and
// measurement diagonalization walk these trees structurally, so tensor
// products, sums, scalar multiples and powers are explicit nodes rather than
// evaluated matrices.
type Observable interface {
	// Wires returns the ordered union of wires this observable acts on.
	Wires() wire.Wires
	// MapWires relabels every wire through the given map.
	MapWires(m map[wire.Wire]wire.Wire) Observable
}

// LeafObs is a primitive observable, e.g. PauliZ, NumberOperator or QuadX.
type LeafObs struct {
	// Gate is the underlying Hermitian operator.
	Gate ops.Gate
}

// NewLeafObs wraps a Hermitian gate as an observable, rejecting non-Hermitian
// kinds.
func NewLeafObs(g ops.Gate) (*LeafObs, error) {
	if !g.Kind.Is(ops.FlagHermitian) {
		return nil, fmt.Errorf("operator %s is not a valid observable", g.Name())
	}

	return &LeafObs{g}, nil
}

// Wires implements Observable.
func (p *LeafObs) Wires() wire.Wires {
	return p.Gate.Wires()
}

// MapWires implements Observable.
func (p *LeafObs) MapWires(m map[wire.Wire]wire.Wire) Observable {
	return &LeafObs{p.Gate.MapWires(m)}
}

// TensorObs is a tensor product of observables on disjoint wires.
type TensorObs struct {
	// Factors are the tensor factors, in wire order.
	Factors []Observable
}

// Wires implements Observable.
func (p *TensorObs) Wires() wire.Wires {
	var ws wire.Wires
	for _, f := range p.Factors {
		ws = ws.Union(f.Wires())
	}

	return ws
}

// MapWires implements Observable.
func (p *TensorObs) MapWires(m map[wire.Wire]wire.Wire) Observable {
	factors := make([]Observable, len(p.Factors))
	for i, f := range p.Factors {
		factors[i] = f.MapWires(m)
	}

	return &TensorObs{factors}
}

// SumObs is a sum of observables.
type SumObs struct {
	// Terms are the summands.
	Terms []Observable
}

// Wires implements Observable.
func (p *SumObs) Wires() wire.Wires {
	var ws wire.Wires
	for _, t := range p.Terms {
		ws = ws.Union(t.Wires())
	}

	return ws
}

// MapWires implements Observable.
func (p *SumObs) MapWires(m map[wire.Wire]wire.Wire) Observable {
	terms := make([]Observable, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = t.MapWires(m)
	}

	return &SumObs{terms}
}

// ScaledObs is a scalar multiple of an observable.
type ScaledObs struct {
	// Scale is the real scalar coefficient.
	Scale float64
	// Obs is the scaled observable.
	Obs Observable
}

// Wires implements Observable.
func (p *ScaledObs) Wires() wire.Wires {
	return p.Obs.Wires()
}

// MapWires implements Observable.
func (p *ScaledObs) MapWires(m map[wire.Wire]wire.Wire) Observable {
	return &ScaledObs{p.Scale, p.Obs.MapWires(m)}
}

// PowObs is an observable raised to a real power.
type PowObs struct {
	// Obs is the base observable.
	Obs Observable
	// Exponent is the power.
	Exponent float64
}

// Wires implements Observable.
func (p *PowObs) Wires() wire.Wires {
	return p.Obs.Wires()
}

// MapWires implements Observable.
func (p *PowObs) MapWires(m map[wire.Wire]wire.Wire) Observable {
	return &PowObs{p.Obs.MapWires(m), p.Exponent}
}
