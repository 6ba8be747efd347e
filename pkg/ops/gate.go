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
package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// Gate is a single operator instance: a kind tag, a fixed parameter vector and
// an ordered wire list.  Symbolic wrappers (qubit-conditioned, adjoint, power)
// are gates whose Base field holds the wrapped operator; for those, the wire
// list is derived rather than stored.
type Gate struct {
	// Kind identifies the operator.
	Kind Kind
	// Params holds the real parameters, length fixed by the signature.
	Params []float64
	// Operands is the ordered wire list of a concrete (non-wrapper) gate.
	Operands wire.Wires
	// FockLevel is the integer Fock-level argument of kinds carrying
	// FlagFockLevel.
	FockLevel int
	// Base is the wrapped operator of a symbolic wrapper gate.
	Base *Gate
	// Controls is the ordered control-qubit list of a qubit-conditioned gate.
	Controls wire.Wires
	// Exponent is the exponent of a symbolic power gate.
	Exponent float64
}

// New constructs a concrete gate, validating parameter and wire arity against
// the kind's signature.
func New(kind Kind, params []float64, ws wire.Wires) (Gate, error) {
	sig := SignatureOf(kind)

	if uint(len(params)) != sig.NumParams {
		return Gate{}, fmt.Errorf("gate %s expects %d parameter(s), got %d",
			sig.Name, sig.NumParams, len(params))
	}

	if !kind.Is(FlagVariadic) && uint(len(ws)) != sig.NumWires {
		return Gate{}, fmt.Errorf("gate %s expects %d wire(s), got %d",
			sig.Name, sig.NumWires, len(ws))
	}

	return Gate{Kind: kind, Params: params, Operands: ws}, nil
}

// MustGate constructs a concrete gate, panicking on an arity violation.
// Intended for statically-known gate constructions.
func MustGate(kind Kind, params []float64, ws ...wire.Wire) Gate {
	g, err := New(kind, params, wire.NewWires(ws...))
	if err != nil {
		panic(err)
	}

	return g
}

// MustFockGate constructs a Fock-level gate, panicking on an arity
// violation.
func MustFockGate(kind Kind, level int, params []float64, ws ...wire.Wire) Gate {
	g, err := NewFockGate(kind, level, params, wire.NewWires(ws...))
	if err != nil {
		panic(err)
	}

	return g
}

// NewFockGate constructs a gate carrying a Fock-level argument, such as
// FockState or SelectiveNumberArbitraryPhase.  The level must be
// non-negative.
func NewFockGate(kind Kind, level int, params []float64, ws wire.Wires) (Gate, error) {
	if !kind.Is(FlagFockLevel) {
		return Gate{}, fmt.Errorf("gate %s takes no Fock-level argument", kind.Name())
	}

	if level < 0 {
		return Gate{}, fmt.Errorf("negative Fock-state index %d", level)
	}

	g, err := New(kind, params, ws)
	if err != nil {
		return Gate{}, err
	}

	g.FockLevel = level

	return g, nil
}

// Wires returns the full ordered wire list of this gate.  For a
// qubit-conditioned gate this is the control wires followed by the base
// wires; adjoint and power wrappers delegate to their base.
func (g *Gate) Wires() wire.Wires {
	switch g.Kind {
	case KindQubitConditioned:
		return g.Controls.Union(g.Base.Wires())
	case KindAdjoint, KindPow:
		return g.Base.Wires()
	default:
		return g.Operands
	}
}

// Name returns the display name of this gate, e.g. "RX", "qCond(Fourier)" or
// "Adjoint(S)".
func (g *Gate) Name() string {
	switch g.Kind {
	case KindQubitConditioned:
		return fmt.Sprintf("qCond(%s)", g.Base.Name())
	case KindAdjoint:
		return fmt.Sprintf("Adjoint(%s)", g.Base.Name())
	case KindPow:
		return fmt.Sprintf("Pow(%s)", g.Base.Name())
	default:
		return g.Kind.Name()
	}
}

// Equals checks structural equality of two gates, recursing through symbolic
// wrappers.
func (g *Gate) Equals(o *Gate) bool {
	if g.Kind != o.Kind || g.FockLevel != o.FockLevel || g.Exponent != o.Exponent {
		return false
	}

	if len(g.Params) != len(o.Params) {
		return false
	}

	for i := range g.Params {
		if g.Params[i] != o.Params[i] {
			return false
		}
	}

	if !g.Operands.Equals(o.Operands) || !g.Controls.Equals(o.Controls) {
		return false
	}

	if (g.Base == nil) != (o.Base == nil) {
		return false
	}

	if g.Base != nil && !g.Base.Equals(o.Base) {
		return false
	}

	return true
}

// MapWires returns a copy of this gate with every wire relabelled through the
// given map.  Wires absent from the map are kept unchanged.
func (g *Gate) MapWires(m map[wire.Wire]wire.Wire) Gate {
	out := *g
	out.Operands = mapWires(g.Operands, m)
	out.Controls = mapWires(g.Controls, m)

	if g.Base != nil {
		base := g.Base.MapWires(m)
		out.Base = &base
	}

	return out
}

func mapWires(ws wire.Wires, m map[wire.Wire]wire.Wire) wire.Wires {
	if ws == nil {
		return nil
	}

	out := make(wire.Wires, len(ws))

	for i, w := range ws {
		if v, ok := m[w]; ok {
			out[i] = v
		} else {
			out[i] = w
		}
	}

	return out
}

func (g *Gate) String() string {
	var builder strings.Builder

	builder.WriteString(g.Name())

	if len(g.Params) > 0 {
		builder.WriteString("(")

		for i, p := range g.Params {
			if i != 0 {
				builder.WriteString(", ")
			}

			builder.WriteString(strconv.FormatFloat(p, 'g', -1, 64))
		}

		builder.WriteString(")")
	}

	builder.WriteString(g.Wires().String())

	return builder.String()
}
