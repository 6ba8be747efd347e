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
	"math"
)

const angleTolerance = 1e-9

func closeTo(x, y float64) bool {
	return math.Abs(x-y) < angleTolerance
}

// mod wraps x into [0, m).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}

	return r
}

// Simplify applies closed-form per-gate simplifications: angle wrapping,
// trivial-angle elimination and axis-rotation specialisation.  The gate is
// returned unchanged when no identity applies.
func Simplify(g Gate) Gate {
	switch g.Kind {
	case AxisRotation:
		return simplifyAxisRotation(g)

	case JaynesCummings, AntiJaynesCummings:
		theta := mod(g.Params[0], 2*math.Pi)
		if closeTo(theta, 0) {
			return Gate{Kind: Identity, Operands: g.Operands}
		}

		return Gate{Kind: g.Kind, Params: []float64{theta, mod(g.Params[1], 2 * math.Pi)}, Operands: g.Operands}

	case Rot:
		if closeTo(mod(g.Params[1], 4*math.Pi), 0) {
			return Simplify(Gate{Kind: RZ, Params: []float64{g.Params[0] + g.Params[2]}, Operands: g.Operands})
		}

		return g

	case RX, RY, RZ, IsingXX, IsingYY, IsingZZ, MultiRZ:
		theta := mod(g.Params[0], 4*math.Pi)
		if closeTo(theta, 0) {
			return Gate{Kind: Identity, Operands: g.Operands}
		}

		out := g
		out.Params = []float64{theta}

		return out

	case KindAdjoint:
		// A base with no closed-form inverse comes back still wrapped;
		// recursing on it would never terminate.
		if out := Adjoint(*g.Base); out.Kind != KindAdjoint {
			return Simplify(out)
		}

		return g

	case KindPow:
		if out := Pow(*g.Base, g.Exponent); out.Kind != KindPow {
			return Simplify(out)
		}

		return g
	}

	return g
}

// simplifyAxisRotation reduces the native equatorial rotation R(theta, phi)
// to RX, RY or Identity at the special axis angles.
func simplifyAxisRotation(g Gate) Gate {
	theta, phi := mod(g.Params[0], 4*math.Pi), math.Mod(g.Params[1], math.Pi)

	switch {
	case closeTo(theta, 0):
		return Gate{Kind: Identity, Operands: g.Operands}

	case closeTo(phi, 0):
		return Gate{Kind: RX, Params: []float64{theta}, Operands: g.Operands}

	case closeTo(phi, math.Pi/2):
		return Gate{Kind: RY, Params: []float64{theta}, Operands: g.Operands}

	case closeTo(phi, -math.Pi):
		return Gate{Kind: RX, Params: []float64{-theta}, Operands: g.Operands}

	case closeTo(phi, -math.Pi/2):
		return Gate{Kind: RY, Params: []float64{theta}, Operands: g.Operands}
	}

	return Gate{Kind: AxisRotation, Params: []float64{theta, phi}, Operands: g.Operands}
}
