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

// Adjoint returns the adjoint of a gate.  Self-inverse gates return
// themselves; rotation-like gates negate their leading parameter; symbolic
// wrappers delegate structurally.  Gates with no closed-form adjoint are
// wrapped in a symbolic Adjoint marker.
func Adjoint(g Gate) Gate {
	if g.Kind.Is(FlagSelfInverse) {
		return g
	}

	switch g.Kind {
	case KindAdjoint:
		// Adjoint of adjoint is the base itself.
		return *g.Base

	case KindQubitConditioned:
		base := Adjoint(*g.Base)
		return Gate{Kind: KindQubitConditioned, Base: &base, Controls: g.Controls}

	case KindPow:
		base := Adjoint(*g.Base)
		return Gate{Kind: KindPow, Base: &base, Exponent: g.Exponent}

	case Rot:
		// Rot(phi, theta, omega)^† = Rot(-omega, -theta, -phi)
		out := g
		out.Params = []float64{-g.Params[2], -g.Params[1], -g.Params[0]}

		return out

	case GlobalPhase:
		out := g
		out.Params = []float64{-g.Params[0]}

		return out
	}

	if g.Kind.Is(FlagComposable) {
		// Rotation-like: negate the angle, keep the axis/phase arguments.
		out := g
		out.Params = append([]float64{-g.Params[0]}, g.Params[1:]...)

		return out
	}

	base := g

	return Gate{Kind: KindAdjoint, Base: &base}
}

// Pow returns the gate raised to a real power z.  Rotation-like gates scale
// their leading parameter; symbolic wrappers delegate structurally; anything
// else is wrapped in a symbolic Pow marker.
func Pow(g Gate, z float64) Gate {
	if z == 1 {
		return g
	}

	switch g.Kind {
	case KindQubitConditioned:
		base := Pow(*g.Base, z)
		return Gate{Kind: KindQubitConditioned, Base: &base, Controls: g.Controls}

	case KindPow:
		return Pow(*g.Base, g.Exponent*z)

	case GlobalPhase:
		out := g
		out.Params = []float64{z * g.Params[0]}

		return out

	case SidebandProbe:
		// Powers scale the probe duration only.
		out := g
		out.Params = append([]float64{z * g.Params[0]}, g.Params[1:]...)

		return out
	}

	if g.Kind.Is(FlagComposable) {
		out := g
		out.Params = append([]float64{z * g.Params[0]}, g.Params[1:]...)

		return out
	}

	base := g

	return Gate{Kind: KindPow, Base: &base, Exponent: z}
}
