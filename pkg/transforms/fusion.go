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

package transforms

import (
	"math"
	"math/cmplx"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
)

// matrix2 is a dense 2x2 complex matrix in row-major order.
type matrix2 [4]complex128

func (m matrix2) mul(n matrix2) matrix2 {
	return matrix2{
		m[0]*n[0] + m[1]*n[2], m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2], m[2]*n[1] + m[3]*n[3],
	}
}

func (m matrix2) adjoint() matrix2 {
	return matrix2{
		cmplx.Conj(m[0]), cmplx.Conj(m[2]),
		cmplx.Conj(m[1]), cmplx.Conj(m[3]),
	}
}

// singleQubitMatrix returns the unitary of a one-qubit gate, or false for
// kinds fusion does not handle.
func singleQubitMatrix(g ops.Gate) (matrix2, bool) {
	i := complex(0, 1)

	switch g.Kind {
	case ops.Hadamard:
		s := complex(1/math.Sqrt2, 0)
		return matrix2{s, s, s, -s}, true

	case ops.PauliX:
		return matrix2{0, 1, 1, 0}, true

	case ops.PauliY:
		return matrix2{0, -i, i, 0}, true

	case ops.PauliZ:
		return matrix2{1, 0, 0, -1}, true

	case ops.SGate:
		return matrix2{1, 0, 0, i}, true

	case ops.TGate:
		return matrix2{1, 0, 0, cmplx.Exp(i * math.Pi / 4)}, true

	case ops.SX:
		a := complex(0.5, 0.5)
		b := complex(0.5, -0.5)
		return matrix2{a, b, b, a}, true

	case ops.RX:
		c := complex(math.Cos(g.Params[0]/2), 0)
		s := complex(0, -math.Sin(g.Params[0]/2))
		return matrix2{c, s, s, c}, true

	case ops.RY:
		c := complex(math.Cos(g.Params[0]/2), 0)
		s := complex(math.Sin(g.Params[0]/2), 0)
		return matrix2{c, -s, s, c}, true

	case ops.RZ:
		e := cmplx.Exp(-i * complex(g.Params[0]/2, 0))
		return matrix2{e, 0, 0, cmplx.Conj(e)}, true

	case ops.PhaseShift:
		return matrix2{1, 0, 0, cmplx.Exp(i * complex(g.Params[0], 0))}, true

	case ops.AxisRotation:
		// Rotation by theta about the axis at angle phi in the equatorial
		// plane.
		theta, phi := g.Params[0], g.Params[1]
		c := complex(math.Cos(theta/2), 0)
		s := math.Sin(theta / 2)
		off := complex(s*math.Sin(phi), -s*math.Cos(phi))
		return matrix2{c, off, -cmplx.Conj(off), c}, true

	case ops.Rot:
		phi, theta, omega := g.Params[0], g.Params[1], g.Params[2]
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		ep := func(x float64) complex128 { return cmplx.Exp(i * complex(x, 0)) }
		return matrix2{
			ep(-(phi+omega)/2) * c, -ep((phi-omega)/2) * s,
			ep(-(phi-omega)/2) * s, ep((phi+omega)/2) * c,
		}, true

	case ops.KindAdjoint:
		m, ok := singleQubitMatrix(*g.Base)
		return m.adjoint(), ok
	}

	return matrix2{}, false
}

// zyzAngles factors an arbitrary one-qubit unitary as a global phase times
// RZ(omega) RY(theta) RZ(phi), returning (phi, theta, omega, phase) where the
// phase is in the global-phase gate convention.
func zyzAngles(u matrix2) (phi, theta, omega, phase float64) {
	// Normalize to special unitary.
	det := u[0]*u[3] - u[1]*u[2]
	scale := cmplx.Sqrt(det)
	for k := range u {
		u[k] /= scale
	}

	phase = cmplx.Phase(scale)

	theta = 2 * math.Atan2(cmplx.Abs(u[2]), cmplx.Abs(u[0]))

	switch {
	case cmplx.Abs(u[0]) < 1e-12:
		// Pure off-diagonal rotation; only the angle difference matters.
		omega = 0
		phi = -2 * cmplx.Phase(u[2])
	case cmplx.Abs(u[2]) < 1e-12:
		omega = 0
		phi = -2 * cmplx.Phase(u[0])
	default:
		sum := -2 * cmplx.Phase(u[0])
		diff := -2 * cmplx.Phase(u[2])
		phi = (sum + diff) / 2
		omega = (sum - diff) / 2
	}

	return phi, theta, omega, phase
}

// SingleQubitFusion fuses runs of consecutive one-qubit gates on a wire into
// a single Rot plus a global phase.  Gates on other wires are looked through;
// runs of fewer than two gates are left alone.
func SingleQubitFusion(c circuit.Circuit) (circuit.Circuit, error) {
	gates := c.Operations
	consumed := make([]bool, len(gates))

	var out []ops.Gate

	for i, g := range gates {
		if consumed[i] {
			continue
		}

		u, ok := singleQubitMatrix(g)
		if !ok {
			out = append(out, g)
			continue
		}

		w := g.Operands[0]
		run := []int{i}

		// Collect the rest of the run, skipping gates on disjoint wires.
		for j := i + 1; j < len(gates); j++ {
			if consumed[j] {
				continue
			}

			next := gates[j]
			if !next.Wires().Contains(w) {
				continue
			}

			m, fusable := singleQubitMatrix(next)
			if !fusable {
				break
			}

			u = m.mul(u)
			run = append(run, j)
		}

		if len(run) < 2 {
			out = append(out, g)
			continue
		}

		for _, j := range run {
			consumed[j] = true
		}

		phi, theta, omega, phase := zyzAngles(u)

		if rot := ops.Simplify(ops.MustGate(ops.Rot, []float64{phi, theta, omega}, w)); rot.Kind != ops.Identity {
			out = append(out, rot)
		}

		if math.Abs(math.Mod(phase, 2*math.Pi)) > 1e-9 {
			out = append(out, ops.MustGate(ops.GlobalPhase, []float64{-phase}))
		}
	}

	return c.WithOperations(out), nil
}
