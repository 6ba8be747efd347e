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

// Kind enumerates every operator supported by this toolkit.  Rather than
// dispatching on open-ended runtime types, all gate behaviour (wire typing,
// arity, algebraic attributes) is driven off the static signature table
// indexed by this tag.
type Kind uint16

const (
	// Invalid is the zero kind, deliberately unusable.
	Invalid Kind = iota

	// --- Qubit gates ---

	// Identity is the identity on any number of wires (qubit or qumode).
	Identity
	// GlobalPhase applies a global phase exp(-i*phi) and touches no wires.
	GlobalPhase
	// Hadamard is the single-qubit Hadamard gate.
	Hadamard
	// PauliX is the Pauli X gate (and observable).
	PauliX
	// PauliY is the Pauli Y gate (and observable).
	PauliY
	// PauliZ is the Pauli Z gate (and observable).
	PauliZ
	// SGate is the single-qubit phase gate S.
	SGate
	// TGate is the single-qubit T gate.
	TGate
	// SX is the square root of Pauli X.
	SX
	// RX is a rotation about the x axis.
	RX
	// RY is a rotation about the y axis.
	RY
	// RZ is a rotation about the z axis.
	RZ
	// Rot is the general single-qubit rotation Rot(phi, theta, omega).
	Rot
	// PhaseShift is the single-qubit phase shift P(phi).
	PhaseShift
	// AxisRotation is the ion-native rotation R(theta, phi) about an
	// equatorial axis at angle phi.
	AxisRotation
	// CNOT is the controlled-X gate.
	CNOT
	// CZ is the controlled-Z gate.
	CZ
	// SWAP exchanges two qubits.
	SWAP
	// IsingXX is the two-qubit XX interaction (Molmer-Sorensen at pi/2).
	IsingXX
	// IsingYY is the two-qubit YY interaction.
	IsingYY
	// IsingZZ is the two-qubit ZZ interaction.
	IsingZZ
	// MultiRZ is exp(-i theta/2 Z...Z) on any number of qubits.
	MultiRZ

	// --- Qumode (CV) gates ---

	// Displacement is the phase-space displacement D(a, phi).
	Displacement
	// Rotation is the phase-space rotation R(theta) of a single qumode.
	Rotation
	// Squeezing is the single-mode squeezing gate S(r, phi).
	Squeezing
	// Fourier is the quarter-period phase-space rotation.
	Fourier
	// CubicPhase is the cubic phase gate.
	CubicPhase
	// Beamsplitter mixes two qumodes BS(theta, phi).
	Beamsplitter
	// TwoModeSqueezing is the two-mode squeezing gate.
	TwoModeSqueezing
	// TwoModeSum is the two-mode SUM gate.
	TwoModeSum
	// ModeSwap exchanges the states of two qumodes.
	ModeSwap

	// --- Hybrid qubit-qumode gates ---

	// ConditionalRotation rotates a qumode conditioned on a qubit.
	ConditionalRotation
	// ConditionalDisplacement displaces a qumode by +-beta on the qubit Z
	// eigenvalue.
	ConditionalDisplacement
	// ConditionalXDisplacement is the sigma_x-conditioned displacement.
	ConditionalXDisplacement
	// ConditionalYDisplacement is the sigma_y-conditioned displacement.
	ConditionalYDisplacement
	// EchoedConditionalDisplacement is the echoed conditional displacement.
	EchoedConditionalDisplacement
	// ConditionalParity is the qubit-conditioned parity (Fourier) gate.
	ConditionalParity
	// ConditionalSqueezing is the qubit-conditioned squeezing gate.
	ConditionalSqueezing
	// ConditionalBeamsplitter is the qubit-conditioned beamsplitter.
	ConditionalBeamsplitter
	// ConditionalTwoModeSqueezing is the qubit-conditioned two-mode squeezer.
	ConditionalTwoModeSqueezing
	// ConditionalTwoModeSum is the qubit-conditioned two-mode SUM gate.
	ConditionalTwoModeSum
	// SelectiveQubitRotation rotates the qubit within a selected Fock level.
	SelectiveQubitRotation
	// SelectiveNumberArbitraryPhase applies a phase to a selected Fock level.
	SelectiveNumberArbitraryPhase
	// JaynesCummings is the red-sideband interaction JC(theta, phi).
	JaynesCummings
	// AntiJaynesCummings is the blue-sideband interaction AJC(theta, phi).
	AntiJaynesCummings
	// Rabi is the Rabi interaction gate.
	Rabi
	// FockState prepares a definite Fock state using a helper qubit.
	FockState

	// --- Ion-trap native instructions ---

	// ConditionalXSqueezing is the sigma_x-conditioned squeezing ramp.
	ConditionalXSqueezing
	// NativeBeamsplitter is the hardware beamsplitter instruction, with
	// detuning/duration arguments rather than angles.
	NativeBeamsplitter
	// SidebandProbe is the general sideband probe instruction.
	SidebandProbe

	// --- Qumode observables ---

	// NumberOperator is the photon-number observable n.
	NumberOperator
	// QuadX is the position quadrature observable.
	QuadX
	// QuadP is the momentum quadrature observable.
	QuadP
	// QuadOperator is the generalised quadrature x cos(phi) + p sin(phi).
	QuadOperator
	// FockStateProjector projects onto a definite Fock state.
	FockStateProjector
	// TensorN is the tensor product of number operators on several qumodes.
	TensorN

	// --- Symbolic wrappers ---

	// KindQubitConditioned marks a qubit-conditioned wrapper gate.
	KindQubitConditioned
	// KindAdjoint marks an adjoint wrapper gate.
	KindAdjoint
	// KindPow marks a symbolic power wrapper gate.
	KindPow

	lastKind
)

// Flags describe orthogonal gate capabilities checked explicitly by the
// analyzer, optimizer and decomposer.
type Flags uint16

const (
	// FlagComposable marks rotation-like gates which merge by adding their
	// first parameter when all remaining parameters agree.
	FlagComposable Flags = 1 << iota
	// FlagDiagonalFock marks operators diagonal in the Fock (number) basis.
	FlagDiagonalFock
	// FlagDiagonalPosition marks operators diagonal in the position basis.
	FlagDiagonalPosition
	// FlagHermitian marks operators usable as measurement observables.
	FlagHermitian
	// FlagSelfInverse marks gates equal to their own adjoint.
	FlagSelfInverse
	// FlagVariadic marks gates accepting any number of wires.
	FlagVariadic
	// FlagAllQumodes marks variadic gates whose wires are all qumodes.
	FlagAllQumodes
	// FlagUntyped marks gates placing no qubit/qumode requirement on their
	// wires (identity-like operators).
	FlagUntyped
	// FlagFockLevel marks gates carrying an integer Fock-level argument.
	FlagFockLevel
)

// Signature is the static description of an operator kind.  NumQumodes counts
// the *trailing* wires which are qumode-typed; all preceding wires are
// qubit-typed.  Variadic kinds have NumWires zero and carry FlagVariadic.
type Signature struct {
	// Name is the canonical spelling used in circuit files, gate-set tables
	// and emitted diagnostics.
	Name string
	// NumParams is the number of real parameters.
	NumParams uint
	// NumWires is the total wire arity (zero for variadic kinds).
	NumWires uint
	// NumQumodes counts trailing qumode-typed wires.
	NumQumodes uint
	// Flags holds the capability flags of this kind.
	Flags Flags
}

var signatures = [lastKind]Signature{
	Identity:    {"Identity", 0, 0, 0, FlagVariadic | FlagUntyped | FlagHermitian | FlagSelfInverse | FlagDiagonalFock | FlagDiagonalPosition},
	GlobalPhase: {"GlobalPhase", 1, 0, 0, FlagVariadic | FlagUntyped},
	Hadamard:    {"Hadamard", 0, 1, 0, FlagHermitian | FlagSelfInverse},
	PauliX:      {"PauliX", 0, 1, 0, FlagHermitian | FlagSelfInverse},
	PauliY:      {"PauliY", 0, 1, 0, FlagHermitian | FlagSelfInverse},
	PauliZ:      {"PauliZ", 0, 1, 0, FlagHermitian | FlagSelfInverse},
	SGate:       {"S", 0, 1, 0, 0},
	TGate:       {"T", 0, 1, 0, 0},
	SX:          {"SX", 0, 1, 0, 0},
	RX:          {"RX", 1, 1, 0, FlagComposable},
	RY:          {"RY", 1, 1, 0, FlagComposable},
	RZ:          {"RZ", 1, 1, 0, FlagComposable},
	Rot:         {"Rot", 3, 1, 0, 0},
	PhaseShift:  {"PhaseShift", 1, 1, 0, FlagComposable},
	AxisRotation: {"R", 2, 1, 0, FlagComposable},
	CNOT:         {"CNOT", 0, 2, 0, FlagSelfInverse},
	CZ:           {"CZ", 0, 2, 0, FlagSelfInverse},
	SWAP:         {"SWAP", 0, 2, 0, FlagSelfInverse},
	IsingXX:      {"IsingXX", 1, 2, 0, FlagComposable},
	IsingYY:      {"IsingYY", 1, 2, 0, FlagComposable},
	IsingZZ:      {"IsingZZ", 1, 2, 0, FlagComposable},
	MultiRZ:      {"MultiRZ", 1, 0, 0, FlagVariadic | FlagComposable},

	Displacement:     {"Displacement", 2, 1, 1, FlagComposable | FlagDiagonalFock},
	Rotation:         {"Rotation", 1, 1, 1, FlagComposable | FlagDiagonalFock},
	Squeezing:        {"Squeezing", 2, 1, 1, FlagComposable},
	Fourier:          {"Fourier", 0, 1, 1, FlagDiagonalFock},
	CubicPhase:       {"CubicPhase", 1, 1, 1, 0},
	Beamsplitter:     {"Beamsplitter", 2, 2, 2, FlagComposable},
	TwoModeSqueezing: {"TwoModeSqueezing", 2, 2, 2, FlagComposable},
	TwoModeSum:       {"TwoModeSum", 1, 2, 2, FlagComposable | FlagDiagonalPosition},
	ModeSwap:         {"ModeSwap", 0, 2, 2, FlagSelfInverse},

	ConditionalRotation:           {"ConditionalRotation", 1, 2, 1, FlagComposable},
	ConditionalDisplacement:       {"ConditionalDisplacement", 2, 2, 1, FlagComposable},
	ConditionalXDisplacement:      {"ConditionalXDisplacement", 2, 2, 1, FlagComposable},
	ConditionalYDisplacement:      {"ConditionalYDisplacement", 2, 2, 1, FlagComposable},
	EchoedConditionalDisplacement: {"EchoedConditionalDisplacement", 2, 2, 1, FlagComposable},
	ConditionalParity:             {"ConditionalParity", 0, 2, 1, 0},
	ConditionalSqueezing:          {"ConditionalSqueezing", 2, 2, 1, FlagComposable},
	ConditionalBeamsplitter:       {"ConditionalBeamsplitter", 2, 3, 2, FlagComposable},
	ConditionalTwoModeSqueezing:   {"ConditionalTwoModeSqueezing", 2, 3, 2, FlagComposable},
	ConditionalTwoModeSum:         {"ConditionalTwoModeSum", 1, 3, 2, FlagComposable},
	SelectiveQubitRotation:        {"SelectiveQubitRotation", 2, 2, 1, FlagComposable | FlagFockLevel},
	SelectiveNumberArbitraryPhase: {"SelectiveNumberArbitraryPhase", 1, 2, 1, FlagComposable | FlagDiagonalFock | FlagFockLevel},
	JaynesCummings:                {"JaynesCummings", 2, 2, 1, FlagComposable},
	AntiJaynesCummings:            {"AntiJaynesCummings", 2, 2, 1, FlagComposable},
	Rabi:                          {"Rabi", 2, 2, 1, FlagComposable},
	FockState:                     {"FockState", 0, 2, 1, FlagFockLevel},

	ConditionalXSqueezing: {"ConditionalXSqueezing", 1, 2, 1, 0},
	NativeBeamsplitter:    {"NativeBeamsplitter", 4, 3, 2, 0},
	SidebandProbe:         {"SidebandProbe", 4, 2, 1, 0},

	NumberOperator:     {"NumberOperator", 0, 1, 1, FlagHermitian | FlagDiagonalFock},
	QuadX:              {"QuadX", 0, 1, 1, FlagHermitian | FlagDiagonalPosition},
	QuadP:              {"QuadP", 0, 1, 1, FlagHermitian},
	QuadOperator:       {"QuadOperator", 1, 1, 1, FlagHermitian},
	FockStateProjector: {"FockStateProjector", 0, 1, 1, FlagHermitian | FlagDiagonalFock | FlagFockLevel},
	TensorN:            {"TensorN", 0, 0, 0, FlagVariadic | FlagAllQumodes | FlagHermitian | FlagDiagonalFock},

	KindQubitConditioned: {"QubitConditioned", 0, 0, 0, FlagVariadic},
	KindAdjoint:          {"Adjoint", 0, 0, 0, FlagVariadic},
	KindPow:              {"Pow", 0, 0, 0, FlagVariadic},
}

// SignatureOf returns the static signature of a kind.
func SignatureOf(k Kind) Signature {
	return signatures[k]
}

// Is checks whether a kind carries a given capability flag.
func (k Kind) Is(flag Flags) bool {
	return signatures[k].Flags&flag != 0
}

// Name returns the canonical name of this kind.
func (k Kind) Name() string {
	return signatures[k].Name
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, lastKind)
	for k := Kind(1); k < lastKind; k++ {
		m[signatures[k].Name] = k
	}

	return m
}()

// KindByName resolves a canonical gate name back to its kind, returning false
// for unknown names.
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}
