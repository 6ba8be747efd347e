package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnnl/go-hybridlane/pkg/wire"
)

func TestNewRejectsArityViolations(t *testing.T) {
	_, err := New(RX, nil, wire.NewWires("0"))
	assert.ErrorContains(t, err, "expects 1 parameter(s)")

	_, err = New(RX, []float64{0.5}, wire.NewWires("0", "1"))
	assert.ErrorContains(t, err, "expects 1 wire(s)")
}

func TestNewFockGateValidatesLevel(t *testing.T) {
	_, err := NewFockGate(FockState, -1, nil, wire.NewWires("0", "m0i1"))
	assert.ErrorContains(t, err, "negative Fock-state index")

	_, err = NewFockGate(RX, 1, []float64{0.5}, wire.NewWires("0"))
	assert.ErrorContains(t, err, "no Fock-level argument")

	g, err := NewFockGate(FockState, 3, nil, wire.NewWires("0", "m0i1"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.FockLevel)
}

func TestGateNames(t *testing.T) {
	s := MustGate(SGate, nil, "0")
	assert.Equal(t, "S", s.Name())

	sdg := Adjoint(s)
	assert.Equal(t, "Adjoint(S)", sdg.Name())

	qc, err := NewQubitConditioned(MustGate(Fourier, nil, "m0i1"), wire.NewWires("0"))
	require.NoError(t, err)
	assert.Equal(t, "qCond(Fourier)", qc.Name())
}

func TestAdjointOfSelfInverseGates(t *testing.T) {
	x := MustGate(PauliX, nil, "0")
	adj := Adjoint(x)
	assert.True(t, adj.Equals(&x))
}

func TestAdjointNegatesComposableAngle(t *testing.T) {
	d := MustGate(Displacement, []float64{0.5, 0.3}, "m0i1")
	adj := Adjoint(d)

	assert.Equal(t, Displacement, adj.Kind)
	assert.Equal(t, []float64{-0.5, 0.3}, adj.Params)
}

func TestAdjointOfAdjointIsBase(t *testing.T) {
	cp := MustGate(ConditionalParity, nil, "0", "m0i1")
	adj := Adjoint(cp)
	require.Equal(t, KindAdjoint, adj.Kind)

	back := Adjoint(adj)
	assert.True(t, back.Equals(&cp))
}

func TestPowScalesComposableAngle(t *testing.T) {
	r := MustGate(RZ, []float64{0.5}, "0")
	p := Pow(r, 3)

	assert.Equal(t, RZ, p.Kind)
	assert.Equal(t, []float64{1.5}, p.Params)
}

func TestPowWrapsNonComposableGates(t *testing.T) {
	cp := MustGate(ConditionalParity, nil, "0", "m0i1")
	p := Pow(cp, 0.5)

	require.Equal(t, KindPow, p.Kind)
	assert.Equal(t, 0.5, p.Exponent)
	assert.Equal(t, ConditionalParity, p.Base.Kind)
}

func TestQcondRejectsOverlappingControls(t *testing.T) {
	d := MustGate(ConditionalDisplacement, []float64{1, 0}, "0", "m0i1")
	_, err := NewQubitConditioned(d, wire.NewWires("0"))
	assert.ErrorContains(t, err, "must be different from")
}

func TestQcondFoldsKnownGates(t *testing.T) {
	d := MustGate(Displacement, []float64{1, 0.5}, "m0i1")

	g, err := Qcond(d, wire.NewWires("0"))
	require.NoError(t, err)
	assert.Equal(t, ConditionalDisplacement, g.Kind)
	assert.Equal(t, wire.Wires{"0", "m0i1"}, g.Operands)
	assert.Equal(t, []float64{1, 0.5}, g.Params)
}

func TestQcondDoublesRotationAngle(t *testing.T) {
	r := MustGate(Rotation, []float64{0.3}, "m0i1")

	g, err := Qcond(r, wire.NewWires("0"))
	require.NoError(t, err)
	assert.Equal(t, ConditionalRotation, g.Kind)
	assert.Equal(t, []float64{0.6}, g.Params)
}

func TestQcondWidensZRotations(t *testing.T) {
	rz := MustGate(RZ, []float64{0.4}, "0")

	g, err := Qcond(rz, wire.NewWires("1"))
	require.NoError(t, err)
	assert.Equal(t, IsingZZ, g.Kind)
	assert.Equal(t, wire.Wires{"1", "0"}, g.Operands)

	g, err = Qcond(g, wire.NewWires("2"))
	require.NoError(t, err)
	assert.Equal(t, MultiRZ, g.Kind)
	assert.Len(t, g.Operands, 3)
}

func TestQcondGlobalPhaseBecomesZRotation(t *testing.T) {
	gp := MustGate(GlobalPhase, []float64{0.25})

	g, err := Qcond(gp, wire.NewWires("0"))
	require.NoError(t, err)
	assert.Equal(t, RZ, g.Kind)
	assert.Equal(t, []float64{0.5}, g.Params)
	assert.Equal(t, wire.Wires{"0"}, g.Operands)
}

func TestQcondMergesNestedControls(t *testing.T) {
	cubic := MustGate(CubicPhase, []float64{0.1}, "m0i1")

	inner, err := NewQubitConditioned(cubic, wire.NewWires("0"))
	require.NoError(t, err)

	outer, err := Qcond(inner, wire.NewWires("1"))
	require.NoError(t, err)
	require.Equal(t, KindQubitConditioned, outer.Kind)
	assert.Equal(t, wire.Wires{"1", "0"}, outer.Controls)
	assert.Equal(t, CubicPhase, outer.Base.Kind)
}

func TestFlattenCollapsesNesting(t *testing.T) {
	d := MustGate(Displacement, []float64{1, 0}, "m0i1")

	inner, err := NewQubitConditioned(d, wire.NewWires("0"))
	require.NoError(t, err)
	outer, err := NewQubitConditioned(inner, wire.NewWires("1"))
	require.NoError(t, err)

	flat := Flatten(outer)
	require.Equal(t, KindQubitConditioned, flat.Kind)
	assert.Equal(t, wire.Wires{"1", "0"}, flat.Controls)
	assert.Equal(t, Displacement, flat.Base.Kind)
}

func TestDecomposeLadderStructure(t *testing.T) {
	d := MustGate(Displacement, []float64{1, 0}, "m0i1")

	qc, err := NewQubitConditioned(d, wire.NewWires("0", "1", "2"))
	require.NoError(t, err)

	gates, err := DecomposeQubitConditioned(qc)
	require.NoError(t, err)
	require.Len(t, gates, 5)

	assert.Equal(t, CNOT, gates[0].Kind)
	assert.Equal(t, wire.Wires{"0", "1"}, gates[0].Operands)
	assert.Equal(t, CNOT, gates[1].Kind)
	assert.Equal(t, wire.Wires{"1", "2"}, gates[1].Operands)
	assert.Equal(t, ConditionalDisplacement, gates[2].Kind)
	assert.Equal(t, wire.Wires{"2", "m0i1"}, gates[2].Operands)
	assert.Equal(t, CNOT, gates[3].Kind)
	assert.Equal(t, wire.Wires{"1", "2"}, gates[3].Operands)
	assert.Equal(t, CNOT, gates[4].Kind)
	assert.Equal(t, wire.Wires{"0", "1"}, gates[4].Operands)
}

func TestDecomposeUndefinedConditioning(t *testing.T) {
	probe := MustGate(SidebandProbe, []float64{1, 0, 1, 0}, "0", "m0i1")

	qc, err := NewQubitConditioned(probe, wire.NewWires("1"))
	require.NoError(t, err)

	_, err = DecomposeQubitConditioned(qc)

	var undefined *ErrDecompositionUndefined
	require.ErrorAs(t, err, &undefined)
}

func TestSimplifyWrapsAngles(t *testing.T) {
	g := Simplify(MustGate(RX, []float64{4*math.Pi + 0.5}, "0"))
	assert.Equal(t, RX, g.Kind)
	assert.InDelta(t, 0.5, g.Params[0], 1e-9)

	g = Simplify(MustGate(RZ, []float64{4 * math.Pi}, "0"))
	assert.Equal(t, Identity, g.Kind)
}

func TestSimplifyAxisRotationSpecialAxes(t *testing.T) {
	g := Simplify(MustGate(AxisRotation, []float64{0.5, 0}, "0"))
	assert.Equal(t, RX, g.Kind)

	g = Simplify(MustGate(AxisRotation, []float64{0.5, math.Pi / 2}, "0"))
	assert.Equal(t, RY, g.Kind)

	g = Simplify(MustGate(AxisRotation, []float64{0, 0.123}, "0"))
	assert.Equal(t, Identity, g.Kind)

	g = Simplify(MustGate(AxisRotation, []float64{0.5, 0.3}, "0"))
	assert.Equal(t, AxisRotation, g.Kind)
}

func TestSimplifySidebandAngle(t *testing.T) {
	g := Simplify(MustGate(JaynesCummings, []float64{2 * math.Pi, 0.1}, "0", "m0i1"))
	assert.Equal(t, Identity, g.Kind)
}

func TestSimplifyUnwrapsClosedFormAdjoint(t *testing.T) {
	d := MustGate(Displacement, []float64{0.5, 0.3}, "m0i1")
	g := Simplify(Gate{Kind: KindAdjoint, Base: &d, Operands: d.Operands})

	assert.Equal(t, Displacement, g.Kind)
	assert.Equal(t, []float64{-0.5, 0.3}, g.Params)
}

func TestSimplifyKeepsSymbolicWrappers(t *testing.T) {
	cp := MustGate(ConditionalParity, nil, "0", "m0i1")

	adj := Simplify(Adjoint(cp))
	require.Equal(t, KindAdjoint, adj.Kind)
	assert.Equal(t, ConditionalParity, adj.Base.Kind)

	p := Simplify(Pow(cp, 0.5))
	require.Equal(t, KindPow, p.Kind)
	assert.Equal(t, ConditionalParity, p.Base.Kind)
}

func TestGeneratorOfConditionedRotation(t *testing.T) {
	r := MustGate(Rotation, []float64{0.5}, "m0i1")

	qc, err := NewQubitConditioned(r, wire.NewWires("0"))
	require.NoError(t, err)

	factors, ok := Generator(qc)
	require.True(t, ok)
	require.Len(t, factors, 2)
	assert.Equal(t, PauliZ, factors[0].Kind)
	assert.Equal(t, NumberOperator, factors[1].Kind)
}

func TestMapWiresRecursesThroughWrappers(t *testing.T) {
	d := MustGate(Displacement, []float64{1, 0}, "a")

	qc, err := NewQubitConditioned(d, wire.NewWires("c"))
	require.NoError(t, err)

	mapped := qc.MapWires(map[wire.Wire]wire.Wire{"a": "m0i1", "c": "0"})
	assert.Equal(t, wire.Wires{"0"}, mapped.Controls)
	assert.Equal(t, wire.Wires{"m0i1"}, mapped.Base.Operands)
}
