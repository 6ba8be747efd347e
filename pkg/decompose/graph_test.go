package decompose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

func TestRepFoldsKnownConditionedForms(t *testing.T) {
	fourier := ops.MustGate(ops.Fourier, nil, "m0i1")
	qc, err := ops.NewQubitConditioned(fourier, wire.NewWires("0"))
	require.NoError(t, err)

	rep := RepOf(qc)
	assert.Equal(t, "ConditionalParity", rep.Name())
}

func TestRepFlattensNestedConditioning(t *testing.T) {
	disp := ops.MustGate(ops.Displacement, []float64{1, 0}, "m0i1")
	inner, err := ops.NewQubitConditioned(disp, wire.NewWires("0"))
	require.NoError(t, err)
	outer, err := ops.NewQubitConditioned(inner, wire.NewWires("1"))
	require.NoError(t, err)

	rep := RepOf(outer)
	require.Equal(t, ops.KindQubitConditioned, rep.Kind)
	assert.Equal(t, 2, rep.NumControls)
	assert.Equal(t, ops.Displacement, rep.Base.Kind)
}

func TestRepUnfoldsConditionedGateUnderConditioning(t *testing.T) {
	cd := ops.MustGate(ops.ConditionalDisplacement, []float64{1, 0}, "1", "m0i1")
	qc, err := ops.NewQubitConditioned(cd, wire.NewWires("0"))
	require.NoError(t, err)

	rep := RepOf(qc)
	require.Equal(t, ops.KindQubitConditioned, rep.Kind)
	assert.Equal(t, 2, rep.NumControls)
	assert.Equal(t, ops.Displacement, rep.Base.Kind)
	assert.Equal(t, "qCond(Displacement)", rep.Name())
}

func TestDecomposeNativePassthrough(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.RX, []float64{0.5}, "0"),
	}}

	res, err := Decompose(c, Config{Targets: NewTargetSet("RX")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDecomposed, res.Outcome)
	require.Len(t, res.Circuit.Operations, 1)
	assert.Equal(t, ops.RX, res.Circuit.Operations[0].Kind)
}

func TestDecomposeHadamard(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.Hadamard, nil, "0"),
	}}

	res, err := Decompose(c, Config{Targets: NewTargetSet("RY", "PauliZ")})
	require.NoError(t, err)
	require.Len(t, res.Circuit.Operations, 2)
	assert.Equal(t, ops.RY, res.Circuit.Operations[0].Kind)
	assert.InDelta(t, -math.Pi/2, res.Circuit.Operations[0].Params[0], 1e-12)
	assert.Equal(t, ops.PauliZ, res.Circuit.Operations[1].Kind)
}

func TestDecomposeCnotToIsingInteraction(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.CNOT, nil, "0", "1"),
	}}

	res, err := Decompose(c, Config{Targets: NewTargetSet("RX", "RY", "IsingXX")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDecomposed, res.Outcome)
	require.Len(t, res.Circuit.Operations, 5)
	assert.Equal(t, ops.IsingXX, res.Circuit.Operations[1].Kind)
}

func TestDecomposePicksCheapestRoute(t *testing.T) {
	cd := ops.MustGate(ops.ConditionalDisplacement, []float64{0.4, 0.1}, "0", "m0i1")
	c := circuit.Circuit{Operations: []ops.Gate{cd}}

	// Both the echoed and Rabi routes reach the target set; the echoed route
	// costs 2 against the Rabi route's 3.
	targets := NewTargetSet("EchoedConditionalDisplacement", "PauliX", "Rabi", "Hadamard")

	res, err := Decompose(c, Config{Targets: targets})
	require.NoError(t, err)
	require.Len(t, res.Circuit.Operations, 2)
	assert.Equal(t, ops.EchoedConditionalDisplacement, res.Circuit.Operations[0].Kind)
	assert.InDelta(t, 0.8, res.Circuit.Operations[0].Params[0], 1e-12)
	assert.Equal(t, ops.PauliX, res.Circuit.Operations[1].Kind)
}

func TestDecomposeWeightsSteerRouteChoice(t *testing.T) {
	cd := ops.MustGate(ops.ConditionalDisplacement, []float64{0.4, 0.1}, "0", "m0i1")
	c := circuit.Circuit{Operations: []ops.Gate{cd}}

	// Same target set, but pricing the echoed displacement above the whole
	// Rabi sandwich flips the choice.
	targets := NewTargetSet("EchoedConditionalDisplacement", "PauliX", "Rabi", "Hadamard").
		WithWeight("EchoedConditionalDisplacement", 5)

	res, err := Decompose(c, Config{Targets: targets})
	require.NoError(t, err)
	require.Len(t, res.Circuit.Operations, 3)
	assert.Equal(t, ops.Hadamard, res.Circuit.Operations[0].Kind)
	assert.Equal(t, ops.Rabi, res.Circuit.Operations[1].Kind)
	assert.Equal(t, ops.Hadamard, res.Circuit.Operations[2].Kind)
}

func TestDecomposeSurvivesRuleCycles(t *testing.T) {
	// Rabi rewrites into the conditional displacement and vice versa; with
	// neither native the search must terminate and report the gate.
	rb := ops.MustGate(ops.Rabi, []float64{0.2, 0}, "0", "m0i1")
	c := circuit.Circuit{Operations: []ops.Gate{rb}}

	res, err := Decompose(c, Config{Targets: NewTargetSet("RX")})
	require.NoError(t, err)
	assert.Equal(t, OutcomePartial, res.Outcome)
	assert.Contains(t, res.Unsupported, "Rabi")
}

func TestDecomposeMultiControlLadder(t *testing.T) {
	fourier := ops.MustGate(ops.Fourier, nil, "m0i1")
	qc, err := ops.NewQubitConditioned(fourier, wire.NewWires("0", "1"))
	require.NoError(t, err)

	c := circuit.Circuit{Operations: []ops.Gate{qc}}

	res, err := Decompose(c, Config{Targets: NewTargetSet("ConditionalParity", "CNOT")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeDecomposed, res.Outcome)

	require.Len(t, res.Circuit.Operations, 3)
	assert.Equal(t, ops.CNOT, res.Circuit.Operations[0].Kind)
	assert.Equal(t, wire.NewWires("0", "1"), res.Circuit.Operations[0].Operands)
	assert.Equal(t, ops.ConditionalParity, res.Circuit.Operations[1].Kind)
	assert.Equal(t, wire.NewWires("1", "m0i1"), res.Circuit.Operations[1].Operands)
	assert.Equal(t, ops.CNOT, res.Circuit.Operations[2].Kind)
}

func TestDecomposeAllocatesAncilla(t *testing.T) {
	d := ops.MustGate(ops.Displacement, []float64{1, 0}, "m0i1")
	c := circuit.Circuit{Operations: []ops.Gate{d}}

	res, err := Decompose(c, Config{
		Targets:   NewTargetSet("ConditionalDisplacement"),
		WorkWires: 1,
	})
	require.NoError(t, err)

	require.Len(t, res.Circuit.Operations, 1)
	g := res.Circuit.Operations[0]
	assert.Equal(t, ops.ConditionalDisplacement, g.Kind)
	assert.Equal(t, wire.New("virtual-qubit-0"), g.Operands[0])
	assert.Equal(t, wire.NewWires("virtual-qubit-0"), res.WorkWires)
}

func TestDecomposeAncillaBudgetExhaustion(t *testing.T) {
	d := ops.MustGate(ops.Displacement, []float64{1, 0}, "m0i1")
	c := circuit.Circuit{Operations: []ops.Gate{d}}

	_, err := Decompose(c, Config{Targets: NewTargetSet("ConditionalDisplacement")})
	require.ErrorIs(t, err, ErrWorkWiresExhausted)
}

func TestDecomposeStrictFailsOnUnsupported(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.CubicPhase, []float64{0.1}, "m0i1"),
	}}

	_, err := Decompose(c, Config{Targets: NewTargetSet("RX"), Strict: true})

	var unsupported *DecompositionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, []string{"CubicPhase"}, unsupported.Names)
}

func TestDecomposeRotationDoublesUnderConditioning(t *testing.T) {
	r := ops.MustGate(ops.Rotation, []float64{0.3}, "m0i1")
	c := circuit.Circuit{Operations: []ops.Gate{r}}

	res, err := Decompose(c, Config{
		Targets:   NewTargetSet("ConditionalRotation"),
		WorkWires: 1,
	})
	require.NoError(t, err)

	require.Len(t, res.Circuit.Operations, 1)
	assert.Equal(t, ops.ConditionalRotation, res.Circuit.Operations[0].Kind)
	assert.InDelta(t, 0.6, res.Circuit.Operations[0].Params[0], 1e-12)
}
