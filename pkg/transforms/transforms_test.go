package transforms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
)

func TestCancelInversesSelfInversePair(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.Hadamard, nil, "0"),
		ops.MustGate(ops.Hadamard, nil, "0"),
		ops.MustGate(ops.PauliX, nil, "1"),
	}}

	out, err := CancelInverses(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 1)
	assert.Equal(t, ops.PauliX, out.Operations[0].Kind)
}

func TestCancelInversesLooksThroughDisjointWires(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.SGate, nil, "0"),
		ops.MustGate(ops.RX, []float64{0.3}, "1"),
		ops.Adjoint(ops.MustGate(ops.SGate, nil, "0")),
	}}

	out, err := CancelInverses(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 1)
	assert.Equal(t, ops.RX, out.Operations[0].Kind)
}

func TestCancelInversesBlockedByOverlap(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.CNOT, nil, "0", "1"),
		ops.MustGate(ops.PauliZ, nil, "1"),
		ops.MustGate(ops.CNOT, nil, "0", "1"),
	}}

	out, err := CancelInverses(c)
	require.NoError(t, err)
	assert.Len(t, out.Operations, 3)
}

func TestMergeRotationsSumsAngles(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.RZ, []float64{0.25}, "0"),
		ops.MustGate(ops.RZ, []float64{0.5}, "0"),
	}}

	out, err := MergeRotations(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 1)
	assert.InDelta(t, 0.75, out.Operations[0].Params[0], 1e-12)
}

func TestMergeRotationsFullPeriodVanishes(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.RX, []float64{math.Pi}, "0"),
		ops.MustGate(ops.RX, []float64{3 * math.Pi}, "0"),
	}}

	out, err := MergeRotations(c)
	require.NoError(t, err)
	assert.Empty(t, out.Operations)
}

func TestMergeRotationsRequiresMatchingPhases(t *testing.T) {
	// Displacements along different axes do not add.
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.Displacement, []float64{0.1, 0}, "m0i1"),
		ops.MustGate(ops.Displacement, []float64{0.2, math.Pi / 2}, "m0i1"),
	}}

	out, err := MergeRotations(c)
	require.NoError(t, err)
	assert.Len(t, out.Operations, 2)
}

func TestCommuteControlledMovesPhaseGatePastCondition(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.RZ, []float64{0.4}, "0"),
		ops.MustGate(ops.ConditionalDisplacement, []float64{1, 0}, "0", "m0i1"),
		ops.MustGate(ops.RZ, []float64{-0.4}, "0"),
	}}

	out, err := Chain(CommuteControlled, MergeRotations)(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 1)
	assert.Equal(t, ops.ConditionalDisplacement, out.Operations[0].Kind)
}

func TestCommuteControlledLeavesNonCommutingAlone(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.PauliX, nil, "0"),
		ops.MustGate(ops.ConditionalDisplacement, []float64{1, 0}, "0", "m0i1"),
	}}

	out, err := CommuteControlled(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 2)
	assert.Equal(t, ops.PauliX, out.Operations[0].Kind)
}

func TestSingleQubitFusionProducesRot(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.RZ, []float64{0.3}, "0"),
		ops.MustGate(ops.RY, []float64{0.7}, "0"),
		ops.MustGate(ops.RZ, []float64{-0.1}, "0"),
	}}

	out, err := SingleQubitFusion(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 1)

	g := out.Operations[0]
	require.Equal(t, ops.Rot, g.Kind)
	assert.InDelta(t, 0.3, g.Params[0], 1e-9)
	assert.InDelta(t, 0.7, g.Params[1], 1e-9)
	assert.InDelta(t, -0.1, g.Params[2], 1e-9)
}

func TestSingleQubitFusionCancellingRunVanishes(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.Hadamard, nil, "0"),
		ops.MustGate(ops.PauliZ, nil, "0"),
		ops.MustGate(ops.Hadamard, nil, "0"),
		ops.MustGate(ops.PauliX, nil, "0"),
	}}

	// H Z H = X, so the whole run composes to the identity up to phase.
	out, err := SingleQubitFusion(c)
	require.NoError(t, err)

	for _, g := range out.Operations {
		assert.NotEqual(t, ops.Rot, g.Kind)
	}
}

func TestSingleQubitFusionStopsAtBarrier(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.RZ, []float64{0.3}, "0"),
		ops.MustGate(ops.CNOT, nil, "0", "1"),
		ops.MustGate(ops.RZ, []float64{0.4}, "0"),
	}}

	out, err := SingleQubitFusion(c)
	require.NoError(t, err)
	assert.Len(t, out.Operations, 3)
}

func TestCombineGlobalPhases(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.GlobalPhase, []float64{0.5}),
		ops.MustGate(ops.RX, []float64{1}, "0"),
		ops.MustGate(ops.GlobalPhase, []float64{0.25}),
	}}

	out, err := CombineGlobalPhases(c)
	require.NoError(t, err)
	require.Len(t, out.Operations, 2)
	assert.Equal(t, ops.RX, out.Operations[0].Kind)
	assert.Equal(t, ops.GlobalPhase, out.Operations[1].Kind)
	assert.InDelta(t, 0.75, out.Operations[1].Params[0], 1e-12)
}

func TestCombineGlobalPhasesFullPeriodDropped(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.GlobalPhase, []float64{math.Pi}),
		ops.MustGate(ops.GlobalPhase, []float64{math.Pi}),
	}}

	out, err := CombineGlobalPhases(c)
	require.NoError(t, err)
	assert.Empty(t, out.Operations)
}

func TestDiagonalizePauliX(t *testing.T) {
	obs, err := circuit.NewLeafObs(ops.MustGate(ops.PauliX, nil, "0"))
	require.NoError(t, err)

	c := circuit.Circuit{
		Measurements: []circuit.Measurement{{Type: circuit.Expval, Obs: obs}},
	}

	out, err := DiagonalizeMeasurements(c)
	require.NoError(t, err)

	require.Len(t, out.Operations, 1)
	assert.Equal(t, ops.Hadamard, out.Operations[0].Kind)

	leaf, ok := out.Measurements[0].Obs.(*circuit.LeafObs)
	require.True(t, ok)
	assert.Equal(t, ops.PauliZ, leaf.Gate.Kind)
}

func TestDiagonalizeQuadP(t *testing.T) {
	obs, err := circuit.NewLeafObs(ops.MustGate(ops.QuadP, nil, "m0i1"))
	require.NoError(t, err)

	c := circuit.Circuit{
		Measurements: []circuit.Measurement{{Type: circuit.Expval, Obs: obs}},
	}

	out, err := DiagonalizeMeasurements(c)
	require.NoError(t, err)

	require.Len(t, out.Operations, 1)
	assert.Equal(t, ops.Rotation, out.Operations[0].Kind)
	assert.InDelta(t, math.Pi/2, out.Operations[0].Params[0], 1e-12)

	leaf, ok := out.Measurements[0].Obs.(*circuit.LeafObs)
	require.True(t, ok)
	assert.Equal(t, ops.QuadX, leaf.Gate.Kind)
}

func TestDiagonalizeIncompatibleBases(t *testing.T) {
	x, err := circuit.NewLeafObs(ops.MustGate(ops.PauliX, nil, "0"))
	require.NoError(t, err)
	z, err := circuit.NewLeafObs(ops.MustGate(ops.PauliZ, nil, "0"))
	require.NoError(t, err)

	c := circuit.Circuit{
		Measurements: []circuit.Measurement{
			{Type: circuit.Expval, Obs: x},
			{Type: circuit.Expval, Obs: z},
		},
	}

	_, err = DiagonalizeMeasurements(c)
	assert.ErrorContains(t, err, "incompatible bases")
}

func TestDiagonalizeSharedWireSameBasis(t *testing.T) {
	a, err := circuit.NewLeafObs(ops.MustGate(ops.PauliX, nil, "0"))
	require.NoError(t, err)
	b, err := circuit.NewLeafObs(ops.MustGate(ops.PauliX, nil, "0"))
	require.NoError(t, err)

	c := circuit.Circuit{
		Measurements: []circuit.Measurement{
			{Type: circuit.Expval, Obs: a},
			{Type: circuit.Var, Obs: b},
		},
	}

	out, err := DiagonalizeMeasurements(c)
	require.NoError(t, err)

	// The rotation is applied once even though two measurements need it.
	assert.Len(t, out.Operations, 1)
}
