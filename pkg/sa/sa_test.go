package sa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

func leaf(t *testing.T, kind ops.Kind, labels ...wire.Wire) circuit.Observable {
	t.Helper()

	obs, err := circuit.NewLeafObs(ops.MustGate(kind, nil, labels...))
	require.NoError(t, err)

	return obs
}

func TestAnalyzePartitionsWires(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.Hadamard, nil, "a"),
		ops.MustGate(ops.JaynesCummings, []float64{0.5, 0}, "a", "b"),
		ops.MustGate(ops.Beamsplitter, []float64{0.5, 0}, "b", "c"),
	}}

	res, err := Analyze(&c)
	require.NoError(t, err)
	assert.Equal(t, wire.Wires{"a"}, res.Qubits)
	assert.Equal(t, wire.Wires{"b", "c"}, res.Qumodes)
}

func TestAnalyzeClassifiesWrapperWires(t *testing.T) {
	d := ops.MustGate(ops.Displacement, []float64{1, 0}, "m")
	qc, err := ops.NewQubitConditioned(d, wire.NewWires("c1", "c2"))
	require.NoError(t, err)

	c := circuit.Circuit{Operations: []ops.Gate{ops.Adjoint(qc)}}

	res, err := Analyze(&c)
	require.NoError(t, err)
	assert.Equal(t, wire.Wires{"c1", "c2"}, res.Qubits)
	assert.Equal(t, wire.Wires{"m"}, res.Qumodes)
}

func TestAnalyzeRejectsAliasedWires(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.Hadamard, nil, "w"),
		ops.MustGate(ops.Displacement, []float64{1, 0}, "w"),
	}}

	_, err := Analyze(&c)

	var saErr *StaticAnalysisError
	require.ErrorAs(t, err, &saErr)
	assert.Equal(t, wire.New("w"), saErr.Wire)
	assert.Contains(t, saErr.Detail, "qubit")
	assert.Contains(t, saErr.Detail, "qumode")
}

func TestAnalyzeUntypedGatesConstrainNothing(t *testing.T) {
	c := circuit.Circuit{Operations: []ops.Gate{
		ops.MustGate(ops.GlobalPhase, []float64{0.5}),
		ops.MustGate(ops.Displacement, []float64{1, 0}, "w"),
	}}

	res, err := Analyze(&c)
	require.NoError(t, err)
	assert.Empty(t, res.Qubits)
	assert.Equal(t, wire.Wires{"w"}, res.Qumodes)
}

func TestAnalyzeInfersFockBasis(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.Displacement, []float64{1, 0}, "b"),
		},
		Measurements: []circuit.Measurement{
			{Type: circuit.Sample, Obs: leaf(t, ops.NumberOperator, "b")},
		},
	}

	res, err := Analyze(&c)
	require.NoError(t, err)
	require.Len(t, res.Schemas, 1)
	assert.Equal(t, BasisDiscrete, res.Schemas[0].Basis("b"))
}

func TestAnalyzeInfersPositionBasis(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.Squeezing, []float64{0.5, 0}, "b"),
		},
		Measurements: []circuit.Measurement{
			{Type: circuit.Sample, Obs: leaf(t, ops.QuadP, "b")},
		},
	}

	res, err := Analyze(&c)
	require.NoError(t, err)
	assert.Equal(t, BasisPosition, res.Schemas[0].Basis("b"))
}

func TestAnalyzeTensorObservable(t *testing.T) {
	obs := &circuit.TensorObs{Factors: []circuit.Observable{
		leaf(t, ops.PauliZ, "a"),
		leaf(t, ops.NumberOperator, "b"),
	}}

	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.ConditionalDisplacement, []float64{1, 0}, "a", "b"),
		},
		Measurements: []circuit.Measurement{
			{Type: circuit.Sample, Obs: obs},
		},
	}

	res, err := Analyze(&c)
	require.NoError(t, err)
	assert.Equal(t, wire.Wires{"a"}, res.Qubits)
	assert.Equal(t, BasisDiscrete, res.Schemas[0].Basis("b"))
	assert.Equal(t, BasisUnset, res.Schemas[0].Basis("a"))
}

func TestAnalyzeRejectsBasisConflictWithinMeasurement(t *testing.T) {
	obs := &circuit.SumObs{Terms: []circuit.Observable{
		leaf(t, ops.NumberOperator, "b"),
		leaf(t, ops.QuadX, "b"),
	}}

	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.Displacement, []float64{1, 0}, "b"),
		},
		Measurements: []circuit.Measurement{
			{Type: circuit.Sample, Obs: obs},
		},
	}

	_, err := Analyze(&c)

	var saErr *StaticAnalysisError
	require.ErrorAs(t, err, &saErr)
	assert.Contains(t, saErr.Detail, "basis")
}

func TestAnalyzeSeparateMeasurementsMayDisagree(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.Displacement, []float64{1, 0}, "b"),
		},
		Measurements: []circuit.Measurement{
			{Type: circuit.Sample, Obs: leaf(t, ops.NumberOperator, "b")},
			{Type: circuit.Sample, Obs: leaf(t, ops.QuadX, "b")},
		},
	}

	res, err := Analyze(&c)
	require.NoError(t, err)
	assert.Equal(t, BasisDiscrete, res.Schemas[0].Basis("b"))
	assert.Equal(t, BasisPosition, res.Schemas[1].Basis("b"))
}

func TestBasisSchemaLookup(t *testing.T) {
	schema := NewBasisSchema(
		[]wire.Wires{wire.NewWires("a", "b"), wire.NewWires("c")},
		[]ComputationalBasis{BasisDiscrete, BasisPosition},
	)

	assert.Equal(t, BasisDiscrete, schema.Basis("a"))
	assert.Equal(t, BasisPosition, schema.Basis("c"))
	assert.Equal(t, BasisUnset, schema.Basis("d"))
	assert.False(t, schema.IsEmpty())
	assert.True(t, schema.Wires().Equals(wire.NewWires("a", "b", "c")))
}
