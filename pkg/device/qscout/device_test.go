package qscout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnnl/go-hybridlane/pkg/circuit"
	"github.com/pnnl/go-hybridlane/pkg/jaqal"
	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

func sampleZ(t *testing.T, label wire.Wire) circuit.Measurement {
	t.Helper()

	obs, err := circuit.NewLeafObs(ops.MustGate(ops.PauliZ, nil, label))
	require.NoError(t, err)

	return circuit.Measurement{Type: circuit.Sample, Obs: obs}
}

func TestCompileNativeSidebandGate(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.JaynesCummings, []float64{0.5, 0.25}, "a", "b"),
		},
		Measurements: []circuit.Measurement{sampleZ(t, "a")},
		Shots:        100,
	}

	opts := DefaultOptions()
	opts.MaxQubits = 2
	opts.Optimize = false

	compiled, res, err := Compile(c, opts)
	require.NoError(t, err)

	require.Len(t, compiled.Operations, 1)
	assert.Equal(t, ops.JaynesCummings, compiled.Operations[0].Kind)
	assert.Equal(t, wire.New("0"), compiled.Operations[0].Operands[0])

	_, isMode := jaqal.ParseQumode(compiled.Operations[0].Operands[1])
	assert.True(t, isMode)
	assert.Equal(t, wire.Wires{"0"}, res.Qubits)
}

func TestCompileRejectsGateWithoutNativeRoute(t *testing.T) {
	// The conditional parity has no pulse sequence on this hardware, so a
	// conditioned Fourier has nowhere to go after the ladder reduction.
	fourier := ops.MustGate(ops.Fourier, nil, "b")
	qc, err := ops.NewQubitConditioned(fourier, wire.NewWires("c1", "c2"))
	require.NoError(t, err)

	c := circuit.Circuit{
		Operations:   []ops.Gate{qc},
		Measurements: []circuit.Measurement{sampleZ(t, "c1")},
		Shots:        50,
	}

	_, _, err = Compile(c, DefaultOptions())

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "no route to the native gate set")
	assert.Contains(t, devErr.Detail, "ConditionalParity")
}

func TestCompileDiagonalizesMeasurements(t *testing.T) {
	obs, err := circuit.NewLeafObs(ops.MustGate(ops.PauliX, nil, "a"))
	require.NoError(t, err)

	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.Hadamard, nil, "a"),
		},
		Measurements: []circuit.Measurement{
			{Type: circuit.Sample, Obs: obs},
		},
		Shots: 10,
	}

	compiled, _, err := Compile(c, DefaultOptions())
	require.NoError(t, err)

	leaf, ok := compiled.Measurements[0].Obs.(*circuit.LeafObs)
	require.True(t, ok)
	assert.Equal(t, ops.PauliZ, leaf.Gate.Kind)

	for i := range compiled.Operations {
		assert.True(t, gateSupported(&compiled.Operations[i]),
			"gate %s", compiled.Operations[i].String())
	}
}

func TestCompileRejectsRequestBeyondChainSize(t *testing.T) {
	c := circuit.Circuit{
		Operations:   []ops.Gate{ops.MustGate(ops.Hadamard, nil, "x")},
		Measurements: []circuit.Measurement{sampleZ(t, "x")},
		Shots:        10,
	}

	opts := DefaultOptions()
	opts.MaxQubits = 10

	_, _, err := Compile(c, opts)

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "ion chain holds at most 6")
}

func TestCompileRejectsQubitOverflow(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.Hadamard, nil, "x"),
			ops.MustGate(ops.Hadamard, nil, "y"),
			ops.MustGate(ops.Hadamard, nil, "z"),
		},
		Measurements: []circuit.Measurement{sampleZ(t, "x")},
		Shots:        10,
	}

	opts := DefaultOptions()
	opts.MaxQubits = 2

	_, _, err := Compile(c, opts)

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "more qubits")
}

func TestCompileRejectsQumodeOverflow(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{
			ops.MustGate(ops.JaynesCummings, []float64{0.5, 0}, "a", "b"),
			ops.MustGate(ops.JaynesCummings, []float64{0.5, 0}, "a", "c"),
		},
		Measurements: []circuit.Measurement{sampleZ(t, "a")},
		Shots:        10,
	}

	// One qubit admits no tilt modes at all once the center-of-mass modes
	// are excluded.
	_, _, err := Compile(c, DefaultOptions())

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "more qumodes")
}

func TestCompileRejectsAnalyticMeasurements(t *testing.T) {
	c := circuit.Circuit{
		Operations:   []ops.Gate{ops.MustGate(ops.Hadamard, nil, "a")},
		Measurements: []circuit.Measurement{sampleZ(t, "a")},
	}

	_, _, err := Compile(c, DefaultOptions())

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "analytic")
}

func TestCompileRejectsMissingMeasurements(t *testing.T) {
	c := circuit.Circuit{
		Operations: []ops.Gate{ops.MustGate(ops.Hadamard, nil, "a")},
		Shots:      10,
	}

	_, _, err := Compile(c, DefaultOptions())

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "no measurements")
}

func TestCompileRequiresHardwareLabelsWithoutLayout(t *testing.T) {
	c := circuit.Circuit{
		Operations:   []ops.Gate{ops.MustGate(ops.Hadamard, nil, "a")},
		Measurements: []circuit.Measurement{sampleZ(t, "a")},
		Shots:        10,
	}

	opts := DefaultOptions()
	opts.UseVirtualWires = false

	_, _, err := Compile(c, opts)

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Contains(t, devErr.Detail, "not a hardware wire")
}

func TestGateSupportedHardwareRestrictions(t *testing.T) {
	squeeze := ops.MustGate(ops.ConditionalXSqueezing, []float64{0.5}, "0", "m1i1")
	assert.True(t, gateSupported(&squeeze))

	squeeze = ops.MustGate(ops.ConditionalXSqueezing, []float64{0.5}, "0", "m0i1")
	assert.False(t, gateSupported(&squeeze))

	bs := ops.MustGate(ops.NativeBeamsplitter, []float64{1, 2, 3, 0}, "1", "m0i1", "m1i1")
	assert.True(t, gateSupported(&bs))

	bs = ops.MustGate(ops.NativeBeamsplitter, []float64{1, 2, 3, 0}, "2", "m0i1", "m1i1")
	assert.False(t, gateSupported(&bs))

	bs = ops.MustGate(ops.NativeBeamsplitter, []float64{1, 2, 3, 0}, "1", "m0i1", "m0i2")
	assert.False(t, gateSupported(&bs))
}

func TestDeviceWireGenerators(t *testing.T) {
	assert.Equal(t, wire.Wires{"0", "1", "2"}, deviceQubits(3))

	modes := deviceQumodes(3, false)
	assert.Equal(t, wire.Wires{"m0i1", "m1i1", "m0i2", "m1i2"}, modes)

	modes = deviceQumodes(2, true)
	assert.Equal(t, wire.Wires{"m0i0", "m1i0", "m0i1", "m1i1"}, modes)
}
