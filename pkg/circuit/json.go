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
package circuit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/pnnl/go-hybridlane/pkg/ops"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// JSON circuit format.  Wire labels may be given as integers or strings;
// integer labels are canonicalised to their decimal spelling.
//
//	{
//	  "shots": 100,
//	  "operations": [
//	    {"gate": "JaynesCummings", "params": [0.5, 1.5708], "wires": [0, "m0i1"]}
//	  ],
//	  "measurements": [
//	    {"type": "sample", "observable": {"op": "PauliZ", "wires": [0]}}
//	  ]
//	}

type jsonCircuit struct {
	Shots        uint              `json:"shots,omitempty"`
	Operations   []jsonGate        `json:"operations"`
	Measurements []jsonMeasurement `json:"measurements,omitempty"`
}

type jsonGate struct {
	Gate   string    `json:"gate"`
	Params []float64 `json:"params,omitempty"`
	Wires  []any     `json:"wires"`
	N      *int      `json:"n,omitempty"`
}

type jsonObservable struct {
	Op     string           `json:"op,omitempty"`
	Wires  []any            `json:"wires,omitempty"`
	N      *int             `json:"n,omitempty"`
	Params []float64        `json:"params,omitempty"`
	Tensor []jsonObservable `json:"tensor,omitempty"`
	Sum    []jsonObservable `json:"sum,omitempty"`
	Scale  *float64         `json:"scale,omitempty"`
	Inner  *jsonObservable  `json:"observable,omitempty"`
}

type jsonMeasurement struct {
	Type       string          `json:"type"`
	Observable *jsonObservable `json:"observable,omitempty"`
	Wires      []any           `json:"wires,omitempty"`
}

// FromJSON parses a circuit from its JSON encoding.
func FromJSON(data []byte) (*Circuit, error) {
	var parsed jsonCircuit
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("malformed circuit file: %w", err)
	}

	out := &Circuit{Shots: parsed.Shots}

	for i, jg := range parsed.Operations {
		g, err := parseGate(jg)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}

		out.Operations = append(out.Operations, g)
	}

	for i, jm := range parsed.Measurements {
		m, err := parseMeasurement(jm)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i, err)
		}

		out.Measurements = append(out.Measurements, m)
	}

	return out, nil
}

func parseGate(jg jsonGate) (ops.Gate, error) {
	kind, ok := ops.KindByName(jg.Gate)
	if !ok {
		return ops.Gate{}, fmt.Errorf("unknown gate %q", jg.Gate)
	}

	ws, err := parseWires(jg.Wires)
	if err != nil {
		return ops.Gate{}, err
	}

	if jg.N != nil {
		return ops.NewFockGate(kind, *jg.N, jg.Params, ws)
	}

	return ops.New(kind, jg.Params, ws)
}

func parseWires(raw []any) (wire.Wires, error) {
	ws := make([]wire.Wire, 0, len(raw))

	for _, v := range raw {
		switch label := v.(type) {
		case string:
			ws = append(ws, wire.New(label))
		case float64:
			if label < 0 || label != math.Trunc(label) {
				return nil, fmt.Errorf("invalid numeric wire label %v", label)
			}

			ws = append(ws, wire.New(strconv.FormatUint(uint64(label), 10)))
		default:
			return nil, fmt.Errorf("invalid wire label %v", v)
		}
	}

	return wire.NewWires(ws...), nil
}

func parseMeasurement(jm jsonMeasurement) (Measurement, error) {
	var mt MeasurementType

	switch jm.Type {
	case "expval":
		mt = Expval
	case "var":
		mt = Var
	case "sample":
		mt = Sample
	case "counts":
		mt = Counts
	case "probs":
		mt = Probs
	default:
		return Measurement{}, fmt.Errorf("unknown measurement type %q", jm.Type)
	}

	out := Measurement{Type: mt}

	if jm.Observable != nil {
		obs, err := parseObservable(*jm.Observable)
		if err != nil {
			return Measurement{}, err
		}

		out.Obs = obs
	}

	if jm.Wires != nil {
		ws, err := parseWires(jm.Wires)
		if err != nil {
			return Measurement{}, err
		}

		out.Operands = ws
	}

	return out, nil
}

func parseObservable(jo jsonObservable) (Observable, error) {
	switch {
	case jo.Op != "":
		kind, ok := ops.KindByName(jo.Op)
		if !ok {
			return nil, fmt.Errorf("unknown observable %q", jo.Op)
		}

		ws, err := parseWires(jo.Wires)
		if err != nil {
			return nil, err
		}

		var g ops.Gate
		if jo.N != nil {
			g, err = ops.NewFockGate(kind, *jo.N, jo.Params, ws)
		} else {
			g, err = ops.New(kind, jo.Params, ws)
		}

		if err != nil {
			return nil, err
		}

		return NewLeafObs(g)

	case jo.Tensor != nil:
		factors := make([]Observable, len(jo.Tensor))
		for i, f := range jo.Tensor {
			obs, err := parseObservable(f)
			if err != nil {
				return nil, err
			}

			factors[i] = obs
		}

		return &TensorObs{factors}, nil

	case jo.Sum != nil:
		terms := make([]Observable, len(jo.Sum))
		for i, t := range jo.Sum {
			obs, err := parseObservable(t)
			if err != nil {
				return nil, err
			}

			terms[i] = obs
		}

		return &SumObs{terms}, nil

	case jo.Scale != nil && jo.Inner != nil:
		obs, err := parseObservable(*jo.Inner)
		if err != nil {
			return nil, err
		}

		return &ScaledObs{*jo.Scale, obs}, nil
	}

	return nil, fmt.Errorf("empty observable node")
}
