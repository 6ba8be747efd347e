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

package jaqal

// GateTable maps operator names to their Jaqal instruction names.  An empty
// instruction name marks operators the hardware absorbs without emitting
// anything.
type GateTable map[string]string

// Has checks membership by operator name.
func (t GateTable) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// QubitGates are the native qubit instructions.
var QubitGates = GateTable{
	"GlobalPhase": "",
	"R":           "R",
	"RX":          "Rx",
	"RY":          "Ry",
	"RZ":          "Rz",
	"PauliX":      "Px",
	"PauliY":      "Py",
	"PauliZ":      "Pz",
	"SX":          "Sx",
	"Adjoint(SX)": "Sxd",
	"S":           "Sz",
	"Adjoint(S)":  "Szd",
	"IsingXX":     "XX",
	"IsingYY":     "YY",
	"IsingZZ":     "ZZ",
}

// BosonGates are the native boson instructions of the QSCOUT extension.
var BosonGates = GateTable{
	"JaynesCummings":           "JC",
	"AntiJaynesCummings":       "AJC",
	"FockState":                "FockStatePrep",
	"ConditionalDisplacement":  "zCD",
	"ConditionalYDisplacement": "yCD",
	"ConditionalXDisplacement": "xCD",
	"ConditionalXSqueezing":    "RampUp",
	"NativeBeamsplitter":       "Beamsplitter",
	"SidebandProbe":            "Rt_SBProbe",
}
