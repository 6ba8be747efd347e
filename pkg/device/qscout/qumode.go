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

// Package qscout compiles hybrid circuits for the Sandia QSCOUT trapped-ion
// device: measurement diagonalization, decomposition into the native gate
// set, layout of virtual wires onto hardware wires, and validation.
package qscout

import (
	"github.com/pnnl/go-hybridlane/pkg/jaqal"
	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// deviceQubits lists the hardware qubit wires 0..n-1.
func deviceQubits(maxQubits uint) wire.Wires {
	ws := make(wire.Wires, 0, maxQubits)
	for i := uint(0); i < maxQubits; i++ {
		ws = append(ws, wire.OfIndex(i))
	}

	return ws
}

// deviceQumodes lists the hardware qumode wires.  A chain of n ions carries
// n modes per manifold; the center-of-mass modes heat readily and are
// excluded unless asked for.
func deviceQumodes(maxQubits uint, useCOMModes bool) wire.Wires {
	minIndex := 1
	if useCOMModes {
		minIndex = 0
	}

	ws := make(wire.Wires, 0, 2*maxQubits)

	for i := minIndex; i < int(maxQubits); i++ {
		for _, manifold := range []int{0, 1} {
			ws = append(ws, jaqal.Qumode{Manifold: manifold, Index: i}.Wire())
		}
	}

	return ws
}

// allowedDeviceWires is the full set of hardware wires.
func allowedDeviceWires(maxQubits uint, useCOMModes bool) wire.Wires {
	return append(deviceQubits(maxQubits), deviceQumodes(maxQubits, useCOMModes)...)
}
