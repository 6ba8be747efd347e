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

// Package jaqal emits Jaqal programs for the QSCOUT trapped-ion testbed and
// defines the hardware vocabulary shared with the device pipeline: the
// native gate tables and the qumode wire labelling.
package jaqal

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// Qumode is a motional mode of the ion chain.  The manifold selects the
// axial direction: the lower manifold 1 couples more strongly than the
// upper manifold 0.  Within a manifold, index 0 is the center-of-mass mode,
// 1 the tilt mode, and the last the zig-zag mode.
type Qumode struct {
	// Manifold is 0 or 1.
	Manifold int
	// Index is the mode number within the manifold.
	Index int
}

var qumodePattern = regexp.MustCompile(`^m([01])i(\d+)$`)

// ParseQumode decodes a hardware qumode label of the form "m0i1".  The
// second return is false for labels in any other shape, including qubit
// labels.
func ParseQumode(w wire.Wire) (Qumode, bool) {
	m := qumodePattern.FindStringSubmatch(string(w))
	if m == nil {
		return Qumode{}, false
	}

	manifold, _ := strconv.Atoi(m[1])
	index, _ := strconv.Atoi(m[2])

	return Qumode{Manifold: manifold, Index: index}, true
}

// Wire encodes the qumode as its hardware wire label.
func (q Qumode) Wire() wire.Wire {
	return wire.New(q.String())
}

func (q Qumode) String() string {
	return fmt.Sprintf("m%di%d", q.Manifold, q.Index)
}
