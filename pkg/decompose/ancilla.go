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

package decompose

import (
	"errors"
	"fmt"

	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// ErrWorkWiresExhausted indicates a rule requested more ancilla qubits than
// the configured budget allows.
var ErrWorkWiresExhausted = errors.New("work wire budget exhausted")

// Allocator hands out fresh ancilla qubit wires to decomposition rules.  The
// wires are virtual; the layout solver later maps them onto unused hardware
// qubits.  Allocated wires are assumed to start in the zero state.
type Allocator struct {
	budget uint
	issued wire.Wires
}

// NewAllocator constructs an allocator with the given wire budget.
func NewAllocator(budget uint) *Allocator {
	return &Allocator{budget: budget}
}

// Fresh allocates the next ancilla wire, or fails if the budget has been
// spent.
func (a *Allocator) Fresh() (wire.Wire, error) {
	if uint(len(a.issued)) >= a.budget {
		return "", ErrWorkWiresExhausted
	}

	w := wire.New(fmt.Sprintf("virtual-qubit-%d", len(a.issued)))
	a.issued = a.issued.Append(w)

	return w, nil
}

// Issued returns every wire allocated so far, in allocation order.
func (a *Allocator) Issued() wire.Wires {
	return a.issued
}
