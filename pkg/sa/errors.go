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
package sa

import (
	"fmt"

	"github.com/pnnl/go-hybridlane/pkg/wire"
)

// StaticAnalysisError reports a type-checking failure: a wire used both as a
// qubit and as a qumode, or irreconcilable basis requirements.  These errors
// are never recovered automatically.
type StaticAnalysisError struct {
	// Wire is the offending wire.
	Wire wire.Wire
	// Detail describes the conflict, naming both contexts.
	Detail string
}

func (e *StaticAnalysisError) Error() string {
	return fmt.Sprintf("static analysis failed on wire %q: %s", e.Wire, e.Detail)
}

func aliasingError(w wire.Wire, qubitCtx, qumodeCtx string) *StaticAnalysisError {
	return &StaticAnalysisError{
		Wire:   w,
		Detail: fmt.Sprintf("used as a qubit by %s but as a qumode by %s", qubitCtx, qumodeCtx),
	}
}

func basisConflictError(w wire.Wire, a, b ComputationalBasis) *StaticAnalysisError {
	return &StaticAnalysisError{
		Wire:   w,
		Detail: fmt.Sprintf("co-measured observables require both the %s and %s basis", a, b),
	}
}
