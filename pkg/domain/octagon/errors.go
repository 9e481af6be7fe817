// Copyright Consensys Software Inc.
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
package octagon

import "fmt"

// ContractError signals that the octagon domain has been misused, such as by
// applying a constraint which is not octagonal or by accessing the matrix out
// of bounds.  Such errors are never recoverable and are raised by panicking.
// They are entirely distinct from an unsatisfiable state, which is
// represented by bottom.
type ContractError struct {
	msg string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return e.msg
}

func contractViolation(format string, args ...any) {
	panic(&ContractError{fmt.Sprintf(format, args...)})
}
