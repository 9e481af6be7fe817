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
package test

import (
	"testing"

	"github.com/consensys/go-octagon/pkg/test/util"
)

// ===================================================================
// Basic Tests
// ===================================================================

func Test_Basic_01(t *testing.T) {
	util.CheckScript(t, "octagon/basic_01")
}

func Test_Basic_02(t *testing.T) {
	util.CheckScript(t, "octagon/basic_02")
}

func Test_Basic_03(t *testing.T) {
	util.CheckScript(t, "octagon/basic_03")
}

func Test_Basic_04(t *testing.T) {
	util.CheckScript(t, "octagon/basic_04")
}

func Test_Basic_05(t *testing.T) {
	util.CheckScript(t, "octagon/basic_05")
}

// ===================================================================
// Closure Tests
// ===================================================================

func Test_Closure_01(t *testing.T) {
	util.CheckScript(t, "octagon/closure_01")
}

func Test_Closure_02(t *testing.T) {
	util.CheckScript(t, "octagon/closure_02")
}

func Test_Closure_03(t *testing.T) {
	util.CheckScript(t, "octagon/closure_03")
}

func Test_Closure_04(t *testing.T) {
	util.CheckScript(t, "octagon/closure_04")
}

// ===================================================================
// Lattice Tests
// ===================================================================

func Test_Lattice_01(t *testing.T) {
	util.CheckScript(t, "octagon/lattice_01")
}

func Test_Lattice_02(t *testing.T) {
	util.CheckScript(t, "octagon/lattice_02")
}

func Test_Lattice_03(t *testing.T) {
	util.CheckScript(t, "octagon/lattice_03")
}

func Test_Lattice_04(t *testing.T) {
	util.CheckScript(t, "octagon/lattice_04")
}

func Test_Loop_01(t *testing.T) {
	util.CheckScript(t, "octagon/loop_01")
}

// ===================================================================
// Mutator Tests
// ===================================================================

func Test_Mutators_01(t *testing.T) {
	util.CheckScript(t, "octagon/mutators_01")
}

func Test_Mutators_02(t *testing.T) {
	util.CheckScript(t, "octagon/mutators_02")
}

func Test_Mutators_03(t *testing.T) {
	util.CheckScript(t, "octagon/mutators_03")
}

func Test_Mutators_04(t *testing.T) {
	util.CheckScript(t, "octagon/mutators_04")
}

func Test_Disequality_01(t *testing.T) {
	util.CheckScript(t, "octagon/disequality_01")
}

// ===================================================================
// Failing Tests
// ===================================================================

func Test_Fail_01(t *testing.T) {
	util.CheckScript(t, "octagon/fail_01")
}

func Test_Fail_02(t *testing.T) {
	util.CheckScript(t, "octagon/fail_02")
}

// ===================================================================
// Invalid Tests
// ===================================================================

func Test_Invalid_01(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_01")
}

func Test_Invalid_02(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_02")
}

func Test_Invalid_03(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_03")
}

func Test_Invalid_04(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_04")
}

func Test_Invalid_05(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_05")
}

func Test_Invalid_06(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_06")
}

func Test_Invalid_07(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_07")
}

func Test_Invalid_08(t *testing.T) {
	util.CheckScript(t, "octagon/invalid_08")
}
