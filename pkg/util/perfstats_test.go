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
package util

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func Test_PerfStats_00(t *testing.T) {
	stats := NewPerfStats()
	fields := stats.Fields()
	//
	assert.Contains(t, fields, "elapsed")
	assert.Contains(t, fields, "allocMb")
	assert.Contains(t, fields, "gcs")
}

func Test_PerfStats_01(t *testing.T) {
	hook := test.NewGlobal()
	level := log.GetLevel()
	//
	defer log.SetLevel(level)
	defer hook.Reset()
	//
	log.SetLevel(log.DebugLevel)
	NewPerfStats().Log("example.lisp")
	//
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "example.lisp completed", entry.Message)
		assert.Equal(t, log.DebugLevel, entry.Level)
	}
}
