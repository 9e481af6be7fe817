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
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records a snapshot of elapsed time and memory allocation, such
// that the cost of some piece of work can subsequently be reported.
type PerfStats struct {
	// Time when snapshot was taken
	startTime time.Time
	// Total bytes allocated at snapshot
	startMem uint64
	// Number of completed GC cycles at snapshot
	startGc uint32
}

// NewPerfStats takes a snapshot of the current time and memory allocation.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return &PerfStats{time.Now(), m.TotalAlloc, m.NumGC}
}

// Fields returns the difference between now and the snapshot, as logging
// fields.
func (p *PerfStats) Fields() log.Fields {
	var m runtime.MemStats
	//
	runtime.ReadMemStats(&m)
	//
	return log.Fields{
		"elapsed": time.Since(p.startTime).Round(time.Microsecond).String(),
		"allocMb": (m.TotalAlloc - p.startMem) / 1024 / 1024,
		"gcs":     m.NumGC - p.startGc,
	}
}

// Log the difference between now and the snapshot at debug level.
func (p *PerfStats) Log(prefix string) {
	log.WithFields(p.Fields()).Debugf("%s completed", prefix)
}
