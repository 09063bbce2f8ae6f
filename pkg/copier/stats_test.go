// Copyright 2025 seqio LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package copier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransferStats_Math(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stats := &TransferStats{
		BytesCopied: 600,
		StartTime:   start,
		EndTime:     start.Add(400 * time.Millisecond),
		InitTime:    60 * time.Millisecond,
		CopyTime:    300 * time.Millisecond,
		CleanupTime: 40 * time.Millisecond,
	}

	assert.Equal(t, 400*time.Millisecond, stats.Elapsed())
	assert.InDelta(t, 2000.0, stats.AverageThroughput(), 0.001, "600 bytes over 300ms is 2000 bytes/sec")
	assert.InDelta(t, 0.75, stats.Efficiency(), 0.001, "300ms of copying inside 400ms total")
}

func TestTransferStats_ZeroGuards(t *testing.T) {
	now := time.Now()

	empty := &TransferStats{StartTime: now, EndTime: now.Add(time.Second)}
	assert.Zero(t, empty.AverageThroughput(), "no bytes means no throughput")

	instant := &TransferStats{BytesCopied: 10, StartTime: now, EndTime: now}
	assert.Zero(t, instant.Efficiency(), "a zero-length transfer has no copy share")
}

func TestTransferStats_SubMillisecondClamp(t *testing.T) {
	stats := &TransferStats{
		BytesCopied: 5,
		CopyTime:    100 * time.Microsecond,
	}
	assert.InDelta(t, 5000.0, stats.AverageThroughput(), 0.001, "durations under 1ms count as 1ms")
}

func TestTransferStats_Summary(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	stats := &TransferStats{
		Source:      "a.txt",
		Destination: "b.txt",
		SourceSize:  600,
		BytesCopied: 600,
		StartTime:   start,
		EndTime:     start.Add(400 * time.Millisecond),
		InitTime:    60 * time.Millisecond,
		CopyTime:    300 * time.Millisecond,
		CleanupTime: 40 * time.Millisecond,
		Interrupted: true,
	}

	sum := stats.Summary()
	assert.Equal(t, "a.txt", sum.Source)
	assert.Equal(t, "b.txt", sum.Destination)
	assert.Equal(t, int64(600), sum.BytesCopied)
	assert.Equal(t, int64(600), sum.SourceSize)
	assert.Equal(t, 400*time.Millisecond, sum.Elapsed)
	assert.Equal(t, 300*time.Millisecond, sum.CopyTime)
	assert.InDelta(t, 0.75, sum.Efficiency, 0.001)
	assert.True(t, sum.Interrupted)
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInit, "init"},
		{PhaseCopy, "copy"},
		{PhaseCleanup, "cleanup"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.phase.String())
	}
}
