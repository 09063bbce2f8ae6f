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
	"time"

	"github.com/seqio/bytecp/pkg/status"
)

// 🧭 Phase identifies a stage of a transfer.
type Phase int

const (
	PhaseInit    Phase = iota // validation and handle acquisition
	PhaseCopy                 // the byte stream itself
	PhaseCleanup              // handle release and partial-file removal
)

// String returns a string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseCopy:
		return "copy"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// 📊 TransferStats records what a transfer did and how long each phase took.
// Copy returns it populated on success and failure alike.
type TransferStats struct {
	Source      string
	Destination string
	SourceSize  int64 // source size observed when reading began
	BytesCopied int64
	StartTime   time.Time
	EndTime     time.Time
	InitTime    time.Duration
	CopyTime    time.Duration
	CleanupTime time.Duration
	Interrupted bool // a cancellation was observed between bytes
}

// ⏱️ Elapsed returns the wall-clock duration of the whole transfer.
func (s *TransferStats) Elapsed() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// 🚀 AverageThroughput returns bytes per second over the copy phase: bytes
// divided by elapsed milliseconds, times 1000. Sub-millisecond copies are
// clamped to one millisecond.
func (s *TransferStats) AverageThroughput() float64 {
	if s.BytesCopied == 0 {
		return 0
	}
	ms := float64(s.CopyTime.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return float64(s.BytesCopied) / ms * 1000
}

// 📐 Efficiency returns the copy phase's share of the total runtime, 0..1.
func (s *TransferStats) Efficiency() float64 {
	total := s.Elapsed()
	if total <= 0 {
		return 0
	}
	return float64(s.CopyTime) / float64(total)
}

// 📋 Summary converts the stats into the report consumed by status reporters.
func (s *TransferStats) Summary() status.Summary {
	return status.Summary{
		Source:      s.Source,
		Destination: s.Destination,
		BytesCopied: s.BytesCopied,
		SourceSize:  s.SourceSize,
		Elapsed:     s.Elapsed(),
		InitTime:    s.InitTime,
		CopyTime:    s.CopyTime,
		CleanupTime: s.CleanupTime,
		Throughput:  s.AverageThroughput(),
		Efficiency:  s.Efficiency(),
		Interrupted: s.Interrupted,
	}
}
