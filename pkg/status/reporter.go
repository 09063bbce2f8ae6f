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

package status

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// 📊 ProgressUpdate is a point-in-time sample of a running transfer.
type ProgressUpdate struct {
	BytesCopied int64         // bytes written so far
	TotalBytes  int64         // source size when the transfer began
	Elapsed     time.Duration // time spent in the copy phase so far
	Throughput  float64       // bytes per second over the copy phase
}

// 📋 Summary describes a finished transfer, successful or not.
type Summary struct {
	Source      string
	Destination string
	BytesCopied int64
	SourceSize  int64
	Elapsed     time.Duration
	InitTime    time.Duration
	CopyTime    time.Duration
	CleanupTime time.Duration
	Throughput  float64 // average bytes per second over the copy phase
	Efficiency  float64 // copy-phase share of the total runtime, 0..1
	Interrupted bool
}

// 📈 Reporter receives the progress samples and final summary of a transfer.
type Reporter interface {
	// Start announces a transfer. The total size arrives with the samples.
	Start(ctx context.Context, label string)

	// Update renders one progress sample.
	Update(ctx context.Context, update ProgressUpdate)

	// Finish renders the end-of-run summary.
	Finish(ctx context.Context, summary Summary)
}

// 🪵 LogReporter routes progress to zerolog instead of the terminal.
type LogReporter struct{}

// 🏭 NewLogReporter creates a reporter for quiet and scripted runs.
func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

func (r *LogReporter) Start(ctx context.Context, label string) {
	zerolog.Ctx(ctx).Debug().Str("file", label).Msg("transfer started")
}

func (r *LogReporter) Update(ctx context.Context, update ProgressUpdate) {
	zerolog.Ctx(ctx).Debug().
		Int64("bytes_copied", update.BytesCopied).
		Int64("total_bytes", update.TotalBytes).
		Dur("elapsed", update.Elapsed).
		Float64("bytes_per_sec", update.Throughput).
		Msg("progress")
}

func (r *LogReporter) Finish(ctx context.Context, summary Summary) {
	zerolog.Ctx(ctx).Info().
		Str("source", summary.Source).
		Str("destination", summary.Destination).
		Int64("bytes_copied", summary.BytesCopied).
		Int64("source_size", summary.SourceSize).
		Dur("elapsed", summary.Elapsed).
		Dur("init", summary.InitTime).
		Dur("copy", summary.CopyTime).
		Dur("cleanup", summary.CleanupTime).
		Float64("bytes_per_sec", summary.Throughput).
		Float64("efficiency", summary.Efficiency).
		Bool("interrupted", summary.Interrupted).
		Msg("transfer complete")
}
