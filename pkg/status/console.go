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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// 🖥️ ConsoleReporter renders a live progress bar and a closing summary block.
type ConsoleReporter struct {
	out io.Writer

	mu    sync.Mutex
	label string
	bar   *progressbar.ProgressBar
}

// 🏭 NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) Start(ctx context.Context, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.label = label
	r.bar = nil
}

// Update renders one sample. The bar is built lazily because the total size
// travels with the first sample, not with Start.
func (r *ConsoleReporter) Update(ctx context.Context, update ProgressUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		r.bar = newTransferBar(r.out, update.TotalBytes, r.label)
	}
	_ = r.bar.Set64(update.BytesCopied)
}

func (r *ConsoleReporter) Finish(ctx context.Context, summary Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.bar != nil {
		if summary.Interrupted {
			_ = r.bar.Exit()
		} else {
			_ = r.bar.Finish()
		}
		fmt.Fprintln(r.out)
		r.bar = nil
	}

	header := color.New(color.Bold, color.FgCyan).Sprint("bytecp")
	fmt.Fprintf(r.out, "\n%s %s\n\n", header, color.New(color.Faint).Sprint("• transfer summary"))

	fmt.Fprintln(r.out, formatSummaryRow("Bytes copied", fmt.Sprintf("%s (%d bytes)", FormatBytes(summary.BytesCopied), summary.BytesCopied)))
	fmt.Fprintln(r.out, formatSummaryRow("Total time", FormatDuration(summary.Elapsed)))
	fmt.Fprintln(r.out, formatSummaryRow("Init phase", FormatDuration(summary.InitTime)))
	fmt.Fprintln(r.out, formatSummaryRow("Copy phase", FormatDuration(summary.CopyTime)))
	fmt.Fprintln(r.out, formatSummaryRow("Cleanup phase", FormatDuration(summary.CleanupTime)))
	fmt.Fprintln(r.out, formatSummaryRow("Avg throughput", FormatThroughput(summary.Throughput)))
	fmt.Fprintln(r.out, formatSummaryRow("Efficiency", FormatPercent(summary.Efficiency)))
	if summary.Interrupted {
		fmt.Fprintln(r.out, formatSummaryRow("Interrupted", color.YellowString("yes, destination holds a prefix of the source")))
	}
}

// 📊 newTransferBar builds the progress bar used for interactive copies.
func newTransferBar(out io.Writer, total int64, label string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("copying "+label),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(50),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}
