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

package main

import (
	"fmt"
	"runtime"
	rundebug "runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// 🔖 buildDetails is what the version command reports about this binary.
// There is no hand-maintained version constant; everything comes from the
// metadata the toolchain embeds at build time.
type buildDetails struct {
	Version  string
	Revision string
	BuiltAt  string
	Dirty    bool
}

// collectBuildDetails reads the embedded build metadata. Binaries built
// outside a module context (go run on a file, test binaries) report "dev".
func collectBuildDetails() buildDetails {
	d := buildDetails{Version: "dev"}
	bi, ok := rundebug.ReadBuildInfo()
	if !ok {
		return d
	}
	if bi.Main.Version != "" {
		d.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			d.Revision = s.Value
		case "vcs.time":
			d.BuiltAt = s.Value
		case "vcs.modified":
			d.Dirty = s.Value == "true"
		}
	}
	return d
}

// renderVersion formats the details as the same label rows the transfer
// summary uses.
func renderVersion(d buildDetails) string {
	revision := d.Revision
	if revision == "" {
		revision = "unknown"
	}
	if d.Dirty {
		revision += " (modified)"
	}
	built := d.BuiltAt
	if built == "" {
		built = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "bytecp %s\n", d.Version)
	fmt.Fprintf(&b, "  %-10s %s\n", "revision:", revision)
	fmt.Fprintf(&b, "  %-10s %s\n", "built:", built)
	fmt.Fprintf(&b, "  %-10s %s\n", "go:", runtime.Version())
	fmt.Fprintf(&b, "  %-10s %s/%s\n", "platform:", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), renderVersion(collectBuildDetails()))
		},
	}
}
