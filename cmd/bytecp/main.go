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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seqio/bytecp/cmd/bytecp/commands"
	"github.com/seqio/bytecp/cmd/bytecp/opts"
	"github.com/seqio/bytecp/pkg/copier"
	"github.com/seqio/bytecp/pkg/log"
)

func main() {
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "bytecp [source] [destination]",
		Short: "Copy a file byte by byte with validation and progress",
		Long: `bytecp streams one file into another a single byte at a time, trading
speed for exact progress accounting. A destination that already exists is
backed up before it is overwritten, and interrupting a copy leaves a clean
partial file whose every byte matches the source prefix.

With no arguments the paths come from the config file.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			return initRootOpts(cmd.Context(), ro)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunCopy(cmd.Context(), ro, args)
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewCopyCmd(ro),
		commands.NewVerifyCmd(ro),
		commands.NewRestoreCmd(ro),
		commands.NewCleanCmd(ro),
		newVersionCmd(),
	)

	// A SIGINT between two bytes stops the stream exactly there.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		reportFailure(ctx, err)
	}
}

// reportFailure prints the failure and its remediation hint, then exits 1.
func reportFailure(ctx context.Context, err error) {
	user := log.NewUserLogger(ctx)
	user.LogValidation(false, "Command failed", err)
	user.LogHint(copier.Hint(err))
	os.Exit(1)
}
