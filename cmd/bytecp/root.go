package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/cmd/bytecp/opts"
	"github.com/seqio/bytecp/pkg/config"
	"github.com/seqio/bytecp/pkg/log"
)

var (
	// Flags
	configFile string
	debug      bool
	quiet      bool
	textMode   bool
	noVerify   bool
)

// initRootOpts fills in the shared dependencies. It runs after flag parsing
// so the values reflect what the user actually passed.
func initRootOpts(ctx context.Context, ro *opts.RootOpts) error {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if textMode {
		cfg.TextMode = true
	}

	ro.Config = cfg
	ro.FS = afero.NewOsFs()
	ro.User = log.NewUserLogger(ctx)
	ro.Quiet = quiet
	ro.NoVerify = noVerify
	if quiet {
		ro.User = log.Discard()
	}
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and status output")
	cmd.PersistentFlags().BoolVar(&textMode, "text", false, "copy rune by rune instead of byte by byte")
	cmd.PersistentFlags().BoolVar(&noVerify, "no-verify", false, "skip the size check after copying")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}
