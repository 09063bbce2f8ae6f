package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/seqio/bytecp/cmd/bytecp/opts"
	"github.com/seqio/bytecp/pkg/config"
	"github.com/seqio/bytecp/pkg/copier"
	"github.com/seqio/bytecp/pkg/lockfile"
	"github.com/seqio/bytecp/pkg/status"
)

// sampleBuffer is how many progress samples may queue up before the
// reporter falls behind and older ones are dropped.
const sampleBuffer = 16

// NewCopyCmd creates a new copy command
func NewCopyCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy [source] [destination]",
		Short: "Copy a file byte by byte",
		Long: `Copy streams the source file into the destination one byte at a time.
It will:
1. Validate the source and the destination volume
2. Back up a destination that already exists
3. Stream the bytes with throughput reporting
4. Verify the destination size against the source`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunCopy(cmd.Context(), ro, args)
		},
	}

	return cmd
}

// RunCopy executes one transfer. Arguments override the configured default
// paths; a missing second argument keeps the configured destination.
func RunCopy(ctx context.Context, ro *opts.RootOpts, args []string) error {
	ctx = zerolog.Ctx(ctx).With().Str("command", "copy").Logger().WithContext(ctx)

	req := resolveRequest(ro.Config, args)

	mode := copier.ModeByte
	if ro.Config.TextMode {
		mode = copier.ModeText
	}

	var reporter status.Reporter = status.NewConsoleReporter(os.Stdout)
	if ro.Quiet {
		reporter = status.NewLogReporter()
	}

	updates := make(chan status.ProgressUpdate, sampleBuffer)

	c, err := copier.New(copier.Options{
		FS:     ro.FS,
		User:   ro.User,
		Locker: lockfile.Flocker{},
		OnProgress: func(u status.ProgressUpdate) {
			select {
			case updates <- u:
			default: // drop the sample rather than stall the stream
			}
		},
		ProgressInterval: ro.Config.ProgressInterval,
		BackupSuffix:     ro.Config.BackupSuffix,
		Mode:             mode,
	})
	if err != nil {
		return errors.Errorf("building copier: %w", err)
	}

	reporter.Start(ctx, filepath.Base(req.Source))

	var stats *copier.TransferStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(updates)
		s, cerr := c.Copy(gctx, req)
		stats = s
		return cerr
	})
	g.Go(func() error {
		for u := range updates {
			reporter.Update(ctx, u)
		}
		return nil
	})

	copyErr := g.Wait()
	if stats != nil {
		// The summary prints on failure too so the phase timings are
		// never lost.
		reporter.Finish(ctx, stats.Summary())
	}
	if copyErr != nil {
		return copyErr
	}

	if stats.Interrupted {
		return errors.Errorf("copy interrupted after %d of %d bytes", stats.BytesCopied, stats.SourceSize)
	}

	if !ro.NoVerify {
		res, verr := c.Verify(ctx, req)
		if verr != nil {
			return errors.Errorf("verifying sizes: %w", verr)
		}
		if res.Match {
			ro.User.LogValidation(true, fmt.Sprintf("Sizes match (%d bytes)", res.DestinationSize), nil)
		} else {
			ro.User.Warningf("Size mismatch: source %d bytes, destination %d bytes", res.SourceSize, res.DestinationSize)
		}
	}

	ro.User.Successf("Copied %d bytes from %s to %s", stats.BytesCopied, req.Source, req.Destination)
	return nil
}

// resolveRequest merges positional arguments over the configured defaults.
func resolveRequest(cfg *config.Config, args []string) copier.TransferRequest {
	req := copier.TransferRequest{
		Source:      cfg.DefaultSource,
		Destination: cfg.DefaultDestination,
	}
	if len(args) > 0 {
		req.Source = args[0]
	}
	if len(args) > 1 {
		req.Destination = args[1]
	}
	return req
}
