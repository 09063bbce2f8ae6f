package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/cmd/bytecp/opts"
	"github.com/seqio/bytecp/pkg/copier"
)

// NewVerifyCmd creates a new verify command
func NewVerifyCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [source] [destination]",
		Short: "Compare the sizes of two files",
		Long: `Verify checks that the destination is exactly as large as the source.
A mismatch means a transfer was interrupted or the destination was
modified afterwards.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "verify").Logger().WithContext(cmd.Context())

			req := resolveRequest(ro.Config, args)

			c, err := copier.New(copier.Options{FS: ro.FS, User: ro.User})
			if err != nil {
				return errors.Errorf("building copier: %w", err)
			}

			res, err := c.Verify(ctx, req)
			if err != nil {
				return errors.Errorf("verifying sizes: %w", err)
			}
			if !res.Match {
				return errors.Errorf("size mismatch: %s is %d bytes, %s is %d bytes",
					req.Source, res.SourceSize, req.Destination, res.DestinationSize)
			}

			ro.User.LogValidation(true, fmt.Sprintf("Sizes match (%d bytes)", res.SourceSize), nil)
			return nil
		},
	}

	return cmd
}
