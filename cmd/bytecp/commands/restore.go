package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/cmd/bytecp/opts"
	"github.com/seqio/bytecp/pkg/backup"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [destination]",
		Short: "Undo a copy by restoring the backup",
		Long: `Restore puts a destination back the way it was before the last copy.
It copies the backup snapshot over the destination and removes the
snapshot, so a restore can only run once per copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "restore").Logger().WithContext(cmd.Context())

			path := ro.Config.DefaultDestination
			if len(args) > 0 {
				path = args[0]
			}

			if err := backup.Restore(ctx, ro.FS, path, ro.Config.BackupSuffix); err != nil {
				return errors.Errorf("restoring %s: %w", path, err)
			}

			ro.User.Successf("Restored %s from its backup", path)
			return nil
		},
	}

	return cmd
}
