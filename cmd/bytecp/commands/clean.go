package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/cmd/bytecp/opts"
	"github.com/seqio/bytecp/pkg/backup"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove backup files",
		Long: `Clean removes the backup files that earlier copies left behind.
It walks the given directory (default ".") recursively and deletes every
file carrying the configured backup suffix.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "clean").Logger().WithContext(cmd.Context())

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			removed, err := backup.Clean(ctx, ro.FS, dir, ro.Config.BackupSuffix)
			if err != nil {
				return errors.Errorf("cleaning backups: %w", err)
			}

			if len(removed) == 0 {
				ro.User.Infof("No %s files under %s", ro.Config.BackupSuffix, dir)
				return nil
			}

			for _, path := range removed {
				ro.User.LogRemoval(path)
			}
			ro.User.Successf("Removed %d backup file(s)", len(removed))
			return nil
		},
	}

	return cmd
}
