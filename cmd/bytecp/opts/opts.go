package opts

import (
	"github.com/spf13/afero"

	"github.com/seqio/bytecp/pkg/config"
	"github.com/seqio/bytecp/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config   *config.Config
	FS       afero.Fs
	User     *log.UserLogger
	Quiet    bool
	NoVerify bool
}
