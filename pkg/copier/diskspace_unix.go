//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package copier

import (
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/unix"
)

// availableSpace reports the bytes an unprivileged writer can use on the
// filesystem containing dir.
func availableSpace(dir string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, errors.Errorf("statfs %s: %w", dir, err)
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
