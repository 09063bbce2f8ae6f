//go:build windows

package copier

import (
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/windows"
)

// availableSpace reports the bytes the calling user can write on the volume
// containing dir.
func availableSpace(dir string) (uint64, error) {
	path, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, errors.Errorf("encoding %s: %w", dir, err)
	}
	var freeToCaller, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(path, &freeToCaller, &total, &totalFree); err != nil {
		return 0, errors.Errorf("querying free space for %s: %w", dir, err)
	}
	return freeToCaller, nil
}
