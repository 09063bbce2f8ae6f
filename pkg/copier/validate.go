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

package copier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/pkg/backup"
	"github.com/seqio/bytecp/pkg/status"
)

// preflight carries what validation learned into the copy phase.
type preflight struct {
	sourceSize int64
	backupPath string // "" when no backup was taken
}

// 🔍 Validate runs the pre-flight checks for req without opening the
// transfer handles. Copy runs the same pipeline before streaming.
func (c *Copier) Validate(ctx context.Context, req TransferRequest) error {
	_, err := c.preflight(ctx, req)
	return err
}

// preflight checks, in order: the endpoints are distinct, the source exists
// and is a regular file, the source is readable, a zero-length source
// (warning only), a pre-existing destination (snapshotted best effort), and
// free space at the destination.
func (c *Copier) preflight(ctx context.Context, req TransferRequest) (*preflight, error) {
	zlog := zerolog.Ctx(ctx)
	pf := &preflight{}

	// Refuse a self-copy outright. Opening the destination truncates it, so
	// the same path on both sides would destroy the source.
	if filepath.Clean(req.Source) == filepath.Clean(req.Destination) {
		c.user.LogValidation(false, fmt.Sprintf("Source and destination are both %s", filepath.Clean(req.Source)), nil)
		return nil, errors.Errorf("source and destination are the same file: %s", filepath.Clean(req.Source))
	}

	// Source must exist and be a regular file.
	info, err := c.fs.Stat(req.Source)
	if err != nil {
		if os.IsNotExist(err) {
			c.user.LogValidation(false, fmt.Sprintf("Source %s does not exist", req.Source), err)
			return nil, errors.Errorf("source %s: %w", req.Source, ErrSourceNotFound)
		}
		c.user.LogValidation(false, fmt.Sprintf("Cannot inspect source %s", req.Source), err)
		return nil, errors.Errorf("inspecting source %s: %w", req.Source, err)
	}
	if !info.Mode().IsRegular() {
		c.user.LogValidation(false, fmt.Sprintf("Source %s is not a regular file", req.Source), nil)
		return nil, errors.Errorf("source %s is not a regular file: %w", req.Source, ErrSourceNotFound)
	}
	pf.sourceSize = info.Size()
	c.user.LogValidation(true, fmt.Sprintf("Source %s present (%s)", req.Source, status.FormatBytes(pf.sourceSize)), nil)

	// Readability probe. The handle opens again for the transfer itself.
	probe, err := c.fs.Open(req.Source)
	if err != nil {
		c.user.LogValidation(false, fmt.Sprintf("Source %s is not readable", req.Source), err)
		return nil, errors.Errorf("source %s: %w", req.Source, ErrPermissionDenied)
	}
	if cerr := probe.Close(); cerr != nil {
		zlog.Warn().Err(cerr).Str("path", req.Source).Msg("closing probe handle failed")
	}
	c.user.LogValidation(true, "Source is readable", nil)

	// A zero-length source copies fine, it just produces an empty file.
	if pf.sourceSize == 0 {
		c.user.LogValidation(false, fmt.Sprintf("Source %s is empty", req.Source), nil)
	}

	// Snapshot a pre-existing destination. A backup failure is reported and
	// the transfer continues.
	dstInfo, err := c.fs.Stat(req.Destination)
	switch {
	case err == nil && dstInfo.IsDir():
		c.user.LogValidation(false, fmt.Sprintf("Destination %s is a directory", req.Destination), nil)
		return nil, errors.Errorf("destination %s is a directory", req.Destination)
	case err == nil:
		backupPath, berr := backup.Create(ctx, c.fs, req.Destination, c.backupSuffix)
		if berr != nil {
			c.user.LogBackup(false, req.Destination, berr)
		} else {
			pf.backupPath = backupPath
			c.user.LogBackup(true, backupPath, nil)
		}
	case os.IsNotExist(err):
		zlog.Debug().Str("path", req.Destination).Msg("destination is new, no backup needed")
	default:
		c.user.LogValidation(false, fmt.Sprintf("Cannot inspect destination %s", req.Destination), err)
		return nil, errors.Errorf("inspecting destination %s: %w", req.Destination, err)
	}

	// The destination volume must hold the whole source.
	dir := nearestExistingDir(c.fs, filepath.Dir(req.Destination))
	free, err := c.space(dir)
	if err != nil {
		c.user.LogValidation(false, fmt.Sprintf("Cannot check free space under %s", dir), err)
		return nil, errors.Errorf("checking free space under %s: %w", dir, err)
	}
	if free < uint64(pf.sourceSize) {
		c.user.LogValidation(false, fmt.Sprintf("Need %s, only %s free at %s",
			status.FormatBytes(pf.sourceSize), status.FormatBytes(int64(free)), dir), nil)
		return nil, errors.Errorf("need %d bytes, %d free: %w", pf.sourceSize, free, ErrInsufficientSpace)
	}
	c.user.LogValidation(true, fmt.Sprintf("Disk space ok (%s free, %s needed)",
		status.FormatBytes(int64(free)), status.FormatBytes(pf.sourceSize)), nil)

	return pf, nil
}

// nearestExistingDir walks up from dir until it finds a directory that
// exists, so the space probe works for destinations in new directories.
func nearestExistingDir(fsys afero.Fs, dir string) string {
	for {
		if _, err := fsys.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
