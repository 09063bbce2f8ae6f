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

// Package backup snapshots destination files before they are overwritten
// and manages the snapshots left behind. Backups are verbatim copies named
// <path><suffix> and are never removed automatically; Clean exists for
// callers who want them gone.
package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 📄 Entry describes one backup snapshot on disk.
type Entry struct {
	Path string // location of the snapshot
	Size int64  // snapshot size in bytes
}

// 💾 Create snapshots path to path+suffix and returns the snapshot's
// location. A missing path is not an error; it returns "".
func Create(ctx context.Context, fsys afero.Fs, path, suffix string) (string, error) {
	info, err := fsys.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", path)
	}

	target := path + suffix
	if err := copyFile(fsys, path, target); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Str("backup", target).
		Int64("bytes", info.Size()).
		Msg("backup created")
	return target, nil
}

// ♻️ Restore copies the snapshot of path back over it and removes the
// snapshot.
func Restore(ctx context.Context, fsys afero.Fs, path, suffix string) error {
	source := path + suffix
	if _, err := fsys.Stat(source); os.IsNotExist(err) {
		return errors.Errorf("no backup exists for %s", path)
	} else if err != nil {
		return errors.Errorf("checking backup %s: %w", source, err)
	}

	if err := copyFile(fsys, source, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}
	if err := fsys.Remove(source); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("backup restored")
	return nil
}

// 🔍 Discover lists every snapshot under dir, recursively.
func Discover(ctx context.Context, fsys afero.Fs, dir, suffix string) ([]Entry, error) {
	pattern := "**/*" + suffix

	var found []Entry
	err := afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			return rerr
		}
		ok, merr := doublestar.Match(pattern, filepath.ToSlash(rel))
		if merr != nil {
			return merr
		}
		if ok {
			found = append(found, Entry{Path: path, Size: info.Size()})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", dir, err)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Int("found", len(found)).Msg("backups discovered")
	return found, nil
}

// 🗑️ Clean removes every snapshot under dir and returns the removed paths.
func Clean(ctx context.Context, fsys afero.Fs, dir, suffix string) ([]string, error) {
	entries, err := Discover(ctx, fsys, dir, suffix)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := fsys.Remove(entry.Path); err != nil {
			return removed, errors.Errorf("removing %s: %w", entry.Path, err)
		}
		removed = append(removed, entry.Path)
	}
	return removed, nil
}

// copyFile duplicates src into dst byte for byte.
func copyFile(fsys afero.Fs, src, dst string) (err error) {
	source, err := fsys.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := fsys.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer func() {
		if cerr := destination.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing destination file: %w", cerr)
		}
	}()

	if _, err = io.Copy(destination, source); err != nil {
		return errors.Errorf("copying contents: %w", err)
	}
	return nil
}
