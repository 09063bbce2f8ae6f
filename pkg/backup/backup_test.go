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

package backup_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqio/bytecp/pkg/backup"
)

// 🧪 testContext creates a context with a test logger attached.
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestCreate_SnapshotsExistingFile(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "dest.txt", []byte("old content"), 0644))

	target, err := backup.Create(ctx, fs, "dest.txt", ".backup")
	require.NoError(t, err)
	assert.Equal(t, "dest.txt.backup", target)

	data, err := afero.ReadFile(fs, "dest.txt.backup")
	require.NoError(t, err)
	assert.Equal(t, "old content", string(data), "snapshot should preserve the original bytes")
}

func TestCreate_MissingFileIsNotAnError(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()

	target, err := backup.Create(ctx, fs, "nonexistent.txt", ".backup")
	require.NoError(t, err)
	assert.Empty(t, target, "no snapshot should be reported for a missing file")
}

func TestCreate_DirectoryIsRejected(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("somedir", 0755))

	_, err := backup.Create(ctx, fs, "somedir", ".backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestCreate_OverwritesStaleSnapshot(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "dest.txt", []byte("current"), 0644))
	require.NoError(t, afero.WriteFile(fs, "dest.txt.backup", []byte("stale"), 0644))

	_, err := backup.Create(ctx, fs, "dest.txt", ".backup")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "dest.txt.backup")
	require.NoError(t, err)
	assert.Equal(t, "current", string(data))
}

func TestRestore_RoundTrip(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "dest.txt", []byte("original"), 0644))

	_, err := backup.Create(ctx, fs, "dest.txt", ".backup")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "dest.txt", []byte("clobbered"), 0644))
	require.NoError(t, backup.Restore(ctx, fs, "dest.txt", ".backup"))

	data, err := afero.ReadFile(fs, "dest.txt")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	exists, err := afero.Exists(fs, "dest.txt.backup")
	require.NoError(t, err)
	assert.False(t, exists, "restore should consume the snapshot")
}

func TestRestore_MissingSnapshot(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()

	err := backup.Restore(ctx, fs, "dest.txt", ".backup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no backup exists")
}

func TestDiscover_FindsNestedSnapshots(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "work/a.txt", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(fs, "work/a.txt.backup", []byte("aa"), 0644))
	require.NoError(t, afero.WriteFile(fs, "work/deep/b.txt.backup", []byte("bbb"), 0644))
	require.NoError(t, afero.WriteFile(fs, "elsewhere/c.txt.backup", []byte("c"), 0644))

	entries, err := backup.Discover(ctx, fs, "work", ".backup")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	paths := []string{entries[0].Path, entries[1].Path}
	assert.Contains(t, paths, "work/a.txt.backup")
	assert.Contains(t, paths, "work/deep/b.txt.backup")
	for _, entry := range entries {
		assert.Positive(t, entry.Size)
	}
}

func TestClean_RemovesOnlySnapshots(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "work/a.txt", []byte("keep me"), 0644))
	require.NoError(t, afero.WriteFile(fs, "work/a.txt.backup", []byte("purge me"), 0644))
	require.NoError(t, afero.WriteFile(fs, "work/deep/b.txt.backup", []byte("purge me too"), 0644))

	removed, err := backup.Clean(ctx, fs, "work", ".backup")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	exists, err := afero.Exists(fs, "work/a.txt")
	require.NoError(t, err)
	assert.True(t, exists, "regular files must survive a clean")

	exists, err = afero.Exists(fs, "work/a.txt.backup")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClean_EmptyDirectory(t *testing.T) {
	ctx := testContext(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("empty", 0755))

	removed, err := backup.Clean(ctx, fs, "empty", ".backup")
	require.NoError(t, err)
	assert.Empty(t, removed)
}
