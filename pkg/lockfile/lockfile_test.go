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

package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/pkg/lockfile"
)

func TestAcquire_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.txt.lock")

	lock, err := lockfile.Acquire(path)
	require.NoError(t, err)
	assert.Equal(t, path, lock.Path())

	_, err = lockfile.Acquire(path)
	require.Error(t, err, "a held lock must refuse a second holder")
	assert.True(t, errors.Is(err, lockfile.ErrHeld))

	require.NoError(t, lock.Release())
}

func TestRelease_AllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.txt.lock")

	lock, err := lockfile.Acquire(path)
	require.NoError(t, err)
	require.NoError(t, lock.Release())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "release should remove the lock file")

	again, err := lockfile.Acquire(path)
	require.NoError(t, err, "a released lock must be acquirable again")
	require.NoError(t, again.Release())
}

func TestFlocker_ReleaseFunc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dest.txt.lock")

	release, err := lockfile.Flocker{}.Acquire(path)
	require.NoError(t, err)

	_, err = lockfile.Flocker{}.Acquire(path)
	assert.True(t, errors.Is(err, lockfile.ErrHeld))

	require.NoError(t, release())

	release, err = lockfile.Flocker{}.Acquire(path)
	require.NoError(t, err)
	require.NoError(t, release())
}
