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

// Package lockfile guards destination paths against concurrent writers with
// advisory file locks. A lock is non-blocking: a destination already being
// written to is reported immediately rather than waited on.
package lockfile

import (
	"os"

	"github.com/gofrs/flock"
	"gitlab.com/tozd/go/errors"
)

// ErrHeld reports that another process holds the lock.
var ErrHeld = errors.New("lock already held")

// 🔒 Lock is an acquired advisory lock on a path.
type Lock struct {
	fl   *flock.Flock
	path string
}

// 🎯 Acquire takes a non-blocking advisory lock at path. It fails with
// ErrHeld when another holder exists.
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, errors.Errorf("locking %s: %w", path, err)
	}
	if !ok {
		return nil, errors.Errorf("locking %s: %w", path, ErrHeld)
	}
	return &Lock{fl: fl, path: path}, nil
}

// 🔓 Release drops the lock and removes the lock file. Removal is best
// effort: a leftover file does not block future acquisitions.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return errors.Errorf("unlocking %s: %w", l.path, err)
	}
	_ = os.Remove(l.path)
	return nil
}

// Path returns the location of the lock file.
func (l *Lock) Path() string {
	return l.path
}

// 🏭 Flocker adapts Acquire to the release-function shape transfer engines
// consume.
type Flocker struct{}

func (Flocker) Acquire(path string) (func() error, error) {
	lock, err := Acquire(path)
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}
