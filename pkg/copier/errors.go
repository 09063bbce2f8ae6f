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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// Validation failures. Each aborts the transfer before a single destination
// byte is written.
var (
	// 🚫 ErrSourceNotFound means the source path is missing or not a regular file.
	ErrSourceNotFound = errors.New("source file not found")

	// 🔐 ErrPermissionDenied means the source exists but cannot be opened for reading.
	ErrPermissionDenied = errors.New("source file not readable")

	// 💽 ErrInsufficientSpace means the destination volume cannot hold the source.
	ErrInsufficientSpace = errors.New("not enough free space at destination")

	// 🔒 ErrDestinationLocked means another transfer holds the destination lock.
	ErrDestinationLocked = errors.New("destination locked by another transfer")
)

// 💥 CopyError reports an I/O fault that stopped a running transfer. It
// carries the count of source bytes already processed for diagnostics.
type CopyError struct {
	Phase          Phase // phase the fault occurred in
	BytesProcessed int64 // source bytes processed before the fault
	Err            error // underlying cause
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy failed during %s after %d bytes: %v", e.Phase, e.BytesProcessed, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// 💡 Hint returns a remediation suggestion for err, or "" when none applies.
func Hint(err error) string {
	var copyErr *CopyError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSourceNotFound):
		return "check that the source path exists and points to a regular file"
	case errors.Is(err, ErrPermissionDenied):
		return "check read permissions on the source file"
	case errors.Is(err, ErrInsufficientSpace):
		return "free up space at the destination or copy to another volume"
	case errors.Is(err, ErrDestinationLocked):
		return "wait for the other transfer to finish or remove the stale .lock file"
	case errors.As(err, &copyErr):
		return "check the source file's integrity and the destination volume's health"
	default:
		return ""
	}
}
