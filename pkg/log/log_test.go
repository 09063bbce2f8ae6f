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

package log_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/pkg/log"
)

func init() {
	// Keep assertions independent of terminal capabilities
	pterm.DisableStyling()
}

// 🧪 newTestLogger returns a logger writing to in-memory streams
func newTestLogger(t *testing.T) (*log.UserLogger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	var out, errOut bytes.Buffer
	return log.NewUserLoggerTo(ctx, &out, &errOut), &out, &errOut
}

// 🧪 TestLogValidation_Streams verifies checks land on the right stream
func TestLogValidation_Streams(t *testing.T) {
	tests := []struct {
		name        string
		valid       bool
		err         error
		message     string
		wantOut     bool
		description string
	}{
		{
			name:        "passing_check",
			valid:       true,
			err:         nil,
			message:     "source file present",
			wantOut:     true,
			description: "passing checks are informational",
		},
		{
			name:        "failing_check",
			valid:       false,
			err:         errors.New("permission denied"),
			message:     "source not readable",
			wantOut:     false,
			description: "failing checks with a cause go to the error stream",
		},
		{
			name:        "warning_check",
			valid:       false,
			err:         nil,
			message:     "source file is empty",
			wantOut:     false,
			description: "failing checks without a cause are warnings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, out, errOut := newTestLogger(t)

			user.LogValidation(tt.valid, tt.message, tt.err)

			if tt.wantOut {
				assert.Contains(t, out.String(), tt.message, tt.description)
				assert.Empty(t, errOut.String(), "nothing should reach the error stream")
			} else {
				assert.Contains(t, errOut.String(), tt.message, tt.description)
				assert.Empty(t, out.String(), "nothing should reach the info stream")
			}
		})
	}
}

// 🧪 TestLogBackup verifies backup outcomes are reported
func TestLogBackup(t *testing.T) {
	user, out, errOut := newTestLogger(t)

	user.LogBackup(true, "dest.txt.backup", nil)
	assert.Contains(t, out.String(), "dest.txt.backup")

	user.LogBackup(false, "dest.txt", errors.New("disk full"))
	assert.Contains(t, errOut.String(), "continuing", "backup failures must read as non-fatal")
	assert.Contains(t, errOut.String(), "disk full")
}

// 🧪 TestLogHint verifies hints reach the error stream only
func TestLogHint(t *testing.T) {
	user, out, errOut := newTestLogger(t)

	user.LogHint("check read permissions on the source file")
	assert.Contains(t, errOut.String(), "check read permissions")
	assert.Empty(t, out.String())

	errOut.Reset()
	user.LogHint("")
	assert.Empty(t, errOut.String(), "empty hints print nothing")
}

// 🧪 TestDiscard verifies the silent logger stays silent
func TestDiscard(t *testing.T) {
	user := log.Discard()
	user.LogValidation(false, "should vanish", errors.New("boom"))
	user.Warningf("also vanishes: %d", 42)
	user.LogRemoval("gone.txt")
}
