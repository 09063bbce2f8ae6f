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

package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

func init() {
	// Enable debug output for development
	pterm.EnableDebugMessages()
}

// 📢 UserLogger prints user-facing feedback and mirrors it to zerolog.
// Informational lines go to the out stream, warnings and failures to errOut.
type UserLogger struct {
	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
}

// 🎯 NewUserLogger creates a user logger bound to the standard streams.
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerTo(ctx, os.Stdout, os.Stderr)
}

// 🎯 NewUserLoggerTo creates a user logger bound to explicit streams.
func NewUserLoggerTo(ctx context.Context, out, errOut io.Writer) *UserLogger {
	return &UserLogger{
		log:    *zerolog.Ctx(ctx),
		out:    out,
		errOut: errOut,
	}
}

// 🔇 Discard returns a logger that prints nothing. Library callers that have
// no terminal pass this instead of nil.
func Discard() *UserLogger {
	return &UserLogger{
		log:    zerolog.Nop(),
		out:    io.Discard,
		errOut: io.Discard,
	}
}

// 🔍 LogValidation logs one pre-flight check result.
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(u.out).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(u.errOut).Println(description)
		pterm.Error.WithWriter(u.errOut).Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(u.errOut).Println(description)
		u.log.Warn().Msg(description)
	}
}

// 💾 LogBackup logs the outcome of a destination backup.
func (u *UserLogger) LogBackup(created bool, path string, err error) {
	if created {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "💾"}).WithWriter(u.out).Printf("Backed up %s\n", path)
		u.log.Info().Str("backup", path).Msg("backup created")
		return
	}
	if err != nil {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "💾"}).WithWriter(u.errOut).Printf("Backup of %s failed, continuing\n", path)
		pterm.Warning.WithWriter(u.errOut).Println(err)
		u.log.Warn().Err(err).Str("path", path).Msg("backup failed")
	}
}

// 🔒 LogLockOperation logs file locking operations.
func (u *UserLogger) LogLockOperation(acquired bool, path string, err error) {
	if acquired {
		pterm.Debug.WithPrefix(pterm.Prefix{Text: "🔒"}).WithWriter(u.out).Printf("Acquired lock on %s\n", path)
		u.log.Debug().Msgf("Acquired lock on %s", path)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "🔓"}).WithWriter(u.errOut).Printf("Failed to acquire lock on %s\n", path)
		pterm.Error.WithWriter(u.errOut).Println(err)
		u.log.Error().Err(err).Msgf("Failed to acquire lock on %s", path)
	} else {
		pterm.Debug.WithPrefix(pterm.Prefix{Text: "🔓"}).WithWriter(u.out).Printf("Released lock on %s\n", path)
		u.log.Debug().Msgf("Released lock on %s", path)
	}
}

// 🗑️ LogRemoval logs the deletion of a file.
func (u *UserLogger) LogRemoval(path string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "🗑️"}).WithWriter(u.out).Printf("Removed %s\n", path)
	u.log.Info().Str("path", path).Msg("file removed")
}

// 💡 LogHint prints a remediation suggestion for a failure.
func (u *UserLogger) LogHint(hint string) {
	if hint == "" {
		return
	}
	pterm.Info.WithPrefix(pterm.Prefix{Text: "💡"}).WithWriter(u.errOut).Println(hint)
	u.log.Info().Str("hint", hint).Msg("remediation hint")
}

// 📝 Info logs an info message.
func (u *UserLogger) Info(msg string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️"}).WithWriter(u.out).Println(msg)
	u.log.Info().Msg(msg)
}

// 📝 Success logs a success message.
func (u *UserLogger) Success(msg string) {
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).WithWriter(u.out).Println(msg)
	u.log.Info().Msg(msg)
}

// 📝 Warning logs a warning message.
func (u *UserLogger) Warning(msg string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).WithWriter(u.errOut).Println(msg)
	u.log.Warn().Msg(msg)
}

// 📝 Error logs an error message.
func (u *UserLogger) Error(msg string) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).WithWriter(u.errOut).Println(msg)
	u.log.Error().Msg(msg)
}

// 📝 Infof logs a formatted info message.
func (u *UserLogger) Infof(format string, args ...interface{}) {
	u.Info(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message.
func (u *UserLogger) Successf(format string, args ...interface{}) {
	u.Success(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message.
func (u *UserLogger) Warningf(format string, args ...interface{}) {
	u.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message.
func (u *UserLogger) Errorf(format string, args ...interface{}) {
	u.Error(fmt.Sprintf(format, args...))
}
