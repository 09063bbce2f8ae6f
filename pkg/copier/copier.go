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
	"bufio"
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/seqio/bytecp/pkg/lockfile"
	"github.com/seqio/bytecp/pkg/log"
	"github.com/seqio/bytecp/pkg/status"
)

// Tuning defaults. Callers override them through Options.
const (
	DefaultProgressInterval = 100       // bytes copied between throughput samples
	DefaultBackupSuffix     = ".backup" // appended to a pre-existing destination
)

// 🎚️ Mode selects how the stream is traversed.
type Mode int

const (
	// ModeByte treats the source as an opaque byte sequence. The default.
	ModeByte Mode = iota
	// ModeText copies UTF-8 text rune by rune. Malformed sequences are
	// re-encoded as the Unicode replacement rune; BytesCopied still counts
	// consumed source bytes.
	ModeText
)

// 📦 TransferRequest names the endpoints of one copy invocation. It is
// immutable for the duration of the transfer.
type TransferRequest struct {
	Source      string
	Destination string
}

// 🔒 Locker serializes writers of a destination path.
type Locker interface {
	// Acquire takes the lock at path, returning the release function. An
	// error wrapping lockfile.ErrHeld means another transfer holds the lock;
	// any other error is an acquisition fault, not a conflict.
	Acquire(path string) (release func() error, err error)
}

// 💽 SpaceChecker reports the free bytes on the volume containing dir.
type SpaceChecker func(dir string) (uint64, error)

// 🎛️ Options configures a Copier.
type Options struct {
	FS               afero.Fs                    // filesystem all paths resolve against (required)
	User             *log.UserLogger             // user-facing diagnostics; nil discards them
	Locker           Locker                      // destination lock; nil disables locking
	Space            SpaceChecker                // free-space probe; nil uses the platform call
	OnProgress       func(status.ProgressUpdate) // synchronous progress callback; nil disables sampling
	ProgressInterval int64                       // bytes between samples; 0 uses DefaultProgressInterval
	BackupSuffix     string                      // "" uses DefaultBackupSuffix
	Mode             Mode                        // ModeByte unless set
}

// 🚚 Copier streams one file into another a byte at a time, with pre-flight
// validation, progress sampling and guaranteed handle release.
type Copier struct {
	fs           afero.Fs
	user         *log.UserLogger
	locker       Locker
	space        SpaceChecker
	onProgress   func(status.ProgressUpdate)
	interval     int64
	backupSuffix string
	mode         Mode
}

// 🏭 New builds a Copier.
func New(opts Options) (*Copier, error) {
	if opts.FS == nil {
		return nil, errors.New("options: FS is required")
	}
	c := &Copier{
		fs:           opts.FS,
		user:         opts.User,
		locker:       opts.Locker,
		space:        opts.Space,
		onProgress:   opts.OnProgress,
		interval:     opts.ProgressInterval,
		backupSuffix: opts.BackupSuffix,
		mode:         opts.Mode,
	}
	if c.user == nil {
		c.user = log.Discard()
	}
	if c.space == nil {
		c.space = availableSpace
	}
	if c.interval <= 0 {
		c.interval = DefaultProgressInterval
	}
	if c.backupSuffix == "" {
		c.backupSuffix = DefaultBackupSuffix
	}
	return c, nil
}

// 🚀 Copy validates req, streams the source into the destination and returns
// stats for every phase. The stats are populated on success and failure
// alike. A cancellation observed mid-copy sets stats.Interrupted and returns
// a nil error; the destination then holds a prefix of the source of exactly
// stats.BytesCopied bytes.
func (c *Copier) Copy(ctx context.Context, req TransferRequest) (*TransferStats, error) {
	zlog := zerolog.Ctx(ctx)
	stats := &TransferStats{
		Source:      req.Source,
		Destination: req.Destination,
		StartTime:   time.Now(),
	}

	pf, err := c.preflight(ctx, req)
	if err != nil {
		stats.InitTime = time.Since(stats.StartTime)
		stats.EndTime = time.Now()
		return stats, err
	}
	stats.SourceSize = pf.sourceSize

	src, dst, closers, err := c.openHandles(ctx, req)
	stats.InitTime = time.Since(stats.StartTime)
	if err != nil {
		stats.EndTime = time.Now()
		return stats, err
	}

	copyStart := time.Now()
	copied, interrupted, copyErr := c.transfer(ctx, src, dst, pf.sourceSize, copyStart)
	stats.BytesCopied = copied
	stats.Interrupted = interrupted
	stats.CopyTime = time.Since(copyStart)

	cleanupStart := time.Now()
	c.release(ctx, closers)
	if copyErr != nil {
		c.removeTruncated(ctx, req.Destination, pf.sourceSize)
	}
	stats.CleanupTime = time.Since(cleanupStart)
	stats.EndTime = time.Now()

	if copyErr != nil {
		zlog.Error().
			Err(copyErr).
			Str("source", req.Source).
			Str("destination", req.Destination).
			Int64("bytes_processed", copied).
			Msg("transfer aborted")
		return stats, copyErr
	}

	if interrupted {
		zlog.Warn().
			Int64("bytes_copied", copied).
			Int64("source_size", pf.sourceSize).
			Msg("transfer interrupted")
	} else {
		zlog.Debug().Int64("bytes_copied", copied).Msg("transfer finished")
	}
	return stats, nil
}

// namedCloser pairs a handle with the name used in release diagnostics.
type namedCloser struct {
	name  string
	close func() error
}

// openHandles opens the reader and writer and takes the destination lock.
// The returned closers release everything in writer, reader, lock order.
func (c *Copier) openHandles(ctx context.Context, req TransferRequest) (afero.File, afero.File, []namedCloser, error) {
	src, err := c.fs.Open(req.Source)
	if err != nil {
		return nil, nil, nil, errors.Errorf("opening source %s: %w", req.Source, err)
	}

	// The parent directory must exist before the lock file can be created
	// inside it.
	if err := c.fs.MkdirAll(filepath.Dir(req.Destination), 0755); err != nil {
		c.closeQuietly(ctx, namedCloser{"source", src.Close})
		return nil, nil, nil, errors.Errorf("creating destination directory: %w", err)
	}

	var unlock func() error
	if c.locker != nil {
		lockPath := req.Destination + ".lock"
		unlock, err = c.locker.Acquire(lockPath)
		if err != nil {
			c.user.LogLockOperation(false, lockPath, err)
			c.closeQuietly(ctx, namedCloser{"source", src.Close})
			if errors.Is(err, lockfile.ErrHeld) {
				return nil, nil, nil, errors.Errorf("locking %s: %w (%v)", lockPath, ErrDestinationLocked, err)
			}
			return nil, nil, nil, errors.Errorf("locking %s: %w", lockPath, err)
		}
		c.user.LogLockOperation(true, lockPath, nil)
	}

	dst, err := c.fs.Create(req.Destination)
	if err != nil {
		if unlock != nil {
			c.closeQuietly(ctx, namedCloser{"lock", unlock})
		}
		c.closeQuietly(ctx, namedCloser{"source", src.Close})
		return nil, nil, nil, errors.Errorf("opening destination %s: %w", req.Destination, err)
	}

	closers := []namedCloser{
		{"destination", dst.Close},
		{"source", src.Close},
	}
	if unlock != nil {
		closers = append(closers, namedCloser{"lock", unlock})
	}
	return src, dst, closers, nil
}

// transfer pumps the stream until end-of-source, an I/O fault, or a
// cancellation observed between bytes. It returns the bytes written,
// whether a cancellation was observed, and the fault if one occurred.
func (c *Copier) transfer(ctx context.Context, src io.Reader, dst io.Writer, total int64, started time.Time) (int64, bool, error) {
	// The limit pins bytesCopied to the size observed at validation even if
	// the source grows mid-copy.
	reader := bufio.NewReader(io.LimitReader(src, total))
	writer := bufio.NewWriter(dst)

	var copied int64
	var interrupted bool
	var err error
	if c.mode == ModeText {
		copied, interrupted, err = c.pumpRunes(ctx, reader, writer, total, started)
	} else {
		copied, interrupted, err = c.pumpBytes(ctx, reader, writer, total, started)
	}
	if err != nil {
		_ = writer.Flush() // best effort, the transfer already failed
		return copied, interrupted, err
	}

	if ferr := writer.Flush(); ferr != nil {
		return copied, interrupted, &CopyError{
			Phase:          PhaseCopy,
			BytesProcessed: copied,
			Err:            errors.Errorf("flushing destination: %w", ferr),
		}
	}
	return copied, interrupted, nil
}

// pumpBytes copies the stream one byte at a time, preserving exact order
// and value. No byte is duplicated, reordered, or dropped.
func (c *Copier) pumpBytes(ctx context.Context, reader *bufio.Reader, writer *bufio.Writer, total int64, started time.Time) (int64, bool, error) {
	var copied, samples int64
	for {
		select {
		case <-ctx.Done():
			return copied, true, nil
		default:
		}

		b, err := reader.ReadByte()
		if errors.Is(err, io.EOF) {
			return copied, false, nil
		}
		if err != nil {
			return copied, false, &CopyError{
				Phase:          PhaseCopy,
				BytesProcessed: copied,
				Err:            errors.Errorf("reading source: %w", err),
			}
		}

		if err := writer.WriteByte(b); err != nil {
			return copied, false, &CopyError{
				Phase:          PhaseCopy,
				BytesProcessed: copied,
				Err:            errors.Errorf("writing destination: %w", err),
			}
		}
		copied++

		if bucket := copied / c.interval; bucket > samples {
			samples = bucket
			c.sampleProgress(copied, total, time.Since(started))
		}
	}
}

// pumpRunes copies UTF-8 text rune by rune. Consumed source bytes drive the
// stats and the progress samples, so the totals stay anchored to the source
// size even when a malformed sequence is re-encoded as the replacement rune.
func (c *Copier) pumpRunes(ctx context.Context, reader *bufio.Reader, writer *bufio.Writer, total int64, started time.Time) (int64, bool, error) {
	var copied, samples int64
	for {
		select {
		case <-ctx.Done():
			return copied, true, nil
		default:
		}

		r, size, err := reader.ReadRune()
		if errors.Is(err, io.EOF) {
			return copied, false, nil
		}
		if err != nil {
			return copied, false, &CopyError{
				Phase:          PhaseCopy,
				BytesProcessed: copied,
				Err:            errors.Errorf("reading source: %w", err),
			}
		}

		if _, err := writer.WriteRune(r); err != nil {
			return copied, false, &CopyError{
				Phase:          PhaseCopy,
				BytesProcessed: copied,
				Err:            errors.Errorf("writing destination: %w", err),
			}
		}
		copied += int64(size)

		if bucket := copied / c.interval; bucket > samples {
			samples = bucket
			c.sampleProgress(copied, total, time.Since(started))
		}
	}
}

// sampleProgress emits one throughput sample to the progress callback.
func (c *Copier) sampleProgress(copied, total int64, elapsed time.Duration) {
	if c.onProgress == nil {
		return
	}
	ms := float64(elapsed.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	c.onProgress(status.ProgressUpdate{
		BytesCopied: copied,
		TotalBytes:  total,
		Elapsed:     elapsed,
		Throughput:  float64(copied) / ms * 1000,
	})
}

// release closes every handle independently. A failure to close one handle
// is logged, does not stop the others, and never masks the transfer result.
func (c *Copier) release(ctx context.Context, closers []namedCloser) {
	zlog := zerolog.Ctx(ctx)
	for _, nc := range closers {
		if err := nc.close(); err != nil {
			c.user.Warningf("Failed to release %s handle: %v", nc.name, err)
			continue
		}
		zlog.Debug().Str("handle", nc.name).Msg("released")
	}
}

// closeQuietly releases a handle outside the cleanup phase.
func (c *Copier) closeQuietly(ctx context.Context, nc namedCloser) {
	if err := nc.close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("handle", nc.name).Msg("release failed")
	}
}

// removeTruncated deletes the destination after a failed copy when it is
// shorter than the full source length. A destination that already matches
// the expected size is left alone.
func (c *Copier) removeTruncated(ctx context.Context, path string, expected int64) {
	zlog := zerolog.Ctx(ctx)
	info, err := c.fs.Stat(path)
	if err != nil {
		zlog.Debug().Err(err).Str("path", path).Msg("no partial destination to inspect")
		return
	}
	if info.Size() >= expected {
		return
	}
	if err := c.fs.Remove(path); err != nil {
		c.user.Warningf("Failed to remove partial destination %s: %v", path, err)
		return
	}
	c.user.LogRemoval(path)
}

// 🔍 VerifyResult compares the endpoint sizes after a transfer.
type VerifyResult struct {
	Match           bool
	SourceSize      int64
	DestinationSize int64
}

// Verify compares the current sizes of req's endpoints. A mismatch is a
// legitimate outcome after an interruption, so it is reported in the result
// rather than as an error.
func (c *Copier) Verify(ctx context.Context, req TransferRequest) (VerifyResult, error) {
	var res VerifyResult

	srcInfo, err := c.fs.Stat(req.Source)
	if err != nil {
		return res, errors.Errorf("inspecting source %s: %w", req.Source, err)
	}
	res.SourceSize = srcInfo.Size()

	dstInfo, err := c.fs.Stat(req.Destination)
	if err != nil {
		return res, errors.Errorf("inspecting destination %s: %w", req.Destination, err)
	}
	res.DestinationSize = dstInfo.Size()

	res.Match = res.SourceSize == res.DestinationSize
	zerolog.Ctx(ctx).Debug().
		Int64("source_size", res.SourceSize).
		Int64("destination_size", res.DestinationSize).
		Bool("match", res.Match).
		Msg("size verification")
	return res, nil
}
