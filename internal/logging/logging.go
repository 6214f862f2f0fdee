// Package logging sets up the zerolog debug log.
//
// The console belongs to the command loop, so log output only ever goes to a
// file. Without a log file every event is dropped.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	filePerms = 0o644
	dirPerms  = 0o755
)

// Open returns a logger writing JSON lines to path at level, plus a closer
// for the underlying file. An empty path yields a disabled logger and a
// no-op closer.
func Open(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	err := os.MkdirAll(filepath.Dir(path), dirPerms)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerms)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}

	return New(f, level), f, nil
}

// New returns a logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "weeknotes").
		Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
