// Package fs provides the filesystem seam used to save and load notes files.
//
// The main types are:
//   - [FS]: interface for the filesystem operations weeknotes needs
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using [os] and atomic writes
//   - [Faulty]: testing implementation that injects deterministic failures
//   - [Strict]: testing wrapper that fails on errors nobody injected
//
// Example usage:
//
//	fsys := fs.NewReal()
//	f, err := fsys.Open("week.txt")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	scanner := bufio.NewScanner(f)
package fs

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// This interface is satisfied by [os.File] and can be used with all
// standard library functions that accept [io.Reader] or [io.Writer].
type File interface {
	io.ReadWriteCloser
}

// FS defines the filesystem operations used by the storage layer.
//
// All methods mirror their [os] package equivalents but can be intercepted
// for testing with fault injection.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// Create creates or truncates a file for writing. See [os.Create].
	Create(path string) (File, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so a failed write leaves the old file intact.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
