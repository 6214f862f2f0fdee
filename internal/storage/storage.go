// Package storage saves and loads a [note.Store] to and from notes files.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/weeknotes/internal/fs"
	"github.com/calvinalkan/weeknotes/internal/note"
)

// DefaultPerm is the mode for newly written notes files.
const DefaultPerm os.FileMode = 0o644

// Error variables for storage operations.
var (
	ErrOpen  = errors.New("failed to open file")
	ErrWrite = errors.New("writing to file failed")
	ErrRead  = errors.New("reading from file failed")
)

// SaveOptions controls how [Save] writes the file.
type SaveOptions struct {
	// Atomic writes through a temp file and rename, so a failed save keeps
	// the previous file. When false the file is truncated and written in place.
	Atomic bool

	// Perm is the file mode. Zero means [DefaultPerm].
	Perm os.FileMode
}

// Save writes every note in s to path.
//
// A path that cannot be opened, including one whose directory is missing,
// yields an error wrapping [ErrOpen]; a failure
// while writing yields [ErrWrite] and abandons the remaining notes. The
// file handle is always closed. s is never modified.
func Save(fsys fs.FS, s *note.Store, path string, opts SaveOptions) error {
	perm := opts.Perm
	if perm == 0 {
		perm = DefaultPerm
	}

	if opts.Atomic {
		// The atomic writer cannot tell a missing directory from a failed
		// rename, so check the directory first.
		dir := filepath.Dir(path)

		exists, err := fsys.Exists(dir)
		if err != nil {
			return fmt.Errorf("%w '%s': %w", ErrOpen, path, err)
		}

		if !exists {
			return fmt.Errorf("%w '%s': %w", ErrOpen, path, &os.PathError{Op: "open", Path: dir, Err: os.ErrNotExist})
		}

		var buf bytes.Buffer

		// Writes to a bytes.Buffer cannot fail.
		_ = note.Encode(&buf, s)

		err = fsys.WriteFileAtomic(path, buf.Bytes(), perm)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}

		return nil
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("%w '%s': %w", ErrOpen, path, err)
	}

	err = note.Encode(f, s)
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

// LoadResult reports what [Load] did.
type LoadResult struct {
	Read  int // notes appended from the file
	Total int // notes in the store afterwards

	// Malformed is set when reading stopped early at a bad record.
	// The notes before it were kept.
	Malformed error
}

// Load appends the notes in path to s.
//
// A path that cannot be opened yields an error wrapping [ErrOpen] and leaves
// s unchanged. A malformed or incomplete record stops reading without an
// error; see [LoadResult.Malformed].
func Load(fsys fs.FS, s *note.Store, path string) (LoadResult, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return LoadResult{Total: s.Total()}, fmt.Errorf("%w '%s': %w", ErrOpen, path, err)
	}
	defer f.Close()

	read, err := note.Decode(f, s)
	result := LoadResult{Read: read, Total: s.Total()}

	if errors.Is(err, note.ErrMalformedRecord) {
		result.Malformed = err

		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return result, nil
}
