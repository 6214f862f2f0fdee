package fs

import (
	"os"
	"sync/atomic"
	"syscall"
)

// FaultConfig selects which operations a [Faulty] filesystem fails.
// The zero value injects nothing.
type FaultConfig struct {
	OpenFails   bool // Open returns EACCES
	CreateFails bool // Create returns EACCES
	AtomicFails bool // WriteFileAtomic returns EROFS without touching the file

	// WriteFailsAfter, when > 0, lets that many bytes through a file opened
	// by Create and fails every write after that with ENOSPC.
	WriteFailsAfter int
}

// Faulty wraps an [FS] and fails selected operations for testing.
//
// Unlike random fault injection, every fault is deterministic so tests can
// assert exactly which error path ran. All injected errors are real OS
// errors wrapped in [os.PathError] and marked with [InjectedError].
type Faulty struct {
	fs     FS
	config FaultConfig

	closes atomic.Int64
}

// NewFaulty creates a new Faulty filesystem wrapping the given [FS].
func NewFaulty(fs FS, config FaultConfig) *Faulty {
	return &Faulty{fs: fs, config: config}
}

// Closes returns how many files opened through f have been closed.
func (f *Faulty) Closes() int64 {
	return f.closes.Load()
}

func (f *Faulty) Open(path string) (File, error) {
	if f.config.OpenFails {
		return nil, pathError("open", path, syscall.EACCES)
	}

	file, err := f.fs.Open(path)
	if err != nil {
		return nil, err
	}

	return &faultyFile{f: file, owner: f, path: path}, nil
}

func (f *Faulty) Create(path string) (File, error) {
	if f.config.CreateFails {
		return nil, pathError("open", path, syscall.EACCES)
	}

	file, err := f.fs.Create(path)
	if err != nil {
		return nil, err
	}

	return &faultyFile{f: file, owner: f, path: path, budget: f.config.WriteFailsAfter}, nil
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if f.config.AtomicFails {
		return pathError("rename", path, syscall.EROFS)
	}

	return f.fs.WriteFileAtomic(path, data, perm)
}

func (f *Faulty) Exists(path string) (bool, error) {
	return f.fs.Exists(path)
}

func pathError(op, path string, errno syscall.Errno) error {
	return inject(&os.PathError{Op: op, Path: path, Err: errno})
}

// --- faultyFile wraps a File and fails writes past its byte budget ---

type faultyFile struct {
	f      File
	owner  *Faulty
	path   string
	budget int // 0 means unlimited
	wrote  int
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	return ff.f.Read(p)
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.budget <= 0 {
		return ff.f.Write(p)
	}

	remaining := ff.budget - ff.wrote
	if remaining <= 0 {
		return 0, pathError("write", ff.path, syscall.ENOSPC)
	}

	if len(p) <= remaining {
		n, err := ff.f.Write(p)
		ff.wrote += n

		return n, err
	}

	// Partial write, then fail.
	n, err := ff.f.Write(p[:remaining])
	ff.wrote += n

	if err != nil {
		return n, err
	}

	return n, pathError("write", ff.path, syscall.ENOSPC)
}

func (ff *faultyFile) Close() error {
	ff.owner.closes.Add(1)

	return ff.f.Close()
}

// Compile-time interface checks.
var _ FS = (*Faulty)(nil)
var _ File = (*faultyFile)(nil)
