package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// TestBuilder is the subset of [testing.T] used by [Strict].
//
// This keeps [Strict] usable from tests in other packages without
// depending on _test.go files.
type TestBuilder interface {
	Helper()
	Cleanup(func())
	Failed() bool
	Logf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// Strict wraps an [FS] for tests. Any error that [Faulty] did not inject
// fails the test, and the last few operations are logged when a test fails.
//
// Wrap a [Faulty] in it to prove a test only ever sees the faults it asked for.
type Strict struct {
	tb  TestBuilder
	fs  FS
	log *opRing
}

// NewStrict creates a new [Strict] wrapping fs, remembering the last
// capacity operations. A capacity of 0 disables the trace.
func NewStrict(tb TestBuilder, fs FS, capacity int) *Strict {
	tb.Helper()

	s := &Strict{tb: tb, fs: fs, log: newOpRing(capacity)}

	tb.Cleanup(func() {
		if !tb.Failed() {
			return
		}

		if trace := s.Trace(); trace != "" {
			tb.Logf("fs trace:\n%s", trace)
		}
	})

	return s
}

// Trace returns the remembered operations, oldest first, one per line.
func (s *Strict) Trace() string {
	return s.log.String()
}

func (s *Strict) Open(path string) (File, error) {
	s.tb.Helper()

	f, err := s.fs.Open(path)
	if err := s.record("open", path, "", err); err != nil {
		return nil, err
	}

	return &strictFile{owner: s, f: f, path: path}, nil
}

func (s *Strict) Create(path string) (File, error) {
	s.tb.Helper()

	f, err := s.fs.Create(path)
	if err := s.record("create", path, "", err); err != nil {
		return nil, err
	}

	return &strictFile{owner: s, f: f, path: path}, nil
}

func (s *Strict) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	s.tb.Helper()

	err := s.fs.WriteFileAtomic(path, data, perm)

	return s.record("writeatomic", path, fmt.Sprintf("n=%d perm=%#o", len(data), perm), err)
}

func (s *Strict) Exists(path string) (bool, error) {
	s.tb.Helper()

	exists, err := s.fs.Exists(path)

	return exists, s.record("exists", path, fmt.Sprintf("exists=%t", exists), err)
}

var _ FS = (*Strict)(nil)

// record remembers the operation and fails the test on a real error.
// EOF is how reads end, not a failure.
func (s *Strict) record(op, path, detail string, err error) error {
	s.tb.Helper()

	s.log.push(opEvent{op: op, path: path, detail: detail, err: err})

	if err == nil || IsInjected(err) || errors.Is(err, io.EOF) {
		return err
	}

	msg := fmt.Sprintf("strictfs: underlying filesystem error: %v", err)
	if trace := s.Trace(); trace != "" {
		msg += "\n" + trace
	}

	s.tb.Fatalf("%s", msg)

	return err
}

// strictFile records reads, writes and the close of one file.
type strictFile struct {
	owner *Strict
	f     File
	path  string
}

var _ File = (*strictFile)(nil)

func (sf *strictFile) Read(p []byte) (int, error) {
	sf.owner.tb.Helper()

	n, err := sf.f.Read(p)

	return n, sf.owner.record("file.read", sf.path, fmt.Sprintf("n=%d", n), err)
}

func (sf *strictFile) Write(p []byte) (int, error) {
	sf.owner.tb.Helper()

	n, err := sf.f.Write(p)

	return n, sf.owner.record("file.write", sf.path, fmt.Sprintf("n=%d", n), err)
}

func (sf *strictFile) Close() error {
	sf.owner.tb.Helper()

	return sf.owner.record("file.close", sf.path, "", sf.f.Close())
}

// opEvent is one remembered operation. seq is assigned by [opRing.push].
type opEvent struct {
	seq    int
	op     string
	path   string
	detail string
	err    error
}

// String renders e as `#seq op path="..." [detail] ok|err=... injected=...`.
func (e opEvent) String() string {
	parts := []string{fmt.Sprintf("#%d %s path=%q", e.seq, e.op, e.path)}

	if e.detail != "" {
		parts = append(parts, e.detail)
	}

	if e.err == nil {
		parts = append(parts, "ok")
	} else {
		parts = append(parts, fmt.Sprintf("err=%v injected=%t", e.err, IsInjected(e.err)))
	}

	return strings.Join(parts, " ")
}

// opRing keeps the newest events in a fixed-size ring.
type opRing struct {
	mu     sync.Mutex
	events []opEvent // len == capacity once full
	start  int       // index of the oldest event when full
	seq    int
}

func newOpRing(capacity int) *opRing {
	return &opRing{events: make([]opEvent, 0, capacity)}
}

func (r *opRing) push(e opEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cap(r.events) == 0 {
		return
	}

	r.seq++
	e.seq = r.seq

	if len(r.events) < cap(r.events) {
		r.events = append(r.events, e)

		return
	}

	r.events[r.start] = e
	r.start = (r.start + 1) % len(r.events)
}

func (r *opRing) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, 0, len(r.events))
	for i := range r.events {
		lines = append(lines, r.events[(r.start+i)%len(r.events)].String())
	}

	return strings.Join(lines, "\n")
}
