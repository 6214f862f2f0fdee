package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running weeknotes sessions in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory.
// HOME points into the temp directory so no real config is picked up.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"HOME": filepath.Join(dir, "home")},
	}
}

// Session feeds lines to the command loop, one per input line, and returns
// stdout, stderr, and exit code.
// Args should not include "weeknotes" or "--cwd" - those are added automatically.
func (r *CLI) Session(lines []string, args ...string) (string, string, int) {
	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"weeknotes", "--cwd", r.Dir}, args...)
	code := Run(strings.NewReader(input), &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustSession runs Session and fails the test on a non-zero exit code.
// Returns stdout.
func (r *CLI) MustSession(lines []string, args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Session(lines, args...)
	if code != 0 {
		r.t.Fatalf("session %v failed with exit code %d\nstderr: %s", lines, code, stderr)
	}

	return stdout
}

// Path returns name joined to the temp directory.
func (r *CLI) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// ReadFile reads a file from the temp directory.
func (r *CLI) ReadFile(name string) string {
	r.t.Helper()

	content, err := os.ReadFile(r.Path(name))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}

	return string(content)
}

// WriteFile writes a file into the temp directory.
func (r *CLI) WriteFile(name, content string) {
	r.t.Helper()

	err := os.WriteFile(r.Path(name), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
