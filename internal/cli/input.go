package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// errInputClosed means stdin hit EOF or the user aborted with Ctrl-C.
// It ends the command loop.
var errInputClosed = errors.New("input closed")

// LineReader reads one line of user input after showing a prompt.
type LineReader interface {
	// Prompt shows prompt and returns the entered line without its newline.
	// Returns errInputClosed at end of input.
	Prompt(prompt string) (string, error)

	Close() error
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// --- line input (pipes, files, tests) ---

// lineReader reads whole lines of any length, so over-long input reaches
// validation instead of ending the loop.
type lineReader struct {
	r *bufio.Reader
	o *IO
}

func newLineReader(r io.Reader, o *IO) *lineReader {
	return &lineReader{r: bufio.NewReader(r), o: o}
}

func (l *lineReader) Prompt(prompt string) (string, error) {
	l.o.Print(prompt)

	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// Last line without a trailing newline.
			return strings.TrimSuffix(line, "\r"), nil
		}

		// Keep the transcript tidy when input ends mid-prompt.
		l.o.Println()

		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}

		return "", err
	}

	line = strings.TrimSuffix(line, "\n")

	return strings.TrimSuffix(line, "\r"), nil
}

func (l *lineReader) Close() error {
	return nil
}

// --- liner input (interactive terminals) ---

type linerReader struct {
	state       *liner.State
	historyPath string
}

// newLinerReader sets up readline-style input on the process terminal.
// historyPath may be empty to disable history.
func newLinerReader(historyPath string) *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(completePath)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
	}

	return &linerReader{state: state, historyPath: historyPath}
}

func (l *linerReader) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errInputClosed
		}

		return "", err
	}

	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}

	return line, nil
}

// Close saves history and restores the terminal.
func (l *linerReader) Close() error {
	if l.historyPath != "" {
		if f, err := os.Create(l.historyPath); err == nil {
			_, _ = l.state.WriteHistory(f)
			f.Close()
		}
	}

	return l.state.Close()
}

// completePath offers file name completions, used at the filename prompt.
func completePath(line string) []string {
	if len(line) <= 1 {
		// Single characters are commands, not paths.
		return nil
	}

	matches, err := filepath.Glob(line + "*")
	if err != nil {
		return nil
	}

	return matches
}

// historyFile returns the path to the history file.
func historyFile(env map[string]string) string {
	home := env["HOME"]
	if home == "" {
		return ""
	}

	return filepath.Join(home, ".weeknotes_history")
}
