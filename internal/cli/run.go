// Package cli implements the weeknotes command loop and its process entry point.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/weeknotes/internal/config"
	"github.com/calvinalkan/weeknotes/internal/fs"
	"github.com/calvinalkan/weeknotes/internal/logging"
	"github.com/calvinalkan/weeknotes/internal/note"
)

type globalFlags struct {
	workDir    string
	configPath string
	notesFile  string
	logFile    string
	logLevel   string
	help       bool
}

func newFlagSet(flags *globalFlags) *flag.FlagSet {
	fset := flag.NewFlagSet("weeknotes", flag.ContinueOnError)
	fset.SetOutput(&strings.Builder{}) // discard pflag output
	fset.StringVarP(&flags.workDir, "cwd", "C", "", "Run as if started in `dir`")
	fset.StringVarP(&flags.configPath, "config", "c", "", "Use specified config `file`")
	fset.StringVarP(&flags.notesFile, "file", "f", "", "Notes `file` to load at startup and offer at save/read prompts")
	fset.StringVar(&flags.logFile, "log-file", "", "Write a debug log to `file`")
	fset.StringVar(&flags.logLevel, "log-level", "", "Log `level` (debug, info, warn, error)")
	fset.BoolVarP(&flags.help, "help", "h", false, "Show help")

	return fset
}

// Run is the main entry point. Returns exit code.
//
// When stdin is a terminal input goes through a line editor with history;
// otherwise lines are read as-is, which is what tests and pipes use.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	var flags globalFlags

	fset := newFlagSet(&flags)

	err := fset.Parse(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, fset)

		return 1
	}

	if flags.help {
		printUsage(out, fset)

		return 0
	}

	if fset.NArg() > 0 {
		fprintln(errOut, "error: unexpected argument:", fset.Arg(0))
		printUsage(errOut, fset)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDir:    workDir,
		ConfigPath: flags.configPath,
		Overrides: config.Config{
			NotesFile: flags.notesFile,
			LogFile:   flags.logFile,
			LogLevel:  flags.logLevel,
		},
		Env: env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	log, logCloser, err := logging.Open(cfg.LogFile, cfg.Level())
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}
	defer logCloser.Close()

	log.Debug().
		Str("work_dir", workDir).
		Str("global_config", cfg.Sources.Global).
		Str("project_config", cfg.Sources.Project).
		Msg("starting")

	o := NewIO(out, errOut)

	var in LineReader
	if isTerminal(stdin) {
		historyPath := ""
		if cfg.UseHistory() {
			historyPath = historyFile(env)
		}

		in = newLinerReader(historyPath)
	} else {
		in = newLineReader(stdin, o)
	}
	defer in.Close()

	repl := &REPL{
		store:      note.NewStore(),
		fs:         fs.NewReal(),
		io:         o,
		in:         in,
		log:        log,
		workDir:    workDir,
		atomicSave: cfg.UseAtomicSave(),
	}

	if cfg.NotesFile != "" {
		repl.defaultFile = displayPath(workDir, cfg.NotesFile)

		exists, existsErr := repl.fs.Exists(cfg.NotesFile)
		if existsErr != nil {
			o.Warn("cannot check notes file %s: %v", cfg.NotesFile, existsErr)
		} else {
			repl.preload = exists
		}
	}

	err = repl.Run()
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	return 0
}

// displayPath shows path relative to workDir when it lives below it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, fset *flag.FlagSet) {
	fprintln(w, `weeknotes - notes for each day of the week

Usage: weeknotes [flags]

Starts an interactive command loop. Type h at the prompt for commands.

Flags:`)

	var buf strings.Builder
	fset.SetOutput(&buf)
	fset.PrintDefaults()
	fset.SetOutput(&strings.Builder{})

	_, _ = io.WriteString(w, buf.String())
}
