package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/calvinalkan/weeknotes/internal/fs"
	"github.com/calvinalkan/weeknotes/internal/note"
	"github.com/calvinalkan/weeknotes/internal/storage"
)

const commandPrompt = "Command (a/d/p/f/s/r/h/q): "

// REPL is the interactive command loop. All state lives in the store.
type REPL struct {
	store *note.Store
	fs    fs.FS
	io    *IO
	in    LineReader
	log   zerolog.Logger

	workDir     string // relative file names resolve against this
	defaultFile string // used when the filename prompt is left empty
	atomicSave  bool
	preload     bool // load defaultFile before the first prompt
}

// Run reads single-character commands until q or end of input.
// Unrecognized input is ignored. Returns an error only if reading input fails.
func (r *REPL) Run() error {
	r.io.Println("Welcome to the Notes manager.")
	r.io.Println()

	if r.preload {
		r.load(r.defaultFile)
	}

	for {
		line, err := r.in.Prompt(commandPrompt)
		if err != nil {
			return r.stop(err)
		}

		cmd := strings.TrimSpace(line)

		switch cmd {
		case "a":
			err = r.cmdAdd()
		case "d":
			err = r.cmdDelete()
		case "p":
			r.cmdPrint()
		case "f":
			err = r.cmdFind()
		case "s":
			err = r.cmdSave()
		case "r":
			err = r.cmdRead()
		case "h":
			r.printHelp()
		case "q":
			r.log.Debug().Int("notes", r.store.Total()).Msg("quit")

			return nil
		default:
			continue
		}

		if err != nil {
			return r.stop(err)
		}
	}
}

// stop ends the loop: closed input is a normal exit.
func (r *REPL) stop(err error) error {
	if errors.Is(err, errInputClosed) {
		r.log.Debug().Int("notes", r.store.Total()).Msg("input closed")

		return nil
	}

	return err
}

func (r *REPL) cmdAdd() error {
	day, err := r.promptDay()
	if err != nil {
		return err
	}

	text, err := r.promptText("Note text")
	if err != nil {
		return err
	}

	n, err := note.New(text, day)
	if err != nil {
		// promptDay and promptText already validated both.
		r.io.Println("Invalid note:", err)

		return nil
	}

	r.store.Append(n)
	r.log.Info().Str("op", "add").Stringer("day", day).Int("count", r.store.Count(day)).Msg("note added")

	return nil
}

func (r *REPL) cmdDelete() error {
	res, err := r.find()
	if err != nil || !res.done {
		return err
	}

	removed, err := r.store.Delete(res.first())
	if err != nil {
		r.io.Println("Nothing to delete!")

		return nil
	}

	r.io.Println("Deleting note:", removed.Text)
	r.log.Info().Str("op", "delete").Stringer("day", removed.Day).Msg("note deleted")

	return nil
}

func (r *REPL) cmdPrint() {
	for _, n := range r.store.All() {
		r.io.Println(n.String())
	}
}

func (r *REPL) cmdFind() error {
	res, err := r.find()
	if err != nil || !res.done {
		return err
	}

	if len(res.refs) == 0 {
		r.io.Println("No matching note.")

		return nil
	}

	for _, ref := range res.refs {
		if n, ok := r.store.Get(ref); ok {
			r.io.Println(n.String())
		}
	}

	return nil
}

func (r *REPL) cmdSave() error {
	name, err := r.promptFilename()
	if err != nil {
		return err
	}

	path := r.resolve(name)

	err = storage.Save(r.fs, r.store, path, storage.SaveOptions{Atomic: r.atomicSave})

	switch {
	case errors.Is(err, storage.ErrOpen):
		r.io.Printf("Failed to open file: '%s'.\n", name)
	case err != nil:
		r.io.Println("Writing to file failed.")
	default:
		r.io.Printf("Saved %d notes to '%s'.\n", r.store.Total(), name)
	}

	if err != nil {
		r.log.Error().Err(err).Str("op", "save").Str("path", path).Msg("save failed")

		return nil
	}

	r.log.Info().Str("op", "save").Str("path", path).Int("notes", r.store.Total()).Msg("notes saved")

	return nil
}

func (r *REPL) cmdRead() error {
	name, err := r.promptFilename()
	if err != nil {
		return err
	}

	r.load(name)

	return nil
}

// load reads name into the store and reports the counts.
func (r *REPL) load(name string) {
	path := r.resolve(name)

	result, err := storage.Load(r.fs, r.store, path)
	if err != nil {
		if errors.Is(err, storage.ErrOpen) {
			r.io.Printf("Failed to open file '%s'.\n", name)
		} else {
			r.io.Println("Reading from file failed.")
		}

		r.log.Error().Err(err).Str("op", "load").Str("path", path).Msg("load failed")

		if result.Read == 0 {
			return
		}
	}

	if result.Malformed != nil {
		r.log.Warn().Err(result.Malformed).Str("op", "load").Str("path", path).Msg("stopped at malformed record")
	}

	r.io.Printf("Read %d notes. Now %d notes total.\n", result.Read, result.Total)
	r.log.Info().Str("op", "load").Str("path", path).Int("read", result.Read).Int("total", result.Total).Msg("notes loaded")
}

func (r *REPL) resolve(name string) string {
	if filepath.IsAbs(name) || r.workDir == "" {
		return name
	}

	return filepath.Join(r.workDir, name)
}

func (r *REPL) printHelp() {
	r.io.Println("Help for calendar manager:")
	r.io.Println("a - Add a new note")
	r.io.Println("d - Delete a note")
	r.io.Println("p - Print existing notes")
	r.io.Println("f - Find a note")
	r.io.Println("s - Save the current notes to file")
	r.io.Println("r - Read notes from file")
	r.io.Println("h - Print this help text")
	r.io.Println("q - Exit the program")
}
