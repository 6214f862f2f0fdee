package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinalkan/weeknotes/internal/note"
)

// Every prompt retries in a loop until it gets valid input or the input
// closes, in which case errInputClosed is returned.

// promptDay asks for a weekday number 1-7.
func (r *REPL) promptDay() (note.Day, error) {
	for {
		line, err := r.in.Prompt(fmt.Sprintf("Day of the week (1-%d): ", note.DaysInWeek))
		if err != nil {
			return 0, err
		}

		day, err := note.ParseDay(line)
		if err != nil {
			r.io.Println("Invalid day entered. Please try again.")

			continue
		}

		return day, nil
	}
}

// promptIndex asks for a 1-based index, showing n as the upper bound.
// Values above n are accepted; lookups clamp them to the last note.
func (r *REPL) promptIndex(n int) (int, error) {
	for {
		line, err := r.in.Prompt(fmt.Sprintf("Index (1-%d): ", n))
		if err != nil {
			return 0, err
		}

		index, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || index < 1 {
			r.io.Println("Invalid index entered. Please try again.")

			continue
		}

		return index, nil
	}
}

// promptText asks for a note's text and validates it as storable.
func (r *REPL) promptText(label string) (string, error) {
	for {
		line, err := r.in.Prompt(fmt.Sprintf("%s (%d): ", label, note.MaxTextLength))
		if err != nil {
			return "", err
		}

		err = note.ValidateText(line)
		if err == nil {
			return line, nil
		}

		switch {
		case errors.Is(err, note.ErrTextEmpty):
			r.io.Println("Text cannot be empty. Please try again.")
		case errors.Is(err, note.ErrTextTooLong):
			r.io.Printf("Text is longer than %d characters. Please try again.\n", note.MaxTextLength)
		default:
			r.io.Printf("Invalid text: %v. Please try again.\n", err)
		}
	}
}

// promptFilename asks for a file name, falling back to the configured notes
// file when the answer is empty.
func (r *REPL) promptFilename() (string, error) {
	prompt := "File: "
	if r.defaultFile != "" {
		prompt = fmt.Sprintf("File [%s]: ", r.defaultFile)
	}

	for {
		line, err := r.in.Prompt(prompt)
		if err != nil {
			return "", err
		}

		name := strings.TrimSpace(line)
		if name == "" {
			name = r.defaultFile
		}

		if name != "" {
			return name, nil
		}
	}
}
