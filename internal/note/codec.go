package note

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encode writes every note in s as two lines, the weekday number then the
// text. Days are written in ascending order, each in list order.
// Encode stops at the first write error.
func Encode(w io.Writer, s *Store) error {
	bw := bufio.NewWriter(w)

	var err error

	s.walkAll(func(_ Ref, n Note) bool {
		_, err = bw.WriteString(strconv.Itoa(int(n.Day)) + "\n" + n.Text + "\n")

		return err == nil
	})

	if err != nil {
		return err
	}

	return bw.Flush()
}

// Decode reads day/text line pairs from r and appends each to s.
//
// Reading stops at end of input, or at the first incomplete or malformed
// pair, in which case the notes read so far are kept and an error wrapping
// [ErrMalformedRecord] is returned. Blank lines before a day line are
// skipped. Returns the number of notes appended.
func Decode(r io.Reader, s *Store) (int, error) {
	sc := bufio.NewScanner(r)
	line := 0
	read := 0

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}

		line++

		return strings.TrimSuffix(sc.Text(), "\r"), true
	}

	for {
		dayLine, ok := next()
		for ok && strings.TrimSpace(dayLine) == "" {
			dayLine, ok = next()
		}

		if !ok {
			break
		}

		day, err := ParseDay(dayLine)
		if err != nil {
			return read, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}

		text, ok := next()
		if !ok {
			if scanErr := sc.Err(); scanErr != nil {
				break
			}

			return read, fmt.Errorf("%w: line %d: missing text for %s", ErrMalformedRecord, line, day)
		}

		n, err := New(text, day)
		if err != nil {
			return read, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}

		s.Append(n)
		read++
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return read, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line+1, ErrTextTooLong)
		}

		return read, err
	}

	return read, nil
}
