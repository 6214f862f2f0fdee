// Package note holds the weekday note store: seven doubly-linked buckets,
// one per weekday, sharing a single arena of note records.
package note

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Day is a day of the week, Sunday=1 through Saturday=7.
type Day int

// Days of the week.
const (
	Sunday Day = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [DaysInWeek]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Valid reports whether d is in 1..7.
func (d Day) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the English day name, or "Day(n)" for invalid values.
func (d Day) String() string {
	if !d.Valid() {
		return "Day(" + strconv.Itoa(int(d)) + ")"
	}

	return dayNames[d.index()]
}

// index is the bucket slot for d. All weekday-to-slot conversions go through here.
func (d Day) index() int {
	return int(d) - 1
}

// ParseDay parses a weekday number ("1".."7"), ignoring surrounding whitespace.
func ParseDay(s string) (Day, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}

	day := Day(n)
	if !day.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDay, n)
	}

	return day, nil
}

// Note is a single text entry tagged with a weekday.
// Links to neighbours live in the [Store], not on the value.
type Note struct {
	Text string
	Day  Day
}

// New validates text and day and returns an unlinked note.
func New(text string, day Day) (Note, error) {
	if !day.Valid() {
		return Note{}, fmt.Errorf("%w: %d", ErrInvalidDay, int(day))
	}

	err := ValidateText(text)
	if err != nil {
		return Note{}, err
	}

	return Note{Text: text, Day: day}, nil
}

// ValidateText checks that text fits in a single stored line.
func ValidateText(text string) error {
	if text == "" {
		return ErrTextEmpty
	}

	if strings.ContainsAny(text, "\r\n") {
		return ErrTextMultiline
	}

	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("%w (got %d)", ErrTextTooLong, n)
	}

	return nil
}

// String formats the note the way the command loop prints it.
func (n Note) String() string {
	return fmt.Sprintf("%-10s: %s", n.Day, n.Text)
}
