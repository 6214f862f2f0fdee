package note

import "errors"

// Limits.
const (
	// DaysInWeek is the number of buckets in a [Store].
	DaysInWeek = 7

	// MaxTextLength is the maximum note length in characters (runes).
	MaxTextLength = 100
)

// Error variables for note operations.
var (
	ErrInvalidDay      = errors.New("day must be between 1 and 7")
	ErrTextEmpty       = errors.New("note text cannot be empty")
	ErrTextTooLong     = errors.New("note text is longer than 100 characters")
	ErrTextMultiline   = errors.New("note text cannot contain a newline")
	ErrNothingToDelete = errors.New("nothing to delete")
	ErrMalformedRecord = errors.New("malformed note record")
)
