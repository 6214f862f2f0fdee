package cli

import (
	"fmt"
	"io"
)

// IO handles command loop output.
//
// Everything the user is meant to read in the normal flow goes to out,
// including error messages for failed commands. errOut carries warnings and
// startup errors.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Print writes to stdout without a trailing newline. Used for prompts.
func (o *IO) Print(a ...any) {
	_, _ = fmt.Fprint(o.out, a...)
}

// Warn writes a warning line to stderr.
func (o *IO) Warn(format string, a ...any) {
	_, _ = fmt.Fprintf(o.errOut, "warning: "+format+"\n", a...)
}
