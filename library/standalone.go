package library

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/kibt"
)

// Standalone is the capability set of programs run on their own, outside of
// an image: they may print.
type Standalone interface {
	kibt.Environment
	Stdout() io.Writer
}

// Print writes each of its arguments on a line of its own to the
// environment's output stream. It returns none.
func Print[E Standalone](args kibt.ArgSource, env E) kibt.Value {
	out := env.Stdout()
	for v, ok := args.Next(); ok; v, ok = args.Next() {
		if _, err := fmt.Fprintln(out, kibt.Display(v)); err != nil {
			tracer().Errorf("print: %v", err)
		}
	}
	return kibt.None{}
}

// Console is a standalone environment writing to Out, or to os.Stdout if Out
// is nil.
type Console struct {
	Out io.Writer
}

// Stdout is part of interface Standalone.
func (c *Console) Stdout() io.Writer {
	if c == nil || c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

var _ Standalone = (*Console)(nil)
