/*
Command kibt computes procedural images with small kibt programs.

Usage:

	kibt [OPTION]... SOURCE...

Every SOURCE is a kibt program. In image mode (the default) each program is
run once per pixel of the canvas and its result is taken as the pixel's
color; programs are applied in order, each one repainting the canvas. The
canvas is written as a BMP file.

With --one, every program is run a single time without a canvas, and its
result is printed on a line of its own. Programs may print values
themselves with the native print.

With --repl, kibt starts an interactive session. Each line is compiled and
run as with --one. Lines starting with ':dis' show the bytecode of the rest
of the line instead, lines starting with ':step' show the operand stack after
every single instruction. ':quit' or <ctrl>D ends the session.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.cmd")
}
