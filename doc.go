/*
Package kibt is a small toolbox for procedural image scripting.

Kibt programs are tiny expression-language units which compute a single
value, usually the color of one pixel. A unit is tokenized, compiled in a
single pass to bytecode, and executed by a step-driven stack machine which
calls into a table of native Go functions. Package structure is as follows:

■ lexer: Package lexer splits source text into classified tokens.

■ bytecode: Package bytecode defines the instruction encoding shared by
compiler and interpreter, together with an emitter and a disassembler.

■ compiler: Package compiler parses tokens and emits bytecode directly,
without building a syntax tree.

■ vm: Package vm implements the bytecode interpreter.

■ library: Package library provides native functions and the capability
tables ("standalone" and "draw") built from them.

■ render: Package render runs a compiled unit once per pixel of a canvas
and writes the result as a bitmap.

The base package contains the value model and the native-function registry,
which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2025 Norbert Pillmayer <norbert@pillmayer.com>

*/
package kibt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kibt.core'.
func tracer() tracing.Trace {
	return tracing.Select("kibt.core")
}
